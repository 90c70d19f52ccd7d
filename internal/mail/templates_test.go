package mail

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AngelCh415/atelier/internal/models"
)

func TestWelcomeEscapesInput(t *testing.T) {
	html, err := Render(context.Background(), Welcome(WelcomeData{FullName: "Ana <script>", FirmName: "Ruiz & Co"}))
	require.NoError(t, err)
	assert.Contains(t, html, "Ana &lt;script&gt;")
	assert.Contains(t, html, "Ruiz &amp; Co")
	assert.NotContains(t, html, "<script>")
	assert.NotContains(t, html, "Ir al panel")
}

func TestWelcomeWithDashboardLink(t *testing.T) {
	html, err := Render(context.Background(), Welcome(WelcomeData{FullName: "Ana", FirmName: "F", DashboardURL: "https://app.atelier.mx/dashboard"}))
	require.NoError(t, err)
	assert.Contains(t, html, `href="https://app.atelier.mx/dashboard"`)
}

func TestQuoteBreakdown(t *testing.T) {
	tier := models.Tier{ID: "profesional", Name: "Profesional"}
	d := QuoteData{
		ClientName: "Luis",
		Quote:      models.Quote{BasePrice: 95000, CustomizationCost: 27000, TotalPrice: 122000, Tier: &tier},
		Discount:   &models.Discount{DiscountAmount: 15860, FinalPrice: 106140, AppliedDiscounts: []string{"Pago de contado: 8%"}},
	}
	html, err := Render(context.Background(), Quote(d))
	require.NoError(t, err)
	assert.Contains(t, html, "$95,000")
	assert.Contains(t, html, "$122,000")
	assert.Contains(t, html, "Pago de contado: 8%")
	assert.Contains(t, html, "$106,140")
	assert.NotContains(t, html, "Urgencia")
}

func TestQuoteWithoutTierFails(t *testing.T) {
	_, err := Render(context.Background(), Quote(QuoteData{}))
	assert.Error(t, err)
}

func TestComponentByName(t *testing.T) {
	raw := json.RawMessage(`{"fullName":"Ana","firmName":"Estudio"}`)
	c, err := Component(TemplateWelcome, func(v any) error { return json.Unmarshal(raw, v) })
	require.NoError(t, err)
	html, err := Render(context.Background(), c)
	require.NoError(t, err)
	assert.Contains(t, html, "Estudio")

	_, err = Component("newsletter", nil)
	assert.ErrorIs(t, err, ErrUnknownTemplate)
}
