// Package mail renders the transactional emails sent by the dashboard.
// Delivery is handled elsewhere.
package mail

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/a-h/templ"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/AngelCh415/atelier/internal/models"
)

const (
	TemplateWelcome = "welcome"
	TemplateQuote   = "quote"
)

var ErrUnknownTemplate = errors.New("unknown email template")

var printer = message.NewPrinter(language.English)

func money(v float64) string { return printer.Sprintf("$%d", int64(math.Round(v))) }

type WelcomeData struct {
	FullName     string `json:"fullName"`
	FirmName     string `json:"firmName"`
	DashboardURL string `json:"dashboardUrl"`
}

type QuoteData struct {
	ClientName string           `json:"clientName"`
	Quote      models.Quote     `json:"quote"`
	Discount   *models.Discount `json:"discount,omitempty"`
}

func layout(title string, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<!DOCTYPE html><html lang="es"><head><meta charset="utf-8"><title>%s</title></head>`+
			`<body style="font-family:Helvetica,Arial,sans-serif;color:#1c1917;max-width:600px;margin:0 auto">`+
			`<h1 style="font-weight:300;letter-spacing:.05em">Atelier</h1>`, templ.EscapeString(title)); err != nil {
			return err
		}
		if err := body.Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, `<hr><p style="font-size:12px;color:#78716c">Atelier · Arquitectura y diseño</p></body></html>`)
		return err
	})
}

func Welcome(d WelcomeData) templ.Component {
	name := strings.TrimSpace(d.FullName)
	if name == "" {
		name = "hola"
	}
	return layout("Bienvenido a Atelier", templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, `<p>Bienvenido, %s.</p><p>Tu despacho <strong>%s</strong> ya está listo en Atelier.</p>`,
			templ.EscapeString(name), templ.EscapeString(d.FirmName))
		if err != nil || d.DashboardURL == "" {
			return err
		}
		_, err = fmt.Fprintf(w, `<p><a href="%s">Ir al panel</a></p>`, templ.EscapeString(string(templ.URL(d.DashboardURL))))
		return err
	}))
}

func Quote(d QuoteData) templ.Component {
	return layout("Tu cotización", templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		q := d.Quote
		if q.Tier == nil {
			return errors.New("quote without tier")
		}
		var b strings.Builder
		fmt.Fprintf(&b, `<p>Hola %s, esta es tu cotización para el paquete <strong>%s</strong>.</p><table>`,
			templ.EscapeString(d.ClientName), templ.EscapeString(q.Tier.Name))
		row := func(label string, v float64) {
			fmt.Fprintf(&b, `<tr><td>%s</td><td style="text-align:right">%s</td></tr>`, label, money(v))
		}
		row("Precio base", q.BasePrice)
		if q.CustomizationCost > 0 {
			row("Personalizaciones", q.CustomizationCost)
		}
		if q.SizePremium > 0 {
			row("Ajuste por tamaño", q.SizePremium)
		}
		if q.UrgencyPremium > 0 {
			row("Urgencia", q.UrgencyPremium)
		}
		row("Total", float64(q.TotalPrice))
		if d.Discount != nil && d.Discount.DiscountAmount > 0 {
			for _, a := range d.Discount.AppliedDiscounts {
				fmt.Fprintf(&b, `<tr><td colspan="2"><em>%s</em></td></tr>`, templ.EscapeString(a))
			}
			row("Descuento", -float64(d.Discount.DiscountAmount))
			row("Precio final", float64(d.Discount.FinalPrice))
		}
		b.WriteString(`</table>`)
		_, err := io.WriteString(w, b.String())
		return err
	}))
}

func Render(ctx context.Context, c templ.Component) (string, error) {
	var buf bytes.Buffer
	if err := c.Render(ctx, &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Component resuelve un template por nombre (endpoint de preview).
func Component(name string, decode func(any) error) (templ.Component, error) {
	switch name {
	case TemplateWelcome:
		var d WelcomeData
		if err := decode(&d); err != nil {
			return nil, err
		}
		return Welcome(d), nil
	case TemplateQuote:
		var d QuoteData
		if err := decode(&d); err != nil {
			return nil, err
		}
		return Quote(d), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownTemplate, name)
}
