package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func TestChannelFallsBackToDefault(t *testing.T) {
	c := Default()
	assert.Equal(t, DefaultChannel, c.Channel("Carrier Pigeon"))
	assert.Equal(t, 45.0, c.Channel("Google Ads").CostPerLead)
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	c, err := Load("")
	require.NoError(t, err)
	assert.Len(t, c.Tiers, 3)
}

func TestLoadOverridesAndExtends(t *testing.T) {
	p := writeFile(t, `
channels:
  Google Ads: {cost_per_lead: 50, conversion_rate: 0.1, quality_score: 0.8}
  TikTok Ads: {cost_per_lead: 30, conversion_rate: 0.05, quality_score: 0.6}
tiers:
  - id: profesional
    name: Profesional Plus
    base_price: 99000
  - id: boutique
    name: Boutique
    base_price: 250000
customizations:
  - id: drone-survey
    name: Levantamiento con dron
    cost: 9000
`)
	c, err := Load(p)
	require.NoError(t, err)

	assert.Equal(t, 50.0, c.Channel("Google Ads").CostPerLead)
	assert.Equal(t, 30.0, c.Channel("TikTok Ads").CostPerLead)
	assert.Equal(t, 85.0, c.Channel("LinkedIn Ads").CostPerLead)

	tier, ok := c.Tier("profesional")
	require.True(t, ok)
	assert.Equal(t, 99000.0, tier.BasePrice)
	_, ok = c.Tier("boutique")
	assert.True(t, ok)
	assert.Len(t, c.Tiers, 4)

	assert.Equal(t, 9000.0, c.CustomizationCost("drone-survey"))
	assert.Equal(t, 12000.0, c.CustomizationCost("render-3d"))
}

func TestLoadRejectsInvalidEntries(t *testing.T) {
	p := writeFile(t, `
channels:
  Broken: {cost_per_lead: 0, conversion_rate: 1.5, quality_score: 0.5}
tiers:
  - name: sin id
    base_price: -1
`)
	_, err := Load(p)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cost_per_lead")
	assert.Contains(t, err.Error(), "conversion_rate")
	assert.Contains(t, err.Error(), "tier without id")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestDefaultIsNotShared(t *testing.T) {
	a := Default()
	a.Channels["Google Ads"] = DefaultChannel
	b := Default()
	assert.Equal(t, 45.0, b.Channel("Google Ads").CostPerLead)
}
