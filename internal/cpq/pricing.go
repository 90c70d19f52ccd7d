// Package cpq implements configure-price-quote for the firm's service tiers.
package cpq

import (
	"math"
	"strings"

	"github.com/AngelCh415/atelier/internal/catalog"
	"github.com/AngelCh415/atelier/internal/models"
)

const sizePremiumFactor = 0.7

var urgencyPremium = map[string]float64{
	"normal":    0,
	"expedited": 0.25,
	"urgent":    0.50,
}

type Calculator struct{ cat *catalog.Catalog }

func NewCalculator(cat *catalog.Catalog) *Calculator {
	if cat == nil {
		cat = catalog.Default()
	}
	return &Calculator{cat: cat}
}

func (c *Calculator) Tiers() []models.Tier {
	out := make([]models.Tier, len(c.cat.Tiers))
	copy(out, c.cat.Tiers)
	return out
}

// CalculateQuotePrice returns an all-zero quote with a nil Tier when tierID is
// not in the catalog.
func (c *Calculator) CalculateQuotePrice(tierID string, customizations []string, projectSize float64, urgency string) models.Quote {
	tier, ok := c.cat.Tier(tierID)
	if !ok {
		return models.Quote{}
	}

	base := tier.BasePrice
	var custom float64
	for _, id := range customizations {
		custom += c.cat.CustomizationCost(id)
	}
	var size float64
	if projectSize > 1 {
		size = base * (projectSize - 1) * sizePremiumFactor
	}
	// urgencia desconocida = normal
	urg := base * urgencyPremium[strings.ToLower(strings.TrimSpace(urgency))]

	return models.Quote{
		BasePrice:         base,
		CustomizationCost: custom,
		SizePremium:       size,
		UrgencyPremium:    urg,
		TotalPrice:        roundInt(base + custom + size + urg),
		Tier:              &tier,
	}
}

func roundInt(f float64) int64 { return int64(math.Floor(f + 0.5)) }
