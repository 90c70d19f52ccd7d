package cpq

import (
	"fmt"
	"math"
	"strings"

	"github.com/AngelCh415/atelier/internal/models"
)

const (
	returnClientPct   = 5
	volumePctPerProj  = 3
	volumeMaxPct      = 15
	payInFullPct      = 8
	lowSeasonPct      = 10
	highSeasonPct     = -5
	maxDiscountPct    = 25
	payInFullTerms    = "contado"
	seasonLow         = "low"
	seasonHigh        = "high"
	minVolumeProjects = 2
)

// CalculateDiscount suma los descuentos aplicables y limita el total a [0%, 25%].
func CalculateDiscount(basePrice float64, cond models.DiscountConditions) models.Discount {
	var pct float64
	applied := []string{}

	if cond.IsReturnClient {
		pct += returnClientPct
		applied = append(applied, fmt.Sprintf("Cliente recurrente: %d%%", returnClientPct))
	}
	if cond.ProjectCount >= minVolumeProjects {
		v := math.Min(float64(cond.ProjectCount*volumePctPerProj), volumeMaxPct)
		pct += v
		applied = append(applied, fmt.Sprintf("Volumen (%d proyectos): %g%%", cond.ProjectCount, v))
	}
	if strings.EqualFold(strings.TrimSpace(cond.PaymentTerms), payInFullTerms) {
		pct += payInFullPct
		applied = append(applied, fmt.Sprintf("Pago de contado: %d%%", payInFullPct))
	}
	switch strings.ToLower(strings.TrimSpace(cond.Season)) {
	case seasonLow:
		pct += lowSeasonPct
		applied = append(applied, fmt.Sprintf("Temporada baja: %d%%", lowSeasonPct))
	case seasonHigh:
		pct += highSeasonPct
		applied = append(applied, fmt.Sprintf("Temporada alta: %d%%", highSeasonPct))
	}

	pct = math.Max(0, math.Min(pct, maxDiscountPct))
	amount := roundInt(basePrice * pct / 100)
	return models.Discount{
		OriginalPrice:    basePrice,
		DiscountPercent:  pct,
		DiscountAmount:   amount,
		FinalPrice:       roundInt(basePrice) - amount,
		AppliedDiscounts: applied,
	}
}
