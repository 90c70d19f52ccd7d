// Package optimizer distributes a marketing budget across channels and
// reports return on investment.
package optimizer

import (
	"math"
	"sort"

	"github.com/AngelCh415/atelier/internal/catalog"
	"github.com/AngelCh415/atelier/internal/models"
)

const (
	weightCost       = 0.40
	weightConversion = 0.35
	weightQuality    = 0.25

	confidenceBase    = 0.6
	confidenceQuality = 0.35
	confidenceMax     = 0.95
)

// Allocator solo lee su catálogo; es seguro usarlo desde varias goroutines.
type Allocator struct{ cat *catalog.Catalog }

func NewAllocator(cat *catalog.Catalog) *Allocator {
	if cat == nil {
		cat = catalog.Default()
	}
	return &Allocator{cat: cat}
}

// Score combina eficiencia de costo, conversión y calidad.
func Score(e models.ChannelEfficiency) float64 {
	return weightCost*safeDivF(1, e.CostPerLead) + weightConversion*e.ConversionRate + weightQuality*e.QualityScore
}

type scoredChannel struct {
	name  string
	eff   models.ChannelEfficiency
	score float64
}

// Allocate returns one result per funded channel in descending score order.
// Channels reached after the pool is exhausted are omitted.
func (a *Allocator) Allocate(in models.OptimizationInput) []models.OptimizationResult {
	out := []models.OptimizationResult{}
	if len(in.Channels) == 0 {
		return out
	}

	var totalBudget float64
	for _, b := range in.Budgets {
		totalBudget += b
	}

	chs := make([]scoredChannel, 0, len(in.Channels))
	for _, name := range in.Channels {
		eff := a.cat.Channel(name)
		chs = append(chs, scoredChannel{name: name, eff: eff, score: Score(eff)})
	}
	sort.SliceStable(chs, func(i, j int) bool { return chs[i].score > chs[j].score })

	lo, hi := in.Constraints.MinBudgetPerChannel, in.Constraints.MaxBudgetPerChannel
	remaining := totalBudget
	for _, ch := range chs {
		// totalScore se recalcula con TODOS los canales en cada vuelta (no solo los pendientes).
		// Cambiarlo alteraría los montos recomendados.
		var totalScore float64
		for _, c := range chs {
			totalScore += c.score
		}
		proportional := safeDivF(ch.score, totalScore) * totalBudget

		rec := math.Min(clamp(proportional, lo, hi), remaining)
		budget := roundInt(rec)
		if float64(budget) > remaining {
			budget = int64(math.Floor(remaining))
		}

		out = append(out, models.OptimizationResult{
			Channel:             ch.name,
			RecommendedBudget:   budget,
			ExpectedLeads:       roundInt(safeDivF(float64(budget), ch.eff.CostPerLead)),
			ExpectedCostPerLead: roundInt(ch.eff.CostPerLead),
			EfficiencyScore:     round2(ch.score),
			Confidence:          round2(Confidence(ch.eff.QualityScore)),
		})

		remaining -= float64(budget)
		if remaining <= 0 {
			break
		}
	}
	return out
}

// Confidence queda en [0.6, 0.95] para calidad en [0, 1].
func Confidence(quality float64) float64 {
	return math.Min(confidenceMax, confidenceBase+quality*confidenceQuality)
}

// clamp aplica lo y luego hi; si lo > hi gana hi.
func clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}

func safeDivF(a, b float64) float64 {
	if b == 0 {
		return 0
	}
	return a / b
}

// round-half-up sobre el entero escalado
func round2(f float64) float64 { return math.Floor(f*100+0.5) / 100 }
func roundInt(f float64) int64  { return int64(math.Floor(f + 0.5)) }
