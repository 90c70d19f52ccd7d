package optimizer

import "github.com/AngelCh415/atelier/internal/models"

// ComputeROI devuelve 0 en cada métrica cuyo divisor sea 0.
func ComputeROI(investment float64, leads, conversions int, avgProjectValue float64) models.ROIResult {
	revenue := float64(conversions) * avgProjectValue
	var res models.ROIResult
	res.Revenue = round2(revenue)
	res.ROI = round2(safeDivF(revenue-investment, investment) * 100)
	if leads > 0 {
		res.CostPerLead = round2(investment / float64(leads))
		res.ConversionRate = round2(float64(conversions) / float64(leads) * 100)
	}
	if conversions > 0 {
		res.CostPerAcquisition = round2(investment / float64(conversions))
	}
	return res
}
