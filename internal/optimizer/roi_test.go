package optimizer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/AngelCh415/atelier/internal/models"
)

func TestComputeROI(t *testing.T) {
	got := ComputeROI(10000, 200, 4, 50000)
	assert.Equal(t, models.ROIResult{
		Revenue:            200000,
		ROI:                1900,
		CostPerLead:        50,
		CostPerAcquisition: 2500,
		ConversionRate:     2,
	}, got)
}

func TestComputeROIRoundsToTwoDecimals(t *testing.T) {
	got := ComputeROI(3000, 7, 3, 1100)
	assert.Equal(t, 10.0, got.ROI)
	assert.Equal(t, 428.57, got.CostPerLead)
	assert.Equal(t, 1000.0, got.CostPerAcquisition)
	assert.Equal(t, 42.86, got.ConversionRate)
}

func TestComputeROIDivisionGuards(t *testing.T) {
	got := ComputeROI(5000, 0, 0, 80000)
	assert.Equal(t, -100.0, got.ROI)
	assert.Zero(t, got.CostPerLead)
	assert.Zero(t, got.CostPerAcquisition)
	assert.Zero(t, got.ConversionRate)

	got = ComputeROI(0, 10, 2, 1000)
	assert.Zero(t, got.ROI)
	assert.Equal(t, 2000.0, got.Revenue)
}
