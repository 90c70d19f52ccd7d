package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AngelCh415/atelier/internal/models"
)

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("CATALOG_FILE", "")
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestAllocateFlags(t *testing.T) {
	out, err := run(t, "", "allocate", "-c", "Google Ads", "-c", "LinkedIn Ads", "-b", "10000", "--min", "1000", "--max", "8000")
	require.NoError(t, err)
	var got []models.OptimizationResult
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "LinkedIn Ads", got[0].Channel)
}

func TestAllocateStdin(t *testing.T) {
	out, err := run(t, `{"channels":["SEO"],"budgets":[3000,2000],"constraints":{"minBudgetPerChannel":0,"maxBudgetPerChannel":4000}}`, "allocate", "-f", "-")
	require.NoError(t, err)
	var got []models.OptimizationResult
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 1)
	assert.Equal(t, int64(4000), got[0].RecommendedBudget)
}

func TestAllocateRequiresInput(t *testing.T) {
	_, err := run(t, "", "allocate")
	assert.Error(t, err)
}

func TestQuoteAndDiscountCommands(t *testing.T) {
	out, err := run(t, "", "quote", "nonexistent-tier")
	require.NoError(t, err)
	assert.Contains(t, out, `"tier": null`)

	out, err = run(t, "", "discount", "--price", "100000", "--return-client", "--payment", "contado")
	require.NoError(t, err)
	var d models.Discount
	require.NoError(t, json.Unmarshal([]byte(out), &d))
	assert.Equal(t, int64(87000), d.FinalPrice)
}

func TestROICommand(t *testing.T) {
	out, err := run(t, "", "roi", "--investment", "10000", "--leads", "200", "--conversions", "4", "--avg-project-value", "50000")
	require.NoError(t, err)
	var r models.ROIResult
	require.NoError(t, json.Unmarshal([]byte(out), &r))
	assert.Equal(t, 1900.0, r.ROI)
}

func TestAllocateWithoutMaxFundsWholeBudget(t *testing.T) {
	out, err := run(t, "", "allocate", "-c", "SEO", "-b", "25000")
	require.NoError(t, err)
	var got []models.OptimizationResult
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 1)
	assert.Equal(t, int64(25000), got[0].RecommendedBudget)
}
