package main

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/spf13/cobra"

	"github.com/AngelCh415/atelier/internal/models"
	"github.com/AngelCh415/atelier/internal/optimizer"
)

func newAllocateCmd(opts *rootOpts) *cobra.Command {
	var (
		file     string
		channels []string
		budget   float64
		minPer   float64
		maxPer   float64
	)
	cmd := &cobra.Command{
		Use:   "allocate",
		Short: "Distribute a marketing budget across channels",
		Example: `  atelier allocate --channel "Google Ads" --channel "LinkedIn Ads" --budget 10000 --min 1000 --max 8000
  atelier allocate --file input.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var in models.OptimizationInput
			switch {
			case file != "":
				if err := readJSONFile(cmd.InOrStdin(), file, &in); err != nil {
					return err
				}
			case len(channels) > 0:
				in = models.OptimizationInput{
					Channels:    channels,
					Budgets:     []float64{budget},
					Constraints: models.Constraints{MinBudgetPerChannel: minPer, MaxBudgetPerChannel: maxPer},
				}
			default:
				return fmt.Errorf("either --file or --channel is required")
			}
			cat, err := opts.loadCatalog()
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), optimizer.NewAllocator(cat).Allocate(in))
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "JSON optimization input (- for stdin)")
	cmd.Flags().StringArrayVarP(&channels, "channel", "c", nil, "channel name (repeatable)")
	cmd.Flags().Float64VarP(&budget, "budget", "b", 0, "total budget")
	cmd.Flags().Float64Var(&minPer, "min", 0, "minimum budget per channel")
	cmd.Flags().Float64Var(&maxPer, "max", math.MaxFloat64, "maximum budget per channel")
	return cmd
}

func newROICmd() *cobra.Command {
	var in models.ROIInput
	cmd := &cobra.Command{
		Use:   "roi",
		Short: "Compute return on a marketing investment",
		RunE: func(cmd *cobra.Command, args []string) error {
			return printJSON(cmd.OutOrStdout(), optimizer.ComputeROI(in.Investment, in.Leads, in.Conversions, in.AvgProjectValue))
		},
	}
	cmd.Flags().Float64Var(&in.Investment, "investment", 0, "amount invested")
	cmd.Flags().IntVar(&in.Leads, "leads", 0, "leads generated")
	cmd.Flags().IntVar(&in.Conversions, "conversions", 0, "leads converted to projects")
	cmd.Flags().Float64Var(&in.AvgProjectValue, "avg-project-value", 0, "average project value")
	return cmd
}

func readJSONFile(stdin io.Reader, path string, v any) error {
	var r io.Reader = stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()
		r = f
	}
	if err := json.NewDecoder(r).Decode(v); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}
