package main

import (
	"github.com/spf13/cobra"

	"github.com/AngelCh415/atelier/internal/cpq"
	"github.com/AngelCh415/atelier/internal/models"
)

func newQuoteCmd(opts *rootOpts) *cobra.Command {
	var in models.QuoteRequest
	cmd := &cobra.Command{
		Use:   "quote <tier>",
		Short: "Price a service tier with customizations",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := opts.loadCatalog()
			if err != nil {
				return err
			}
			q := cpq.NewCalculator(cat).CalculateQuotePrice(args[0], in.Customizations, in.ProjectSize, in.Urgency)
			return printJSON(cmd.OutOrStdout(), q)
		},
	}
	cmd.Flags().StringSliceVar(&in.Customizations, "custom", nil, "customization ids")
	cmd.Flags().Float64Var(&in.ProjectSize, "size", 1, "project size multiplier")
	cmd.Flags().StringVar(&in.Urgency, "urgency", "normal", "normal | expedited | urgent")
	return cmd
}

func newDiscountCmd() *cobra.Command {
	var (
		price float64
		cond  models.DiscountConditions
	)
	cmd := &cobra.Command{
		Use:   "discount",
		Short: "Apply commercial discounts to a price",
		RunE: func(cmd *cobra.Command, args []string) error {
			return printJSON(cmd.OutOrStdout(), cpq.CalculateDiscount(price, cond))
		},
	}
	cmd.Flags().Float64Var(&price, "price", 0, "base price")
	cmd.Flags().BoolVar(&cond.IsReturnClient, "return-client", false, "client has worked with us before")
	cmd.Flags().IntVar(&cond.ProjectCount, "projects", 0, "projects contracted together")
	cmd.Flags().StringVar(&cond.PaymentTerms, "payment", "", "payment terms (contado = pay in full)")
	cmd.Flags().StringVar(&cond.Season, "season", "", "low | high")
	return cmd
}

func newTiersCmd(opts *rootOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "tiers",
		Short: "List service tiers",
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := opts.loadCatalog()
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), cpq.NewCalculator(cat).Tiers())
		},
	}
}
