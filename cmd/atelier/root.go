package main

import (
	"encoding/json"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/AngelCh415/atelier/internal/catalog"
)

type rootOpts struct {
	catalogFile string
}

func newRootCmd() *cobra.Command {
	opts := &rootOpts{}
	root := &cobra.Command{
		Use:          "atelier",
		Short:        "Atelier pricing and marketing budget tools",
		Long:         "Run the spend allocator, ROI and CPQ calculators offline against the same catalog the server uses.",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&opts.catalogFile, "catalog", os.Getenv("CATALOG_FILE"), "YAML catalog overrides")

	root.AddCommand(newAllocateCmd(opts), newROICmd(), newQuoteCmd(opts), newDiscountCmd(), newTiersCmd(opts))
	return root
}

func (o *rootOpts) loadCatalog() (*catalog.Catalog, error) { return catalog.Load(o.catalogFile) }

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
