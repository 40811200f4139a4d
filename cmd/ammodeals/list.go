package main

import (
	"encoding/json"
	"fmt"

	"github.com/fekuna/ammodeals-service/internal/listing/dto"
	"github.com/fekuna/ammodeals-service/internal/listing/usecase"
	"github.com/fekuna/ammodeals-service/internal/tui"
	"github.com/spf13/cobra"
)

var (
	listQuery   string
	listCaliber string
	listSort    string
	listJSON    bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the derived listing view",
	Long: `Prints the catalog filtered by caliber and search text, sorted by
price per round (default) or name.

Example:
  ammodeals list --caliber 9mm --sort name`,
	RunE: runList,
}

func init() {
	listCmd.Flags().StringVarP(&listQuery, "query", "q", "", "case-insensitive match on name or brand")
	listCmd.Flags().StringVarP(&listCaliber, "caliber", "c", dto.AllCalibers, "caliber to keep, or \"all\"")
	listCmd.Flags().StringVarP(&listSort, "sort", "s", string(dto.SortPricePerRound), "sort key: price or name")
	listCmd.Flags().BoolVar(&listJSON, "json", false, "print JSON instead of a table")
}

func runList(cmd *cobra.Command, args []string) error {
	sortBy, err := dto.ParseSortKey(listSort)
	if err != nil {
		return err
	}
	state := dto.DefaultViewState().
		WithQuery(listQuery).
		WithCaliber(listCaliber).
		WithSort(sortBy)

	repo, err := loadCatalog(cmd.Context(), cfg, appLogger)
	if err != nil {
		return err
	}

	uc := usecase.NewListingUseCase(repo, nil, cfg.Catalog.Calibers, appLogger)
	result, err := uc.ListListings(cmd.Context(), state)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if listJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	fmt.Fprintf(out, "Ammunition Deals (%d results)\n", result.Total)
	if result.Total > 0 {
		fmt.Fprintln(out, tui.RenderTable(result.Listings, tui.DefaultStyles()))
	}
	return nil
}
