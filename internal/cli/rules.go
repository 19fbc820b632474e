package cli

import (
	"fmt"

	"github.com/claimkit/fnoltriage/internal/model"
	"github.com/claimkit/fnoltriage/internal/route"
	"github.com/claimkit/fnoltriage/internal/validate"
	"github.com/spf13/cobra"
)

// rulesCmd prints the routing rule table and mandatory field set, so
// operators can see why a claim landed where it did without reading code.
var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Show the routing rules and mandatory fields",
	Run: func(cmd *cobra.Command, args []string) {
		router := route.NewRouter()
		summary := router.RuleSummary()

		fmt.Println("Routing rules (evaluated in priority order, first match wins):")
		for i, r := range []model.Route{
			model.RouteManualReview,
			model.RouteInvestigation,
			model.RouteSpecialist,
			model.RouteFastTrack,
		} {
			fmt.Printf("  %d. %-18s %s\n", i+1, string(r)+":", summary[r])
		}

		fmt.Println()
		fmt.Println("Mandatory fields (absence forces Manual Review):")
		for _, path := range validate.MandatoryFields {
			fmt.Printf("  - %s (%s)\n", validate.DisplayName(path), path)
		}
	},
}

func init() {
	rootCmd.AddCommand(rulesCmd)
}
