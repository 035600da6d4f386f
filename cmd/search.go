package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/khrees2412/hirematch/internal/search"
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Rank candidates against search criteria",
	Long: `Rank the candidate pool against search criteria. Every active candidate is
returned, ordered by match score; criteria only change the order.`,
	Example: `  hirematch search --skills react,node --experience mid --work-type remote
  hirematch search --job 3 --skills kubernetes --limit 10
  hirematch search --filter-file filters.json --output json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp(cmd)
		if err != nil {
			return err
		}

		raw, err := filtersFromFlags(cmd)
		if err != nil {
			return err
		}

		req := search.Request{Filters: raw}
		req.JobID, _ = cmd.Flags().GetInt("job")
		req.Limit, _ = cmd.Flags().GetInt("limit")
		req.Offset, _ = cmd.Flags().GetInt("offset")
		req.IncludeInactive, _ = cmd.Flags().GetBool("all")

		resp, err := a.Search.Search(cmd.Context(), req)
		if err != nil {
			return err
		}

		output, _ := cmd.Flags().GetString("output")
		switch output {
		case "json":
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(resp)
		case "table", "":
			explain, _ := cmd.Flags().GetBool("explain")
			printResults(cmd, resp, explain)
			return nil
		default:
			return fmt.Errorf("unknown output format %q (use table or json)", output)
		}
	},
}

func printResults(cmd *cobra.Command, resp *search.Response, explain bool) {
	cmd.Println(titleStyle.Render("Search Results"))

	if len(resp.ActiveDimensions) == 0 {
		cmd.Println(mutedStyle.Render("No criteria given: every candidate scores 0 and keeps its pool order."))
	} else {
		cmd.Printf("%s %s\n", labelStyle.Render("Criteria:"), strings.Join(resp.ActiveDimensions, ", "))
	}

	if resp.Total == 0 {
		cmd.Println("No candidates in the pool. Import some with 'hirematch candidate import FILE'")
		return
	}
	if len(resp.Results) == 0 {
		cmd.Printf("No results at offset %d (%d candidates ranked)\n", resp.Offset, resp.Total)
		return
	}

	for i, r := range resp.Results {
		c := r.Candidate
		cmd.Printf("\n%s %s %s %s\n",
			labelStyle.Render(fmt.Sprintf("%d.", resp.Offset+i+1)),
			renderScore(r.Score),
			c.Name,
			mutedStyle.Render(c.ID),
		)
		details := []string{fmt.Sprintf("%.1fy", c.TotalExperienceYears)}
		if len(c.Skills) > 0 {
			details = append(details, strings.Join(c.Skills, ", "))
		}
		if c.LocationText != "" {
			details = append(details, c.LocationText)
		}
		cmd.Printf("   %s\n", valueStyle.Render(strings.Join(details, " · ")))

		if explain {
			for _, d := range r.Breakdown {
				cmd.Printf("   %s %.1f/%.0f\n", mutedStyle.Render(fmt.Sprintf("%-13s", d.Dimension)), d.Earned, d.Max)
			}
		}
	}

	shown := resp.Offset + len(resp.Results)
	cmd.Printf("\n%s\n", mutedStyle.Render(fmt.Sprintf("Showing %d-%d of %d", resp.Offset+1, shown, resp.Total)))
}

func init() {
	rootCmd.AddCommand(searchCmd)

	addFilterFlags(searchCmd)
	searchCmd.Flags().Int("job", 0, "merge the requirements of a saved job")
	searchCmd.Flags().Int("limit", 0, "results per page (default from config)")
	searchCmd.Flags().Int("offset", 0, "number of ranked results to skip")
	searchCmd.Flags().Bool("all", false, "include inactive candidates")
	searchCmd.Flags().Bool("explain", false, "show the per-dimension score breakdown")
	searchCmd.Flags().StringP("output", "o", "table", "output format: table or json")
}
