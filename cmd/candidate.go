package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/khrees2412/hirematch/internal/database"
	"github.com/khrees2412/hirematch/pkg/models"
)

var candidateCmd = &cobra.Command{
	Use:     "candidate",
	Aliases: []string{"candidates"},
	Short:   "Manage the candidate pool",
	Long:    "Add, import, list, view, deactivate and remove candidate profiles",
}

var addCandidateCmd = &cobra.Command{
	Use:   "add",
	Short: "Add or update a candidate",
	Example: `  hirematch candidate add --name "Asha Rao" --skills go,postgres --experience 4 \
    --work-types remote,hybrid --job-type fulltime --location "Pune, India" \
    --education "B.Tech Computer Science" --availability immediate --min-ctc 60000`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp(cmd)
		if err != nil {
			return err
		}

		c := &models.Candidate{}
		c.ID, _ = cmd.Flags().GetString("id")
		c.Name, _ = cmd.Flags().GetString("name")
		c.Email, _ = cmd.Flags().GetString("email")
		c.Skills, _ = cmd.Flags().GetStringSlice("skills")
		c.LocationText, _ = cmd.Flags().GetString("location")
		c.TotalExperienceYears, _ = cmd.Flags().GetFloat64("experience")
		c.SelectedWorkTypes, _ = cmd.Flags().GetStringSlice("work-types")
		c.JobMainType, _ = cmd.Flags().GetString("job-type")
		c.PreferredLocations, _ = cmd.Flags().GetStringSlice("preferred-locations")
		c.Availability, _ = cmd.Flags().GetString("availability")
		c.MinAnnualCTC, _ = cmd.Flags().GetFloat64("min-ctc")
		inactive, _ := cmd.Flags().GetBool("inactive")
		c.Active = !inactive

		degrees, _ := cmd.Flags().GetStringArray("education")
		for _, d := range degrees {
			c.Education = append(c.Education, models.Education{Degree: d})
		}

		if err := models.ValidateCandidate(c); err != nil {
			return err
		}

		if err := a.Repo.SaveCandidate(cmd.Context(), c); err != nil {
			return err
		}

		cmd.Printf("✓ Candidate saved: %s (ID: %s)\n", c.Name, c.ID)
		return nil
	},
}

var importCandidatesCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import candidates from a JSON or YAML file",
	Long: `Import candidates from a JSON or YAML file holding either one candidate
or a list of them. Records with an existing id are updated. Records that do
not set "active" are imported as active.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp(cmd)
		if err != nil {
			return err
		}

		candidates, err := readCandidates(args[0])
		if err != nil {
			return fmt.Errorf("read %s: %w", args[0], err)
		}

		for _, c := range candidates {
			if err := a.Repo.SaveCandidate(cmd.Context(), c); err != nil {
				return err
			}
		}

		cmd.Printf("✓ Imported %d candidate(s)\n", len(candidates))
		return nil
	},
}

var listCandidatesCmd = &cobra.Command{
	Use:   "list",
	Short: "List candidates, most recently updated first",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp(cmd)
		if err != nil {
			return err
		}

		all, _ := cmd.Flags().GetBool("all")
		limit, _ := cmd.Flags().GetInt("limit")

		candidates, err := a.Repo.ListCandidates(cmd.Context(), database.ListOptions{ActiveOnly: !all, Limit: limit})
		if err != nil {
			return fmt.Errorf("fetch candidates: %w", err)
		}

		if len(candidates) == 0 {
			cmd.Println("No candidates found. Add one with 'hirematch candidate add' or 'hirematch candidate import FILE'")
			return nil
		}

		cmd.Println(titleStyle.Render("Candidates"))
		for i, c := range candidates {
			name := c.Name
			if !c.Active {
				name += mutedStyle.Render(" (inactive)")
			}
			cmd.Printf("\n%s. %s\n", labelStyle.Render(fmt.Sprintf("%d", i+1)), name)
			cmd.Printf("   %s %s\n", labelStyle.Render("ID:"), c.ID)
			if len(c.Skills) > 0 {
				cmd.Printf("   %s %s\n", labelStyle.Render("Skills:"), strings.Join(c.Skills, ", "))
			}
			cmd.Printf("   %s %.1f years\n", labelStyle.Render("Experience:"), c.TotalExperienceYears)
			if c.LocationText != "" {
				cmd.Printf("   %s %s\n", labelStyle.Render("Location:"), c.LocationText)
			}
		}
		return nil
	},
}

var showCandidateCmd = &cobra.Command{
	Use:   "show <candidate-id>",
	Short: "Show a candidate profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp(cmd)
		if err != nil {
			return err
		}

		c, err := a.Repo.GetCandidate(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		printCandidate(cmd, c)
		return nil
	},
}

var removeCandidateCmd = &cobra.Command{
	Use:   "remove <candidate-id>",
	Short: "Remove a candidate",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp(cmd)
		if err != nil {
			return err
		}

		if err := a.Repo.DeleteCandidate(cmd.Context(), args[0]); err != nil {
			return err
		}

		cmd.Printf("✓ Removed candidate %s\n", args[0])
		return nil
	},
}

var activateCandidateCmd = &cobra.Command{
	Use:   "activate <candidate-id>",
	Short: "Include a candidate in searches",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setActive(cmd, args[0], true)
	},
}

var deactivateCandidateCmd = &cobra.Command{
	Use:   "deactivate <candidate-id>",
	Short: "Exclude a candidate from searches",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setActive(cmd, args[0], false)
	},
}

func setActive(cmd *cobra.Command, id string, active bool) error {
	a, err := getApp(cmd)
	if err != nil {
		return err
	}

	if err := a.Repo.SetCandidateActive(cmd.Context(), id, active); err != nil {
		return err
	}

	state := "active"
	if !active {
		state = "inactive"
	}
	cmd.Printf("✓ Candidate %s is now %s\n", id, state)
	return nil
}

func printCandidate(cmd *cobra.Command, c *models.Candidate) {
	cmd.Println(titleStyle.Render(c.Name))
	row := func(label, value string) {
		if value != "" {
			cmd.Printf("%s %s\n", labelStyle.Render(label), valueStyle.Render(value))
		}
	}

	row("ID:", c.ID)
	row("Email:", c.Email)
	row("Skills:", strings.Join(c.Skills, ", "))
	row("Experience:", fmt.Sprintf("%.1f years", c.TotalExperienceYears))
	row("Location:", c.LocationText)
	row("Preferred Locations:", strings.Join(c.PreferredLocations, ", "))
	row("Work Types:", strings.Join(c.SelectedWorkTypes, ", "))
	row("Job Type:", c.JobMainType)
	degrees := make([]string, 0, len(c.Education))
	for _, e := range c.Education {
		degrees = append(degrees, e.Degree)
	}
	row("Education:", strings.Join(degrees, "; "))
	row("Availability:", c.Availability)
	if c.MinAnnualCTC > 0 {
		row("Min CTC:", fmt.Sprintf("%.0f", c.MinAnnualCTC))
	}
	row("Active:", fmt.Sprintf("%t", c.Active))
	if !c.UpdatedAt.IsZero() {
		row("Updated:", c.UpdatedAt.Local().Format("Jan 2, 2006 15:04"))
	}
}

// activeFlag picks up an explicit "active" field so that records leaving it
// out can default to active.
type activeFlag struct {
	Active *bool `json:"active" yaml:"active"`
}

// readCandidates decodes a file holding one candidate or a list of them.
func readCandidates(path string) ([]*models.Candidate, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var candidates []*models.Candidate
	var flags []activeFlag
	if isYAML(path) {
		err = decodeOneOrMany(data, yaml.Unmarshal, &candidates, &flags)
	} else {
		err = decodeOneOrMany(bytes.TrimSpace(data), json.Unmarshal, &candidates, &flags)
	}
	if err != nil {
		return nil, err
	}

	for i, c := range candidates {
		if c == nil {
			return nil, fmt.Errorf("record %d is empty", i+1)
		}
		c.Active = flags[i].Active == nil || *flags[i].Active
		if err := models.ValidateCandidate(c); err != nil {
			return nil, fmt.Errorf("record %d: %w", i+1, err)
		}
	}
	return candidates, nil
}

func decodeOneOrMany(data []byte, unmarshal func([]byte, any) error, candidates *[]*models.Candidate, flags *[]activeFlag) error {
	if err := unmarshal(data, candidates); err == nil {
		return unmarshal(data, flags)
	}

	one := &models.Candidate{}
	if err := unmarshal(data, one); err != nil {
		return err
	}
	var flag activeFlag
	if err := unmarshal(data, &flag); err != nil {
		return err
	}
	*candidates = []*models.Candidate{one}
	*flags = []activeFlag{flag}
	return nil
}

func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

func init() {
	rootCmd.AddCommand(candidateCmd)
	candidateCmd.AddCommand(addCandidateCmd)
	candidateCmd.AddCommand(importCandidatesCmd)
	candidateCmd.AddCommand(listCandidatesCmd)
	candidateCmd.AddCommand(showCandidateCmd)
	candidateCmd.AddCommand(removeCandidateCmd)
	candidateCmd.AddCommand(activateCandidateCmd)
	candidateCmd.AddCommand(deactivateCandidateCmd)

	addCandidateCmd.Flags().String("id", "", "candidate ID (generated when empty; an existing ID is updated)")
	addCandidateCmd.Flags().String("name", "", "full name")
	addCandidateCmd.Flags().String("email", "", "email address")
	addCandidateCmd.Flags().StringSlice("skills", nil, "skills, comma separated")
	addCandidateCmd.Flags().String("location", "", "current location")
	addCandidateCmd.Flags().Float64("experience", 0, "total years of experience")
	addCandidateCmd.Flags().StringSlice("work-types", nil, "accepted work types: remote, hybrid, office")
	addCandidateCmd.Flags().String("job-type", "", "main job type: fulltime, parttime, contract, internship")
	addCandidateCmd.Flags().StringSlice("preferred-locations", nil, "preferred locations, comma separated")
	addCandidateCmd.Flags().StringArray("education", nil, "degree, repeat for several entries")
	addCandidateCmd.Flags().String("availability", "", "availability, e.g. immediate")
	addCandidateCmd.Flags().Float64("min-ctc", 0, "minimum expected annual CTC")
	addCandidateCmd.Flags().Bool("inactive", false, "exclude the candidate from searches")

	listCandidatesCmd.Flags().Bool("all", false, "include inactive candidates")
	listCandidatesCmd.Flags().Int("limit", 0, "maximum number of candidates to list (0 for all)")
}
