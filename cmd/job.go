package cmd

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/khrees2412/hirematch/internal/criteria"
	"github.com/khrees2412/hirematch/pkg/models"
)

var jobCmd = &cobra.Command{
	Use:   "job",
	Short: "Manage saved jobs",
	Long:  "Save job openings with their requirements so searches can reuse them with --job",
}

var addJobCmd = &cobra.Command{
	Use:   "add",
	Short: "Save a job and its requirements",
	Example: `  hirematch job add --title "Backend Engineer" --company "Acme Inc" \
    --skills go,postgres --experience mid,senior --work-type remote
  hirematch job add --title "Data Intern" --filter-file intern.yaml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp(cmd)
		if err != nil {
			return err
		}

		title, _ := cmd.Flags().GetString("title")
		company, _ := cmd.Flags().GetString("company")
		if title == "" {
			return fmt.Errorf("--title is required")
		}

		raw, err := filtersFromFlags(cmd)
		if err != nil {
			return err
		}

		// Stored in canonical form; unusable fields are dropped here rather
		// than on every search.
		c := criteria.Normalizer{Logger: a.Logger}.Normalize(raw)
		if c.IsEmpty() {
			cmd.Println(mutedStyle.Render("Note: the job has no usable criteria and will not affect rankings."))
		}

		job := &models.Job{
			Title:    title,
			Company:  company,
			Criteria: c.Raw(),
		}
		if err := a.Repo.CreateJob(cmd.Context(), job); err != nil {
			return fmt.Errorf("save job: %w", err)
		}

		cmd.Printf("✓ Job saved: %s (ID: %d)\n", job.Title, job.ID)
		return nil
	},
}

var listJobsCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved jobs",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp(cmd)
		if err != nil {
			return err
		}

		jobs, err := a.Repo.ListJobs(cmd.Context())
		if err != nil {
			return fmt.Errorf("fetch jobs: %w", err)
		}

		if len(jobs) == 0 {
			cmd.Println("No jobs found. Save one with 'hirematch job add --title TITLE'")
			return nil
		}

		cmd.Println(titleStyle.Render("Saved Jobs"))
		for _, job := range jobs {
			cmd.Printf("\n%s %s\n", labelStyle.Render(fmt.Sprintf("#%d", job.ID)), job.Title)
			if job.Company != "" {
				cmd.Printf("   %s %s\n", labelStyle.Render("Company:"), job.Company)
			}
			cmd.Printf("   %s %d\n", labelStyle.Render("Criteria:"), len(job.Criteria))
			cmd.Printf("   %s %s\n", labelStyle.Render("Added:"), job.CreatedAt.Local().Format("Jan 2, 2006"))
		}
		return nil
	},
}

var showJobCmd = &cobra.Command{
	Use:   "show <job-id>",
	Short: "Show a saved job and its requirements",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp(cmd)
		if err != nil {
			return err
		}

		jobID, err := parseJobID(args[0])
		if err != nil {
			return err
		}

		job, err := a.Repo.GetJob(cmd.Context(), jobID)
		if err != nil {
			return err
		}

		cmd.Println(titleStyle.Render(job.Title))
		if job.Company != "" {
			cmd.Printf("%s %s\n", labelStyle.Render("Company:"), job.Company)
		}
		cmd.Printf("%s %s\n", labelStyle.Render("Added:"), job.CreatedAt.Local().Format("Jan 2, 2006 15:04"))

		pretty, _ := json.MarshalIndent(job.Criteria, "", "  ")
		cmd.Println(labelStyle.Render("\nCriteria:"))
		cmd.Println(string(pretty))
		return nil
	},
}

var removeJobCmd = &cobra.Command{
	Use:   "remove <job-id>",
	Short: "Remove a saved job",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp(cmd)
		if err != nil {
			return err
		}

		jobID, err := parseJobID(args[0])
		if err != nil {
			return err
		}

		if err := a.Repo.DeleteJob(cmd.Context(), jobID); err != nil {
			return err
		}

		cmd.Printf("✓ Removed job #%d\n", jobID)
		return nil
	},
}

func parseJobID(s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid job ID %q: must be a positive number", s)
	}
	return id, nil
}

func init() {
	rootCmd.AddCommand(jobCmd)
	jobCmd.AddCommand(addJobCmd)
	jobCmd.AddCommand(listJobsCmd)
	jobCmd.AddCommand(showJobCmd)
	jobCmd.AddCommand(removeJobCmd)

	addJobCmd.Flags().String("title", "", "job title")
	addJobCmd.Flags().String("company", "", "company name")
	addFilterFlags(addJobCmd)
}
