package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/khrees2412/hirematch/internal/criteria"
	"github.com/khrees2412/hirematch/internal/matcher"
	"github.com/khrees2412/hirematch/pkg/models"
)

const topSkillsShown = 10

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "View candidate pool statistics",
	Long:  "Display how the candidate pool breaks down by experience band, work type, job type and skill",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp(cmd)
		if err != nil {
			return err
		}

		candidates, err := a.Repo.FetchCandidates(cmd.Context(), true)
		if err != nil {
			return fmt.Errorf("fetch candidates: %w", err)
		}

		if len(candidates) == 0 {
			cmd.Println("No candidates yet. Import some with 'hirematch candidate import FILE'")
			return nil
		}

		stats := calculateStats(candidates)

		cmd.Println(titleStyle.Render("Candidate Pool Statistics"))

		cmd.Printf("\n%s\n", labelStyle.Render("Overview"))
		cmd.Printf("  Total Candidates: %d\n", stats.Total)
		cmd.Printf("  Active: %d\n", stats.Active)
		cmd.Printf("  Inactive: %d\n", stats.Total-stats.Active)
		cmd.Printf("  Average Experience: %.1f years\n", stats.AvgExperience)

		printBreakdown(cmd, "Experience Bands", stats.Total, stats.ExperienceBands, experienceOrder)
		printBreakdown(cmd, "Work Types", stats.Total, stats.WorkTypes, nil)
		printBreakdown(cmd, "Job Types", stats.Total, stats.JobTypes, nil)

		if len(stats.TopSkills) > 0 {
			cmd.Printf("\n%s\n", labelStyle.Render("Top Skills"))
			for _, s := range stats.TopSkills {
				cmd.Printf("  %s: %d\n", s.Name, s.Count)
			}
		}
		return nil
	},
}

var experienceOrder = []string{
	string(criteria.ExperienceEntry),
	string(criteria.ExperienceMid),
	string(criteria.ExperienceSenior),
	string(criteria.ExperienceExec),
}

type Stats struct {
	Total           int
	Active          int
	AvgExperience   float64
	ExperienceBands map[string]int
	WorkTypes       map[string]int
	JobTypes        map[string]int
	TopSkills       []SkillCount
}

type SkillCount struct {
	Name  string
	Count int
}

func calculateStats(candidates []*models.Candidate) Stats {
	stats := Stats{
		ExperienceBands: make(map[string]int),
		WorkTypes:       make(map[string]int),
		JobTypes:        make(map[string]int),
	}

	skills := make(map[string]int)
	var years float64

	for _, c := range candidates {
		if c == nil {
			continue
		}
		stats.Total++
		if c.Active {
			stats.Active++
		}
		years += c.TotalExperienceYears

		for _, level := range experienceOrder {
			if matcher.CheckExperienceMatch(c.TotalExperienceYears, []criteria.ExperienceLevel{criteria.ExperienceLevel(level)}) {
				stats.ExperienceBands[level]++
				break
			}
		}

		seenWork := make(map[criteria.WorkType]bool)
		for _, w := range c.SelectedWorkTypes {
			if wt, ok := criteria.ParseWorkType(w); ok && !seenWork[wt] {
				seenWork[wt] = true
				stats.WorkTypes[string(wt)]++
			}
		}

		if jt, ok := criteria.ParseJobType(c.JobMainType); ok {
			stats.JobTypes[string(jt)]++
		}

		seenSkill := make(map[string]bool)
		for _, s := range c.Skills {
			key := strings.ToLower(strings.TrimSpace(s))
			if key != "" && !seenSkill[key] {
				seenSkill[key] = true
				skills[key]++
			}
		}
	}

	if stats.Total > 0 {
		stats.AvgExperience = years / float64(stats.Total)
	}

	for name, count := range skills {
		stats.TopSkills = append(stats.TopSkills, SkillCount{Name: name, Count: count})
	}
	sort.Slice(stats.TopSkills, func(i, j int) bool {
		if stats.TopSkills[i].Count != stats.TopSkills[j].Count {
			return stats.TopSkills[i].Count > stats.TopSkills[j].Count
		}
		return stats.TopSkills[i].Name < stats.TopSkills[j].Name
	})
	if len(stats.TopSkills) > topSkillsShown {
		stats.TopSkills = stats.TopSkills[:topSkillsShown]
	}

	return stats
}

// printBreakdown prints counts in order, or sorted by key when order is nil.
func printBreakdown(cmd *cobra.Command, title string, total int, counts map[string]int, order []string) {
	if len(counts) == 0 {
		return
	}
	if order == nil {
		for k := range counts {
			order = append(order, k)
		}
		sort.Strings(order)
	}

	cmd.Printf("\n%s\n", labelStyle.Render(title))
	for _, k := range order {
		count := counts[k]
		percentage := float64(count) / float64(total) * 100
		cmd.Printf("  %s: %d (%.1f%%)\n", k, count, percentage)
	}
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
