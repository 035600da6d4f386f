package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/khrees2412/hirematch/internal/criteria"
)

// addFilterFlags registers one flag per search criterion.
func addFilterFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.String("text", "", "free-text search (informational, not scored)")
	f.StringSlice("skills", nil, "required skills, comma separated")
	f.StringSlice("locations", nil, "preferred locations, comma separated")
	f.StringSlice("experience", nil, "experience levels: entry, mid, senior, exec")
	f.StringSlice("work-type", nil, "work types: remote, hybrid, office")
	f.StringSlice("job-type", nil, "job types: fulltime, parttime, contract, internship")
	f.StringSlice("education", nil, "education levels: highschool, associate, bachelor, master, phd")
	f.String("availability", "", "availability, matched exactly")
	f.Float64("salary-min", criteria.DefaultSalaryRange.Min, "minimum annual CTC")
	f.Float64("salary-max", criteria.DefaultSalaryRange.Max, "maximum annual CTC")
	f.String("filter-file", "", "JSON or YAML file with a filter payload; flags override its fields")
}

// filtersFromFlags builds a raw filter payload from --filter-file and any
// criterion flags that were set explicitly.
func filtersFromFlags(cmd *cobra.Command) (criteria.RawFilterInput, error) {
	raw := criteria.RawFilterInput{}

	if path, _ := cmd.Flags().GetString("filter-file"); path != "" {
		if err := decodeFile(path, &raw); err != nil {
			return nil, fmt.Errorf("read filter file: %w", err)
		}
	}

	changed := cmd.Flags().Changed
	stringFlags := map[string]string{
		"text":         criteria.KeySearchText,
		"availability": criteria.KeyAvailability,
	}
	for flag, key := range stringFlags {
		if changed(flag) {
			raw[key], _ = cmd.Flags().GetString(flag)
		}
	}

	sliceFlags := map[string]string{
		"skills":     criteria.KeySkills,
		"locations":  criteria.KeyLocations,
		"experience": criteria.KeyExperience,
		"work-type":  criteria.KeyWorkType,
		"job-type":   criteria.KeyJobType,
		"education":  criteria.KeyEducation,
	}
	for flag, key := range sliceFlags {
		if changed(flag) {
			raw[key], _ = cmd.Flags().GetStringSlice(flag)
		}
	}

	if changed("salary-min") || changed("salary-max") {
		lo, _ := cmd.Flags().GetFloat64("salary-min")
		hi, _ := cmd.Flags().GetFloat64("salary-max")
		raw[criteria.KeySalaryRange] = []float64{lo, hi}
	}

	return raw, nil
}

// decodeFile reads a JSON or YAML document into out. Files ending in .yaml
// or .yml are parsed as YAML, everything else as JSON.
func decodeFile(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	if isYAML(path) {
		return yaml.Unmarshal(data, out)
	}
	return json.Unmarshal(data, out)
}
