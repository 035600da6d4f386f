package matcher

import (
	"math"
	"regexp"
	"strings"

	"github.com/khrees2412/hirematch/internal/criteria"
	"github.com/khrees2412/hirematch/pkg/models"
)

// Dimension weights. Only active dimensions count towards the maximum.
const (
	WeightSkills       = 30
	WeightExperience   = 20
	WeightWorkType     = 15
	WeightJobType      = 15
	WeightLocation     = 5
	WeightEducation    = 5
	WeightAvailability = 5
	WeightSalary       = 5
)

// FieldMatcher scores a single criterion against a candidate.
// Match returns the matched fraction in [0, 1]; binary dimensions return 0 or 1.
type FieldMatcher interface {
	Name() string
	Weight() float64
	Active(c criteria.SearchCriteria) bool
	Match(c criteria.SearchCriteria, cand *models.Candidate) float64
}

// DefaultFields is the standard weight table.
func DefaultFields() []FieldMatcher {
	return []FieldMatcher{
		skillsField{},
		experienceField{},
		workTypeField{},
		jobTypeField{},
		locationField{},
		educationField{},
		availabilityField{},
		salaryField{},
	}
}

type skillsField struct{}

func (skillsField) Name() string    { return "skills" }
func (skillsField) Weight() float64 { return WeightSkills }

func (skillsField) Active(c criteria.SearchCriteria) bool { return len(c.Skills) > 0 }

// Match gives partial credit: the share of required skills that overlap a
// candidate skill by case-insensitive substring in either direction.
// Blank candidate skills are ignored rather than matching everything.
func (skillsField) Match(c criteria.SearchCriteria, cand *models.Candidate) float64 {
	if len(c.Skills) == 0 {
		return 0
	}

	have := make([]string, 0, len(cand.Skills))
	for _, s := range cand.Skills {
		if s = strings.ToLower(strings.TrimSpace(s)); s != "" {
			have = append(have, s)
		}
	}

	matched := 0
	for _, required := range c.Skills {
		req := strings.ToLower(required)
		for _, s := range have {
			if strings.Contains(s, req) || strings.Contains(req, s) {
				matched++
				break
			}
		}
	}

	return float64(matched) / float64(len(c.Skills))
}

type experienceField struct{}

func (experienceField) Name() string    { return "experience" }
func (experienceField) Weight() float64 { return WeightExperience }

func (experienceField) Active(c criteria.SearchCriteria) bool { return len(c.ExperienceLevels) > 0 }

func (experienceField) Match(c criteria.SearchCriteria, cand *models.Candidate) float64 {
	return binary(CheckExperienceMatch(cand.TotalExperienceYears, c.ExperienceLevels))
}

type workTypeField struct{}

func (workTypeField) Name() string    { return "workType" }
func (workTypeField) Weight() float64 { return WeightWorkType }

func (workTypeField) Active(c criteria.SearchCriteria) bool { return len(c.WorkTypes) > 0 }

func (workTypeField) Match(c criteria.SearchCriteria, cand *models.Candidate) float64 {
	for _, selected := range cand.SelectedWorkTypes {
		w, ok := criteria.ParseWorkType(selected)
		if !ok {
			continue
		}
		for _, want := range c.WorkTypes {
			if w == want {
				return 1
			}
		}
	}
	return 0
}

type jobTypeField struct{}

func (jobTypeField) Name() string    { return "jobType" }
func (jobTypeField) Weight() float64 { return WeightJobType }

func (jobTypeField) Active(c criteria.SearchCriteria) bool { return len(c.JobTypes) > 0 }

func (jobTypeField) Match(c criteria.SearchCriteria, cand *models.Candidate) float64 {
	j, ok := criteria.ParseJobType(cand.JobMainType)
	if !ok {
		return 0
	}
	for _, want := range c.JobTypes {
		if j == want {
			return 1
		}
	}
	return 0
}

type locationField struct{}

func (locationField) Name() string    { return "location" }
func (locationField) Weight() float64 { return WeightLocation }

func (locationField) Active(c criteria.SearchCriteria) bool { return len(c.Locations) > 0 }

func (locationField) Match(c criteria.SearchCriteria, cand *models.Candidate) float64 {
	places := make([]string, 0, len(cand.PreferredLocations)+1)
	places = append(places, strings.ToLower(cand.LocationText))
	for _, p := range cand.PreferredLocations {
		places = append(places, strings.ToLower(p))
	}

	for _, loc := range c.Locations {
		want := strings.ToLower(loc)
		for _, p := range places {
			if strings.Contains(p, want) {
				return 1
			}
		}
	}
	return 0
}

type educationField struct{}

func (educationField) Name() string    { return "education" }
func (educationField) Weight() float64 { return WeightEducation }

func (educationField) Active(c criteria.SearchCriteria) bool { return len(c.EducationLevels) > 0 }

func (educationField) Match(c criteria.SearchCriteria, cand *models.Candidate) float64 {
	return binary(CheckEducationMatch(cand.Education, c.EducationLevels))
}

type availabilityField struct{}

func (availabilityField) Name() string    { return "availability" }
func (availabilityField) Weight() float64 { return WeightAvailability }

func (availabilityField) Active(c criteria.SearchCriteria) bool { return c.Availability != "" }

func (availabilityField) Match(c criteria.SearchCriteria, cand *models.Candidate) float64 {
	return binary(cand.Availability == c.Availability)
}

type salaryField struct{}

func (salaryField) Name() string    { return "salary" }
func (salaryField) Weight() float64 { return WeightSalary }

func (salaryField) Active(c criteria.SearchCriteria) bool { return c.SalaryConstrained() }

func (salaryField) Match(c criteria.SearchCriteria, cand *models.Candidate) float64 {
	ctc := cand.MinAnnualCTC
	return binary(c.SalaryRange.Min <= ctc && ctc <= c.SalaryRange.Max)
}

// CheckExperienceMatch reports whether years falls in any requested band:
// entry [0,2], mid (2,5], senior (5,10], exec (10,∞).
func CheckExperienceMatch(years float64, levels []criteria.ExperienceLevel) bool {
	if math.IsNaN(years) {
		return false
	}
	for _, level := range levels {
		var ok bool
		switch level {
		case criteria.ExperienceEntry:
			ok = years >= 0 && years <= 2
		case criteria.ExperienceMid:
			ok = years > 2 && years <= 5
		case criteria.ExperienceSenior:
			ok = years > 5 && years <= 10
		case criteria.ExperienceExec:
			ok = years > 10
		}
		if ok {
			return true
		}
	}
	return false
}

// Degree patterns are plain substring heuristics and knowingly over-match,
// e.g. "me" inside "mechanical" counts as a master's degree.
var educationPatterns = map[criteria.EducationLevel]*regexp.Regexp{
	criteria.EducationHighSchool: regexp.MustCompile(`high school|secondary`),
	criteria.EducationAssociate:  regexp.MustCompile(`associate`),
	criteria.EducationBachelor:   regexp.MustCompile(`bachelor|b\.?\s?tech|be|b\.?\s?sc`),
	criteria.EducationMaster:     regexp.MustCompile(`master|m\.?\s?tech|me|m\.?\s?sc`),
	criteria.EducationPhD:        regexp.MustCompile(`phd|ph\.d|doctorate`),
}

// CheckEducationMatch reports whether any education entry's degree matches
// any requested level.
func CheckEducationMatch(entries []models.Education, levels []criteria.EducationLevel) bool {
	for _, e := range entries {
		degree := strings.ToLower(e.Degree)
		if degree == "" {
			continue
		}
		for _, level := range levels {
			if re, ok := educationPatterns[level]; ok && re.MatchString(degree) {
				return true
			}
		}
	}
	return false
}

func binary(ok bool) float64 {
	if ok {
		return 1
	}
	return 0
}
