package criteria

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNormalizeEmpty(t *testing.T) {
	for _, raw := range []RawFilterInput{nil, {}} {
		c := Normalize(raw)
		assert.True(t, c.IsEmpty())
		assert.Equal(t, DefaultSalaryRange, c.SalaryRange)
		assert.False(t, c.SalaryConstrained())
	}
}

func TestNormalizeSetFields(t *testing.T) {
	tests := []struct {
		name  string
		raw   RawFilterInput
		check func(t *testing.T, c SearchCriteria)
	}{
		{
			name: "skills from array are trimmed deduplicated and sorted",
			raw:  RawFilterInput{"skills": []any{" Python", "go", "python", "", "Go "}},
			check: func(t *testing.T, c SearchCriteria) {
				assert.Equal(t, []string{"go", "Python"}, c.Skills)
			},
		},
		{
			name: "skills from comma separated string",
			raw:  RawFilterInput{"skills": "React, Node.js ,,TypeScript"},
			check: func(t *testing.T, c SearchCriteria) {
				assert.Equal(t, []string{"Node.js", "React", "TypeScript"}, c.Skills)
			},
		},
		{
			name: "locations deduplicate ignoring case and keep the first spelling",
			raw:  RawFilterInput{"locations": []string{"pune", "Delhi", "PUNE", " Pune "}},
			check: func(t *testing.T, c SearchCriteria) {
				assert.Equal(t, []string{"Delhi", "pune"}, c.Locations)
			},
		},
		{
			name: "single scalar becomes a one element set",
			raw:  RawFilterInput{"locations": "Bangalore"},
			check: func(t *testing.T, c SearchCriteria) {
				assert.Equal(t, []string{"Bangalore"}, c.Locations)
			},
		},
		{
			name: "enum aliases are canonicalised and unknown values dropped",
			raw: RawFilterInput{
				"experience": []string{"Senior", "junior", "guru"},
				"workType":   []string{"On-Site", "remote", "REMOTE"},
				"jobType":    "Full Time, part-time, freelance",
				"education":  []string{"Masters", "High School", "doctorate"},
			},
			check: func(t *testing.T, c SearchCriteria) {
				assert.Equal(t, []ExperienceLevel{ExperienceEntry, ExperienceSenior}, c.ExperienceLevels)
				assert.Equal(t, []WorkType{WorkOffice, WorkRemote}, c.WorkTypes)
				assert.Equal(t, []JobType{JobFullTime, JobPartTime}, c.JobTypes)
				assert.Equal(t, []EducationLevel{EducationHighSchool, EducationMaster, EducationPhD}, c.EducationLevels)
			},
		},
		{
			name: "empty array leaves criterion inactive",
			raw:  RawFilterInput{"skills": []string{}, "workType": ""},
			check: func(t *testing.T, c SearchCriteria) {
				assert.Nil(t, c.Skills)
				assert.Nil(t, c.WorkTypes)
				assert.True(t, c.IsEmpty())
			},
		},
		{
			name: "snake case keys are accepted",
			raw:  RawFilterInput{"work_type": "hybrid", "job_type": "contract", "search_text": " golang "},
			check: func(t *testing.T, c SearchCriteria) {
				assert.Equal(t, []WorkType{WorkHybrid}, c.WorkTypes)
				assert.Equal(t, []JobType{JobContract}, c.JobTypes)
				assert.Equal(t, "golang", c.SearchText)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, Normalize(tt.raw))
		})
	}
}

func TestNormalizeSalaryRange(t *testing.T) {
	tests := []struct {
		name   string
		value  any
		expect SalaryRange
	}{
		{name: "numeric pair", value: []any{50000, 100000}, expect: SalaryRange{Min: 50000, Max: 100000}},
		{name: "float slice", value: []float64{1000.5, 2000}, expect: SalaryRange{Min: 1000.5, Max: 2000}},
		{name: "numeric strings", value: []any{" 40000", "90000"}, expect: SalaryRange{Min: 40000, Max: 90000}},
		{name: "comma string", value: "30000,60000", expect: SalaryRange{Min: 30000, Max: 60000}},
		{name: "object", value: map[string]any{"min": 10, "max": "20"}, expect: SalaryRange{Min: 10, Max: 20}},
		{name: "reversed bounds are swapped", value: []int{90000, 10000}, expect: SalaryRange{Min: 10000, Max: 90000}},
		{name: "zero max falls back to default", value: []int{0, 0}, expect: DefaultSalaryRange},
		{name: "negative max falls back to default", value: []int{-10, -5}, expect: DefaultSalaryRange},
		{name: "wrong arity falls back to default", value: []int{1, 2, 3}, expect: DefaultSalaryRange},
		{name: "non numeric falls back to default", value: []any{"lots", 5}, expect: DefaultSalaryRange},
		{name: "bool falls back to default", value: true, expect: DefaultSalaryRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Normalize(RawFilterInput{"salaryRange": tt.value})
			assert.Equal(t, tt.expect, c.SalaryRange)
		})
	}
}

func TestNormalizeAvailability(t *testing.T) {
	assert.Equal(t, "15 days", Normalize(RawFilterInput{"availability": "  15 days "}).Availability)
	assert.Equal(t, "", Normalize(RawFilterInput{"availability": "   "}).Availability)
	assert.Equal(t, "immediate", Normalize(RawFilterInput{"availability": []any{"", "immediate"}}).Availability)
	assert.Equal(t, "", Normalize(RawFilterInput{"availability": map[string]any{"x": 1}}).Availability)
}

func TestNormalizeDropsMalformedFieldOnly(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	n := Normalizer{Logger: zap.New(core)}

	c := n.Normalize(RawFilterInput{
		"skills":   map[string]any{"nested": true},
		"workType": []string{"remote"},
	})

	assert.Nil(t, c.Skills)
	assert.Equal(t, []WorkType{WorkRemote}, c.WorkTypes)

	entries := logs.FilterMessage("dropping malformed filter field").All()
	require.Len(t, entries, 1)
	assert.Equal(t, KeySkills, entries[0].ContextMap()["field"])
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []RawFilterInput{
		{},
		{"skills": "Go, python, GO", "locations": []string{"Pune", "pune", "Delhi"}},
		{
			"searchText":   "backend",
			"experience":   []string{"mid", "senior"},
			"workType":     "remote",
			"jobType":      []string{"contract"},
			"education":    "bachelor",
			"availability": "1 month",
			"salaryRange":  []any{"120000", 60000},
		},
	}

	for _, raw := range inputs {
		first := Normalize(raw)
		second := Normalize(first.Raw())
		assert.Equal(t, first, second)
	}
}

func TestNormalizeRequestMergesJobCriteria(t *testing.T) {
	raw := RawFilterInput{
		"skills":       []string{"React"},
		"workType":     "remote",
		"availability": "immediate",
		"jobCriteria": map[string]any{
			"skills":       []string{"TypeScript", "react"},
			"workType":     "hybrid",
			"availability": "15 days",
			"salaryRange":  []int{50000, 80000},
		},
	}

	c := NormalizeRequest(raw)

	assert.Equal(t, []string{"React", "TypeScript"}, c.Skills)
	assert.Equal(t, []WorkType{WorkHybrid, WorkRemote}, c.WorkTypes)
	assert.Equal(t, "15 days", c.Availability)
	assert.Equal(t, SalaryRange{Min: 50000, Max: 80000}, c.SalaryRange)

	// Plain Normalize leaves jobCriteria alone.
	plain := Normalize(raw)
	assert.Equal(t, []string{"React"}, plain.Skills)
	assert.Equal(t, "immediate", plain.Availability)
}

func TestNormalizeRequestMalformedJobCriteria(t *testing.T) {
	c := NormalizeRequest(RawFilterInput{"skills": "Go", "jobCriteria": "not an object"})
	assert.Equal(t, []string{"Go"}, c.Skills)
}
