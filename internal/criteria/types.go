package criteria

// ExperienceLevel is a seniority band requested by a search
type ExperienceLevel string

const (
	ExperienceEntry  ExperienceLevel = "entry"
	ExperienceMid    ExperienceLevel = "mid"
	ExperienceSenior ExperienceLevel = "senior"
	ExperienceExec   ExperienceLevel = "exec"
)

// WorkType is where a candidate is willing to work
type WorkType string

const (
	WorkRemote WorkType = "remote"
	WorkHybrid WorkType = "hybrid"
	WorkOffice WorkType = "office"
)

// JobType is the kind of engagement a candidate is looking for
type JobType string

const (
	JobFullTime   JobType = "fulltime"
	JobPartTime   JobType = "parttime"
	JobContract   JobType = "contract"
	JobInternship JobType = "internship"
)

// EducationLevel is a degree level requested by a search
type EducationLevel string

const (
	EducationHighSchool EducationLevel = "highschool"
	EducationAssociate  EducationLevel = "associate"
	EducationBachelor   EducationLevel = "bachelor"
	EducationMaster     EducationLevel = "master"
	EducationPhD        EducationLevel = "phd"
)

// RawFilterInput is the loosely typed filter payload received from a client.
// Recognised keys: searchText, skills, locations, experience, workType,
// jobType, salaryRange, education, availability, jobCriteria.
type RawFilterInput map[string]any

// SalaryRange holds inclusive annual salary bounds
type SalaryRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// DefaultSalaryRange is the sentinel meaning "salary is not constrained".
var DefaultSalaryRange = SalaryRange{Min: 0, Max: 100000}

// SearchCriteria is the canonical form of a search request.
//
// Set-valued fields are sorted and deduplicated; an empty slice means the
// criterion is inactive. Values are shared between copies, so callers must
// not modify the slices after normalization.
type SearchCriteria struct {
	SearchText       string            `json:"searchText,omitempty"`
	Skills           []string          `json:"skills"`
	Locations        []string          `json:"locations"`
	ExperienceLevels []ExperienceLevel `json:"experience"`
	WorkTypes        []WorkType        `json:"workType"`
	JobTypes         []JobType         `json:"jobType"`
	EducationLevels  []EducationLevel  `json:"education"`
	Availability     string            `json:"availability,omitempty"`
	SalaryRange      SalaryRange       `json:"salaryRange"`
}

// SalaryConstrained reports whether the salary range differs from the default sentinel.
func (c SearchCriteria) SalaryConstrained() bool {
	return c.SalaryRange != DefaultSalaryRange
}

// IsEmpty reports whether no criterion is active.
func (c SearchCriteria) IsEmpty() bool {
	return len(c.Skills) == 0 &&
		len(c.Locations) == 0 &&
		len(c.ExperienceLevels) == 0 &&
		len(c.WorkTypes) == 0 &&
		len(c.JobTypes) == 0 &&
		len(c.EducationLevels) == 0 &&
		c.Availability == "" &&
		!c.SalaryConstrained()
}

// Raw converts canonical criteria back into a filter payload.
// Normalizing the result yields the same criteria.
func (c SearchCriteria) Raw() RawFilterInput {
	raw := RawFilterInput{
		KeySalaryRange: []float64{c.SalaryRange.Min, c.SalaryRange.Max},
	}
	if c.SearchText != "" {
		raw[KeySearchText] = c.SearchText
	}
	if len(c.Skills) > 0 {
		raw[KeySkills] = append([]string(nil), c.Skills...)
	}
	if len(c.Locations) > 0 {
		raw[KeyLocations] = append([]string(nil), c.Locations...)
	}
	if len(c.ExperienceLevels) > 0 {
		raw[KeyExperience] = toStrings(c.ExperienceLevels)
	}
	if len(c.WorkTypes) > 0 {
		raw[KeyWorkType] = toStrings(c.WorkTypes)
	}
	if len(c.JobTypes) > 0 {
		raw[KeyJobType] = toStrings(c.JobTypes)
	}
	if len(c.EducationLevels) > 0 {
		raw[KeyEducation] = toStrings(c.EducationLevels)
	}
	if c.Availability != "" {
		raw[KeyAvailability] = c.Availability
	}
	return raw
}

func toStrings[T ~string](in []T) []string {
	out := make([]string, len(in))
	for i, v := range in {
		out[i] = string(v)
	}
	return out
}
