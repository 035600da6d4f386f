package criteria

import (
	"math"
	"slices"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/cast"
	"go.uber.org/zap"
)

// Payload keys understood by the normalizer. Lookup ignores case, "_" and "-",
// so "work_type" and "WorkType" resolve to KeyWorkType as well.
const (
	KeySearchText   = "searchText"
	KeySkills       = "skills"
	KeyLocations    = "locations"
	KeyExperience   = "experience"
	KeyWorkType     = "workType"
	KeyJobType      = "jobType"
	KeySalaryRange  = "salaryRange"
	KeyEducation    = "education"
	KeyAvailability = "availability"
	KeyJobCriteria  = "jobCriteria"
)

var experienceAliases = map[string]ExperienceLevel{
	"entry":        ExperienceEntry,
	"entrylevel":   ExperienceEntry,
	"junior":       ExperienceEntry,
	"mid":          ExperienceMid,
	"midlevel":     ExperienceMid,
	"intermediate": ExperienceMid,
	"senior":       ExperienceSenior,
	"exec":         ExperienceExec,
	"executive":    ExperienceExec,
}

var workTypeAliases = map[string]WorkType{
	"remote":   WorkRemote,
	"hybrid":   WorkHybrid,
	"office":   WorkOffice,
	"onsite":   WorkOffice,
	"inoffice": WorkOffice,
}

var jobTypeAliases = map[string]JobType{
	"fulltime":   JobFullTime,
	"parttime":   JobPartTime,
	"contract":   JobContract,
	"internship": JobInternship,
	"intern":     JobInternship,
}

var educationAliases = map[string]EducationLevel{
	"highschool": EducationHighSchool,
	"secondary":  EducationHighSchool,
	"associate":  EducationAssociate,
	"associates": EducationAssociate,
	"bachelor":   EducationBachelor,
	"bachelors":  EducationBachelor,
	"master":     EducationMaster,
	"masters":    EducationMaster,
	"phd":        EducationPhD,
	"doctorate":  EducationPhD,
}

// payload mirrors RawFilterInput with every field left untyped so that each
// one can be coerced, and dropped, independently.
type payload struct {
	SearchText   any `mapstructure:"searchText"`
	Skills       any `mapstructure:"skills"`
	Locations    any `mapstructure:"locations"`
	Experience   any `mapstructure:"experience"`
	WorkType     any `mapstructure:"workType"`
	JobType      any `mapstructure:"jobType"`
	SalaryRange  any `mapstructure:"salaryRange"`
	Education    any `mapstructure:"education"`
	Availability any `mapstructure:"availability"`
	JobCriteria  any `mapstructure:"jobCriteria"`
}

// Normalizer turns raw filter payloads into SearchCriteria.
// Logger is optional and only receives debug entries for dropped fields.
type Normalizer struct {
	Logger *zap.Logger
}

// Normalize uses a Normalizer without logging.
func Normalize(raw RawFilterInput) SearchCriteria {
	return Normalizer{}.Normalize(raw)
}

// NormalizeRequest uses a Normalizer without logging.
func NormalizeRequest(raw RawFilterInput) SearchCriteria {
	return Normalizer{}.NormalizeRequest(raw)
}

// Normalize coerces raw into canonical criteria. It never fails: fields that
// cannot be coerced are dropped and their criterion stays inactive.
// jobCriteria is ignored here, see NormalizeRequest.
func (n Normalizer) Normalize(raw RawFilterInput) SearchCriteria {
	c, _ := n.normalize(raw)
	return c
}

// NormalizeRequest normalizes raw and, when it carries a jobCriteria object,
// merges the normalized job requirements into the result.
func (n Normalizer) NormalizeRequest(raw RawFilterInput) SearchCriteria {
	c, p := n.normalize(raw)
	if p.JobCriteria == nil {
		return c
	}

	var nested map[string]any
	if err := decode(p.JobCriteria, &nested, false); err != nil {
		n.dropped(KeyJobCriteria, err)
		return c
	}

	job, _ := n.normalize(nested)
	return Merge(c, job)
}

func (n Normalizer) normalize(raw RawFilterInput) (SearchCriteria, payload) {
	c := SearchCriteria{SalaryRange: DefaultSalaryRange}

	var p payload
	if len(raw) == 0 {
		return c, p
	}
	if err := decode(map[string]any(raw), &p, false); err != nil {
		n.dropped("payload", err)
		return c, p
	}

	if p.SearchText != nil {
		if s, err := cast.ToStringE(p.SearchText); err == nil {
			c.SearchText = strings.TrimSpace(s)
		} else {
			n.dropped(KeySearchText, err)
		}
	}

	c.Skills = textSet(n.strings(KeySkills, p.Skills))
	c.Locations = textSet(n.strings(KeyLocations, p.Locations))
	c.ExperienceLevels = enumSet(n.strings(KeyExperience, p.Experience), experienceAliases)
	c.WorkTypes = enumSet(n.strings(KeyWorkType, p.WorkType), workTypeAliases)
	c.JobTypes = enumSet(n.strings(KeyJobType, p.JobType), jobTypeAliases)
	c.EducationLevels = enumSet(n.strings(KeyEducation, p.Education), educationAliases)
	c.Availability = n.availability(p.Availability)

	if p.SalaryRange != nil {
		if r, ok := salaryRange(p.SalaryRange); ok {
			c.SalaryRange = r
		} else {
			n.dropped(KeySalaryRange, nil)
		}
	}

	return c, p
}

func (n Normalizer) strings(key string, v any) []string {
	if v == nil {
		return nil
	}
	var out []string
	if err := decode(v, &out, true); err != nil {
		n.dropped(key, err)
		return nil
	}
	return out
}

func (n Normalizer) availability(v any) string {
	if v == nil {
		return ""
	}
	if s, err := cast.ToStringE(v); err == nil {
		return strings.TrimSpace(s)
	}
	for _, s := range n.strings(KeyAvailability, v) {
		if s = strings.TrimSpace(s); s != "" {
			return s
		}
	}
	return ""
}

func (n Normalizer) dropped(key string, err error) {
	if n.Logger == nil {
		return
	}
	fields := []zap.Field{zap.String("field", key)}
	if err != nil {
		fields = append(fields, zap.Error(err))
	}
	n.Logger.Debug("dropping malformed filter field", fields...)
}

// salaryRange accepts [min, max] (numbers or numeric strings, also "min,max")
// or an object with min and max keys.
func salaryRange(v any) (SalaryRange, bool) {
	var pair []any
	if err := decode(v, &pair, true); err == nil && len(pair) == 2 {
		return salaryBounds(pair[0], pair[1])
	}

	var obj struct {
		Min any `mapstructure:"min"`
		Max any `mapstructure:"max"`
	}
	if err := decode(v, &obj, false); err == nil && obj.Min != nil && obj.Max != nil {
		return salaryBounds(obj.Min, obj.Max)
	}

	return DefaultSalaryRange, false
}

func salaryBounds(lo, hi any) (SalaryRange, bool) {
	minV, ok := toNumber(lo)
	if !ok {
		return DefaultSalaryRange, false
	}
	maxV, ok := toNumber(hi)
	if !ok {
		return DefaultSalaryRange, false
	}
	if minV > maxV {
		minV, maxV = maxV, minV
	}
	if maxV <= 0 {
		return DefaultSalaryRange, false
	}
	return SalaryRange{Min: minV, Max: maxV}, true
}

func toNumber(v any) (float64, bool) {
	if s, ok := v.(string); ok {
		v = strings.TrimSpace(s)
	}
	f, err := cast.ToFloat64E(v)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// textSet trims, drops empties and deduplicates case-insensitively, keeping
// the first spelling seen. The result is sorted case-insensitively.
func textSet(values []string) []string {
	seen := make(map[string]bool, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		key := strings.ToLower(v)
		if v == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, v)
	}
	slices.SortFunc(out, func(a, b string) int {
		return strings.Compare(strings.ToLower(a), strings.ToLower(b))
	})
	if len(out) == 0 {
		return nil
	}
	return out
}

func enumSet[T ~string](values []string, aliases map[string]T) []T {
	seen := make(map[T]bool, len(values))
	out := make([]T, 0, len(values))
	for _, v := range values {
		e, ok := aliases[enumKey(v)]
		if !ok || seen[e] {
			continue
		}
		seen[e] = true
		out = append(out, e)
	}
	slices.Sort(out)
	if len(out) == 0 {
		return nil
	}
	return out
}

// ParseWorkType maps a free-form work type such as "On-site" to its canonical value.
func ParseWorkType(s string) (WorkType, bool) {
	w, ok := workTypeAliases[enumKey(s)]
	return w, ok
}

// ParseJobType maps a free-form job type such as "Full Time" to its canonical value.
func ParseJobType(s string) (JobType, bool) {
	j, ok := jobTypeAliases[enumKey(s)]
	return j, ok
}

func enumKey(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-', '_', '.':
			return -1
		}
		return r
	}, strings.ToLower(strings.TrimSpace(s)))
}

func matchKey(mapKey, fieldName string) bool {
	return enumKey(mapKey) == enumKey(fieldName)
}

func decode(input, out any, split bool) error {
	cfg := &mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		MatchName:        matchKey,
		Result:           out,
	}
	if split {
		cfg.DecodeHook = mapstructure.StringToSliceHookFunc(",")
	}
	d, err := mapstructure.NewDecoder(cfg)
	if err != nil {
		return err
	}
	return d.Decode(input)
}
