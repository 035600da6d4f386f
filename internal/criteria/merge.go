package criteria

import "slices"

// Merge combines ad-hoc user criteria with a saved job's requirements.
// Set fields are unioned; scalar fields set by the job override the user's.
func Merge(user, job SearchCriteria) SearchCriteria {
	out := SearchCriteria{
		SearchText:       user.SearchText,
		Skills:           textSet(concat(user.Skills, job.Skills)),
		Locations:        textSet(concat(user.Locations, job.Locations)),
		ExperienceLevels: union(user.ExperienceLevels, job.ExperienceLevels),
		WorkTypes:        union(user.WorkTypes, job.WorkTypes),
		JobTypes:         union(user.JobTypes, job.JobTypes),
		EducationLevels:  union(user.EducationLevels, job.EducationLevels),
		Availability:     user.Availability,
		SalaryRange:      user.SalaryRange,
	}

	if job.SearchText != "" {
		out.SearchText = job.SearchText
	}
	if job.Availability != "" {
		out.Availability = job.Availability
	}
	if job.SalaryConstrained() {
		out.SalaryRange = job.SalaryRange
	}

	return out
}

func union[T ~string](a, b []T) []T {
	seen := make(map[T]bool, len(a)+len(b))
	out := make([]T, 0, len(a)+len(b))
	for _, v := range concat(a, b) {
		if seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	slices.Sort(out)
	if len(out) == 0 {
		return nil
	}
	return out
}

func concat[T any](a, b []T) []T {
	out := make([]T, 0, len(a)+len(b))
	out = append(out, a...)
	return append(out, b...)
}
