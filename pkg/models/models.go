package models

import "time"

// Candidate is a job seeker profile as produced by the upstream profile system.
// The matcher treats it as read-only.
type Candidate struct {
	ID                   string      `json:"id" yaml:"id" validate:"omitempty,max=100"`
	Name                 string      `json:"name" yaml:"name" validate:"required,max=200"`
	Email                string      `json:"email" yaml:"email" validate:"omitempty,email"`
	Skills               []string    `json:"skills" yaml:"skills"`
	LocationText         string      `json:"location_text" yaml:"location_text"`
	TotalExperienceYears float64     `json:"total_experience_years" yaml:"total_experience_years" validate:"gte=0,lte=80"`
	SelectedWorkTypes    []string    `json:"selected_work_types" yaml:"selected_work_types"` // remote, hybrid, office
	JobMainType          string      `json:"job_main_type" yaml:"job_main_type"`             // fulltime, parttime, contract, internship
	PreferredLocations   []string    `json:"preferred_locations" yaml:"preferred_locations"`
	Education            []Education `json:"education" yaml:"education"`
	Availability         string      `json:"availability" yaml:"availability"`
	MinAnnualCTC         float64     `json:"min_annual_ctc" yaml:"min_annual_ctc" validate:"gte=0"`
	Active               bool        `json:"active" yaml:"active"`
	CreatedAt            time.Time   `json:"created_at" yaml:"-"`
	UpdatedAt            time.Time   `json:"updated_at" yaml:"-"`
}

// Education is a single education entry on a candidate profile
type Education struct {
	Degree string `json:"degree" yaml:"degree"`
}

// Job is a saved job opening whose requirements are kept as a raw filter payload
type Job struct {
	ID        int            `json:"id"`
	Title     string         `json:"title"`
	Company   string         `json:"company"`
	Criteria  map[string]any `json:"criteria"`
	CreatedAt time.Time      `json:"created_at"`
}
