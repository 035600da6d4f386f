package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/khrees2412/hirematch/pkg/models"
)

// Repository stores candidates and saved jobs in SQLite
type Repository struct {
	DB *sql.DB
}

// New wraps an open database handle
func New(db *sql.DB) *Repository {
	return &Repository{DB: db}
}

// ListOptions narrows ListCandidates
type ListOptions struct {
	ActiveOnly bool
	Limit      int
}

const candidateColumns = `id, name, email, skills, location_text, total_experience_years,
	selected_work_types, job_main_type, preferred_locations, education, availability,
	min_annual_ctc, active, created_at, updated_at`

// Candidate operations

// SaveCandidate inserts c, or replaces every field except created_at when a
// candidate with the same ID exists. An empty ID gets a fresh UUID.
func (r *Repository) SaveCandidate(ctx context.Context, c *models.Candidate) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	c.UpdatedAt = now

	query := `INSERT INTO candidates (` + candidateColumns + `)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			  ON CONFLICT(id) DO UPDATE SET
				name=excluded.name, email=excluded.email, skills=excluded.skills,
				location_text=excluded.location_text,
				total_experience_years=excluded.total_experience_years,
				selected_work_types=excluded.selected_work_types,
				job_main_type=excluded.job_main_type,
				preferred_locations=excluded.preferred_locations,
				education=excluded.education, availability=excluded.availability,
				min_annual_ctc=excluded.min_annual_ctc, active=excluded.active,
				updated_at=excluded.updated_at`
	_, err := r.DB.ExecContext(ctx, query, c.ID, c.Name, c.Email, encodeJSON(c.Skills),
		c.LocationText, c.TotalExperienceYears, encodeJSON(c.SelectedWorkTypes), c.JobMainType,
		encodeJSON(c.PreferredLocations), encodeJSON(c.Education), c.Availability,
		c.MinAnnualCTC, c.Active, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("save candidate %s: %w", c.ID, err)
	}
	return nil
}

func (r *Repository) GetCandidate(ctx context.Context, id string) (*models.Candidate, error) {
	query := `SELECT ` + candidateColumns + ` FROM candidates WHERE id=?`
	c, err := scanCandidate(r.DB.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("candidate %s: %w", id, models.ErrNotFound)
	}
	return c, err
}

// ListCandidates returns candidates, most recently updated first
func (r *Repository) ListCandidates(ctx context.Context, opts ListOptions) ([]*models.Candidate, error) {
	var sb strings.Builder
	sb.WriteString(`SELECT ` + candidateColumns + ` FROM candidates`)
	args := []any{}
	if opts.ActiveOnly {
		sb.WriteString(` WHERE active=1`)
	}
	sb.WriteString(` ORDER BY updated_at DESC, rowid DESC`)
	if opts.Limit > 0 {
		sb.WriteString(` LIMIT ?`)
		args = append(args, opts.Limit)
	}

	rows, err := r.DB.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	candidates := []*models.Candidate{}
	for rows.Next() {
		c, err := scanCandidate(rows)
		if err != nil {
			return nil, err
		}
		candidates = append(candidates, c)
	}
	return candidates, rows.Err()
}

// FetchCandidates returns the pool a search ranks. Inactive candidates are
// left out unless includeInactive is set.
func (r *Repository) FetchCandidates(ctx context.Context, includeInactive bool) ([]*models.Candidate, error) {
	return r.ListCandidates(ctx, ListOptions{ActiveOnly: !includeInactive})
}

func (r *Repository) SetCandidateActive(ctx context.Context, id string, active bool) error {
	query := `UPDATE candidates SET active=?, updated_at=? WHERE id=?`
	res, err := r.DB.ExecContext(ctx, query, active, time.Now().UTC(), id)
	if err != nil {
		return err
	}
	return requireAffected(res, "candidate "+id)
}

func (r *Repository) DeleteCandidate(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM candidates WHERE id=?`, id)
	if err != nil {
		return err
	}
	return requireAffected(res, "candidate "+id)
}

// Job operations

func (r *Repository) CreateJob(ctx context.Context, job *models.Job) error {
	if job.CreatedAt.IsZero() {
		job.CreatedAt = time.Now().UTC()
	}
	query := `INSERT INTO jobs (title, company, criteria, created_at) VALUES (?, ?, ?, ?)`
	result, err := r.DB.ExecContext(ctx, query, job.Title, job.Company, encodeJSON(job.Criteria), job.CreatedAt)
	if err != nil {
		return err
	}
	id, _ := result.LastInsertId()
	job.ID = int(id)
	return nil
}

func (r *Repository) GetJob(ctx context.Context, id int) (*models.Job, error) {
	query := `SELECT id, title, company, criteria, created_at FROM jobs WHERE id=?`
	job, err := scanJob(r.DB.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("job %d: %w", id, models.ErrNotFound)
	}
	return job, err
}

func (r *Repository) ListJobs(ctx context.Context) ([]*models.Job, error) {
	query := `SELECT id, title, company, criteria, created_at FROM jobs ORDER BY created_at DESC, id DESC`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	jobs := []*models.Job{}
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}
	return jobs, rows.Err()
}

func (r *Repository) DeleteJob(ctx context.Context, id int) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM jobs WHERE id=?`, id)
	if err != nil {
		return err
	}
	return requireAffected(res, fmt.Sprintf("job %d", id))
}

type scanner interface {
	Scan(dest ...any) error
}

func scanCandidate(s scanner) (*models.Candidate, error) {
	c := &models.Candidate{}
	var skills, workTypes, preferred, education string
	err := s.Scan(&c.ID, &c.Name, &c.Email, &skills, &c.LocationText, &c.TotalExperienceYears,
		&workTypes, &c.JobMainType, &preferred, &education, &c.Availability,
		&c.MinAnnualCTC, &c.Active, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}

	// Unreadable list columns load as empty; the matcher scores them as missing.
	decodeJSON(skills, &c.Skills)
	decodeJSON(workTypes, &c.SelectedWorkTypes)
	decodeJSON(preferred, &c.PreferredLocations)
	decodeJSON(education, &c.Education)
	return c, nil
}

func scanJob(s scanner) (*models.Job, error) {
	job := &models.Job{}
	var criteria string
	if err := s.Scan(&job.ID, &job.Title, &job.Company, &criteria, &job.CreatedAt); err != nil {
		return nil, err
	}
	decodeJSON(criteria, &job.Criteria)
	return job, nil
}

func requireAffected(res sql.Result, what string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", what, models.ErrNotFound)
	}
	return nil
}

func encodeJSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil || string(b) == "null" {
		switch v.(type) {
		case map[string]any:
			return "{}"
		}
		return "[]"
	}
	return string(b)
}

func decodeJSON(s string, out any) {
	if s == "" {
		return
	}
	_ = json.Unmarshal([]byte(s), out)
}
