package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"jobboard/internal/database"
	"jobboard/internal/domain/job"

	"github.com/google/uuid"
)

const jobColumns = `id, owner_id, title, description, company, location, industry, job_type, salary,
	skills, requirements, responsibilities, posted_date, deadline, updated_at`

type JobRepository struct {
	db database.DB
}

var _ job.Repository = (*JobRepository)(nil)

func NewJobRepository(db database.DB) *JobRepository {
	return &JobRepository{db: db}
}

func (r *JobRepository) CreateJob(ctx context.Context, j job.Job) (job.Job, error) {
	if j.ID == uuid.Nil {
		j.ID = uuid.New()
	}
	if j.PostedDate.IsZero() {
		j.PostedDate = time.Now().UTC()
	}

	return r.getOne(ctx,
		`INSERT INTO jobs (id, owner_id, title, description, company, location, industry, job_type, salary,
			skills, requirements, responsibilities, posted_date, deadline, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $13)
		 RETURNING `+jobColumns,
		j.ID, j.OwnerID, j.Title, j.Description, j.Company, j.Location, j.Industry, j.JobType, j.Salary,
		nonNil(j.Skills), nonNil(j.Requirements), nonNil(j.Responsibilities), j.PostedDate, j.Deadline,
	)
}

func (r *JobRepository) GetJobByID(ctx context.Context, id uuid.UUID) (job.Job, error) {
	return r.getOne(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = $1`, id)
}

func (r *JobRepository) ListJobs(ctx context.Context) ([]job.Job, error) {
	return r.list(ctx, `SELECT `+jobColumns+` FROM jobs ORDER BY posted_date DESC, id`)
}

func (r *JobRepository) ListJobsByOwner(ctx context.Context, ownerID uuid.UUID) ([]job.Job, error) {
	return r.list(ctx, `SELECT `+jobColumns+` FROM jobs WHERE owner_id = $1 ORDER BY posted_date DESC, id`, ownerID)
}

// SearchJobs filters case-insensitively on the label lists and inclusively on
// the salary bounds. Jobs without a salary never satisfy a salary bound.
func (r *JobRepository) SearchJobs(ctx context.Context, f job.SearchFilter) ([]job.Job, error) {
	where, args := searchClause(f)
	q := `SELECT ` + jobColumns + ` FROM jobs`
	if where != "" {
		q += ` WHERE ` + where
	}
	q += ` ORDER BY posted_date DESC, id`
	return r.list(ctx, q, args...)
}

func searchClause(f job.SearchFilter) (string, []any) {
	conds := make([]string, 0, 5)
	args := make([]any, 0, 5)
	add := func(format string, v any) {
		args = append(args, v)
		conds = append(conds, fmt.Sprintf(format, len(args)))
	}

	if vals := lowerAll(f.JobTypes); len(vals) > 0 {
		add("lower(job_type) = ANY($%d)", vals)
	}
	if vals := lowerAll(f.Locations); len(vals) > 0 {
		add("lower(location) = ANY($%d)", vals)
	}
	if vals := lowerAll(f.Industries); len(vals) > 0 {
		add("lower(industry) = ANY($%d)", vals)
	}
	if f.SalaryMin != nil {
		add("salary >= $%d", *f.SalaryMin)
	}
	if f.SalaryMax != nil {
		add("salary <= $%d", *f.SalaryMax)
	}

	return strings.Join(conds, " AND "), args
}

func lowerAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.ToLower(strings.TrimSpace(s))
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

func (r *JobRepository) UpdateJob(ctx context.Context, id uuid.UUID, in job.Update) (job.Job, error) {
	if in.IsEmpty() {
		return r.GetJobByID(ctx, id)
	}

	sets := make([]string, 0, 12)
	args := []any{id}
	add := func(col string, v any) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}

	if in.Title != nil {
		add("title", *in.Title)
	}
	if in.Description != nil {
		add("description", *in.Description)
	}
	if in.Company != nil {
		add("company", *in.Company)
	}
	if in.Location != nil {
		add("location", *in.Location)
	}
	if in.Industry != nil {
		add("industry", *in.Industry)
	}
	if in.JobType != nil {
		add("job_type", *in.JobType)
	}
	if in.Salary != nil {
		add("salary", *in.Salary)
	}
	if in.Skills != nil {
		add("skills", in.Skills)
	}
	if in.Requirements != nil {
		add("requirements", in.Requirements)
	}
	if in.Responsibilities != nil {
		add("responsibilities", in.Responsibilities)
	}
	if in.Deadline != nil {
		add("deadline", *in.Deadline)
	}
	sets = append(sets, "updated_at = now()")

	return r.getOne(ctx,
		`UPDATE jobs SET `+strings.Join(sets, ", ")+` WHERE id = $1 RETURNING `+jobColumns,
		args...,
	)
}

func (r *JobRepository) DeleteJob(ctx context.Context, id uuid.UUID, ownerID *uuid.UUID) (job.Job, error) {
	if ownerID != nil {
		return r.getOne(ctx, `DELETE FROM jobs WHERE id = $1 AND owner_id = $2 RETURNING `+jobColumns, id, *ownerID)
	}
	return r.getOne(ctx, `DELETE FROM jobs WHERE id = $1 RETURNING `+jobColumns, id)
}

func (r *JobRepository) CountJobs(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM jobs`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count jobs: %w", err)
	}
	return n, nil
}

func (r *JobRepository) getOne(ctx context.Context, query string, args ...any) (job.Job, error) {
	j, err := scanJob(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if isNoRows(err) {
			return job.Job{}, job.ErrNotFound
		}
		return job.Job{}, fmt.Errorf("get job: %w", err)
	}
	return j, nil
}

func (r *JobRepository) list(ctx context.Context, query string, args ...any) ([]job.Job, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	defer rows.Close()

	out := make([]job.Job, 0)
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("scan job: %w", err)
		}
		out = append(out, j)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanJob(row scanner) (job.Job, error) {
	var j job.Job
	err := row.Scan(
		&j.ID, &j.OwnerID, &j.Title, &j.Description, &j.Company, &j.Location, &j.Industry, &j.JobType, &j.Salary,
		&j.Skills, &j.Requirements, &j.Responsibilities, &j.PostedDate, &j.Deadline, &j.UpdatedAt,
	)
	return j, err
}
