package seeder

import (
	"context"
	"fmt"
	"time"

	"jobboard/internal/database"
	"jobboard/internal/usecase/auth"

	"github.com/google/uuid"
)

const demoEmployerEmail = "employer@demo.local"

// DemoJobsSeeder adds a demo employer with a handful of postings so the
// recommendation endpoints have something to rank on a fresh database.
type DemoJobsSeeder struct{}

func (DemoJobsSeeder) Name() string { return "demo_jobs" }

func (DemoJobsSeeder) Run(ctx context.Context, db database.DB) error {
	if err := EnsureTableColumns(ctx, db, "jobs",
		"id", "owner_id", "title", "description", "company", "location",
		"industry", "job_type", "salary", "skills", "posted_date",
	); err != nil {
		return err
	}

	hash, err := auth.HashPassword(uuid.NewString())
	if err != nil {
		return err
	}

	return database.WithTx(ctx, db, func(tx database.Tx) error {
		var ownerID uuid.UUID
		err := tx.QueryRow(ctx,
			`INSERT INTO users (id, email, name, password_hash, is_employer)
			 VALUES (gen_random_uuid(), $1, 'Demo Employer', $2, TRUE)
			 ON CONFLICT (email) DO UPDATE SET is_employer = TRUE
			 RETURNING id`,
			demoEmployerEmail, hash,
		).Scan(&ownerID)
		if err != nil {
			return fmt.Errorf("demo employer: %w", err)
		}

		var existing int
		if err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM jobs WHERE owner_id = $1`, ownerID).Scan(&existing); err != nil {
			return err
		}
		if existing > 0 {
			return nil
		}

		now := time.Now().UTC()
		for i, it := range demoJobs {
			_, err := tx.Exec(ctx,
				`INSERT INTO jobs (id, owner_id, title, description, company, location, industry, job_type, salary, skills, posted_date, updated_at)
				 VALUES (gen_random_uuid(), $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $10)`,
				ownerID, it.title, it.description, it.company, it.location, it.industry, it.jobType, salaryOrNil(it.salary), it.skills,
				now.Add(-time.Duration(i)*time.Hour),
			)
			if err != nil {
				return fmt.Errorf("insert %q: %w", it.title, err)
			}
		}
		return nil
	})
}

func salaryOrNil(v float64) *float64 {
	if v <= 0 {
		return nil
	}
	return &v
}

type demoJob struct {
	title       string
	description string
	company     string
	location    string
	industry    string
	jobType     string
	salary      float64
	skills      []string
}

var demoJobs = []demoJob{
	{
		title:       "Backend Engineer (Go)",
		description: "Build and maintain Go services, REST APIs and PostgreSQL-backed systems.",
		company:     "Northwind Labs",
		location:    "Berlin",
		industry:    "Software",
		jobType:     "Full-time",
		salary:      85000,
		skills:      []string{"Go", "PostgreSQL", "Redis", "Docker"},
	},
	{
		title:       "Frontend Developer",
		description: "Develop web apps with React and TypeScript against a Go backend.",
		company:     "Northwind Labs",
		location:    "Remote",
		industry:    "Software",
		jobType:     "Full-time",
		salary:      70000,
		skills:      []string{"React", "TypeScript", "JavaScript", "CSS"},
	},
	{
		title:       "DevOps Engineer",
		description: "Operate CI/CD, Docker, Kubernetes and cloud infrastructure for production workloads.",
		company:     "CloudWorks",
		location:    "Amsterdam",
		industry:    "Cloud",
		jobType:     "Contract",
		salary:      90000,
		skills:      []string{"Kubernetes", "Docker", "Terraform", "AWS"},
	},
	{
		title:       "Data Engineer",
		description: "Build data pipelines, manage warehouses and tune PostgreSQL for analytics.",
		company:     "InsightWorks",
		location:    "Berlin",
		industry:    "Analytics",
		jobType:     "Full-time",
		salary:      80000,
		skills:      []string{"Python", "SQL", "PostgreSQL", "Airflow"},
	},
	{
		title:       "QA Intern",
		description: "Write automated tests for web and API surfaces.",
		company:     "CloudWorks",
		location:    "Remote",
		industry:    "Cloud",
		jobType:     "Internship",
		skills:      []string{"Testing", "JavaScript"},
	},
}
