package postgres

import (
	"context"
	"fmt"

	"jobboard/internal/database"
	"jobboard/internal/domain/application"

	"github.com/google/uuid"
)

const applicationColumns = `a.id, a.job_id, a.user_id, a.email, a.name, a.phone, a.location,
	a.resume_file_id, a.resume_name, a.cover_letter_file_id, a.cover_letter_name, a.status, a.applied_at, a.updated_at`

const viewColumns = applicationColumns + `, j.title, j.company`

type ApplicationRepository struct {
	db database.DB
}

var _ application.Repository = (*ApplicationRepository)(nil)

func NewApplicationRepository(db database.DB) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

// CreateApplication stores the application and its uploads in one transaction.
func (r *ApplicationRepository) CreateApplication(ctx context.Context, in application.CreateInput) (application.Application, error) {
	appID := uuid.New()
	applicant := in.Applicant
	applicant.Resume = fileRefFor(in.Resume)
	applicant.CoverLetter = fileRefFor(in.CoverLetter)

	var a application.Application
	err := database.WithTx(ctx, r.db, func(tx database.Tx) error {
		var err error
		a, err = scanApplication(tx.QueryRow(ctx,
			`INSERT INTO applications AS a (id, job_id, user_id, email, name, phone, location,
				resume_file_id, resume_name, cover_letter_file_id, cover_letter_name, status)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
			 RETURNING `+applicationColumns,
			appID, in.JobID, in.UserID, applicant.Email, applicant.Name, applicant.Phone, applicant.Location,
			refID(applicant.Resume), refName(applicant.Resume),
			refID(applicant.CoverLetter), refName(applicant.CoverLetter),
			application.StatusPending,
		))
		if err != nil {
			if isUniqueViolation(err) {
				return application.ErrDuplicate
			}
			return fmt.Errorf("insert application: %w", err)
		}

		uploads := []struct {
			ref  *application.FileRef
			file *application.NewFile
		}{
			{applicant.Resume, in.Resume},
			{applicant.CoverLetter, in.CoverLetter},
		}
		for _, u := range uploads {
			if u.ref == nil {
				continue
			}
			_, err := tx.Exec(ctx,
				`INSERT INTO application_files (id, application_id, user_id, name, content_type, data)
				 VALUES ($1, $2, $3, $4, $5, $6)`,
				u.ref.FileID, appID, in.UserID, u.file.Name, u.file.ContentType, u.file.Data,
			)
			if err != nil {
				return fmt.Errorf("insert application file: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return application.Application{}, err
	}
	return a, nil
}

func (r *ApplicationRepository) GetApplication(ctx context.Context, id uuid.UUID) (application.View, error) {
	v, err := scanView(r.db.QueryRow(ctx,
		`SELECT `+viewColumns+` FROM applications a JOIN jobs j ON j.id = a.job_id WHERE a.id = $1`,
		id,
	))
	if err != nil {
		if isNoRows(err) {
			return application.View{}, application.ErrNotFound
		}
		return application.View{}, fmt.Errorf("get application: %w", err)
	}
	return v, nil
}

func (r *ApplicationRepository) ListApplications(ctx context.Context) ([]application.View, error) {
	return r.listViews(ctx,
		`SELECT `+viewColumns+` FROM applications a JOIN jobs j ON j.id = a.job_id ORDER BY a.applied_at DESC`,
	)
}

func (r *ApplicationRepository) ListApplicationsByUser(ctx context.Context, userID uuid.UUID) ([]application.View, error) {
	return r.listViews(ctx,
		`SELECT `+viewColumns+` FROM applications a JOIN jobs j ON j.id = a.job_id
		 WHERE a.user_id = $1 ORDER BY a.applied_at DESC`,
		userID,
	)
}

func (r *ApplicationRepository) ListApplicationsByJobs(ctx context.Context, jobIDs []uuid.UUID) ([]application.View, error) {
	if len(jobIDs) == 0 {
		return []application.View{}, nil
	}
	return r.listViews(ctx,
		`SELECT `+viewColumns+` FROM applications a JOIN jobs j ON j.id = a.job_id
		 WHERE a.job_id::text = ANY($1) ORDER BY a.applied_at DESC`,
		uuidStrings(jobIDs),
	)
}

func (r *ApplicationRepository) FindApplication(ctx context.Context, userID, jobID uuid.UUID) (application.Application, error) {
	a, err := scanApplication(r.db.QueryRow(ctx,
		`SELECT `+applicationColumns+` FROM applications a WHERE a.user_id = $1 AND a.job_id = $2`,
		userID, jobID,
	))
	if err != nil {
		if isNoRows(err) {
			return application.Application{}, application.ErrNotFound
		}
		return application.Application{}, fmt.Errorf("find application: %w", err)
	}
	return a, nil
}

func (r *ApplicationRepository) AppliedJobIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := r.db.Query(ctx, `SELECT job_id FROM applications WHERE user_id = $1`, userID)
	if err != nil {
		return nil, fmt.Errorf("applied job ids: %w", err)
	}
	defer rows.Close()

	out := make([]uuid.UUID, 0)
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *ApplicationRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (application.Application, error) {
	return r.getOne(ctx,
		`UPDATE applications AS a SET status = $2, updated_at = now() WHERE a.id = $1 RETURNING `+applicationColumns,
		id, status,
	)
}

func (r *ApplicationRepository) DeleteApplication(ctx context.Context, id uuid.UUID) (application.Application, error) {
	return r.getOne(ctx, `DELETE FROM applications AS a WHERE a.id = $1 RETURNING `+applicationColumns, id)
}

func (r *ApplicationRepository) CountApplications(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM applications`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count applications: %w", err)
	}
	return n, nil
}

func (r *ApplicationRepository) GetFile(ctx context.Context, id uuid.UUID) (application.File, error) {
	var f application.File
	err := r.db.QueryRow(ctx,
		`SELECT id, application_id, user_id, name, content_type, data FROM application_files WHERE id = $1`,
		id,
	).Scan(&f.ID, &f.ApplicationID, &f.UserID, &f.Name, &f.ContentType, &f.Data)
	if err != nil {
		if isNoRows(err) {
			return application.File{}, application.ErrFileNotFound
		}
		return application.File{}, fmt.Errorf("get application file: %w", err)
	}
	return f, nil
}

func (r *ApplicationRepository) getOne(ctx context.Context, query string, args ...any) (application.Application, error) {
	a, err := scanApplication(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if isNoRows(err) {
			return application.Application{}, application.ErrNotFound
		}
		return application.Application{}, fmt.Errorf("get application: %w", err)
	}
	return a, nil
}

func (r *ApplicationRepository) listViews(ctx context.Context, query string, args ...any) ([]application.View, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
	}
	defer rows.Close()

	out := make([]application.View, 0)
	for rows.Next() {
		v, err := scanView(rows)
		if err != nil {
			return nil, fmt.Errorf("scan application: %w", err)
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func fileRefFor(f *application.NewFile) *application.FileRef {
	if f == nil {
		return nil
	}
	return &application.FileRef{FileID: uuid.New(), Name: f.Name}
}

func refID(ref *application.FileRef) *uuid.UUID {
	if ref == nil {
		return nil
	}
	id := ref.FileID
	return &id
}

func refName(ref *application.FileRef) *string {
	if ref == nil {
		return nil
	}
	name := ref.Name
	return &name
}

func applicationDest(a *application.Application, resumeID, coverID **uuid.UUID, resumeName, coverName **string) []any {
	return []any{
		&a.ID, &a.JobID, &a.UserID, &a.Applicant.Email, &a.Applicant.Name, &a.Applicant.Phone, &a.Applicant.Location,
		resumeID, resumeName, coverID, coverName, &a.Status, &a.AppliedAt, &a.UpdatedAt,
	}
}

func attachRefs(a *application.Application, resumeID, coverID *uuid.UUID, resumeName, coverName *string) {
	if resumeID != nil {
		a.Applicant.Resume = &application.FileRef{FileID: *resumeID, Name: deref(resumeName)}
	}
	if coverID != nil {
		a.Applicant.CoverLetter = &application.FileRef{FileID: *coverID, Name: deref(coverName)}
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func scanApplication(row scanner) (application.Application, error) {
	var (
		a                     application.Application
		resumeID, coverID     *uuid.UUID
		resumeName, coverName *string
	)
	if err := row.Scan(applicationDest(&a, &resumeID, &coverID, &resumeName, &coverName)...); err != nil {
		return application.Application{}, err
	}
	attachRefs(&a, resumeID, coverID, resumeName, coverName)
	return a, nil
}

func scanView(row scanner) (application.View, error) {
	var (
		a                     application.Application
		v                     application.View
		resumeID, coverID     *uuid.UUID
		resumeName, coverName *string
	)
	dest := applicationDest(&a, &resumeID, &coverID, &resumeName, &coverName)
	dest = append(dest, &v.JobTitle, &v.JobCompany)
	if err := row.Scan(dest...); err != nil {
		return application.View{}, err
	}
	attachRefs(&a, resumeID, coverID, resumeName, coverName)

	v.ApplicationID = a.ID
	v.JobID = a.JobID
	v.UserID = a.UserID
	v.Status = a.Status
	v.AppliedAt = a.AppliedAt
	v.Applicant = a.Applicant
	return v, nil
}
