package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"jobboard/internal/database"
	"jobboard/internal/domain/user"

	"github.com/google/uuid"
)

const userColumns = `id, email, name, password_hash, phone, is_admin, is_employer, location, experience,
	skills, pref_job_types, pref_industries, pref_locations, pref_salary,
	resume_file_id, resume_name, interactions, reset_token, reset_token_expiry, created_at, updated_at`

type UserRepository struct {
	db database.DB
}

var _ user.Repository = (*UserRepository)(nil)

func NewUserRepository(db database.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) CreateUser(ctx context.Context, u user.User) error {
	prefs := user.Preferences{}
	if u.Preferences != nil {
		prefs = *u.Preferences
	}

	_, err := r.db.Exec(ctx,
		`INSERT INTO users (id, email, name, password_hash, phone, is_admin, is_employer, location, experience,
			skills, pref_job_types, pref_industries, pref_locations, pref_salary, interactions, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $16)`,
		u.ID, u.Email, u.Name, u.PasswordHash, u.Phone, u.IsAdmin, u.IsEmployer, u.Location, u.Experience,
		nonNil(u.Skills), nonNil(prefs.JobTypes), nonNil(prefs.Industries), nonNil(prefs.Locations), prefs.Salary,
		uuidStrings(u.Interactions), u.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return user.ErrEmailTaken
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *UserRepository) GetUserByID(ctx context.Context, id uuid.UUID) (user.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (user.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
}

func (r *UserRepository) GetUserByResetToken(ctx context.Context, token string, now time.Time) (user.User, error) {
	return r.getOne(ctx,
		`SELECT `+userColumns+` FROM users WHERE reset_token = $1 AND reset_token_expiry > $2`,
		token, now,
	)
}

func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	if err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`, email).Scan(&exists); err != nil {
		if isNoRows(err) {
			return false, nil
		}
		return false, err
	}
	return exists, nil
}

func (r *UserRepository) ListUsers(ctx context.Context) ([]user.User, error) {
	return r.list(ctx, `SELECT `+userColumns+` FROM users WHERE is_admin = FALSE ORDER BY created_at DESC`)
}

func (r *UserRepository) ListJobSeekers(ctx context.Context) ([]user.User, error) {
	return r.list(ctx,
		`SELECT `+userColumns+` FROM users WHERE is_admin = FALSE AND is_employer = FALSE ORDER BY created_at ASC`,
	)
}

func (r *UserRepository) CountJobSeekers(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM users WHERE is_admin = FALSE AND is_employer = FALSE`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count job seekers: %w", err)
	}
	return n, nil
}

func (r *UserRepository) UpdateProfile(ctx context.Context, id uuid.UUID, in user.ProfileUpdate) (user.User, error) {
	sets := make([]string, 0, 10)
	args := []any{id}
	add := func(col string, v any) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}

	if in.Name != nil {
		add("name", *in.Name)
	}
	if in.Phone != nil {
		add("phone", *in.Phone)
	}
	if in.Location != nil {
		add("location", *in.Location)
	}
	if in.Experience != nil {
		add("experience", *in.Experience)
	}
	if in.Skills != nil {
		add("skills", in.Skills)
	}
	if in.Preferences != nil {
		add("pref_job_types", nonNil(in.Preferences.JobTypes))
		add("pref_industries", nonNil(in.Preferences.Industries))
		add("pref_locations", nonNil(in.Preferences.Locations))
		add("pref_salary", in.Preferences.Salary)
	}
	if in.Resume != nil {
		add("resume_file_id", in.Resume.FileID)
		add("resume_name", in.Resume.Name)
	}

	if len(sets) == 0 {
		return r.GetUserByID(ctx, id)
	}
	sets = append(sets, "updated_at = now()")

	return r.getOne(ctx,
		`UPDATE users SET `+strings.Join(sets, ", ")+` WHERE id = $1 RETURNING `+userColumns,
		args...,
	)
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	n, err := r.db.Exec(ctx,
		`UPDATE users SET password_hash = $2, updated_at = now() WHERE id = $1`,
		id, passwordHash,
	)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	if n == 0 {
		return user.ErrNotFound
	}
	return nil
}

func (r *UserRepository) SetResetToken(ctx context.Context, id uuid.UUID, token string, expiresAt time.Time) error {
	n, err := r.db.Exec(ctx,
		`UPDATE users SET reset_token = $2, reset_token_expiry = $3, updated_at = now() WHERE id = $1`,
		id, token, expiresAt,
	)
	if err != nil {
		return fmt.Errorf("set reset token: %w", err)
	}
	if n == 0 {
		return user.ErrNotFound
	}
	return nil
}

func (r *UserRepository) ClearResetToken(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.Exec(ctx,
		`UPDATE users SET reset_token = NULL, reset_token_expiry = NULL, updated_at = now() WHERE id = $1`,
		id,
	)
	if err != nil {
		return fmt.Errorf("clear reset token: %w", err)
	}
	return nil
}

func (r *UserRepository) ClearExpiredResetTokens(ctx context.Context, now time.Time) (int64, error) {
	n, err := r.db.Exec(ctx,
		`UPDATE users SET reset_token = NULL, reset_token_expiry = NULL
		 WHERE reset_token IS NOT NULL AND reset_token_expiry <= $1`,
		now,
	)
	if err != nil {
		return 0, fmt.Errorf("clear expired reset tokens: %w", err)
	}
	return n, nil
}

// AppendInteraction records jobID once. It reports false when the job was
// already recorded for the user.
func (r *UserRepository) AppendInteraction(ctx context.Context, id uuid.UUID, jobID uuid.UUID) (bool, error) {
	n, err := r.db.Exec(ctx,
		`UPDATE users SET interactions = array_append(interactions, $2), updated_at = now()
		 WHERE id = $1 AND NOT ($2 = ANY(interactions))`,
		id, jobID.String(),
	)
	if err != nil {
		return false, fmt.Errorf("append interaction: %w", err)
	}
	if n > 0 {
		return true, nil
	}

	var exists bool
	if err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)`, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("append interaction: %w", err)
	}
	if !exists {
		return false, user.ErrNotFound
	}
	return false, nil
}

func (r *UserRepository) DeleteUser(ctx context.Context, id uuid.UUID) (user.User, error) {
	return r.getOne(ctx, `DELETE FROM users WHERE id = $1 RETURNING `+userColumns, id)
}

// UpsertResume stores the user's single resume file and points the profile at it.
func (r *UserRepository) UpsertResume(ctx context.Context, f user.File) (user.File, error) {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	err := database.WithTx(ctx, r.db, func(tx database.Tx) error {
		err := tx.QueryRow(ctx,
			`INSERT INTO user_files (id, user_id, name, content_type, data)
			 VALUES ($1, $2, $3, $4, $5)
			 ON CONFLICT (user_id) DO UPDATE
			 SET name = EXCLUDED.name, content_type = EXCLUDED.content_type, data = EXCLUDED.data, created_at = now()
			 RETURNING id`,
			f.ID, f.UserID, f.Name, f.ContentType, f.Data,
		).Scan(&f.ID)
		if err != nil {
			return fmt.Errorf("upsert resume: %w", err)
		}

		n, err := tx.Exec(ctx,
			`UPDATE users SET resume_file_id = $2, resume_name = $3, updated_at = now() WHERE id = $1`,
			f.UserID, f.ID, f.Name,
		)
		if err != nil {
			return fmt.Errorf("link resume: %w", err)
		}
		if n == 0 {
			return user.ErrNotFound
		}
		return nil
	})
	if err != nil {
		return user.File{}, err
	}
	return f, nil
}

func (r *UserRepository) GetFile(ctx context.Context, fileID uuid.UUID) (user.File, error) {
	return r.getFile(ctx, `SELECT id, user_id, name, content_type, data FROM user_files WHERE id = $1`, fileID)
}

func (r *UserRepository) GetFileByUserID(ctx context.Context, userID uuid.UUID) (user.File, error) {
	return r.getFile(ctx, `SELECT id, user_id, name, content_type, data FROM user_files WHERE user_id = $1`, userID)
}

func (r *UserRepository) getFile(ctx context.Context, query string, arg any) (user.File, error) {
	var f user.File
	err := r.db.QueryRow(ctx, query, arg).Scan(&f.ID, &f.UserID, &f.Name, &f.ContentType, &f.Data)
	if err != nil {
		if isNoRows(err) {
			return user.File{}, user.ErrFileNotFound
		}
		return user.File{}, fmt.Errorf("get user file: %w", err)
	}
	return f, nil
}

func (r *UserRepository) getOne(ctx context.Context, query string, args ...any) (user.User, error) {
	u, err := scanUser(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if isNoRows(err) {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

func (r *UserRepository) list(ctx context.Context, query string, args ...any) ([]user.User, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	out := make([]user.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanUser(row scanner) (user.User, error) {
	var (
		u            user.User
		prefs        user.Preferences
		resumeID     *uuid.UUID
		resumeName   *string
		interactions []string
	)
	err := row.Scan(
		&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.Phone, &u.IsAdmin, &u.IsEmployer, &u.Location, &u.Experience,
		&u.Skills, &prefs.JobTypes, &prefs.Industries, &prefs.Locations, &prefs.Salary,
		&resumeID, &resumeName, &interactions, &u.ResetToken, &u.ResetTokenExpiry, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return user.User{}, err
	}

	if !prefs.IsZero() {
		u.Preferences = &prefs
	}
	if resumeID != nil {
		ref := user.FileRef{FileID: *resumeID}
		if resumeName != nil {
			ref.Name = *resumeName
		}
		u.Resume = &ref
	}
	u.Interactions = parseUUIDs(interactions)
	return u, nil
}
