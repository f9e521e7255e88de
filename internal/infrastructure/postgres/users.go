package postgres

import (
	"context"
	"time"

	"github.com/go-auth-api/internal/domain"
	"github.com/jackc/pgx/v5"
)

const userColumns = `id, name, email, password, phone, is_verified, google_id, apple_id, picture, created_at, updated_at, deleted_at`

type UserRepo struct {
	db DB
}

func NewUserRepo(db DB) *UserRepo {
	return &UserRepo{db: db}
}

// scanUser reads one users row. A NULL password (social-only account) leaves
// PasswordHash empty.
func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	var passwordHash *string
	err := row.Scan(
		&u.UserID, &u.Name, &u.Email, &passwordHash, &u.Phone, &u.IsVerified,
		&u.GoogleID, &u.AppleID, &u.Picture, &u.CreatedAt, &u.UpdatedAt, &u.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	if passwordHash != nil {
		u.PasswordHash = *passwordHash
	}
	return &u, nil
}

func nullablePassword(hash string) *string {
	if hash == "" {
		return nil
	}
	return &hash
}

func (r *UserRepo) Create(ctx context.Context, u *domain.User) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO users (`+userColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NULL)`,
		u.UserID, u.Name, u.Email, nullablePassword(u.PasswordHash), u.Phone, u.IsVerified,
		u.GoogleID, u.AppleID, u.Picture, u.CreatedAt, u.UpdatedAt,
	)
	if err != nil {
		return wrap(err, "USER_CREATE_FAILED", "create user")
	}
	return nil
}

// Get loads a user by id. Soft-deleted users are only returned when withDeleted is set.
func (r *UserRepo) Get(ctx context.Context, userID string, withDeleted bool) (*domain.User, error) {
	q := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	if !withDeleted {
		q += ` AND deleted_at IS NULL`
	}
	u, err := scanUser(r.db.QueryRow(ctx, q, userID))
	if err != nil {
		return nil, wrap(err, "USER_GET_FAILED", "get user")
	}
	return u, nil
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	u, err := scanUser(r.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1 AND deleted_at IS NULL`, email))
	if err != nil {
		return nil, wrap(err, "USER_GET_FAILED", "get user by email")
	}
	return u, nil
}

func (r *UserRepo) GetByPhone(ctx context.Context, phone string) (*domain.User, error) {
	u, err := scanUser(r.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE phone = $1 AND deleted_at IS NULL`, phone))
	if err != nil {
		return nil, wrap(err, "USER_GET_FAILED", "get user by phone")
	}
	return u, nil
}

// List returns one page of users and the total number of matches.
func (r *UserRepo) List(ctx context.Context, q domain.PageQuery) ([]*domain.User, int, error) {
	where := `WHERE ($1 = '' OR name ILIKE '%' || $1 || '%' OR email ILIKE '%' || $1 || '%' OR phone ILIKE '%' || $1 || '%')`
	if !q.WithDeleted {
		where += ` AND deleted_at IS NULL`
	}

	var total int
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM users `+where, q.Keyword).Scan(&total); err != nil {
		return nil, 0, wrap(err, "USER_LIST_FAILED", "count users")
	}

	rows, err := r.db.Query(ctx,
		`SELECT `+userColumns+` FROM users `+where+` ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		q.Keyword, q.Size, q.Offset())
	if err != nil {
		return nil, 0, wrap(err, "USER_LIST_FAILED", "list users")
	}
	defer rows.Close()

	users := []*domain.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, wrap(err, "USER_LIST_FAILED", "scan user row")
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, wrap(err, "USER_LIST_FAILED", "iterate users")
	}
	return users, total, nil
}

// Update writes the mutable fields of a non-deleted user.
func (r *UserRepo) Update(ctx context.Context, u *domain.User) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE users SET name = $2, email = $3, password = $4, phone = $5, picture = $6, updated_at = $7
		 WHERE id = $1 AND deleted_at IS NULL`,
		u.UserID, u.Name, u.Email, nullablePassword(u.PasswordHash), u.Phone, u.Picture, u.UpdatedAt,
	)
	if err != nil {
		return wrap(err, "USER_UPDATE_FAILED", "update user")
	}
	if tag.RowsAffected() == 0 {
		return wrap(pgx.ErrNoRows, "USER_UPDATE_FAILED", "update user")
	}
	return nil
}

func (r *UserRepo) SoftDelete(ctx context.Context, userID string, at time.Time) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE users SET deleted_at = $2 WHERE id = $1 AND deleted_at IS NULL`, userID, at)
	if err != nil {
		return wrap(err, "USER_DELETE_FAILED", "soft delete user")
	}
	if tag.RowsAffected() == 0 {
		return wrap(pgx.ErrNoRows, "USER_DELETE_FAILED", "soft delete user")
	}
	return nil
}

func (r *UserRepo) Restore(ctx context.Context, userID string) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE users SET deleted_at = NULL WHERE id = $1 AND deleted_at IS NOT NULL`, userID)
	if err != nil {
		return wrap(err, "USER_RESTORE_FAILED", "restore user")
	}
	if tag.RowsAffected() == 0 {
		return wrap(pgx.ErrNoRows, "USER_RESTORE_FAILED", "restore user")
	}
	return nil
}

// Delete removes the row permanently.
func (r *UserRepo) Delete(ctx context.Context, userID string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, userID)
	if err != nil {
		return wrap(err, "USER_DESTROY_FAILED", "delete user")
	}
	if tag.RowsAffected() == 0 {
		return wrap(pgx.ErrNoRows, "USER_DESTROY_FAILED", "delete user")
	}
	return nil
}
