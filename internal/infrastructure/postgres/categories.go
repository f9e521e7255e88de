package postgres

import (
	"context"
	"time"

	"github.com/go-auth-api/internal/domain"
	"github.com/jackc/pgx/v5"
)

const categoryColumns = `id, name, description, created_at, updated_at, deleted_at`

type CategoryRepo struct {
	db DB
}

func NewCategoryRepo(db DB) *CategoryRepo {
	return &CategoryRepo{db: db}
}

func scanCategory(row pgx.Row) (*domain.Category, error) {
	var c domain.Category
	if err := row.Scan(&c.CategoryID, &c.Name, &c.Description, &c.CreatedAt, &c.UpdatedAt, &c.DeletedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CategoryRepo) Create(ctx context.Context, c *domain.Category) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO categories (`+categoryColumns+`) VALUES ($1, $2, $3, $4, $5, NULL)`,
		c.CategoryID, c.Name, c.Description, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		return wrap(err, "CATEGORY_CREATE_FAILED", "create category")
	}
	return nil
}

func (r *CategoryRepo) Get(ctx context.Context, categoryID string, withDeleted bool) (*domain.Category, error) {
	q := `SELECT ` + categoryColumns + ` FROM categories WHERE id = $1`
	if !withDeleted {
		q += ` AND deleted_at IS NULL`
	}
	c, err := scanCategory(r.db.QueryRow(ctx, q, categoryID))
	if err != nil {
		return nil, wrap(err, "CATEGORY_GET_FAILED", "get category")
	}
	return c, nil
}

func (r *CategoryRepo) List(ctx context.Context, q domain.PageQuery) ([]*domain.Category, int, error) {
	where := `WHERE ($1 = '' OR name ILIKE '%' || $1 || '%')`
	if !q.WithDeleted {
		where += ` AND deleted_at IS NULL`
	}

	var total int
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM categories `+where, q.Keyword).Scan(&total); err != nil {
		return nil, 0, wrap(err, "CATEGORY_LIST_FAILED", "count categories")
	}

	rows, err := r.db.Query(ctx,
		`SELECT `+categoryColumns+` FROM categories `+where+` ORDER BY name LIMIT $2 OFFSET $3`,
		q.Keyword, q.Size, q.Offset())
	if err != nil {
		return nil, 0, wrap(err, "CATEGORY_LIST_FAILED", "list categories")
	}
	defer rows.Close()

	categories := []*domain.Category{}
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, 0, wrap(err, "CATEGORY_LIST_FAILED", "scan category row")
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, wrap(err, "CATEGORY_LIST_FAILED", "iterate categories")
	}
	return categories, total, nil
}

func (r *CategoryRepo) Update(ctx context.Context, c *domain.Category) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE categories SET name = $2, description = $3, updated_at = $4
		 WHERE id = $1 AND deleted_at IS NULL`,
		c.CategoryID, c.Name, c.Description, c.UpdatedAt,
	)
	if err != nil {
		return wrap(err, "CATEGORY_UPDATE_FAILED", "update category")
	}
	if tag.RowsAffected() == 0 {
		return wrap(pgx.ErrNoRows, "CATEGORY_UPDATE_FAILED", "update category")
	}
	return nil
}

func (r *CategoryRepo) SoftDelete(ctx context.Context, categoryID string, at time.Time) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE categories SET deleted_at = $2 WHERE id = $1 AND deleted_at IS NULL`, categoryID, at)
	if err != nil {
		return wrap(err, "CATEGORY_DELETE_FAILED", "soft delete category")
	}
	if tag.RowsAffected() == 0 {
		return wrap(pgx.ErrNoRows, "CATEGORY_DELETE_FAILED", "soft delete category")
	}
	return nil
}

func (r *CategoryRepo) Restore(ctx context.Context, categoryID string) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE categories SET deleted_at = NULL WHERE id = $1 AND deleted_at IS NOT NULL`, categoryID)
	if err != nil {
		return wrap(err, "CATEGORY_RESTORE_FAILED", "restore category")
	}
	if tag.RowsAffected() == 0 {
		return wrap(pgx.ErrNoRows, "CATEGORY_RESTORE_FAILED", "restore category")
	}
	return nil
}

func (r *CategoryRepo) Delete(ctx context.Context, categoryID string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM categories WHERE id = $1`, categoryID)
	if err != nil {
		return wrap(err, "CATEGORY_DESTROY_FAILED", "delete category")
	}
	if tag.RowsAffected() == 0 {
		return wrap(pgx.ErrNoRows, "CATEGORY_DESTROY_FAILED", "delete category")
	}
	return nil
}
