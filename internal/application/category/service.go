package category

import (
	"context"
	"errors"
	"time"

	"github.com/go-auth-api/internal/domain"
	"github.com/go-auth-api/internal/pkg/id"
)

var (
	errDuplicate  = domain.NewError(domain.ErrConflict, "Category with this name already exists!")
	errNotFound   = domain.NewError(domain.ErrNotFound, "Category not found!")
	errNotDeleted = domain.NewError(domain.ErrBadRequest, "Category is not deleted!")
)

type Service interface {
	List(ctx context.Context, q domain.PageQuery) ([]*domain.Category, domain.PageMeta, error)
	Get(ctx context.Context, categoryID string) (*domain.Category, error)
	Create(ctx context.Context, input domain.CategoryInput) (*domain.Category, error)
	Update(ctx context.Context, categoryID string, input domain.UpdateCategoryInput) (*domain.Category, error)
	Restore(ctx context.Context, categoryID string) (*domain.Category, error)
	Delete(ctx context.Context, categoryID string) error // soft delete
	Destroy(ctx context.Context, categoryID string) error
}

type categoryStore interface {
	List(ctx context.Context, q domain.PageQuery) ([]*domain.Category, int, error)
	Get(ctx context.Context, categoryID string, withDeleted bool) (*domain.Category, error)
	Create(ctx context.Context, c *domain.Category) error
	Update(ctx context.Context, c *domain.Category) error
	SoftDelete(ctx context.Context, categoryID string, at time.Time) error
	Restore(ctx context.Context, categoryID string) error
	Delete(ctx context.Context, categoryID string) error
}

type service struct {
	repo categoryStore
}

func NewService(repo categoryStore) Service {
	return &service{repo: repo}
}

func (s *service) List(ctx context.Context, q domain.PageQuery) ([]*domain.Category, domain.PageMeta, error) {
	categories, total, err := s.repo.List(ctx, q)
	if err != nil {
		return nil, domain.PageMeta{}, err
	}
	return categories, domain.NewPageMeta(total, q), nil
}

func (s *service) Get(ctx context.Context, categoryID string) (*domain.Category, error) {
	return s.load(ctx, categoryID, false)
}

func (s *service) Create(ctx context.Context, input domain.CategoryInput) (*domain.Category, error) {
	now := time.Now().UTC()
	c := &domain.Category{
		CategoryID:  id.New(),
		Name:        input.Name,
		Description: input.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, mapConflict(err)
	}
	return c, nil
}

func (s *service) Update(ctx context.Context, categoryID string, input domain.UpdateCategoryInput) (*domain.Category, error) {
	c, err := s.load(ctx, categoryID, false)
	if err != nil {
		return nil, err
	}
	if input.Name != nil {
		c.Name = *input.Name
	}
	if input.Description != nil {
		c.Description = input.Description
	}
	c.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, mapConflict(err)
	}
	return c, nil
}

func (s *service) Restore(ctx context.Context, categoryID string) (*domain.Category, error) {
	c, err := s.load(ctx, categoryID, true)
	if err != nil {
		return nil, err
	}
	if c.DeletedAt == nil {
		return nil, errNotDeleted
	}
	if err := s.repo.Restore(ctx, categoryID); err != nil {
		return nil, err
	}
	c.DeletedAt = nil
	return c, nil
}

func (s *service) Delete(ctx context.Context, categoryID string) error {
	if _, err := s.load(ctx, categoryID, false); err != nil {
		return err
	}
	return s.repo.SoftDelete(ctx, categoryID, time.Now().UTC())
}

func (s *service) Destroy(ctx context.Context, categoryID string) error {
	if _, err := s.load(ctx, categoryID, true); err != nil {
		return err
	}
	return s.repo.Delete(ctx, categoryID)
}

func (s *service) load(ctx context.Context, categoryID string, withDeleted bool) (*domain.Category, error) {
	c, err := s.repo.Get(ctx, categoryID, withDeleted)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, errNotFound
	}
	return c, err
}

func mapConflict(err error) error {
	if errors.Is(err, domain.ErrConflict) {
		return errDuplicate
	}
	return err
}
