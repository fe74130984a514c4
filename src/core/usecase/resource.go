package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"resourcehub/src/core/domain"
	"resourcehub/src/core/dto"
	"resourcehub/src/core/ports"
)

// PageSettings bounds list requests.
type PageSettings struct {
	DefaultPageSize int
	MaxPageSize     int
}

// DefaultPageSettings mirrors the configuration defaults.
func DefaultPageSettings() PageSettings {
	return PageSettings{
		DefaultPageSize: domain.DefaultPageSize,
		MaxPageSize:     domain.MaxPageSize,
	}
}

// Page is one slice of the resource collection.
type Page struct {
	Items      []dto.ReadDTO
	Page       int
	PageSize   int
	Total      int64
	TotalPages int
}

// ResourceService orchestrates validation, mapping and storage for resources.
type ResourceService struct {
	repo  ports.ResourceRepository
	pages PageSettings
	log   *slog.Logger
}

// NewResourceService creates a ResourceService over the given repository.
// Zero or inconsistent page settings fall back to the defaults.
func NewResourceService(repo ports.ResourceRepository, pages PageSettings, log *slog.Logger) *ResourceService {
	if pages.DefaultPageSize < 1 {
		pages.DefaultPageSize = domain.DefaultPageSize
	}
	if pages.MaxPageSize < pages.DefaultPageSize {
		pages.MaxPageSize = max(domain.MaxPageSize, pages.DefaultPageSize)
	}
	return &ResourceService{repo: repo, pages: pages, log: log}
}

// Create validates the payload and stores a new resource.
func (s *ResourceService) Create(ctx context.Context, in dto.CreateDTO) (*dto.ReadDTO, error) {
	entity, err := dto.FromCreateDTO(in)
	if err != nil {
		return nil, err
	}

	created, err := s.repo.Insert(ctx, entity)
	if err != nil {
		return nil, s.internal("insert resource", err)
	}

	s.log.Info("resource created", "id", created.ID)
	out := dto.ToReadDTO(*created)
	return &out, nil
}

// List returns one page of resources in insertion order.
// page < 1 becomes 1; pageSize < 1 becomes the default and is capped at the maximum.
// A page past the end is empty, not an error.
func (s *ResourceService) List(ctx context.Context, page, pageSize int) (*Page, error) {
	page, pageSize = s.normalizePage(page, pageSize)

	items, total, err := s.repo.FindPage(ctx, page, pageSize)
	if err != nil {
		return nil, s.internal("list resources", err)
	}

	return &Page{
		Items:      dto.ToReadDTOs(items),
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: int((total + int64(pageSize) - 1) / int64(pageSize)),
	}, nil
}

func (s *ResourceService) normalizePage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = s.pages.DefaultPageSize
	}
	if pageSize > s.pages.MaxPageSize {
		pageSize = s.pages.MaxPageSize
	}
	return page, pageSize
}

// GetByID returns a single resource.
func (s *ResourceService) GetByID(ctx context.Context, id int64) (*dto.ReadDTO, error) {
	res, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.internal("find resource", err)
	}
	out := dto.ToReadDTO(*res)
	return &out, nil
}

// UpdateFull replaces every mutable field of an existing resource.
func (s *ResourceService) UpdateFull(ctx context.Context, id int64, in dto.UpdateDTO) error {
	replacement, err := dto.ApplyFullUpdate(domain.Resource{ID: id}, in)
	if err != nil {
		return err
	}

	if _, err := s.repo.Replace(ctx, id, replacement); err != nil {
		return s.internal("replace resource", err)
	}

	s.log.Info("resource replaced", "id", id)
	return nil
}

// UpdatePartial applies only the fields present in the patch.
// The merge runs under the storage lock for id so concurrent writers cannot interleave.
func (s *ResourceService) UpdatePartial(ctx context.Context, id int64, patch dto.PatchDTO) error {
	if patch.IsEmpty() {
		// Nothing to write, but the resource must still exist.
		if _, err := s.repo.FindByID(ctx, id); err != nil {
			return s.internal("find resource", err)
		}
		return nil
	}

	_, err := s.repo.Update(ctx, id, func(current domain.Resource) (domain.Resource, error) {
		return dto.ApplyPatch(current, patch)
	})
	if err != nil {
		return s.internal("patch resource", err)
	}

	s.log.Info("resource patched", "id", id)
	return nil
}

// Delete removes a resource. Deleting an already deleted id returns domain.ErrNotFound.
func (s *ResourceService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return s.internal("delete resource", err)
	}

	s.log.Info("resource deleted", "id", id)
	return nil
}

// internal passes domain errors through untouched and logs and wraps anything else.
func (s *ResourceService) internal(op string, err error) error {
	if domain.IsDomainError(err) {
		return err
	}
	s.log.Error("storage failure", "op", op, "error", err)
	return fmt.Errorf("%s: %w", op, err)
}
