package repo

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"resourcehub/src/core/domain"
	"resourcehub/src/core/ports"
	"resourcehub/src/infra/logger"
)

var _ ports.ResourceRepository = (*MemoryRepository)(nil)

// MemoryRepository keeps resources in process memory.
// A single RWMutex serializes writers, which makes every read-modify-write atomic.
type MemoryRepository struct {
	mu     sync.RWMutex
	byID   map[int64]domain.Resource
	order  []int64
	nextID int64
	now    func() time.Time
	log    *slog.Logger
}

// NewMemoryRepository constructs an empty in-memory repository.
func NewMemoryRepository(log *slog.Logger) *MemoryRepository {
	return &MemoryRepository{
		byID:   make(map[int64]domain.Resource),
		nextID: 1,
		now:    func() time.Time { return time.Now().UTC() },
		log:    log,
	}
}

func (r *MemoryRepository) Health(_ context.Context) error {
	return nil
}

func (r *MemoryRepository) FindByID(_ context.Context, id int64) (*domain.Resource, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	res, ok := r.byID[id]
	if !ok {
		return nil, domain.NewNotFoundError(id)
	}
	return &res, nil
}

func (r *MemoryRepository) FindPage(_ context.Context, page, pageSize int) ([]domain.Resource, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	total := int64(len(r.order))
	offset, ok := pageOffset(page, pageSize)
	if !ok || offset >= len(r.order) {
		return []domain.Resource{}, total, nil
	}
	end := min(offset+pageSize, len(r.order))

	items := make([]domain.Resource, 0, end-offset)
	for _, id := range r.order[offset:end] {
		items = append(items, r.byID[id])
	}
	return items, total, nil
}

func (r *MemoryRepository) Insert(_ context.Context, res domain.Resource) (*domain.Resource, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	res.ID = r.nextID
	res.CreatedAt = now
	res.UpdatedAt = now
	r.nextID++

	r.byID[res.ID] = res
	r.order = append(r.order, res.ID)
	logger.Debug(r.log, "resource inserted", "id", res.ID, "storage", "memory")
	return &res, nil
}

func (r *MemoryRepository) Replace(_ context.Context, id int64, res domain.Resource) (*domain.Resource, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.byID[id]
	if !ok {
		return nil, domain.NewNotFoundError(id)
	}
	next := current.WithMutableFields(res)
	next.UpdatedAt = r.now()
	r.byID[id] = next
	return &next, nil
}

func (r *MemoryRepository) Update(_ context.Context, id int64, mutate ports.MutateFunc) (*domain.Resource, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.byID[id]
	if !ok {
		return nil, domain.NewNotFoundError(id)
	}
	changed, err := mutate(current)
	if err != nil {
		return nil, err
	}
	next := current.WithMutableFields(changed)
	next.UpdatedAt = r.now()
	r.byID[id] = next
	return &next, nil
}

func (r *MemoryRepository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return domain.NewNotFoundError(id)
	}
	delete(r.byID, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	logger.Debug(r.log, "resource deleted", "id", id, "storage", "memory")
	return nil
}
