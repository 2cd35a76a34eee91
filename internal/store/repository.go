package store

import (
	"context"
	"errors"
	"fmt"
	"maps"

	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when no record has the requested identity.
	ErrNotFound = errors.New("store: record not found")
	// ErrDuplicate is returned when a unique attribute is already taken.
	ErrDuplicate = errors.New("store: duplicate record")
)

// Query is a set of equality predicates plus an optional sort order.
type Query struct {
	conds map[string]any
	order string
}

// Where starts a query with a single equality predicate.
func Where(column string, value any) Query {
	return Query{conds: map[string]any{column: value}}
}

// And returns a copy of q with one more predicate.
func (q Query) And(column string, value any) Query {
	conds := maps.Clone(q.conds)
	if conds == nil {
		conds = make(map[string]any, 1)
	}
	conds[column] = value
	return Query{conds: conds, order: q.order}
}

// OrderBy returns a copy of q sorted by the given SQL order clause.
func (q Query) OrderBy(order string) Query {
	q.conds = maps.Clone(q.conds)
	q.order = order
	return q
}

// Repository is keyed access to one table.
type Repository[T any] struct {
	db *gorm.DB
}

// NewRepository creates a repository for T over db.
func NewRepository[T any](db *gorm.DB) *Repository[T] {
	return &Repository[T]{db: db}
}

// Get loads the record with the given id.
func (r *Repository[T]) Get(ctx context.Context, id uint) (*T, error) {
	var out T
	if err := r.db.WithContext(ctx).First(&out, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: id %d", ErrNotFound, id)
		}
		return nil, err
	}
	return &out, nil
}

// List returns every record ordered by id.
func (r *Repository[T]) List(ctx context.Context) ([]T, error) {
	out := []T{}
	if err := r.db.WithContext(ctx).Order("id").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// ListBy returns the records matching every predicate in q. Results are
// ordered by id unless q carries an explicit order.
func (r *Repository[T]) ListBy(ctx context.Context, q Query) ([]T, error) {
	tx := r.db.WithContext(ctx)
	if len(q.conds) > 0 {
		tx = tx.Where(q.conds)
	}
	order := q.order
	if order == "" {
		order = "id"
	}

	out := []T{}
	if err := tx.Order(order).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// Save inserts the record when it has no identity yet and fully updates it
// otherwise. The assigned id is written back into entity.
func (r *Repository[T]) Save(ctx context.Context, entity *T) error {
	return r.db.WithContext(ctx).Save(entity).Error
}

// Delete removes the record with the given id.
func (r *Repository[T]) Delete(ctx context.Context, id uint) error {
	var model T
	res := r.db.WithContext(ctx).Delete(&model, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	return nil
}

// Count returns the number of records in the table.
func (r *Repository[T]) Count(ctx context.Context) (int64, error) {
	var model T
	var n int64
	if err := r.db.WithContext(ctx).Model(&model).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}
