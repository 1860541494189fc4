package client

import (
	"context"
	"net/http"
)

// Resource is a typed CRUD client for one REST collection.
// Every method performs exactly one round trip; there are no retries,
// timeouts or caches beyond what ctx and the underlying Doer impose.
type Resource[T any] struct {
	t          *transport
	collection string
	item       func(id int64) string
}

// List fetches the full collection.
func (r *Resource[T]) List(ctx context.Context) ([]T, error) {
	return r.list(ctx, r.collection)
}

// Get fetches one record. A 404 yields an error matching apierror.ErrNotFound.
func (r *Resource[T]) Get(ctx context.Context, id int64) (*T, error) {
	var out T
	if err := r.t.do(ctx, http.MethodGet, r.item(id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Create posts a draft and returns the stored record with its server id.
func (r *Resource[T]) Create(ctx context.Context, draft T) (*T, error) {
	var out T
	if err := r.t.do(ctx, http.MethodPost, r.collection, nil, draft, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Update replaces the record with the given id.
func (r *Resource[T]) Update(ctx context.Context, id int64, v T) (*T, error) {
	var out T
	if err := r.t.do(ctx, http.MethodPut, r.item(id), nil, v, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete removes the record with the given id.
func (r *Resource[T]) Delete(ctx context.Context, id int64) error {
	return r.t.do(ctx, http.MethodDelete, r.item(id), nil, nil, nil)
}

func (r *Resource[T]) list(ctx context.Context, path string) ([]T, error) {
	var out []T
	if err := r.t.do(ctx, http.MethodGet, path, nil, nil, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}
