package service

import (
	"context"
	"fmt"

	"github.com/couchcryptid/disaster-helper/internal/domain"
	"github.com/couchcryptid/disaster-helper/internal/store"
)

// Resources manages each session's shelter and supply directory.
type Resources struct {
	resources *store.Collection[domain.Resource]
}

func NewResources(backend store.Backend) *Resources {
	return &Resources{resources: store.NewCollection(backend, store.KeyResources, domain.SeedResources)}
}

// List returns the resources matching the type and text filters, in stored order.
func (s *Resources) List(ctx context.Context, session string, typ domain.ResourceType, query string) ([]domain.Resource, error) {
	all, err := s.resources.GetAll(ctx, session)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Resource, 0, len(all))
	for _, r := range all {
		if r.Matches(typ, query) {
			out = append(out, r)
		}
	}
	return out, nil
}

// Create validates in and appends the new resource.
func (s *Resources) Create(ctx context.Context, session string, in domain.ResourceInput) (domain.Resource, error) {
	r, err := domain.NewResource(in)
	if err != nil {
		return domain.Resource{}, err
	}
	all, err := s.resources.GetAll(ctx, session)
	if err != nil {
		return domain.Resource{}, err
	}
	if err := s.resources.SaveAll(ctx, session, append(all, r)); err != nil {
		return domain.Resource{}, err
	}
	return r, nil
}

func (s *Resources) Update(ctx context.Context, session, id string, in domain.ResourceInput) (domain.Resource, error) {
	all, err := s.resources.GetAll(ctx, session)
	if err != nil {
		return domain.Resource{}, err
	}
	i := indexOf(all, func(r domain.Resource) bool { return r.ID == id })
	if i < 0 {
		return domain.Resource{}, fmt.Errorf("resource %s: %w", id, domain.ErrNotFound)
	}
	updated, err := all[i].WithInput(in)
	if err != nil {
		return domain.Resource{}, err
	}
	all[i] = updated
	if err := s.resources.SaveAll(ctx, session, all); err != nil {
		return domain.Resource{}, err
	}
	return updated, nil
}

func (s *Resources) Delete(ctx context.Context, session, id string) error {
	all, err := s.resources.GetAll(ctx, session)
	if err != nil {
		return err
	}
	i := indexOf(all, func(r domain.Resource) bool { return r.ID == id })
	if i < 0 {
		return fmt.Errorf("resource %s: %w", id, domain.ErrNotFound)
	}
	return s.resources.SaveAll(ctx, session, append(all[:i], all[i+1:]...))
}
