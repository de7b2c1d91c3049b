package service

import (
	"context"

	"github.com/couchcryptid/disaster-helper/internal/domain"
	"github.com/couchcryptid/disaster-helper/internal/store"
)

// Profile stores the session's profile and first-visit flag.
type Profile struct {
	profile *store.Document[domain.ProfileInfo]
	visited *store.Document[bool]
}

func NewProfile(backend store.Backend) *Profile {
	return &Profile{
		profile: store.NewDocument[domain.ProfileInfo](backend, store.KeyProfile),
		visited: store.NewDocument[bool](backend, store.KeyVisited),
	}
}

// Get returns the stored profile; a session without one gets the zero value.
func (s *Profile) Get(ctx context.Context, session string) (domain.ProfileInfo, error) {
	return s.profile.Get(ctx, session)
}

// Save overwrites the profile wholesale.
func (s *Profile) Save(ctx context.Context, session string, p domain.ProfileInfo) (domain.ProfileInfo, error) {
	if err := s.profile.Save(ctx, session, p); err != nil {
		return domain.ProfileInfo{}, err
	}
	return p, nil
}

// Visited reports whether the session has seen the welcome screen.
func (s *Profile) Visited(ctx context.Context, session string) (bool, error) {
	return s.visited.Get(ctx, session)
}

func (s *Profile) SetVisited(ctx context.Context, session string, visited bool) error {
	return s.visited.Save(ctx, session, visited)
}
