package service

import (
	"context"
	"fmt"

	"github.com/couchcryptid/disaster-helper/internal/domain"
	"github.com/couchcryptid/disaster-helper/internal/store"
)

// Contacts manages each session's contact list. The emergency services are
// listed first and are never stored.
type Contacts struct {
	contacts *store.Collection[domain.Contact]
}

func NewContacts(backend store.Backend) *Contacts {
	return &Contacts{contacts: store.NewCollection(backend, store.KeyContacts, domain.SeedContacts)}
}

// List returns emergency services followed by the user's contacts, both
// filtered by type and text.
func (s *Contacts) List(ctx context.Context, session string, typ domain.ContactType, query string) ([]domain.Contact, error) {
	user, err := s.contacts.GetAll(ctx, session)
	if err != nil {
		return nil, err
	}
	out := []domain.Contact{}
	for _, c := range append(domain.EmergencyServices(), user...) {
		if c.Matches(typ, query) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *Contacts) Create(ctx context.Context, session string, in domain.ContactInput) (domain.Contact, error) {
	c, err := domain.NewContact(in)
	if err != nil {
		return domain.Contact{}, err
	}
	user, err := s.contacts.GetAll(ctx, session)
	if err != nil {
		return domain.Contact{}, err
	}
	if err := s.contacts.SaveAll(ctx, session, append(user, c)); err != nil {
		return domain.Contact{}, err
	}
	return c, nil
}

// Update edits a user contact. Emergency services return domain.ErrImmutable.
func (s *Contacts) Update(ctx context.Context, session, id string, in domain.ContactInput) (domain.Contact, error) {
	if domain.IsEmergencyService(id) {
		return domain.Contact{}, fmt.Errorf("contact %s: %w", id, domain.ErrImmutable)
	}
	user, err := s.contacts.GetAll(ctx, session)
	if err != nil {
		return domain.Contact{}, err
	}
	i := indexOf(user, func(c domain.Contact) bool { return c.ID == id })
	if i < 0 {
		return domain.Contact{}, fmt.Errorf("contact %s: %w", id, domain.ErrNotFound)
	}
	updated, err := user[i].WithInput(in)
	if err != nil {
		return domain.Contact{}, err
	}
	user[i] = updated
	if err := s.contacts.SaveAll(ctx, session, user); err != nil {
		return domain.Contact{}, err
	}
	return updated, nil
}

// Delete removes a user contact. Emergency services return domain.ErrImmutable.
func (s *Contacts) Delete(ctx context.Context, session, id string) error {
	if domain.IsEmergencyService(id) {
		return fmt.Errorf("contact %s: %w", id, domain.ErrImmutable)
	}
	user, err := s.contacts.GetAll(ctx, session)
	if err != nil {
		return err
	}
	i := indexOf(user, func(c domain.Contact) bool { return c.ID == id })
	if i < 0 {
		return fmt.Errorf("contact %s: %w", id, domain.ErrNotFound)
	}
	return s.contacts.SaveAll(ctx, session, append(user[:i], user[i+1:]...))
}
