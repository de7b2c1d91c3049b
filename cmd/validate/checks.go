package main

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/couchcryptid/disaster-helper/internal/domain"
	"github.com/couchcryptid/disaster-helper/internal/store"
)

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func validateSnapshot(snap store.Snapshot) []*phase {
	return []*phase{
		validateKeys(snap),
		validateAlerts(snap),
		validateResources(snap),
		validateContacts(snap),
		validateChat(snap),
		validateCart(snap, domain.DefaultCatalog()),
	}
}

func validateKeys(snap store.Snapshot) *phase {
	p := &phase{name: "Known collection keys"}
	for key := range snap {
		if !slices.Contains(store.Keys(), key) {
			p.errorf("unknown collection %q", key)
		}
	}
	return p
}

// decode unmarshals a collection. A missing key is not an error.
func decode[T any](p *phase, snap store.Snapshot, key string) ([]T, bool) {
	raw, ok := snap[key]
	if !ok {
		return nil, false
	}
	var records []T
	if err := json.Unmarshal(raw, &records); err != nil {
		p.errorf("%s: %v", key, err)
		return nil, false
	}
	return records, true
}

func checkUniqueIDs(p *phase, key string, ids []string) {
	seen := make(map[string]bool, len(ids))
	for i, id := range ids {
		switch {
		case strings.TrimSpace(id) == "":
			p.errorf("%s[%d]: empty id", key, i)
		case seen[id]:
			p.errorf("%s[%d]: duplicate id %q", key, i, id)
		}
		seen[id] = true
	}
}

func validateAlerts(snap store.Snapshot) *phase {
	p := &phase{name: "Alerts"}
	alerts, ok := decode[domain.Alert](p, snap, store.KeyAlerts)
	if !ok {
		return p
	}
	ids := make([]string, len(alerts))
	for i, a := range alerts {
		ids[i] = a.ID
		if !a.Severity.Valid() {
			p.errorf("alert %s: invalid severity %q", a.ID, a.Severity)
		}
		if strings.TrimSpace(a.Title) == "" {
			p.errorf("alert %s: empty title", a.ID)
		}
		if len(a.Instructions) == 0 {
			p.errorf("alert %s: no instructions", a.ID)
		}
	}
	checkUniqueIDs(p, store.KeyAlerts, ids)
	return p
}

func validateResources(snap store.Snapshot) *phase {
	p := &phase{name: "Resources"}
	resources, ok := decode[domain.Resource](p, snap, store.KeyResources)
	if !ok {
		return p
	}
	ids := make([]string, len(resources))
	for i, r := range resources {
		ids[i] = r.ID
		if !r.Type.Valid() {
			p.errorf("resource %s: invalid type %q", r.ID, r.Type)
		}
		if !r.Status.Valid() {
			p.errorf("resource %s: invalid status %q", r.ID, r.Status)
		}
		if r.Name == "" || r.Address == "" || r.Phone == "" {
			p.errorf("resource %s: missing name, address or phone", r.ID)
		}
	}
	checkUniqueIDs(p, store.KeyResources, ids)
	return p
}

func validateContacts(snap store.Snapshot) *phase {
	p := &phase{name: "Contacts"}
	contacts, ok := decode[domain.Contact](p, snap, store.KeyContacts)
	if !ok {
		return p
	}
	ids := make([]string, len(contacts))
	for i, c := range contacts {
		ids[i] = c.ID
		if domain.IsEmergencyService(c.ID) {
			p.errorf("contact %s: emergency services must not be stored", c.ID)
		}
		if !c.Type.Valid() {
			p.errorf("contact %s: invalid type %q", c.ID, c.Type)
		}
		if c.Name == "" || c.Phone == "" {
			p.errorf("contact %s: missing name or phone", c.ID)
		}
	}
	checkUniqueIDs(p, store.KeyContacts, ids)
	return p
}

func validateChat(snap store.Snapshot) *phase {
	p := &phase{name: "Chat history"}
	history, ok := decode[domain.ChatMessage](p, snap, store.KeyChatHistory)
	if !ok {
		return p
	}
	if len(history) == 0 || history[0].ID != domain.WelcomeMessageID || history[0].IsUser {
		p.errorf("history does not open with the welcome message")
	}
	for i, m := range history {
		if strings.TrimSpace(m.Content) == "" {
			p.errorf("message %d (%s): empty content", i, m.ID)
		}
	}
	return p
}

func validateCart(snap store.Snapshot, catalog *domain.Catalog) *phase {
	p := &phase{name: "Cart (catalog references)"}
	items, ok := decode[domain.CartItem](p, snap, store.KeyCart)
	if !ok {
		return p
	}
	seen := map[string]bool{}
	for _, it := range items {
		if _, found := catalog.Lookup(it.ItemID); !found {
			p.errorf("cart item %q: not in catalog", it.ItemID)
		}
		if it.Quantity < 1 {
			p.errorf("cart item %q: quantity %d below one", it.ItemID, it.Quantity)
		}
		if seen[it.ItemID] {
			p.errorf("cart item %q: listed twice", it.ItemID)
		}
		seen[it.ItemID] = true
	}
	return p
}
