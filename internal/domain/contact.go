package domain

import "strings"

// ContactType groups contacts in the directory.
type ContactType string

const (
	ContactEmergency ContactType = "emergency"
	ContactFamily    ContactType = "family"
	ContactFriend    ContactType = "friend"
	ContactMedical   ContactType = "medical"
	ContactOther     ContactType = "other"
)

func (t ContactType) Valid() bool {
	switch t {
	case ContactEmergency, ContactFamily, ContactFriend, ContactMedical, ContactOther:
		return true
	}
	return false
}

// Contact is a person or service the user may need to call.
type Contact struct {
	ID    string      `json:"id"`
	Name  string      `json:"name"`
	Phone string      `json:"phone"`
	Type  ContactType `json:"type"`
	Notes *string     `json:"notes,omitempty"`
}

// ContactInput carries the editable fields of a contact.
type ContactInput struct {
	Name  string      `json:"name"`
	Phone string      `json:"phone"`
	Type  ContactType `json:"type"`
	Notes *string     `json:"notes,omitempty"`
}

// NewContact validates the input and builds a contact with a fresh id.
func NewContact(in ContactInput) (Contact, error) {
	c := Contact{ID: newID()}
	if err := c.apply(in); err != nil {
		return Contact{}, err
	}
	return c, nil
}

// WithInput returns a copy of the contact with its editable fields replaced.
// Emergency services cannot be edited.
func (c Contact) WithInput(in ContactInput) (Contact, error) {
	if IsEmergencyService(c.ID) {
		return Contact{}, ErrImmutable
	}
	if err := c.apply(in); err != nil {
		return Contact{}, err
	}
	return c, nil
}

func (c *Contact) apply(in ContactInput) error {
	switch {
	case strings.TrimSpace(in.Name) == "":
		return required("name")
	case strings.TrimSpace(in.Phone) == "":
		return required("phone")
	}
	typ := in.Type
	if typ == "" {
		typ = ContactOther
	}
	if !typ.Valid() {
		return invalid("type", string(typ))
	}
	c.Name = strings.TrimSpace(in.Name)
	c.Phone = strings.TrimSpace(in.Phone)
	c.Type = typ
	c.Notes = optional(in.Notes)
	return nil
}

// Matches reports whether the contact passes the type and text filters.
// Phone numbers are compared verbatim, name and notes case-insensitively.
func (c Contact) Matches(typ ContactType, query string) bool {
	if typ != "" && c.Type != typ {
		return false
	}
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	if strings.Contains(strings.ToLower(c.Name), q) || strings.Contains(c.Phone, query) {
		return true
	}
	return c.Notes != nil && strings.Contains(strings.ToLower(*c.Notes), q)
}

var emergencyServices = []Contact{
	{ID: "emergency-1", Name: "Emergency Services", Phone: "911", Type: ContactEmergency, Notes: strPtr("For immediate life-threatening emergencies")},
	{ID: "emergency-2", Name: "Police Department", Phone: "(555) 123-4567", Type: ContactEmergency, Notes: strPtr("For non-emergency police assistance")},
	{ID: "emergency-3", Name: "Fire Department", Phone: "(555) 234-5678", Type: ContactEmergency, Notes: strPtr("For non-emergency fire assistance")},
	{ID: "emergency-4", Name: "Poison Control", Phone: "(800) 222-1222", Type: ContactEmergency, Notes: strPtr("For poison emergencies and information")},
}

// EmergencyServices returns the fixed, read-only contacts listed ahead of
// the user's own.
func EmergencyServices() []Contact {
	out := make([]Contact, len(emergencyServices))
	copy(out, emergencyServices)
	return out
}

// IsEmergencyService reports whether id belongs to a seeded emergency service.
func IsEmergencyService(id string) bool {
	for _, es := range emergencyServices {
		if es.ID == id {
			return true
		}
	}
	return false
}

// SeedContacts returns the user contacts stored on first use.
func SeedContacts() []Contact {
	return []Contact{
		{ID: "1", Name: "John Smith", Phone: "(555) 345-6789", Type: ContactFamily, Notes: strPtr("Primary emergency contact")},
		{ID: "2", Name: "Sarah Johnson", Phone: "(555) 456-7890", Type: ContactFriend, Notes: strPtr("Lives nearby, has spare key")},
		{ID: "3", Name: "Dr. Wilson", Phone: "(555) 567-8901", Type: ContactMedical, Notes: strPtr("Primary care physician")},
	}
}
