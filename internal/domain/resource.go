package domain

import "strings"

// ResourceType classifies a directory entry.
type ResourceType string

const (
	ResourceShelter  ResourceType = "shelter"
	ResourceHospital ResourceType = "hospital"
	ResourceFood     ResourceType = "food"
	ResourceSupplies ResourceType = "supplies"
)

func (t ResourceType) Valid() bool {
	switch t {
	case ResourceShelter, ResourceHospital, ResourceFood, ResourceSupplies:
		return true
	}
	return false
}

// ResourceStatus is the operating state of a resource.
type ResourceStatus string

const (
	StatusOpen    ResourceStatus = "open"
	StatusClosed  ResourceStatus = "closed"
	StatusLimited ResourceStatus = "limited"
)

func (s ResourceStatus) Valid() bool {
	switch s {
	case StatusOpen, StatusClosed, StatusLimited:
		return true
	}
	return false
}

const defaultDistance = "0.0 miles"

// Resource is a shelter, hospital, food or supply point.
type Resource struct {
	ID       string         `json:"id"`
	Name     string         `json:"name"`
	Type     ResourceType   `json:"type"`
	Address  string         `json:"address"`
	Phone    string         `json:"phone"`
	Distance string         `json:"distance"`
	Hours    string         `json:"hours"`
	Status   ResourceStatus `json:"status"`
	Notes    *string        `json:"notes,omitempty"`
}

// ResourceInput carries the editable fields of a resource.
type ResourceInput struct {
	Name     string         `json:"name"`
	Type     ResourceType   `json:"type"`
	Address  string         `json:"address"`
	Phone    string         `json:"phone"`
	Distance string         `json:"distance"`
	Hours    string         `json:"hours"`
	Status   ResourceStatus `json:"status"`
	Notes    *string        `json:"notes,omitempty"`
}

// NewResource validates the input and builds a resource with a fresh id.
func NewResource(in ResourceInput) (Resource, error) {
	r := Resource{ID: newID()}
	if err := r.apply(in); err != nil {
		return Resource{}, err
	}
	return r, nil
}

// WithInput returns a copy of the resource with its editable fields replaced.
func (r Resource) WithInput(in ResourceInput) (Resource, error) {
	if err := r.apply(in); err != nil {
		return Resource{}, err
	}
	return r, nil
}

func (r *Resource) apply(in ResourceInput) error {
	switch {
	case strings.TrimSpace(in.Name) == "":
		return required("name")
	case strings.TrimSpace(in.Address) == "":
		return required("address")
	case strings.TrimSpace(in.Phone) == "":
		return required("phone")
	}

	typ := in.Type
	if typ == "" {
		typ = ResourceShelter
	}
	if !typ.Valid() {
		return invalid("type", string(typ))
	}
	status := in.Status
	if status == "" {
		status = StatusOpen
	}
	if !status.Valid() {
		return invalid("status", string(status))
	}
	distance := strings.TrimSpace(in.Distance)
	if distance == "" {
		distance = defaultDistance
	}

	r.Name = strings.TrimSpace(in.Name)
	r.Type = typ
	r.Address = strings.TrimSpace(in.Address)
	r.Phone = strings.TrimSpace(in.Phone)
	r.Distance = distance
	r.Hours = strings.TrimSpace(in.Hours)
	r.Status = status
	r.Notes = optional(in.Notes)
	return nil
}

// Matches reports whether the resource passes the type and text filters.
// An empty filter matches everything.
func (r Resource) Matches(typ ResourceType, query string) bool {
	if typ != "" && r.Type != typ {
		return false
	}
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(r.Name), q) ||
		strings.Contains(strings.ToLower(r.Address), q)
}

// optional trims a pointer field and collapses blank values to nil.
func optional(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

func strPtr(s string) *string { return &s }

// SeedResources returns the directory shown before the user has changed anything.
func SeedResources() []Resource {
	return []Resource{
		{ID: "1", Name: "Central Community Center", Type: ResourceShelter, Address: "123 Main St, Downtown", Phone: "(555) 123-4567", Distance: "0.8 miles", Hours: "Open 24/7", Status: StatusOpen,
			Notes: strPtr("Currently housing 45/100 capacity. Provides beds, food, and basic medical care.")},
		{ID: "2", Name: "Memorial Hospital", Type: ResourceHospital, Address: "789 Health Ave, Westside", Phone: "(555) 987-6543", Distance: "1.2 miles", Hours: "Open 24/7", Status: StatusOpen,
			Notes: strPtr("Emergency room operating at normal capacity. Specialized for trauma care.")},
		{ID: "3", Name: "Riverside Emergency Shelter", Type: ResourceShelter, Address: "456 River Rd, Eastside", Phone: "(555) 234-5678", Distance: "2.1 miles", Hours: "Open 24/7", Status: StatusLimited,
			Notes: strPtr("Near capacity. Priority for families with children. Pet-friendly.")},
		{ID: "4", Name: "City Food Bank", Type: ResourceFood, Address: "321 Hunger St, Northside", Phone: "(555) 345-6789", Distance: "1.5 miles", Hours: "9AM - 7PM", Status: StatusOpen,
			Notes: strPtr("Distributing ready-to-eat meals and water. No ID required.")},
		{ID: "5", Name: "Urgent Care Clinic", Type: ResourceHospital, Address: "555 Medical Blvd, Southside", Phone: "(555) 456-7890", Distance: "0.9 miles", Hours: "8AM - 10PM", Status: StatusLimited,
			Notes: strPtr("Treating minor injuries and illnesses. Limited medication supply.")},
		{ID: "6", Name: "Relief Supply Center", Type: ResourceSupplies, Address: "888 Helper Ave, Downtown", Phone: "(555) 567-8901", Distance: "1.0 miles", Hours: "8AM - 6PM", Status: StatusOpen,
			Notes: strPtr("Distributing cleaning supplies, hygiene kits, and bottled water.")},
	}
}
