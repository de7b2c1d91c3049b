package domain

// MedicalInfo holds the user's medical notes for first responders.
type MedicalInfo struct {
	Conditions  string `json:"conditions"`
	Medications string `json:"medications"`
	Allergies   string `json:"allergies"`
	BloodType   string `json:"bloodType"`
	Notes       string `json:"notes"`
}

// ProfileInfo is the single per-session profile record. It is overwritten
// wholesale on save; an absent profile reads as the zero value.
type ProfileInfo struct {
	Name             string      `json:"name"`
	Phone            string      `json:"phone"`
	Email            string      `json:"email"`
	Address          string      `json:"address"`
	EmergencyContact string      `json:"emergencyContact"`
	MedicalInfo      MedicalInfo `json:"medicalInfo"`
}
