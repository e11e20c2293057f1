package contact

import "time"

// Contact is one saved emergency contact.
type Contact struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"createdAt"`
}

// MedicalCard carries the information a responder needs at a glance.
type MedicalCard struct {
	BloodType   string   `json:"bloodType,omitempty"`
	Allergies   []string `json:"allergies,omitempty"`
	Medications []string `json:"medications,omitempty"`
	Conditions  []string `json:"conditions,omitempty"`
	Notes       string   `json:"notes,omitempty"`
}
