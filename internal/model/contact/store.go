package contact

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidContact  = errors.New("contact name and phone are required")
	ErrContactNotFound = errors.New("contact not found")
)

// Store keeps emergency contacts and the medical card in memory. No phone
// or address validation is performed.
type Store struct {
	mu       sync.RWMutex
	contacts []Contact
	card     *MedicalCard
}

// NewStore returns an empty contact store.
func NewStore() *Store {
	return &Store{}
}

// List returns all saved contacts in insertion order.
func (s *Store) List() []Contact {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Contact(nil), s.contacts...)
}

// Add saves a new contact. Name and phone must be non-empty after trimming.
func (s *Store) Add(name, phone string) (Contact, error) {
	name = strings.TrimSpace(name)
	phone = strings.TrimSpace(phone)
	if name == "" || phone == "" {
		return Contact{}, ErrInvalidContact
	}

	contact := Contact{
		ID:        uuid.NewString(),
		Name:      name,
		Phone:     phone,
		CreatedAt: time.Now().UTC(),
	}

	s.mu.Lock()
	s.contacts = append(s.contacts, contact)
	s.mu.Unlock()

	return contact, nil
}

// Remove deletes a contact by identifier.
func (s *Store) Remove(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, contact := range s.contacts {
		if contact.ID == id {
			s.contacts = append(s.contacts[:i], s.contacts[i+1:]...)
			return nil
		}
	}
	return ErrContactNotFound
}

// MedicalCard returns the stored card; ok is false when none has been set.
func (s *Store) MedicalCard() (MedicalCard, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.card == nil {
		return MedicalCard{}, false
	}
	return *s.card, true
}

// SetMedicalCard replaces the stored card.
func (s *Store) SetMedicalCard(card MedicalCard) {
	s.mu.Lock()
	s.card = &card
	s.mu.Unlock()
}
