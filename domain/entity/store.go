package entity

import (
	"errors"
	"time"
)

// InstallationStatus tracks the store's installation checklist progress.
type InstallationStatus string

const (
	InstallationPending    InstallationStatus = "pending"
	InstallationInProgress InstallationStatus = "in_progress"
	InstallationCompleted  InstallationStatus = "completed"
)

var ErrChecklistItemNotFound = errors.New("checklist item not found")

// ChecklistItem is one step of a store installation.
type ChecklistItem struct {
	Key    string     `json:"key"`
	Label  string     `json:"label"`
	Done   bool       `json:"done"`
	DoneAt *time.Time `json:"done_at,omitempty"`
}

// DefaultChecklist returns a fresh copy of the installation steps every new
// store starts with.
func DefaultChecklist() []ChecklistItem {
	return []ChecklistItem{
		{Key: "furniture", Label: "Mobiliário instalado"},
		{Key: "pos", Label: "Sistema PDV configurado"},
		{Key: "network", Label: "Rede e internet ativas"},
		{Key: "signage", Label: "Fachada e sinalização"},
		{Key: "training", Label: "Treinamento da equipe"},
	}
}

// Store is a franchise unit run under a supplier.
type Store struct {
	ID                 string             `json:"id"`
	SupplierID         string             `json:"supplier_id"`
	Name               string             `json:"name"`
	City               string             `json:"city"`
	State              string             `json:"state"`
	Address            string             `json:"address"`
	InstallationStatus InstallationStatus `json:"installation_status"`
	Checklist          []ChecklistItem    `json:"checklist"`
	CreatedAt          time.Time          `json:"created_at"`
	UpdatedAt          time.Time          `json:"updated_at"`
}

func NewStore(id, supplierID, name, city, state, address string) *Store {
	now := time.Now()
	return &Store{
		ID:                 id,
		SupplierID:         supplierID,
		Name:               name,
		City:               city,
		State:              state,
		Address:            address,
		InstallationStatus: InstallationPending,
		Checklist:          DefaultChecklist(),
		CreatedAt:          now,
		UpdatedAt:          now,
	}
}

// SetChecklistItem marks the item identified by key as done or not done and
// recomputes the installation status.
func (s *Store) SetChecklistItem(key string, done bool) error {
	for i := range s.Checklist {
		if s.Checklist[i].Key != key {
			continue
		}
		item := &s.Checklist[i]
		if item.Done != done {
			item.Done = done
			if done {
				now := time.Now()
				item.DoneAt = &now
			} else {
				item.DoneAt = nil
			}
		}
		s.InstallationStatus = s.deriveStatus()
		s.UpdatedAt = time.Now()
		return nil
	}
	return ErrChecklistItemNotFound
}

// Progress returns how many checklist items are done out of the total.
func (s *Store) Progress() (done, total int) {
	for _, item := range s.Checklist {
		if item.Done {
			done++
		}
	}
	return done, len(s.Checklist)
}

func (s *Store) IsInstalled() bool {
	return s.InstallationStatus == InstallationCompleted
}

func (s *Store) deriveStatus() InstallationStatus {
	done, total := s.Progress()
	switch {
	case total > 0 && done == total:
		return InstallationCompleted
	case done > 0:
		return InstallationInProgress
	default:
		return InstallationPending
	}
}
