package entity

import (
	"errors"
	"time"
)

type SupplierStatus string

const (
	SupplierStatusActive   SupplierStatus = "active"
	SupplierStatusInactive SupplierStatus = "inactive"
)

var ErrInvalidSupplierStatus = errors.New("invalid supplier status")

// Supplier is a franchise supplier that owns one or more stores.
type Supplier struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Document  string         `json:"document"`
	Email     string         `json:"email"`
	Phone     string         `json:"phone,omitempty"`
	Status    SupplierStatus `json:"status"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

func NewSupplier(id, name, document, email, phone string) *Supplier {
	now := time.Now()
	return &Supplier{
		ID:        id,
		Name:      name,
		Document:  document,
		Email:     email,
		Phone:     phone,
		Status:    SupplierStatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (s *Supplier) SetStatus(status SupplierStatus) error {
	if status != SupplierStatusActive && status != SupplierStatusInactive {
		return ErrInvalidSupplierStatus
	}
	s.Status = status
	s.UpdatedAt = time.Now()
	return nil
}
