package entity

import "time"

type OwnerType string

const (
	OwnerStore    OwnerType = "store"
	OwnerTicket   OwnerType = "ticket"
	OwnerSupplier OwnerType = "supplier"
)

func ValidOwnerType(o OwnerType) bool {
	switch o {
	case OwnerStore, OwnerTicket, OwnerSupplier:
		return true
	}
	return false
}

// Attachment is an uploaded file linked to a store, ticket or supplier.
type Attachment struct {
	ID          string    `json:"id"`
	OwnerType   OwnerType `json:"owner_type"`
	OwnerID     string    `json:"owner_id"`
	FileName    string    `json:"file_name"`
	ContentType string    `json:"content_type"`
	Size        int64     `json:"size"`
	Path        string    `json:"-"`
	UploadedBy  string    `json:"uploaded_by"`
	CreatedAt   time.Time `json:"created_at"`
}
