package outbound

import (
	"context"
	"errors"
	"io"

	"github.com/franquianet/portal/domain/entity"
)

var (
	ErrAttachmentNotFound = errors.New("attachment not found")
	ErrFileNotFound       = errors.New("file not found")
)

type AttachmentRepository interface {
	FindByID(ctx context.Context, id string) (*entity.Attachment, error)
	Create(ctx context.Context, attachment *entity.Attachment) error
	FindByOwner(ctx context.Context, ownerType entity.OwnerType, ownerID string) ([]*entity.Attachment, error)
}

// FileStorage keeps uploaded file contents. Keys are opaque storage names.
type FileStorage interface {
	Save(ctx context.Context, key string, r io.Reader) (int64, error)
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	Remove(ctx context.Context, key string) error
}
