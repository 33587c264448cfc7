package inbound

import (
	"context"
	"errors"
	"io"

	"github.com/franquianet/portal/domain/entity"
)

var (
	ErrFileTooLarge        = errors.New("file exceeds the maximum upload size")
	ErrUnsupportedFileType = errors.New("file type not allowed")
	ErrEmptyFile           = errors.New("file is empty")
)

type UploadRequest struct {
	OwnerType  string
	OwnerID    string
	FileName   string
	Content    io.Reader
	UploadedBy string
}

// Download is an open attachment; the caller closes Content.
type Download struct {
	Attachment *entity.Attachment
	Content    io.ReadCloser
}

type UploadUseCase interface {
	Upload(ctx context.Context, req UploadRequest) (*entity.Attachment, error)
	Download(ctx context.Context, id string) (*Download, error)
	ListByOwner(ctx context.Context, ownerType, ownerID string) ([]*entity.Attachment, error)
}
