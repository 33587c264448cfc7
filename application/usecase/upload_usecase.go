package usecase

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/franquianet/portal/application/port/inbound"
	"github.com/franquianet/portal/application/port/outbound"
	"github.com/franquianet/portal/domain/entity"
	"github.com/franquianet/portal/infrastructure/service/logger"
)

// sniffLen is how much content net/http needs to detect a type.
const sniffLen = 512

// allowedUploadTypes maps each accepted sniffed type to its stored extension.
var allowedUploadTypes = map[string]string{
	"application/pdf": ".pdf",
	"image/png":       ".png",
	"image/jpeg":      ".jpg",
}

// OwnerLookup checks that an attachment owner exists.
type OwnerLookup func(ctx context.Context, id string) error

type UploadUseCase struct {
	attachments outbound.AttachmentRepository
	storage     outbound.FileStorage
	owners      map[entity.OwnerType]OwnerLookup
	maxBytes    int64
	logger      logger.Logger
}

func NewUploadUseCase(
	attachments outbound.AttachmentRepository,
	storage outbound.FileStorage,
	suppliers outbound.SupplierRepository,
	stores outbound.StoreRepository,
	tickets outbound.TicketRepository,
	maxBytes int64,
	log logger.Logger,
) *UploadUseCase {
	return &UploadUseCase{
		attachments: attachments,
		storage:     storage,
		owners: map[entity.OwnerType]OwnerLookup{
			entity.OwnerSupplier: func(ctx context.Context, id string) error {
				_, err := suppliers.FindByID(ctx, id)
				return err
			},
			entity.OwnerStore: func(ctx context.Context, id string) error {
				_, err := stores.FindByID(ctx, id)
				return err
			},
			entity.OwnerTicket: func(ctx context.Context, id string) error {
				_, err := tickets.FindByID(ctx, id)
				return err
			},
		},
		maxBytes: maxBytes,
		logger:   log,
	}
}

func (uc *UploadUseCase) Upload(ctx context.Context, req inbound.UploadRequest) (*entity.Attachment, error) {
	ownerType := entity.OwnerType(req.OwnerType)
	lookup, ok := uc.owners[ownerType]
	if !ok {
		return nil, invalid("owner_type must be one of store, ticket, supplier")
	}
	if err := lookup(ctx, req.OwnerID); err != nil {
		if isNotFound(err) {
			return nil, invalid(fmt.Sprintf("%s does not exist", ownerType))
		}
		return nil, fmt.Errorf("find owner: %w", err)
	}

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(req.Content, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	head = head[:n]
	if n == 0 {
		return nil, inbound.ErrEmptyFile
	}

	contentType := http.DetectContentType(head)
	ext, ok := allowedUploadTypes[contentType]
	if !ok {
		uc.logger.Warn(ctx, "Rejected upload with unsupported type", map[string]interface{}{
			"content_type": contentType,
			"file_name":    req.FileName,
		})
		return nil, inbound.ErrUnsupportedFileType
	}

	id := uuid.New().String()
	key := id + ext
	body := io.LimitReader(io.MultiReader(bytes.NewReader(head), req.Content), uc.maxBytes+1)

	size, err := uc.storage.Save(ctx, key, body)
	if err != nil {
		return nil, fmt.Errorf("store upload: %w", err)
	}
	if size > uc.maxBytes {
		if err := uc.storage.Remove(ctx, key); err != nil {
			uc.logger.Error(ctx, "Failed to remove oversized upload", err, map[string]interface{}{"key": key})
		}
		return nil, inbound.ErrFileTooLarge
	}

	attachment := &entity.Attachment{
		ID:          id,
		OwnerType:   ownerType,
		OwnerID:     req.OwnerID,
		FileName:    cleanFileName(req.FileName, ext),
		ContentType: contentType,
		Size:        size,
		Path:        key,
		UploadedBy:  req.UploadedBy,
		CreatedAt:   time.Now(),
	}
	if err := uc.attachments.Create(ctx, attachment); err != nil {
		if rmErr := uc.storage.Remove(ctx, key); rmErr != nil {
			uc.logger.Error(ctx, "Failed to remove orphaned upload", rmErr, map[string]interface{}{"key": key})
		}
		return nil, fmt.Errorf("save attachment: %w", err)
	}

	uc.logger.Info(ctx, "File uploaded", map[string]interface{}{
		"attachment_id": attachment.ID,
		"owner_type":    string(ownerType),
		"owner_id":      req.OwnerID,
		"size":          size,
	})
	return attachment, nil
}

func (uc *UploadUseCase) Download(ctx context.Context, id string) (*inbound.Download, error) {
	attachment, err := uc.attachments.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find attachment: %w", err)
	}
	content, err := uc.storage.Open(ctx, attachment.Path)
	if err != nil {
		return nil, fmt.Errorf("open attachment: %w", err)
	}
	return &inbound.Download{Attachment: attachment, Content: content}, nil
}

func (uc *UploadUseCase) ListByOwner(ctx context.Context, ownerType, ownerID string) ([]*entity.Attachment, error) {
	if !entity.ValidOwnerType(entity.OwnerType(ownerType)) {
		return nil, invalid("owner_type must be one of store, ticket, supplier")
	}
	if ownerID == "" {
		return nil, invalid("owner_id is required")
	}
	attachments, err := uc.attachments.FindByOwner(ctx, entity.OwnerType(ownerType), ownerID)
	if err != nil {
		return nil, fmt.Errorf("list attachments: %w", err)
	}
	if attachments == nil {
		attachments = []*entity.Attachment{}
	}
	return attachments, nil
}

// cleanFileName keeps the base name the client sent, falling back to a
// generic one when it is empty.
func cleanFileName(name, ext string) string {
	base := filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	if base == "." || base == "/" || strings.TrimSpace(base) == "" {
		return "arquivo" + ext
	}
	return base
}

func isNotFound(err error) bool {
	return errors.Is(err, outbound.ErrSupplierNotFound) ||
		errors.Is(err, outbound.ErrStoreNotFound) ||
		errors.Is(err, outbound.ErrTicketNotFound)
}
