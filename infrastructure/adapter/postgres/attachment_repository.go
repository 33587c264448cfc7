package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/franquianet/portal/application/port/outbound"
	"github.com/franquianet/portal/domain/entity"
)

const attachmentColumns = `id, owner_type, owner_id, file_name, content_type, size, path, uploaded_by, created_at`

type AttachmentRepositoryAdapter struct {
	db *sql.DB
}

func NewAttachmentRepositoryAdapter(db *sql.DB) outbound.AttachmentRepository {
	return &AttachmentRepositoryAdapter{db: db}
}

func scanAttachment(row interface{ Scan(...interface{}) error }) (*entity.Attachment, error) {
	var a entity.Attachment
	err := row.Scan(
		&a.ID,
		&a.OwnerType,
		&a.OwnerID,
		&a.FileName,
		&a.ContentType,
		&a.Size,
		&a.Path,
		&a.UploadedBy,
		&a.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AttachmentRepositoryAdapter) FindByID(ctx context.Context, id string) (*entity.Attachment, error) {
	query := `SELECT ` + attachmentColumns + ` FROM attachments WHERE id = $1`

	attachment, err := scanAttachment(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, outbound.ErrAttachmentNotFound
		}
		return nil, fmt.Errorf("failed to find attachment: %w", err)
	}
	return attachment, nil
}

func (r *AttachmentRepositoryAdapter) Create(ctx context.Context, attachment *entity.Attachment) error {
	query := `
		INSERT INTO attachments (` + attachmentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.ExecContext(ctx, query,
		attachment.ID,
		string(attachment.OwnerType),
		attachment.OwnerID,
		attachment.FileName,
		attachment.ContentType,
		attachment.Size,
		attachment.Path,
		attachment.UploadedBy,
		attachment.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create attachment: %w", err)
	}
	return nil
}

func (r *AttachmentRepositoryAdapter) FindByOwner(ctx context.Context, ownerType entity.OwnerType, ownerID string) ([]*entity.Attachment, error) {
	query := `SELECT ` + attachmentColumns + `
		FROM attachments
		WHERE owner_type = $1 AND owner_id = $2
		ORDER BY created_at ASC`

	rows, err := r.db.QueryContext(ctx, query, string(ownerType), ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query attachments: %w", err)
	}
	defer rows.Close()

	attachments := []*entity.Attachment{}
	for rows.Next() {
		attachment, err := scanAttachment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attachment: %w", err)
		}
		attachments = append(attachments, attachment)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate attachments: %w", err)
	}
	return attachments, nil
}
