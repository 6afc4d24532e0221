package store

import (
	"context"
	"fmt"
	"time"

	"vitrine/internal/utils"
	"vitrine/pkg/types"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgxpool"
)

const fileTableName = "vitrine.contact_files"

var fileColumns = utils.StructTagValues(types.ContactFile{})

type FileRepository struct {
	pool *pgxpool.Pool
}

func NewFileRepository(pool *pgxpool.Pool) *FileRepository {
	return &FileRepository{pool: pool}
}

// CreateContactFile inserts the metadata row for an attachment already
// written to disk.
func (r *FileRepository) CreateContactFile(ctx context.Context, file *types.ContactFile) error {

	if file.UploadedAt.IsZero() {
		file.UploadedAt = time.Now()
	}

	fileMap := utils.StructToMap(file)
	delete(fileMap, "id")

	query, args, err := psql().Insert(fileTableName).SetMap(fileMap).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate insert contact file query: %w", err)
	}

	err = r.pool.QueryRow(ctx, query, args...).Scan(&file.ID)

	return utils.ErrorWrapOrNil(err, "failed to create contact file")
}

// ContactFileByID retrieves a single attachment row by ID.
func (r *FileRepository) ContactFileByID(ctx context.Context, id int64) (*types.ContactFile, error) {

	query, args, err := psql().Select(fileColumns...).From(fileTableName).
		Where(sq.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate contact file query: %w", err)
	}

	var file = new(types.ContactFile)
	err = pgxscan.Get(ctx, r.pool, file, query, args...)
	if err != nil && !pgxscan.NotFound(err) {
		return nil, err
	}

	if err != nil {
		return nil, types.ErrFileNotFound
	}

	return file, nil
}

// FilesByContactID retrieves all attachments of a contact, newest first.
func (r *FileRepository) FilesByContactID(ctx context.Context, contactID int64) ([]*types.ContactFile, error) {

	query, args, err := psql().Select(fileColumns...).From(fileTableName).
		Where(sq.Eq{"contact_id": contactID}).
		OrderBy("uploaded_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate contact files query: %w", err)
	}

	var files = make([]*types.ContactFile, 0)
	err = pgxscan.Select(ctx, r.pool, &files, query, args...)
	if err != nil {
		return nil, utils.ErrorWrapOrNil(err, "failed to list contact files")
	}

	return files, nil
}
