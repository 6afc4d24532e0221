package store

import (
	"context"
	"fmt"

	"vitrine/internal/utils"
	"vitrine/pkg/types"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgxpool"
)

const contactTableName = "vitrine.contacts"

var contactColumns = utils.StructTagValues(types.Contact{})

type ContactRepository struct {
	pool *pgxpool.Pool
}

func NewContactRepository(pool *pgxpool.Pool) *ContactRepository {
	return &ContactRepository{pool: pool}
}

// CreateContact inserts a new contact row and populates contact.ID,
// contact.CreatedAt and contact.Status from the RETURNING clause.
func (r *ContactRepository) CreateContact(ctx context.Context, contact *types.Contact) error {

	query, args, err := psql().Insert(contactTableName).
		Columns("name", "email", "phone", "subject", "message", "status").
		Values(
			contact.Name,
			contact.Email,
			contact.Phone,
			contact.Subject,
			contact.Message,
			types.ContactStatusNew,
		).
		Suffix("RETURNING id, created_at, status").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate insert contact query: %w", err)
	}

	err = r.pool.QueryRow(ctx, query, args...).
		Scan(&contact.ID, &contact.CreatedAt, &contact.Status)

	return utils.ErrorWrapOrNil(err, "failed to create contact")
}

// ListContacts returns contacts newest first.
func (r *ContactRepository) ListContacts(ctx context.Context, limit, offset uint64) ([]*types.Contact, error) {

	query, args, err := psql().Select(contactColumns...).From(contactTableName).
		OrderBy("created_at DESC").
		Limit(limit).
		Offset(offset).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate list contacts query: %w", err)
	}

	var contacts = make([]*types.Contact, 0)
	err = pgxscan.Select(ctx, r.pool, &contacts, query, args...)
	if err != nil {
		return nil, utils.ErrorWrapOrNil(err, "failed to list contacts")
	}

	return contacts, nil
}

// Ping reports whether the pool can reach the database.
func (r *ContactRepository) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}
