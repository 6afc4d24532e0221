package store

import (
	"context"
	"fmt"

	"vitrine/internal/utils"
	"vitrine/pkg/types"

	"github.com/jackc/pgx/v5/pgxpool"
)

const appointmentTableName = "vitrine.appointments"

type AppointmentRepository struct {
	pool *pgxpool.Pool
}

func NewAppointmentRepository(pool *pgxpool.Pool) *AppointmentRepository {
	return &AppointmentRepository{pool: pool}
}

// CreateAppointment inserts a booking tied to a freshly created contact.
func (r *AppointmentRepository) CreateAppointment(ctx context.Context, appointment *types.Appointment) error {

	query, args, err := psql().Insert(appointmentTableName).
		Columns("contact_id", "appointment_date", "slot_id").
		Values(appointment.ContactID, appointment.AppointmentDate, appointment.SlotID).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate insert appointment query: %w", err)
	}

	err = r.pool.QueryRow(ctx, query, args...).
		Scan(&appointment.ID, &appointment.CreatedAt)

	return utils.ErrorWrapOrNil(err, "failed to create appointment")
}
