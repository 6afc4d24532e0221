package types

import (
	"errors"
	"time"
)

// Contact is a contact-form submission. Rows are only ever inserted; the
// admin dashboard reads them but nothing in this backend mutates them.
type Contact struct {
	ID        int64     `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Email     string    `db:"email" json:"email"`
	Phone     *string   `db:"phone" json:"phone,omitempty"`
	Subject   *string   `db:"subject" json:"subject,omitempty"`
	Message   string    `db:"message" json:"message"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	Status    string    `db:"status" json:"status"`
}

// ContactStatusNew is the status every freshly inserted contact carries.
const ContactStatusNew = "new"

// ContactFile is the metadata row for an attachment stored on disk.
// FilePath is the logical path under the site root, not an absolute path.
type ContactFile struct {
	ID           int64     `db:"id" json:"id"`
	ContactID    int64     `db:"contact_id" json:"contactId"`
	OriginalName string    `db:"original_name" json:"originalName"`
	FileName     string    `db:"file_name" json:"fileName"`
	FilePath     string    `db:"file_path" json:"filePath"`
	FileSize     int64     `db:"file_size" json:"fileSize"`
	FileType     string    `db:"file_type" json:"fileType"`
	UploadedAt   time.Time `db:"uploaded_at" json:"uploadedAt"`
}

// Appointment is an optional booking tied to a contact submission.
type Appointment struct {
	ID              int64     `db:"id" json:"id"`
	ContactID       int64     `db:"contact_id" json:"contactId"`
	AppointmentDate string    `db:"appointment_date" json:"appointmentDate"`
	SlotID          int       `db:"slot_id" json:"slotId"`
	CreatedAt       time.Time `db:"created_at" json:"createdAt"`
}

// AdminUser holds the credentials checked by the admin login form.
type AdminUser struct {
	ID           int64     `db:"id" json:"id"`
	Username     string    `db:"username" json:"username"`
	PasswordHash string    `db:"password_hash" json:"-"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
}

var (
	ErrFileNotFound  = errors.New("contact file not found")
	ErrAdminNotFound = errors.New("admin user not found")
)
