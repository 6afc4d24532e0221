package server

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"
	"unicode"

	"vitrine/internal/utils"
	"vitrine/pkg/types"

	"github.com/sirupsen/logrus"
)

const (
	// maxUploadBytes caps each attachment at 5 MiB.
	maxUploadBytes = 5 << 20

	// maxMultipartMemory bounds what ParseMultipartForm keeps in memory
	// before spilling parts to temp files.
	maxMultipartMemory = 8 << 20
)

// allowedUploadTypes is the declared-MIME allow-list for attachments:
// PDF, the browser image types, and both Word formats.
var allowedUploadTypes = map[string]bool{
	"application/pdf": true,
	"image/jpeg":      true,
	"image/png":       true,
	"image/gif":       true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
}

// handleContactSubmit ingests a contact-form POST: required-field
// validation, the contact insert, zero or more attachments, and an optional
// appointment. The response is a JSON envelope for AJAX clients and a
// flash+redirect otherwise; partial attachment or appointment failures only
// surface through the error flash.
func (s *Service) handleContactSubmit(w http.ResponseWriter, r *http.Request) {
	sess := s.session(r)

	pingCtx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	if err := s.contacts.Ping(pingCtx); err != nil {
		s.logger.WithError(err).Error("database connection failed")
		s.failSubmission(w, r, http.StatusInternalServerError, msgDBConnection, sess)
		return
	}

	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		if !errors.Is(err, http.ErrNotMultipart) {
			s.logger.WithError(err).Error("failed to parse multipart form")
			s.failSubmission(w, r, http.StatusBadRequest, msgRequiredFields, sess)
			return
		}
		// Plain form-encoded submission without attachments.
		if err := r.ParseForm(); err != nil {
			s.logger.WithError(err).Error("failed to parse form")
			s.failSubmission(w, r, http.StatusBadRequest, msgRequiredFields, sess)
			return
		}
	}

	var input types.ContactForm
	if err := decoder.Decode(&input, r.PostForm); err != nil {
		s.logger.WithError(err).Error("failed to decode contact form")
		s.failSubmission(w, r, http.StatusBadRequest, msgRequiredFields, sess)
		return
	}

	name := sanitize(input.Name)
	email := sanitize(input.Email)
	phone := sanitize(input.Phone)
	subject := sanitize(input.Subject)
	message := sanitize(input.Message)
	appointmentDate := sanitize(input.AppointmentDate)
	slotID, _ := strconv.Atoi(strings.TrimSpace(input.SlotID))

	if name == "" || email == "" || message == "" {
		s.logger.Info("contact form validation failed: missing required fields")
		s.failSubmission(w, r, http.StatusBadRequest, msgRequiredFields, sess)
		return
	}

	contact := &types.Contact{
		Name:    name,
		Email:   email,
		Phone:   optional(phone),
		Subject: optional(subject),
		Message: message,
	}

	if err := s.contacts.CreateContact(r.Context(), contact); err != nil {
		s.logger.WithError(err).Error("failed to insert contact")
		s.failSubmission(w, r, http.StatusInternalServerError, msgSaveFailed, sess)
		return
	}
	s.logger.WithField("contact_id", contact.ID).Info("contact saved")

	if r.MultipartForm != nil {
		for _, header := range r.MultipartForm.File["documents"] {
			s.saveAttachment(r.Context(), &sess, contact.ID, header)
		}
	}

	if appointmentDate != "" && slotID > 0 {
		appointment := &types.Appointment{
			ContactID:       contact.ID,
			AppointmentDate: appointmentDate,
			SlotID:          slotID,
		}
		if err := s.appointments.CreateAppointment(r.Context(), appointment); err != nil {
			s.logger.WithError(err).WithField("contact_id", contact.ID).
				Error("failed to insert appointment")
			sess.ErrorMessage = msgAppointmentSave
		} else {
			s.logger.WithField("contact_id", contact.ID).Info("appointment saved")
		}
	}

	if wantsJSON(r) {
		s.saveSession(w, sess)
		s.respondJSON(w, http.StatusOK, envelope{Success: true, Message: msgSent})
		return
	}

	sess.SuccessMessage = msgSent
	s.saveSession(w, sess)
	http.Redirect(w, r, "/", http.StatusFound)
}

// saveAttachment validates, stores and records one uploaded file. Every
// failure skips just this file: the submission as a whole still succeeds,
// and the user learns about it through the error flash.
func (s *Service) saveAttachment(ctx context.Context, sess *types.Session, contactID int64, header *multipart.FileHeader) {
	log := s.logger.WithFields(logrus.Fields{
		"contact_id": contactID,
		"file":       header.Filename,
	})

	fileType := header.Header.Get("Content-Type")
	if !allowedUploadTypes[fileType] {
		log.WithField("file_type", fileType).Warn("rejected upload: type not allowed")
		sess.ErrorMessage = msgFileType + header.Filename
		return
	}

	if header.Size > maxUploadBytes {
		log.WithField("file_size", header.Size).Warn("rejected upload: file too large")
		sess.ErrorMessage = msgFileTooLarge + header.Filename
		return
	}

	src, err := header.Open()
	if err != nil {
		log.WithError(err).Error("failed to open uploaded file")
		sess.ErrorMessage = msgFileUpload + header.Filename
		return
	}
	defer src.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	storedName := fmt.Sprintf("contact_%d_%s%s", contactID, utils.FileToken(), ext)

	if _, err := s.uploads.Save(storedName, src); err != nil {
		log.WithError(err).Error("failed to move uploaded file")
		sess.ErrorMessage = msgFileUpload + header.Filename
		return
	}

	file := &types.ContactFile{
		ContactID:    contactID,
		OriginalName: header.Filename,
		FileName:     storedName,
		FilePath:     s.uploads.PublicPath(storedName),
		FileSize:     header.Size,
		FileType:     fileType,
	}

	if err := s.files.CreateContactFile(ctx, file); err != nil {
		// The bytes are already durable on disk; the row can be reconciled
		// from this log line.
		log.WithError(err).WithField("stored_name", storedName).
			Error("failed to insert contact file after successful write")
		sess.ErrorMessage = msgFileSave + header.Filename
		return
	}

	log.WithField("file_path", file.FilePath).Info("file uploaded and saved")
}

// failSubmission terminates the request with the JSON-or-redirect shape:
// a {success:false} envelope for AJAX clients, an error flash plus a
// redirect to the site root for everyone else.
func (s *Service) failSubmission(w http.ResponseWriter, r *http.Request, status int, message string, sess types.Session) {
	if wantsJSON(r) {
		s.jsonError(w, status, message)
		return
	}

	sess.ErrorMessage = message
	s.saveSession(w, sess)
	http.Redirect(w, r, "/", http.StatusFound)
}

// sanitize trims the value and strips control characters, keeping the
// whitespace that is legitimate in a free-text message.
func sanitize(v string) string {
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsControl(r) && r != '\n' && r != '\r' && r != '\t' {
			return -1
		}
		return r
	}, v)

	return strings.TrimSpace(cleaned)
}

func optional(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}
