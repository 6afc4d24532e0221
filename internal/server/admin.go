package server

import (
	"net/http"
	"strconv"

	"vitrine/pkg/types"
)

type contactWithFiles struct {
	*types.Contact
	Files []*types.ContactFile `json:"files"`
}

type contactListResponse struct {
	Contacts []contactWithFiles `json:"contacts"`
}

// handleAdminListContacts returns contacts newest first with their
// attachments, for the admin dashboard. Supports limit/offset paging.
func (s *Service) handleAdminListContacts(w http.ResponseWriter, r *http.Request) {

	var limit uint64 = 20
	var offset uint64

	if l := r.URL.Query().Get("limit"); l != "" {
		if n, err := strconv.ParseUint(l, 10, 64); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}
	if o := r.URL.Query().Get("offset"); o != "" {
		if n, err := strconv.ParseUint(o, 10, 64); err == nil {
			offset = n
		}
	}

	contacts, err := s.contacts.ListContacts(r.Context(), limit, offset)
	if err != nil {
		s.logger.WithError(err).Error("failed to list contacts")
		s.jsonError(w, http.StatusInternalServerError, msgDBConnection)
		return
	}

	out := make([]contactWithFiles, 0, len(contacts))
	for _, contact := range contacts {
		files, err := s.files.FilesByContactID(r.Context(), contact.ID)
		if err != nil {
			s.logger.WithError(err).WithField("contact_id", contact.ID).
				Error("failed to list contact files")
			files = []*types.ContactFile{}
		}
		out = append(out, contactWithFiles{Contact: contact, Files: files})
	}

	s.respondJSON(w, http.StatusOK, contactListResponse{Contacts: out})
}
