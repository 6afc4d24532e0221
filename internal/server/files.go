package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"vitrine/pkg/types"

	"github.com/sirupsen/logrus"
)

// inlineTypes are the stored MIME types a browser may render in place.
// Everything else is always served as an attachment.
var inlineTypes = map[string]bool{
	"application/pdf": true,
	"image/jpeg":      true,
	"image/png":       true,
	"image/gif":       true,
}

// handleServeFile streams a previously uploaded attachment back to an
// authenticated admin. The steps are strictly ordered and each failure is
// terminal: validate the id, look the file up, resolve its path against the
// guarded upload directory, then emit headers and raw bytes. Missing files
// and traversal attempts answer with the same generic 404 so responses never
// reveal directory layout.
func (s *Service) handleServeFile(w http.ResponseWriter, r *http.Request) {

	pingCtx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	if err := s.contacts.Ping(pingCtx); err != nil {
		s.logger.WithError(err).Error("database connection failed")
		s.jsonError(w, http.StatusInternalServerError, msgDBConnection)
		return
	}

	fileID, err := strconv.ParseInt(r.URL.Query().Get("id"), 10, 64)
	if err != nil || fileID <= 0 {
		s.logger.WithField("raw_id", r.URL.Query().Get("id")).Warn("invalid file id")
		s.jsonError(w, http.StatusBadRequest, msgInvalidFileID)
		return
	}

	file, err := s.files.ContactFileByID(r.Context(), fileID)
	if err != nil {
		if errors.Is(err, types.ErrFileNotFound) {
			s.logger.WithField("file_id", fileID).Warn("file not found in database")
			s.jsonError(w, http.StatusNotFound, msgFileNotFoundDB)
			return
		}
		s.logger.WithError(err).WithField("file_id", fileID).Error("file lookup failed")
		s.jsonError(w, http.StatusInternalServerError, msgDBConnection)
		return
	}

	fullPath, err := s.uploads.Resolve(file.FilePath)
	if err != nil {
		s.logger.WithFields(logrus.Fields{
			"file_id":     fileID,
			"stored_path": file.FilePath,
		}).Warn("file missing or outside allowed directory")
		s.jsonError(w, http.StatusNotFound, msgFileNotFound)
		return
	}

	mimeType := file.FileType
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}

	disposition := "attachment"
	if inlineTypes[mimeType] && r.URL.Query().Has("view") {
		disposition = "inline"
	}

	info, err := os.Stat(fullPath)
	if err != nil {
		s.jsonError(w, http.StatusNotFound, msgFileNotFound)
		return
	}

	f, err := os.Open(fullPath)
	if err != nil {
		s.jsonError(w, http.StatusNotFound, msgFileNotFound)
		return
	}
	defer f.Close()

	w.Header().Set("Content-Type", mimeType)
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("%s; filename=%q", disposition, filepath.Base(file.OriginalName)))
	w.Header().Set("Content-Length", strconv.FormatInt(info.Size(), 10))
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	w.Header().Set("Pragma", "no-cache")
	w.Header().Set("Expires", "0")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.Header().Set("Content-Security-Policy", "default-src 'none'; img-src 'self'; object-src 'self';")
	w.Header().Set("Accept-Ranges", "bytes")

	if _, err := io.Copy(w, f); err != nil {
		// Headers are already gone; nothing to send but a log line.
		s.logger.WithError(err).WithField("file_id", fileID).Error("failed to stream file")
		return
	}

	s.logger.WithFields(logrus.Fields{
		"file_id":     fileID,
		"disposition": disposition,
	}).Info("file served")
}
