package server

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"time"

	"vitrine/pkg/types"

	"github.com/alexedwards/flow"
	"github.com/go-playground/form/v4"
	"github.com/gorilla/securecookie"
	"github.com/sirupsen/logrus"
)

var decoder = form.NewDecoder()

// ContactStore persists contact submissions. Ping mirrors the per-request
// connection check the handlers perform before touching any table.
type ContactStore interface {
	CreateContact(ctx context.Context, contact *types.Contact) error
	ListContacts(ctx context.Context, limit, offset uint64) ([]*types.Contact, error)
	Ping(ctx context.Context) error
}

// FileStore persists and looks up attachment metadata.
type FileStore interface {
	CreateContactFile(ctx context.Context, file *types.ContactFile) error
	ContactFileByID(ctx context.Context, id int64) (*types.ContactFile, error)
	FilesByContactID(ctx context.Context, contactID int64) ([]*types.ContactFile, error)
}

// AppointmentStore persists bookings tied to contact submissions.
type AppointmentStore interface {
	CreateAppointment(ctx context.Context, appointment *types.Appointment) error
}

// AdminStore looks up admin accounts for the login form.
type AdminStore interface {
	AdminByUsername(ctx context.Context, username string) (*types.AdminUser, error)
}

// UploadStore writes attachments to disk and resolves stored paths back to
// guarded disk paths.
type UploadStore interface {
	Save(storedName string, src io.Reader) (int64, error)
	PublicPath(storedName string) string
	Resolve(storedPath string) (string, error)
}

type Service struct {
	logger *logrus.Logger
	config *types.Config

	contacts     ContactStore
	files        FileStore
	appointments AppointmentStore
	admins       AdminStore
	uploads      UploadStore

	cookie *securecookie.SecureCookie

	server *http.Server
}

func New(
	config *types.Config,
	logger *logrus.Logger,
	contacts ContactStore,
	files FileStore,
	appointments AppointmentStore,
	admins AdminStore,
	uploads UploadStore,
) (*Service, error) {
	mux := flow.New()

	hashKey, _ := base64.StdEncoding.DecodeString(config.CookieHashKey)
	blockKey, _ := base64.StdEncoding.DecodeString(config.CookieBlockKey)

	s := &Service{
		logger: logger,
		config: config,
		cookie: securecookie.New(hashKey, blockKey),

		contacts:     contacts,
		files:        files,
		appointments: appointments,
		admins:       admins,
		uploads:      uploads,

		server: &http.Server{
			Addr:              fmt.Sprintf(":%d", config.ServerPort),
			Handler:           mux,
			ReadTimeout:       time.Duration(config.ReadTimeoutSec) * time.Second,
			ReadHeaderTimeout: time.Duration(config.ReadTimeoutSec) * time.Second,
			WriteTimeout:      time.Duration(config.WriteTimeoutSec) * time.Second,
			MaxHeaderBytes:    1 << 20,
		},
	}

	s.buildRouter(mux)

	return s, nil
}

func (s *Service) Start() error {
	return s.server.ListenAndServe()
}

func (s *Service) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

func (s *Service) buildRouter(r *flow.Mux) {
	r.Use(s.StripTrailingSlash)
	r.Use(s.RequestID)
	r.Use(s.LoggingMiddleware)

	r.HandleFunc("/contact_handler", s.handleContactSubmit, http.MethodPost)

	r.HandleFunc("/admin/login", s.handleAdminLogin, http.MethodPost)
	r.HandleFunc("/admin/logout", s.handleAdminLogout, http.MethodPost)

	r.Group(func(r *flow.Mux) {
		r.Use(s.RequireAdmin)

		r.HandleFunc("/serve_file", s.handleServeFile, http.MethodGet)
		r.HandleFunc("/admin/contacts", s.handleAdminListContacts, http.MethodGet)
	})

	r.HandleFunc("/healthz", s.handleHealth, http.MethodGet)
}

func (s *Service) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
