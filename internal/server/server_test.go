package server

import (
	"bytes"
	"context"
	"encoding/base64"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"net/url"
	"strings"
	"testing"

	"vitrine/internal/storage"
	"vitrine/pkg/types"

	"github.com/sirupsen/logrus"
)

// ---------------------------------------------------------------------------
// Mock stores
// ---------------------------------------------------------------------------

type mockContactStore struct {
	createFunc func(ctx context.Context, contact *types.Contact) error
	listFunc   func(ctx context.Context, limit, offset uint64) ([]*types.Contact, error)
	pingFunc   func(ctx context.Context) error
}

func (m *mockContactStore) CreateContact(ctx context.Context, contact *types.Contact) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, contact)
	}
	contact.ID = 1
	return nil
}

func (m *mockContactStore) ListContacts(ctx context.Context, limit, offset uint64) ([]*types.Contact, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, limit, offset)
	}
	return nil, nil
}

func (m *mockContactStore) Ping(ctx context.Context) error {
	if m.pingFunc != nil {
		return m.pingFunc(ctx)
	}
	return nil
}

type mockFileStore struct {
	createFunc func(ctx context.Context, file *types.ContactFile) error
	byIDFunc   func(ctx context.Context, id int64) (*types.ContactFile, error)
	byContact  func(ctx context.Context, contactID int64) ([]*types.ContactFile, error)
}

func (m *mockFileStore) CreateContactFile(ctx context.Context, file *types.ContactFile) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, file)
	}
	file.ID = 1
	return nil
}

func (m *mockFileStore) ContactFileByID(ctx context.Context, id int64) (*types.ContactFile, error) {
	if m.byIDFunc != nil {
		return m.byIDFunc(ctx, id)
	}
	return nil, types.ErrFileNotFound
}

func (m *mockFileStore) FilesByContactID(ctx context.Context, contactID int64) ([]*types.ContactFile, error) {
	if m.byContact != nil {
		return m.byContact(ctx, contactID)
	}
	return nil, nil
}

type mockAppointmentStore struct {
	createFunc func(ctx context.Context, appointment *types.Appointment) error
}

func (m *mockAppointmentStore) CreateAppointment(ctx context.Context, appointment *types.Appointment) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, appointment)
	}
	appointment.ID = 1
	return nil
}

type mockAdminStore struct {
	byUsernameFunc func(ctx context.Context, username string) (*types.AdminUser, error)
}

func (m *mockAdminStore) AdminByUsername(ctx context.Context, username string) (*types.AdminUser, error) {
	if m.byUsernameFunc != nil {
		return m.byUsernameFunc(ctx, username)
	}
	return nil, types.ErrAdminNotFound
}

type mockUploadStore struct {
	saveFunc    func(storedName string, src io.Reader) (int64, error)
	resolveFunc func(storedPath string) (string, error)
}

func (m *mockUploadStore) Save(storedName string, src io.Reader) (int64, error) {
	if m.saveFunc != nil {
		return m.saveFunc(storedName, src)
	}
	return io.Copy(io.Discard, src)
}

func (m *mockUploadStore) PublicPath(storedName string) string {
	return storage.PublicPrefix + "/" + storedName
}

func (m *mockUploadStore) Resolve(storedPath string) (string, error) {
	if m.resolveFunc != nil {
		return m.resolveFunc(storedPath)
	}
	return "", storage.ErrOutsideUploadDir
}

// ---------------------------------------------------------------------------
// Service under test
// ---------------------------------------------------------------------------

type testDeps struct {
	contacts     *mockContactStore
	files        *mockFileStore
	appointments *mockAppointmentStore
	admins       *mockAdminStore
	uploads      UploadStore
}

func testConfig() *types.Config {
	return &types.Config{
		Environment:       "test",
		SessionCookieName: "vitrine_session",
		SessionMaxAgeSec:  3600,
		CookieHashKey:     base64.StdEncoding.EncodeToString(bytes.Repeat([]byte("h"), 32)),
		CookieBlockKey:    base64.StdEncoding.EncodeToString(bytes.Repeat([]byte("b"), 32)),
	}
}

func newTestService(t *testing.T, deps testDeps) *Service {
	t.Helper()

	if deps.contacts == nil {
		deps.contacts = &mockContactStore{}
	}
	if deps.files == nil {
		deps.files = &mockFileStore{}
	}
	if deps.appointments == nil {
		deps.appointments = &mockAppointmentStore{}
	}
	if deps.admins == nil {
		deps.admins = &mockAdminStore{}
	}
	if deps.uploads == nil {
		deps.uploads = &mockUploadStore{}
	}

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	s, err := New(testConfig(), logger, deps.contacts, deps.files, deps.appointments, deps.admins, deps.uploads)
	if err != nil {
		t.Fatalf("failed to build service: %v", err)
	}
	return s
}

func (s *Service) serve(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.server.Handler.ServeHTTP(rec, req)
	return rec
}

// adminCookie returns a valid session cookie with the admin flag raised.
func adminCookie(t *testing.T, s *Service) *http.Cookie {
	t.Helper()

	encoded, err := s.cookie.Encode(s.config.SessionCookieName, types.Session{AdminLoggedIn: true})
	if err != nil {
		t.Fatalf("failed to encode session cookie: %v", err)
	}
	return &http.Cookie{Name: s.config.SessionCookieName, Value: encoded}
}

// sessionFromResponse decodes the session cookie the handler set, if any.
func sessionFromResponse(t *testing.T, s *Service, rec *httptest.ResponseRecorder) types.Session {
	t.Helper()

	for _, c := range rec.Result().Cookies() {
		if c.Name != s.config.SessionCookieName {
			continue
		}
		var sess types.Session
		if err := s.cookie.Decode(s.config.SessionCookieName, c.Value, &sess); err != nil {
			t.Fatalf("failed to decode session cookie: %v", err)
		}
		return sess
	}

	t.Fatal("expected a session cookie in the response")
	return types.Session{}
}

// ---------------------------------------------------------------------------
// Request builders
// ---------------------------------------------------------------------------

func formRequest(target string, fields url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(fields.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

type uploadPart struct {
	fieldName   string
	fileName    string
	contentType string
	content     []byte
}

func multipartRequest(t *testing.T, target string, fields url.Values, parts []uploadPart) *http.Request {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	for key, values := range fields {
		for _, v := range values {
			if err := mw.WriteField(key, v); err != nil {
				t.Fatalf("failed to write field %s: %v", key, err)
			}
		}
	}

	for _, p := range parts {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition",
			`form-data; name="`+p.fieldName+`"; filename="`+p.fileName+`"`)
		header.Set("Content-Type", p.contentType)

		pw, err := mw.CreatePart(header)
		if err != nil {
			t.Fatalf("failed to create part %s: %v", p.fileName, err)
		}
		if _, err := pw.Write(p.content); err != nil {
			t.Fatalf("failed to write part %s: %v", p.fileName, err)
		}
	}

	if err := mw.Close(); err != nil {
		t.Fatalf("failed to close multipart writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, target, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}
