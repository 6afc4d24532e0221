package types

type Config struct {
	Environment     string `envconfig:"ENVIRONMENT" default:"development"`
	ServerPort      uint   `envconfig:"SERVER_PORT" default:"8080"`
	DatabaseURL     string `envconfig:"DATABASE_URL"`
	ReadTimeoutSec  uint   `envconfig:"READ_TIMEOUT_SEC" default:"10"`
	WriteTimeoutSec uint   `envconfig:"WRITE_TIMEOUT_SEC" default:"15"`

	// Document root the public site is served from. Stored file paths are
	// logical paths under this root.
	RootPath string `envconfig:"ROOT_PATH" default:"./public"`

	// Directory contact attachments are written to. Must live under RootPath
	// for the serve-file guard to ever match.
	ContactUploadPath string `envconfig:"CONTACT_UPLOAD_PATH" default:"./public/uploads/contact_files"`

	// Session cookie
	SessionCookieName string `envconfig:"SESSION_COOKIE_NAME" default:"vitrine_session"`
	SessionMaxAgeSec  int    `envconfig:"SESSION_MAX_AGE_SEC" default:"86400"`

	// Cookie encryption keys (base64 encoded)
	// `vitrine keygen` generates a fresh pair
	CookieHashKey  string `envconfig:"COOKIE_HASH_KEY"`  // 32 or 64 bytes
	CookieBlockKey string `envconfig:"COOKIE_BLOCK_KEY"` // 16, 24, or 32 bytes
}
