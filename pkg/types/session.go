package types

// Session is the server-issued state carried by the encrypted session
// cookie: the admin flag consumed by the file-serving endpoint and the
// one-shot flash messages the next rendered page displays.
type Session struct {
	AdminLoggedIn  bool   `json:"admin_logged_in"`
	SuccessMessage string `json:"success_message,omitempty"`
	ErrorMessage   string `json:"error_message,omitempty"`
}
