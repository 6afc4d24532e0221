package types

// ContactForm carries the decoded fields of a contact-form POST.
// SlotID stays a string here; the handler validates it as a positive
// integer, matching what the booking widget submits.
type ContactForm struct {
	Name            string `form:"name"`
	Email           string `form:"email"`
	Phone           string `form:"phone"`
	Subject         string `form:"subject"`
	Message         string `form:"message"`
	AppointmentDate string `form:"appointment_date"`
	SlotID          string `form:"slot_id"`
}

// LoginForm carries the admin login POST.
type LoginForm struct {
	Username string `form:"username"`
	Password string `form:"password"`
}
