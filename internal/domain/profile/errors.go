package profile

// FieldError is a form validation failure. Message is shown to the user as is.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return e.Field + ": " + e.Message
}
