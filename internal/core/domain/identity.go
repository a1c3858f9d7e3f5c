package domain

import "strings"

// NotVisible is the sentinel the extraction model is instructed to use for
// any field it cannot read off the document. Absence is never represented by
// an empty field on the wire.
const NotVisible = "Not visible"

// ExtractedIdentity is the structured record recovered from a document image
// by the extraction model. It is created fresh on every successful extraction
// and replaced wholesale, never merged.
type ExtractedIdentity struct {
	Name           string `json:"name"`
	DocumentNumber string `json:"aadhar_number"`
	DateOfBirth    string `json:"date_of_birth"`
	Gender         string `json:"gender"`
	Address        string `json:"address"`
	GuardianName   string `json:"guardian_name"`
	Phone          string `json:"phone"`
}

// HasPhone reports whether the model recovered a phone number at all.
func (e *ExtractedIdentity) HasPhone() bool {
	return e.Phone != "" && e.Phone != NotVisible
}

// HasDocumentNumber reports whether the model recovered a document number.
func (e *ExtractedIdentity) HasDocumentNumber() bool {
	return e.DocumentNumber != "" && e.DocumentNumber != NotVisible
}

// RegistrationDraft holds the user-entered portion of a registration. The
// fields are gathered conversationally and validated all-or-nothing when the
// user submits.
type RegistrationDraft struct {
	Email string
	City  string
	State string
}

// FieldError reports a single invalid draft field with a user-facing message.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return e.Field + ": " + e.Message
}

// Validate checks the draft per the submission rules: email must be non-empty
// and contain both '@' and '.'; city and state must be non-empty after
// trimming. The first failing field is reported; nothing is submitted
// partially.
func (d *RegistrationDraft) Validate() error {
	email := strings.TrimSpace(d.Email)
	if email == "" || !strings.Contains(email, "@") || !strings.Contains(email, ".") {
		return &FieldError{Field: "email", Message: "Please provide a valid email address."}
	}
	if strings.TrimSpace(d.City) == "" {
		return &FieldError{Field: "city", Message: "City must not be empty."}
	}
	if strings.TrimSpace(d.State) == "" {
		return &FieldError{Field: "state", Message: "State must not be empty."}
	}
	return nil
}

// RegistrationPayload is the wire record submitted to the voter registry.
// No identifiers are generated client-side; the registry assigns durable
// identity.
type RegistrationPayload struct {
	Name           string `json:"name"`
	DocumentNumber string `json:"documentNumber"`
	DOB            string `json:"dob"`
	PhoneNumber    string `json:"phoneNumber"`
	Email          string `json:"email"`
	City           string `json:"city"`
	State          string `json:"state"`
	Gender         string `json:"gender"`
}
