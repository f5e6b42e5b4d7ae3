package handlers

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/reelhouse/rental/pkg/document"
)

const birthdayLayout = "2006-01-02"

// Custom binding rules. "document" runs the national-ID checksum; "adult"
// requires a birthday at least 18 years in the past. Both operate on the
// raw string so binding never fails before validation gets a say.
func init() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	_ = v.RegisterValidation("document", func(fl validator.FieldLevel) bool {
		return document.Valid(fl.Field().String())
	})
	_ = v.RegisterValidation("adult", func(fl validator.FieldLevel) bool {
		birthday, err := time.Parse(birthdayLayout, fl.Field().String())
		if err != nil {
			return false
		}
		return !birthday.After(time.Now().AddDate(-18, 0, 0))
	})
}

// validationMessage translates a binding failure into the user-facing
// message surfaced with the 400. Field-specific rules get the original
// service's wording; everything else falls back to a generic message.
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		switch verrs[0].Tag() {
		case "document":
			return "Document is not valid!"
		case "adult":
			return "Only people over 18 are allowed."
		case "email":
			return "Email is not valid."
		case "datetime":
			return "Birthday must be a date in YYYY-MM-DD format."
		}
	}
	return "Invalid request body."
}
