package state

import (
	"errors"

	"github.com/go-playground/validator/v10"

	"ramotsav.com/project-ramotsav/models"
)

const (
	msgTitleAndFile     = "Please fill in the title and select a file."
	msgGranthText       = "Please fill in the Granth description."
	msgMediaType        = "Please choose video, image, audio or news."
	msgNameRequired     = "Please enter your name."
	msgEmailInvalid     = "Please enter a valid email address."
	msgBioTooLong       = "Bio must be at most 280 characters."
	msgPasswordTooShort = "Password must be at least 8 characters."
)

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("post_type", func(fl validator.FieldLevel) bool {
		return models.PostType(fl.Field().String()).Valid()
	})
	return v
}

// draftError maps struct validation failures of an upload draft to the
// message the uploader sees. Title and file problems win over the Granth
// description, matching the order the form checks them.
func draftError(err error) error {
	var fields validator.ValidationErrors
	if !errors.As(err, &fields) {
		return invalid(msgTitleAndFile)
	}
	msg := ""
	for _, fe := range fields {
		switch fe.Field() {
		case "Type":
			return invalid(msgMediaType)
		case "Title", "URL":
			msg = msgTitleAndFile
		case "Description":
			if msg == "" {
				msg = msgGranthText
			}
		}
	}
	if msg == "" {
		msg = msgTitleAndFile
	}
	return invalid(msg)
}

func profileError(err error) error {
	var fields validator.ValidationErrors
	if errors.As(err, &fields) && len(fields) > 0 {
		switch fields[0].Field() {
		case "Email":
			return invalid(msgEmailInvalid)
		case "Bio":
			return invalid(msgBioTooLong)
		}
	}
	return invalid(msgNameRequired)
}
