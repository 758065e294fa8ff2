package enquiry

import "errors"

var (
	ErrUnknownProvider = errors.New("enquiry: unknown mail provider")
	ErrNoRecipient     = errors.New("enquiry: no notification recipient; set EMAIL_TO or EMAIL_USER")
	ErrInvalidConfig   = errors.New("enquiry: invalid configuration")
)
