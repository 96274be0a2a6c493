package services

import (
	"errors"
	"regexp"
	"sort"
	"strings"

	"sparkmeals/models"
)

var (
	phonePattern = regexp.MustCompile(`^\+?[0-9]{10,15}$`)
	emailPattern = regexp.MustCompile(`\S+@\S+\.\S+`)
)

const (
	FieldFullName    = "fullName"
	FieldPhoneNumber = "phoneNumber"
	FieldEmail       = "email"
	FieldAddress     = "address"
	FieldQuantity    = "quantity"
)

// FieldErrors maps a form field name to its user-facing message.
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	keys := make([]string, 0, len(e))
	for k := range e {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e[k])
	}
	return "invalid order form: " + strings.Join(parts, "; ")
}

// IsValidation reports whether err carries form field errors.
func IsValidation(err error) bool {
	var fe FieldErrors
	return errors.As(err, &fe)
}

// ValidateField returns the message for one field, or "" when the value is acceptable.
func ValidateField(name, value string) string {
	switch name {
	case FieldFullName:
		if value == "" {
			return "Full name is required"
		}
	case FieldPhoneNumber:
		if value == "" {
			return "Phone number is required"
		}
		if !phonePattern.MatchString(value) {
			return "Please enter a valid phone number"
		}
	case FieldEmail:
		if value == "" {
			return "Email is required"
		}
		if !emailPattern.MatchString(value) {
			return "Please enter a valid email address"
		}
	case FieldAddress:
		if value == "" {
			return "Delivery address is required"
		}
	}
	return ""
}

func ValidateQuantity(quantity int) string {
	if quantity < 1 {
		return "Quantity must be at least 1"
	}
	return ""
}

// ValidateOrderForm returns nil or a FieldErrors with every failing field.
func ValidateOrderForm(form models.FormData, quantity int) error {
	errs := FieldErrors{}
	check := func(name, value string) {
		if msg := ValidateField(name, value); msg != "" {
			errs[name] = msg
		}
	}
	check(FieldFullName, strings.TrimSpace(form.FullName))
	check(FieldPhoneNumber, strings.TrimSpace(form.PhoneNumber))
	check(FieldEmail, strings.TrimSpace(form.Email))
	check(FieldAddress, strings.TrimSpace(form.Address))
	if msg := ValidateQuantity(quantity); msg != "" {
		errs[FieldQuantity] = msg
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}
