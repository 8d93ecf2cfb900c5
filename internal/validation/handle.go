// Package validation provides input validation utilities.
package validation

import (
	"fmt"
	"regexp"
	"strings"
)

var handleRegex = regexp.MustCompile(`^[A-Za-z0-9_]{3,30}$`)

// Reserved handles that collide with routes or system names.
var reservedHandles = map[string]struct{}{
	"admin":    {},
	"api":      {},
	"auth":     {},
	"me":       {},
	"explore":  {},
	"feed":     {},
	"stories":  {},
	"feedback": {},
	"users":    {},
	"content":  {},
	"comments": {},
	"login":    {},
	"signup":   {},
	"logout":   {},
	"guest":    {},
	"metrics":  {},
	"health":   {},
}

// GuestHandlePrefix marks machine-generated guest handles. Registration may
// not claim handles under this prefix; guest creation owns it.
const GuestHandlePrefix = "Guest_"

// ValidateHandle validates handle format and reserved names for
// registration and rename.
func ValidateHandle(handle string) error {
	if !handleRegex.MatchString(handle) {
		return fmt.Errorf("handle must be 3-30 characters and contain only letters, numbers, and underscores")
	}

	if _, exists := reservedHandles[strings.ToLower(handle)]; exists {
		return fmt.Errorf("handle is reserved")
	}

	if strings.HasPrefix(handle, GuestHandlePrefix) {
		return fmt.Errorf("handles starting with %q are reserved for guest sessions", GuestHandlePrefix)
	}

	return nil
}

var emailRegex = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// ValidateEmail checks basic email shape. Deliverability is not our problem.
func ValidateEmail(email string) error {
	if len(email) > 254 || !emailRegex.MatchString(email) {
		return fmt.Errorf("invalid email address")
	}
	return nil
}
