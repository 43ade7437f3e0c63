// AngelaMos | 2026
// validator.go

package rso

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNoMembers      = errors.New("members list must not be empty")
	ErrDomainMismatch = errors.New("all member emails must share the admin's email domain")
	ErrTooFewMembers  = errors.New("not enough members")
)

// ValidateMembership checks a proposed RSO roster against the admin's
// email domain and returns the combined set: the caller first, then the
// members in input order, lower-cased and without duplicates.
func ValidateMembership(
	callerEmail string,
	members []string,
	minTotal int,
) ([]string, error) {
	if len(members) == 0 {
		return nil, ErrNoMembers
	}

	caller := normalizeEmail(callerEmail)
	domain := domainOf(caller)
	if domain == "" {
		return nil, ErrDomainMismatch
	}

	combined := make([]string, 0, len(members)+1)
	seen := make(map[string]struct{}, len(members)+1)

	add := func(email string) error {
		if domainOf(email) != domain {
			return ErrDomainMismatch
		}
		if _, dup := seen[email]; dup {
			return nil
		}
		seen[email] = struct{}{}
		combined = append(combined, email)
		return nil
	}

	if err := add(caller); err != nil {
		return nil, err
	}
	for _, m := range members {
		if err := add(normalizeEmail(m)); err != nil {
			return nil, err
		}
	}

	if len(combined) < minTotal {
		return nil, fmt.Errorf(
			"%w: need at least %d distinct emails including the admin, got %d",
			ErrTooFewMembers, minTotal, len(combined),
		)
	}

	return combined, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// domainOf returns the part after the last @, or "" when there is no
// local part or no domain.
func domainOf(email string) string {
	at := strings.LastIndex(email, "@")
	if at <= 0 || at == len(email)-1 {
		return ""
	}
	return email[at+1:]
}
