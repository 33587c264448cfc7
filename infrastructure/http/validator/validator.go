package validator

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/franquianet/portal/domain/valueobject"
)

func ValidateEmail(email string) bool {
	_, err := valueobject.NormalizeEmail(email)
	return err == nil
}

func ValidateRequired(value string) bool {
	return strings.TrimSpace(value) != ""
}

func ValidateUUID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// ValidateOneOf accepts an empty value or one of allowed.
func ValidateOneOf(value string, allowed ...string) bool {
	if value == "" {
		return true
	}
	for _, a := range allowed {
		if value == a {
			return true
		}
	}
	return false
}

// QueryInt returns the integer query parameter key, or 0 when it is missing
// or malformed.
func QueryInt(q url.Values, key string) int {
	n, err := strconv.Atoi(q.Get(key))
	if err != nil {
		return 0
	}
	return n
}
