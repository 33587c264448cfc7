package valueobject

import (
	"errors"
	"strings"
)

var ErrInvalidDocument = errors.New("document must have 14 digits")

// NormalizeCNPJ strips punctuation from a company registration number and
// checks that 14 digits remain.
func NormalizeCNPJ(raw string) (string, error) {
	var b strings.Builder
	for _, r := range raw {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' || r == '/' || r == '-' || r == ' ':
		default:
			return "", ErrInvalidDocument
		}
	}
	digits := b.String()
	if len(digits) != 14 {
		return "", ErrInvalidDocument
	}
	return digits, nil
}
