package valueobject

import (
	"errors"
	"strings"
)

var ErrInvalidState = errors.New("state must be a valid 2-letter UF code")

var brazilianStates = map[string]struct{}{
	"AC": {}, "AL": {}, "AP": {}, "AM": {}, "BA": {}, "CE": {}, "DF": {}, "ES": {}, "GO": {},
	"MA": {}, "MT": {}, "MS": {}, "MG": {}, "PA": {}, "PB": {}, "PR": {}, "PE": {}, "PI": {},
	"RJ": {}, "RN": {}, "RS": {}, "RO": {}, "RR": {}, "SC": {}, "SP": {}, "SE": {}, "TO": {},
}

// NormalizeState upper-cases a federative unit code and checks it exists.
func NormalizeState(raw string) (string, error) {
	uf := strings.ToUpper(strings.TrimSpace(raw))
	if _, ok := brazilianStates[uf]; !ok {
		return "", ErrInvalidState
	}
	return uf, nil
}
