package models

import (
	"fmt"

	dErrors "worldranks/pkg/domain-errors"
)

// CCA3 is an ISO 3166-1 alpha-3 country code: exactly three ASCII uppercase
// letters. The zero value is not a valid code.
type CCA3 struct {
	code [3]byte
}

// ParseCCA3 validates s and returns it as a CCA3.
func ParseCCA3(s string) (CCA3, error) {
	if len(s) != 3 {
		return CCA3{}, invalidCCA3(s)
	}
	var c CCA3
	for i := 0; i < 3; i++ {
		b := s[i]
		if b < 'A' || b > 'Z' {
			return CCA3{}, invalidCCA3(s)
		}
		c.code[i] = b
	}
	return c, nil
}

// MustCCA3 is ParseCCA3 for constants and fixtures; it panics on bad input.
func MustCCA3(s string) CCA3 {
	c, err := ParseCCA3(s)
	if err != nil {
		panic(err)
	}
	return c
}

func invalidCCA3(s string) error {
	return dErrors.New(dErrors.CodeInvalidInput,
		fmt.Sprintf("invalid country code %q: must be exactly 3 uppercase ASCII letters (ISO 3166-1 alpha-3)", s))
}

func (c CCA3) String() string {
	if c.IsZero() {
		return ""
	}
	return string(c.code[:])
}

// IsZero reports whether c is the unset value.
func (c CCA3) IsZero() bool {
	return c == CCA3{}
}

func (c CCA3) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *CCA3) UnmarshalText(text []byte) error {
	parsed, err := ParseCCA3(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
