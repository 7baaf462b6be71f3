package models

import (
	"testing"
)

// FuzzParseCCA3 checks that parsing never panics and that every accepted
// code is three uppercase ASCII letters which round-trip through String.
func FuzzParseCCA3(f *testing.F) {
	f.Add("")
	f.Add("USA")
	f.Add("us")
	f.Add("ÄÖÜ")
	f.Add("AB\x00")
	f.Add("ABCD")

	f.Fuzz(func(t *testing.T, input string) {
		code, err := ParseCCA3(input)
		if err != nil {
			return
		}
		if code.String() != input {
			t.Errorf("round trip changed value: %q -> %q", input, code.String())
		}
		if len(input) != 3 {
			t.Errorf("accepted input of length %d", len(input))
		}
		for i := 0; i < len(input); i++ {
			if input[i] < 'A' || input[i] > 'Z' {
				t.Errorf("accepted non-uppercase byte %q", input[i])
			}
		}
	})
}
