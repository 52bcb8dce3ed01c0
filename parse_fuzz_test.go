package calc_test

import (
	"testing"

	"github.com/zephyrtronium/calc"
)

func FuzzParse(f *testing.F) {
	f.Add("1")
	f.Add("(1+1)*2+4!")
	f.Add("2^-3^-4")
	f.Add("1.2++=+")
	f.Fuzz(func(t *testing.T, s string) {
		a, err := calc.ParseString(s)
		if err != nil {
			if !calc.IsParseError(err) {
				t.Errorf("%q: parse failed with %T: %v", s, err, err)
			}
			return
		}
		// The formatted expression must parse back.
		if _, err := calc.ParseString(a.String()); err != nil {
			t.Errorf("%q formatted as %q, which does not parse: %v", s, a, err)
		}
	})
}
