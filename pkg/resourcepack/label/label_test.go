package label

import (
	"errors"
	"testing"

	rperrors "github.com/provide-io/rankpack/pkg/resourcepack/errors"
)

func TestValidate(t *testing.T) {
	testCases := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{name: "plain", raw: "vip", want: "vip"},
		{name: "capitals kept", raw: "VIP", want: "VIP"},
		{name: "inner space kept", raw: "big boss", want: "big boss"},
		{name: "trimmed", raw: "  mvp\t", want: "mvp"},
		{name: "unicode", raw: "ранг", want: "ранг"},
		{name: "empty", raw: "", wantErr: true},
		{name: "whitespace only", raw: " \t\n ", wantErr: true},
		{name: "slash", raw: "a/b", wantErr: true},
		{name: "backslash", raw: `a\b`, wantErr: true},
		{name: "dot", raw: ".", wantErr: true},
		{name: "dotdot", raw: "..", wantErr: true},
		{name: "nul", raw: "a\x00b", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Validate(tc.raw)
			if tc.wantErr {
				if !errors.Is(err, rperrors.ErrValidation) {
					t.Fatalf("Validate(%q) error = %v, want ErrValidation", tc.raw, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Validate(%q) unexpected error: %v", tc.raw, err)
			}
			if got != tc.want {
				t.Errorf("Validate(%q) = %q, want %q", tc.raw, got, tc.want)
			}
		})
	}
}

func TestValidatePackName(t *testing.T) {
	if got, err := ValidatePackName(" Example "); err != nil || got != "Example" {
		t.Fatalf("ValidatePackName = %q, %v", got, err)
	}
	if _, err := ValidatePackName(""); !errors.Is(err, rperrors.ErrValidation) {
		t.Fatalf("empty pack name error = %v, want ErrValidation", err)
	}
}
