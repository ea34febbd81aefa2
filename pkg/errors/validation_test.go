package errors

import (
	"testing"
)

func TestValidateIdentifier(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid short id", "hand", false},
		{"valid curie", "UBERON:0002398", false},
		{"valid iri", "http://purl.obolibrary.org/obo/UBERON_0002398", false},

		{"empty", "", true},
		{"too long", strings1025(), true},
		{"space", "left hand", true},
		{"null byte", "foo\x00bar", true},
		{"newline", "foo\nbar", true},
		{"tab", "foo\tbar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateIdentifier(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateIdentifier(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantCode Code
	}{
		{"valid toml", "anatomy.toml", ""},
		{"valid yaml", "dir/anatomy.yaml", ""},
		{"valid yml upper", "ANATOMY.YML", ""},

		{"empty", "", ErrCodeInvalidPath},
		{"null byte", "foo\x00.toml", ErrCodeInvalidPath},
		{"control char", "foo\x01.toml", ErrCodeInvalidPath},
		{"unsupported ext", "anatomy.owl", ErrCodeInvalidFormat},
		{"no ext", "anatomy", ErrCodeInvalidFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.input)
			if got := GetCode(err); got != tt.wantCode {
				t.Errorf("ValidatePath(%q) code = %v, want %v", tt.input, got, tt.wantCode)
			}
		})
	}
}

func strings1025() string {
	b := make([]byte, 1025)
	for i := range b {
		b[i] = 'a'
	}
	return string(b)
}
