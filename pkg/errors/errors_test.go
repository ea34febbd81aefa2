package errors

import (
	"errors"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidInput, "test message: %s", "value")

	if err.Code != ErrCodeInvalidInput {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidInput)
	}

	if err.Message != "test message: value" {
		t.Errorf("Message = %v, want %v", err.Message, "test message: value")
	}

	expected := "INVALID_INPUT: test message: value"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodeInvalidFormat, cause, "failed to decode")

	if err.Code != ErrCodeInvalidFormat {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidFormat)
	}

	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}

	// Test Unwrap
	unwrapped := errors.Unwrap(err)
	if unwrapped != cause {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}

	// Test errors.Is with wrapped error
	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     Code
		expected bool
	}{
		{
			name:     "matching code",
			err:      New(ErrCodeMalformedAxiom, "test"),
			code:     ErrCodeMalformedAxiom,
			expected: true,
		},
		{
			name:     "non-matching code",
			err:      New(ErrCodeInvalidInput, "test"),
			code:     ErrCodeUnknownEntity,
			expected: false,
		},
		{
			name:     "wrapped error",
			err:      Wrap(ErrCodeInvalidConfig, New(ErrCodeInvalidInput, "inner"), "outer"),
			code:     ErrCodeInvalidConfig,
			expected: true,
		},
		{
			name:     "non-Error type",
			err:      errors.New("plain error"),
			code:     ErrCodeInvalidInput,
			expected: false,
		},
		{
			name:     "nil error",
			err:      nil,
			code:     ErrCodeInvalidInput,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.expected {
				t.Errorf("Is() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected Code
	}{
		{
			name:     "Error type",
			err:      New(ErrCodeUnknownEntity, "test"),
			expected: ErrCodeUnknownEntity,
		},
		{
			name:     "plain error",
			err:      errors.New("plain"),
			expected: "",
		},
		{
			name:     "nil",
			err:      nil,
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCode(tt.err); got != tt.expected {
				t.Errorf("GetCode() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "Error type",
			err:      New(ErrCodeInvalidInput, "friendly message"),
			expected: "friendly message",
		},
		{
			name:     "plain error",
			err:      errors.New("plain error"),
			expected: "plain error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserMessage(tt.err); got != tt.expected {
				t.Errorf("UserMessage() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestAmbiguousError(t *testing.T) {
	t.Run("message lists candidates", func(t *testing.T) {
		err := &AmbiguousError{Ref: "hand", Candidates: []string{"a:hand", "b:hand"}}
		if !strings.Contains(err.Error(), "a:hand, b:hand") {
			t.Errorf("Error() = %v, want candidates listed", err.Error())
		}
	})

	t.Run("code method", func(t *testing.T) {
		err := &AmbiguousError{}
		if err.Code() != ErrCodeAmbiguousIdentifier {
			t.Errorf("Code() = %v, want %v", err.Code(), ErrCodeAmbiguousIdentifier)
		}
	})

	t.Run("extract from chain", func(t *testing.T) {
		inner := &AmbiguousError{Ref: "x", Candidates: []string{"p:x", "q:x"}}
		wrapped := Wrap(ErrCodeInvalidInput, inner, "resolve")
		got, ok := AsAmbiguous(wrapped)
		if !ok || got != inner {
			t.Errorf("AsAmbiguous() = %v, %v, want inner error", got, ok)
		}
		if _, ok := AsAmbiguous(errors.New("plain")); ok {
			t.Error("AsAmbiguous(plain) = true, want false")
		}
	})
}

func TestGetCodeTypedError(t *testing.T) {
	err := Wrap(ErrCodeInvalidConfig, &AmbiguousError{Ref: "x"}, "resolve include")
	if got := GetCode(err); got != ErrCodeInvalidConfig {
		t.Errorf("GetCode() = %v, want %v", got, ErrCodeInvalidConfig)
	}
	if !Is(&AmbiguousError{Ref: "x"}, ErrCodeAmbiguousIdentifier) {
		t.Error("Is(AmbiguousError, AMBIGUOUS_IDENTIFIER) = false, want true")
	}
}
