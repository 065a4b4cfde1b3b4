package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	t.Run("json output", func(t *testing.T) {
		var buf bytes.Buffer
		logger := New(&buf, FormatJSON, false)
		logger.Info("hello", Status(StatusSuccess))

		var record map[string]interface{}
		if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
			t.Fatalf("output is not JSON: %v (%q)", err, buf.String())
		}
		if record["msg"] != "hello" {
			t.Errorf("msg = %v, want hello", record["msg"])
		}
		if record[KeyStatus] != StatusSuccess {
			t.Errorf("status = %v, want %s", record[KeyStatus], StatusSuccess)
		}
	})

	t.Run("text output hides debug by default", func(t *testing.T) {
		var buf bytes.Buffer
		logger := New(&buf, FormatText, false)
		logger.Debug("hidden")
		if buf.Len() != 0 {
			t.Errorf("debug message written at info level: %q", buf.String())
		}
	})

	t.Run("debug enables debug level", func(t *testing.T) {
		var buf bytes.Buffer
		logger := New(&buf, "unknown", true)
		logger.Debug("visible")
		if !strings.Contains(buf.String(), "visible") {
			t.Errorf("debug message missing: %q", buf.String())
		}
	})
}

func TestOperationAttr(t *testing.T) {
	attr := Operation("test_op")
	if attr.Key != KeyOperation {
		t.Errorf("Operation key = %q, want %q", attr.Key, KeyOperation)
	}
	if attr.Value.String() != "test_op" {
		t.Errorf("Operation value = %q, want %q", attr.Value.String(), "test_op")
	}
}

func TestServiceAttr(t *testing.T) {
	attr := Service("gmail")
	if attr.Key != KeyService {
		t.Errorf("Service key = %q, want %q", attr.Key, KeyService)
	}
	if attr.Value.String() != "gmail" {
		t.Errorf("Service value = %q, want %q", attr.Value.String(), "gmail")
	}
}

func TestAttendeesAttr(t *testing.T) {
	attr := Attendees(3)
	if attr.Key != KeyAttendees {
		t.Errorf("Attendees key = %q, want %q", attr.Key, KeyAttendees)
	}
	if attr.Value.Int64() != 3 {
		t.Errorf("Attendees value = %d, want 3", attr.Value.Int64())
	}
}

func TestStatusAttr(t *testing.T) {
	attr := Status(StatusSuccess)
	if attr.Key != KeyStatus {
		t.Errorf("Status key = %q, want %q", attr.Key, KeyStatus)
	}
	if attr.Value.String() != StatusSuccess {
		t.Errorf("Status value = %q, want %q", attr.Value.String(), StatusSuccess)
	}
}

func TestErr(t *testing.T) {
	err := errors.New("test error")
	attr := Err(err)
	if attr.Key != KeyError {
		t.Errorf("Err key = %q, want %q", attr.Key, KeyError)
	}
	if attr.Value.String() != "test error" {
		t.Errorf("Err value = %q, want %q", attr.Value.String(), "test error")
	}

	// Empty Group has empty key
	attr = Err(nil)
	if attr.Key != "" {
		t.Errorf("Err(nil) key = %q, want empty string (empty group)", attr.Key)
	}
}

func TestAnonymize(t *testing.T) {
	tests := []struct {
		value    string
		wantLen  int
		hasValue bool
	}{
		{"jane@example.com", 21, true}, // "user:" + 16 hex chars
		{"109876543210987654321", 21, true},
		{"", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			result := Anonymize(tt.value)
			if tt.hasValue {
				if len(result) != tt.wantLen {
					t.Errorf("Anonymize(%q) length = %d, want %d", tt.value, len(result), tt.wantLen)
				}
				if !strings.HasPrefix(result, "user:") {
					t.Errorf("Anonymize(%q) should start with 'user:', got %q", tt.value, result)
				}
			} else if result != "" {
				t.Errorf("Anonymize(%q) = %q, want empty string", tt.value, result)
			}
		})
	}

	if Anonymize("u1") != Anonymize("u1") {
		t.Error("Anonymize should return deterministic results")
	}
	if Anonymize("u1") == Anonymize("u2") {
		t.Error("Different values should produce different hashes")
	}
}

func TestUserHash(t *testing.T) {
	attr := UserHash("jane@example.com")
	if attr.Key != KeyUserHash {
		t.Errorf("UserHash key = %q, want %q", attr.Key, KeyUserHash)
	}
	if len(attr.Value.String()) != 21 {
		t.Errorf("UserHash value length = %d, want 21", len(attr.Value.String()))
	}
}

func TestSanitizeToken(t *testing.T) {
	tests := []struct {
		token    string
		expected string
	}{
		{"", "<empty>"},
		{"abc123", "[token:6 chars]"},
		{"a_very_long_token_string", "[token:24 chars]"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			result := SanitizeToken(tt.token)
			if result != tt.expected {
				t.Errorf("SanitizeToken(%q) = %q, want %q", tt.token, result, tt.expected)
			}
		})
	}
}

func TestExtractDomain(t *testing.T) {
	tests := []struct {
		email    string
		expected string
	}{
		{"jane@example.com", "example.com"},
		{"user@gmail.com", "gmail.com"},
		{"invalid", ""},
		{"", ""},
		{"user@", ""},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			result := ExtractDomain(tt.email)
			if result != tt.expected {
				t.Errorf("ExtractDomain(%q) = %q, want %q", tt.email, result, tt.expected)
			}
		})
	}
}

func TestDomain(t *testing.T) {
	attr := Domain("jane@example.com")
	if attr.Key != "user_domain" {
		t.Errorf("Domain key = %q, want %q", attr.Key, "user_domain")
	}
	if attr.Value.String() != "example.com" {
		t.Errorf("Domain value = %q, want %q", attr.Value.String(), "example.com")
	}
}
