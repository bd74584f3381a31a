package domain

import (
	"strings"
	"testing"
)

func TestNewId(t *testing.T) {
	id, err := NewId("0123456789abcdef0123456789abcdef")
	if err != nil {
		t.Fatalf("NewId error: %v", err)
	}
	if got := id.String(); got != "0123456789abcdef0123456789abcdef" {
		t.Errorf("unexpected token: %s", got)
	}
	if id.IsZero() {
		t.Error("valid id reported as zero")
	}
}

func TestNewIdCanonicalisesCase(t *testing.T) {
	upper, err := NewId("0123456789ABCDEF0123456789ABCDEF")
	if err != nil {
		t.Fatalf("NewId error: %v", err)
	}
	lower, err := NewId("0123456789abcdef0123456789abcdef")
	if err != nil {
		t.Fatalf("NewId error: %v", err)
	}
	if upper != lower {
		t.Errorf("case variants must compare equal: %s vs %s", upper, lower)
	}
}

func TestNewIdRejectsMalformedTokens(t *testing.T) {
	cases := map[string]string{
		"empty":     "",
		"short":     "0123456789abcdef",
		"long":      strings.Repeat("a", 33),
		"nonHex":    "0123456789abcdeg0123456789abcdef",
		"separator": "01234567-89ab-cdef-0123-456789abcdef",
	}
	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := NewId(input); err == nil {
				t.Errorf("expected error for %q", input)
			}
		})
	}
}

func TestNewUniqueId(t *testing.T) {
	a := NewUniqueId()
	b := NewUniqueId()
	if a == b {
		t.Error("unique ids collided")
	}
	// a minted id must satisfy the same format as a parsed one
	if _, err := NewId(a.String()); err != nil {
		t.Errorf("minted id %s fails validation: %v", a, err)
	}
}
