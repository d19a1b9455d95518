package domain

import (
	"errors"
	"strings"
	"testing"
)

func TestTruncateBody(t *testing.T) {
	short := "short body"
	if got := TruncateBody(short); got != short {
		t.Errorf("short body changed: %q", got)
	}

	long := strings.Repeat("a", MaxBodyLength+1)
	if got := TruncateBody(long); len(got) != MaxBodyLength {
		t.Errorf("len = %d, want %d", len(got), MaxBodyLength)
	}

	// Rune-based, not byte-based: multibyte text must not be split mid-rune.
	wide := strings.Repeat("é", MaxBodyLength+10)
	got := TruncateBody(wide)
	if n := len([]rune(got)); n != MaxBodyLength {
		t.Errorf("rune count = %d, want %d", n, MaxBodyLength)
	}
}

func TestValidateAlertInput(t *testing.T) {
	if err := ValidateAlertInput([]string{"crm"}, []string{"SaaS"}); err != nil {
		t.Errorf("valid input rejected: %v", err)
	}
	if err := ValidateAlertInput([]string{" ", ""}, []string{"SaaS"}); !errors.Is(err, ErrNoKeywords) {
		t.Errorf("blank keywords error = %v", err)
	}
	if err := ValidateAlertInput([]string{"crm"}, nil); !errors.Is(err, ErrNoCommunities) {
		t.Errorf("no communities error = %v", err)
	}
}

func TestValidateScanInput(t *testing.T) {
	if err := ValidateScanInput([]string{"SaaS"}, SortTop, "week"); err != nil {
		t.Errorf("valid input rejected: %v", err)
	}
	if err := ValidateScanInput([]string{"SaaS"}, SortNew, ""); err != nil {
		t.Errorf("empty window rejected: %v", err)
	}
	if err := ValidateScanInput([]string{"SaaS"}, "best", ""); !errors.Is(err, ErrUnknownSort) {
		t.Errorf("unknown sort error = %v", err)
	}
	if err := ValidateScanInput([]string{"SaaS"}, SortTop, "fortnight"); !errors.Is(err, ErrUnknownWindow) {
		t.Errorf("unknown window error = %v", err)
	}
}

func TestValidationErrorUnwrap(t *testing.T) {
	err := NewValidationError("sort", "best", ErrUnknownSort)
	if !errors.Is(err, ErrUnknownSort) {
		t.Error("Unwrap lost the sentinel")
	}
	if msg := err.Error(); !strings.Contains(msg, "sort") || !strings.Contains(msg, "best") {
		t.Errorf("message = %q, want field and value", msg)
	}
}
