package todo

import (
	"errors"
	"strings"
	"testing"
)

func TestPriority_IsValid(t *testing.T) {
	tests := []struct {
		priority Priority
		want     bool
	}{
		{PriorityLow, true},
		{PriorityMedium, true},
		{PriorityHigh, true},
		{0, false},
		{4, false},
		{-1, false},
		{999, false},
	}

	for _, tt := range tests {
		if got := tt.priority.IsValid(); got != tt.want {
			t.Errorf("Priority(%d).IsValid() = %v, want %v", tt.priority, got, tt.want)
		}
	}
}

func TestNormalizeTitle(t *testing.T) {
	tests := []struct {
		name    string
		title   string
		want    string
		wantMsg string
	}{
		{name: "plain", title: "Buy milk", want: "Buy milk"},
		{name: "trimmed", title: "  Buy milk \t", want: "Buy milk"},
		{name: "empty", title: "", wantMsg: MsgTitleRequired},
		{name: "whitespace only", title: "   \n ", wantMsg: MsgTitleRequired},
		{name: "exactly max", title: strings.Repeat("a", MaxTitleLength), want: strings.Repeat("a", MaxTitleLength)},
		{name: "max after trim", title: "  " + strings.Repeat("a", MaxTitleLength) + "  ", want: strings.Repeat("a", MaxTitleLength)},
		{name: "too long", title: strings.Repeat("a", MaxTitleLength+1), wantMsg: MsgTitleTooLong},
		{name: "multibyte counts runes", title: strings.Repeat("é", MaxTitleLength), want: strings.Repeat("é", MaxTitleLength)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, msg := NormalizeTitle(tt.title)
			if msg != tt.wantMsg {
				t.Errorf("NormalizeTitle() msg = %q, want %q", msg, tt.wantMsg)
			}
			if got != tt.want {
				t.Errorf("NormalizeTitle() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValidateFields(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		title, err := ValidateFields(" ok ", PriorityHigh)
		if err != nil {
			t.Fatalf("ValidateFields() error = %v", err)
		}
		if title != "ok" {
			t.Errorf("ValidateFields() title = %q, want %q", title, "ok")
		}
	})

	t.Run("collects every field", func(t *testing.T) {
		_, err := ValidateFields("", 4)

		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("expected *ValidationError, got %T", err)
		}
		if got := verr.Fields[FieldTitle]; len(got) != 1 || got[0] != MsgTitleRequired {
			t.Errorf("title errors = %v", got)
		}
		if got := verr.Fields[FieldPriority]; len(got) != 1 || got[0] != MsgPriority {
			t.Errorf("priority errors = %v", got)
		}
		if !strings.Contains(err.Error(), "Title") || !strings.Contains(err.Error(), "Priority") {
			t.Errorf("Error() = %q, want both messages", err.Error())
		}
	})
}
