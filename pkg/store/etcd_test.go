package store

import (
	"testing"
	"time"
)

func TestEtcdKeyMapping(t *testing.T) {
	s := &etcd{prefix: "/acrobot/acronyms/"}

	tests := []struct {
		name    string
		acronym string
		want    string
	}{
		{name: "normalized", acronym: "FY", want: "/acrobot/acronyms/FY"},
		{name: "lowercase", acronym: "fy", want: "/acrobot/acronyms/FY"},
		{name: "whitespace", acronym: " ato ", want: "/acrobot/acronyms/ATO"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.key(tt.acronym); got != tt.want {
				t.Errorf("key(%q) = %q, want %q", tt.acronym, got, tt.want)
			}
		})
	}
}

func TestDecodeEntry(t *testing.T) {
	want := Entry{
		Acronym:    "FY",
		Definition: "Fiscal Year",
		AddedBy:    "U123",
		AddedAt:    time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}

	got, err := decodeEntry([]byte(`{"acronym":"FY","definition":"Fiscal Year",` +
		`"added_by":"U123","added_at":"2025-06-01T12:00:00Z"}`))
	if err != nil {
		t.Fatalf("decodeEntry() error: %v", err)
	}
	if got != want {
		t.Errorf("decodeEntry() = %+v, want %+v", got, want)
	}

	if _, err := decodeEntry([]byte("not json")); err == nil {
		t.Error("decodeEntry() with invalid JSON: got nil error")
	}
}
