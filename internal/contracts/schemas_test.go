package contracts

import (
	"testing"
)

func TestGenerateKeyFromPath(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"events/listing-lifecycle/v1.json", "ListingLifecycleEvent/1.0.0"},
		{"events/bad-path-too/deep/v1.json", ""},
	}
	for _, tt := range tests {
		if got := generateKeyFromPath(tt.path); got != tt.want {
			t.Errorf("generateKeyFromPath(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestValidateEventLifecycle(t *testing.T) {
	valid := []byte(`{
		"listingId": "550e8400-e29b-41d4-a716-446655440000",
		"managerId": "mgr-42",
		"action": "created",
		"occurredAt": "2026-03-01T12:00:00Z"
	}`)
	if err := ValidateEvent("ListingLifecycleEvent", "1.0.0", valid); err != nil {
		t.Fatalf("valid payload rejected: %v", err)
	}

	tests := []struct {
		name string
		body string
	}{
		{"missing managerId", `{"listingId": "550e8400-e29b-41d4-a716-446655440000", "action": "created", "occurredAt": "2026-03-01T12:00:00Z"}`},
		{"unknown action", `{"listingId": "550e8400-e29b-41d4-a716-446655440000", "managerId": "m", "action": "archived", "occurredAt": "2026-03-01T12:00:00Z"}`},
		{"extra field", `{"listingId": "550e8400-e29b-41d4-a716-446655440000", "managerId": "m", "action": "deleted", "occurredAt": "2026-03-01T12:00:00Z", "extra": 1}`},
		{"not json", `{{{`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := ValidateEvent("ListingLifecycleEvent", "1.0.0", []byte(tt.body)); err == nil {
				t.Error("invalid payload accepted")
			}
		})
	}
}

func TestValidateEventUnknownSchema(t *testing.T) {
	if err := ValidateEvent("NoSuchEvent", "1.0.0", []byte(`{}`)); err == nil {
		t.Error("unknown schema must be rejected")
	}
}
