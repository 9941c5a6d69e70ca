package validation

import (
	"encoding/json"
	"testing"

	"github.com/go-playground/validator/v10"
)

type sample struct {
	Email    string `json:"email" validate:"required,email"`
	Nickname string `json:"nickname" validate:"required"`
}

func TestToDetails(t *testing.T) {
	v := validator.New()

	t.Run("maps validation errors to field messages", func(t *testing.T) {
		err := v.Struct(sample{Email: "not-an-email"})
		details := ToDetails(err)
		if len(details) != 2 {
			t.Fatalf("details = %v, want 2 entries", details)
		}
		if details["Email"] != "must be a valid email" {
			t.Errorf("email detail = %q", details["Email"])
		}
		if details["Nickname"] != "is required" {
			t.Errorf("nickname detail = %q", details["Nickname"])
		}
	})

	t.Run("flags invalid json payloads", func(t *testing.T) {
		var dst sample
		err := json.Unmarshal([]byte("{"), &dst)
		details := ToDetails(err)
		if details["payload"] != "invalid json" {
			t.Errorf("details = %v", details)
		}
	})

	t.Run("returns nil for nil error", func(t *testing.T) {
		if d := ToDetails(nil); d != nil {
			t.Errorf("details = %v, want nil", d)
		}
	})
}
