package schema

import (
	"encoding/json"
	"testing"

	"github.com/matzehuels/stenoboard/pkg/errors"
)

func TestDocumentIsValidJSON(t *testing.T) {
	var v map[string]any
	if err := json.Unmarshal(Document(), &v); err != nil {
		t.Fatalf("bundled schema is not JSON: %v", err)
	}
	if v["$id"] != ID {
		t.Errorf("$id = %v, want %v", v["$id"], ID)
	}
}

func TestValidateBytes(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantCode errors.Code
	}{
		{"minimal", `{"keys": []}`, ""},
		{"full", `{
			"name": "Test", "font": "Arial", "font_color": "#000",
			"background_color": "white", "margin": 0, "key_width": 30, "key_height": 35,
			"keys": [{"name": "S-", "label": "S", "x": 0, "y": 1, "width": 1, "height": 2,
			          "is_round_top": false, "is_round_bottom": true, "font_color": "#FFFFFF",
			          "stroke_color": "#80FF0000", "color": "", "color_pressed": "#FF0000"}]
		}`, ""},
		{"legacy position", `{"keys": [{"position_x": 1, "position_y": 2}]}`, ""},
		{"extra fields ignored", `{"version": 2, "keys": [{"comment": "x"}]}`, ""},

		{"missing keys", `{"name": "No keys"}`, errors.ErrCodeSchemaViolation},
		{"keys not array", `{"keys": {}}`, errors.ErrCodeSchemaViolation},
		{"top-level array", `[]`, errors.ErrCodeSchemaViolation},
		{"name wrong type", `{"name": 5, "keys": []}`, errors.ErrCodeSchemaViolation},
		{"negative margin", `{"margin": -1, "keys": []}`, errors.ErrCodeSchemaViolation},
		{"zero key width", `{"key_width": 0, "keys": []}`, errors.ErrCodeSchemaViolation},
		{"key not object", `{"keys": ["S-"]}`, errors.ErrCodeSchemaViolation},
		{"key x string", `{"keys": [{"x": "1"}]}`, errors.ErrCodeSchemaViolation},
		{"key bool wrong", `{"keys": [{"is_round_top": "yes"}]}`, errors.ErrCodeSchemaViolation},
		{"key zero height", `{"keys": [{"height": 0}]}`, errors.ErrCodeSchemaViolation},
		{"bad color", `{"keys": [{"color": "#12"}]}`, errors.ErrCodeSchemaViolation},

		{"empty", ``, errors.ErrCodeInvalidJSON},
		{"truncated", `{"keys": [`, errors.ErrCodeInvalidJSON},
		{"trailing data", `{"keys": []} {}`, errors.ErrCodeInvalidJSON},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateBytes([]byte(tt.input))
			if tt.wantCode == "" {
				if err != nil {
					t.Errorf("ValidateBytes() error = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantCode) {
				t.Errorf("ValidateBytes() error = %v, want code %v", err, tt.wantCode)
			}
		})
	}
}
