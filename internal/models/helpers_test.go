package models

import "testing"

func TestParseMetadata(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    map[string]any
		wantErr bool
	}{
		{"empty", "", nil, false},
		{"whitespace only", "   ", nil, false},
		{"tabs and newlines", " \n\t ", nil, false},
		{"empty object", "{}", map[string]any{}, false},
		{"simple object", `{"category":"docs"}`, map[string]any{"category": "docs"}, false},
		{"nested object", `{"tags":["api","v2"]}`, map[string]any{"tags": []any{"api", "v2"}}, false},
		{"invalid json", "{invalid}", nil, true},
		{"array not object", "[1,2]", nil, true},
		{"bare string", `"hello"`, nil, true},
		{"trailing garbage", `{"a":1} x`, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseMetadata(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseMetadata(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if len(got) != len(tt.want) {
				t.Errorf("ParseMetadata(%q) = %v, want %v", tt.in, got, tt.want)
			}
			for k, v := range tt.want {
				if _, arr := v.([]any); arr {
					continue
				}
				if got[k] != v {
					t.Errorf("ParseMetadata(%q)[%q] = %v, want %v", tt.in, k, got[k], v)
				}
			}
		})
	}
}

func TestFormatSourceBadge(t *testing.T) {
	tests := []struct {
		name string
		in   Source
		want string
	}{
		{"high score", Source{Title: "Policy", Score: 0.92}, "Policy (92% match)"},
		{"perfect score", Source{Title: "FAQ", Score: 1}, "FAQ (100% match)"},
		{"zero score", Source{Title: "Misc", Score: 0}, "Misc (0% match)"},
		{"rounds to nearest", Source{Title: "Guide", Score: 0.456}, "Guide (46% match)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatSourceBadge(tt.in); got != tt.want {
				t.Errorf("FormatSourceBadge() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNewUserMessage(t *testing.T) {
	m := NewUserMessage("hello")
	if m.Role != RoleUser {
		t.Errorf("role = %q, want %q", m.Role, RoleUser)
	}
	if m.Content != "hello" {
		t.Errorf("content = %q, want %q", m.Content, "hello")
	}
	if m.ID == "" {
		t.Error("expected a client-generated id")
	}
	if m.Timestamp.IsZero() {
		t.Error("expected a timestamp")
	}

	other := NewUserMessage("hello")
	if other.ID == m.ID {
		t.Error("two messages share an id")
	}
}
