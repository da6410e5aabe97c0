package websocket

import (
	"testing"

	"levelup/models"
)

func TestShouldReceive(t *testing.T) {
	tests := []struct {
		name         string
		role         string
		label        string
		appReference string
		want         bool
	}{
		{"admin sees everything", models.RoleAdmin, "", "Priya", true},
		{"admin sees unattributed", models.RoleAdmin, "", "", true},
		{"agent sees own reference", models.RoleAgent, "Priya", "Priya", true},
		{"agent blind to others", models.RoleAgent, "Priya", "Ravi", false},
		{"agent blind to unattributed", models.RoleAgent, "Priya", "", false},
		{"reference sees own label", models.RoleReference, "Ravi", "Ravi", true},
		{"reference blind to others", models.RoleReference, "Ravi", "Priya", false},
		{"empty label never matches", models.RoleAgent, "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ShouldReceive(tt.role, tt.label, tt.appReference); got != tt.want {
				t.Fatalf("ShouldReceive(%q, %q, %q) = %v, want %v", tt.role, tt.label, tt.appReference, got, tt.want)
			}
		})
	}
}
