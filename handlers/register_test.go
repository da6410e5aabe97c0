package handlers

import (
	"strings"
	"testing"
)

func validRequest() RegisterRequest {
	return RegisterRequest{
		FullName:           "Aarav Sharma",
		Email:              "aarav@example.com",
		Phone:              "9876543210",
		City:               "Hyderabad",
		WorkingHours:       "Morning",
		WeeklyAvailability: "12 hrs",
		WhyThisRole:        strings.Repeat("I want to help students level up. ", 3),
		Reference:          "Priya",
	}
}

func TestValidateRegistrationAccepts(t *testing.T) {
	if errs := ValidateRegistration(validRequest()); len(errs) != 0 {
		t.Fatalf("valid request rejected: %v", errs)
	}
}

func TestValidateRegistrationFields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*RegisterRequest)
		field  string
	}{
		{"empty name", func(r *RegisterRequest) { r.FullName = "   " }, "fullName"},
		{"empty email", func(r *RegisterRequest) { r.Email = "" }, "email"},
		{"bad email", func(r *RegisterRequest) { r.Email = "not-an-email" }, "email"},
		{"email with spaces", func(r *RegisterRequest) { r.Email = "a b@example.com" }, "email"},
		{"empty phone", func(r *RegisterRequest) { r.Phone = "" }, "phone"},
		{"short phone", func(r *RegisterRequest) { r.Phone = "12345" }, "phone"},
		{"long phone", func(r *RegisterRequest) { r.Phone = "98765432101" }, "phone"},
		{"empty city", func(r *RegisterRequest) { r.City = "" }, "city"},
		{"missing hours", func(r *RegisterRequest) { r.WorkingHours = "" }, "workingHours"},
		{"unknown hours", func(r *RegisterRequest) { r.WorkingHours = "Night" }, "workingHours"},
		{"missing availability", func(r *RegisterRequest) { r.WeeklyAvailability = "" }, "weeklyAvailability"},
		{"unknown availability", func(r *RegisterRequest) { r.WeeklyAvailability = "5 hrs" }, "weeklyAvailability"},
		{"empty motivation", func(r *RegisterRequest) { r.WhyThisRole = "" }, "whyThisRole"},
		{"short motivation", func(r *RegisterRequest) { r.WhyThisRole = "I like it" }, "whyThisRole"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(&req)
			errs := ValidateRegistration(req)
			if _, ok := errs[tt.field]; !ok {
				t.Fatalf("expected error on %q, got %v", tt.field, errs)
			}
		})
	}
}

// Separators are stripped before the 10-digit check, same as the form input.
func TestValidateRegistrationPhoneFormatting(t *testing.T) {
	req := validRequest()
	req.Phone = "(987) 654-3210"
	if errs := ValidateRegistration(req); len(errs) != 0 {
		t.Fatalf("formatted phone rejected: %v", errs)
	}
}

func TestValidateRegistrationMotivationBoundary(t *testing.T) {
	req := validRequest()

	req.WhyThisRole = strings.Repeat("a", whyThisRoleMinLen-1)
	if errs := ValidateRegistration(req); errs["whyThisRole"] == "" {
		t.Fatalf("motivation below minimum accepted")
	}

	req.WhyThisRole = strings.Repeat("a", whyThisRoleMinLen)
	if errs := ValidateRegistration(req); len(errs) != 0 {
		t.Fatalf("motivation at minimum rejected: %v", errs)
	}

	// Surrounding whitespace does not count toward the minimum.
	req.WhyThisRole = "  " + strings.Repeat("a", whyThisRoleMinLen-1) + "  "
	if errs := ValidateRegistration(req); errs["whyThisRole"] == "" {
		t.Fatalf("padded motivation below minimum accepted")
	}
}

// Optional profile fields never block a submission.
func TestValidateRegistrationOptionalFields(t *testing.T) {
	req := validRequest()
	req.Age = 0
	req.Gender = ""
	req.Education = ""
	req.CurrentPosition = ""
	req.Reference = ""
	if errs := ValidateRegistration(req); len(errs) != 0 {
		t.Fatalf("request without optional fields rejected: %v", errs)
	}
}
