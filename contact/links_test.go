package contact

import (
	"net/url"
	"strings"
	"testing"
)

func TestDigits(t *testing.T) {
	tests := []struct{ in, want string }{
		{"9876543210", "9876543210"},
		{"(987) 654-3210", "9876543210"},
		{"+91 98765 43210", "919876543210"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := Digits(tt.in); got != tt.want {
			t.Fatalf("Digits(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestWhatsAppLink(t *testing.T) {
	link := WhatsAppLink("98765-43210", "Aarav", "Priya")

	u, err := url.Parse(link)
	if err != nil {
		t.Fatalf("link does not parse: %v", err)
	}
	if u.Host != "wa.me" {
		t.Fatalf("host = %q, want wa.me", u.Host)
	}
	if u.Path != "/919876543210" {
		t.Fatalf("path = %q, want /919876543210", u.Path)
	}

	msg := u.Query().Get("text")
	if !strings.Contains(msg, "Hi Aarav") || !strings.Contains(msg, "Priya") {
		t.Fatalf("message %q missing applicant or recruiter name", msg)
	}
}

func TestWhatsAppLinkWithoutRecruiter(t *testing.T) {
	link := WhatsAppLink("9876543210", "Aarav", "")
	u, err := url.Parse(link)
	if err != nil {
		t.Fatalf("link does not parse: %v", err)
	}
	msg := u.Query().Get("text")
	if !strings.Contains(msg, "thank you for applying as SRM") {
		t.Fatalf("fallback greeting missing, got %q", msg)
	}
}

func TestWhatsAppLinkKeepsExistingCountryCode(t *testing.T) {
	link := WhatsAppLink("+91 9876543210", "Aarav", "")
	if !strings.Contains(link, "wa.me/919876543210?") {
		t.Fatalf("country code doubled or dropped: %q", link)
	}
}

func TestTelLink(t *testing.T) {
	if got := TelLink("9876543210"); got != "tel:+919876543210" {
		t.Fatalf("TelLink = %q, want tel:+919876543210", got)
	}
	if got := TelLink("919876543210"); got != "tel:+919876543210" {
		t.Fatalf("TelLink with code = %q, want tel:+919876543210", got)
	}
}
