// Package contact builds the outreach deep links the dashboards open for an
// applicant: a WhatsApp chat with a templated greeting and a tel: link.
package contact

import (
	"fmt"
	"net/url"
	"strings"
)

// CountryCode is prefixed to the stored 10-digit numbers for WhatsApp and
// dialing, matching the market the program recruits in.
const CountryCode = "91"

// Digits strips everything but digits from a phone number.
func Digits(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// WhatsAppMessage is the greeting sent to an applicant, optionally signed
// with the recruiter's name.
func WhatsAppMessage(applicantName, recruiterName string) string {
	if recruiterName == "" {
		return fmt.Sprintf("Hi %s, thank you for applying as SRM at ManaCLG LevelUp. Our team will be in touch shortly.", applicantName)
	}
	return fmt.Sprintf("Hi %s, this is %s from ManaCLG LevelUp. Thank you for your application. Let's proceed with the next steps. Please let me know when you're available for a quick discussion.", applicantName, recruiterName)
}

// WhatsAppLink builds the wa.me URL with the greeting pre-filled.
func WhatsAppLink(phone, applicantName, recruiterName string) string {
	number := Digits(phone)
	if len(number) == 10 {
		number = CountryCode + number
	}
	return "https://wa.me/" + number + "?text=" + url.QueryEscape(WhatsAppMessage(applicantName, recruiterName))
}

// TelLink builds the dialer link for an applicant's number.
func TelLink(phone string) string {
	number := Digits(phone)
	if len(number) == 10 {
		number = CountryCode + number
	}
	return "tel:+" + number
}
