package kitadi

import (
	"regexp"
	"strings"
)

// Angolan mobile numbers: +244 followed by 9 digits, first digit 9.
var (
	angolaPhoneRegex  = regexp.MustCompile(`^\+244[9][0-9]{8}$`)
	phoneStripRegex   = regexp.MustCompile(`[\s\-()]`)
	phoneDisplayRegex = regexp.MustCompile(`(\+244)(9)([0-9]{2})([0-9]{3})([0-9]{3})`)
)

// NormalizePhone rewrites any accepted input shape into the canonical
// +244XXXXXXXXX form. Unrecognized shapes are returned stripped but
// otherwise untouched, so validation catches them.
func NormalizePhone(phone string) string {
	if phone == "" {
		return ""
	}

	cleaned := phoneStripRegex.ReplaceAllString(phone, "")

	if strings.HasPrefix(cleaned, "+244") {
		return cleaned
	}

	if strings.HasPrefix(cleaned, "244") {
		return "+" + cleaned
	}

	if strings.HasPrefix(cleaned, "0") && len(cleaned) == 10 {
		return "+244" + cleaned[1:]
	}

	if len(cleaned) == 9 && strings.HasPrefix(cleaned, "9") {
		return "+244" + cleaned
	}

	return cleaned
}

// IsValidAngolaPhone reports whether the input normalizes to a valid
// Angolan mobile number.
func IsValidAngolaPhone(phone string) bool {
	if phone == "" {
		return false
	}
	return angolaPhoneRegex.MatchString(NormalizePhone(phone))
}

// FormatPhoneForDisplay renders a canonical number as "+244 9XX XXX XXX".
// Invalid numbers come back as-is.
func FormatPhoneForDisplay(phone string) string {
	normalized := NormalizePhone(phone)
	if !angolaPhoneRegex.MatchString(normalized) {
		return phone
	}
	return phoneDisplayRegex.ReplaceAllString(normalized, "$1 $2$3 $4 $5")
}

var operatorPrefixes = map[string]string{
	"923": "Unitel",
	"924": "Unitel",
	"925": "Unitel",
	"926": "Africell",
	"927": "Africell",
	"928": "Movicel",
	"929": "Movicel",
}

// PhoneOperator identifies the mobile operator by number prefix.
func PhoneOperator(phone string) string {
	normalized := NormalizePhone(phone)
	if !angolaPhoneRegex.MatchString(normalized) {
		return "Unknown"
	}

	prefix := normalized[4:7]
	if op, ok := operatorPrefixes[prefix]; ok {
		return op
	}
	return "Angola Mobile"
}
