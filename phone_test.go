package kitadi

import "testing"

func TestNormalizePhoneAcceptedShapes(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"+244923456789", "+244923456789"},
		{"244923456789", "+244923456789"},
		{"0923456789", "+244923456789"},
		{"923456789", "+244923456789"},
		{"+244 923 456 789", "+244923456789"},
		{"+244-923-456-789", "+244923456789"},
		{"(244) 923456789", "+244923456789"},
		{"", ""},
	}

	for _, tc := range cases {
		if got := NormalizePhone(tc.in); got != tc.want {
			t.Errorf("NormalizePhone(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestNormalizePhoneIdempotent(t *testing.T) {
	inputs := []string{
		"+244923456789",
		"244923456789",
		"0923456789",
		"923456789",
		"garbage",
		"812345678",
	}

	for _, in := range inputs {
		once := NormalizePhone(in)
		twice := NormalizePhone(once)
		if once != twice {
			t.Errorf("NormalizePhone not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}

func TestIsValidAngolaPhone(t *testing.T) {
	valid := []string{"+244923456789", "244923456789", "0923456789", "923456789"}
	for _, in := range valid {
		if !IsValidAngolaPhone(in) {
			t.Errorf("expected %q to be valid", in)
		}
	}

	invalid := []string{"", "+244823456789", "92345678", "9234567890", "+1555123456", "abc"}
	for _, in := range invalid {
		if IsValidAngolaPhone(in) {
			t.Errorf("expected %q to be invalid", in)
		}
	}
}

func TestFormatPhoneForDisplay(t *testing.T) {
	if got := FormatPhoneForDisplay("923456789"); got != "+244 923 456 789" {
		t.Errorf("unexpected display format %q", got)
	}
	// invalid numbers pass through untouched
	if got := FormatPhoneForDisplay("garbage"); got != "garbage" {
		t.Errorf("expected passthrough, got %q", got)
	}
}

func TestPhoneOperator(t *testing.T) {
	cases := map[string]string{
		"+244923456789": "Unitel",
		"+244926456789": "Africell",
		"+244928456789": "Movicel",
		"+244921456789": "Angola Mobile",
		"invalid":       "Unknown",
	}
	for in, want := range cases {
		if got := PhoneOperator(in); got != want {
			t.Errorf("PhoneOperator(%q) = %q, want %q", in, got, want)
		}
	}
}
