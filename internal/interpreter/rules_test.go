package interpreter

import (
	"reflect"
	"testing"
)

func TestExtract(t *testing.T) {
	ex := NewExtractor(Options{})

	tests := []struct {
		name     string
		message  string
		expected Patch
	}{
		{
			// The connector after "first name" is consumed by the pattern, so
			// the capture is the next token. Multi-word names still truncate
			// to their first token (see TestExtractMultiWord).
			"email and first name",
			"set email to alice@example.com and first name to Alice",
			Patch{"email": "alice@example.com", "firstName": "Alice"},
		},
		{
			"email requires email or mail keyword",
			"set contact to alice@example.com",
			Patch{},
		},
		{
			"slash date is reordered to ISO",
			"dob 15/03/1990",
			Patch{"dateOfBirth": "1990-03-15"},
		},
		{
			"dash date passes through verbatim",
			"set my date of birth to 15-03-1990",
			Patch{"dateOfBirth": "15-03-1990"},
		},
		{
			"date without dob keyword is ignored",
			"set the visit to 15/03/1990",
			Patch{},
		},
		{
			"age",
			"set age to 34",
			Patch{"age": "34"},
		},
		{
			"phone routes to phoneNumber",
			"update phone number +44 20 7946 0958 please",
			Patch{"phoneNumber": "+44 20 7946 0958"},
		},
		{
			"phone routes to emergency contact",
			"set emergency contact phone number to 020 7946 0958",
			Patch{"emergencyContactPhone": "020 7946 0958"},
		},
		{
			"last name keeps punctuation inside token",
			"set last name as O'Neil now",
			Patch{"lastName": "O'Neil"},
		},
		{
			"address truncates to first token",
			"fill address with 12 Main Street",
			Patch{"address": "12"},
		},
		{
			"emergency contact name",
			"set emergency contact name as Jane Doe",
			Patch{"emergencyContactName": "Jane"},
		},
		{
			"signature via sign verb",
			"sign as Bob",
			Patch{"signature": "Bob"},
		},
		{
			"ucla yes",
			"set ucla patient to yes",
			Patch{"isUCLAPatient": "yes"},
		},
		{
			"hospital alias to short code",
			"hospital is guys",
			Patch{"hospital": "guys"},
		},
		{
			"hospital long alias",
			"set my hospital to university college",
			Patch{"hospital": "uclh"},
		},
		{
			"hospital without known alias yields nothing",
			"set hospital to st thomas",
			Patch{},
		},
		{
			"nothing extractable",
			"put that thing away",
			Patch{},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := ex.Extract(tc.message)
			if !reflect.DeepEqual(got, tc.expected) {
				t.Errorf("Extract(%q) = %v, want %v", tc.message, got, tc.expected)
			}
		})
	}
}

func TestExtractUCLARouting(t *testing.T) {
	ex := NewExtractor(Options{})

	got := ex.Extract("ucla patient? definitely not, no")
	if got["isUCLAPatient"] != "no" {
		t.Errorf("Expected isUCLAPatient=no, got %v", got)
	}

	// "yes" wins when both words appear.
	got = ex.Extract("ucla: yes not no")
	if got["isUCLAPatient"] != "yes" {
		t.Errorf("Expected isUCLAPatient=yes, got %v", got)
	}
}

func TestExtractMultiWord(t *testing.T) {
	ex := NewExtractor(Options{MultiWord: true})

	tests := []struct {
		message string
		key     string
		value   string
	}{
		{"set first name to Alice Smith", "firstName", "Alice Smith"},
		{"fill address with 12 Main Street, London", "address", "12 Main Street"},
		{"set emergency contact name as Jane Doe", "emergencyContactName", "Jane Doe"},
	}

	for _, tc := range tests {
		got := ex.Extract(tc.message)
		if got[tc.key] != tc.value {
			t.Errorf("Extract(%q)[%s] = %q, want %q", tc.message, tc.key, got[tc.key], tc.value)
		}
	}
}

func TestExtractIsIdempotent(t *testing.T) {
	ex := NewExtractor(Options{})
	msg := "set email to alice@example.com and dob 15/03/1990 date of birth"

	first := ex.Extract(msg)
	second := ex.Extract(msg)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("Repeated extraction differs: %v vs %v", first, second)
	}
}

func TestNormalizeDate(t *testing.T) {
	tests := []struct{ in, out string }{
		{"15/03/1990", "1990-03-15"},
		{"1/3/1990", "1990-03-01"},
		{"1990-03-15", "1990-03-15"},
		{"15-03-1990", "15-03-1990"},
	}

	for _, tc := range tests {
		if got := normalizeDate(tc.in); got != tc.out {
			t.Errorf("normalizeDate(%q) = %q, want %q", tc.in, got, tc.out)
		}
	}
}
