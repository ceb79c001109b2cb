package domain

import "strings"

// Years are the accepted study-year values for a listing.
var Years = []string{
	"Primo", "Secondo", "Terzo", "Quarto", "Quinto",
	"Primo biennio", "Secondo biennio", "Triennio", "Quinquennale",
}

// SubjectOther is the sentinel that asks for a free-form subject.
const SubjectOther = "#Altro"

// Subjects are the accepted subject tags for a listing.
var Subjects = []string{
	"#Italiano", "#Fisica", "#Storia",
	"#Geografia", "#Matematica", "#Scienze",
	"#Latino", "#Tecnologia", "#Musica",
	"#Arte e immagine", "#Inglese", "#Educazione civica",
	"#Educazione fisica", "#Religione", SubjectOther,
}

// Conditions are the accepted book condition values.
var Conditions = []string{
	"Nuovo", "Come Nuovo",
	"Usato - Buono", "Usato - in condizioni accettabili",
}

// ValidYear reports whether s exactly matches an accepted year.
func ValidYear(s string) bool { return contains(Years, s) }

// ValidSubject reports whether s exactly matches an accepted subject tag.
func ValidSubject(s string) bool { return contains(Subjects, s) }

// ValidCondition reports whether s exactly matches an accepted condition.
func ValidCondition(s string) bool { return contains(Conditions, s) }

func contains(values []string, s string) bool {
	for _, v := range values {
		if v == s {
			return true
		}
	}
	return false
}

// phoneCountryPrefix is stripped from submitted phone numbers.
const phoneCountryPrefix = "+39"

// NormalizePhone strips spaces and the country prefix, then verifies the
// remainder is all digits.
func NormalizePhone(s string) (string, bool) {
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, phoneCountryPrefix, "")
	if s == "" {
		return "", false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return "", false
		}
	}
	return s, true
}

// NormalizeHandle strips a leading "@" from a social handle.
func NormalizeHandle(s string) string {
	return strings.TrimPrefix(strings.TrimSpace(s), "@")
}

// NormalizeISBN strips spaces and hyphens so lookups match regardless of the
// separator style the user typed.
func NormalizeISBN(s string) string {
	s = strings.ReplaceAll(s, " ", "")
	return strings.ReplaceAll(s, "-", "")
}
