// Package display formats canonical event labels for presentation.
// Pure functions: identical input always yields identical output.
package display

import "strings"

// acronyms is the fixed case-insensitive correction table applied after
// title-casing.
var acronyms = map[string]string{
	"kyc":  "KYC",
	"upi":  "UPI",
	"id":   "ID",
	"emi":  "EMI",
	"atm":  "ATM",
	"sim":  "SIM",
	"mnp":  "MNP",
	"fnol": "FNOL",
	"rma":  "RMA",
	"otp":  "OTP",
	"sms":  "SMS",
}

// Format normalizes separators to spaces and capitalizes each word,
// preserving short existing all-caps tokens as acronyms and applying
// the acronym correction table.
func Format(label string) string {
	s := strings.NewReplacer("_", " ", "-", " ", ".", " ").Replace(label)
	words := strings.Fields(s)

	for i, w := range words {
		if corrected, ok := acronyms[strings.ToLower(w)]; ok {
			words[i] = corrected
			continue
		}
		if len(w) <= 5 && w == strings.ToUpper(w) && hasLetter(w) {
			// Existing short all-caps token, keep as an acronym.
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
	}

	return strings.Join(words, " ")
}

func hasLetter(s string) bool {
	for _, r := range s {
		if r >= 'A' && r <= 'Z' {
			return true
		}
	}
	return false
}
