package verify

import "strings"

// countryCallingCode is the prefix stripped during normalization. The
// document and the auth provider both deal in Indian subscriber numbers.
const countryCallingCode = "91"

// subscriberDigits is the length of a full national subscriber number.
const subscriberDigits = 10

// minFuzzyDigits guards the permissive match rules: suffix/substring matching
// only applies when the shorter number carries at least this many digits, so
// a stray short digit-run recovered by OCR cannot verify an identity.
const minFuzzyDigits = 4

// NormalizePhone strips whitespace, hyphens, plus signs and parentheses, and
// drops a leading country calling code when what remains is a full
// subscriber number.
func NormalizePhone(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		switch {
		case r == ' ' || r == '\t' || r == '\n':
		case r == '-' || r == '+' || r == '(' || r == ')':
		default:
			b.WriteRune(r)
		}
	}
	n := b.String()
	if strings.HasPrefix(n, countryCallingCode) && len(n) == len(countryCallingCode)+subscriberDigits {
		n = n[len(countryCallingCode):]
	}
	return n
}

// MatchPhones decides whether two phone-number strings denote the same
// subscriber. Exact equality of the normalized forms always matches. To
// tolerate partially garbled OCR output, a suffix or substring relation in
// either direction also matches, provided the shorter side is long enough to
// be meaningful. Either side empty never matches.
func MatchPhones(a, b string) bool {
	na, nb := NormalizePhone(a), NormalizePhone(b)
	if na == "" || nb == "" {
		return false
	}
	if na == nb {
		return true
	}

	shorter, longer := na, nb
	if len(shorter) > len(longer) {
		shorter, longer = longer, shorter
	}
	if len(shorter) < minFuzzyDigits {
		return false
	}
	// Suffix is the common OCR shape (truncated leading digits); a plain
	// substring covers mid-string damage. Suffix is a substring, so one
	// check suffices.
	return strings.Contains(longer, shorter)
}
