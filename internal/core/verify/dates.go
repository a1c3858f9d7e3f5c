package verify

import (
	"regexp"

	"myvote/internal/core/domain"
)

// dobPattern matches the date shapes the extraction model typically returns,
// DD/MM/YYYY or DD-MM-YYYY.
var dobPattern = regexp.MustCompile(`^(\d{2})[/-](\d{2})[/-](\d{4})$`)

// FormatDOB converts a document date of birth to the registry's YYYY-MM-DD
// form. The "Not visible" sentinel becomes empty; anything in an unrecognized
// shape passes through unchanged.
func FormatDOB(dob string) string {
	if dob == domain.NotVisible {
		return ""
	}
	m := dobPattern.FindStringSubmatch(dob)
	if m == nil {
		return dob
	}
	return m[3] + "-" + m[2] + "-" + m[1]
}
