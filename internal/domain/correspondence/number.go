package correspondence

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/cases"
)

// GlobalSequenceKey is the reserved counter key holding the global sequence.
const GlobalSequenceKey = "GLOBAL_SYSTEM_SEQUENCE"

var romanMonths = [12]string{"I", "II", "III", "IV", "V", "VI", "VII", "VIII", "IX", "X", "XI", "XII"}

// RomanMonth renders a calendar month as an uppercase Roman numeral.
func RomanMonth(m time.Month) string {
	if m < time.January || m > time.December {
		return ""
	}
	return romanMonths[m-1]
}

// FormatNumber renders the canonical document number
// {typeCode}.{serial}/DIV-{divisionCode}/{romanMonth}/{year}.
// The serial is zero-padded to three digits and widens past 999.
func FormatNumber(typeCode string, serial int64, divisionCode string, issueDate time.Time) string {
	return fmt.Sprintf("%s.%03d/DIV-%s/%s/%04d",
		typeCode,
		serial,
		divisionCode,
		RomanMonth(issueDate.Month()),
		issueDate.Year(),
	)
}

// NormalizeNumber returns the lookup key for a document number: surrounding
// whitespace removed and case folded.
func NormalizeNumber(number string) string {
	// A Caser keeps state, so each call gets its own.
	return cases.Fold().String(strings.TrimSpace(number))
}
