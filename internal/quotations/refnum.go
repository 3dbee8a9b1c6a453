package quotations

import (
	"fmt"
	"strings"
)

// FormatRefNumber renders a company's reference template for the given year
// and sequence number. Two placeholders are supported: {YYYY} expands to the
// four-digit year and {NUM} to the sequence number, zero-padded to four
// digits. Unknown text passes through unchanged, so templates can carry
// arbitrary prefixes and separators.
func FormatRefNumber(format string, year, seq int) string {
	out := strings.ReplaceAll(format, "{YYYY}", fmt.Sprintf("%04d", year))
	return strings.ReplaceAll(out, "{NUM}", fmt.Sprintf("%04d", seq))
}
