package quotations

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatRefNumber(t *testing.T) {
	tests := []struct {
		name   string
		format string
		year   int
		seq    int
		want   string
	}{
		{"default template", "QT-{YYYY}-{NUM}", 2024, 7, "QT-2024-0007"},
		{"custom prefix", "TS-{YYYY}-{NUM}", 2024, 7, "TS-2024-0007"},
		{"slash separator", "{YYYY}/{NUM}", 2025, 123, "2025/0123"},
		{"number only", "{NUM}", 2024, 42, "0042"},
		{"sequence past padding", "QT-{YYYY}-{NUM}", 2024, 12345, "QT-2024-12345"},
		{"no placeholders", "FIXED", 2024, 9, "FIXED"},
		{"repeated placeholder", "{NUM}-{NUM}", 2024, 3, "0003-0003"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatRefNumber(tt.format, tt.year, tt.seq))
		})
	}
}

func TestDocumentFilename(t *testing.T) {
	assert.Equal(t, "quote_QT-2024-0007.docx", DocumentFilename("QT-2024-0007"))
	assert.Equal(t, "quote_2024-0007.docx", DocumentFilename("2024/0007"))
	assert.Equal(t, "quote_REF_1.docx", DocumentFilename("REF 1"))
}
