package lead

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanPhone(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"spaces only", "   ", ""},
		{"dots", "06.12.34.56.78", "0612345678"},
		{"dashes", "06-12-34-56-78", "0612345678"},
		{"spaces", "06 12 34 56 78", "0612345678"},
		{"international", "+33 6 12 34 56 78", "+33612345678"},
		{"parens", "(+33) 612 345 678", "33612345678"},
		{"plus not leading", "06+12345678", "0612345678"},
		{"lone plus", "+", ""},
		{"letters stripped", "06 12 AB 56 78", "06125678"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanPhone(tt.input))
		})
	}
}

func TestCleanEmail(t *testing.T) {
	assert.Equal(t, "jean@dupont.fr", CleanEmail("  Jean@Dupont.FR  "))
	assert.Equal(t, "", CleanEmail("   "))
	assert.Equal(t, "not-an-email", CleanEmail("not-an-email"))
}
