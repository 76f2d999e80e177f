package convert

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"web2pdf/internal/domain"
)

func TestValidateURL_Accepts(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"https://example.com", "https://example.com"},
		{"http://example.com/path?q=1#frag", "http://example.com/path?q=1#frag"},
		{"  https://example.com/  ", "https://example.com/"},
		{"HTTPS://Example.com", "HTTPS://Example.com"},
		{"http://localhost:8080", "http://localhost:8080"},
	}
	for _, tc := range tests {
		got, err := ValidateURL(tc.in)
		assert.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got)
	}
}

func TestValidateURL_Empty(t *testing.T) {
	for _, in := range []string{"", " ", "\t\n  "} {
		_, err := ValidateURL(in)
		assert.ErrorIs(t, err, domain.ErrEmptyInput, "%q", in)
	}
}

func TestValidateURL_Invalid(t *testing.T) {
	for _, in := range []string{
		"not a url",
		"example.com",
		"/relative/path",
		"ftp://example.com",
		"file:///etc/passwd",
		"javascript:alert(1)",
		"mailto:someone@example.com",
		"http://",
		"https:example.com",
		"://missing-scheme",
		"http://exa mple.com",
		"http://[::1",
	} {
		_, err := ValidateURL(in)
		assert.ErrorIs(t, err, domain.ErrInvalidURL, "%q", in)
	}
}

func TestDeriveFilename(t *testing.T) {
	assert.Equal(t, "report.pdf", DeriveFilename("report"))
	assert.Equal(t, "report.pdf", DeriveFilename("report.pdf"))
	assert.Equal(t, "webpage.pdf", DeriveFilename(""))
	assert.Equal(t, "report.PDF.pdf", DeriveFilename("report.PDF"))
	assert.Equal(t, "out/2024/report.pdf", DeriveFilename("out/2024/report"))
}
