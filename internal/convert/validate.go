package convert

import (
	"net/url"
	"strings"

	"web2pdf/internal/domain"
)

// ValidateURL trims raw and checks that it is an absolute http or https URL.
// Malformed input and a disallowed scheme both yield domain.ErrInvalidURL.
func ValidateURL(raw string) (string, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", domain.ErrEmptyInput
	}

	parsed, err := url.Parse(s)
	if err != nil || !parsed.IsAbs() || parsed.Host == "" {
		return "", domain.ErrInvalidURL
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", domain.ErrInvalidURL
	}
	return s, nil
}

// DeriveFilename returns desired, or the default name when desired is empty,
// with a ".pdf" suffix appended unless already present. The suffix check is
// case-sensitive.
func DeriveFilename(desired string) string {
	name := desired
	if name == "" {
		name = domain.DefaultFilename
	}
	if !strings.HasSuffix(name, domain.PDFExt) {
		name += domain.PDFExt
	}
	return name
}
