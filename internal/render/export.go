package render

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/octobees/autoschema/internal/entity"
)

const defaultFileBase = "dealership"

// Artifact is a downloadable rendering.
type Artifact struct {
	FileName    string `json:"fileName"`
	ContentType string `json:"contentType"`
	Content     string `json:"content"`
}

// Export renders the profile and names the file after the dealership.
// JSON-LD downloads as an HTML script snippet. Every other format downloads the
// plain JSON document, since the markup snippets are preview-only.
func Export(p entity.DealershipProfile, format Format) (Artifact, error) {
	ext, contentType, renderAs := "json", "application/json", FormatJSON
	switch format {
	case FormatJSONLD:
		ext, contentType, renderAs = "html", "text/html", FormatJSONLD
	case FormatJSON, FormatMicrodata, FormatRDFa:
	default:
		return Artifact{}, fmt.Errorf("%w: %q", ErrUnknownFormat, string(format))
	}

	content, err := Render(p, renderAs)
	if err != nil {
		return Artifact{}, err
	}

	return Artifact{
		FileName:    FileBase(p.Name) + "-schema." + ext,
		ContentType: contentType,
		Content:     content,
	}, nil
}

// FileBase turns a dealership name into a lower-case file name stem made of
// letters, digits and single dashes.
func FileBase(name string) string {
	var b strings.Builder
	pendingDash := false
	for _, r := range strings.ToLower(name) {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			if pendingDash && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingDash = false
			b.WriteRune(r)
			continue
		}
		pendingDash = true
	}
	if b.Len() == 0 {
		return defaultFileBase
	}
	return b.String()
}
