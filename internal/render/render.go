package render

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"text/template"

	"github.com/octobees/autoschema/internal/entity"
	"github.com/octobees/autoschema/internal/schema"
)

// Format names an output serialization.
type Format string

// Supported formats.
const (
	FormatJSONLD    Format = "json-ld"
	FormatJSON      Format = "json"
	FormatMicrodata Format = "microdata"
	FormatRDFa      Format = "rdfa"
)

// ErrUnknownFormat is returned for a format outside the supported set.
var ErrUnknownFormat = errors.New("unknown output format")

// ParseFormat resolves a user supplied format name. Empty input selects JSON-LD.
func ParseFormat(value string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(value))) {
	case "", FormatJSONLD:
		return FormatJSONLD, nil
	case FormatJSON:
		return FormatJSON, nil
	case FormatMicrodata:
		return FormatMicrodata, nil
	case FormatRDFa:
		return FormatRDFa, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, value)
	}
}

// Render serializes a profile in the requested format.
// Microdata and RDFa only cover the name, postal address and telephone.
func Render(p entity.DealershipProfile, format Format) (string, error) {
	switch format {
	case FormatJSON:
		return JSON(schema.Generate(p))
	case FormatJSONLD:
		return JSONLDScript(schema.Generate(p))
	case FormatMicrodata:
		return execute(microdataTemplate, p)
	case FormatRDFa:
		return execute(rdfaTemplate, p)
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, string(format))
	}
}

// JSON returns the document indented by two spaces without HTML escaping.
func JSON(doc schema.Document) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return "", fmt.Errorf("encode schema document: %w", err)
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

// JSONLDScript wraps the JSON document in a ld+json script element.
func JSONLDScript(doc schema.Document) (string, error) {
	body, err := JSON(doc)
	if err != nil {
		return "", err
	}
	body = strings.ReplaceAll(body, "</", `<\/`)
	return "<script type=\"application/ld+json\">\n" + body + "\n</script>", nil
}

type markupFields struct {
	Name            string
	StreetAddress   string
	AddressLocality string
	AddressRegion   string
	PostalCode      string
	Telephone       string
}

func fieldsFor(p entity.DealershipProfile) markupFields {
	return markupFields{
		Name:            orPlaceholder(p.Name, "[Business Name]"),
		StreetAddress:   orPlaceholder(p.Address.StreetAddress, "[Street Address]"),
		AddressLocality: orPlaceholder(p.Address.AddressLocality, "[City]"),
		AddressRegion:   orPlaceholder(p.Address.AddressRegion, "[State]"),
		PostalCode:      orPlaceholder(p.Address.PostalCode, "[ZIP]"),
		Telephone:       orPlaceholder(p.Telephone, "[Phone]"),
	}
}

func orPlaceholder(value, placeholder string) string {
	if value == "" {
		return placeholder
	}
	return template.HTMLEscapeString(value)
}

var microdataTemplate = template.Must(template.New("microdata").Parse(`<div itemscope itemtype="https://schema.org/AutoDealer">
  <h1 itemprop="name">{{.Name}}</h1>
  <div itemprop="address" itemscope itemtype="https://schema.org/PostalAddress">
    <span itemprop="streetAddress">{{.StreetAddress}}</span>
    <span itemprop="addressLocality">{{.AddressLocality}}</span>
    <span itemprop="addressRegion">{{.AddressRegion}}</span>
    <span itemprop="postalCode">{{.PostalCode}}</span>
  </div>
  <span itemprop="telephone">{{.Telephone}}</span>
</div>`))

var rdfaTemplate = template.Must(template.New("rdfa").Parse(`<div vocab="https://schema.org/" typeof="AutoDealer">
  <h1 property="name">{{.Name}}</h1>
  <div property="address" typeof="PostalAddress">
    <span property="streetAddress">{{.StreetAddress}}</span>
    <span property="addressLocality">{{.AddressLocality}}</span>
    <span property="addressRegion">{{.AddressRegion}}</span>
    <span property="postalCode">{{.PostalCode}}</span>
  </div>
  <span property="telephone">{{.Telephone}}</span>
</div>`))

func execute(tmpl *template.Template, p entity.DealershipProfile) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, fieldsFor(p)); err != nil {
		return "", fmt.Errorf("render %s: %w", tmpl.Name(), err)
	}
	return buf.String(), nil
}
