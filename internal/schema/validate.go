package schema

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/nyaruka/phonenumbers"
	"golang.org/x/net/idna"

	"github.com/octobees/autoschema/internal/entity"
)

// Messages reported by the validator.
const (
	ErrMsgName          = "Business name is required"
	ErrMsgURL           = "Website URL is required"
	ErrMsgTelephone     = "Phone number is required"
	ErrMsgAddress       = "Address information is required"
	ErrMsgStreet        = "Street address is required"
	ErrMsgCity          = "City is required"
	ErrMsgState         = "State is required"
	ErrMsgZIP           = "ZIP code is required"
	ErrMsgRegion        = "State/Region is required"
	ErrMsgPostalCode    = "Postal code is required"
	WarnMsgDescription  = "Business description is recommended"
	WarnMsgLogo         = "Logo URL is recommended"
	WarnMsgOpeningHours = "Opening hours are recommended"
	WarnMsgGeo          = "Geographic coordinates are recommended for better local SEO"
	WarnMsgPhoneFormat  = "Phone number format looks invalid"
	WarnMsgEmailFormat  = "Email address format looks invalid"
	WarnMsgURLScheme    = "Website URL should start with http:// or https://"

	defaultPhoneRegion = "US"
)

var (
	emailPattern = regexp.MustCompile(`^[a-z0-9._%+\-']+@[a-z0-9.-]+\.[a-z]{2,}$`)
	idnaProfile  = idna.Lookup
)

// Result is the outcome of a validation pass.
type Result struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
	IsValid  bool     `json:"isValid"`
}

func newResult(errs, warnings []string) Result {
	if errs == nil {
		errs = []string{}
	}
	if warnings == nil {
		warnings = []string{}
	}
	return Result{Errors: errs, Warnings: warnings, IsValid: len(errs) == 0}
}

// Validator checks profiles and generated documents for required and recommended fields.
type Validator struct {
	DefaultRegion string
}

// NewValidator builds a validator that parses phone numbers relative to defaultRegion.
func NewValidator(defaultRegion string) *Validator {
	region := strings.ToUpper(strings.TrimSpace(defaultRegion))
	if region == "" {
		region = defaultPhoneRegion
	}
	return &Validator{DefaultRegion: region}
}

// ValidateProfile validates raw form data with the default phone region.
func ValidateProfile(p entity.DealershipProfile) Result {
	return NewValidator("").Profile(p)
}

// ValidateDocument validates a generated document.
func ValidateDocument(doc Document) Result {
	return NewValidator("").Document(doc)
}

// Profile validates raw form data.
func (v *Validator) Profile(p entity.DealershipProfile) Result {
	var errs []string
	if p.Name == "" {
		errs = append(errs, ErrMsgName)
	}
	if p.URL == "" {
		errs = append(errs, ErrMsgURL)
	}
	if p.Telephone == "" {
		errs = append(errs, ErrMsgTelephone)
	}
	if p.Address.StreetAddress == "" {
		errs = append(errs, ErrMsgStreet)
	}
	if p.Address.AddressLocality == "" {
		errs = append(errs, ErrMsgCity)
	}
	if p.Address.AddressRegion == "" {
		errs = append(errs, ErrMsgState)
	}
	if p.Address.PostalCode == "" {
		errs = append(errs, ErrMsgZIP)
	}

	// Recommendations are judged on what the generator would emit.
	doc := Generate(p)
	warnings := recommendations(doc)
	if p.Telephone != "" && !v.phoneLooksValid(p.Telephone) {
		warnings = append(warnings, WarnMsgPhoneFormat)
	}
	if p.Email != "" && !emailLooksValid(p.Email) {
		warnings = append(warnings, WarnMsgEmailFormat)
	}
	if p.URL != "" && !isHTTPURL(p.URL) {
		warnings = append(warnings, WarnMsgURLScheme)
	}

	return newResult(errs, warnings)
}

// Document validates a generated document.
func (v *Validator) Document(doc Document) Result {
	var errs []string
	if doc.Name == "" {
		errs = append(errs, ErrMsgName)
	}
	if doc.URL == "" {
		errs = append(errs, ErrMsgURL)
	}
	if doc.Telephone == "" {
		errs = append(errs, ErrMsgTelephone)
	}
	if doc.Address == nil {
		errs = append(errs, ErrMsgAddress)
	} else {
		if doc.Address.StreetAddress == "" {
			errs = append(errs, ErrMsgStreet)
		}
		if doc.Address.AddressLocality == "" {
			errs = append(errs, ErrMsgCity)
		}
		if doc.Address.AddressRegion == "" {
			errs = append(errs, ErrMsgRegion)
		}
		if doc.Address.PostalCode == "" {
			errs = append(errs, ErrMsgPostalCode)
		}
	}
	return newResult(errs, recommendations(doc))
}

func recommendations(doc Document) []string {
	var warnings []string
	if doc.Description == "" {
		warnings = append(warnings, WarnMsgDescription)
	}
	if doc.Logo == "" {
		warnings = append(warnings, WarnMsgLogo)
	}
	if len(doc.OpeningHoursSpecification) == 0 {
		warnings = append(warnings, WarnMsgOpeningHours)
	}
	if doc.Geo == nil {
		warnings = append(warnings, WarnMsgGeo)
	}
	return warnings
}

func (v *Validator) phoneLooksValid(raw string) bool {
	number, err := phonenumbers.Parse(strings.TrimSpace(raw), v.DefaultRegion)
	if err != nil {
		return false
	}
	return phonenumbers.IsPossibleNumber(number)
}

func emailLooksValid(raw string) bool {
	email := strings.ToLower(strings.TrimSpace(raw))
	if !emailPattern.MatchString(email) {
		return false
	}
	domain := email[strings.LastIndex(email, "@")+1:]
	if !isDomainValid(domain) {
		return false
	}
	ascii, err := idnaProfile.ToASCII(domain)
	return err == nil && ascii != ""
}

func isDomainValid(domain string) bool {
	if !strings.Contains(domain, ".") {
		return false
	}
	for _, part := range strings.Split(domain, ".") {
		if part == "" || strings.HasPrefix(part, "-") || strings.HasSuffix(part, "-") {
			return false
		}
	}
	return true
}

func isHTTPURL(raw string) bool {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Host == "" {
		return false
	}
	return u.Scheme == "http" || u.Scheme == "https"
}
