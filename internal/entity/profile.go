package entity

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// DealershipProfile is the form data describing a dealership.
type DealershipProfile struct {
	Name            string        `json:"name"`
	Description     string        `json:"description"`
	URL             string        `json:"url"`
	Logo            string        `json:"logo"`
	Telephone       string        `json:"telephone"`
	Email           string        `json:"email"`
	Address         PostalAddress `json:"address"`
	Geo             GeoPoint      `json:"geo"`
	OpeningHours    []HoursEntry  `json:"openingHours"`
	Departments     []Department  `json:"departments"`
	PaymentAccepted []string      `json:"paymentAccepted"`
	SocialProfiles  []string      `json:"socialProfiles"`
	AreaServed      []string      `json:"areaServed"`
}

// PostalAddress mirrors the schema.org PostalAddress fields captured by the form.
type PostalAddress struct {
	StreetAddress   string `json:"streetAddress"`
	AddressLocality string `json:"addressLocality"`
	AddressRegion   string `json:"addressRegion"`
	PostalCode      string `json:"postalCode"`
	AddressCountry  string `json:"addressCountry"`
}

// HasLocation reports whether the address carries a street or a locality.
func (a PostalAddress) HasLocation() bool {
	return a.StreetAddress != "" || a.AddressLocality != ""
}

// GeoPoint keeps coordinates as entered; parsing happens at generation time.
type GeoPoint struct {
	Latitude  Coordinate `json:"latitude"`
	Longitude Coordinate `json:"longitude"`
}

// HoursEntry is one opening-hours row.
type HoursEntry struct {
	DayOfWeek string `json:"dayOfWeek"`
	Opens     string `json:"opens"`
	Closes    string `json:"closes"`
}

// Department is a sub-business of the dealership. Address overrides the main address when set.
type Department struct {
	Name      string         `json:"name"`
	Telephone string         `json:"telephone"`
	Email     string         `json:"email"`
	Address   *PostalAddress `json:"address,omitempty"`
}

// Coordinate is a latitude or longitude as typed by the user.
// It decodes from a JSON string, a JSON number or null.
type Coordinate string

// UnmarshalJSON implements json.Unmarshaler.
func (c *Coordinate) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*c = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*c = Coordinate(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("coordinate must be a string or number: %w", err)
	}
	*c = Coordinate(n.String())
	return nil
}

// Float parses the coordinate. ok is false for blank, unparsable or non-finite input.
func (c Coordinate) Float() (float64, bool) {
	raw := strings.TrimSpace(string(c))
	if raw == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
