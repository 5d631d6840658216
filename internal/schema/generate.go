package schema

import (
	"strings"

	"github.com/octobees/autoschema/internal/entity"
)

// Generate maps a dealership profile onto an AutoDealer document.
// Blank fields are omitted; it never fails.
func Generate(p entity.DealershipProfile) Document {
	doc := Document{
		Context:     Context,
		Type:        TypeAutoDealer,
		Name:        p.Name,
		Description: p.Description,
		URL:         p.URL,
		Logo:        p.Logo,
		Telephone:   p.Telephone,
		Email:       p.Email,
		Address:     postalAddress(p.Address),
		Geo:         geoCoordinates(p.Geo),
	}

	for _, hours := range p.OpeningHours {
		if hours.DayOfWeek == "" || hours.Opens == "" || hours.Closes == "" {
			continue
		}
		doc.OpeningHoursSpecification = append(doc.OpeningHoursSpecification, OpeningHoursSpecification{
			Type:      "OpeningHoursSpecification",
			DayOfWeek: hours.DayOfWeek,
			Opens:     hours.Opens,
			Closes:    hours.Closes,
		})
	}

	for _, dept := range p.Departments {
		if dept.Name == "" {
			continue
		}
		department := AutomotiveBusiness{
			Type:      "AutomotiveBusiness",
			Name:      dept.Name,
			Telephone: dept.Telephone,
			Email:     dept.Email,
		}
		if dept.Address != nil {
			department.Address = postalAddress(*dept.Address)
		}
		doc.Department = append(doc.Department, department)
	}

	if len(p.PaymentAccepted) > 0 {
		doc.PaymentAccepted = append([]string(nil), p.PaymentAccepted...)
	}

	doc.SameAs = nonBlank(p.SocialProfiles)

	for _, area := range nonBlank(p.AreaServed) {
		doc.AreaServed = append(doc.AreaServed, Place{Type: "Place", Name: area})
	}

	doc.CurrenciesAccepted = CurrenciesAccepted
	doc.HasOfferCatalog = DefaultOfferCatalog()

	return doc
}

func postalAddress(a entity.PostalAddress) *PostalAddress {
	if !a.HasLocation() {
		return nil
	}
	return &PostalAddress{
		Type:            "PostalAddress",
		StreetAddress:   a.StreetAddress,
		AddressLocality: a.AddressLocality,
		AddressRegion:   a.AddressRegion,
		PostalCode:      a.PostalCode,
		AddressCountry:  a.AddressCountry,
	}
}

func geoCoordinates(g entity.GeoPoint) *GeoCoordinates {
	geo := &GeoCoordinates{Type: "GeoCoordinates"}
	if lat, ok := g.Latitude.Float(); ok {
		geo.Latitude = &lat
	}
	if lng, ok := g.Longitude.Float(); ok {
		geo.Longitude = &lng
	}
	if geo.Latitude == nil && geo.Longitude == nil {
		return nil
	}
	return geo
}

// nonBlank keeps the values that are not empty after trimming. The kept values are not trimmed.
func nonBlank(values []string) []string {
	var out []string
	for _, v := range values {
		if strings.TrimSpace(v) == "" {
			continue
		}
		out = append(out, v)
	}
	return out
}
