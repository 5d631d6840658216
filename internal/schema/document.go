package schema

// Vocabulary constants for the generated document.
const (
	Context            = "https://schema.org"
	TypeAutoDealer     = "AutoDealer"
	CurrenciesAccepted = "USD"
)

// Document is a schema.org AutoDealer record. Field order matches the JSON key order.
type Document struct {
	Context                   string                      `json:"@context"`
	Type                      string                      `json:"@type"`
	Name                      string                      `json:"name,omitempty"`
	Description               string                      `json:"description,omitempty"`
	URL                       string                      `json:"url,omitempty"`
	Logo                      string                      `json:"logo,omitempty"`
	Telephone                 string                      `json:"telephone,omitempty"`
	Email                     string                      `json:"email,omitempty"`
	Address                   *PostalAddress              `json:"address,omitempty"`
	Geo                       *GeoCoordinates             `json:"geo,omitempty"`
	OpeningHoursSpecification []OpeningHoursSpecification `json:"openingHoursSpecification,omitempty"`
	Department                []AutomotiveBusiness        `json:"department,omitempty"`
	PaymentAccepted           []string                    `json:"paymentAccepted,omitempty"`
	SameAs                    []string                    `json:"sameAs,omitempty"`
	AreaServed                []Place                     `json:"areaServed,omitempty"`
	CurrenciesAccepted        string                      `json:"currenciesAccepted"`
	HasOfferCatalog           OfferCatalog                `json:"hasOfferCatalog"`
}

// PostalAddress is the schema.org PostalAddress type.
type PostalAddress struct {
	Type            string `json:"@type"`
	StreetAddress   string `json:"streetAddress,omitempty"`
	AddressLocality string `json:"addressLocality,omitempty"`
	AddressRegion   string `json:"addressRegion,omitempty"`
	PostalCode      string `json:"postalCode,omitempty"`
	AddressCountry  string `json:"addressCountry,omitempty"`
}

// GeoCoordinates is the schema.org GeoCoordinates type.
type GeoCoordinates struct {
	Type      string   `json:"@type"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}

// OpeningHoursSpecification is one day of opening hours.
type OpeningHoursSpecification struct {
	Type      string `json:"@type"`
	DayOfWeek string `json:"dayOfWeek"`
	Opens     string `json:"opens"`
	Closes    string `json:"closes"`
}

// AutomotiveBusiness describes a dealership department.
type AutomotiveBusiness struct {
	Type      string         `json:"@type"`
	Name      string         `json:"name"`
	Telephone string         `json:"telephone,omitempty"`
	Email     string         `json:"email,omitempty"`
	Address   *PostalAddress `json:"address,omitempty"`
}

// Place is an area served by the dealership.
type Place struct {
	Type string `json:"@type"`
	Name string `json:"name"`
}

// OfferCatalog lists the services offered.
type OfferCatalog struct {
	Type            string  `json:"@type"`
	Name            string  `json:"name"`
	ItemListElement []Offer `json:"itemListElement"`
}

// Offer wraps an offered service.
type Offer struct {
	Type        string  `json:"@type"`
	ItemOffered Service `json:"itemOffered"`
}

// Service is a named service.
type Service struct {
	Type string `json:"@type"`
	Name string `json:"name"`
}

var catalogServices = []string{"Vehicle Sales", "Vehicle Service & Repair", "Parts & Accessories"}

// DefaultOfferCatalog returns the catalogue attached to every generated document.
func DefaultOfferCatalog() OfferCatalog {
	offers := make([]Offer, 0, len(catalogServices))
	for _, name := range catalogServices {
		offers = append(offers, Offer{
			Type:        "Offer",
			ItemOffered: Service{Type: "Service", Name: name},
		})
	}
	return OfferCatalog{
		Type:            "OfferCatalog",
		Name:            "Automotive Services",
		ItemListElement: offers,
	}
}
