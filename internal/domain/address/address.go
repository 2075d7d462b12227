package address

import "fmt"

// CountryNetherlands is fixed on every resolved address regardless of what
// the directory service returns; the shop only ships domestically.
const CountryNetherlands = "Nederland"

// Resolved is a fully resolved Dutch address as written into checkout form
// state after an exact postcode plus house number lookup.
type Resolved struct {
	Street      string `json:"street"`
	HouseNumber string `json:"house_number"`
	PostalCode  string `json:"postal_code"`
	City        string `json:"city"`
	Province    string `json:"province"`
	Country     string `json:"country"`
}

// Suggestion is one candidate address produced by a free-text query. It is
// ephemeral: rendered in a dropdown, never persisted.
type Suggestion struct {
	Label       string `json:"label"`
	Street      string `json:"street"`
	HouseNumber string `json:"house_number"`
	PostalCode  string `json:"postal_code"`
	City        string `json:"city"`
}

// ComposeLabel builds the display label used when the directory omits a
// formatted one: "street houseNumber, postcode city".
func ComposeLabel(street, houseNumber, postcode, city string) string {
	return fmt.Sprintf("%s %s, %s %s", street, houseNumber, postcode, city)
}
