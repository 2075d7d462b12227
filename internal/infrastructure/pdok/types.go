package pdok

import "encoding/json"

// locatieserver responses wrap everything in a Solr-style "response" object.
type searchResponse struct {
	Response struct {
		NumFound int           `json:"numFound"`
		Docs     []documentRaw `json:"docs"`
	} `json:"response"`
}

// documentRaw is one address document. The service is inconsistent about
// number types (huisnummer arrives as a JSON number, sometimes a string), so
// numeric fields stay raw until mapping.
type documentRaw struct {
	Weergavenaam   string          `json:"weergavenaam"`
	Straatnaam     string          `json:"straatnaam"`
	Huisnummer     json.RawMessage `json:"huisnummer"`
	Postcode       string          `json:"postcode"`
	Woonplaatsnaam string          `json:"woonplaatsnaam"`
	Provincienaam  string          `json:"provincienaam"`
}

// houseNumber normalizes the huisnummer field to a string.
func (d documentRaw) houseNumber() string {
	if len(d.Huisnummer) == 0 {
		return ""
	}
	var asString string
	if err := json.Unmarshal(d.Huisnummer, &asString); err == nil {
		return asString
	}
	var asNumber json.Number
	if err := json.Unmarshal(d.Huisnummer, &asNumber); err == nil {
		return asNumber.String()
	}
	return ""
}
