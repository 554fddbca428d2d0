// Package ingest imports scraped HouseSigma listing detail payloads into the property store.
package ingest

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"propertychat/internal/model"
)

const unknown = "Unknown"

// Payload is the subset of a HouseSigma detail_v2 response the importer reads
type Payload struct {
	House      *House `json:"house"`
	Assessment struct {
		Properties struct {
			City         string `json:"city"`
			Neighborhood string `json:"neighborhood"`
		} `json:"properties"`
	} `json:"assessment"`
	Picture struct {
		PhotoList []string `json:"photo_list"`
	} `json:"picture"`
	KeyFacts struct {
		BuildYear struct {
			Value interface{} `json:"value"`
		} `json:"build_year"`
	} `json:"key_facts_v2"`
}

// House is the listing block of a payload
type House struct {
	IDListing        string   `json:"id_listing"`
	Address          string   `json:"address"`
	City             string   `json:"city"`
	MunicipalityName string   `json:"municipality_name"`
	CommunityName    string   `json:"community_name"`
	Neighborhood     string   `json:"neighborhood"`
	Province         string   `json:"province"`
	PostalCode       string   `json:"postal_code"`
	HouseTypeName    string   `json:"house_type_name"`
	Bedroom          int      `json:"bedroom"`
	Washroom         float64  `json:"washroom"`
	PriceInt         int64    `json:"price_int"`
	Description      string   `json:"description"`
	Features         []string `json:"features"`
	DaysOnMarket     int      `json:"days_on_market"`
	YearBuilt        *int     `json:"year_built"`
	ListStatus       struct {
		Text string `json:"text"`
	} `json:"list_status"`
	Map struct {
		Lat float64 `json:"lat"`
		Lon float64 `json:"lon"`
	} `json:"map"`
}

// Decode parses a payload. Payloads without a "house" block carry the listing at the top level.
func Decode(data []byte) (*Payload, error) {
	var p Payload
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to decode payload: %w", err)
	}
	if p.House == nil {
		var h House
		if err := json.Unmarshal(data, &h); err != nil {
			return nil, fmt.Errorf("failed to decode listing: %w", err)
		}
		p.House = &h
	}
	return &p, nil
}

// Transform maps a payload onto a property. The assessment block wins over the listing
// block for city and neighborhood.
func Transform(p *Payload) (*model.Property, error) {
	h := p.House
	if h == nil || strings.TrimSpace(h.IDListing) == "" {
		return nil, fmt.Errorf("payload has no listing id")
	}

	listingID := h.IDListing
	prop := &model.Property{
		ListingID:    &listingID,
		Address:      strings.TrimSpace(h.Address),
		City:         firstNonEmpty(p.Assessment.Properties.City, h.City, h.MunicipalityName, unknown),
		Province:     h.Province,
		PostalCode:   h.PostalCode,
		Price:        h.PriceInt,
		Bedrooms:     h.Bedroom,
		Bathrooms:    h.Washroom,
		Neighborhood: firstNonEmpty(p.Assessment.Properties.Neighborhood, h.Neighborhood, h.CommunityName, unknown),
		Description:  h.Description,
		Features:     model.JSONArray(h.Features),
		Images:       model.JSONArray(p.Picture.PhotoList),
		Latitude:     h.Map.Lat,
		Longitude:    h.Map.Lon,
		DaysOnMarket: h.DaysOnMarket,
		Status:       normalizeStatus(h.ListStatus.Text),
		PropertyType: normalizeType(h.HouseTypeName),
		YearBuilt:    h.YearBuilt,
	}

	if year := toYear(p.KeyFacts.BuildYear.Value); year > 0 {
		prop.YearBuilt = &year
	}
	if prop.Features == nil {
		prop.Features = model.JSONArray{}
	}
	if prop.Images == nil {
		prop.Images = model.JSONArray{}
	}

	return prop, nil
}

// toYear accepts both numeric and string build years
func toYear(v interface{}) int {
	switch y := v.(type) {
	case float64:
		return int(y)
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(y))
		if err != nil {
			return 0
		}
		return n
	}
	return 0
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}

// normalizeStatus turns "For Sale" into "for_sale"
func normalizeStatus(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.Join(strings.Fields(s), "_")
}

// normalizeType maps HouseSigma type names onto house, condo and townhouse where possible
func normalizeType(name string) string {
	lower := strings.ToLower(name)
	switch {
	case strings.Contains(lower, "town") || strings.Contains(lower, "row"):
		return "townhouse"
	case strings.Contains(lower, "condo") || strings.Contains(lower, "apartment") || strings.Contains(lower, "apt"):
		return "condo"
	case strings.Contains(lower, "house") || strings.Contains(lower, "detached"):
		return "house"
	case lower == "":
		return "other"
	}
	return strings.Join(strings.Fields(lower), "_")
}
