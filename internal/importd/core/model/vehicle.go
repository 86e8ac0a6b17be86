package model

import (
	"bytes"
	"encoding/json"
	"strings"
)

// VehicleRecord is one vehicle as returned by the upstream inventory API.
// Only ID and VIN are guaranteed present; everything else is optional and
// must stay distinguishable from the empty string.
type VehicleRecord struct {
	ID  int64  `json:"id"`
	VIN string `json:"vin"`

	Make            string     `json:"make"`
	Model           string     `json:"model"`
	Year            FlexString `json:"year"`
	Color           string     `json:"color"`
	LotNumber       FlexString `json:"lot_number"`
	IsKeyPresent    *FlexBool  `json:"is_key_present"`
	DateOfPickup    string     `json:"date_of_pickup"`
	DeliverDate     string     `json:"deliver_date"`
	ContainerNumber FlexString `json:"container_number"`
	LoadingDate     string     `json:"loading_date"`
	BookingNumber   FlexString `json:"booking_number"`
	DepartureDate   string     `json:"departure_date"`
	// The upstream API spells this field without the double "r".
	ArivalDate string `json:"arival_date"`

	TrackingLink    string `json:"tracking_link"`
	TrackingLinkAlt string `json:"trackingLink"`
	ShiplineName    string `json:"shipline_name"`
	ShiplineNameAlt string `json:"shiplineName"`
}

// FlexString decodes JSON strings and numbers alike; the upstream API is not
// consistent about which one it sends for fields like year or lot number.
type FlexString string

func (s *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*s = ""
		return nil
	}
	if data[0] == '"' {
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*s = FlexString(v)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*s = FlexString(n.String())
	return nil
}

func (s FlexString) String() string {
	return string(s)
}

// FlexBool decodes JSON booleans, 0/1 numbers and a few string spellings.
type FlexBool bool

func (b *FlexBool) UnmarshalJSON(data []byte) error {
	switch strings.ToLower(strings.Trim(string(bytes.TrimSpace(data)), `"`)) {
	case "true", "1", "yes":
		*b = true
	case "false", "0", "no", "null", "":
		*b = false
	default:
		var v bool
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*b = FlexBool(v)
	}
	return nil
}
