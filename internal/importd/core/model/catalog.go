package model

// Attribute is one display attribute of a catalog entry. Attributes keep
// their insertion order; Position only breaks ties at render time.
type Attribute struct {
	Slug        string `json:"slug"`
	Name        string `json:"name"`
	Value       string `json:"value"`
	Position    int    `json:"position"`
	Visible     bool   `json:"visible"`
	IsVariation bool   `json:"is_variation"`
}

// TrackingLink is the shipment tracking metadata attached to an entry.
type TrackingLink struct {
	URL   string `json:"url"`
	Label string `json:"label"`
}

// CatalogEntry is the record created in the storefront catalog for one
// vehicle. The SKU is the VIN and acts as the unique external key.
type CatalogEntry struct {
	Title      string        `json:"title"`
	SKU        string        `json:"sku"`
	Attributes []Attribute   `json:"attributes"`
	Tracking   *TrackingLink `json:"tracking,omitempty"`
}

// MediaAsset references one stored image.
type MediaAsset struct {
	ID    string `json:"id"`
	URL   string `json:"url"`
	Title string `json:"title"`
}

// CatalogVehicle is the operator-facing row for one imported vehicle.
type CatalogVehicle struct {
	VIN       string `json:"vin"`
	Make      string `json:"make"`
	Model     string `json:"model"`
	Year      string `json:"year"`
	Color     string `json:"color"`
	Permalink string `json:"permalink"`
}
