package service

import (
	"fmt"
	"html"
	"strings"

	"github.com/vinsync-io/vinsync/internal/importd/core/model"
)

// trackingPosition pushes the tracking link to the end of the rendered
// attribute table.
const trackingPosition = 99

// buildEntry maps a raw vehicle payload into a catalog entry. A source
// field produces an attribute only when it is non-empty; absent fields are
// omitted, never emitted blank.
func buildEntry(rec model.VehicleRecord) *model.CatalogEntry {
	// Naive concatenation: missing parts leave their whitespace behind,
	// matching how titles have always been rendered downstream.
	title := fmt.Sprintf("%s %s %s", rec.Year, rec.Make, rec.Model)

	fields := []struct {
		label string
		value string
	}{
		{"Make", rec.Make},
		{"Model", rec.Model},
		{"Year", rec.Year.String()},
		{"Color", rec.Color},
		{"Lot Number", rec.LotNumber.String()},
		{"Key", keyValue(rec.IsKeyPresent)},
		{"Pickup Date", rec.DateOfPickup},
		{"Delivery Date", rec.DeliverDate},
		{"Container Number", rec.ContainerNumber.String()},
		{"Loading Date", rec.LoadingDate},
		{"Booking Number", rec.BookingNumber.String()},
		{"Departure Date", rec.DepartureDate},
		{"Arrival Date", rec.ArivalDate},
	}

	attrs := make([]model.Attribute, 0, len(fields)+1)
	for _, f := range fields {
		if f.value == "" {
			continue
		}
		attrs = append(attrs, model.Attribute{
			Slug:     slugify(f.label),
			Name:     f.label,
			Value:    f.value,
			Position: 0,
			Visible:  true,
		})
	}

	entry := &model.CatalogEntry{
		Title:      title,
		SKU:        rec.VIN,
		Attributes: attrs,
	}

	link := rec.TrackingLink
	if link == "" {
		link = rec.TrackingLinkAlt
	}
	label := rec.ShiplineName
	if label == "" {
		label = rec.ShiplineNameAlt
	}
	if label == "" {
		label = "Link"
	}

	if link != "" {
		entry.Tracking = &model.TrackingLink{URL: link, Label: label}
		entry.Attributes = append(entry.Attributes, model.Attribute{
			Slug:     "tracking-link",
			Name:     "Tracking Link",
			Value:    trackingAnchor(link, label),
			Position: trackingPosition,
			Visible:  true,
		})
	}

	return entry
}

func keyValue(present *model.FlexBool) string {
	if present == nil {
		return ""
	}
	if bool(*present) {
		return "Yes"
	}
	return "No"
}

func trackingAnchor(link, label string) string {
	return fmt.Sprintf(`<a href="%s" target="_blank" rel="noopener noreferrer">%s</a>`,
		html.EscapeString(link), html.EscapeString(label))
}

// slugify lowercases and dashes a label the way the catalog keys attributes.
func slugify(label string) string {
	var b strings.Builder
	lastDash := true // suppress a leading dash
	for _, r := range strings.ToLower(label) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
