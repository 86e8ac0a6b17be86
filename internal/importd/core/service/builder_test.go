package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vinsync-io/vinsync/internal/importd/core/model"
)

func attrByName(t *testing.T, entry *model.CatalogEntry, name string) *model.Attribute {
	t.Helper()
	for i := range entry.Attributes {
		if entry.Attributes[i].Name == name {
			return &entry.Attributes[i]
		}
	}
	return nil
}

func TestBuildEntry_TitleConcatenatesYearMakeModel(t *testing.T) {
	entry := buildEntry(model.VehicleRecord{
		VIN: "VIN001", Year: "2021", Make: "Honda", Model: "Civic",
	})
	assert.Equal(t, "2021 Honda Civic", entry.Title)
	assert.Equal(t, "VIN001", entry.SKU)
}

func TestBuildEntry_OmitsEmptyFields(t *testing.T) {
	entry := buildEntry(model.VehicleRecord{
		VIN:  "VIN001",
		Make: "Honda", Model: "Civic", Year: "2021",
		LotNumber: "L-99",
	})

	assert.Nil(t, attrByName(t, entry, "Color"))
	assert.Nil(t, attrByName(t, entry, "Container Number"))
	assert.Nil(t, attrByName(t, entry, "Key"))

	lot := attrByName(t, entry, "Lot Number")
	require.NotNil(t, lot)
	assert.Equal(t, "L-99", lot.Value)
	assert.Equal(t, "lot-number", lot.Slug)
}

func TestBuildEntry_KeyPresence(t *testing.T) {
	yes := model.FlexBool(true)
	no := model.FlexBool(false)

	entry := buildEntry(model.VehicleRecord{VIN: "V1", IsKeyPresent: &yes})
	key := attrByName(t, entry, "Key")
	require.NotNil(t, key)
	assert.Equal(t, "Yes", key.Value)

	entry = buildEntry(model.VehicleRecord{VIN: "V2", IsKeyPresent: &no})
	key = attrByName(t, entry, "Key")
	require.NotNil(t, key)
	assert.Equal(t, "No", key.Value)

	entry = buildEntry(model.VehicleRecord{VIN: "V3"})
	assert.Nil(t, attrByName(t, entry, "Key"))
}

func TestBuildEntry_ArrivalDateKeepsUpstreamField(t *testing.T) {
	entry := buildEntry(model.VehicleRecord{VIN: "V1", ArivalDate: "2026-01-15"})
	arrival := attrByName(t, entry, "Arrival Date")
	require.NotNil(t, arrival)
	assert.Equal(t, "2026-01-15", arrival.Value)
}

func TestBuildEntry_TrackingLinkAnchor(t *testing.T) {
	entry := buildEntry(model.VehicleRecord{
		VIN:          "V1",
		TrackingLink: "https://track.example/v1?a=1&b=2",
		ShiplineName: "Maersk",
	})

	require.NotNil(t, entry.Tracking)
	assert.Equal(t, "https://track.example/v1?a=1&b=2", entry.Tracking.URL)
	assert.Equal(t, "Maersk", entry.Tracking.Label)

	tracking := attrByName(t, entry, "Tracking Link")
	require.NotNil(t, tracking)
	assert.Equal(t, "tracking-link", tracking.Slug)
	assert.Equal(t, trackingPosition, tracking.Position)
	assert.Equal(t,
		`<a href="https://track.example/v1?a=1&amp;b=2" target="_blank" rel="noopener noreferrer">Maersk</a>`,
		tracking.Value)
}

func TestBuildEntry_TrackingLinkFallbacks(t *testing.T) {
	// Alternate spelling of the link field, no shipline name at all.
	entry := buildEntry(model.VehicleRecord{VIN: "V1", TrackingLinkAlt: "https://track.example/alt"})
	require.NotNil(t, entry.Tracking)
	assert.Equal(t, "https://track.example/alt", entry.Tracking.URL)
	assert.Equal(t, "Link", entry.Tracking.Label)

	// Alternate spelling of the label field.
	entry = buildEntry(model.VehicleRecord{
		VIN: "V2", TrackingLink: "https://track.example/v2", ShiplineNameAlt: "MSC",
	})
	require.NotNil(t, entry.Tracking)
	assert.Equal(t, "MSC", entry.Tracking.Label)

	// No link at all: no tracking attribute.
	entry = buildEntry(model.VehicleRecord{VIN: "V3", ShiplineName: "Maersk"})
	assert.Nil(t, entry.Tracking)
	assert.Nil(t, attrByName(t, entry, "Tracking Link"))
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "lot-number", slugify("Lot Number"))
	assert.Equal(t, "key", slugify("Key"))
	assert.Equal(t, "pickup-date", slugify("Pickup Date"))
	assert.Equal(t, "a-b-c", slugify("  A  B  C  "))
}
