package core

import (
	"context"
	"io"

	"github.com/vinsync-io/vinsync/internal/importd/core/model"
)

// Catalog is the external product catalog the importer writes into.
// Entries are keyed by VIN (stored as the SKU); the importer never updates
// or deletes an entry once created.
type Catalog interface {
	// FindByVIN returns the entry id for a VIN, if one exists.
	FindByVIN(ctx context.Context, vin string) (id string, ok bool, err error)

	// CreateEntry creates a new catalog entry and returns its id.
	CreateEntry(ctx context.Context, entry *model.CatalogEntry) (id string, err error)

	// AttachImages sets the primary image and the ordered gallery of an entry.
	// A nil primary leaves the entry without one.
	AttachImages(ctx context.Context, id string, primary *model.MediaAsset, gallery []model.MediaAsset) error

	// ListEntries returns every imported vehicle, VIN plus mapped fields.
	ListEntries(ctx context.Context) ([]model.CatalogVehicle, error)
}

// MediaStore holds downloaded vehicle images, deduplicated by title
// (the filename stem of the source URL).
type MediaStore interface {
	// FindByTitle returns the stored asset whose title matches, or nil.
	FindByTitle(ctx context.Context, title string) (*model.MediaAsset, error)

	// Put stores a new asset and returns its reference.
	Put(ctx context.Context, title, filename, contentType string, body io.Reader, size int64) (*model.MediaAsset, error)
}

// SettingsStore persists the import cursor across restarts. Each field is
// independently meaningful; writes are atomic per field.
type SettingsStore interface {
	Cursor(ctx context.Context) (model.ImportCursor, error)
	SetOffset(ctx context.Context, offset int) error
	SetBatchSize(ctx context.Context, size int) error
	SetPaused(ctx context.Context, paused bool) error
}

// LogSink is the append-only operator log. The importer never truncates it.
type LogSink interface {
	Append(message string)
	Tail(n int) ([]model.LogLine, error)
}

// InventoryAPI is the upstream vehicle inventory. Transport failures,
// non-success statuses and malformed bodies all collapse into an empty
// result so the engine can apply its reset-vs-retry semantics.
type InventoryAPI interface {
	// FetchPage returns one page of vehicles, or nil on any failure.
	FetchPage(ctx context.Context, page int) []model.VehicleRecord

	// FetchImageURLs returns the ordered image URLs of a vehicle, or nil.
	FetchImageURLs(ctx context.Context, vehicleID int64) []string

	// Download fetches a single image. Unlike the fetchers above it returns
	// the error, so the image importer can drop just that image.
	Download(ctx context.Context, url string) (body io.ReadCloser, contentType string, size int64, err error)

	// NominalPageSize is the page size the upstream is observed to serve.
	// Last-page detection (count < nominal) depends on it.
	NominalPageSize() int
}
