package service

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/vinsync-io/vinsync/internal/importd/core/model"
)

// fakeInventory serves canned pages and images. An optional block channel
// lets a test hold a batch mid-fetch to provoke overlapping runs.
type fakeInventory struct {
	mu         sync.Mutex
	pages      map[int][]model.VehicleRecord
	images     map[int64][]string
	downloads  map[string]string // url -> body; absent urls fail
	fetchCalls []int
	nominal    int

	fetchStarted chan struct{}
	fetchBlock   chan struct{}
}

func newFakeInventory() *fakeInventory {
	return &fakeInventory{
		pages:     map[int][]model.VehicleRecord{},
		images:    map[int64][]string{},
		downloads: map[string]string{},
		nominal:   10,
	}
}

func (f *fakeInventory) FetchPage(ctx context.Context, page int) []model.VehicleRecord {
	f.mu.Lock()
	f.fetchCalls = append(f.fetchCalls, page)
	f.mu.Unlock()

	if f.fetchStarted != nil {
		f.fetchStarted <- struct{}{}
	}
	if f.fetchBlock != nil {
		<-f.fetchBlock
	}
	return f.pages[page]
}

func (f *fakeInventory) FetchImageURLs(ctx context.Context, vehicleID int64) []string {
	return f.images[vehicleID]
}

func (f *fakeInventory) Download(ctx context.Context, url string) (io.ReadCloser, string, int64, error) {
	body, ok := f.downloads[url]
	if !ok {
		return nil, "", 0, fmt.Errorf("download failed: %s", url)
	}
	return io.NopCloser(strings.NewReader(body)), "image/jpeg", int64(len(body)), nil
}

func (f *fakeInventory) NominalPageSize() int { return f.nominal }

func (f *fakeInventory) pagesFetched() []int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]int(nil), f.fetchCalls...)
}

// fakeCatalog records created entries in memory, keyed by SKU.
type fakeCatalog struct {
	mu       sync.Mutex
	nextID   int
	existing map[string]string // vin -> id
	created  []*model.CatalogEntry
	attached map[string]attachedImages
}

type attachedImages struct {
	primary *model.MediaAsset
	gallery []model.MediaAsset
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{
		nextID:   100,
		existing: map[string]string{},
		attached: map[string]attachedImages{},
	}
}

func (f *fakeCatalog) FindByVIN(ctx context.Context, vin string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	id, ok := f.existing[vin]
	return id, ok, nil
}

func (f *fakeCatalog) CreateEntry(ctx context.Context, entry *model.CatalogEntry) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	id := strconv.Itoa(f.nextID)
	f.existing[entry.SKU] = id
	f.created = append(f.created, entry)
	return id, nil
}

func (f *fakeCatalog) AttachImages(ctx context.Context, id string, primary *model.MediaAsset, gallery []model.MediaAsset) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.attached[id] = attachedImages{primary: primary, gallery: gallery}
	return nil
}

func (f *fakeCatalog) ListEntries(ctx context.Context) ([]model.CatalogVehicle, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.CatalogVehicle
	for _, e := range f.created {
		out = append(out, model.CatalogVehicle{VIN: e.SKU})
	}
	return out, nil
}

func (f *fakeCatalog) createdCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.created)
}

// fakeMedia dedups by title like the real store.
type fakeMedia struct {
	mu     sync.Mutex
	stored map[string]model.MediaAsset
	puts   int
}

func newFakeMedia() *fakeMedia {
	return &fakeMedia{stored: map[string]model.MediaAsset{}}
}

func (f *fakeMedia) FindByTitle(ctx context.Context, title string) (*model.MediaAsset, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if asset, ok := f.stored[title]; ok {
		return &asset, nil
	}
	return nil, nil
}

func (f *fakeMedia) Put(ctx context.Context, title, filename, contentType string, body io.Reader, size int64) (*model.MediaAsset, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.puts++
	asset := model.MediaAsset{ID: filename, URL: "https://media.test/" + filename, Title: title}
	f.stored[title] = asset
	return &asset, nil
}

// fakeSettings is an in-memory cursor store.
type fakeSettings struct {
	mu     sync.Mutex
	cursor model.ImportCursor
}

func newFakeSettings() *fakeSettings {
	return &fakeSettings{cursor: model.ImportCursor{Offset: 0, BatchSize: 10}}
}

func (f *fakeSettings) Cursor(ctx context.Context) (model.ImportCursor, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.cursor, nil
}

func (f *fakeSettings) SetOffset(ctx context.Context, offset int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cursor.Offset = offset
	return nil
}

func (f *fakeSettings) SetBatchSize(ctx context.Context, size int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cursor.BatchSize = size
	return nil
}

func (f *fakeSettings) SetPaused(ctx context.Context, paused bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cursor.Paused = paused
	return nil
}

// fakeSink collects appended lines.
type fakeSink struct {
	mu    sync.Mutex
	lines []string
}

func (f *fakeSink) Append(message string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lines = append(f.lines, message)
}

func (f *fakeSink) Tail(n int) ([]model.LogLine, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.LogLine
	start := 0
	if n > 0 && len(f.lines) > n {
		start = len(f.lines) - n
	}
	for _, msg := range f.lines[start:] {
		out = append(out, model.LogLine{Message: msg})
	}
	return out, nil
}

func (f *fakeSink) contains(substr string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, line := range f.lines {
		if strings.Contains(line, substr) {
			return true
		}
	}
	return false
}

type testDeps struct {
	inventory *fakeInventory
	catalog   *fakeCatalog
	media     *fakeMedia
	settings  *fakeSettings
	sink      *fakeSink
}

func newTestService(maxSearchPages int) (*Service, *testDeps) {
	deps := &testDeps{
		inventory: newFakeInventory(),
		catalog:   newFakeCatalog(),
		media:     newFakeMedia(),
		settings:  newFakeSettings(),
		sink:      &fakeSink{},
	}
	svc := New(deps.inventory, deps.catalog, deps.media, deps.settings, deps.sink, nil, maxSearchPages)
	return svc, deps
}

func vehicles(vins ...string) []model.VehicleRecord {
	out := make([]model.VehicleRecord, 0, len(vins))
	for i, vin := range vins {
		out = append(out, model.VehicleRecord{ID: int64(i + 1), VIN: vin, Make: "Toyota", Model: "Camry", Year: "2020"})
	}
	return out
}
