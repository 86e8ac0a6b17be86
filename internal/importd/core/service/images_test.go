package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vinsync-io/vinsync/internal/importd/core/model"
)

func TestImportImages_PrimaryIsFirstURL(t *testing.T) {
	svc, deps := newTestService(200)
	deps.inventory.images[1] = []string{
		"https://img.test/cars/front.jpg",
		"https://img.test/cars/side.jpg",
		"https://img.test/cars/rear.jpg",
	}
	for _, url := range deps.inventory.images[1] {
		deps.inventory.downloads[url] = "jpegdata"
	}

	primary, gallery := svc.importImages(context.Background(), 1)

	require.NotNil(t, primary)
	assert.Equal(t, "front", primary.Title)
	require.Len(t, gallery, 2)
	assert.Equal(t, "side", gallery[0].Title)
	assert.Equal(t, "rear", gallery[1].Title)
}

func TestImportImages_FirstURLFailsLeavesNoPrimary(t *testing.T) {
	svc, deps := newTestService(200)
	deps.inventory.images[1] = []string{
		"https://img.test/cars/front.jpg",
		"https://img.test/cars/side.jpg",
	}
	// Only the second URL downloads; the first fails and nothing is
	// promoted in its place.
	deps.inventory.downloads["https://img.test/cars/side.jpg"] = "jpegdata"

	primary, gallery := svc.importImages(context.Background(), 1)

	assert.Nil(t, primary)
	require.Len(t, gallery, 1)
	assert.Equal(t, "side", gallery[0].Title)
}

func TestImportImages_DuplicateTitleReused(t *testing.T) {
	svc, deps := newTestService(200)
	deps.inventory.images[1] = []string{"https://img.test/cars/front.jpg"}
	deps.media.stored["front"] = model.MediaAsset{ID: "front.jpg", URL: "https://media.test/front.jpg", Title: "front"}

	primary, gallery := svc.importImages(context.Background(), 1)

	// The stored asset is reused without a download, and a duplicate can
	// still serve as the primary image.
	require.NotNil(t, primary)
	assert.Equal(t, "https://media.test/front.jpg", primary.URL)
	assert.Empty(t, gallery)
	assert.Equal(t, 0, deps.media.puts)
	assert.True(t, deps.sink.contains("Duplicate image skipped: front.jpg"))
}

func TestImportImages_NoURLs(t *testing.T) {
	svc, _ := newTestService(200)

	primary, gallery := svc.importImages(context.Background(), 404)

	assert.Nil(t, primary)
	assert.Empty(t, gallery)
}

func TestFilenameFromURL(t *testing.T) {
	assert.Equal(t, "front.jpg", filenameFromURL("https://img.test/cars/front.jpg"))
	assert.Equal(t, "front.jpg", filenameFromURL("https://img.test/cars/front.jpg?sig=abc"))
	assert.Equal(t, "plain.png", filenameFromURL("plain.png"))
}
