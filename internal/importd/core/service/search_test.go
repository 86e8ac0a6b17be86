package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fullPage(prefix string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("%s%03d", prefix, i)
	}
	return out
}

func TestImportByVIN_FindsOnLaterPage(t *testing.T) {
	svc, deps := newTestService(200)
	deps.inventory.pages[1] = vehicles(fullPage("A", 10)...)
	deps.inventory.pages[2] = vehicles(fullPage("B", 10)...)
	deps.inventory.pages[3] = vehicles("C000", "TARGET", "C002")

	err := svc.ImportByVIN(context.Background(), "TARGET")
	require.NoError(t, err)

	// Exactly three pages fetched; the search stops at the match.
	assert.Equal(t, []int{1, 2, 3}, deps.inventory.pagesFetched())
	assert.Equal(t, 1, deps.catalog.createdCount())
	assert.True(t, deps.sink.contains("VIN found on page 3: TARGET"))
}

func TestImportByVIN_ShortPageEndsSearch(t *testing.T) {
	svc, deps := newTestService(200)
	deps.inventory.pages[1] = vehicles(fullPage("A", 10)...)
	deps.inventory.pages[2] = vehicles("B000", "B001")

	err := svc.ImportByVIN(context.Background(), "MISSING")
	assert.ErrorIs(t, err, ErrVehicleNotFound)
	assert.Equal(t, []int{1, 2}, deps.inventory.pagesFetched())
}

func TestImportByVIN_EmptyPageEndsSearch(t *testing.T) {
	svc, deps := newTestService(200)
	deps.inventory.pages[1] = vehicles(fullPage("A", 10)...)

	err := svc.ImportByVIN(context.Background(), "MISSING")
	assert.ErrorIs(t, err, ErrVehicleNotFound)
	assert.Equal(t, []int{1, 2}, deps.inventory.pagesFetched())
}

func TestImportByVIN_PageBoundHit(t *testing.T) {
	svc, deps := newTestService(3)
	for page := 1; page <= 10; page++ {
		deps.inventory.pages[page] = vehicles(fullPage(fmt.Sprintf("P%d", page), 10)...)
	}

	err := svc.ImportByVIN(context.Background(), "MISSING")
	assert.ErrorIs(t, err, ErrSearchExhausted)
	assert.Equal(t, []int{1, 2, 3}, deps.inventory.pagesFetched())
	assert.True(t, deps.sink.contains("VIN search stopped after 3 pages"))
}

func TestImportByVIN_RejectsEmptyVIN(t *testing.T) {
	svc, deps := newTestService(200)

	assert.ErrorIs(t, svc.ImportByVIN(context.Background(), ""), ErrMissingVIN)
	assert.ErrorIs(t, svc.ImportByVIN(context.Background(), "   "), ErrMissingVIN)
	assert.Empty(t, deps.inventory.pagesFetched())
}

func TestImportByVIN_ExistingVINIsSkip(t *testing.T) {
	svc, deps := newTestService(200)
	deps.inventory.pages[1] = vehicles("VIN001", "VIN002")
	deps.catalog.existing["VIN001"] = "7"

	err := svc.ImportByVIN(context.Background(), "VIN001")
	require.NoError(t, err)

	assert.Equal(t, 0, deps.catalog.createdCount())
	assert.True(t, deps.sink.contains("Already exists: VIN001"))
}

func TestImportByVIN_IgnoresPausedFlag(t *testing.T) {
	svc, deps := newTestService(200)
	deps.inventory.pages[1] = vehicles("VIN001")
	require.NoError(t, deps.settings.SetPaused(context.Background(), true))

	require.NoError(t, svc.ImportByVIN(context.Background(), "VIN001"))
	assert.Equal(t, 1, deps.catalog.createdCount())
}
