package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcessBatch_CreatesNewVehicles(t *testing.T) {
	svc, deps := newTestService(200)
	deps.inventory.pages[1] = vehicles("VIN001", "VIN002", "VIN003")

	err := svc.ProcessBatch(context.Background(), TriggerManual)
	require.NoError(t, err)

	assert.Equal(t, 3, deps.catalog.createdCount())
	cursor, _ := deps.settings.Cursor(context.Background())
	assert.Equal(t, 3, cursor.Offset)
	assert.True(t, deps.sink.contains("Created new: VIN001"))
}

func TestProcessBatch_SkipsExistingVINs(t *testing.T) {
	svc, deps := newTestService(200)
	deps.inventory.pages[1] = vehicles("VIN001", "VIN002")
	deps.catalog.existing["VIN001"] = "42"

	err := svc.ProcessBatch(context.Background(), TriggerManual)
	require.NoError(t, err)

	assert.Equal(t, 1, deps.catalog.createdCount())
	assert.True(t, deps.sink.contains("Already exists: VIN001"))

	// The duplicate still advances the offset; re-reading the same rows
	// forever would wedge the cursor.
	cursor, _ := deps.settings.Cursor(context.Background())
	assert.Equal(t, 2, cursor.Offset)
}

func TestProcessBatch_Rerun_IsIdempotent(t *testing.T) {
	svc, deps := newTestService(200)
	deps.inventory.pages[1] = vehicles("VIN001", "VIN002")

	require.NoError(t, svc.ProcessBatch(context.Background(), TriggerManual))
	require.NoError(t, deps.settings.SetOffset(context.Background(), 0))
	require.NoError(t, svc.ProcessBatch(context.Background(), TriggerManual))

	assert.Equal(t, 2, deps.catalog.createdCount())
}

func TestProcessBatch_EmptyPageResetsOffset(t *testing.T) {
	svc, deps := newTestService(200)
	require.NoError(t, deps.settings.SetOffset(context.Background(), 50))

	err := svc.ProcessBatch(context.Background(), TriggerManual)
	require.NoError(t, err)

	cursor, _ := deps.settings.Cursor(context.Background())
	assert.Equal(t, 0, cursor.Offset)
	assert.True(t, deps.sink.contains("No vehicles fetched. Offset reset."))
	assert.Equal(t, []int{6}, deps.inventory.pagesFetched())
}

func TestProcessBatch_PageDerivedFromOffsetAndBatchSize(t *testing.T) {
	svc, deps := newTestService(200)
	require.NoError(t, deps.settings.SetOffset(context.Background(), 40))
	require.NoError(t, deps.settings.SetBatchSize(context.Background(), 20))
	deps.inventory.pages[3] = vehicles("VIN900")

	require.NoError(t, svc.ProcessBatch(context.Background(), TriggerManual))

	assert.Equal(t, []int{3}, deps.inventory.pagesFetched())
}

func TestProcessBatch_PausedBlocksScheduleOnly(t *testing.T) {
	svc, deps := newTestService(200)
	deps.inventory.pages[1] = vehicles("VIN001")
	require.NoError(t, deps.settings.SetPaused(context.Background(), true))

	err := svc.ProcessBatch(context.Background(), TriggerSchedule)
	assert.ErrorIs(t, err, ErrPaused)
	assert.Equal(t, 0, deps.catalog.createdCount())
	assert.True(t, deps.sink.contains("Import is paused, scheduled batch skipped."))

	// A manual trigger overrides the pause.
	require.NoError(t, svc.ProcessBatch(context.Background(), TriggerManual))
	assert.Equal(t, 1, deps.catalog.createdCount())
}

func TestProcessBatch_RejectsOverlappingRun(t *testing.T) {
	svc, deps := newTestService(200)
	deps.inventory.pages[1] = vehicles("VIN001")
	deps.inventory.fetchStarted = make(chan struct{})
	deps.inventory.fetchBlock = make(chan struct{})

	firstDone := make(chan error, 1)
	go func() {
		firstDone <- svc.ProcessBatch(context.Background(), TriggerSchedule)
	}()

	<-deps.inventory.fetchStarted
	err := svc.ProcessBatch(context.Background(), TriggerManual)
	assert.ErrorIs(t, err, ErrRunInProgress)

	close(deps.inventory.fetchBlock)
	require.NoError(t, <-firstDone)

	// With the first run finished the lock is free again.
	deps.inventory.fetchStarted = nil
	deps.inventory.fetchBlock = nil
	require.NoError(t, svc.ProcessBatch(context.Background(), TriggerManual))
}

func TestProcessBatch_TruncatesOversizedPage(t *testing.T) {
	svc, deps := newTestService(200)

	var vins []string
	for i := 0; i < 15; i++ {
		vins = append(vins, fmt.Sprintf("VIN%03d", i))
	}
	deps.inventory.pages[1] = vehicles(vins...)

	require.NoError(t, svc.ProcessBatch(context.Background(), TriggerManual))

	assert.Equal(t, 10, deps.catalog.createdCount())
	cursor, _ := deps.settings.Cursor(context.Background())
	assert.Equal(t, 10, cursor.Offset)
}

func TestProcessBatch_SkipsRecordsWithoutVIN(t *testing.T) {
	svc, deps := newTestService(200)
	page := vehicles("VIN001")
	page = append(page, vehicles("")[0])
	deps.inventory.pages[1] = page

	require.NoError(t, svc.ProcessBatch(context.Background(), TriggerManual))

	assert.Equal(t, 1, deps.catalog.createdCount())
	cursor, _ := deps.settings.Cursor(context.Background())
	assert.Equal(t, 2, cursor.Offset)
}

func TestProcessBatch_CanceledContextKeepsOffset(t *testing.T) {
	svc, deps := newTestService(200)
	deps.inventory.pages[1] = vehicles("VIN001", "VIN002")
	require.NoError(t, deps.settings.SetOffset(context.Background(), 0))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := svc.ProcessBatch(ctx, TriggerManual)
	assert.Error(t, err)

	cursor, _ := deps.settings.Cursor(context.Background())
	assert.Equal(t, 0, cursor.Offset)
}

func TestStatus_ReportsCursorAndState(t *testing.T) {
	svc, deps := newTestService(200)
	require.NoError(t, deps.settings.SetOffset(context.Background(), 30))
	require.NoError(t, deps.settings.SetBatchSize(context.Background(), 30))

	st, err := svc.Status(context.Background())
	require.NoError(t, err)

	assert.Equal(t, StateIdle, st.State)
	assert.Equal(t, 30, st.Offset)
	assert.Equal(t, 30, st.BatchSize)
	assert.False(t, st.Paused)
}

func TestSetBatchSize_RejectsUnknownSize(t *testing.T) {
	svc, deps := newTestService(200)

	err := svc.SetBatchSize(context.Background(), 25)
	assert.ErrorIs(t, err, ErrInvalidBatchSize)

	cursor, _ := deps.settings.Cursor(context.Background())
	assert.Equal(t, 10, cursor.BatchSize)
}

func TestSetBatchSize_AcceptsAllowedSizes(t *testing.T) {
	svc, deps := newTestService(200)

	for _, size := range []int{10, 20, 30, 50} {
		require.NoError(t, svc.SetBatchSize(context.Background(), size))
		cursor, _ := deps.settings.Cursor(context.Background())
		assert.Equal(t, size, cursor.BatchSize)
	}
}

func TestTogglePause_FlipsAndLogs(t *testing.T) {
	svc, deps := newTestService(200)

	paused, err := svc.TogglePause(context.Background())
	require.NoError(t, err)
	assert.True(t, paused)
	assert.True(t, deps.sink.contains("Import paused."))

	paused, err = svc.TogglePause(context.Background())
	require.NoError(t, err)
	assert.False(t, paused)
	assert.True(t, deps.sink.contains("Import resumed."))
}

func TestResetOffset_ZeroesCursor(t *testing.T) {
	svc, deps := newTestService(200)
	require.NoError(t, deps.settings.SetOffset(context.Background(), 70))

	require.NoError(t, svc.ResetOffset(context.Background()))

	cursor, _ := deps.settings.Cursor(context.Background())
	assert.Equal(t, 0, cursor.Offset)
}
