package reporting

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/adpulse/campaign-metrics-api/infrastructure/repository/mocks"
	"github.com/adpulse/campaign-metrics-api/internal/domain"
)

var testNow = time.Date(2024, 1, 9, 12, 0, 0, 0, time.UTC)

// fakeCache is an in-memory SnapshotCache for exercising the read-through
// path without redis.
type fakeCache struct {
	entries map[string][]byte
	sets    int
	deletes int
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: map[string][]byte{}}
}

func (c *fakeCache) Get(_ context.Context, key string) ([]byte, error) {
	payload, ok := c.entries[key]
	if !ok {
		return nil, nil
	}
	return payload, nil
}

func (c *fakeCache) Set(_ context.Context, key string, payload []byte, _ time.Duration) error {
	c.entries[key] = payload
	c.sets++
	return nil
}

func (c *fakeCache) Delete(_ context.Context, key string) error {
	delete(c.entries, key)
	c.deletes++
	return nil
}

func combinedSnapshot(id string, recordedAt time.Time) *domain.PerformanceSnapshot {
	return &domain.PerformanceSnapshot{
		ID:         id,
		CampaignID: "CMP001",
		Platform:   domain.PlatformCombined,
		Spend:      20.0,
		Revenue:    80.0,
		ROAS:       4.0,
		Timestamp:  recordedAt,
	}
}

func TestService_Latest_DefaultsToCombined(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockPerformanceSnapshotRepository(ctrl)
	service := NewService(mockRepo)

	expected := combinedSnapshot("SNAP001", testNow)
	mockRepo.EXPECT().
		LatestByPlatform("CMP001", domain.PlatformCombined).
		Return(expected, nil)

	snapshot, err := service.Latest(context.Background(), "CMP001", "")
	require.NoError(t, err)
	assert.Equal(t, expected, snapshot)
}

func TestService_Latest_SpecificPlatform(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockPerformanceSnapshotRepository(ctrl)
	service := NewService(mockRepo)

	mockRepo.EXPECT().
		LatestByPlatform("CMP001", domain.PlatformMeta).
		Return(nil, nil)

	snapshot, err := service.Latest(context.Background(), "CMP001", domain.PlatformMeta)
	require.NoError(t, err)
	assert.Nil(t, snapshot)
}

func TestService_Latest_ReadThroughCache(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockPerformanceSnapshotRepository(ctrl)
	cache := newFakeCache()
	service := NewService(mockRepo).WithCache(cache, time.Minute)

	expected := combinedSnapshot("SNAP001", testNow)

	// The repository is hit exactly once; the second read is served from
	// the cache.
	mockRepo.EXPECT().
		LatestByPlatform("CMP001", domain.PlatformCombined).
		Return(expected, nil).
		Times(1)

	first, err := service.Latest(context.Background(), "CMP001", domain.PlatformCombined)
	require.NoError(t, err)
	require.NotNil(t, first)
	assert.Equal(t, 1, cache.sets)

	second, err := service.Latest(context.Background(), "CMP001", domain.PlatformCombined)
	require.NoError(t, err)
	require.NotNil(t, second)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.Spend, second.Spend)
}

func TestService_Latest_CacheSkippedForPlatformReads(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockPerformanceSnapshotRepository(ctrl)
	cache := newFakeCache()
	service := NewService(mockRepo).WithCache(cache, time.Minute)

	mockRepo.EXPECT().
		LatestByPlatform("CMP001", domain.PlatformMeta).
		Return(nil, nil).
		Times(2)

	for i := 0; i < 2; i++ {
		_, err := service.Latest(context.Background(), "CMP001", domain.PlatformMeta)
		require.NoError(t, err)
	}

	assert.Equal(t, 0, cache.sets)
}

func TestService_History(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockPerformanceSnapshotRepository(ctrl)
	service := NewService(mockRepo).WithClock(func() time.Time { return testNow })

	expected := []*domain.PerformanceSnapshot{
		combinedSnapshot("SNAP001", testNow.Add(-2*time.Hour)),
		combinedSnapshot("SNAP002", testNow.Add(-time.Hour)),
	}

	mockRepo.EXPECT().
		HistorySince("CMP001", testNow.Add(-6*time.Hour)).
		Return(expected, nil)

	history, err := service.History(context.Background(), "CMP001", 6)
	require.NoError(t, err)
	assert.Equal(t, expected, history)
}

func TestService_History_DefaultWindow(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockPerformanceSnapshotRepository(ctrl)
	service := NewService(mockRepo).WithClock(func() time.Time { return testNow })

	// hours <= 0 falls back to the 24h default.
	mockRepo.EXPECT().
		HistorySince("CMP001", testNow.Add(-24*time.Hour)).
		Return(nil, nil).
		Times(2)

	_, err := service.History(context.Background(), "CMP001", 0)
	require.NoError(t, err)

	_, err = service.History(context.Background(), "CMP001", -5)
	require.NoError(t, err)
}

func TestService_Summary(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockPerformanceSnapshotRepository(ctrl)
	service := NewService(mockRepo).WithClock(func() time.Time { return testNow })

	latest := combinedSnapshot("SNAP003", testNow)
	latest.Alerts = []domain.Alert{
		{Kind: domain.AlertLowCTR, Triggered: true},
		{Kind: domain.AlertROASDrop, Triggered: true, AcknowledgedAt: &testNow},
	}

	history := []*domain.PerformanceSnapshot{
		{CampaignID: "CMP001", Platform: domain.PlatformCombined, Spend: 10.0, Revenue: 30.0, ROAS: 3.0},
		// Per-platform rows are excluded from the totals to avoid double
		// counting against the COMBINED series.
		{CampaignID: "CMP001", Platform: domain.PlatformMeta, Spend: 999.0, Revenue: 999.0, ROAS: 9.0},
		{CampaignID: "CMP001", Platform: domain.PlatformCombined, Spend: 20.0, Revenue: 80.0, ROAS: 4.0},
	}

	mockRepo.EXPECT().
		LatestByPlatform("CMP001", domain.PlatformCombined).
		Return(latest, nil)
	mockRepo.EXPECT().
		HistorySince("CMP001", testNow.Add(-24*time.Hour)).
		Return(history, nil)

	summary, err := service.Summary(context.Background(), "CMP001")
	require.NoError(t, err)
	require.NotNil(t, summary)

	assert.Equal(t, "CMP001", summary.CampaignID)
	assert.Equal(t, latest, summary.Latest)
	assert.Equal(t, 24, summary.WindowHours)
	assert.Equal(t, 30.0, summary.TotalSpend)
	assert.Equal(t, 110.0, summary.TotalRevenue)
	assert.Equal(t, 3.5, summary.AverageROAS)
	assert.Equal(t, 1, summary.ActiveAlerts)
}

func TestService_Summary_NoData(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockPerformanceSnapshotRepository(ctrl)
	service := NewService(mockRepo).WithClock(func() time.Time { return testNow })

	mockRepo.EXPECT().
		LatestByPlatform("CMP001", domain.PlatformCombined).
		Return(nil, nil)
	mockRepo.EXPECT().
		HistorySince("CMP001", gomock.Any()).
		Return(nil, nil)

	summary, err := service.Summary(context.Background(), "CMP001")
	require.NoError(t, err)
	require.NotNil(t, summary)

	assert.Nil(t, summary.Latest)
	assert.Equal(t, 0.0, summary.TotalSpend)
	assert.Equal(t, 0.0, summary.AverageROAS)
	assert.Equal(t, 0, summary.ActiveAlerts)
}

func TestService_AcknowledgeAlert(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockPerformanceSnapshotRepository(ctrl)
	cache := newFakeCache()
	service := NewService(mockRepo).
		WithCache(cache, time.Minute).
		WithClock(func() time.Time { return testNow })

	older := &domain.PerformanceSnapshot{
		ID:         "SNAP_OLD",
		CampaignID: "CMP001",
		Alerts: []domain.Alert{
			{Kind: domain.AlertLowCTR, Triggered: true},
		},
	}
	newer := &domain.PerformanceSnapshot{
		ID:         "SNAP_NEW",
		CampaignID: "CMP001",
		Alerts: []domain.Alert{
			{Kind: domain.AlertLowCTR, Triggered: true},
			{Kind: domain.AlertROASDrop, Triggered: true},
		},
	}

	mockRepo.EXPECT().
		HistorySince("CMP001", testNow.Add(-24*time.Hour)).
		Return([]*domain.PerformanceSnapshot{older, newer}, nil)

	// The most recent matching snapshot is the one that gets stamped.
	mockRepo.EXPECT().
		UpdateAlerts("SNAP_NEW", gomock.Any()).
		DoAndReturn(func(_ string, alerts []domain.Alert) error {
			require.Len(t, alerts, 2)
			assert.NotNil(t, alerts[0].AcknowledgedAt)
			assert.Equal(t, testNow, *alerts[0].AcknowledgedAt)
			assert.Nil(t, alerts[1].AcknowledgedAt)
			return nil
		})

	err := service.AcknowledgeAlert(context.Background(), "CMP001", domain.AlertLowCTR)
	require.NoError(t, err)

	// The cached latest COMBINED entry is invalidated.
	assert.Equal(t, 1, cache.deletes)

	// The older snapshot's copy of the alert stays untouched.
	assert.Nil(t, older.Alerts[0].AcknowledgedAt)
}

func TestService_AcknowledgeAlert_Idempotent(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockPerformanceSnapshotRepository(ctrl)
	service := NewService(mockRepo).WithClock(func() time.Time { return testNow })

	acknowledged := testNow.Add(-time.Hour)
	snapshot := &domain.PerformanceSnapshot{
		ID:         "SNAP001",
		CampaignID: "CMP001",
		Alerts: []domain.Alert{
			{Kind: domain.AlertLowCTR, Triggered: true, AcknowledgedAt: &acknowledged},
		},
	}

	// Already acknowledged: no UpdateAlerts call, original timestamp kept.
	mockRepo.EXPECT().
		HistorySince("CMP001", gomock.Any()).
		Return([]*domain.PerformanceSnapshot{snapshot}, nil)

	err := service.AcknowledgeAlert(context.Background(), "CMP001", domain.AlertLowCTR)
	require.NoError(t, err)
	assert.Equal(t, acknowledged, *snapshot.Alerts[0].AcknowledgedAt)
}

func TestService_AcknowledgeAlert_NothingToAcknowledge(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockPerformanceSnapshotRepository(ctrl)
	service := NewService(mockRepo).WithClock(func() time.Time { return testNow })

	mockRepo.EXPECT().
		HistorySince("CMP001", gomock.Any()).
		Return(nil, nil)

	// A missing alert is a silent no-op, not an error.
	err := service.AcknowledgeAlert(context.Background(), "CMP001", domain.AlertProfitNegative)
	assert.NoError(t, err)
}
