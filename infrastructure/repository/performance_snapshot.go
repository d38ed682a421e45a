package repository

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/adpulse/campaign-metrics-api/infrastructure/database/postgres"
	"github.com/adpulse/campaign-metrics-api/internal/domain"
)

const (
	performanceSnapshotsTable = "performance_snapshots ps"

	snapshotColumns = `ps.id, ps.campaign_id, ps.platform, ps.spend, ps.budget,
		ps.impressions, ps.clicks, ps.conversions, ps.revenue, ps.reach, ps.profit,
		ps.ctr, ps.cpc, ps.cpm, ps.roas, ps.conversion_rate, ps.cpa,
		ps.budget_utilization, ps.profit_margin, ps.alerts,
		ps.recorded_at, ps.hour, ps.data_source, ps.is_live, ps.created_at`
)

// PerformanceSnapshotRepository persists and reads the append-mostly metric
// store. Snapshots are immutable after insert except for their alert list,
// whose acknowledgment timestamps UpdateAlerts rewrites.
type PerformanceSnapshotRepository interface {
	Insert(snapshot *domain.PerformanceSnapshot) error
	LatestByPlatform(campaignID string, platform domain.Platform) (*domain.PerformanceSnapshot, error)
	// RecentWindow returns the campaign's non-COMBINED snapshots recorded
	// at or after since, newest first.
	RecentWindow(campaignID string, since time.Time) ([]*domain.PerformanceSnapshot, error)
	// HistorySince returns all of the campaign's snapshots recorded at or
	// after since, in chronological order.
	HistorySince(campaignID string, since time.Time) ([]*domain.PerformanceSnapshot, error)
	UpdateAlerts(snapshotID string, alerts []domain.Alert) error
}

type performanceSnapshotRepository struct {
	conn *postgres.Connection
}

func NewPerformanceSnapshotRepository(conn *postgres.Connection) PerformanceSnapshotRepository {
	return &performanceSnapshotRepository{
		conn: conn,
	}
}

func (r *performanceSnapshotRepository) Insert(snapshot *domain.PerformanceSnapshot) error {
	alertsJSON, err := json.Marshal(snapshot.Alerts)
	if err != nil {
		return errors.Wrap(err, "encoding snapshot alerts")
	}

	query, args, err := squirrel.StatementBuilder.
		Insert("performance_snapshots").
		Columns(
			"id", "campaign_id", "platform", "spend", "budget",
			"impressions", "clicks", "conversions", "revenue", "reach", "profit",
			"ctr", "cpc", "cpm", "roas", "conversion_rate", "cpa",
			"budget_utilization", "profit_margin", "alerts",
			"recorded_at", "hour", "data_source", "is_live",
		).
		Values(
			snapshot.ID, snapshot.CampaignID, snapshot.Platform, snapshot.Spend, snapshot.Budget,
			snapshot.Impressions, snapshot.Clicks, snapshot.Conversions, snapshot.Revenue, snapshot.Reach, snapshot.Profit,
			snapshot.CTR, snapshot.CPC, snapshot.CPM, snapshot.ROAS, snapshot.ConversionRate, snapshot.CPA,
			snapshot.BudgetUtilization, snapshot.ProfitMargin, alertsJSON,
			snapshot.Timestamp, snapshot.Hour, snapshot.DataSource, snapshot.IsLive,
		).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return errors.Wrap(err, "building snapshot insert")
	}

	_, err = r.conn.Exec(query, args...)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return errors.Wrapf(err, "inserting snapshot (pq code %s)", pqErr.Code)
		}
		return errors.Wrap(err, "inserting snapshot")
	}

	return nil
}

func (r *performanceSnapshotRepository) LatestByPlatform(campaignID string, platform domain.Platform) (*domain.PerformanceSnapshot, error) {
	query, args, err := squirrel.
		Select(snapshotColumns).
		From(performanceSnapshotsTable).
		Where(squirrel.Eq{"ps.campaign_id": campaignID, "ps.platform": platform}).
		OrderBy("ps.recorded_at DESC").
		Limit(1).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "building latest snapshot query")
	}

	rows, err := r.conn.Query(query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "fetching latest snapshot")
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}

	return scanSnapshot(rows)
}

func (r *performanceSnapshotRepository) RecentWindow(campaignID string, since time.Time) ([]*domain.PerformanceSnapshot, error) {
	query, args, err := squirrel.
		Select(snapshotColumns).
		From(performanceSnapshotsTable).
		Where(squirrel.Eq{"ps.campaign_id": campaignID}).
		Where(squirrel.NotEq{"ps.platform": domain.PlatformCombined}).
		Where(squirrel.GtOrEq{"ps.recorded_at": since}).
		OrderBy("ps.recorded_at DESC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "building recent window query")
	}

	return r.querySnapshots(query, args)
}

func (r *performanceSnapshotRepository) HistorySince(campaignID string, since time.Time) ([]*domain.PerformanceSnapshot, error) {
	query, args, err := squirrel.
		Select(snapshotColumns).
		From(performanceSnapshotsTable).
		Where(squirrel.Eq{"ps.campaign_id": campaignID}).
		Where(squirrel.GtOrEq{"ps.recorded_at": since}).
		OrderBy("ps.recorded_at ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "building history query")
	}

	return r.querySnapshots(query, args)
}

func (r *performanceSnapshotRepository) UpdateAlerts(snapshotID string, alerts []domain.Alert) error {
	alertsJSON, err := json.Marshal(alerts)
	if err != nil {
		return errors.Wrap(err, "encoding snapshot alerts")
	}

	query, args, err := squirrel.
		Update("performance_snapshots").
		Set("alerts", alertsJSON).
		Where(squirrel.Eq{"id": snapshotID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return errors.Wrap(err, "building alert update")
	}

	_, err = r.conn.Exec(query, args...)
	if err != nil {
		return errors.Wrap(err, "updating snapshot alerts")
	}

	return nil
}

func (r *performanceSnapshotRepository) querySnapshots(query string, args []interface{}) ([]*domain.PerformanceSnapshot, error) {
	rows, err := r.conn.Query(query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "querying snapshots")
	}
	defer rows.Close()

	snapshots := make([]*domain.PerformanceSnapshot, 0)
	for rows.Next() {
		snapshot, err := scanSnapshot(rows)
		if err != nil {
			return nil, err
		}
		snapshots = append(snapshots, snapshot)
	}

	if err = rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterating snapshot rows")
	}

	return snapshots, nil
}

func scanSnapshot(rows *sql.Rows) (*domain.PerformanceSnapshot, error) {
	snapshot := &domain.PerformanceSnapshot{}
	var alertsJSON []byte

	err := rows.Scan(
		&snapshot.ID,
		&snapshot.CampaignID,
		&snapshot.Platform,
		&snapshot.Spend,
		&snapshot.Budget,
		&snapshot.Impressions,
		&snapshot.Clicks,
		&snapshot.Conversions,
		&snapshot.Revenue,
		&snapshot.Reach,
		&snapshot.Profit,
		&snapshot.CTR,
		&snapshot.CPC,
		&snapshot.CPM,
		&snapshot.ROAS,
		&snapshot.ConversionRate,
		&snapshot.CPA,
		&snapshot.BudgetUtilization,
		&snapshot.ProfitMargin,
		&alertsJSON,
		&snapshot.Timestamp,
		&snapshot.Hour,
		&snapshot.DataSource,
		&snapshot.IsLive,
		&snapshot.CreatedAt,
	)
	if err != nil {
		return nil, errors.Wrap(err, "scanning snapshot row")
	}

	if alertsJSON != nil {
		if err := json.Unmarshal(alertsJSON, &snapshot.Alerts); err != nil {
			return nil, errors.Wrap(err, "decoding snapshot alerts")
		}
	}

	return snapshot, nil
}
