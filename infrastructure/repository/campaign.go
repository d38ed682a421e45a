package repository

import (
	"database/sql"
	"encoding/json"

	"github.com/Masterminds/squirrel"
	"github.com/pkg/errors"

	"github.com/adpulse/campaign-metrics-api/infrastructure/database/postgres"
	"github.com/adpulse/campaign-metrics-api/internal/domain"
)

const campaignsTable = "campaigns c"

const campaignColumns = "c.id, c.name, c.status, c.daily_budget, c.total_budget, c.platforms, c.product_id, c.created_at, c.updated_at"

// CampaignRepository reads campaigns for the metrics core. Campaign writes
// belong to the CRUD layer and are not exposed here.
type CampaignRepository interface {
	ListByStatus(statuses []domain.CampaignStatus) ([]*domain.Campaign, error)
	GetByID(id string) (*domain.Campaign, error)
}

type campaignRepository struct {
	conn *postgres.Connection
}

func NewCampaignRepository(conn *postgres.Connection) CampaignRepository {
	return &campaignRepository{
		conn: conn,
	}
}

func (r *campaignRepository) ListByStatus(statuses []domain.CampaignStatus) ([]*domain.Campaign, error) {
	query, args, err := squirrel.
		Select(campaignColumns).
		From(campaignsTable).
		Where(squirrel.Eq{"c.status": statuses}).
		OrderBy("c.created_at ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "building campaign list query")
	}

	rows, err := r.conn.Query(query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "listing campaigns by status")
	}
	defer rows.Close()

	campaigns := make([]*domain.Campaign, 0)
	for rows.Next() {
		campaign, err := scanCampaign(rows)
		if err != nil {
			return nil, errors.Wrap(err, "scanning campaign row")
		}
		campaigns = append(campaigns, campaign)
	}

	if err = rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterating campaign rows")
	}

	return campaigns, nil
}

func (r *campaignRepository) GetByID(id string) (*domain.Campaign, error) {
	query, args, err := squirrel.
		Select(campaignColumns).
		From(campaignsTable).
		Where(squirrel.Eq{"c.id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "building campaign query")
	}

	rows, err := r.conn.Query(query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "fetching campaign")
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}

	campaign, err := scanCampaign(rows)
	if err != nil {
		return nil, errors.Wrap(err, "scanning campaign row")
	}

	return campaign, nil
}

func scanCampaign(rows *sql.Rows) (*domain.Campaign, error) {
	campaign := &domain.Campaign{}
	var platformsJSON []byte
	var productID sql.NullString

	err := rows.Scan(
		&campaign.ID,
		&campaign.Name,
		&campaign.Status,
		&campaign.Budget.Daily,
		&campaign.Budget.Total,
		&platformsJSON,
		&productID,
		&campaign.CreatedAt,
		&campaign.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	campaign.ProductID = productID.String

	if platformsJSON != nil {
		if err := json.Unmarshal(platformsJSON, &campaign.Platforms); err != nil {
			return nil, errors.Wrap(err, "decoding campaign platforms")
		}
	}

	return campaign, nil
}
