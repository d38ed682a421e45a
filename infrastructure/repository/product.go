package repository

import (
	"database/sql"

	"github.com/Masterminds/squirrel"
	"github.com/pkg/errors"

	"github.com/adpulse/campaign-metrics-api/infrastructure/database/postgres"
	"github.com/adpulse/campaign-metrics-api/internal/domain"
)

const productsTable = "products p"

// ProductRepository resolves the advertised product for revenue
// calculation. Returns (nil, nil) when the product does not exist; the
// caller decides whether that warrants the documented price fallback.
type ProductRepository interface {
	GetByID(id string) (*domain.Product, error)
}

type productRepository struct {
	conn *postgres.Connection
}

func NewProductRepository(conn *postgres.Connection) ProductRepository {
	return &productRepository{
		conn: conn,
	}
}

func (r *productRepository) GetByID(id string) (*domain.Product, error) {
	if id == "" {
		return nil, nil
	}

	query, args, err := squirrel.
		Select("p.id, p.name, p.price, p.currency, p.created_at").
		From(productsTable).
		Where(squirrel.Eq{"p.id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "building product query")
	}

	product := &domain.Product{}
	var currency sql.NullString

	row := r.conn.QueryRow(query, args...)
	err = row.Scan(&product.ID, &product.Name, &product.Price, &currency, &product.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, errors.Wrap(err, "scanning product row")
	}

	product.Currency = currency.String

	return product, nil
}
