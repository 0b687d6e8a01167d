package product

import (
	"database/sql"

	"github.com/lib/pq"
)

type PostgresRepository struct {
	db *sql.DB
}

const productColumns = `id, name, description, price, category, stock, image_url, requires_prescription, active, created_at`

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) GetByID(id string) (Product, error) {
	row := r.db.QueryRow(`SELECT `+productColumns+` FROM products WHERE id = $1 AND active = TRUE`, id)
	p, err := scanProduct(row)
	if err == sql.ErrNoRows {
		return Product{}, ErrNotFound
	}
	return p, err
}

func (r *PostgresRepository) List(category, search string) ([]Product, error) {
	// category and search are optional; empty strings disable the filter
	rows, err := r.db.Query(`SELECT `+productColumns+` FROM products
        WHERE active = TRUE
          AND ($1 = '' OR category = $1)
          AND ($2 = '' OR name ILIKE '%' || $2 || '%')
        ORDER BY name`, category, search)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectProducts(rows)
}

func (r *PostgresRepository) ListByIDs(ids []string) ([]Product, error) {
	if len(ids) == 0 {
		return []Product{}, nil
	}

	rows, err := r.db.Query(`SELECT `+productColumns+` FROM products
        WHERE id = ANY($1::text[]) AND active = TRUE
        ORDER BY array_position($1::text[], id)`, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectProducts(rows)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (Product, error) {
	var p Product
	var createdAt sql.NullString
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Category, &p.Stock,
		&p.ImageURL, &p.RequiresPrescription, &p.Active, &createdAt)
	if err != nil {
		return Product{}, err
	}
	if createdAt.Valid {
		p.CreatedAt = createdAt.String
	}
	return p, nil
}

func collectProducts(rows *sql.Rows) ([]Product, error) {
	out := make([]Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
