package order

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create writes the order row and every item row in one transaction so a
// failure never leaves a partially-written order behind.
func (r *PostgresRepository) Create(ord Order) (Order, error) {
	if ord.ID == "" {
		ord.ID = uuid.NewString()
	}
	if ord.CreatedAt == "" {
		ord.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	}

	tx, err := r.db.Begin()
	if err != nil {
		return Order{}, err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`INSERT INTO orders (id, user_id, total_amount, status, payment_session_id, created_at)
        VALUES ($1, $2, $3, $4, $5, $6)`,
		ord.ID, ord.UserID, ord.TotalAmount, ord.Status, ord.PaymentSessionID, ord.CreatedAt); err != nil {
		return Order{}, err
	}

	for _, it := range ord.Items {
		if _, err := tx.Exec(`INSERT INTO order_items (id, order_id, product_id, quantity, prescription_file)
            VALUES ($1, $2, $3, $4, $5)`,
			uuid.NewString(), ord.ID, it.ProductID, it.Quantity, it.PrescriptionFile); err != nil {
			return Order{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return Order{}, err
	}
	return ord, nil
}

func (r *PostgresRepository) GetByID(id, userID string) (Order, error) {
	var ord Order
	err := r.db.QueryRow(`SELECT id, user_id, total_amount, status, payment_session_id, created_at
        FROM orders WHERE id = $1 AND user_id = $2`, id, userID).
		Scan(&ord.ID, &ord.UserID, &ord.TotalAmount, &ord.Status, &ord.PaymentSessionID, &ord.CreatedAt)
	if err == sql.ErrNoRows {
		return Order{}, ErrNotFound
	}
	if err != nil {
		return Order{}, err
	}

	items, err := r.itemsFor(ord.ID)
	if err != nil {
		return Order{}, err
	}
	ord.Items = items
	return ord, nil
}

func (r *PostgresRepository) ListByUser(userID string) ([]Order, error) {
	rows, err := r.db.Query(`SELECT id, user_id, total_amount, status, payment_session_id, created_at
        FROM orders WHERE user_id = $1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Order, 0)
	for rows.Next() {
		var ord Order
		if err := rows.Scan(&ord.ID, &ord.UserID, &ord.TotalAmount, &ord.Status, &ord.PaymentSessionID, &ord.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, ord)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range out {
		items, err := r.itemsFor(out[i].ID)
		if err != nil {
			return nil, err
		}
		out[i].Items = items
	}
	return out, nil
}

func (r *PostgresRepository) UpdateStatus(id string, status Status, sessionRef string) error {
	var res sql.Result
	var err error
	if sessionRef != "" {
		res, err = r.db.Exec(`UPDATE orders SET status = $1, payment_session_id = $2 WHERE id = $3`,
			status, sessionRef, id)
	} else {
		res, err = r.db.Exec(`UPDATE orders SET status = $1 WHERE id = $2`, status, id)
	}
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) itemsFor(orderID string) ([]Item, error) {
	rows, err := r.db.Query(`SELECT product_id, quantity, prescription_file
        FROM order_items WHERE order_id = $1 ORDER BY id`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Item, 0)
	for rows.Next() {
		var it Item
		if err := rows.Scan(&it.ProductID, &it.Quantity, &it.PrescriptionFile); err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, rows.Err()
}
