package cart

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

func (r *PostgresRepository) GetOrCreate(userID string) (Cart, error) {
	var c Cart
	err := r.db.QueryRow(`SELECT id, user_id, updated_at FROM carts WHERE user_id = $1`, userID).
		Scan(&c.ID, &c.UserID, &c.UpdatedAt)
	if err == sql.ErrNoRows {
		c = Cart{ID: uuid.NewString(), UserID: userID, UpdatedAt: time.Now().UTC().Format(time.RFC3339)}
		if _, err := r.db.Exec(`INSERT INTO carts (id, user_id, updated_at) VALUES ($1, $2, $3)`,
			c.ID, c.UserID, c.UpdatedAt); err != nil {
			return Cart{}, err
		}
	} else if err != nil {
		return Cart{}, err
	}

	items, err := r.items(c.ID)
	if err != nil {
		return Cart{}, err
	}
	c.Items = items
	return c, nil
}

func (r *PostgresRepository) items(cartID string) ([]Item, error) {
	rows, err := r.db.Query(`SELECT product_id, quantity, prescription_file
        FROM cart_items WHERE cart_id = $1 ORDER BY id`, cartID)
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

func (r *PostgresRepository) UpsertItem(cartID string, item Item) error {
	res, err := r.db.Exec(`UPDATE cart_items SET quantity = quantity + $1
        WHERE cart_id = $2 AND product_id = $3`, item.Quantity, cartID, item.ProductID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		if _, err := r.db.Exec(`INSERT INTO cart_items (id, cart_id, product_id, quantity, prescription_file)
            VALUES ($1, $2, $3, $4, $5)`,
			uuid.NewString(), cartID, item.ProductID, item.Quantity, item.PrescriptionFile); err != nil {
			return err
		}
	}
	return r.touch(cartID)
}

func (r *PostgresRepository) SetItemQuantity(cartID, productID string, quantity int) error {
	var res sql.Result
	var err error
	if quantity == 0 {
		res, err = r.db.Exec(`DELETE FROM cart_items WHERE cart_id = $1 AND product_id = $2`, cartID, productID)
	} else {
		res, err = r.db.Exec(`UPDATE cart_items SET quantity = $1 WHERE cart_id = $2 AND product_id = $3`,
			quantity, cartID, productID)
	}
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrItemNotFound
	}
	return r.touch(cartID)
}

func (r *PostgresRepository) RemoveItem(cartID, productID string) error {
	if _, err := r.db.Exec(`DELETE FROM cart_items WHERE cart_id = $1 AND product_id = $2`, cartID, productID); err != nil {
		return err
	}
	return r.touch(cartID)
}

func (r *PostgresRepository) Clear(cartID string) error {
	if _, err := r.db.Exec(`DELETE FROM cart_items WHERE cart_id = $1`, cartID); err != nil {
		return err
	}
	return r.touch(cartID)
}

func (r *PostgresRepository) touch(cartID string) error {
	_, err := r.db.Exec(`UPDATE carts SET updated_at = $1 WHERE id = $2`,
		time.Now().UTC().Format(time.RFC3339), cartID)
	return err
}
