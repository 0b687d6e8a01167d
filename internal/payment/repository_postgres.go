package payment

import (
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/farmaciavital/pharmacy-backend/internal/order"
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// InsertCompleted writes the transaction row and the order status update in
// a single database transaction so an approved payment is never half
// recorded. The order update is scoped to the paying user; an order id that
// does not match simply leaves the order untouched.
func (r *PostgresRepository) InsertCompleted(txn Transaction) error {
	if txn.ID == "" {
		txn.ID = uuid.NewString()
	}
	if txn.CreatedAt == "" {
		txn.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	}

	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`INSERT INTO payment_transactions
        (id, transaction_id, email, user_id, amount, currency, card_last_four, card_type, status, order_id, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		txn.ID, txn.Code, txn.Email, txn.UserID, txn.Amount, txn.Currency,
		txn.CardLastFour, txn.CardBrand, txn.Status, txn.OrderID, txn.CreatedAt); err != nil {
		return err
	}

	if txn.OrderID != nil {
		if _, err := tx.Exec(`UPDATE orders SET status = $1, payment_session_id = $2
            WHERE id = $3 AND user_id = $4`,
			order.StatusPaid, txn.Code, *txn.OrderID, txn.UserID); err != nil {
			return err
		}
	}

	return tx.Commit()
}
