package payment

import (
	"sync"

	"github.com/farmaciavital/pharmacy-backend/internal/order"
)

// Repository persists payment transactions.
type Repository interface {
	// InsertCompleted records an approved transaction and, when the
	// transaction references an order owned by the same user, transitions
	// that order to paid with the transaction code as its payment session
	// reference. Both writes happen as one atomic unit; a transaction
	// referencing an unknown order is still recorded.
	InsertCompleted(txn Transaction) error
}

// InMemoryRepository is used for tests and local scenarios. It leans on the
// order service to apply the status transition the Postgres implementation
// performs inside its own transaction.
type InMemoryRepository struct {
	mu           sync.RWMutex
	transactions []Transaction
	orders       order.ServiceInterface
}

func NewInMemoryRepository(orders order.ServiceInterface) *InMemoryRepository {
	return &InMemoryRepository{transactions: make([]Transaction, 0), orders: orders}
}

func (r *InMemoryRepository) InsertCompleted(txn Transaction) error {
	r.mu.Lock()
	r.transactions = append(r.transactions, txn)
	r.mu.Unlock()

	if txn.OrderID != nil && r.orders != nil {
		// same ownership scoping as the SQL UPDATE: an order id that does
		// not belong to the paying user leaves the order untouched
		if _, err := r.orders.GetByID(*txn.OrderID, txn.UserID); err != nil {
			if err == order.ErrNotFound {
				return nil
			}
			return err
		}
		if err := r.orders.MarkPaid(*txn.OrderID, txn.Code); err != nil && err != order.ErrNotFound {
			return err
		}
	}
	return nil
}

// Transactions returns a copy of everything recorded so far.
func (r *InMemoryRepository) Transactions() []Transaction {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]Transaction(nil), r.transactions...)
}
