package product

import (
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func productRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "name", "description", "price", "category", "stock",
		"image_url", "requires_prescription", "active", "created_at"})
}

func TestGetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectQuery("FROM products WHERE id").
		WithArgs("p-1").
		WillReturnRows(productRows().
			AddRow("p-1", "Acetaminofén 500mg", "Caja x 24", 8500.0, "analgesicos", 20, nil, false, true, "2026-01-01T00:00:00Z"))

	p, err := repo.GetByID("p-1")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if p.Name != "Acetaminofén 500mg" || p.Price != 8500 || p.ImageURL != nil {
		t.Fatalf("unexpected product %+v", p)
	}
	if p.CreatedAt != "2026-01-01T00:00:00Z" {
		t.Fatalf("created_at not mapped: %+v", p)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestGetByID_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectQuery("FROM products WHERE id").
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	if _, err := repo.GetByID("missing"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestListByIDs_EmptySkipsQuery(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	out, err := repo.ListByIDs(nil)
	if err != nil {
		t.Fatalf("ListByIDs failed: %v", err)
	}
	if len(out) != 0 {
		t.Fatalf("expected empty result, got %+v", out)
	}

	// no queries may have been issued
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestListByIDs(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectQuery("id = ANY").
		WillReturnRows(productRows().
			AddRow("p-2", "Ibuprofeno 400mg", "", 12000.0, "analgesicos", 5, "img/p2.png", false, true, nil).
			AddRow("p-1", "Acetaminofén 500mg", "", 8500.0, "analgesicos", 20, nil, false, true, nil))

	out, err := repo.ListByIDs([]string{"p-2", "p-1"})
	if err != nil {
		t.Fatalf("ListByIDs failed: %v", err)
	}
	if len(out) != 2 || out[0].ID != "p-2" || out[1].ID != "p-1" {
		t.Fatalf("unexpected order or contents: %+v", out)
	}
	if out[0].ImageURL == nil || *out[0].ImageURL != "img/p2.png" {
		t.Fatalf("image url not mapped: %+v", out[0])
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
