package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/api-sage/swift-payments-portal/src/internal/domain"
	"github.com/shopspring/decimal"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	ctx := context.Background()

	db, err := Open(ctx, MemoryPath)
	if err != nil {
		t.Fatalf("open in-memory db: %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Fatalf("close db: %v", err)
		}
	})

	if err := RunMigrations(ctx, db); err != nil {
		t.Fatalf("run migrations: %v", err)
	}
	return db
}

func seedCustomer(t *testing.T, repo *CustomerRepository, id, idNumber, accountNumber string) domain.Customer {
	t.Helper()
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	created, err := repo.Create(context.Background(), domain.Customer{
		ID:            id,
		FullName:      "Jane Doe",
		IDNumber:      idNumber,
		AccountNumber: accountNumber,
		PasswordHash:  "hash",
		CreatedAt:     now,
		UpdatedAt:     now,
	})
	if err != nil {
		t.Fatalf("create customer: %v", err)
	}
	return created
}

func seedPayment(t *testing.T, repo *PaymentRepository, id, customerID string, createdAt time.Time) domain.Payment {
	t.Helper()
	created, err := repo.Create(context.Background(), domain.Payment{
		ID:           id,
		CustomerID:   customerID,
		Amount:       decimal.RequireFromString("100.50"),
		Currency:     "USD",
		Provider:     domain.PaymentProviderSWIFT,
		PayeeAccount: "9876543210",
		SwiftCode:    "ABCDEFGH",
		Status:       domain.PaymentStatusPending,
		CreatedAt:    createdAt,
		UpdatedAt:    createdAt,
	})
	if err != nil {
		t.Fatalf("create payment: %v", err)
	}
	return created
}

func TestRunMigrationsIsRepeatable(t *testing.T) {
	db := openTestDB(t)

	if err := RunMigrations(context.Background(), db); err != nil {
		t.Fatalf("second migration run: %v", err)
	}

	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM schema_migrations`).Scan(&count); err != nil {
		t.Fatalf("count migrations: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 recorded migration, got %d", count)
	}
}

func TestCustomerRepositoryRoundTripAndUniqueness(t *testing.T) {
	db := openTestDB(t)
	repo := NewCustomerRepository(db)
	ctx := context.Background()

	created := seedCustomer(t, repo, "c-1", "1234567890123", "1234567890")
	if created.PasswordHash != "hash" || created.CreatedAt.IsZero() {
		t.Fatalf("unexpected created customer %+v", created)
	}

	found, err := repo.GetByFullNameAndAccountNumber(ctx, "Jane Doe", "1234567890")
	if err != nil {
		t.Fatalf("get by login: %v", err)
	}
	if found.ID != "c-1" {
		t.Fatalf("expected c-1, got %s", found.ID)
	}

	if _, err := repo.GetByFullNameAndAccountNumber(ctx, "John Doe", "1234567890"); !errors.Is(err, domain.ErrRecordNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	exists, err := repo.ExistsByIDNumberOrAccountNumber(ctx, "9999999999999", "1234567890")
	if err != nil || !exists {
		t.Fatalf("expected account number match, got exists=%v err=%v", exists, err)
	}
	exists, err = repo.ExistsByIDNumberOrAccountNumber(ctx, "9999999999999", "0000000000")
	if err != nil || exists {
		t.Fatalf("expected no match, got exists=%v err=%v", exists, err)
	}

	_, err = repo.Create(ctx, domain.Customer{
		ID:            "c-2",
		FullName:      "Other",
		IDNumber:      "1234567890123",
		AccountNumber: "5555555555",
		PasswordHash:  "hash",
	})
	if !errors.Is(err, domain.ErrDuplicateRecord) {
		t.Fatalf("expected duplicate record error, got %v", err)
	}
}

func TestEmployeeRepositoryDuplicateUsername(t *testing.T) {
	db := openTestDB(t)
	repo := NewEmployeeRepository(db)
	ctx := context.Background()

	if _, err := repo.Create(ctx, domain.Employee{ID: "e-1", Username: "clerk", PasswordHash: "hash"}); err != nil {
		t.Fatalf("create employee: %v", err)
	}
	if _, err := repo.Create(ctx, domain.Employee{ID: "e-2", Username: "clerk", PasswordHash: "hash"}); !errors.Is(err, domain.ErrDuplicateRecord) {
		t.Fatalf("expected duplicate record error, got %v", err)
	}

	found, err := repo.GetByUsername(ctx, "clerk")
	if err != nil || found.ID != "e-1" {
		t.Fatalf("expected e-1, got %+v err=%v", found, err)
	}
	if _, err := repo.GetByUsername(ctx, "nobody"); !errors.Is(err, domain.ErrRecordNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestUniqueViolationIgnoresOtherConstraints(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	_, err := db.ExecContext(ctx, `INSERT INTO payments (id, customer_id, amount, currency, provider, payee_account, swift_code, status, created_at, updated_at)
VALUES ('p-1', 'missing-customer', '1', 'USD', 'SWIFT', '9876543210', 'ABCDEFGH', 'Pending', 0, 0)`)
	if err == nil {
		t.Fatal("expected foreign key violation")
	}
	if isUniqueViolation(err) {
		t.Fatalf("foreign key violation reported as duplicate: %v", err)
	}

	_, err = db.ExecContext(ctx, `INSERT INTO employees (id, username, password_hash, created_at, updated_at) VALUES ('e-1', NULL, 'hash', 0, 0)`)
	if err == nil {
		t.Fatal("expected not null violation")
	}
	if isUniqueViolation(err) {
		t.Fatalf("not null violation reported as duplicate: %v", err)
	}

	customers := NewCustomerRepository(db)
	seedCustomer(t, customers, "c-1", "1234567890123", "1234567890")
	_, err = db.ExecContext(ctx, `INSERT INTO customers (id, full_name, id_number, account_number, password_hash, created_at, updated_at)
VALUES ('c-1', 'Jane Doe', '9999999999999', '9999999999', 'hash', 0, 0)`)
	if !isUniqueViolation(err) {
		t.Fatalf("expected primary key conflict to be a unique violation, got %v", err)
	}
}

func TestPaymentRepositoryListsNewestFirst(t *testing.T) {
	db := openTestDB(t)
	customers := NewCustomerRepository(db)
	payments := NewPaymentRepository(db)
	ctx := context.Background()

	seedCustomer(t, customers, "c-1", "1234567890123", "1234567890")
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	seedPayment(t, payments, "p-old", "c-1", base)
	seedPayment(t, payments, "p-new", "c-1", base.Add(time.Minute))

	list, err := payments.ListByCustomerID(ctx, "c-1")
	if err != nil {
		t.Fatalf("list payments: %v", err)
	}
	if len(list) != 2 || list[0].ID != "p-new" || list[1].ID != "p-old" {
		t.Fatalf("expected newest first, got %+v", list)
	}
	if !list[0].Amount.Equal(decimal.RequireFromString("100.5")) {
		t.Fatalf("unexpected amount %s", list[0].Amount)
	}
	if list[0].Status != domain.PaymentStatusPending {
		t.Fatalf("expected pending status, got %s", list[0].Status)
	}

	empty, err := payments.ListByCustomerID(ctx, "c-unknown")
	if err != nil || len(empty) != 0 {
		t.Fatalf("expected empty list, got %v err=%v", empty, err)
	}
}

func TestPaymentRepositoryUpdateStatusIsIdempotent(t *testing.T) {
	db := openTestDB(t)
	customers := NewCustomerRepository(db)
	payments := NewPaymentRepository(db)
	ctx := context.Background()

	seedCustomer(t, customers, "c-1", "1234567890123", "1234567890")
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	seedPayment(t, payments, "p-1", "c-1", base)
	seedPayment(t, payments, "p-2", "c-1", base.Add(time.Second))
	seedPayment(t, payments, "p-3", "c-1", base.Add(2*time.Second))

	modified, err := payments.UpdateStatusForIDs(ctx, []string{"p-1", "p-2", "missing"}, domain.PaymentStatusSubmitted)
	if err != nil {
		t.Fatalf("update status: %v", err)
	}
	if modified != 2 {
		t.Fatalf("expected 2 modified, got %d", modified)
	}

	modified, err = payments.UpdateStatusForIDs(ctx, []string{"p-1", "p-2"}, domain.PaymentStatusSubmitted)
	if err != nil {
		t.Fatalf("repeat update status: %v", err)
	}
	if modified != 0 {
		t.Fatalf("expected 0 modified on repeat, got %d", modified)
	}

	pending, err := payments.ListByStatusWithOwner(ctx, domain.PaymentStatusPending)
	if err != nil {
		t.Fatalf("list pending: %v", err)
	}
	if len(pending) != 1 || pending[0].ID != "p-3" {
		t.Fatalf("expected only p-3 pending, got %+v", pending)
	}
	if pending[0].Owner.FullName != "Jane Doe" || pending[0].Owner.IDNumber != "1234567890123" {
		t.Fatalf("unexpected owner %+v", pending[0].Owner)
	}
}
