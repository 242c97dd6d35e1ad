package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite" // register sqlite driver

	"debt-planner/domain"
)

// SQLiteDebtRepository stores debts in a local SQLite file. Amounts are kept
// as decimal text so no precision is lost.
type SQLiteDebtRepository struct {
	db *sql.DB
}

// OpenSQLite opens or creates the database at the given path.
func OpenSQLite(dbPath string) (*SQLiteDebtRepository, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("creating database dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(sqliteSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return &SQLiteDebtRepository{db: db}, nil
}

func (r *SQLiteDebtRepository) Close() error {
	return r.db.Close()
}

func (r *SQLiteDebtRepository) Create(ctx context.Context, debt domain.Debt) error {
	_, err := r.db.ExecContext(ctx, `INSERT INTO debts
		(id, name, creditor, principal, remaining_balance, annual_rate, minimum_payment, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		debt.ID, debt.Name, debt.Creditor,
		debt.Principal.String(), debt.RemainingBalance.String(),
		debt.AnnualInterestRatePercent.String(), debt.MinimumMonthlyPayment.String(),
		formatTime(debt.CreatedAt), formatTime(debt.UpdatedAt),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return ErrDebtExists
		}
		return fmt.Errorf("inserting debt: %w", err)
	}
	return nil
}

func (r *SQLiteDebtRepository) Get(ctx context.Context, id string) (domain.Debt, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, name, creditor, principal, remaining_balance,
		annual_rate, minimum_payment, created_at, updated_at FROM debts WHERE id = ?`, id)
	debt, err := scanSQLiteDebt(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Debt{}, ErrDebtNotFound
	}
	return debt, err
}

func (r *SQLiteDebtRepository) List(ctx context.Context) ([]domain.Debt, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, creditor, principal, remaining_balance,
		annual_rate, minimum_payment, created_at, updated_at FROM debts ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("listing debts: %w", err)
	}
	defer func() { _ = rows.Close() }()

	debts := []domain.Debt{}
	for rows.Next() {
		debt, err := scanSQLiteDebt(rows)
		if err != nil {
			return nil, err
		}
		debts = append(debts, debt)
	}
	return debts, rows.Err()
}

func (r *SQLiteDebtRepository) Update(ctx context.Context, debt domain.Debt) error {
	res, err := r.db.ExecContext(ctx, `UPDATE debts SET name = ?, creditor = ?, principal = ?,
		remaining_balance = ?, annual_rate = ?, minimum_payment = ?, updated_at = ?
		WHERE id = ?`,
		debt.Name, debt.Creditor, debt.Principal.String(), debt.RemainingBalance.String(),
		debt.AnnualInterestRatePercent.String(), debt.MinimumMonthlyPayment.String(),
		formatTime(debt.UpdatedAt), debt.ID,
	)
	if err != nil {
		return fmt.Errorf("updating debt: %w", err)
	}
	return requireAffected(res)
}

func (r *SQLiteDebtRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM debts WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting debt: %w", err)
	}
	return requireAffected(res)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSQLiteDebt(row rowScanner) (domain.Debt, error) {
	var debt domain.Debt
	var createdAt, updatedAt string
	err := row.Scan(&debt.ID, &debt.Name, &debt.Creditor,
		&debt.Principal, &debt.RemainingBalance,
		&debt.AnnualInterestRatePercent, &debt.MinimumMonthlyPayment,
		&createdAt, &updatedAt)
	if err != nil {
		return domain.Debt{}, err
	}
	debt.CreatedAt = parseTime(createdAt)
	debt.UpdatedAt = parseTime(updatedAt)
	return debt, nil
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrDebtNotFound
	}
	return nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
