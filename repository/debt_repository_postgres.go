package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"debt-planner/domain"
)

const pgUniqueViolation = "23505"

// PostgresDebtRepository stores debts in PostgreSQL through a pgx pool.
type PostgresDebtRepository struct {
	pool *pgxpool.Pool
}

// OpenPostgres connects, pings and applies the schema.
func OpenPostgres(ctx context.Context, dsn string) (*PostgresDebtRepository, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("create pgx pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	if _, err := pool.Exec(ctx, postgresSchema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return &PostgresDebtRepository{pool: pool}, nil
}

func (r *PostgresDebtRepository) Close() error {
	r.pool.Close()
	return nil
}

func (r *PostgresDebtRepository) Create(ctx context.Context, debt domain.Debt) error {
	_, err := r.pool.Exec(ctx, `INSERT INTO debts
		(id, name, creditor, principal, remaining_balance, annual_rate, minimum_payment, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		debt.ID, debt.Name, debt.Creditor,
		debt.Principal.String(), debt.RemainingBalance.String(),
		debt.AnnualInterestRatePercent.String(), debt.MinimumMonthlyPayment.String(),
		debt.CreatedAt, debt.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return ErrDebtExists
		}
		return fmt.Errorf("insert debt: %w", err)
	}
	return nil
}

func (r *PostgresDebtRepository) Get(ctx context.Context, id string) (domain.Debt, error) {
	row := r.pool.QueryRow(ctx, `SELECT id, name, creditor, principal::text, remaining_balance::text,
		annual_rate::text, minimum_payment::text, created_at, updated_at FROM debts WHERE id = $1`, id)
	debt, err := scanPostgresDebt(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Debt{}, ErrDebtNotFound
	}
	return debt, err
}

func (r *PostgresDebtRepository) List(ctx context.Context) ([]domain.Debt, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name, creditor, principal::text, remaining_balance::text,
		annual_rate::text, minimum_payment::text, created_at, updated_at FROM debts ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("list debts: %w", err)
	}
	defer rows.Close()

	debts := []domain.Debt{}
	for rows.Next() {
		debt, err := scanPostgresDebt(rows)
		if err != nil {
			return nil, err
		}
		debts = append(debts, debt)
	}
	return debts, rows.Err()
}

func (r *PostgresDebtRepository) Update(ctx context.Context, debt domain.Debt) error {
	tag, err := r.pool.Exec(ctx, `UPDATE debts SET name = $1, creditor = $2, principal = $3,
		remaining_balance = $4, annual_rate = $5, minimum_payment = $6, updated_at = $7
		WHERE id = $8`,
		debt.Name, debt.Creditor, debt.Principal.String(), debt.RemainingBalance.String(),
		debt.AnnualInterestRatePercent.String(), debt.MinimumMonthlyPayment.String(),
		debt.UpdatedAt, debt.ID,
	)
	if err != nil {
		return fmt.Errorf("update debt: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrDebtNotFound
	}
	return nil
}

func (r *PostgresDebtRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM debts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete debt: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrDebtNotFound
	}
	return nil
}

func scanPostgresDebt(row pgx.Row) (domain.Debt, error) {
	var debt domain.Debt
	var principal, balance, rate, minimum string
	err := row.Scan(&debt.ID, &debt.Name, &debt.Creditor,
		&principal, &balance, &rate, &minimum,
		&debt.CreatedAt, &debt.UpdatedAt)
	if err != nil {
		return domain.Debt{}, err
	}
	amounts := []struct {
		src string
		dst *decimal.Decimal
	}{
		{principal, &debt.Principal},
		{balance, &debt.RemainingBalance},
		{rate, &debt.AnnualInterestRatePercent},
		{minimum, &debt.MinimumMonthlyPayment},
	}
	for _, a := range amounts {
		v, err := decimal.NewFromString(a.src)
		if err != nil {
			return domain.Debt{}, fmt.Errorf("parse amount %q: %w", a.src, err)
		}
		*a.dst = v
	}
	return debt, nil
}
