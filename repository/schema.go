package repository

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS debts (
    seq                INTEGER PRIMARY KEY AUTOINCREMENT,
    id                 TEXT NOT NULL UNIQUE,
    name               TEXT NOT NULL DEFAULT '',
    creditor           TEXT NOT NULL DEFAULT '',
    principal          TEXT NOT NULL,
    remaining_balance  TEXT NOT NULL,
    annual_rate        TEXT NOT NULL,
    minimum_payment    TEXT NOT NULL,
    created_at         TEXT NOT NULL,
    updated_at         TEXT NOT NULL
);
`

const postgresSchema = `
CREATE TABLE IF NOT EXISTS debts (
    seq                BIGSERIAL PRIMARY KEY,
    id                 TEXT NOT NULL UNIQUE,
    name               TEXT NOT NULL DEFAULT '',
    creditor           TEXT NOT NULL DEFAULT '',
    principal          NUMERIC(20, 8) NOT NULL CHECK (principal >= 0),
    remaining_balance  NUMERIC(20, 8) NOT NULL CHECK (remaining_balance >= 0),
    annual_rate        NUMERIC(10, 6) NOT NULL CHECK (annual_rate >= 0),
    minimum_payment    NUMERIC(20, 8) NOT NULL CHECK (minimum_payment >= 0),
    created_at         TIMESTAMPTZ NOT NULL,
    updated_at         TIMESTAMPTZ NOT NULL
);
`
