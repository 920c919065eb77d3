package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// Schema es el esquema del taller para PostgreSQL. Mismas tablas y columnas que el de SQLite.
const Schema = `
CREATE TABLE IF NOT EXISTS vehicles (
	vehicle_id     BIGINT GENERATED BY DEFAULT AS IDENTITY PRIMARY KEY,
	license_plate  TEXT NOT NULL UNIQUE,
	vin            TEXT,
	make_model     TEXT,
	current_owner  TEXT,
	contact_number TEXT,
	photo_path     TEXT,
	is_archived    BOOLEAN NOT NULL DEFAULT FALSE,
	created_at     TIMESTAMPTZ
);

CREATE TABLE IF NOT EXISTS users (
	user_id     BIGINT GENERATED BY DEFAULT AS IDENTITY PRIMARY KEY,
	full_name   TEXT NOT NULL,
	role        TEXT NOT NULL CHECK (role IN ('admin', 'technician')),
	pin_hash    TEXT NOT NULL,
	hourly_rate NUMERIC(10,2) NOT NULL DEFAULT 0,
	created_at  TIMESTAMPTZ
);

CREATE TABLE IF NOT EXISTS inventory (
	part_id        BIGINT GENERATED BY DEFAULT AS IDENTITY PRIMARY KEY,
	part_name      TEXT NOT NULL,
	part_number    TEXT NOT NULL UNIQUE,
	total_quantity INTEGER NOT NULL DEFAULT 0 CHECK (total_quantity >= 0),
	avg_cost       NUMERIC(10,2) NOT NULL DEFAULT 0,
	retail_price   NUMERIC(10,2) NOT NULL DEFAULT 0,
	min_threshold  INTEGER NOT NULL DEFAULT 5,
	category       TEXT DEFAULT 'General',
	condition      TEXT DEFAULT 'new',
	photo_path     TEXT
);

CREATE TABLE IF NOT EXISTS jobs (
	job_id          BIGINT GENERATED BY DEFAULT AS IDENTITY PRIMARY KEY,
	vehicle_id      BIGINT NOT NULL REFERENCES vehicles(vehicle_id) ON DELETE CASCADE,
	technician_id   BIGINT REFERENCES users(user_id) ON DELETE SET NULL,
	status          TEXT NOT NULL DEFAULT 'pending',
	mileage_in      BIGINT,
	mileage_out     BIGINT,
	labor_hours     NUMERIC(10,2) DEFAULT 0,
	labor_cost      NUMERIC(10,2) DEFAULT 0,
	taxi_cost       NUMERIC(10,2) DEFAULT 0,
	total_price     NUMERIC(10,2) DEFAULT 0,
	owner_name      TEXT,
	owner_phone     TEXT,
	invoice_number  TEXT,
	completion_date TIMESTAMPTZ,
	created_at      TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS job_tasks (
	task_id      BIGINT GENERATED BY DEFAULT AS IDENTITY PRIMARY KEY,
	job_id       BIGINT NOT NULL REFERENCES jobs(job_id) ON DELETE CASCADE,
	description  TEXT,
	is_completed BOOLEAN NOT NULL DEFAULT FALSE
);

CREATE TABLE IF NOT EXISTS job_parts (
	id            BIGINT GENERATED BY DEFAULT AS IDENTITY PRIMARY KEY,
	job_id        BIGINT NOT NULL REFERENCES jobs(job_id) ON DELETE CASCADE,
	part_id       BIGINT NOT NULL REFERENCES inventory(part_id) ON DELETE RESTRICT,
	qty           INTEGER NOT NULL CHECK (qty > 0),
	price_at_sale NUMERIC(10,2) NOT NULL,
	cost_at_sale  NUMERIC(10,2) NOT NULL,
	created_at    TIMESTAMPTZ
);

CREATE TABLE IF NOT EXISTS ownership_history (
	history_id          BIGINT GENERATED BY DEFAULT AS IDENTITY PRIMARY KEY,
	vehicle_id          BIGINT NOT NULL REFERENCES vehicles(vehicle_id) ON DELETE CASCADE,
	old_owner           TEXT,
	new_owner           TEXT,
	mileage_at_transfer BIGINT,
	transfer_date       TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS job_images (
	image_id   BIGINT GENERATED BY DEFAULT AS IDENTITY PRIMARY KEY,
	job_id     BIGINT NOT NULL REFERENCES jobs(job_id) ON DELETE CASCADE,
	image_path TEXT NOT NULL,
	caption    TEXT,
	created_at TIMESTAMPTZ
);

CREATE TABLE IF NOT EXISTS labor_charges (
	labor_id         BIGINT GENERATED BY DEFAULT AS IDENTITY PRIMARY KEY,
	job_id           BIGINT NOT NULL REFERENCES jobs(job_id) ON DELETE CASCADE,
	technician_id    BIGINT NOT NULL REFERENCES users(user_id) ON DELETE RESTRICT,
	hours_worked     NUMERIC(5,2) NOT NULL,
	hourly_rate      NUMERIC(10,2) NOT NULL,
	total_labor_cost NUMERIC(10,2) NOT NULL,
	recorded_at      TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS stock_movements (
	movement_id    BIGINT GENERATED BY DEFAULT AS IDENTITY PRIMARY KEY,
	transaction_id TEXT NOT NULL,
	part_id        BIGINT NOT NULL REFERENCES inventory(part_id) ON DELETE CASCADE,
	movement_type  TEXT NOT NULL CHECK (movement_type IN ('IN', 'OUT')),
	quantity       INTEGER NOT NULL,
	unit_cost      NUMERIC(10,2) NOT NULL,
	avg_cost_after NUMERIC(10,2) NOT NULL,
	quantity_after INTEGER NOT NULL,
	reference      TEXT,
	created_at     TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_jobs_vehicle ON jobs(vehicle_id);
CREATE INDEX IF NOT EXISTS idx_jobs_technician ON jobs(technician_id);
CREATE INDEX IF NOT EXISTS idx_jobs_status ON jobs(status);
CREATE INDEX IF NOT EXISTS idx_job_tasks_job ON job_tasks(job_id);
CREATE INDEX IF NOT EXISTS idx_job_parts_job ON job_parts(job_id);
CREATE INDEX IF NOT EXISTS idx_job_parts_part ON job_parts(part_id);
CREATE INDEX IF NOT EXISTS idx_ownership_history_vehicle ON ownership_history(vehicle_id);
CREATE INDEX IF NOT EXISTS idx_job_images_job ON job_images(job_id);
CREATE INDEX IF NOT EXISTS idx_labor_charges_job ON labor_charges(job_id);
CREATE INDEX IF NOT EXISTS idx_labor_charges_technician ON labor_charges(technician_id);
CREATE INDEX IF NOT EXISTS idx_stock_movements_part ON stock_movements(part_id);
`

// Statements separa el esquema en sentencias individuales.
func Statements() []string {
	var out []string
	for _, stmt := range strings.Split(Schema, ";") {
		if s := strings.TrimSpace(stmt); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Migrate aplica el esquema sentencia por sentencia dentro de una transacción.
func Migrate(ctx context.Context, db *sql.DB) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin migrate: %w", err)
	}
	defer func() { _ = tx.Rollback() }()
	for _, stmt := range Statements() {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("aplicar esquema: %w", err)
		}
	}
	return tx.Commit()
}
