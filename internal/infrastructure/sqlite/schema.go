package sqlite

// Schema es el esquema autoritativo del taller para SQLite. Los montos son DECIMAL(10,2)
// (afinidad NUMERIC) y se leen con shopspring/decimal.
const Schema = `
CREATE TABLE IF NOT EXISTS vehicles (
	vehicle_id     INTEGER PRIMARY KEY AUTOINCREMENT,
	license_plate  TEXT NOT NULL UNIQUE,
	vin            TEXT,
	make_model     TEXT,
	current_owner  TEXT,
	contact_number TEXT,
	photo_path     TEXT,
	is_archived    BOOLEAN NOT NULL DEFAULT 0,
	created_at     DATETIME
);

CREATE TABLE IF NOT EXISTS users (
	user_id     INTEGER PRIMARY KEY AUTOINCREMENT,
	full_name   TEXT NOT NULL,
	role        TEXT NOT NULL CHECK (role IN ('admin', 'technician')),
	pin_hash    TEXT NOT NULL,
	hourly_rate DECIMAL(10,2) NOT NULL DEFAULT 0,
	created_at  DATETIME
);

CREATE TABLE IF NOT EXISTS inventory (
	part_id        INTEGER PRIMARY KEY AUTOINCREMENT,
	part_name      TEXT NOT NULL,
	part_number    TEXT NOT NULL UNIQUE,
	total_quantity INTEGER NOT NULL DEFAULT 0 CHECK (total_quantity >= 0),
	avg_cost       DECIMAL(10,2) NOT NULL DEFAULT 0,
	retail_price   DECIMAL(10,2) NOT NULL DEFAULT 0,
	min_threshold  INTEGER NOT NULL DEFAULT 5,
	category       TEXT DEFAULT 'General',
	condition      TEXT DEFAULT 'new',
	photo_path     TEXT
);

CREATE TABLE IF NOT EXISTS jobs (
	job_id          INTEGER PRIMARY KEY AUTOINCREMENT,
	vehicle_id      INTEGER NOT NULL,
	technician_id   INTEGER,
	status          TEXT NOT NULL DEFAULT 'pending',
	mileage_in      INTEGER,
	mileage_out     INTEGER,
	labor_hours     DECIMAL(10,2) DEFAULT 0,
	labor_cost      DECIMAL(10,2) DEFAULT 0,
	taxi_cost       DECIMAL(10,2) DEFAULT 0,
	total_price     DECIMAL(10,2) DEFAULT 0,
	owner_name      TEXT,
	owner_phone     TEXT,
	invoice_number  TEXT,
	completion_date DATETIME,
	created_at      DATETIME NOT NULL,
	FOREIGN KEY (vehicle_id) REFERENCES vehicles(vehicle_id) ON DELETE CASCADE,
	FOREIGN KEY (technician_id) REFERENCES users(user_id) ON DELETE SET NULL
);

CREATE TABLE IF NOT EXISTS job_tasks (
	task_id      INTEGER PRIMARY KEY AUTOINCREMENT,
	job_id       INTEGER NOT NULL,
	description  TEXT,
	is_completed BOOLEAN NOT NULL DEFAULT 0,
	FOREIGN KEY (job_id) REFERENCES jobs(job_id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS job_parts (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	job_id        INTEGER NOT NULL,
	part_id       INTEGER NOT NULL,
	qty           INTEGER NOT NULL CHECK (qty > 0),
	price_at_sale DECIMAL(10,2) NOT NULL,
	cost_at_sale  DECIMAL(10,2) NOT NULL,
	created_at    DATETIME,
	FOREIGN KEY (job_id) REFERENCES jobs(job_id) ON DELETE CASCADE,
	FOREIGN KEY (part_id) REFERENCES inventory(part_id) ON DELETE RESTRICT
);

CREATE TABLE IF NOT EXISTS ownership_history (
	history_id          INTEGER PRIMARY KEY AUTOINCREMENT,
	vehicle_id          INTEGER NOT NULL,
	old_owner           TEXT,
	new_owner           TEXT,
	mileage_at_transfer INTEGER,
	transfer_date       DATETIME NOT NULL,
	FOREIGN KEY (vehicle_id) REFERENCES vehicles(vehicle_id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS job_images (
	image_id   INTEGER PRIMARY KEY AUTOINCREMENT,
	job_id     INTEGER NOT NULL,
	image_path TEXT NOT NULL,
	caption    TEXT,
	created_at DATETIME,
	FOREIGN KEY (job_id) REFERENCES jobs(job_id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS labor_charges (
	labor_id         INTEGER PRIMARY KEY AUTOINCREMENT,
	job_id           INTEGER NOT NULL,
	technician_id    INTEGER NOT NULL,
	hours_worked     DECIMAL(5,2) NOT NULL,
	hourly_rate      DECIMAL(10,2) NOT NULL,
	total_labor_cost DECIMAL(10,2) NOT NULL,
	recorded_at      DATETIME NOT NULL,
	FOREIGN KEY (job_id) REFERENCES jobs(job_id) ON DELETE CASCADE,
	FOREIGN KEY (technician_id) REFERENCES users(user_id) ON DELETE RESTRICT
);

CREATE TABLE IF NOT EXISTS stock_movements (
	movement_id    INTEGER PRIMARY KEY AUTOINCREMENT,
	transaction_id TEXT NOT NULL,
	part_id        INTEGER NOT NULL,
	movement_type  TEXT NOT NULL CHECK (movement_type IN ('IN', 'OUT')),
	quantity       INTEGER NOT NULL,
	unit_cost      DECIMAL(10,2) NOT NULL,
	avg_cost_after DECIMAL(10,2) NOT NULL,
	quantity_after INTEGER NOT NULL,
	reference      TEXT,
	created_at     DATETIME NOT NULL,
	FOREIGN KEY (part_id) REFERENCES inventory(part_id) ON DELETE CASCADE
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
