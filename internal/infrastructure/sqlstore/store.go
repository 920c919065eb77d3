package sqlstore

import (
	"database/sql"
)

// Store agrupa los repositorios sobre el pool (lecturas y escrituras fuera de transacción).
type Store struct {
	DB      *sql.DB
	Dialect Dialect

	Parts        *PartRepo
	Movements    *StockMovementRepo
	Vehicles     *VehicleRepo
	History      *OwnershipHistoryRepo
	Users        *UserRepo
	Jobs         *JobRepo
	JobParts     *JobPartRepo
	LaborCharges *LaborChargeRepo
	JobTasks     *JobTaskRepo
	JobImages    *JobImageRepo
	Analytics    *AnalyticsRepo
	TxRunner     *TxRunner
	Gateway      *GatewayExecutor
}

// New construye el Store para un handle abierto por sqlite.Open o postgres.OpenDB.
func New(db *sql.DB, d Dialect) *Store {
	return &Store{
		DB:           db,
		Dialect:      d,
		Parts:        NewPartRepository(db, d),
		Movements:    NewStockMovementRepository(db, d),
		Vehicles:     NewVehicleRepository(db, d),
		History:      NewOwnershipHistoryRepository(db, d),
		Users:        NewUserRepository(db, d),
		Jobs:         NewJobRepository(db, d),
		JobParts:     NewJobPartRepository(db, d),
		LaborCharges: NewLaborChargeRepository(db, d),
		JobTasks:     NewJobTaskRepository(db, d),
		JobImages:    NewJobImageRepository(db, d),
		Analytics:    NewAnalyticsRepository(db, d),
		TxRunner:     NewTxRunner(db, d),
		Gateway:      NewGatewayExecutor(db, d),
	}
}

// Close cierra el handle de base de datos.
func (s *Store) Close() error {
	return s.DB.Close()
}
