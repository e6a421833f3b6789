package logbook

import (
	"database/sql"
	"fmt"

	"flyglog/flyg"

	_ "github.com/mattn/go-sqlite3"
)

// Repository defines the storage operations for imported flight recordings
type Repository interface {
	InsertRecording(sourceFile string, rec *flyg.FlightRecording) (int64, error)
	HasRecording(sourceFile string) (bool, error)
	FlightCount() (int, error)
	Close() error
}

// DB implements the Repository interface using SQLite
type DB struct {
	db *sql.DB
}

// New creates and initializes a new logbook database at the given path
func New(dbPath string) (*DB, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := tuneSQLite(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to tune database: %w", err)
	}

	logbook := &DB{db: db}

	if err := logbook.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return logbook, nil
}

// tuneSQLite applies pragmas suited to a small single-writer logbook
func tuneSQLite(db *sql.DB) error {
	pragmas := []string{
		// WAL allows readers while an import transaction is open
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA foreign_keys=ON",
		"PRAGMA busy_timeout=5000",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to apply %q: %w", pragma, err)
		}
	}

	return nil
}

// Close closes the database connection
func (d *DB) Close() error {
	return d.db.Close()
}

// initSchema creates the logbook schema if it doesn't exist
func (d *DB) initSchema() error {
	flightsSchema := `CREATE TABLE IF NOT EXISTS flights (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		source_file TEXT NOT NULL UNIQUE,
		plane_name TEXT NOT NULL,
		fuel_capacity INTEGER NOT NULL,
		number_of_engines INTEGER NOT NULL,
		fuel_weight REAL NOT NULL,
		unusable_fuel_quantity REAL NOT NULL,
		landing_speed REAL NOT NULL,
		block_off_time TEXT NOT NULL,
		takeoff_time TEXT NOT NULL,
		landing_time TEXT NOT NULL,
		block_on_time TEXT NOT NULL,
		imported_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);`

	fuelRecordsSchema := `CREATE TABLE IF NOT EXISTS fuel_records (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		flight_id INTEGER NOT NULL REFERENCES flights(id) ON DELETE CASCADE,
		seq INTEGER NOT NULL,
		fuel_quantity REAL NOT NULL,
		UNIQUE(flight_id, seq)
	);`

	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_flights_plane_name ON flights(plane_name)`,
		`CREATE INDEX IF NOT EXISTS idx_fuel_records_flight_id ON fuel_records(flight_id)`,
	}

	if _, err := d.db.Exec(flightsSchema); err != nil {
		return fmt.Errorf("failed to create flights table: %w", err)
	}

	if _, err := d.db.Exec(fuelRecordsSchema); err != nil {
		return fmt.Errorf("failed to create fuel_records table: %w", err)
	}

	for _, idx := range indexes {
		if _, err := d.db.Exec(idx); err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}

	return nil
}

// InsertRecording stores a loaded recording and its fuel samples in a single
// transaction. sourceFile must be unique per recording; inserting the same
// source file twice is an error.
func (d *DB) InsertRecording(sourceFile string, rec *flyg.FlightRecording) (int64, error) {
	tx, err := d.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(`INSERT INTO flights (
		source_file, plane_name, fuel_capacity, number_of_engines,
		fuel_weight, unusable_fuel_quantity, landing_speed,
		block_off_time, takeoff_time, landing_time, block_on_time
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		sourceFile,
		rec.PlaneInformation.Name,
		rec.PlaneInformation.FuelCapacity,
		rec.PlaneInformation.NumberOfEngines,
		rec.PlaneInformation.FuelWeight,
		rec.PlaneInformation.UnusableFuelQuantity,
		rec.LandingSpeed,
		rec.Times.BlockOffTime,
		rec.Times.TakeoffTime,
		rec.Times.LandingTime,
		rec.Times.BlockOnTime,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert flight: %w", err)
	}

	flightID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get flight id: %w", err)
	}

	if len(rec.FuelRecords) > 0 {
		stmt, err := tx.Prepare(`INSERT INTO fuel_records (flight_id, seq, fuel_quantity) VALUES (?, ?, ?)`)
		if err != nil {
			return 0, fmt.Errorf("failed to prepare statement: %w", err)
		}
		defer stmt.Close()

		// seq preserves the sampling order of the recording
		for seq, fr := range rec.FuelRecords {
			if _, err := stmt.Exec(flightID, seq, fr.FuelQuantity); err != nil {
				return 0, fmt.Errorf("failed to insert fuel record: %w", err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return flightID, nil
}

// HasRecording reports whether a recording from the given source file has
// already been imported
func (d *DB) HasRecording(sourceFile string) (bool, error) {
	var exists bool
	err := d.db.QueryRow(
		`SELECT EXISTS(SELECT 1 FROM flights WHERE source_file = ?)`, sourceFile,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to query flights: %w", err)
	}
	return exists, nil
}

// FlightCount returns the number of imported flights
func (d *DB) FlightCount() (int, error) {
	var count int
	if err := d.db.QueryRow(`SELECT COUNT(*) FROM flights`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count flights: %w", err)
	}
	return count, nil
}
