// Package persistence provides SQLite-backed storage for the cross-tick
// state: entity records, the event log, and run metadata.
package persistence

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"colonymind/internal/engine"
	"colonymind/internal/relation"
	"colonymind/internal/task"
	"colonymind/internal/world"
)

// DB wraps a SQLite connection for colony state persistence.
type DB struct {
	conn *sqlx.DB
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS records (
		id TEXT PRIMARY KEY,
		category INTEGER NOT NULL,
		role TEXT NOT NULL DEFAULT '',
		task_kind INTEGER NOT NULL DEFAULT 0,
		target_id TEXT NOT NULL DEFAULT '',
		targeter_ids_json TEXT NOT NULL DEFAULT '[]'
	);

	CREATE TABLE IF NOT EXISTS events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		tick INTEGER NOT NULL,
		description TEXT NOT NULL,
		category TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS meta (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_events_tick ON events(tick);
	CREATE INDEX IF NOT EXISTS idx_records_role ON records(role);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// SaveRecords writes all entity records to the database (full replace).
func (db *DB) SaveRecords(recs []*relation.Record) error {
	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM records"); err != nil {
		return err
	}

	stmt, err := tx.Preparex(`INSERT INTO records
		(id, category, role, task_kind, target_id, targeter_ids_json)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, r := range recs {
		targetersJSON, _ := json.Marshal(r.Targeters)
		_, err := stmt.Exec(
			string(r.ID), r.Category, r.Role, r.TaskKind,
			string(r.TargetID), string(targetersJSON),
		)
		if err != nil {
			return fmt.Errorf("insert record %s: %w", r.ID, err)
		}
	}

	return tx.Commit()
}

// LoadRecords reads all entity records back.
func (db *DB) LoadRecords() ([]*relation.Record, error) {
	rows, err := db.conn.Queryx(
		"SELECT id, category, role, task_kind, target_id, targeter_ids_json FROM records ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("query records: %w", err)
	}
	defer rows.Close()

	var out []*relation.Record
	for rows.Next() {
		var (
			id, roleName, targetID, targetersJSON string
			category, taskKind                    int
		)
		if err := rows.Scan(&id, &category, &roleName, &taskKind, &targetID, &targetersJSON); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}

		r := &relation.Record{
			ID:       world.ID(id),
			Category: world.Category(category),
			Role:     roleName,
			TaskKind: task.Kind(taskKind),
			TargetID: world.ID(targetID),
		}
		if err := json.Unmarshal([]byte(targetersJSON), &r.Targeters); err != nil {
			return nil, fmt.Errorf("record %s targeters: %w", id, err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// SaveEvents appends events to the log.
func (db *DB) SaveEvents(events []engine.Event) error {
	if len(events) == 0 {
		return nil
	}

	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, e := range events {
		_, err := tx.Exec(
			"INSERT INTO events (tick, description, category) VALUES (?, ?, ?)",
			e.Tick, e.Description, e.Category,
		)
		if err != nil {
			return fmt.Errorf("insert event: %w", err)
		}
	}

	return tx.Commit()
}

// SetMeta writes a metadata key.
func (db *DB) SetMeta(key, value string) error {
	_, err := db.conn.Exec(
		"INSERT INTO meta (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
		key, value,
	)
	return err
}

// GetMeta reads a metadata key.
func (db *DB) GetMeta(key string) (string, error) {
	var value string
	err := db.conn.Get(&value, "SELECT value FROM meta WHERE key = ?", key)
	return value, err
}

// SetTick records the most recently completed tick.
func (db *DB) SetTick(tick uint64) error {
	return db.SetMeta("last_tick", strconv.FormatUint(tick, 10))
}

// LastTick returns the most recently completed tick, zero when none.
func (db *DB) LastTick() uint64 {
	v, err := db.GetMeta("last_tick")
	if err != nil {
		return 0
	}
	t, _ := strconv.ParseUint(v, 10, 64)
	return t
}

// HasState reports whether a previous run left records behind.
func (db *DB) HasState() bool {
	var count int
	if err := db.conn.Get(&count, "SELECT COUNT(*) FROM records"); err != nil {
		return false
	}
	return count > 0
}
