package store

import (
	"context"
	"database/sql"
	"time"

	"inspections-cli/internal/domain"
)

func Migrate(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var v int
	if err := tx.QueryRow(`PRAGMA user_version;`).Scan(&v); err != nil {
		return err
	}
	if v >= 1 {
		return tx.Commit()
	}

	if _, err := tx.Exec(`
CREATE TABLE IF NOT EXISTS runs (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  fetched_at TEXT NOT NULL,
  keyword TEXT NOT NULL,
  city TEXT NOT NULL,
  county TEXT NOT NULL,
  permit_type TEXT NOT NULL,
  score_low INTEGER NOT NULL,
  score_high INTEGER NOT NULL,
  start_date TEXT NOT NULL,
  end_date TEXT NOT NULL,
  record_count INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS reports (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  run_id INTEGER NOT NULL REFERENCES runs(id),
  establishment_id INTEGER NOT NULL,
  name TEXT NOT NULL,
  score INTEGER NOT NULL,
  address TEXT NOT NULL,
  date TEXT NOT NULL,
  violations TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_reports_run ON reports(run_id);
`); err != nil {
		return err
	}

	if _, err := tx.Exec(`PRAGMA user_version = 1;`); err != nil {
		return err
	}
	return tx.Commit()
}

// SaveRun archives one completed fetch: the filter set it ran with plus every
// record that made it into the output. Write-only history; nothing in the CLI
// reads it back.
func (d *DB) SaveRun(ctx context.Context, fs domain.FilterSet, records []domain.InspectionRecord) (int64, error) {
	tx, err := d.Pool.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx, `
INSERT INTO runs(fetched_at, keyword, city, county, permit_type, score_low, score_high, start_date, end_date, record_count)
VALUES(?,?,?,?,?,?,?,?,?,?);`,
		time.Now().UTC().Format(time.RFC3339),
		fs.Keyword, fs.City, fs.County, fs.PermitType,
		fs.ScoreLow, fs.ScoreHigh, fs.StartDate, fs.EndDate,
		len(records),
	)
	if err != nil {
		return 0, err
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	for _, r := range records {
		if _, err := tx.ExecContext(ctx, `
INSERT INTO reports(run_id, establishment_id, name, score, address, date, violations)
VALUES(?,?,?,?,?,?,?);`,
			runID, r.ID, r.Name, r.Score, r.Address, r.Date, string(r.Violations),
		); err != nil {
			return 0, err
		}
	}

	return runID, tx.Commit()
}
