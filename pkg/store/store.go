// Package store owns the relational ADEI store: schema creation and the full
// rebuild from an interchange document. Analytics and serving layers only
// ever read from it.
package store

import (
	"database/sql"
	"fmt"
	"os"

	"github.com/hazyhaar/adei/pkg/index"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS countries (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	name       TEXT    NOT NULL UNIQUE,
	adei_score INTEGER,
	adei_rank  INTEGER
);

CREATE TABLE IF NOT EXISTS dimension_summaries (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	country_id INTEGER,
	dimension  TEXT,
	pillar     TEXT,
	value      INTEGER,
	rank       INTEGER,
	FOREIGN KEY (country_id) REFERENCES countries (id)
);

CREATE TABLE IF NOT EXISTS pillars (
	id                 INTEGER PRIMARY KEY AUTOINCREMENT,
	country_id         INTEGER,
	pillar_name        TEXT,
	total_pillar_score REAL,
	FOREIGN KEY (country_id) REFERENCES countries (id)
);

CREATE TABLE IF NOT EXISTS sub_pillars (
	id        INTEGER PRIMARY KEY AUTOINCREMENT,
	pillar_id INTEGER,
	name      TEXT,
	score     REAL,
	FOREIGN KEY (pillar_id) REFERENCES pillars (id)
);
`

// Store is a handle on the ADEI SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens the SQLite store at path for reading and serving. WAL mode keeps
// concurrent readers safe; reloads happen offline through Rebuild.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connect store: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// DB returns the underlying connection for the analytics layer.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Rebuild replaces the store at path with a fresh one built from the given
// countries. The new database is assembled in a sibling temp file inside one
// transaction and renamed over the target only on success, so a failed load
// leaves the previous store untouched.
//
// Countries are inserted in order, each followed by its dimension summaries,
// then each pillar immediately followed by that pillar's sub-indicators, so
// insertion ids preserve catalog order. A duplicate country name is skipped
// rather than treated as an error.
func Rebuild(path string, countries []index.Country) error {
	tmp := path + ".tmp"
	os.Remove(tmp)

	if err := buildInto(tmp, countries); err != nil {
		os.Remove(tmp)
		return err
	}

	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("swap store into place: %w", err)
	}
	return nil
}

func buildInto(path string, countries []index.Country) error {
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(delete)&_pragma=foreign_keys(on)")
	if err != nil {
		return fmt.Errorf("create store: %w", err)
	}
	defer db.Close()

	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("create tables: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin load: %w", err)
	}
	defer tx.Rollback()

	for _, c := range countries {
		if err := insertCountry(tx, c); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit load: %w", err)
	}
	return nil
}

func insertCountry(tx *sql.Tx, c index.Country) error {
	res, err := tx.Exec(
		`INSERT OR IGNORE INTO countries (name, adei_score, adei_rank) VALUES (?, ?, ?)`,
		c.CountryName, c.OverallADEIScore, c.OverallADEIRank,
	)
	if err != nil {
		return fmt.Errorf("insert country %s: %w", c.CountryName, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// Duplicate name: the row (and its children) already exist.
		return nil
	}
	countryID, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("country id for %s: %w", c.CountryName, err)
	}

	for _, ds := range c.DimensionSummary {
		if _, err := tx.Exec(
			`INSERT INTO dimension_summaries (country_id, dimension, pillar, value, rank) VALUES (?, ?, ?, ?, ?)`,
			countryID, ds.Dimension, ds.Pillar, ds.Value, ds.Rank,
		); err != nil {
			return fmt.Errorf("insert summary for %s: %w", c.CountryName, err)
		}
	}

	for _, p := range c.DetailedPillars {
		res, err := tx.Exec(
			`INSERT INTO pillars (country_id, pillar_name, total_pillar_score) VALUES (?, ?, ?)`,
			countryID, p.PillarName, p.TotalPillarScore,
		)
		if err != nil {
			return fmt.Errorf("insert pillar %q for %s: %w", p.PillarName, c.CountryName, err)
		}
		pillarID, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("pillar id for %s: %w", c.CountryName, err)
		}

		for _, sp := range p.SubPillars {
			if _, err := tx.Exec(
				`INSERT INTO sub_pillars (pillar_id, name, score) VALUES (?, ?, ?)`,
				pillarID, sp.Name, sp.Score,
			); err != nil {
				return fmt.Errorf("insert sub-pillar %q for %s: %w", sp.Name, c.CountryName, err)
			}
		}
	}
	return nil
}
