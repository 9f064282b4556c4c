package dictionary

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"

	"github.com/f3rmion/emojify/internal/emojify"
	_ "modernc.org/sqlite"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS entries (
	pos   INTEGER PRIMARY KEY,
	emoji TEXT NOT NULL UNIQUE,
	def   TEXT
);
CREATE TABLE IF NOT EXISTS context (
	entry_pos INTEGER NOT NULL REFERENCES entries(pos),
	pos       INTEGER NOT NULL,
	key       TEXT NOT NULL,
	value     TEXT,
	PRIMARY KEY (entry_pos, pos)
);
`

// LoadSQLite reads a dictionary from a SQLite database written by
// SaveSQLite. Rows are read in position order. A NULL def fails the load.
func LoadSQLite(path string) (*Dictionary, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("opening dictionary database: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening dictionary database: %w", err)
	}
	defer db.Close()

	rows, err := db.Query("SELECT pos, emoji, def FROM entries ORDER BY pos")
	if err != nil {
		return nil, fmt.Errorf("querying entries: %w", err)
	}
	defer rows.Close()

	d := New()
	var positions []int64
	for rows.Next() {
		var (
			pos   int64
			emoji string
			def   sql.NullString
		)
		if err := rows.Scan(&pos, &emoji, &def); err != nil {
			return nil, fmt.Errorf("scanning entry: %w", err)
		}
		if !def.Valid {
			return nil, &emojify.EntryError{Emoji: emoji, Err: emojify.ErrMissingDefinition}
		}
		d.Set(emojify.Entry{Emoji: emoji, Definition: def.String})
		positions = append(positions, pos)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading entries: %w", err)
	}

	if err := loadSQLiteContext(db, d, positions); err != nil {
		return nil, err
	}

	return d, nil
}

func loadSQLiteContext(db *sql.DB, d *Dictionary, positions []int64) error {
	byPos := make(map[int64]int, len(positions))
	for i, pos := range positions {
		byPos[pos] = i
	}

	rows, err := db.Query("SELECT entry_pos, key, value FROM context ORDER BY entry_pos, pos")
	if err != nil {
		return fmt.Errorf("querying context: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			entryPos int64
			key      string
			raw      sql.NullString
		)
		if err := rows.Scan(&entryPos, &key, &raw); err != nil {
			return fmt.Errorf("scanning context: %w", err)
		}

		i, ok := byPos[entryPos]
		if !ok {
			continue
		}

		var value any
		if raw.Valid && raw.String != "" {
			if err := json.Unmarshal([]byte(raw.String), &value); err != nil {
				value = raw.String
			}
		}
		d.entries[i].Context = append(d.entries[i].Context, emojify.ContextEntry{Key: key, Value: value})
	}

	return rows.Err()
}

// SaveSQLite writes d to a new SQLite database at path, replacing any
// existing file.
func SaveSQLite(path string, d *Dictionary) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing old database: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	if _, err := db.Exec(sqliteSchema); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	for i, e := range d.entries {
		if _, err := tx.Exec("INSERT INTO entries (pos, emoji, def) VALUES (?, ?, ?)", i, e.Emoji, e.Definition); err != nil {
			return fmt.Errorf("inserting entry %q: %w", e.Emoji, err)
		}
		for j, c := range e.Context {
			value, err := json.Marshal(c.Value)
			if err != nil {
				return fmt.Errorf("marshaling context %q of %q: %w", c.Key, e.Emoji, err)
			}
			if _, err := tx.Exec("INSERT INTO context (entry_pos, pos, key, value) VALUES (?, ?, ?, ?)", i, j, c.Key, string(value)); err != nil {
				return fmt.Errorf("inserting context %q of %q: %w", c.Key, e.Emoji, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing dictionary: %w", err)
	}
	return nil
}
