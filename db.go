package imgschem

import (
	"database/sql"
	"fmt"
	"image"
	"log"
	"os"

	"github.com/bodgit/imgschem/colortable"
	_ "github.com/mattn/go-sqlite3"
)

// BlockDB is a persistent block colour table. Blocks keep the position they
// were first added in, which is the order ties are broken in.
type BlockDB struct {
	db     *sql.DB
	logger *log.Logger
}

// NewBlockDB opens or creates the database in file.
func NewBlockDB(file string, logger *log.Logger) (*BlockDB, error) {
	db, err := sql.Open("sqlite3", file)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(10)

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS block (id INTEGER PRIMARY KEY NOT NULL, name TEXT NOT NULL UNIQUE, r INTEGER NOT NULL, g INTEGER NOT NULL, b INTEGER NOT NULL, a INTEGER NOT NULL)"); err != nil {
		db.Close()
		return nil, err
	}

	return &BlockDB{
		db:     db,
		logger: logger,
	}, nil
}

// Close closes the database.
func (db *BlockDB) Close() error {
	return db.db.Close()
}

// ImportJSON replaces the contents of the database with the JSON colour
// table in file.
func (db *BlockDB) ImportJSON(file string) error {
	f, err := os.Open(file)
	if err != nil {
		return err
	}
	defer f.Close()

	t, err := colortable.Load(f)
	if err != nil {
		return err
	}

	tx, err := db.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err = tx.Exec("DELETE FROM block"); err != nil {
		return err
	}

	for _, e := range t.Entries() {
		if _, err = tx.Exec("INSERT INTO block (name, r, g, b, a) VALUES (?, ?, ?, ?, ?)", e.Name, e.Color[0], e.Color[1], e.Color[2], e.Color[3]); err != nil {
			return err
		}
	}

	if err = tx.Commit(); err != nil {
		return err
	}

	db.logger.Printf("Imported %d blocks from \"%s\"\n", t.Len(), file)

	return nil
}

// ExportJSON writes the database to file as a JSON colour table.
func (db *BlockDB) ExportJSON(file string) error {
	t, err := db.Table()
	if err != nil {
		return err
	}

	f, err := os.Create(file)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := t.WriteJSON(f); err != nil {
		return err
	}

	return f.Close()
}

// SetColor stores the colour for the named block. An existing block keeps
// its position.
func (db *BlockDB) SetColor(name string, c colortable.Color) error {
	if name == "" {
		return fmt.Errorf("%w: empty block identifier", colortable.ErrMalformed)
	}
	if _, err := db.db.Exec("INSERT INTO block (name, r, g, b, a) VALUES (?, ?, ?, ?, ?) ON CONFLICT(name) DO UPDATE SET r = excluded.r, g = excluded.g, b = excluded.b, a = excluded.a", name, c[0], c[1], c[2], c[3]); err != nil {
		return err
	}
	return nil
}

// AddTexture stores the average colour of m for the named block.
func (db *BlockDB) AddTexture(name string, m image.Image) error {
	return db.SetColor(name, colortable.AverageColor(m))
}

// Length returns the number of blocks in the database.
func (db *BlockDB) Length() (int, error) {
	var n int
	if err := db.db.QueryRow("SELECT COUNT(*) FROM block").Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// Table returns the current contents of the database as a colour table.
func (db *BlockDB) Table() (*colortable.Table, error) {
	rows, err := db.db.Query("SELECT name, r, g, b, a FROM block ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []colortable.Entry
	for rows.Next() {
		var e colortable.Entry
		if err := rows.Scan(&e.Name, &e.Color[0], &e.Color[1], &e.Color[2], &e.Color[3]); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return colortable.New(entries)
}
