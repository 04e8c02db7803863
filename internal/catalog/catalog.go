// Package catalog stores generated textures with their parameters in a
// SQLite database so renders can be listed and re-exported later.
package catalog

import (
	"bytes"
	"compress/gzip"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/MeKo-Tech/concretegen/internal/palette"
	"github.com/MeKo-Tech/concretegen/internal/texture"
)

// Record describes one stored texture. The PNG payload is kept out of the
// record and fetched separately via Image.
type Record struct {
	ID        int64
	Name      string
	Width     int
	Height    int
	Seed      int64
	BaseColor string
	Params    texture.Params
	CreatedAt time.Time
}

// Catalog is a handle to a texture database.
type Catalog struct {
	db   *sql.DB
	path string
}

// Open opens or creates a catalog database at path.
func Open(path string) (*Catalog, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA temp_store = MEMORY",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set pragma %q: %w", pragma, err)
		}
	}

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &Catalog{db: db, path: path}, nil
}

func createSchema(db *sql.DB) error {
	schema := `
		CREATE TABLE IF NOT EXISTS textures (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			width INTEGER NOT NULL,
			height INTEGER NOT NULL,
			seed INTEGER NOT NULL,
			base_color TEXT NOT NULL,
			params TEXT NOT NULL,
			created_at TEXT NOT NULL,
			image BLOB NOT NULL
		);

		CREATE INDEX IF NOT EXISTS textures_name ON textures (name);
	`

	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}
	return nil
}

// Save stores a rendered texture and its parameters. The PNG data is
// gzip-compressed before storage. Returns the new record's id.
func (c *Catalog) Save(name string, p texture.Params, pngData []byte) (int64, error) {
	paramsJSON, err := json.Marshal(p)
	if err != nil {
		return 0, fmt.Errorf("failed to encode params: %w", err)
	}

	compressed, err := gzipCompress(pngData)
	if err != nil {
		return 0, fmt.Errorf("failed to compress image: %w", err)
	}

	res, err := c.db.Exec(
		`INSERT INTO textures (name, width, height, seed, base_color, params, created_at, image)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		name, p.Width, p.Height, p.Seed, palette.FormatHex(p.BaseColor),
		string(paramsJSON), time.Now().UTC().Format(time.RFC3339), compressed,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert texture %q: %w", name, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read inserted id: %w", err)
	}
	return id, nil
}

// List returns all stored records, newest first, without image payloads.
func (c *Catalog) List() ([]Record, error) {
	rows, err := c.db.Query(
		`SELECT id, name, width, height, seed, base_color, params, created_at
		 FROM textures ORDER BY id DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query textures: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating textures: %w", err)
	}
	return records, nil
}

// Get returns a single record by id.
func (c *Catalog) Get(id int64) (Record, error) {
	row := c.db.QueryRow(
		`SELECT id, name, width, height, seed, base_color, params, created_at
		 FROM textures WHERE id = ?`, id)

	rec, err := scanRecord(row)
	if err == sql.ErrNoRows {
		return Record{}, fmt.Errorf("texture %d not found", id)
	}
	if err != nil {
		return Record{}, err
	}
	return rec, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (Record, error) {
	var (
		rec        Record
		paramsJSON string
		createdAt  string
	)
	err := row.Scan(&rec.ID, &rec.Name, &rec.Width, &rec.Height, &rec.Seed,
		&rec.BaseColor, &paramsJSON, &createdAt)
	if err == sql.ErrNoRows {
		return Record{}, err
	}
	if err != nil {
		return Record{}, fmt.Errorf("failed to scan texture row: %w", err)
	}

	if err := json.Unmarshal([]byte(paramsJSON), &rec.Params); err != nil {
		return Record{}, fmt.Errorf("failed to decode params for texture %d: %w", rec.ID, err)
	}
	if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
		rec.CreatedAt = t
	}
	return rec, nil
}

// Image returns the decompressed PNG data for a stored texture.
func (c *Catalog) Image(id int64) ([]byte, error) {
	var compressed []byte
	err := c.db.QueryRow("SELECT image FROM textures WHERE id = ?", id).Scan(&compressed)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("texture %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query image: %w", err)
	}

	data, err := gzipDecompress(compressed)
	if err != nil {
		return nil, fmt.Errorf("failed to decompress image %d: %w", id, err)
	}
	return data, nil
}

// Close closes the underlying database.
func (c *Catalog) Close() error {
	if err := c.db.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}
	return nil
}

func gzipCompress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	gw := gzip.NewWriter(&buf)

	if _, err := gw.Write(data); err != nil {
		gw.Close()
		return nil, err
	}
	if err := gw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func gzipDecompress(data []byte) ([]byte, error) {
	gr, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer gr.Close()

	return io.ReadAll(gr)
}
