package storage

import (
	"context"
	"database/sql"
)

const importHashPrefix = "import:"

// SetMetadata upserts a key-value pair in the metadata table.
func (d *DB) SetMetadata(ctx context.Context, key, value string) error {
	_, err := d.db.ExecContext(ctx,
		`INSERT INTO metadata (key, value) VALUES ($1, $2)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	return err
}

// GetMetadata returns the value for a metadata key.
// Returns empty string and nil error if the key is missing.
func (d *DB) GetMetadata(ctx context.Context, key string) (string, error) {
	var value string
	err := d.db.QueryRowContext(ctx, `SELECT value FROM metadata WHERE key = $1`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	return value, err
}

// ImportedFileHash returns the content hash recorded for an imported file.
func (d *DB) ImportedFileHash(ctx context.Context, path string) (string, error) {
	return d.GetMetadata(ctx, importHashPrefix+path)
}

// SetImportedFileHash records the content hash of an imported file.
func (d *DB) SetImportedFileHash(ctx context.Context, path, hash string) error {
	return d.SetMetadata(ctx, importHashPrefix+path, hash)
}
