// Package migrations embeds the broadcast schema so the server binary, the
// migrate command and the test helper all apply the same files.
package migrations

import (
	"database/sql"
	"embed"
	"io/fs"
	"os"

	"github.com/pressly/goose/v3"
)

//go:embed *.sql
var files embed.FS

// NewProvider returns a goose provider over the embedded migrations, or over
// dir when it is non-empty.
func NewProvider(db *sql.DB, dir string) (*goose.Provider, error) {
	var fsys fs.FS = files
	if dir != "" {
		fsys = os.DirFS(dir)
	}
	return goose.NewProvider(goose.DialectPostgres, db, fsys)
}
