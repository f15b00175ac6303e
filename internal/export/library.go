// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/abstract-engine/pkg/types"
)

// Library persists searched papers in a local SQLite database. It is a
// write-through export sink: resolution never reads from it, so stored
// rows cannot mask fresh provider answers.
type Library struct {
	db *sql.DB
}

// OpenLibrary opens or creates the library database at path, creating
// parent directories and the schema as needed.
func OpenLibrary(path string) (*Library, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating library directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening library database: %w", err)
	}

	l := &Library{db: db}
	if err := l.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return l, nil
}

// Close releases the database connection.
func (l *Library) Close() error {
	return l.db.Close()
}

func (l *Library) createSchema() error {
	_, err := l.db.Exec(`CREATE TABLE IF NOT EXISTS papers (
		scopus_id TEXT PRIMARY KEY,
		title TEXT,
		authors TEXT,
		publication TEXT,
		date TEXT,
		doi TEXT,
		citations INTEGER,
		eid TEXT,
		scopus_url TEXT,
		abstract TEXT,
		abstract_source TEXT
	)`)
	return err
}

// Save upserts papers keyed by Scopus ID. Re-running a search refreshes
// the stored rows instead of duplicating them.
func (l *Library) Save(ctx context.Context, papers []types.Paper) error {
	tx, err := l.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `INSERT OR REPLACE INTO papers
		(scopus_id, title, authors, publication, date, doi, citations, eid, scopus_url, abstract, abstract_source)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, p := range papers {
		_, err := stmt.ExecContext(ctx,
			p.ScopusID, p.Title, p.Authors, p.Publication, p.Date, p.DOI,
			p.Citations, p.EID, p.ScopusURL, p.Abstract.AbstractText(), string(p.Abstract.Source))
		if err != nil {
			return fmt.Errorf("inserting paper %s: %w", p.ScopusID, err)
		}
	}

	return tx.Commit()
}

// List returns all stored papers ordered by citation count descending.
func (l *Library) List(ctx context.Context) ([]types.Paper, error) {
	rows, err := l.db.QueryContext(ctx, `SELECT
		scopus_id, title, authors, publication, date, doi, citations, eid, scopus_url, abstract, abstract_source
		FROM papers ORDER BY citations DESC, scopus_id`)
	if err != nil {
		return nil, fmt.Errorf("querying papers: %w", err)
	}
	defer rows.Close()

	var papers []types.Paper
	for rows.Next() {
		var p types.Paper
		var abstract, source string
		if err := rows.Scan(&p.ScopusID, &p.Title, &p.Authors, &p.Publication, &p.Date,
			&p.DOI, &p.Citations, &p.EID, &p.ScopusURL, &abstract, &source); err != nil {
			return nil, fmt.Errorf("scanning paper row: %w", err)
		}
		p.Abstract = restoreAbstract(abstract, source)
		papers = append(papers, p)
	}
	return papers, rows.Err()
}

// restoreAbstract rebuilds a ResolvedAbstract from its stored columns.
func restoreAbstract(abstract, source string) types.ResolvedAbstract {
	if abstract == "" || abstract == types.Sentinel || source == string(types.SourceNone) {
		return types.NoAbstract()
	}
	return types.ResolvedAbstract{
		ProviderResult: types.ProviderResult{
			Source:   types.Source(source),
			OK:       true,
			Abstract: abstract,
		},
	}
}
