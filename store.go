package quill

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/tailtq/quill/content"
)

// Store is the SQLite index of the content collection. The content files
// on disk stay the source of truth; the index is rebuilt wholesale on load
// and reload, never edited per-document.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the SQLite database at path, ensures the data
// directory exists, and runs schema migrations.
func NewStore(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// WAL mode allows concurrent reads during an index rebuild; the busy
	// timeout makes writers wait instead of failing with SQLITE_BUSY.
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
	`); err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS documents (
    slug TEXT PRIMARY KEY,
    kind TEXT NOT NULL,
    title TEXT NOT NULL,
    author TEXT NOT NULL DEFAULT '',
    date TEXT NOT NULL DEFAULT '',
    tags TEXT NOT NULL DEFAULT ',,',
    icon TEXT NOT NULL DEFAULT '',
    ord INTEGER NOT NULL DEFAULT 0,
    draft INTEGER NOT NULL DEFAULT 0,
    body TEXT NOT NULL,
    source_path TEXT NOT NULL DEFAULT ''
);
`)
	return err
}

// ReplaceAll rebuilds the index from a freshly loaded collection in one
// transaction, so readers either see the old set or the new one.
func (s *Store) ReplaceAll(docs []content.Document) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM documents`); err != nil {
		return err
	}
	stmt, err := tx.Prepare(`INSERT INTO documents (slug, kind, title, author, date, tags, icon, ord, draft, body, source_path) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, d := range docs {
		date := ""
		if !d.Date.IsZero() {
			date = d.Date.Format(content.DateFormat)
		}
		draft := 0
		if d.Draft {
			draft = 1
		}
		if _, err := stmt.Exec(d.Slug, string(d.Kind), d.Title, d.Author, date, encodeTags(d.Tags), d.Icon, d.Order, draft, d.Body, d.SourcePath); err != nil {
			return fmt.Errorf("quill: index %s: %w", d.Slug, err)
		}
	}
	return tx.Commit()
}

const docColumns = `slug, kind, title, author, date, tags, icon, ord, draft, body, source_path`

func scanDocument(scan func(dest ...any) error) (content.Document, error) {
	var d content.Document
	var kind, date, tags string
	var draft int
	if err := scan(&d.Slug, &kind, &d.Title, &d.Author, &date, &tags, &d.Icon, &d.Order, &draft, &d.Body, &d.SourcePath); err != nil {
		return content.Document{}, err
	}
	d.Kind = content.Kind(kind)
	d.Tags = decodeTags(tags)
	d.Draft = draft == 1
	if date != "" {
		if t, err := time.Parse(content.DateFormat, date); err == nil {
			d.Date = t
		}
	}
	return d, nil
}

// ListPosts returns all non-draft posts ordered by date descending, ties
// broken by slug. If tag is non-empty, results are filtered to posts
// carrying that tag.
func (s *Store) ListPosts(tag string) ([]content.Document, error) {
	var rows *sql.Rows
	var err error
	if tag == "" {
		rows, err = s.db.Query(`SELECT ` + docColumns + ` FROM documents WHERE kind = 'post' AND draft = 0 ORDER BY date DESC, slug ASC`)
	} else {
		normalized := strings.ToLower(strings.TrimSpace(tag))
		rows, err = s.db.Query(`SELECT `+docColumns+` FROM documents WHERE kind = 'post' AND draft = 0 AND instr(lower(tags), ',' || ? || ',') > 0 ORDER BY date DESC, slug ASC`, normalized)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectDocuments(rows)
}

// ListPages returns all non-draft pages ordered by their order hint.
func (s *Store) ListPages() ([]content.Document, error) {
	rows, err := s.db.Query(`SELECT ` + docColumns + ` FROM documents WHERE kind = 'page' AND draft = 0 ORDER BY ord ASC, slug ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectDocuments(rows)
}

// ListAll returns every document including drafts, posts before pages,
// for the admin dashboard.
func (s *Store) ListAll() ([]content.Document, error) {
	rows, err := s.db.Query(`SELECT ` + docColumns + ` FROM documents ORDER BY kind DESC, date DESC, ord ASC, slug ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectDocuments(rows)
}

func collectDocuments(rows *sql.Rows) ([]content.Document, error) {
	var docs []content.Document
	for rows.Next() {
		d, err := scanDocument(rows.Scan)
		if err != nil {
			return nil, err
		}
		docs = append(docs, d)
	}
	return docs, rows.Err()
}

// ListTags returns a sorted, deduplicated slice of all tags from non-draft posts.
func (s *Store) ListTags() ([]string, error) {
	rows, err := s.db.Query(`SELECT DISTINCT lower(tags) FROM documents WHERE kind = 'post' AND draft = 0`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	set := make(map[string]struct{})
	for rows.Next() {
		var tags string
		if err := rows.Scan(&tags); err != nil {
			return nil, err
		}
		for _, t := range decodeTags(tags) {
			set[t] = struct{}{}
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	out := make([]string, 0, len(set))
	for t := range set {
		out = append(out, t)
	}
	sort.Strings(out)
	return out, nil
}

// GetDocument returns a single non-draft document by slug, or
// content.ErrNotFound.
func (s *Store) GetDocument(slug string) (content.Document, error) {
	row := s.db.QueryRow(`SELECT `+docColumns+` FROM documents WHERE slug = ? AND draft = 0`, slug)
	d, err := scanDocument(row.Scan)
	if err == sql.ErrNoRows {
		return content.Document{}, content.ErrNotFound
	}
	return d, err
}

// GetDocumentAny returns a document by slug regardless of draft status
// (for admin preview).
func (s *Store) GetDocumentAny(slug string) (content.Document, error) {
	row := s.db.QueryRow(`SELECT `+docColumns+` FROM documents WHERE slug = ?`, slug)
	d, err := scanDocument(row.Scan)
	if err == sql.ErrNoRows {
		return content.Document{}, content.ErrNotFound
	}
	return d, err
}

// encodeTags stores tags as a comma-wrapped string (e.g. ",go,web,") so
// tag filtering can use a delimiter-safe instr match.
func encodeTags(tags []string) string {
	trimmed := make([]string, len(tags))
	for i, t := range tags {
		trimmed[i] = strings.TrimSpace(t)
	}
	return "," + strings.Join(trimmed, ",") + ","
}

func decodeTags(tagString string) []string {
	tagString = strings.Trim(tagString, ",")
	if tagString == "" {
		return nil
	}
	parts := strings.Split(tagString, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
