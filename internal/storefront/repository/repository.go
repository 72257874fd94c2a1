package repository

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strconv"
	"strings"
	"time"

	"shade-store/internal/shades/models"
)

//go:embed migrations
var migrationsFS embed.FS

var ErrNotFound = errors.New("not found")

// Dialect picks placeholder style and migration set.
type Dialect string

const (
	SQLite   Dialect = "sqlite"
	Postgres Dialect = "postgres"
)

// ============================================================
// Repository
// ============================================================

// Repository stores the fabric catalog and cart sessions. The same queries
// run on SQLite and Postgres; placeholders are rewritten per dialect.
type Repository struct {
	db      *sql.DB
	dialect Dialect
	now     func() time.Time
}

func New(db *sql.DB, dialect Dialect) *Repository {
	return &Repository{db: db, dialect: dialect, now: time.Now}
}

// Init runs the embedded migrations and seeds the fabric table when it is
// empty.
func (r *Repository) Init(ctx context.Context, seed []models.Fabric) error {
	if err := r.runMigrations(ctx); err != nil {
		return fmt.Errorf("migrations: %w", err)
	}
	return r.ensureFabrics(ctx, seed)
}

func (r *Repository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// ============================================================
// Fabrics
// ============================================================

// ListFabrics returns fabrics in catalog order. An empty category lists all.
func (r *Repository) ListFabrics(ctx context.Context, category models.Category) ([]models.Fabric, error) {
	query := `SELECT id, name, category, price_group, collection FROM fabrics`
	var args []any
	if category != "" {
		query += ` WHERE category = ?`
		args = append(args, string(category))
	}
	query += ` ORDER BY position, id`

	rows, err := r.db.QueryContext(ctx, r.rebind(query), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var fabrics []models.Fabric
	for rows.Next() {
		f, err := scanFabric(rows)
		if err != nil {
			return nil, err
		}
		fabrics = append(fabrics, f)
	}
	return fabrics, rows.Err()
}

func (r *Repository) GetFabric(ctx context.Context, id string) (models.Fabric, error) {
	row := r.db.QueryRowContext(ctx, r.rebind(`
        SELECT id, name, category, price_group, collection
        FROM fabrics
        WHERE id = ?
    `), id)

	f, err := scanFabric(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Fabric{}, ErrNotFound
		}
		return models.Fabric{}, err
	}
	return f, nil
}

// UpsertFabrics writes fabrics in order, replacing rows with the same id.
func (r *Repository) UpsertFabrics(ctx context.Context, fabrics []models.Fabric) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, r.rebind(`
        INSERT INTO fabrics (id, name, category, price_group, collection, position)
        VALUES (?, ?, ?, ?, ?, ?)
        ON CONFLICT (id) DO UPDATE SET
            name = excluded.name,
            category = excluded.category,
            price_group = excluded.price_group,
            collection = excluded.collection,
            position = excluded.position
    `))
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, f := range fabrics {
		if _, err := stmt.ExecContext(ctx, f.ID, f.Name, string(f.Category), string(f.PriceGroup), f.Collection, i); err != nil {
			return fmt.Errorf("fabric %s: %w", f.ID, err)
		}
	}
	return tx.Commit()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanFabric(row rowScanner) (models.Fabric, error) {
	var f models.Fabric
	var category, group string
	if err := row.Scan(&f.ID, &f.Name, &category, &group, &f.Collection); err != nil {
		return models.Fabric{}, err
	}
	f.Category = models.Category(category)
	f.PriceGroup = models.PriceGroup(group)
	return f, nil
}

// ============================================================
// Cart Sessions
// ============================================================

// LoadCart returns the stored items of a cart session.
func (r *Repository) LoadCart(ctx context.Context, id string) ([]models.CartItem, error) {
	row := r.db.QueryRowContext(ctx, r.rebind(`SELECT items FROM cart_sessions WHERE id = ?`), id)

	var raw string
	if err := row.Scan(&raw); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var items []models.CartItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, fmt.Errorf("decode cart %s: %w", id, err)
	}
	return items, nil
}

// SaveCart stores the full item list of a cart session.
func (r *Repository) SaveCart(ctx context.Context, id string, items []models.CartItem) error {
	if items == nil {
		items = []models.CartItem{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode cart %s: %w", id, err)
	}

	_, err = r.db.ExecContext(ctx, r.rebind(`
        INSERT INTO cart_sessions (id, items, updated_at)
        VALUES (?, ?, ?)
        ON CONFLICT (id) DO UPDATE SET
            items = excluded.items,
            updated_at = excluded.updated_at
    `), id, string(raw), r.now().UTC())
	return err
}

func (r *Repository) DeleteCart(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, r.rebind(`DELETE FROM cart_sessions WHERE id = ?`), id)
	return err
}

// ============================================================
// Migrations & Seeding
// ============================================================

func (r *Repository) runMigrations(ctx context.Context) error {
	dir := path.Join("migrations", string(r.dialect))
	entries, err := fs.ReadDir(migrationsFS, dir)
	if err != nil {
		return fmt.Errorf("read migrations for %s: %w", r.dialect, err)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	for _, e := range entries {
		data, err := migrationsFS.ReadFile(path.Join(dir, e.Name()))
		if err != nil {
			return fmt.Errorf("read migration: %w", err)
		}
		for _, stmt := range splitStatements(string(data)) {
			if _, err := r.db.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("apply migration %s: %w", e.Name(), err)
			}
		}
	}
	return nil
}

func (r *Repository) ensureFabrics(ctx context.Context, seed []models.Fabric) error {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM fabrics`).Scan(&count); err != nil {
		return fmt.Errorf("count fabrics: %w", err)
	}
	if count > 0 || len(seed) == 0 {
		return nil
	}
	if err := r.UpsertFabrics(ctx, seed); err != nil {
		return fmt.Errorf("seed fabrics: %w", err)
	}
	return nil
}

func splitStatements(sqlText string) []string {
	var out []string
	for _, stmt := range strings.Split(sqlText, ";") {
		if stmt = strings.TrimSpace(stmt); stmt != "" {
			out = append(out, stmt)
		}
	}
	return out
}

// rebind turns ? placeholders into $n for Postgres.
func (r *Repository) rebind(query string) string {
	if r.dialect != Postgres {
		return query
	}
	var b strings.Builder
	n := 0
	for _, ch := range query {
		if ch == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(ch)
	}
	return b.String()
}
