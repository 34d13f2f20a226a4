/*
Package sqlite provides the SQLite-backed implementation of the storage
interfaces.

PURPOSE:
  Implements inventory.Store, catalog.Store and sales.Ledger on a single
  SQLite database. Three independent tables keyed by opaque ids; no
  cross-table foreign keys, matching the logical storage layout (a
  product referencing a deleted ingredient is allowed and handled at the
  domain layer).

APPEND-ONLY SALES:
  The sales table has no UPDATE or DELETE path. A sale, once written, is
  permanent history.

DECIMALS:
  Money and quantities are persisted as decimal strings (TEXT), never
  floats, and parsed back with shopspring/decimal. Comparisons and
  arithmetic happen in the domain layer, not in SQL.

CONCURRENCY:
  A sync.Mutex guards read-modify-write sequences (AdjustStock). The
  database is opened in WAL mode so readers don't block.

USAGE:
  store, err := sqlite.New("./confectionery.db")   // or ":memory:"
  defer store.Close()

SEE ALSO:
  - inventory/store.go, catalog/catalog.go, sales/types.go: interfaces
  - store/memory: in-memory implementation for tests
*/
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/sugarcraft/confectionery-engine/catalog"
	"github.com/sugarcraft/confectionery-engine/inventory"
	"github.com/sugarcraft/confectionery-engine/sales"
)

// timeLayout is RFC3339 with fixed-width fractional seconds. Range
// queries compare sold_at as text, so the encoding must sort the same
// way the timestamps do; RFC3339Nano trims trailing zeros and breaks
// that.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Store implements all storage interfaces using SQLite.
type Store struct {
	db *sql.DB
	mu sync.Mutex
}

// New opens (or creates) the database at dbPath and migrates the schema.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS ingredients (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		unit_cost TEXT NOT NULL,
		stock TEXT NOT NULL,
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS products (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		price TEXT NOT NULL,
		production_cost TEXT NOT NULL,
		recipe_json TEXT NOT NULL,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	-- Sales (append-only ledger, no update/delete path)
	CREATE TABLE IF NOT EXISTS sales (
		id TEXT PRIMARY KEY,
		sold_at TEXT NOT NULL,
		items_json TEXT NOT NULL,
		revenue TEXT NOT NULL,
		profit TEXT NOT NULL
	);

	-- Windowed report queries (hot path)
	CREATE INDEX IF NOT EXISTS idx_sales_sold_at ON sales(sold_at);
	`
	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// INGREDIENTS - inventory.Store
// =============================================================================

func (s *Store) SaveIngredient(ctx context.Context, ing inventory.Ingredient) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO ingredients (id, name, unit_cost, stock, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			unit_cost = excluded.unit_cost,
			stock = excluded.stock`,
		string(ing.ID), ing.Name, ing.UnitCost.String(), ing.Stock.String(),
		ing.CreatedAt.UTC().Format(timeLayout))
	return err
}

func (s *Store) GetIngredient(ctx context.Context, id inventory.IngredientID) (*inventory.Ingredient, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, unit_cost, stock, created_at
		FROM ingredients WHERE id = ?`, string(id))

	ing, err := scanIngredient(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return ing, nil
}

func (s *Store) ListIngredients(ctx context.Context) ([]inventory.Ingredient, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, unit_cost, stock, created_at FROM ingredients`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []inventory.Ingredient
	for rows.Next() {
		ing, err := scanIngredient(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *ing)
	}
	return out, rows.Err()
}

func (s *Store) DeleteIngredient(ctx context.Context, id inventory.IngredientID) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM ingredients WHERE id = ?`, string(id))
	return err
}

// AdjustStock performs the read-check-write under the store mutex, so
// the non-negative invariant holds per ingredient even with concurrent
// callers.
func (s *Store) AdjustStock(ctx context.Context, id inventory.IngredientID, delta decimal.Decimal) (decimal.Decimal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ing, err := s.GetIngredient(ctx, id)
	if err != nil {
		return decimal.Zero, err
	}
	if ing == nil {
		return decimal.Zero, inventory.ErrIngredientNotFound
	}

	next := ing.Stock.Add(delta)
	if next.IsNegative() {
		return decimal.Zero, &inventory.InsufficientStockError{
			IngredientID: ing.ID,
			Name:         ing.Name,
			Required:     delta.Neg(),
			Available:    ing.Stock,
		}
	}

	_, err = s.db.ExecContext(ctx,
		`UPDATE ingredients SET stock = ? WHERE id = ?`,
		next.String(), string(id))
	if err != nil {
		return decimal.Zero, err
	}
	return next, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanIngredient(row scanner) (*inventory.Ingredient, error) {
	var (
		id, name, unitCost, stock, createdAt string
	)
	if err := row.Scan(&id, &name, &unitCost, &stock, &createdAt); err != nil {
		return nil, err
	}

	ing := inventory.Ingredient{ID: inventory.IngredientID(id), Name: name}
	var err error
	if ing.UnitCost, err = decimal.NewFromString(unitCost); err != nil {
		return nil, fmt.Errorf("ingredient %s: bad unit_cost: %w", id, err)
	}
	if ing.Stock, err = decimal.NewFromString(stock); err != nil {
		return nil, fmt.Errorf("ingredient %s: bad stock: %w", id, err)
	}
	if ing.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
		return nil, fmt.Errorf("ingredient %s: bad created_at: %w", id, err)
	}
	return &ing, nil
}

// =============================================================================
// PRODUCTS - catalog.Store
// =============================================================================

// recipeLineRow is the JSON shape of one recipe line in recipe_json.
type recipeLineRow struct {
	IngredientID   string `json:"ingredient_id"`
	IngredientName string `json:"ingredient_name"`
	Quantity       string `json:"quantity"`
}

func (s *Store) SaveProduct(ctx context.Context, p catalog.Product) error {
	lines := make([]recipeLineRow, len(p.Recipe))
	for i, l := range p.Recipe {
		lines[i] = recipeLineRow{
			IngredientID:   string(l.IngredientID),
			IngredientName: l.IngredientName,
			Quantity:       l.Quantity.String(),
		}
	}
	recipeJSON, err := json.Marshal(lines)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO products (id, name, price, production_cost, recipe_json, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			price = excluded.price,
			production_cost = excluded.production_cost,
			recipe_json = excluded.recipe_json,
			updated_at = excluded.updated_at`,
		string(p.ID), p.Name, p.Price.String(), p.ProductionCost.String(),
		string(recipeJSON),
		p.CreatedAt.UTC().Format(timeLayout),
		p.UpdatedAt.UTC().Format(timeLayout))
	return err
}

func (s *Store) GetProduct(ctx context.Context, id catalog.ProductID) (*catalog.Product, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, price, production_cost, recipe_json, created_at, updated_at
		FROM products WHERE id = ?`, string(id))

	p, err := scanProduct(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Store) ListProducts(ctx context.Context) ([]catalog.Product, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, price, production_cost, recipe_json, created_at, updated_at
		FROM products`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []catalog.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

func (s *Store) DeleteProduct(ctx context.Context, id catalog.ProductID) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM products WHERE id = ?`, string(id))
	return err
}

func scanProduct(row scanner) (*catalog.Product, error) {
	var (
		id, name, price, cost, recipeJSON, createdAt, updatedAt string
	)
	if err := row.Scan(&id, &name, &price, &cost, &recipeJSON, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	p := catalog.Product{ID: catalog.ProductID(id), Name: name}
	var err error
	if p.Price, err = decimal.NewFromString(price); err != nil {
		return nil, fmt.Errorf("product %s: bad price: %w", id, err)
	}
	if p.ProductionCost, err = decimal.NewFromString(cost); err != nil {
		return nil, fmt.Errorf("product %s: bad production_cost: %w", id, err)
	}
	if p.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
		return nil, fmt.Errorf("product %s: bad created_at: %w", id, err)
	}
	if p.UpdatedAt, err = time.Parse(time.RFC3339Nano, updatedAt); err != nil {
		return nil, fmt.Errorf("product %s: bad updated_at: %w", id, err)
	}

	var lines []recipeLineRow
	if err := json.Unmarshal([]byte(recipeJSON), &lines); err != nil {
		return nil, fmt.Errorf("product %s: bad recipe_json: %w", id, err)
	}
	p.Recipe = make([]catalog.RecipeLine, len(lines))
	for i, l := range lines {
		qty, err := decimal.NewFromString(l.Quantity)
		if err != nil {
			return nil, fmt.Errorf("product %s: bad recipe quantity: %w", id, err)
		}
		p.Recipe[i] = catalog.RecipeLine{
			IngredientID:   inventory.IngredientID(l.IngredientID),
			IngredientName: l.IngredientName,
			Quantity:       qty,
		}
	}
	return &p, nil
}

// =============================================================================
// SALES - sales.Ledger (append-only)
// =============================================================================

type saleItemRow struct {
	ProductName string `json:"product_name"`
	Quantity    string `json:"quantity"`
}

func (s *Store) AppendSale(ctx context.Context, sale sales.Sale) error {
	items := make([]saleItemRow, len(sale.Items))
	for i, it := range sale.Items {
		items[i] = saleItemRow{ProductName: it.ProductName, Quantity: it.Quantity.String()}
	}
	itemsJSON, err := json.Marshal(items)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO sales (id, sold_at, items_json, revenue, profit)
		VALUES (?, ?, ?, ?, ?)`,
		string(sale.ID), sale.At.UTC().Format(timeLayout),
		string(itemsJSON), sale.Revenue.String(), sale.Profit.String())
	return err
}

func (s *Store) ListSales(ctx context.Context) ([]sales.Sale, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, sold_at, items_json, revenue, profit
		FROM sales ORDER BY sold_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectSales(rows)
}

func (s *Store) ListSalesInRange(ctx context.Context, from, to time.Time) ([]sales.Sale, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, sold_at, items_json, revenue, profit
		FROM sales WHERE sold_at >= ? AND sold_at <= ?
		ORDER BY sold_at`,
		from.UTC().Format(timeLayout), to.UTC().Format(timeLayout))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectSales(rows)
}

func collectSales(rows *sql.Rows) ([]sales.Sale, error) {
	var out []sales.Sale
	for rows.Next() {
		var (
			id, soldAt, itemsJSON, revenue, profit string
		)
		if err := rows.Scan(&id, &soldAt, &itemsJSON, &revenue, &profit); err != nil {
			return nil, err
		}

		sale := sales.Sale{ID: sales.SaleID(id)}
		var err error
		if sale.At, err = time.Parse(time.RFC3339Nano, soldAt); err != nil {
			return nil, fmt.Errorf("sale %s: bad sold_at: %w", id, err)
		}
		if sale.Revenue, err = decimal.NewFromString(revenue); err != nil {
			return nil, fmt.Errorf("sale %s: bad revenue: %w", id, err)
		}
		if sale.Profit, err = decimal.NewFromString(profit); err != nil {
			return nil, fmt.Errorf("sale %s: bad profit: %w", id, err)
		}

		var items []saleItemRow
		if err := json.Unmarshal([]byte(itemsJSON), &items); err != nil {
			return nil, fmt.Errorf("sale %s: bad items_json: %w", id, err)
		}
		sale.Items = make([]sales.Item, len(items))
		for i, it := range items {
			qty, err := decimal.NewFromString(it.Quantity)
			if err != nil {
				return nil, fmt.Errorf("sale %s: bad item quantity: %w", id, err)
			}
			sale.Items[i] = sales.Item{ProductName: it.ProductName, Quantity: qty}
		}
		out = append(out, sale)
	}
	return out, rows.Err()
}
