// Package sqlstore implements domain.CatalogRepository over database/sql for
// MySQL (go-sql-driver/mysql) and PostgreSQL (lib/pq).
package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"menu_agent/internal/domain"
)

const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
)

type Repo struct {
	db     *sql.DB
	driver string
	now    func() time.Time
}

func New(db *sql.DB, driver string) (*Repo, error) {
	if _, ok := schema[driver]; !ok {
		return nil, fmt.Errorf("sqlstore: unsupported driver %q", driver)
	}
	return &Repo{db: db, driver: driver, now: func() time.Time { return time.Now().UTC().Truncate(time.Microsecond) }}, nil
}

// Migrate creates the tables when missing.
func (r *Repo) Migrate(ctx context.Context) error {
	for i, stmt := range schema[r.driver] {
		if _, err := r.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate step %d: %w", i+1, err)
		}
	}
	return nil
}

// rebind converts '?' placeholders to $n for postgres.
func (r *Repo) rebind(q string) string {
	if r.driver != DriverPostgres {
		return q
	}
	var b strings.Builder
	b.Grow(len(q) + 8)
	n := 0
	for i := 0; i < len(q); i++ {
		if q[i] == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteByte(q[i])
	}
	return b.String()
}

// insert runs an INSERT and returns the new id (LastInsertId on MySQL,
// RETURNING on Postgres).
func (r *Repo) insert(ctx context.Context, q string, args ...any) (int64, error) {
	if r.driver == DriverPostgres {
		var id int64
		err := r.db.QueryRowContext(ctx, r.rebind(q)+" RETURNING id", args...).Scan(&id)
		return id, err
	}
	res, err := r.db.ExecContext(ctx, q, args...)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func tagsJSON(tags []string) string {
	if tags == nil {
		tags = []string{}
	}
	b, _ := json.Marshal(tags)
	return string(b)
}

func (r *Repo) CreateRestaurant(ctx context.Context, rs domain.Restaurant) (domain.Restaurant, error) {
	if rs.CreatedAt.IsZero() {
		rs.CreatedAt = r.now()
	}
	id, err := r.insert(ctx, insertRestaurantSQL, rs.Name, rs.City, rs.CuisineHint, rs.CreatedAt)
	if err != nil {
		return domain.Restaurant{}, fmt.Errorf("insert restaurant: %w", err)
	}
	rs.ID = id
	return rs, nil
}

func (r *Repo) CreateItem(ctx context.Context, it domain.MenuItem) (domain.MenuItem, error) {
	var one int
	err := r.db.QueryRowContext(ctx, r.rebind(restaurantExistsSQL), it.RestaurantID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.MenuItem{}, fmt.Errorf("restaurant %d: %w", it.RestaurantID, domain.ErrNotFound)
	}
	if err != nil {
		return domain.MenuItem{}, err
	}
	if it.CreatedAt.IsZero() {
		it.CreatedAt = r.now()
	}
	id, err := r.insert(ctx, insertItemSQL,
		it.RestaurantID,
		it.Name,
		it.Description,
		it.Price.Cents(),
		it.Currency,
		it.IsSignature,
		tagsJSON(it.RegionTags),
		tagsJSON(it.FlavorTags),
		it.CreatedAt,
	)
	if err != nil {
		return domain.MenuItem{}, fmt.Errorf("insert item: %w", err)
	}
	it.ID = id
	return it, nil
}

func (r *Repo) Reset(ctx context.Context) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()
	// order matters (FK)
	if _, err := tx.ExecContext(ctx, deleteItemsSQL); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, deleteRestaurantsSQL); err != nil {
		return err
	}
	return tx.Commit()
}

type scanner interface{ Scan(dest ...any) error }

func scanRestaurant(s scanner) (domain.Restaurant, error) {
	var rs domain.Restaurant
	err := s.Scan(&rs.ID, &rs.Name, &rs.City, &rs.CuisineHint, &rs.CreatedAt)
	rs.CreatedAt = rs.CreatedAt.UTC()
	return rs, err
}

func (r *Repo) GetRestaurant(ctx context.Context, id int64) (domain.Restaurant, error) {
	rs, err := scanRestaurant(r.db.QueryRowContext(ctx, r.rebind(getRestaurantSQL), id))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Restaurant{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.Restaurant{}, err
	}
	return rs, nil
}

func (r *Repo) ListRestaurants(ctx context.Context) ([]domain.Restaurant, error) {
	rows, err := r.db.QueryContext(ctx, listRestaurantsSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.Restaurant{}
	for rows.Next() {
		rs, err := scanRestaurant(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rs)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	domain.SortRestaurants(out)
	return out, nil
}

func (r *Repo) ListItems(ctx context.Context) ([]domain.MenuItem, error) {
	rows, err := r.db.QueryContext(ctx, listItemsSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.MenuItem{}
	for rows.Next() {
		var (
			it               domain.MenuItem
			cents            int64
			regions, flavors string
		)
		if err := rows.Scan(
			&it.ID,
			&it.RestaurantID,
			&it.Name,
			&it.Description,
			&cents,
			&it.Currency,
			&it.IsSignature,
			&regions,
			&flavors,
			&it.CreatedAt,
		); err != nil {
			return nil, err
		}
		it.Price = domain.Price(cents)
		it.Currency = strings.TrimSpace(it.Currency)
		it.CreatedAt = it.CreatedAt.UTC()
		// Tag columns are best-effort; a corrupt value reads as no tags.
		_ = json.Unmarshal([]byte(regions), &it.RegionTags)
		_ = json.Unmarshal([]byte(flavors), &it.FlavorTags)
		out = append(out, it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	domain.SortItems(out)
	return out, nil
}
