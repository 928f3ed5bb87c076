// Package bolt implements domain.CatalogRepository on bbolt (embedded B+ tree).
// Restaurants and items live in two top-level buckets keyed by a big-endian
// sequence id; values are JSON documents. Item creation checks the owning
// restaurant inside the same write transaction.
package bolt

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	bolt "go.etcd.io/bbolt"

	"menu_agent/internal/domain"
)

var (
	bucketRestaurants = []byte("restaurants")
	bucketItems       = []byte("items")
)

type Store struct {
	db  *bolt.DB
	now func() time.Time
}

// NewStore opens (or creates) a bbolt database at the given path.
func NewStore(path string) (*Store, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("bbolt open: %w", err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		for _, b := range [][]byte{bucketRestaurants, bucketItems} {
			if _, err := tx.CreateBucketIfNotExists(b); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("bbolt init buckets: %w", err)
	}
	return &Store{db: db, now: func() time.Time { return time.Now().UTC() }}, nil
}

// Close closes the underlying bbolt database.
func (s *Store) Close() error {
	return s.db.Close()
}

func itob(id int64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, uint64(id))
	return b
}

func (s *Store) CreateRestaurant(ctx context.Context, r domain.Restaurant) (domain.Restaurant, error) {
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketRestaurants)
		seq, err := b.NextSequence()
		if err != nil {
			return err
		}
		r.ID = int64(seq)
		if r.CreatedAt.IsZero() {
			r.CreatedAt = s.now()
		}
		v, err := json.Marshal(r)
		if err != nil {
			return fmt.Errorf("marshal restaurant: %w", err)
		}
		return b.Put(itob(r.ID), v)
	})
	if err != nil {
		return domain.Restaurant{}, err
	}
	return r, nil
}

func (s *Store) CreateItem(ctx context.Context, it domain.MenuItem) (domain.MenuItem, error) {
	err := s.db.Update(func(tx *bolt.Tx) error {
		if tx.Bucket(bucketRestaurants).Get(itob(it.RestaurantID)) == nil {
			return fmt.Errorf("restaurant %d: %w", it.RestaurantID, domain.ErrNotFound)
		}
		b := tx.Bucket(bucketItems)
		seq, err := b.NextSequence()
		if err != nil {
			return err
		}
		it.ID = int64(seq)
		if it.CreatedAt.IsZero() {
			it.CreatedAt = s.now()
		}
		v, err := json.Marshal(it)
		if err != nil {
			return fmt.Errorf("marshal item: %w", err)
		}
		return b.Put(itob(it.ID), v)
	})
	if err != nil {
		return domain.MenuItem{}, err
	}
	return it, nil
}

// Reset drops and recreates both buckets. Sequences restart from 1.
func (s *Store) Reset(ctx context.Context) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		for _, name := range [][]byte{bucketItems, bucketRestaurants} {
			if err := tx.DeleteBucket(name); err != nil && !errors.Is(err, bolt.ErrBucketNotFound) {
				return err
			}
			if _, err := tx.CreateBucket(name); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *Store) GetRestaurant(ctx context.Context, id int64) (domain.Restaurant, error) {
	var r domain.Restaurant
	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(bucketRestaurants).Get(itob(id))
		if v == nil {
			return domain.ErrNotFound
		}
		// json.Unmarshal copies, so v may be released with the tx.
		return json.Unmarshal(v, &r)
	})
	return r, err
}

func (s *Store) ListRestaurants(ctx context.Context) ([]domain.Restaurant, error) {
	out := []domain.Restaurant{}
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketRestaurants).ForEach(func(k, v []byte) error {
			var r domain.Restaurant
			if err := json.Unmarshal(v, &r); err != nil {
				return fmt.Errorf("unmarshal restaurant %d: %w", binary.BigEndian.Uint64(k), err)
			}
			out = append(out, r)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	domain.SortRestaurants(out)
	return out, nil
}

func (s *Store) ListItems(ctx context.Context) ([]domain.MenuItem, error) {
	out := []domain.MenuItem{}
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketItems).ForEach(func(k, v []byte) error {
			var it domain.MenuItem
			if err := json.Unmarshal(v, &it); err != nil {
				return fmt.Errorf("unmarshal item %d: %w", binary.BigEndian.Uint64(k), err)
			}
			out = append(out, it)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	domain.SortItems(out)
	return out, nil
}
