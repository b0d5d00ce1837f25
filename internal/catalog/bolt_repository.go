package catalog

import (
	"context"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/mobileriadardania/storefront/internal/domain"
	"github.com/pkg/errors"
	bolt "go.etcd.io/bbolt"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var productsBucket = []byte(domain.CollectionName)

// BoltRepository stores products as JSON values in a single bbolt bucket
// keyed by their hex id. Hex ObjectIDs sort by creation time, so a cursor
// walk yields insertion order.
type BoltRepository struct {
	db *bolt.DB
}

var _ ProductRepository = (*BoltRepository)(nil)

// OpenBoltRepository opens (or creates) the database file and makes sure
// the products bucket exists.
func OpenBoltRepository(file string) (*BoltRepository, error) {
	db, err := bolt.Open(file, 0o600, &bolt.Options{Timeout: 3 * time.Second})
	if err != nil {
		return nil, errors.Wrapf(err, "open bolt database %s", file)
	}
	r := &BoltRepository{db: db}
	if err := r.Migrate(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return r, nil
}

func (r *BoltRepository) List(ctx context.Context) ([]domain.Product, error) {
	items := make([]domain.Product, 0)
	err := r.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(productsBucket)
		if b == nil {
			return nil
		}
		return b.ForEach(func(k, v []byte) error {
			var p domain.Product
			if err := json.Unmarshal(v, &p); err != nil {
				return errors.Wrapf(err, "decode product %s", k)
			}
			normalize(&p)
			items = append(items, p)
			return nil
		})
	})
	if err != nil {
		return nil, errors.Wrap(err, "list products")
	}
	return items, nil
}

func (r *BoltRepository) Get(ctx context.Context, id string) (domain.Product, error) {
	key, err := normalizeID(id)
	if err != nil {
		return domain.Product{}, err
	}
	var p domain.Product
	err = r.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(productsBucket)
		if b == nil {
			return ErrNotFound
		}
		v := b.Get([]byte(key))
		if v == nil {
			return ErrNotFound
		}
		return json.Unmarshal(v, &p)
	})
	if errors.Is(err, ErrNotFound) {
		return domain.Product{}, ErrNotFound
	}
	if err != nil {
		return domain.Product{}, errors.Wrapf(err, "get product %s", key)
	}
	normalize(&p)
	return p, nil
}

func (r *BoltRepository) Create(ctx context.Context, p domain.Product) (domain.Product, error) {
	p.ID = NewID()
	if err := r.put(p, false); err != nil {
		return domain.Product{}, errors.Wrap(err, "create product")
	}
	normalize(&p)
	return p, nil
}

func (r *BoltRepository) Replace(ctx context.Context, id string, p domain.Product) (domain.Product, error) {
	key, err := normalizeID(id)
	if err != nil {
		return domain.Product{}, ErrNotFound
	}
	p.ID = key
	err = r.put(p, true)
	if errors.Is(err, ErrNotFound) {
		return domain.Product{}, ErrNotFound
	}
	if err != nil {
		return domain.Product{}, errors.Wrapf(err, "replace product %s", key)
	}
	normalize(&p)
	return p, nil
}

func (r *BoltRepository) Delete(ctx context.Context, id string) error {
	key, err := normalizeID(id)
	if err != nil {
		return ErrNotFound
	}
	err = r.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(productsBucket)
		if b == nil || b.Get([]byte(key)) == nil {
			return ErrNotFound
		}
		return b.Delete([]byte(key))
	})
	if errors.Is(err, ErrNotFound) {
		return ErrNotFound
	}
	return errors.Wrapf(err, "delete product %s", key)
}

func (r *BoltRepository) put(p domain.Product, mustExist bool) error {
	data, err := json.Marshal(p)
	if err != nil {
		return err
	}
	return r.db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists(productsBucket)
		if err != nil {
			return err
		}
		if mustExist && b.Get([]byte(p.ID)) == nil {
			return ErrNotFound
		}
		return b.Put([]byte(p.ID), data)
	})
}

func (r *BoltRepository) Migrate(ctx context.Context) error {
	return r.db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(productsBucket)
		return errors.Wrap(err, "create products bucket")
	})
}

func (r *BoltRepository) Drop(ctx context.Context) error {
	err := r.db.Update(func(tx *bolt.Tx) error {
		if err := tx.DeleteBucket(productsBucket); err != nil && !errors.Is(err, bolt.ErrBucketNotFound) {
			return err
		}
		return nil
	})
	return errors.Wrap(err, "drop products bucket")
}

func (r *BoltRepository) Close() error {
	return r.db.Close()
}
