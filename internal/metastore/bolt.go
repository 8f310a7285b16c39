package metastore

import (
	"context"
	"encoding/binary"

	"go.etcd.io/bbolt"
)

var (
	layoutsBucket   = []byte("layouts")
	schemasBucket   = []byte("schemas")
	schemaIDsBucket = []byte("schema_ids")
	systemBucket    = []byte("system")
)

// boltBackend keeps one nested bucket per table under layouts, keyed by big endian layout id.
type boltBackend struct {
	db *bbolt.DB
}

func openBolt(path string) (*boltBackend, error) {
	db, err := bbolt.Open(path, 0644, nil)
	if err != nil {
		return nil, err
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		for _, name := range [][]byte{layoutsBucket, schemasBucket, schemaIDsBucket,
			systemBucket} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}
	return &boltBackend{db: db}, nil
}

func encodeID(id uint64) []byte {
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, id)
	return buf
}

func (b *boltBackend) appendLayout(ctx context.Context, table string, id uint64,
	data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return b.db.Update(func(tx *bbolt.Tx) error {
		bkt, err := tx.Bucket(layoutsBucket).CreateBucketIfNotExists([]byte(table))
		if err != nil {
			return err
		}
		if last, _ := bkt.Cursor().Last(); last != nil {
			if latest := binary.BigEndian.Uint64(last); latest >= id {
				return staleLayout(table, id, latest)
			}
		}
		return bkt.Put(encodeID(id), data)
	})
}

func (b *boltBackend) layouts(ctx context.Context, table string, limit int) ([][]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var out [][]byte
	err := b.db.View(func(tx *bbolt.Tx) error {
		bkt := tx.Bucket(layoutsBucket).Bucket([]byte(table))
		if bkt == nil {
			return nil
		}
		cr := bkt.Cursor()
		for k, v := cr.Last(); k != nil; k, v = cr.Prev() {
			out = append(out, append([]byte(nil), v...))
			if limit > 0 && len(out) == limit {
				break
			}
		}
		return nil
	})
	return out, err
}

func (b *boltBackend) tables(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var out []string
	err := b.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(layoutsBucket).ForEachBucket(func(k []byte) error {
			out = append(out, string(k))
			return nil
		})
	})
	return out, err
}

func (b *boltBackend) deleteTable(ctx context.Context, table string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	found := false
	err := b.db.Update(func(tx *bbolt.Tx) error {
		bkt := tx.Bucket(layoutsBucket)
		if bkt.Bucket([]byte(table)) == nil {
			return nil
		}
		found = true
		return bkt.DeleteBucket([]byte(table))
	})
	return found, err
}

func (b *boltBackend) registerSchema(ctx context.Context, schema string) (uint64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	var id uint64
	err := b.db.Update(func(tx *bbolt.Tx) error {
		schemas := tx.Bucket(schemasBucket)
		if v := schemas.Get([]byte(schema)); v != nil {
			id = binary.BigEndian.Uint64(v)
			return nil
		}

		ids := tx.Bucket(schemaIDsBucket)
		next, err := ids.NextSequence()
		if err != nil {
			return err
		}
		id = next
		if err := schemas.Put([]byte(schema), encodeID(id)); err != nil {
			return err
		}
		return ids.Put(encodeID(id), []byte(schema))
	})
	return id, err
}

func (b *boltBackend) schema(ctx context.Context, id uint64) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	var (
		s  string
		ok bool
	)
	err := b.db.View(func(tx *bbolt.Tx) error {
		if v := tx.Bucket(schemaIDsBucket).Get(encodeID(id)); v != nil {
			s, ok = string(v), true
		}
		return nil
	})
	return s, ok, err
}

func (b *boltBackend) property(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	var (
		value string
		ok    bool
	)
	err := b.db.View(func(tx *bbolt.Tx) error {
		if v := tx.Bucket(systemBucket).Get([]byte(key)); v != nil {
			value, ok = string(v), true
		}
		return nil
	})
	return value, ok, err
}

func (b *boltBackend) setProperty(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return b.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(systemBucket).Put([]byte(key), []byte(value))
	})
}

func (b *boltBackend) close() error {
	return b.db.Close()
}
