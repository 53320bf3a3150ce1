package boltstore

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aaravmahajanofficial/storefront/internal/storage"
	bolt "go.etcd.io/bbolt"
)

var bucketName = []byte("storefront")

type boltStore struct {
	db *bolt.DB
}

// Open creates or opens the durable local store file. The file is locked
// for the lifetime of the store.
func Open(path string) (storage.Store, error) {

	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open store %s: %w", path, err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketName)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create bucket: %w", err)
	}

	return &boltStore{db: db}, nil
}

func (b *boltStore) Get(ctx context.Context, key string, value any) (bool, error) {

	var data []byte

	err := b.db.View(func(tx *bolt.Tx) error {
		if v := tx.Bucket(bucketName).Get([]byte(key)); v != nil {
			data = append([]byte(nil), v...)
		}
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("failed to get key %s: %w", key, err)
	}

	if data == nil {
		return false, nil
	}

	if err := json.Unmarshal(data, value); err != nil {
		return false, fmt.Errorf("failed to unmarshal data for key %s: %w", key, err)
	}

	return true, nil
}

func (b *boltStore) Set(ctx context.Context, key string, value any) error {
	return b.Commit(ctx, storage.Op{Key: key, Value: value})
}

func (b *boltStore) Delete(ctx context.Context, key string) error {
	return b.Commit(ctx, storage.Op{Key: key})
}

func (b *boltStore) Commit(ctx context.Context, ops ...storage.Op) error {

	if err := ctx.Err(); err != nil {
		return err
	}

	encoded := make([][]byte, len(ops))
	for i, op := range ops {
		if op.Value == nil {
			continue
		}

		data, err := json.Marshal(op.Value)
		if err != nil {
			return fmt.Errorf("failed to marshal value for key %s: %w", op.Key, err)
		}
		encoded[i] = data
	}

	err := b.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(bucketName)
		for i, op := range ops {
			if op.Value == nil {
				if err := bucket.Delete([]byte(op.Key)); err != nil {
					return err
				}
				continue
			}
			if err := bucket.Put([]byte(op.Key), encoded[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to commit %d keys: %w", len(ops), err)
	}

	return nil
}

func (b *boltStore) Close() error {
	return b.db.Close()
}
