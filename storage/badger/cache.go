package badger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/essaysearch/core"
	"github.com/poiesic/essaysearch/storage"
)

// ResponseCache implements storage.ResponseCache for BadgerDB.
// Expiry is delegated to badger entry TTLs.
type ResponseCache struct {
	backend *Backend
}

var _ storage.ResponseCache = (*ResponseCache)(nil)

// NewResponseCache creates a new ResponseCache on top of backend.
func NewResponseCache(backend *Backend) (*ResponseCache, error) {
	if backend == nil {
		return nil, errors.New("backend is required")
	}
	return &ResponseCache{
		backend: backend,
	}, nil
}

// Close releases resources. The backend is owned by the caller.
func (c *ResponseCache) Close() error {
	return nil
}

// Get retrieves a cached response.
func (c *ResponseCache) Get(ctx context.Context, key core.ID) (*core.SearchResponse, error) {
	if c.backend.IsClosed() {
		return nil, storage.ErrStorageClosed
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var resp *core.SearchResponse
	err := c.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeResponseKey(key))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return storage.ErrNotFound
			}
			return err
		}
		return item.Value(func(val []byte) error {
			var unmarshalErr error
			resp, unmarshalErr = storage.UnmarshalSearchResponse(val)
			return unmarshalErr
		})
	}, false)
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// Put stores a response until ttl elapses.
func (c *ResponseCache) Put(ctx context.Context, key core.ID, resp *core.SearchResponse, ttl time.Duration) error {
	if ttl <= 0 {
		return fmt.Errorf("%w: %s", storage.ErrInvalidTTL, ttl)
	}
	if resp == nil {
		return fmt.Errorf("%w: nil response", storage.ErrSerializationFailed)
	}
	if c.backend.IsClosed() {
		return storage.ErrStorageClosed
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	return c.backend.WithTx(func(tx *badger.Txn) error {
		entry := badger.NewEntry(makeResponseKey(key), storage.MarshalSearchResponse(resp)).WithTTL(ttl)
		if err := tx.SetEntry(entry); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}
