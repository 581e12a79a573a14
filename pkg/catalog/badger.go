package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"

	"github.com/dgraph-io/badger/v4"
)

// Key layout:
//
//	r/<id>                 record JSON
//	c/<canonical>          id
//	t/<table key>\x00<id>  empty
var (
	recordPrefix    = []byte("r/")
	canonicalPrefix = []byte("c/")
	tablePrefix     = []byte("t/")
)

// BadgerStore is an embedded on-disk catalog.
type BadgerStore struct {
	db *badger.DB
}

// OpenBadger opens (creating if needed) a catalog directory. An empty path
// opens an in-memory database.
func OpenBadger(path string) (*BadgerStore, error) {
	opts := badger.DefaultOptions(path).WithLogger(nil)
	if path == "" {
		opts = opts.WithInMemory(true)
	}
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger %q: %w", path, err)
	}
	return &BadgerStore{db: db}, nil
}

func recordKey(id string) []byte { return append(slices.Clone(recordPrefix), id...) }

func canonicalKey(c string) []byte { return append(slices.Clone(canonicalPrefix), c...) }

func tableKeyPrefix(key string) []byte {
	k := append(slices.Clone(tablePrefix), key...)
	return append(k, 0)
}

func tableIndexKey(key, id string) []byte { return append(tableKeyPrefix(key), id...) }

func (s *BadgerStore) Put(_ context.Context, r *Record) error {
	val, err := json.Marshal(r)
	if err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		old, err := getRecord(txn, r.ID)
		switch {
		case err == nil:
			if err := txn.Delete(canonicalKey(old.Canonical)); err != nil {
				return err
			}
			if err := txn.Delete(tableIndexKey(old.TableKey, old.ID)); err != nil {
				return err
			}
		case !errors.Is(err, ErrNotFound):
			return err
		}
		if err := txn.Set(recordKey(r.ID), val); err != nil {
			return err
		}
		if err := txn.Set(canonicalKey(r.Canonical), []byte(r.ID)); err != nil {
			return err
		}
		return txn.Set(tableIndexKey(r.TableKey, r.ID), nil)
	})
}

func getRecord(txn *badger.Txn, id string) (*Record, error) {
	item, err := txn.Get(recordKey(id))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	var r Record
	err = item.Value(func(val []byte) error {
		return json.Unmarshal(val, &r)
	})
	if err != nil {
		return nil, fmt.Errorf("decode record %s: %w", id, err)
	}
	return &r, nil
}

func (s *BadgerStore) Get(_ context.Context, id string) (*Record, error) {
	var r *Record
	err := s.db.View(func(txn *badger.Txn) error {
		var err error
		r, err = getRecord(txn, id)
		return err
	})
	return r, err
}

func (s *BadgerStore) FindByCanonical(_ context.Context, canonical string) (*Record, error) {
	var r *Record
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(canonicalKey(canonical))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		id, err := item.ValueCopy(nil)
		if err != nil {
			return err
		}
		r, err = getRecord(txn, string(id))
		return err
	})
	return r, err
}

func (s *BadgerStore) FindByTable(_ context.Context, key string) ([]*Record, error) {
	var out []*Record
	err := s.db.View(func(txn *badger.Txn) error {
		prefix := tableKeyPrefix(key)
		it := txn.NewIterator(badger.IteratorOptions{Prefix: prefix})
		defer it.Close()
		var ids []string
		for it.Rewind(); it.Valid(); it.Next() {
			ids = append(ids, string(it.Item().Key()[len(prefix):]))
		}
		for _, id := range ids {
			r, err := getRecord(txn, id)
			if err != nil {
				return err
			}
			out = append(out, r)
		}
		return nil
	})
	slices.SortFunc(out, compareRecords)
	return out, err
}

func (s *BadgerStore) List(_ context.Context, f Filter) ([]*Record, error) {
	var out []*Record
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = recordPrefix
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			var r Record
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &r)
			})
			if err != nil {
				return err
			}
			if f.match(&r) {
				out = append(out, &r)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	slices.SortFunc(out, compareRecords)
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

func (s *BadgerStore) Delete(_ context.Context, id string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		r, err := getRecord(txn, id)
		if errors.Is(err, ErrNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		for _, k := range [][]byte{recordKey(id), canonicalKey(r.Canonical), tableIndexKey(r.TableKey, id)} {
			if err := txn.Delete(k); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *BadgerStore) Close() error { return s.db.Close() }

var _ Store = (*BadgerStore)(nil)
