package db

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/dgraph-io/badger"
	"github.com/dgraph-io/badger/options"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/mxpv/codetracker/pkg/model"
)

const (
	versionPath    = "codetracker/version"
	bookmarkPrefix = "bookmark/"
	bookmarkPath   = "bookmark/%s" // Contest key
)

// BadgerConfig represents BadgerDB configuration parameters
type BadgerConfig struct {
	Truncate bool `toml:"truncate"`
	FileIO   bool `toml:"file_io"`
}

type Badger struct {
	db *badger.DB
}

var _ Storage = (*Badger)(nil)

func NewBadger(config *Config) (*Badger, error) {
	var (
		dir = config.Dir
	)

	log.Infof("opening database %q", dir)

	// Make sure database directory exists
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, errors.Wrap(err, "could not mkdir database dir")
	}

	opts := badger.DefaultOptions(dir).
		WithLogger(log.StandardLogger()).
		WithTruncate(true)

	if config.Badger != nil {
		opts.Truncate = config.Badger.Truncate
		if config.Badger.FileIO {
			opts.ValueLogLoadingMode = options.FileIO
		}
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open database")
	}

	storage := &Badger{db: db}

	if err := db.Update(func(txn *badger.Txn) error {
		if err := storage.setObj(txn, []byte(versionPath), CurrentVersion, false); err != nil && err != model.ErrAlreadyExists {
			return err
		}
		return nil
	}); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "failed to read database version")
	}

	return storage, nil
}

func (b *Badger) Close() error {
	log.Debug("closing database")
	return b.db.Close()
}

func (b *Badger) Version() (int, error) {
	var (
		version = -1
	)

	err := b.db.View(func(txn *badger.Txn) error {
		return b.getObj(txn, []byte(versionPath), &version)
	})

	return version, err
}

func (b *Badger) AddBookmark(_ context.Context, contest *model.Contest) error {
	if contest == nil || contest.Title == "" {
		return errors.New("contest title is required")
	}

	saved := *contest
	saved.IsBookmarked = true

	return b.db.Update(func(txn *badger.Txn) error {
		key := b.getKey(bookmarkPath, contest.Key())
		return b.setObj(txn, key, &saved, false)
	})
}

func (b *Badger) GetBookmark(_ context.Context, key string) (*model.Contest, error) {
	var (
		contest = model.Contest{}
		path    = b.getKey(bookmarkPath, key)
	)

	if err := b.db.View(func(txn *badger.Txn) error {
		return b.getObj(txn, path, &contest)
	}); err != nil {
		return nil, err
	}

	return &contest, nil
}

func (b *Badger) DeleteBookmark(_ context.Context, key string) error {
	path := b.getKey(bookmarkPath, key)

	return b.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(path); err != nil {
			if err == badger.ErrKeyNotFound {
				return model.ErrNotFound
			}
			return errors.Wrap(err, "failed to check whether bookmark exists")
		}

		if err := txn.Delete(path); err != nil {
			return errors.Wrapf(err, "failed to delete bookmark %q", key)
		}

		return nil
	})
}

func (b *Badger) WalkBookmarks(_ context.Context, cb func(contest *model.Contest) error) error {
	return b.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = b.getKey(bookmarkPrefix)
		opts.PrefetchValues = true
		return b.iterator(txn, opts, func(item *badger.Item) error {
			contest := &model.Contest{}
			if err := b.unmarshalObj(item, contest); err != nil {
				return err
			}

			return cb(contest)
		})
	})
}

func (b *Badger) iterator(txn *badger.Txn, opts badger.IteratorOptions, callback func(item *badger.Item) error) error {
	iter := txn.NewIterator(opts)
	defer iter.Close()

	for iter.Rewind(); iter.Valid(); iter.Next() {
		item := iter.Item()

		if err := callback(item); err != nil {
			return err
		}
	}

	return nil
}

func (b *Badger) getKey(format string, a ...interface{}) []byte {
	resourcePath := fmt.Sprintf(format, a...)
	fullPath := fmt.Sprintf("codetracker/v%d/%s", CurrentVersion, resourcePath)

	return []byte(fullPath)
}

func (b *Badger) setObj(txn *badger.Txn, key []byte, obj interface{}, overwrite bool) error {
	if !overwrite {
		// Overwrites are not allowed, make sure there is no object with the given key
		_, err := txn.Get(key)
		if err == nil {
			return model.ErrAlreadyExists
		} else if err != badger.ErrKeyNotFound {
			return errors.Wrap(err, "failed to check whether key exists")
		}
	}

	data, err := b.marshalObj(obj)
	if err != nil {
		return errors.Wrapf(err, "failed to serialize object for key %q", key)
	}

	return txn.Set(key, data)
}

func (b *Badger) getObj(txn *badger.Txn, key []byte, out interface{}) error {
	item, err := txn.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return model.ErrNotFound
		}

		return err
	}

	return b.unmarshalObj(item, out)
}

func (b *Badger) marshalObj(obj interface{}) ([]byte, error) {
	return json.Marshal(obj)
}

func (b *Badger) unmarshalObj(item *badger.Item, out interface{}) error {
	return item.Value(func(val []byte) error {
		return json.Unmarshal(val, out)
	})
}
