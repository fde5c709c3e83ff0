package youtube

import (
	"sync/atomic"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// KeyProvider hands out a YouTube API key for every request
type KeyProvider interface {
	Get() string
}

// NewKeyProvider picks a fixed key or round-robin rotation depending on how many keys are configured
func NewKeyProvider(keys []string) (KeyProvider, error) {
	for i, key := range keys {
		if key == "" {
			return nil, errors.Errorf("youtube key #%d is empty", i)
		}
	}

	if len(keys) == 0 {
		return nil, errors.New("at least one youtube key is required")
	}

	if len(keys) == 1 {
		return &FixedKeyProvider{key: keys[0]}, nil
	}

	return &RotatedKeyProvider{keys: append([]string(nil), keys...)}, nil
}

type FixedKeyProvider struct {
	key string
}

func NewFixedKey(key string) (*FixedKeyProvider, error) {
	if key == "" {
		return nil, errors.New("youtube key can't be empty")
	}

	return &FixedKeyProvider{key: key}, nil
}

func (p *FixedKeyProvider) Get() string {
	return p.key
}

// RotatedKeyProvider spreads playlist queries (and quota usage) over several keys
type RotatedKeyProvider struct {
	keys []string
	next uint64
}

func NewRotatedKeys(keys []string) (*RotatedKeyProvider, error) {
	if len(keys) < 2 {
		return nil, errors.Errorf("rotation needs at least 2 keys, got %d", len(keys))
	}

	return &RotatedKeyProvider{keys: append([]string(nil), keys...)}, nil
}

func (p *RotatedKeyProvider) Get() string {
	slot := int((atomic.AddUint64(&p.next, 1) - 1) % uint64(len(p.keys)))
	log.WithField("slot", slot).Debug("using youtube key")
	return p.keys[slot]
}
