package storefront

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"
)

// Keys under which the cart and the logged-in user are persisted.
const (
	KeyCartItems       = "cartItems"
	KeyUserInfo        = "userInfo"
	KeyShippingAddress = "shippingAddress"
	KeyPaymentMethod   = "paymentMethod"
)

// LocalStorage is a string-keyed store of JSON snapshots.
type LocalStorage interface {
	GetItem(key string) ([]byte, bool, error)
	SetItem(key string, value []byte) error
	RemoveItem(key string) error
}

// FileStorage keeps one <key>.json file per key in Dir.
type FileStorage struct {
	Dir string
}

func (f FileStorage) path(key string) string {
	return filepath.Join(f.Dir, key+".json")
}

func (f FileStorage) GetItem(key string) ([]byte, bool, error) {
	b, err := os.ReadFile(f.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errors.Wrapf(err, "read %s", key)
	}
	return b, true, nil
}

// SetItem replaces the file through a rename so readers never see a partial
// snapshot.
func (f FileStorage) SetItem(key string, value []byte) error {
	if err := os.MkdirAll(f.Dir, 0o755); err != nil {
		return errors.Wrap(err, "create storage dir")
	}
	tmp, err := os.CreateTemp(f.Dir, key+".*.tmp")
	if err != nil {
		return errors.Wrapf(err, "write %s", key)
	}
	if _, err := tmp.Write(value); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return errors.Wrapf(err, "write %s", key)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return errors.Wrapf(err, "write %s", key)
	}
	return errors.Wrapf(os.Rename(tmp.Name(), f.path(key)), "write %s", key)
}

func (f FileStorage) RemoveItem(key string) error {
	err := os.Remove(f.path(key))
	if err == nil || errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return errors.Wrapf(err, "remove %s", key)
}

type MemoryStorage struct {
	mu    sync.Mutex
	items map[string][]byte
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{items: map[string][]byte{}}
}

func (m *MemoryStorage) GetItem(key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.items[key]
	return append([]byte(nil), b...), ok, nil
}

func (m *MemoryStorage) SetItem(key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[key] = append([]byte(nil), value...)
	return nil
}

func (m *MemoryStorage) RemoveItem(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, key)
	return nil
}
