package storefake

import (
	"sync"

	"github.com/jrsteele09/go-console-core/session"
)

var _ session.Store = (*FakeStore)(nil)

// FakeStore is an in-memory token store for tests.
type FakeStore struct {
	lock  sync.RWMutex
	token string
	err   error
}

func NewFakeStore() *FakeStore {
	return &FakeStore{}
}

// SetError makes every subsequent operation fail with err, simulating an
// unavailable storage backend. Pass nil to recover.
func (fs *FakeStore) SetError(err error) {
	fs.lock.Lock()
	defer fs.lock.Unlock()
	fs.err = err
}

func (fs *FakeStore) Save(token string) error {
	fs.lock.Lock()
	defer fs.lock.Unlock()

	if fs.err != nil {
		return fs.err
	}
	fs.token = token
	return nil
}

func (fs *FakeStore) Load() (string, error) {
	fs.lock.RLock()
	defer fs.lock.RUnlock()

	if fs.err != nil {
		return "", fs.err
	}
	return fs.token, nil
}

func (fs *FakeStore) Clear() error {
	fs.lock.Lock()
	defer fs.lock.Unlock()

	if fs.err != nil {
		return fs.err
	}
	fs.token = ""
	return nil
}
