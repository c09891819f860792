package store

import (
	"encoding/json"
	"sync"

	"github.com/IgorVoidbot/loja-ia-storefront/internal/obs"
	"github.com/IgorVoidbot/loja-ia-storefront/internal/storage"
)

// baseContainer carries the pieces shared by both state containers: the
// mutex, the storage port, the blob name and the subscriber registry.
type baseContainer struct {
	mu      sync.Mutex
	storage storage.Storage
	blob    string
	subs    map[int]func()
	nextSub int
}

func newBaseContainer(st storage.Storage, blob string) baseContainer {
	return baseContainer{storage: st, blob: blob, subs: make(map[int]func())}
}

// Subscribe registers fn to run after every state transition. The returned
// function cancels the subscription.
func (b *baseContainer) Subscribe(fn func()) func() {
	b.mu.Lock()
	defer b.mu.Unlock()
	id := b.nextSub
	b.nextSub++
	b.subs[id] = fn
	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.subs, id)
	}
}

// persistLocked writes the snapshot through the storage port. A persistence
// failure is logged but never fails the mutation; the in-memory state is
// already the source of truth for this process.
func (b *baseContainer) persistLocked(snapshot any) {
	data, err := json.Marshal(snapshot)
	if err != nil {
		obs.Logger.Warn("state_snapshot_marshal_failed", "blob", b.blob, "error", err)
		return
	}
	if err := b.storage.Save(b.blob, data); err != nil {
		obs.Logger.Warn("state_persist_failed", "blob", b.blob, "error", err)
	}
}

// subscribersLocked snapshots the registry so callbacks run without the lock
// held and may re-enter the container.
func (b *baseContainer) subscribersLocked() []func() {
	out := make([]func(), 0, len(b.subs))
	for _, fn := range b.subs {
		out = append(out, fn)
	}
	return out
}

func notify(subs []func()) {
	for _, fn := range subs {
		fn()
	}
}
