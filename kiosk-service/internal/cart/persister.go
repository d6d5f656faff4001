package cart

import (
	"context"
	"sync"
	"time"

	"github.com/VidhyaES/scanova-ai-self-checkout/kiosk-service/internal/storage"
	"go.uber.org/zap"
)

const saveTimeout = 5 * time.Second

// persister writes snapshots in the background. Only the latest pending snapshot is written.
type persister struct {
	store storage.SnapshotStore
	log   *zap.Logger

	mu      sync.Mutex
	pending []byte
	dirty   bool

	wake     chan struct{}
	stop     chan struct{}
	done     chan struct{}
	stopOnce sync.Once
}

func newPersister(store storage.SnapshotStore, log *zap.Logger) *persister {
	p := &persister{
		store: store,
		log:   log,
		wake:  make(chan struct{}, 1),
		stop:  make(chan struct{}),
		done:  make(chan struct{}),
	}
	go p.run()
	return p
}

func (p *persister) enqueue(data []byte) {
	p.mu.Lock()
	p.pending = data
	p.dirty = true
	p.mu.Unlock()

	select {
	case p.wake <- struct{}{}:
	default:
	}
}

func (p *persister) run() {
	defer close(p.done)
	for {
		select {
		case <-p.wake:
			p.flush()
		case <-p.stop:
			p.flush()
			return
		}
	}
}

func (p *persister) flush() {
	p.mu.Lock()
	if !p.dirty {
		p.mu.Unlock()
		return
	}
	data := p.pending
	p.dirty = false
	p.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
	defer cancel()
	if err := p.store.Save(ctx, SnapshotKey, data); err != nil {
		p.log.Warn("cart snapshot save failed", zap.Error(err))
	}
}

// close writes whatever is pending and stops the writer.
func (p *persister) close(ctx context.Context) error {
	p.stopOnce.Do(func() { close(p.stop) })
	select {
	case <-p.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
