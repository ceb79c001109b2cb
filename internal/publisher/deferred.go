package publisher

import (
	"context"
	"fmt"
	"sync"
)

// Deferred is a Publisher that gets its real implementation late. The
// Telegram publisher can only be built once the bot API is up, while the
// services depending on it are wired before that.
type Deferred struct {
	mu    sync.RWMutex
	inner Publisher
}

// NewDeferred returns an unbound publisher.
func NewDeferred() *Deferred {
	return &Deferred{}
}

// Bind installs the real publisher. Calls before Bind fail.
func (d *Deferred) Bind(p Publisher) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.inner = p
}

func (d *Deferred) get() (Publisher, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.inner == nil {
		return nil, fmt.Errorf("channel publisher not bound yet")
	}
	return d.inner, nil
}

func (d *Deferred) Publish(ctx context.Context, text string, photo *string) (int64, error) {
	p, err := d.get()
	if err != nil {
		return 0, err
	}
	return p.Publish(ctx, text, photo)
}

func (d *Deferred) Retract(ctx context.Context, messageID int64) error {
	p, err := d.get()
	if err != nil {
		return err
	}
	return p.Retract(ctx, messageID)
}
