package sysaction

import (
	"fmt"

	"github.com/mort-network/gmort/common"
	"github.com/mort-network/gmort/log"
	"github.com/mort-network/gmort/mortdb"
	"github.com/mort-network/gmort/mortdb/overlaydb"
	"github.com/mort-network/gmort/transfer"
)

// Context carries information available to a system-action handler. DB is
// an operation-scoped overlay: handler writes become visible to the backing
// store only if the whole action succeeds.
type Context struct {
	From  common.Address
	Now   int64
	DB    mortdb.KeyValueStore
	Mover transfer.Mover
}

// Handler is implemented by each subsystem (staking, bonding, withdrawq,
// treasury, governance).
type Handler interface {
	CanHandle(kind ActionKind) bool
	Handle(ctx *Context, sa *SysAction) error
}

// Registry holds registered handlers.
type Registry struct{ handlers []Handler }

// DefaultRegistry is the process-wide handler registry. Subsystems register
// from their handler.go init().
var DefaultRegistry = &Registry{}

// Register adds a handler to the registry.
func (r *Registry) Register(h Handler) { r.handlers = append(r.handlers, h) }

// Execute decodes data, dispatches to a registered handler against a write
// overlay of store, and commits the overlay on success. A failing handler
// leaves store untouched.
func Execute(store mortdb.KeyValueStore, mover transfer.Mover, from common.Address, now int64, data []byte) error {
	sa, err := Decode(data)
	if err != nil {
		return err
	}
	overlay := overlaydb.New(store)
	defer overlay.Close()

	ctx := &Context{From: from, Now: now, DB: overlay, Mover: mover}
	if err := ExecuteWithContext(ctx, sa); err != nil {
		log.Debug("System action rejected", "action", sa.Action, "from", from, "err", err)
		return err
	}
	if err := overlay.Commit(); err != nil {
		return fmt.Errorf("sysaction: commit %s: %w", sa.Action, err)
	}
	log.Trace("System action applied", "action", sa.Action, "from", from)
	return nil
}

// ExecuteWithContext dispatches a decoded action using a pre-built Context.
// Callers own the atomicity of ctx.DB.
func ExecuteWithContext(ctx *Context, sa *SysAction) error {
	for _, h := range DefaultRegistry.handlers {
		if h.CanHandle(sa.Action) {
			return h.Handle(ctx, sa)
		}
	}
	return fmt.Errorf("unknown system action: %q", sa.Action)
}
