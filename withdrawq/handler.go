package withdrawq

import (
	"fmt"

	"github.com/mort-network/gmort/sysaction"
)

func init() {
	sysaction.DefaultRegistry.Register(&queueHandler{})
}

// queueHandler implements sysaction.Handler for withdrawal queue actions.
type queueHandler struct{}

func (h *queueHandler) CanHandle(kind sysaction.ActionKind) bool {
	switch kind {
	case sysaction.ActionWithdrawEnqueue,
		sysaction.ActionWithdrawProcess,
		sysaction.ActionWithdrawSetPaused:
		return true
	}
	return false
}

func (h *queueHandler) Handle(ctx *sysaction.Context, sa *sysaction.SysAction) error {
	switch sa.Action {
	case sysaction.ActionWithdrawEnqueue:
		var p sysaction.WithdrawEnqueuePayload
		if err := sysaction.DecodePayload(sa, &p); err != nil {
			return fmt.Errorf("withdraw enqueue: %w", err)
		}
		_, err := Enqueue(ctx.DB, ctx.From, p.Amount, ctx.Now)
		return err

	case sysaction.ActionWithdrawProcess:
		_, err := ProcessBatch(ctx.DB, ctx.Mover, ctx.From, ctx.Now)
		return err

	case sysaction.ActionWithdrawSetPaused:
		var p sysaction.SetPausedPayload
		if err := sysaction.DecodePayload(sa, &p); err != nil {
			return fmt.Errorf("withdraw set paused: %w", err)
		}
		return SetPaused(ctx.DB, ctx.From, p.Paused)
	}
	return fmt.Errorf("withdrawq handler: unsupported action %q", sa.Action)
}
