package treasury

import (
	"fmt"

	"github.com/mort-network/gmort/sysaction"
)

func init() {
	sysaction.DefaultRegistry.Register(&treasuryHandler{})
}

// treasuryHandler implements sysaction.Handler for treasury actions.
type treasuryHandler struct{}

func (h *treasuryHandler) CanHandle(kind sysaction.ActionKind) bool {
	return kind == sysaction.ActionTreasuryWithdraw || kind == sysaction.ActionTreasuryDeposit
}

func (h *treasuryHandler) Handle(ctx *sysaction.Context, sa *sysaction.SysAction) error {
	switch sa.Action {
	case sysaction.ActionTreasuryWithdraw:
		var p sysaction.TreasuryWithdrawPayload
		if err := sysaction.DecodePayload(sa, &p); err != nil {
			return fmt.Errorf("treasury withdraw: %w", err)
		}
		return Withdraw(ctx.DB, ctx.Mover, p.Amount, p.Destination, p.Signers, ctx.Now)

	case sysaction.ActionTreasuryDeposit:
		var p sysaction.TreasuryDepositPayload
		if err := sysaction.DecodePayload(sa, &p); err != nil {
			return fmt.Errorf("treasury deposit: %w", err)
		}
		return Deposit(ctx.DB, ctx.Mover, ctx.From, p.Amount)
	}
	return fmt.Errorf("treasury handler: unsupported action %q", sa.Action)
}
