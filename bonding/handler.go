package bonding

import (
	"fmt"

	"github.com/mort-network/gmort/sysaction"
)

func init() {
	sysaction.DefaultRegistry.Register(&bondingHandler{})
}

// bondingHandler implements sysaction.Handler for bond vault actions.
type bondingHandler struct{}

func (h *bondingHandler) CanHandle(kind sysaction.ActionKind) bool {
	return kind == sysaction.ActionBondCreate || kind == sysaction.ActionBondClaim
}

func (h *bondingHandler) Handle(ctx *sysaction.Context, sa *sysaction.SysAction) error {
	switch sa.Action {
	case sysaction.ActionBondCreate:
		var p sysaction.BondCreatePayload
		if err := sysaction.DecodePayload(sa, &p); err != nil {
			return fmt.Errorf("bond create: %w", err)
		}
		class, err := ParseBondClass(p.Class)
		if err != nil {
			return err
		}
		_, err = CreateBond(ctx.DB, ctx.Mover, ctx.From, class, p.Amount, ctx.Now)
		return err

	case sysaction.ActionBondClaim:
		var p sysaction.BondClaimPayload
		if err := sysaction.DecodePayload(sa, &p); err != nil {
			return fmt.Errorf("bond claim: %w", err)
		}
		return ClaimBond(ctx.DB, ctx.Mover, ctx.From, p.Seq, ctx.Now)
	}
	return fmt.Errorf("bonding handler: unsupported action %q", sa.Action)
}
