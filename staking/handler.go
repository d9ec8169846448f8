package staking

import (
	"fmt"

	"github.com/mort-network/gmort/sysaction"
)

func init() {
	sysaction.DefaultRegistry.Register(&stakingHandler{})
}

// stakingHandler implements sysaction.Handler for staking ledger actions.
type stakingHandler struct{}

func (h *stakingHandler) CanHandle(kind sysaction.ActionKind) bool {
	switch kind {
	case sysaction.ActionStake,
		sysaction.ActionUnstake,
		sysaction.ActionCompound,
		sysaction.ActionClaimRewards,
		sysaction.ActionDelegate,
		sysaction.ActionSetAutoCompound,
		sysaction.ActionUpdateYieldRate,
		sysaction.ActionEmergencyWithdraw,
		sysaction.ActionSetPaused:
		return true
	}
	return false
}

func (h *stakingHandler) Handle(ctx *sysaction.Context, sa *sysaction.SysAction) error {
	switch sa.Action {
	case sysaction.ActionStake:
		var p sysaction.StakePayload
		if err := sysaction.DecodePayload(sa, &p); err != nil {
			return fmt.Errorf("stake: %w", err)
		}
		return Stake(ctx.DB, ctx.Mover, ctx.From, p.Amount, ctx.Now)

	case sysaction.ActionUnstake:
		var p sysaction.UnstakePayload
		if err := sysaction.DecodePayload(sa, &p); err != nil {
			return fmt.Errorf("unstake: %w", err)
		}
		return Unstake(ctx.DB, ctx.Mover, ctx.From, p.Amount, ctx.Now)

	case sysaction.ActionCompound:
		return Compound(ctx.DB, ctx.From, ctx.Now)

	case sysaction.ActionClaimRewards:
		return ClaimRewards(ctx.DB, ctx.Mover, ctx.From, ctx.Now)

	case sysaction.ActionDelegate:
		var p sysaction.DelegatePayload
		if err := sysaction.DecodePayload(sa, &p); err != nil {
			return fmt.Errorf("delegate: %w", err)
		}
		return Delegate(ctx.DB, ctx.From, p.Delegatee, p.Amount, ctx.Now)

	case sysaction.ActionSetAutoCompound:
		var p sysaction.SetAutoCompoundPayload
		if err := sysaction.DecodePayload(sa, &p); err != nil {
			return fmt.Errorf("set auto compound: %w", err)
		}
		return SetAutoCompound(ctx.DB, ctx.From, p.Enabled, ctx.Now)

	case sysaction.ActionUpdateYieldRate:
		var p sysaction.UpdateYieldRatePayload
		if err := sysaction.DecodePayload(sa, &p); err != nil {
			return fmt.Errorf("update yield rate: %w", err)
		}
		return UpdateYieldRate(ctx.DB, ctx.From, p.RateBPS, ctx.Now)

	case sysaction.ActionEmergencyWithdraw:
		var p sysaction.EmergencyWithdrawPayload
		if err := sysaction.DecodePayload(sa, &p); err != nil {
			return fmt.Errorf("emergency withdraw: %w", err)
		}
		return EmergencyWithdraw(ctx.DB, ctx.Mover, ctx.From, p.Amount, ctx.Now)

	case sysaction.ActionSetPaused:
		var p sysaction.SetPausedPayload
		if err := sysaction.DecodePayload(sa, &p); err != nil {
			return fmt.Errorf("set paused: %w", err)
		}
		return SetPaused(ctx.DB, ctx.From, p.Paused)
	}
	return fmt.Errorf("staking handler: unsupported action %q", sa.Action)
}
