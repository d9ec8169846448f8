package main

import (
	"fmt"

	"github.com/mort-network/gmort/common"
	"github.com/mort-network/gmort/internal/flags"
	"github.com/mort-network/gmort/sysaction"
	"github.com/urfave/cli/v2"
)

var (
	rateFlag = &cli.Uint64Flag{
		Name:     "bps",
		Usage:    "Yield rate in basis points",
		Category: flags.StakingCategory,
	}
	enabledFlag = &cli.BoolFlag{
		Name:     "enabled",
		Usage:    "Flag value to set",
		Category: flags.StakingCategory,
	}
)

var stakeCommand = &cli.Command{
	Name:   "stake",
	Usage:  "Stake principal",
	Flags:  []cli.Flag{amountFlag},
	Action: func(ctx *cli.Context) error {
		return runAction(ctx, sysaction.ActionStake, &sysaction.StakePayload{Amount: ctx.Uint64(amountFlag.Name)})
	},
}

var unstakeCommand = &cli.Command{
	Name:   "unstake",
	Usage:  "Withdraw staked principal plus settled rewards",
	Flags:  []cli.Flag{amountFlag},
	Action: func(ctx *cli.Context) error {
		return runAction(ctx, sysaction.ActionUnstake, &sysaction.UnstakePayload{Amount: ctx.Uint64(amountFlag.Name)})
	},
}

var compoundCommand = &cli.Command{
	Name:   "compound",
	Usage:  "Fold pending rewards into the staked principal",
	Action: func(ctx *cli.Context) error {
		return runAction(ctx, sysaction.ActionCompound, nil)
	},
}

var claimCommand = &cli.Command{
	Name:   "claim",
	Usage:  "Pay out pending rewards",
	Action: func(ctx *cli.Context) error {
		return runAction(ctx, sysaction.ActionClaimRewards, nil)
	},
}

var delegateCommand = &cli.Command{
	Name:   "delegate",
	Usage:  "Delegate staked principal to another address",
	Flags:  []cli.Flag{toFlag, amountFlag},
	Action: func(ctx *cli.Context) error {
		if !common.IsHexAddress(ctx.String(toFlag.Name)) {
			return fmt.Errorf("--to must be a hex address")
		}
		return runAction(ctx, sysaction.ActionDelegate, &sysaction.DelegatePayload{
			Delegatee: common.HexToAddress(ctx.String(toFlag.Name)),
			Amount:    ctx.Uint64(amountFlag.Name),
		})
	},
}

var autoCompoundCommand = &cli.Command{
	Name:   "autocompound",
	Usage:  "Toggle reward auto-compounding",
	Flags:  []cli.Flag{enabledFlag},
	Action: func(ctx *cli.Context) error {
		return runAction(ctx, sysaction.ActionSetAutoCompound, &sysaction.SetAutoCompoundPayload{Enabled: ctx.Bool(enabledFlag.Name)})
	},
}

var setRateCommand = &cli.Command{
	Name:   "set-rate",
	Usage:  "Update the pool yield rate (authority only)",
	Flags:  []cli.Flag{rateFlag},
	Action: func(ctx *cli.Context) error {
		return runAction(ctx, sysaction.ActionUpdateYieldRate, &sysaction.UpdateYieldRatePayload{RateBPS: ctx.Uint64(rateFlag.Name)})
	},
}

var emergencyWithdrawCommand = &cli.Command{
	Name:   "emergency-withdraw",
	Usage:  "Withdraw immediately at a penalty, bypassing the pause flag",
	Flags:  []cli.Flag{amountFlag},
	Action: func(ctx *cli.Context) error {
		return runAction(ctx, sysaction.ActionEmergencyWithdraw, &sysaction.EmergencyWithdrawPayload{Amount: ctx.Uint64(amountFlag.Name)})
	},
}

var pauseCommand = &cli.Command{
	Name:   "pause",
	Usage:  "Set the protocol pause flag (authority only)",
	Flags:  []cli.Flag{enabledFlag},
	Action: func(ctx *cli.Context) error {
		return runAction(ctx, sysaction.ActionSetPaused, &sysaction.SetPausedPayload{Paused: ctx.Bool(enabledFlag.Name)})
	},
}
