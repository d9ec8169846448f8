package main

import (
	"fmt"
	"strings"

	"github.com/mort-network/gmort/common"
	"github.com/mort-network/gmort/internal/flags"
	"github.com/mort-network/gmort/sysaction"
	"github.com/mort-network/gmort/withdrawq"
	"github.com/urfave/cli/v2"
)

var (
	classFlag = &cli.StringFlag{
		Name:     "class",
		Usage:    "Bond class: short, medium or long",
		Category: flags.StakingCategory,
	}
	seqFlag = &cli.Uint64Flag{
		Name:     "seq",
		Usage:    "Bond sequence number",
		Category: flags.StakingCategory,
	}
	signersFlag = &cli.StringFlag{
		Name:     "signers",
		Usage:    "Comma-separated signer addresses",
		Category: flags.TreasuryCategory,
	}
)

var bondCommand = &cli.Command{
	Name:  "bond",
	Usage: "Manage fixed-term bonds",
	Subcommands: []*cli.Command{
		{
			Name:   "create",
			Usage:  "Lock principal in a new bond",
			Flags:  []cli.Flag{classFlag, amountFlag},
			Action: func(ctx *cli.Context) error {
				return runAction(ctx, sysaction.ActionBondCreate, &sysaction.BondCreatePayload{
					Class:  ctx.String(classFlag.Name),
					Amount: ctx.Uint64(amountFlag.Name),
				})
			},
		},
		{
			Name:   "claim",
			Usage:  "Claim a matured bond",
			Flags:  []cli.Flag{seqFlag},
			Action: func(ctx *cli.Context) error {
				return runAction(ctx, sysaction.ActionBondClaim, &sysaction.BondClaimPayload{Seq: ctx.Uint64(seqFlag.Name)})
			},
		},
	},
}

var queueCommand = &cli.Command{
	Name:  "queue",
	Usage: "Manage the withdrawal queue",
	Subcommands: []*cli.Command{
		{
			Name:   "join",
			Usage:  "Enqueue a withdrawal request",
			Flags:  []cli.Flag{amountFlag},
			Action: func(ctx *cli.Context) error {
				return runAction(ctx, sysaction.ActionWithdrawEnqueue, &sysaction.WithdrawEnqueuePayload{Amount: ctx.Uint64(amountFlag.Name)})
			},
		},
		{
			Name:   "process",
			Usage:  "Drain the next batch of requests (authority only)",
			Action: func(ctx *cli.Context) error {
				return runAction(ctx, sysaction.ActionWithdrawProcess, nil)
			},
		},
		{
			Name:   "compact",
			Usage:  "Prune processed request records",
			Action: runQueueCompact,
		},
		{
			Name:   "pause",
			Usage:  "Set the queue pause flag (authority only)",
			Flags:  []cli.Flag{enabledFlag},
			Action: func(ctx *cli.Context) error {
				return runAction(ctx, sysaction.ActionWithdrawSetPaused, &sysaction.SetPausedPayload{Paused: ctx.Bool(enabledFlag.Name)})
			},
		},
	},
}

var treasuryCommand = &cli.Command{
	Name:  "treasury",
	Usage: "Manage the treasury",
	Subcommands: []*cli.Command{
		{
			Name:   "deposit",
			Usage:  "Deposit funds into treasury custody",
			Flags:  []cli.Flag{amountFlag},
			Action: func(ctx *cli.Context) error {
				return runAction(ctx, sysaction.ActionTreasuryDeposit, &sysaction.TreasuryDepositPayload{Amount: ctx.Uint64(amountFlag.Name)})
			},
		},
		{
			Name:   "withdraw",
			Usage:  "Withdraw with multisig authorization",
			Flags:  []cli.Flag{amountFlag, toFlag, signersFlag},
			Action: runTreasuryWithdraw,
		},
	},
}

func runQueueCompact(ctx *cli.Context) error {
	store, closeStore, err := openLedger(ctx)
	if err != nil {
		return err
	}
	defer closeStore()
	pruned, err := withdrawq.Compact(store)
	if err != nil {
		return err
	}
	fmt.Printf("pruned %d request records\n", pruned)
	return nil
}

func runTreasuryWithdraw(ctx *cli.Context) error {
	if !common.IsHexAddress(ctx.String(toFlag.Name)) {
		return fmt.Errorf("--to must be a hex address")
	}
	var signers []common.Address
	for _, s := range strings.Split(ctx.String(signersFlag.Name), ",") {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if !common.IsHexAddress(s) {
			return fmt.Errorf("invalid signer address %q", s)
		}
		signers = append(signers, common.HexToAddress(s))
	}
	return runAction(ctx, sysaction.ActionTreasuryWithdraw, &sysaction.TreasuryWithdrawPayload{
		Amount:      ctx.Uint64(amountFlag.Name),
		Destination: common.HexToAddress(ctx.String(toFlag.Name)),
		Signers:     signers,
	})
}
