package main

import (
	"encoding/json"
	"fmt"

	"github.com/mort-network/gmort/governance"
	"github.com/mort-network/gmort/internal/flags"
	"github.com/mort-network/gmort/sysaction"
	"github.com/urfave/cli/v2"
)

var (
	kindFlag = &cli.StringFlag{
		Name:     "kind",
		Usage:    "Payload kind: set-yield-rate, set-withdrawal-limit, set-voting-period or set-quorum",
		Category: flags.GovernanceCategory,
	}
	valueFlag = &cli.Uint64Flag{
		Name:     "value",
		Usage:    "Value the payload enacts",
		Category: flags.GovernanceCategory,
	}
	idFlag = &cli.Uint64Flag{
		Name:     "id",
		Usage:    "Proposal id",
		Category: flags.GovernanceCategory,
	}
	supportFlag = &cli.BoolFlag{
		Name:     "support",
		Usage:    "Vote in favor",
		Category: flags.GovernanceCategory,
	}
)

var proposalCommand = &cli.Command{
	Name:  "proposal",
	Usage: "Create, vote on and execute governance proposals",
	Subcommands: []*cli.Command{
		{
			Name:   "create",
			Usage:  "Open a new proposal",
			Flags:  []cli.Flag{kindFlag, valueFlag},
			Action: runProposalCreate,
		},
		{
			Name:   "vote",
			Usage:  "Cast a stake-weighted vote",
			Flags:  []cli.Flag{idFlag, supportFlag},
			Action: func(ctx *cli.Context) error {
				return runAction(ctx, sysaction.ActionProposalVote, &sysaction.ProposalVotePayload{
					ID:      ctx.Uint64(idFlag.Name),
					Support: ctx.Bool(supportFlag.Name),
				})
			},
		},
		{
			Name:   "execute",
			Usage:  "Enact a passed proposal after its window closes",
			Flags:  []cli.Flag{idFlag},
			Action: func(ctx *cli.Context) error {
				return runAction(ctx, sysaction.ActionProposalExecute, &sysaction.ProposalExecutePayload{ID: ctx.Uint64(idFlag.Name)})
			},
		},
	},
}

func runProposalCreate(ctx *cli.Context) error {
	payload := governance.Payload{Kind: governance.PayloadKind(ctx.String(kindFlag.Name))}
	value := ctx.Uint64(valueFlag.Name)
	switch payload.Kind {
	case governance.KindSetYieldRate:
		payload.RateBPS = value
	case governance.KindSetWithdrawalLimit:
		payload.Limit = value
	case governance.KindSetVotingPeriod:
		payload.Period = int64(value)
	case governance.KindSetQuorum:
		payload.Quorum = value
	default:
		return fmt.Errorf("unknown payload kind %q", payload.Kind)
	}
	blob, err := json.Marshal(&payload)
	if err != nil {
		return err
	}
	return runAction(ctx, sysaction.ActionProposalCreate, &sysaction.ProposalCreatePayload{Proposal: blob})
}
