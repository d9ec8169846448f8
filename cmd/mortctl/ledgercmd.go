package main

import (
	"fmt"
	"os"

	"github.com/mort-network/gmort/bonding"
	"github.com/mort-network/gmort/common"
	"github.com/mort-network/gmort/governance"
	"github.com/mort-network/gmort/internal/flags"
	"github.com/mort-network/gmort/log"
	"github.com/mort-network/gmort/params"
	"github.com/mort-network/gmort/staking"
	"github.com/mort-network/gmort/transfer"
	"github.com/mort-network/gmort/treasury"
	"github.com/mort-network/gmort/withdrawq"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli/v2"
)

var (
	configFlag = &cli.StringFlag{
		Name:     "config",
		Usage:    "Path to the TOML protocol config",
		Category: flags.LedgerCategory,
	}
	toFlag = &cli.StringFlag{
		Name:     "to",
		Usage:    "Destination address (hex)",
		Category: flags.LedgerCategory,
	}
	amountFlag = &cli.Uint64Flag{
		Name:     "amount",
		Usage:    "Amount in base units",
		Category: flags.LedgerCategory,
	}
)

var initCommand = &cli.Command{
	Name:      "init",
	Usage:     "Bootstrap the protocol records from a TOML config",
	ArgsUsage: "--config <path>",
	Flags:     []cli.Flag{configFlag},
	Action:    runInit,
}

var mintCommand = &cli.Command{
	Name:   "mint",
	Usage:  "Credit an address out of thin air (development helper)",
	Flags:  []cli.Flag{toFlag, amountFlag},
	Action: runMint,
}

var balanceCommand = &cli.Command{
	Name:   "balance",
	Usage:  "Print the balance of an address",
	Flags:  []cli.Flag{toFlag},
	Action: runBalance,
}

var statusCommand = &cli.Command{
	Name:   "status",
	Usage:  "Print a summary of the pool, queue, treasury and governance",
	Action: runStatus,
}

func runInit(ctx *cli.Context) error {
	path := ctx.String(configFlag.Name)
	if path == "" {
		return fmt.Errorf("--config is required")
	}
	cfg, err := params.LoadConfigFile(path)
	if err != nil {
		return err
	}
	store, closeStore, err := openLedger(ctx)
	if err != nil {
		return err
	}
	defer closeStore()

	now := opTime(ctx)
	if err := staking.Bootstrap(store, &cfg, now); err != nil {
		return err
	}
	if err := treasury.Bootstrap(store, &cfg); err != nil {
		return err
	}
	if err := governance.Bootstrap(store, &cfg); err != nil {
		return err
	}
	log.Info("Ledger initialized", "authority", cfg.Authority, "rate", cfg.BaseYieldRateBPS, "quorum", cfg.Quorum)
	return nil
}

func runMint(ctx *cli.Context) error {
	if !common.IsHexAddress(ctx.String(toFlag.Name)) {
		return fmt.Errorf("--to must be a hex address")
	}
	store, closeStore, err := openLedger(ctx)
	if err != nil {
		return err
	}
	defer closeStore()
	to := common.HexToAddress(ctx.String(toFlag.Name))
	if err := transfer.NewLedger(store).Mint(to, ctx.Uint64(amountFlag.Name)); err != nil {
		return err
	}
	log.Info("Minted", "to", to, "amount", ctx.Uint64(amountFlag.Name))
	return nil
}

func runBalance(ctx *cli.Context) error {
	if !common.IsHexAddress(ctx.String(toFlag.Name)) {
		return fmt.Errorf("--to must be a hex address")
	}
	store, closeStore, err := openLedger(ctx)
	if err != nil {
		return err
	}
	defer closeStore()
	to := common.HexToAddress(ctx.String(toFlag.Name))
	balance, err := transfer.NewLedger(store).BalanceOf(to)
	if err != nil {
		return err
	}
	fmt.Printf("%s: %d\n", to, balance)
	return nil
}

func runStatus(ctx *cli.Context) error {
	store, closeStore, err := openLedger(ctx)
	if err != nil {
		return err
	}
	defer closeStore()

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Subsystem", "Field", "Value"})
	table.SetAutoMergeCells(true)

	if pool, err := staking.ReadPool(store); err == nil {
		table.Append([]string{"staking", "authority", pool.Authority.Hex()})
		table.Append([]string{"staking", "yield rate (bps)", fmt.Sprint(pool.YieldRateBPS)})
		table.Append([]string{"staking", "total staked", fmt.Sprint(pool.TotalStaked)})
		table.Append([]string{"staking", "rewards distributed", fmt.Sprint(pool.TotalRewardsDistributed)})
		table.Append([]string{"staking", "paused", fmt.Sprint(pool.Paused)})
	} else {
		table.Append([]string{"staking", "state", err.Error()})
	}
	if vault, err := bonding.ReadVault(store); err == nil {
		table.Append([]string{"bonding", "total bonded", fmt.Sprint(vault.TotalBonded)})
	}
	if queue, err := withdrawq.ReadQueue(store); err == nil {
		table.Append([]string{"withdrawq", "pending", fmt.Sprint(queue.Tail - queue.Head)})
		table.Append([]string{"withdrawq", "total queued", fmt.Sprint(queue.TotalQueued)})
		table.Append([]string{"withdrawq", "paused", fmt.Sprint(queue.Paused)})
	}
	if state, err := treasury.ReadState(store); err == nil {
		table.Append([]string{"treasury", "balance", fmt.Sprint(state.TotalBalance)})
		table.Append([]string{"treasury", "distributed", fmt.Sprint(state.TotalDistributed)})
		table.Append([]string{"treasury", "required signatures", fmt.Sprint(state.RequiredSignatures)})
		table.Append([]string{"treasury", "withdrawal limit", fmt.Sprint(state.WithdrawalLimit)})
	}
	if state, err := governance.ReadState(store); err == nil {
		table.Append([]string{"governance", "proposals", fmt.Sprint(state.ProposalCount)})
		table.Append([]string{"governance", "quorum", fmt.Sprint(state.RequiredQuorum)})
		table.Append([]string{"governance", "voting period (s)", fmt.Sprint(state.VotingPeriod)})
	}
	table.Render()
	return nil
}
