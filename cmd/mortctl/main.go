// mortctl drives a local MORT ledger: it bootstraps the protocol records
// from a TOML config and applies staking, bonding, treasury and governance
// actions against a LevelDB store.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/mort-network/gmort/common"
	"github.com/mort-network/gmort/internal/flags"
	"github.com/mort-network/gmort/log"
	"github.com/mort-network/gmort/mortdb"
	"github.com/mort-network/gmort/mortdb/cachedb"
	"github.com/mort-network/gmort/mortdb/leveldb"
	"github.com/mort-network/gmort/mortdb/overlaydb"
	"github.com/mort-network/gmort/sysaction"
	"github.com/mort-network/gmort/transfer"
	"github.com/urfave/cli/v2"

	_ "github.com/mort-network/gmort/bonding"
	_ "github.com/mort-network/gmort/governance"
	_ "github.com/mort-network/gmort/staking"
	_ "github.com/mort-network/gmort/treasury"
	_ "github.com/mort-network/gmort/withdrawq"
)

// Git SHA1 commit hash of the release (set via linker flags)
var gitCommit = ""
var gitDate = ""

var (
	datadirFlag = &cli.StringFlag{
		Name:     "datadir",
		Usage:    "Data directory for the ledger database",
		Value:    defaultDataDir(),
		Category: flags.LedgerCategory,
	}
	fromFlag = &cli.StringFlag{
		Name:     "from",
		Usage:    "Acting address (hex)",
		Category: flags.LedgerCategory,
	}
	nowFlag = &cli.Int64Flag{
		Name:     "now",
		Usage:    "Override the operation timestamp (unix seconds)",
		Category: flags.LedgerCategory,
	}
	verbosityFlag = &cli.IntFlag{
		Name:     "verbosity",
		Usage:    "Logging verbosity: 0=error, 1=warn, 2=info, 3=debug, 4=trace",
		Value:    2,
		Category: flags.LoggingCategory,
	}
)

var app *cli.App

func init() {
	app = flags.NewApp(gitCommit, gitDate, "the MORT ledger tool")
	app.Flags = []cli.Flag{datadirFlag, fromFlag, nowFlag, verbosityFlag}
	app.Before = setupLogging
	app.Commands = []*cli.Command{
		initCommand,
		mintCommand,
		balanceCommand,
		statusCommand,
		stakeCommand,
		unstakeCommand,
		compoundCommand,
		claimCommand,
		delegateCommand,
		autoCompoundCommand,
		setRateCommand,
		emergencyWithdrawCommand,
		pauseCommand,
		bondCommand,
		queueCommand,
		treasuryCommand,
		proposalCommand,
	}
}

func main() {
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "gmort-data"
	}
	return filepath.Join(home, ".gmort")
}

func setupLogging(ctx *cli.Context) error {
	var level slog.Level
	switch ctx.Int(verbosityFlag.Name) {
	case 0:
		level = slog.LevelError
	case 1:
		level = slog.LevelWarn
	case 2:
		level = slog.LevelInfo
	case 3:
		level = slog.LevelDebug
	default:
		level = log.LevelTrace
	}
	log.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	return nil
}

// openLedger opens the LevelDB store under datadir behind an LRU read
// cache. The returned closer flushes and releases the database.
func openLedger(ctx *cli.Context) (mortdb.KeyValueStore, func(), error) {
	path := filepath.Join(ctx.String(datadirFlag.Name), "ledger")
	ldb, err := leveldb.New(path, 128, 1024)
	if err != nil {
		return nil, nil, fmt.Errorf("open ledger at %s: %w", path, err)
	}
	store := cachedb.New(ldb, cachedb.DefaultCacheEntries)
	return store, func() { store.Close() }, nil
}

func actingAddress(ctx *cli.Context) (common.Address, error) {
	from := ctx.String(fromFlag.Name)
	if !common.IsHexAddress(from) {
		return common.Address{}, fmt.Errorf("--from must be a hex address, got %q", from)
	}
	return common.HexToAddress(from), nil
}

func opTime(ctx *cli.Context) int64 {
	if ctx.IsSet(nowFlag.Name) {
		return ctx.Int64(nowFlag.Name)
	}
	return time.Now().Unix()
}

// runAction applies one system action atomically: the action envelope is
// dispatched against a write overlay carrying both ledger state and
// balances, and the overlay commits only on success.
func runAction(ctx *cli.Context, kind sysaction.ActionKind, payload interface{}) error {
	from, err := actingAddress(ctx)
	if err != nil {
		return err
	}
	store, closeStore, err := openLedger(ctx)
	if err != nil {
		return err
	}
	defer closeStore()

	data, err := sysaction.MakeSysAction(kind, payload)
	if err != nil {
		return err
	}
	overlay := overlaydb.New(store)
	defer overlay.Close()

	sctx := &sysaction.Context{
		From:  from,
		Now:   opTime(ctx),
		DB:    overlay,
		Mover: transfer.NewLedger(overlay),
	}
	sa, err := sysaction.Decode(data)
	if err != nil {
		return err
	}
	if err := sysaction.ExecuteWithContext(sctx, sa); err != nil {
		return err
	}
	if err := overlay.Commit(); err != nil {
		return err
	}
	log.Info("Action applied", "action", kind, "from", from)
	return nil
}
