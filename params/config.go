package params

import (
	"fmt"
	"io"
	"os"

	"github.com/naoina/toml"

	"github.com/mort-network/gmort/common"
)

// ProtocolConfig is the bootstrap configuration for a MORT ledger instance.
// It is decoded from TOML by mortctl init and baked into the genesis
// pool/treasury/governance records; after bootstrap the live records are
// authoritative and the config file is never consulted again.
type ProtocolConfig struct {
	// Authority is the protocol authority address (rate updates, queue
	// processing, treasury roster).
	Authority common.Address `toml:"authority"`

	// BaseYieldRateBPS is the initial pool yield rate in basis points.
	BaseYieldRateBPS uint64 `toml:"base_yield_rate_bps"`

	// MinStake / MaxStake bound a single stake operation, in base units.
	MinStake uint64 `toml:"min_stake"`
	MaxStake uint64 `toml:"max_stake"`

	// WithdrawalLimit caps a single treasury withdrawal, in base units.
	WithdrawalLimit uint64 `toml:"withdrawal_limit"`

	// RequiredSignatures is the treasury multisig threshold.
	RequiredSignatures uint8 `toml:"required_signatures"`

	// Signers is the treasury signer roster. The authority is always
	// included even when absent from this list.
	Signers []common.Address `toml:"signers"`

	// TreasuryCooldown is the minimum spacing between treasury
	// withdrawals, in seconds.
	TreasuryCooldown int64 `toml:"treasury_cooldown"`

	// VotingPeriod is the governance voting window, in seconds.
	VotingPeriod int64 `toml:"voting_period"`

	// Quorum is the minimum combined vote weight for a proposal to pass.
	Quorum uint64 `toml:"quorum"`
}

// DefaultConfig returns a ProtocolConfig with the protocol defaults filled
// in. Authority and signers must still be set by the caller.
func DefaultConfig() ProtocolConfig {
	return ProtocolConfig{
		BaseYieldRateBPS:   500, // 5% APY
		MinStake:           10,
		MaxStake:           1_000_000 * MORT,
		WithdrawalLimit:    10_000 * MORT,
		RequiredSignatures: DefaultRequiredSignatures,
		TreasuryCooldown:   EmergencyCooldown,
		VotingPeriod:       DefaultVotingPeriod,
		Quorum:             DefaultQuorum,
	}
}

// Sanitize validates the config bounds and fills zero fields from defaults.
func (c *ProtocolConfig) Sanitize() error {
	if c.Authority.IsZero() {
		return fmt.Errorf("config: authority must be set")
	}
	if c.BaseYieldRateBPS > MaxYieldRateBPS {
		return fmt.Errorf("config: base yield rate %d bps exceeds maximum %d", c.BaseYieldRateBPS, MaxYieldRateBPS)
	}
	if c.MaxStake == 0 || c.MinStake > c.MaxStake {
		return fmt.Errorf("config: invalid stake bounds [%d, %d]", c.MinStake, c.MaxStake)
	}
	if c.RequiredSignatures == 0 {
		c.RequiredSignatures = DefaultRequiredSignatures
	}
	if c.VotingPeriod <= 0 {
		c.VotingPeriod = DefaultVotingPeriod
	}
	if c.Quorum == 0 {
		c.Quorum = DefaultQuorum
	}
	if c.TreasuryCooldown <= 0 {
		c.TreasuryCooldown = EmergencyCooldown
	}
	return nil
}

// LoadConfig decodes a TOML ProtocolConfig from r on top of the defaults.
func LoadConfig(r io.Reader) (ProtocolConfig, error) {
	cfg := DefaultConfig()
	if err := toml.NewDecoder(r).Decode(&cfg); err != nil {
		return ProtocolConfig{}, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Sanitize(); err != nil {
		return ProtocolConfig{}, err
	}
	return cfg, nil
}

// LoadConfigFile is LoadConfig over a file path.
func LoadConfigFile(path string) (ProtocolConfig, error) {
	f, err := os.Open(path)
	if err != nil {
		return ProtocolConfig{}, err
	}
	defer f.Close()
	return LoadConfig(f)
}
