package staking

import (
	"github.com/mort-network/gmort/mortdb"
	"github.com/mort-network/gmort/params"
)

// Bootstrap writes the initial pool record from cfg. It refuses to run
// twice: an existing pool record is never overwritten.
func Bootstrap(db mortdb.KeyValueStore, cfg *params.ProtocolConfig, now int64) error {
	if _, err := ReadPool(db); err == nil {
		return ErrPoolExists
	}
	pool := &Pool{
		Authority:         cfg.Authority,
		YieldRateBPS:      cfg.BaseYieldRateBPS,
		MinStake:          cfg.MinStake,
		MaxStake:          cfg.MaxStake,
		EmergencyCooldown: params.EmergencyCooldown,
		LastRateUpdate:    now,
		NextRateUpdate:    now + params.RateAdjustmentInterval,
	}
	return WritePool(db, pool)
}
