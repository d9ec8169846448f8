package staking

import (
	"testing"

	"github.com/mort-network/gmort/params"
)

func TestAccrueFullYearAtRate(t *testing.T) {
	// 100 staked at 500 bps over a full year: base term is exactly
	// 100*500*31536000/(31536000*100) = 500. The window clears the tenure
	// threshold, so a 10% bonus rides on top.
	reward, err := Accrue(100, 500, int64(params.SecondsPerYear))
	if err != nil {
		t.Fatalf("accrue failed: %v", err)
	}
	if want := uint64(550); reward != want {
		t.Fatalf("reward mismatch: have %d want %d", reward, want)
	}
}

func TestAccrueBaseFormula(t *testing.T) {
	tests := []struct {
		staked  uint64
		rateBPS uint64
		elapsed int64
		want    uint64
	}{
		{0, 500, 1000, 0},
		{10_000, 0, 1000, 0},
		{10_000, 500, 0, 0},
		{10_000, 500, -5, 0},
		// One day at 500 bps: 10000*500*86400/(31536000*100) = 136 (truncated).
		{10_000, 500, 86_400, 136},
		// Half a year at 500 bps on 10_000: 25_000 base plus the 10% tenure bonus.
		{10_000, 500, int64(params.SecondsPerYear) / 2, 27_500},
		// Below one token-second of yield truncates to zero.
		{1, 1, 1, 0},
	}
	for i, tt := range tests {
		reward, err := Accrue(tt.staked, tt.rateBPS, tt.elapsed)
		if err != nil {
			t.Fatalf("test %d: accrue failed: %v", i, err)
		}
		if reward != tt.want {
			t.Fatalf("test %d: reward mismatch: have %d want %d", i, reward, tt.want)
		}
	}
}

func TestAccrueTenureBoundary(t *testing.T) {
	staked, rate := uint64(1_000), uint64(500)

	at, err := Accrue(staked, rate, params.TenureBonusThreshold)
	if err != nil {
		t.Fatalf("accrue at threshold failed: %v", err)
	}
	past, err := Accrue(staked, rate, params.TenureBonusThreshold+1)
	if err != nil {
		t.Fatalf("accrue past threshold failed: %v", err)
	}
	// Exactly at the threshold there is no bonus: 1000*500*2592000/(31536000*100).
	if want := uint64(410); at != want {
		t.Fatalf("threshold reward mismatch: have %d want %d", at, want)
	}
	// One second later the 10% bonus applies on the (still 410) base.
	if want := uint64(451); past != want {
		t.Fatalf("post-threshold reward mismatch: have %d want %d", past, want)
	}
}

func TestAccrueMonotonicInElapsed(t *testing.T) {
	staked, rate := uint64(50_000), uint64(750)
	var prev uint64
	for elapsed := int64(0); elapsed <= 400*86_400; elapsed += 86_400 {
		reward, err := Accrue(staked, rate, elapsed)
		if err != nil {
			t.Fatalf("accrue at %d failed: %v", elapsed, err)
		}
		if reward < prev {
			t.Fatalf("reward decreased at elapsed %d: have %d previous %d", elapsed, reward, prev)
		}
		prev = reward
	}
}

func TestTierForStake(t *testing.T) {
	tests := []struct {
		staked uint64
		want   Tier
	}{
		{0, TierNone},
		{999, TierNone},
		{1_000, Tier1},
		{4_999, Tier1},
		{5_000, Tier2},
		{10_000, Tier3},
		{50_000, Tier4},
		{99_999, Tier4},
		{100_000, Tier5},
		{1 << 60, Tier5},
	}
	for _, tt := range tests {
		if tier := TierForStake(tt.staked); tier != tt.want {
			t.Fatalf("tier mismatch for %d: have %d want %d", tt.staked, tier, tt.want)
		}
	}
}

func FuzzAccrue(f *testing.F) {
	f.Add(uint64(10_000), uint64(500), int64(params.SecondsPerYear))
	f.Add(uint64(1), uint64(1), int64(1))
	f.Add(uint64(1)<<63, uint64(1_000), int64(1)<<40)
	f.Fuzz(func(t *testing.T, staked, rateBPS uint64, elapsed int64) {
		reward, err := Accrue(staked, rateBPS, elapsed)
		if err != nil {
			return
		}
		if elapsed <= 0 && reward != 0 {
			t.Fatalf("non-positive elapsed %d produced reward %d", elapsed, reward)
		}
		if rateBPS == 0 && reward != 0 {
			t.Fatalf("zero rate produced reward %d", reward)
		}
	})
}
