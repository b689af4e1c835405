package core

import "math"

// lcgA, lcgC, lcgM are the classic numerical-recipes LCG constants.
const (
	lcgA uint64 = 1664525
	lcgC uint64 = 1013904223
	lcgM uint64 = 1 << 32
)

// floatChance is the flat independent probability that the rare FLOAT
// kind is chosen outright, checked before weighting.
const floatChance = 0.07

// Sequencer is a deterministic piece generator: a linear-congruential
// generator plus the skill-gated unlock policy and weighted kind
// selection.
type Sequencer struct {
	state       uint64
	progressive bool
}

// NewSequencer creates a sequencer seeded from the given integer.
// Progressive sequencers unlock special kinds as skill grows;
// non-progressive ones draw from the fixed classic set.
func NewSequencer(seed int64, progressive bool) *Sequencer {
	return &Sequencer{
		state:       uint64(seed) % lcgM,
		progressive: progressive,
	}
}

// Next advances the generator and returns a value in [0, 1).
func (s *Sequencer) Next() float64 {
	s.state = (lcgA*s.state + lcgC) % lcgM
	return float64(s.state) / float64(lcgM)
}

// State exposes the current internal state for reproducibility and
// persistence.
func (s *Sequencer) State() uint64 {
	return s.state
}

// SetState restores a previously captured internal state.
func (s *Sequencer) SetState(state uint64) {
	s.state = state % lcgM
}

// classicKinds is the fixed set used by non-progressive modes and by
// unlock tier 0.
var classicKinds = []Kind{KindI, KindO, KindT, KindS, KindZ, KindJ, KindL}

// specialKinds carry half weight relative to all other kinds in the
// weighted pool.
var specialKinds = map[Kind]bool{
	KindPlus:   true,
	KindU:      true,
	KindCorner: true,
}

// UnlockTier pairs a skill threshold with the kinds it unlocks.
type UnlockTier struct {
	Threshold float64
	Kinds     []Kind
}

// unlockTiers is the ordered progressive unlock schedule. Available kinds
// are the union of all tiers at or below the current skill score; tier 0
// always contributes, so the available set is never empty.
var unlockTiers = []UnlockTier{
	{Threshold: 0, Kinds: classicKinds},
	{Threshold: 25, Kinds: []Kind{KindPlus, KindCorner}},
	{Threshold: 45, Kinds: []Kind{KindU}},
	{Threshold: 70, Kinds: []Kind{KindFloat}},
}

// SkillScore derives a gating score from session metrics: elapsed play
// time, pieces-per-second, lines-per-piece efficiency, and the running
// combo. It gates piece-kind availability only and never affects scoring.
func SkillScore(elapsedMs int64, pieces, lines, combo int) float64 {
	secs := float64(elapsedMs) / 1000
	if secs <= 0 {
		return 0
	}

	pps := float64(pieces) / secs
	efficiency := 0.0
	if pieces > 0 {
		efficiency = float64(lines) / float64(pieces)
	}
	timeScore := math.Min(secs/10, 25)

	return pps*25 + efficiency*40 + float64(combo)*2 + timeScore
}

// AvailableKinds returns the kinds unlocked at the given skill score.
// Non-progressive sequencers always return the fixed classic set.
func (s *Sequencer) AvailableKinds(skill float64) []Kind {
	if !s.progressive {
		out := make([]Kind, len(classicKinds))
		copy(out, classicKinds)
		return out
	}

	var kinds []Kind
	for _, tier := range unlockTiers {
		if tier.Threshold <= skill {
			kinds = append(kinds, tier.Kinds...)
		}
	}
	return kinds
}

// NextKind selects the next piece kind at the given skill score.
//
// The FLOAT kind, when unlocked, has a flat independent chance of being
// chosen outright. Otherwise the remaining kinds are drawn from a
// weighted pool where the three special kinds each carry half weight
// relative to all others, implemented by replicating kinds proportionally
// before a uniform draw.
func (s *Sequencer) NextKind(skill float64) (Kind, error) {
	if s == nil {
		return 0, ErrUninitializedRNG
	}

	available := s.AvailableKinds(skill)
	if len(available) == 0 {
		return 0, ErrNoAvailablePieces
	}

	floatUnlocked := false
	for _, k := range available {
		if k == KindFloat {
			floatUnlocked = true
			break
		}
	}

	if floatUnlocked && s.Next() < floatChance {
		return KindFloat, nil
	}

	var pool []Kind
	for _, k := range available {
		if k == KindFloat {
			continue
		}
		if specialKinds[k] {
			pool = append(pool, k)
		} else {
			pool = append(pool, k, k)
		}
	}
	if len(pool) == 0 {
		return 0, ErrNoAvailablePieces
	}

	idx := int(s.Next() * float64(len(pool)))
	if idx >= len(pool) {
		idx = len(pool) - 1
	}
	return pool[idx], nil
}
