package t2048

import (
	"errors"
	"fmt"
	"math/rand/v2"
)

// SimPolicy chooses the preferred direction for each simulated move.
type SimPolicy string

const (
	// PolicyCycle tries up, down, left, right in turn.
	PolicyCycle SimPolicy = "cycle"
	// PolicyRandom picks a direction from a generator seeded with the run seed.
	PolicyRandom SimPolicy = "random"
)

// ErrUnknownPolicy is returned by Simulate for an unrecognized policy.
var ErrUnknownPolicy = errors.New("t2048: unknown simulation policy")

// SimResult is the final state of a headless run.
type SimResult struct {
	Mode   Mode
	Seed   int64
	Policy SimPolicy
	Moves  int
	Status Status
	Capped bool // Stopped by the move cap rather than a win or loss
	Board  BoardSnapshot
}

// Simulate plays one run without a terminal. When the preferred direction
// changes nothing the remaining directions are tried in order, so a run only
// stops on a loss, on a classic win, or after maxMoves moves (0 means no cap).
func Simulate(mode Mode, seed int64, policy SimPolicy, maxMoves int) (SimResult, error) {
	var prefer func(move int) int
	switch policy {
	case PolicyCycle:
		prefer = func(move int) int { return move % len(Directions) }
	case PolicyRandom:
		r := rand.New(rand.NewPCG(uint64(seed), 0x2048))
		prefer = func(int) int { return r.IntN(len(Directions)) }
	default:
		return SimResult{}, fmt.Errorf("%w: %q", ErrUnknownPolicy, policy)
	}

	e := NewEngine(NewSeededPicker(seed))
	res := SimResult{Mode: mode, Seed: seed, Policy: policy}

	for {
		if mode == ModeClassic && MaxExponent(e.grid) >= WinExponent {
			break
		}
		if e.IsLost() {
			break
		}
		if maxMoves > 0 && res.Moves >= maxMoves {
			res.Capped = true
			break
		}

		first := prefer(res.Moves)
		for k := range len(Directions) {
			if e.Update(Directions[(first+k)%len(Directions)]) {
				break
			}
		}
		res.Moves++
	}

	res.Status = StatusOf(e)
	if mode == ModeEndless && res.Status == StatusWon {
		res.Status = StatusPlaying
	}
	res.Board = e.Snapshot()
	return res, nil
}
