package commentary

import "context"

type tier struct {
	minScore int
	rank     string
	message  string
}

// tiers are ordered from best to worst.
var tiers = []tier{
	{1000, "S", "Blade master. The orchard fears you."},
	{500, "A", "Sharp and steady."},
	{250, "B", "Clean cuts, keep the rhythm."},
	{100, "C", "Warming up."},
	{0, "D", "The fruit won this round."},
}

// Local ranks runs by score, demoting one tier per bomb hit.
type Local struct{}

// Evaluate implements Service.
func (Local) Evaluate(ctx context.Context, stats Stats) (Verdict, error) {
	if err := ctx.Err(); err != nil {
		return Verdict{}, err
	}
	return Judge(stats), nil
}

// Judge computes the local verdict for stats.
func Judge(stats Stats) Verdict {
	if stats.Sliced == 0 {
		return Verdict{Rank: "D", Message: "Not a single slice. Try swinging."}
	}

	idx := len(tiers) - 1
	for i, t := range tiers {
		if stats.Score >= t.minScore {
			idx = i
			break
		}
	}
	idx = min(idx+max(stats.BombsHit, 0), len(tiers)-1)

	v := Verdict{Rank: tiers[idx].rank, Message: tiers[idx].message}
	if stats.BombsHit > 0 {
		v.Message = "Watch the bombs. " + v.Message
	}
	return v
}
