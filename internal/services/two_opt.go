package services

import "context"

// improveEps guards the 2-opt acceptance test against float noise. Without
// it, a reversal whose delta rounds to a tiny negative can be re-applied
// forever, and the pass counter burns to its cap on tours that are already
// optimal.
const improveEps = 1e-9

// twoOptImprove refines a closed tour in place with first-improvement
// 2-opt: reversing the segment tour[i..k] replaces edges (i-1,i) and
// (k,k+1) with (i-1,k) and (i,k+1), so the length delta needs only those
// four lookups. Passes repeat until a full sweep finds no improving move
// or maxPasses is spent. The endpoints stay fixed so the depot keeps its
// place. Returns the passes consumed, moves applied, and whether the tour
// reached local optimality within budget. A canceled ctx stops between
// passes with the best tour found so far.
func twoOptImprove(ctx context.Context, dist [][]float64, tour []int, maxPasses int) (passes, moves int, converged bool) {
	n := len(tour)
	if n < 5 {
		// Nothing to reverse: closed tours over fewer than three
		// interior stops admit no 2-opt move.
		return 0, 0, true
	}

	for passes < maxPasses {
		if ctx.Err() != nil {
			return passes, moves, false
		}

		improved := false
		for i := 1; i <= n-3; i++ {
			for k := i + 1; k <= n-2; k++ {
				delta := dist[tour[i-1]][tour[k]] + dist[tour[i]][tour[k+1]] -
					dist[tour[i-1]][tour[i]] - dist[tour[k]][tour[k+1]]
				if delta < -improveEps {
					reverseSegment(tour, i, k)
					moves++
					improved = true
				}
			}
		}
		passes++

		if !improved {
			return passes, moves, true
		}
	}
	return passes, moves, false
}

func reverseSegment(tour []int, i, k int) {
	for i < k {
		tour[i], tour[k] = tour[k], tour[i]
		i++
		k--
	}
}
