package voiceleading

import "math"

// solveAssignment returns the costs chosen by a minimum-cost perfect
// assignment over the square cost matrix, one entry per row, in row order.
// Implements the standard O(n^3) Hungarian algorithm (Kuhn-Munkres) with
// potentials, 1-indexed internally per the classic formulation.
func solveAssignment(cost [][]float64) []float64 {
	n := len(cost)
	if n == 0 {
		return nil
	}

	const inf = math.MaxFloat64 / 4

	u := make([]float64, n+1)
	v := make([]float64, n+1)
	p := make([]int, n+1) // p[j] = row assigned to column j (1-indexed columns)
	way := make([]int, n+1)

	at := func(i, j int) float64 { return cost[i-1][j-1] }

	for i := 1; i <= n; i++ {
		p[0] = i
		j0 := 0
		minv := make([]float64, n+1)
		used := make([]bool, n+1)
		for j := 0; j <= n; j++ {
			minv[j] = inf
		}

		for {
			used[j0] = true
			i0 := p[j0]
			delta := inf
			j1 := -1
			for j := 1; j <= n; j++ {
				if used[j] {
					continue
				}
				cur := at(i0, j) - u[i0] - v[j]
				if cur < minv[j] {
					minv[j] = cur
					way[j] = j0
				}
				if minv[j] < delta {
					delta = minv[j]
					j1 = j
				}
			}
			for j := 0; j <= n; j++ {
				if used[j] {
					u[p[j]] += delta
					v[j] -= delta
				} else {
					minv[j] -= delta
				}
			}
			j0 = j1
			if p[j0] == 0 {
				break
			}
		}

		for j0 != 0 {
			j1 := way[j0]
			p[j0] = p[j1]
			j0 = j1
		}
	}

	chosen := make([]float64, n)
	for j := 1; j <= n; j++ {
		if p[j] != 0 {
			chosen[p[j]-1] = at(p[j], j)
		}
	}
	return chosen
}
