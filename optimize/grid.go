// Package optimize sweeps strategy parameter grids, running one full
// backtest plus metrics per combination and ranking the results.
package optimize

import "sort"

// Grid maps a parameter name to the candidate values to sweep.
type Grid map[string][]float64

// Expand produces the cartesian product of the grid as a slice of
// parameter maps. Key order is sorted so expansion is deterministic.
// An empty grid expands to a single empty combination.
func (g Grid) Expand() []map[string]float64 {
	keys := make([]string, 0, len(g))
	for k := range g {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	combos := []map[string]float64{{}}
	for _, k := range keys {
		values := g[k]
		next := make([]map[string]float64, 0, len(combos)*len(values))
		for _, combo := range combos {
			for _, v := range values {
				c := make(map[string]float64, len(combo)+1)
				for ck, cv := range combo {
					c[ck] = cv
				}
				c[k] = v
				next = append(next, c)
			}
		}
		combos = next
	}
	return combos
}
