package graph

// Reducer folds an edge's optional weight payload into a running cumulative
// weight. It must be monotone non-decreasing for Dijkstra to be correct.
type Reducer func(acc float64, weights []float64) float64

// SumWeights is the default reducer: no weights leaves the accumulator
// unchanged (a zero-cost hop), one or more weights add up.
func SumWeights(acc float64, weights []float64) float64 {
	for _, w := range weights {
		acc += w
	}
	return acc
}

// ShortestPath runs Dijkstra from `from` to `to` using SumWeights and returns
// the node indices along the cheapest path, inclusive of both endpoints.
// ok is false when no path exists or either endpoint is unknown.
func ShortestPath[V any](g *Graph[V], from, to int) ([]int, bool) {
	return ShortestPathWith(g, from, to, SumWeights)
}

// ShortestPathWith is ShortestPath with a caller-supplied weight reducer.
// O((V+E) log V). Ties between equal-weight frontier entries break in heap
// order, so equal-cost paths may vary between runs.
func ShortestPathWith[V any](g *Graph[V], from, to int, reduce Reducer) ([]int, bool) {
	if _, ok := g.Node(from); !ok {
		return nil, false
	}
	if _, ok := g.Node(to); !ok {
		return nil, false
	}

	dist := map[int]float64{from: 0}
	prev := map[int]int{}
	var q PriorityQueue
	q.Push(Item{Node: from, Weight: 0})

	for !q.Empty() {
		cur, _ := q.Pop()
		if cur.Node == to {
			return walkBack(prev, from, to), true
		}
		if cur.Weight > dist[cur.Node] {
			continue // stale entry, a cheaper path was already settled
		}
		edges, _ := g.Neighbors(cur.Node)
		for _, e := range edges {
			candidate := reduce(cur.Weight, e.Weights)
			if best, seen := dist[e.To]; !seen || candidate < best {
				dist[e.To] = candidate
				prev[e.To] = cur.Node
				q.Push(Item{Node: e.To, Weight: candidate})
			}
		}
	}
	return nil, false
}

// PathWeight computes the cumulative weight along a node path, returning
// ok=false if any consecutive pair has no connecting edge. When parallel
// edges exist the cheapest is used.
func PathWeight[V any](g *Graph[V], path []int, reduce Reducer) (float64, bool) {
	total := 0.0
	for i := 0; i+1 < len(path); i++ {
		edges, ok := g.Neighbors(path[i])
		if !ok {
			return 0, false
		}
		found := false
		best := 0.0
		for _, e := range edges {
			if e.To != path[i+1] {
				continue
			}
			w := reduce(0, e.Weights)
			if !found || w < best {
				best = w
				found = true
			}
		}
		if !found {
			return 0, false
		}
		total = reduce(total, []float64{best})
	}
	return total, true
}

func walkBack(prev map[int]int, from, to int) []int {
	path := []int{to}
	for cur := to; cur != from; {
		cur = prev[cur]
		path = append(path, cur)
	}
	// reverse in place
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
