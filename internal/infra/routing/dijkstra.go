package routing

import "math"

// pqItem is a priority queue entry.
type pqItem struct {
	node int32
	dist float64
}

// minHeap is a concrete-typed min-heap for the Dijkstra priority queue.
// Avoids interface boxing overhead of container/heap.
type minHeap struct {
	items []pqItem
}

func (h *minHeap) Len() int { return len(h.items) }

func (h *minHeap) Push(node int32, dist float64) {
	h.items = append(h.items, pqItem{node: node, dist: dist})
	h.siftUp(len(h.items) - 1)
}

func (h *minHeap) Pop() pqItem {
	n := len(h.items)
	item := h.items[0]
	h.items[0] = h.items[n-1]
	h.items = h.items[:n-1]
	if len(h.items) > 0 {
		h.siftDown(0)
	}

	return item
}

func (h *minHeap) siftUp(i int) {
	for i > 0 {
		parent := (i - 1) / 2
		if h.items[i].dist >= h.items[parent].dist {
			break
		}
		h.items[i], h.items[parent] = h.items[parent], h.items[i]
		i = parent
	}
}

func (h *minHeap) siftDown(i int) {
	n := len(h.items)
	for {
		smallest := i
		left := 2*i + 1
		right := 2*i + 2
		if left < n && h.items[left].dist < h.items[smallest].dist {
			smallest = left
		}
		if right < n && h.items[right].dist < h.items[smallest].dist {
			smallest = right
		}
		if smallest == i {
			break
		}
		h.items[i], h.items[smallest] = h.items[smallest], h.items[i]
		i = smallest
	}
}

// ShortestPath runs Dijkstra's algorithm from start to end. It returns the
// node path including both endpoints, the total path length in meters, and
// whether end is reachable from start.
func (g *Graph) ShortestPath(start, end int32) ([]int32, float64, bool) {
	n := len(g.nodes)
	if int(start) >= n || int(end) >= n || start < 0 || end < 0 {
		return nil, 0, false
	}

	if start == end {
		return []int32{start}, 0, true
	}

	dist := make([]float64, n)
	prev := make([]int32, n)
	for i := range dist {
		dist[i] = math.MaxFloat64
		prev[i] = -1
	}
	dist[start] = 0

	pq := minHeap{items: make([]pqItem, 0, 64)}
	pq.Push(start, 0)

	for pq.Len() > 0 {
		current := pq.Pop()
		if current.node == end {
			break
		}

		// Stale entry; a shorter path to this node was already settled.
		if current.dist > dist[current.node] {
			continue
		}

		for _, next := range g.adj[current.node] {
			edge := g.edges[edgeKey{from: current.node, to: next}]
			newDist := current.dist + edge.Length
			if newDist < dist[next] {
				dist[next] = newDist
				prev[next] = current.node
				pq.Push(next, newDist)
			}
		}
	}

	if dist[end] == math.MaxFloat64 {
		return nil, 0, false
	}

	// Walk predecessors back from the destination.
	path := []int32{end}
	for node := prev[end]; node >= 0; node = prev[node] {
		path = append(path, node)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}

	return path, dist[end], true
}
