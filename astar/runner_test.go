package astar

import (
	"container/heap"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/rushhour/puzzle"
)

// expansion records a settled state as [X position, A position] and its g.
type expansion struct {
	pos [2]int
	g   int
}

// lureHeuristic is deliberately inconsistent on the two-car board. It pulls
// the search through A+2 and X+1 first, so (X=1, A=3) is queued at g=3
// before A+1 from the start reaches it at g=2.
func lureHeuristic(s puzzle.State) int {
	switch [2]int{s.Position(0), s.Position(1)} {
	case [2]int{0, 4}, [2]int{1, 4}:
		return 0
	case [2]int{0, 3}:
		return 2
	case [2]int{1, 3}:
		return 1
	default:
		return 10
	}
}

func TestRelax_ReplacesWorseFrontierEntry(t *testing.T) {
	p, err := puzzle.ParseBoard("............XXA.....A...............")
	require.NoError(t, err)

	var order []expansion
	o := DefaultOptions()
	o.Heuristic = lureHeuristic
	o.OnExpand = func(s puzzle.State, g, _ int) {
		order = append(order, expansion{pos: [2]int{s.Position(0), s.Position(1)}, g: g})
	}

	r := newRunner(p, o)
	r.init()
	res, err := r.loop()
	require.NoError(t, err)

	// the replaced entry jumps ahead of the entries it now beats
	require.GreaterOrEqual(t, len(order), 5)
	assert.Equal(t, []expansion{
		{pos: [2]int{0, 2}, g: 0},
		{pos: [2]int{0, 4}, g: 1},
		{pos: [2]int{1, 4}, g: 2},
		{pos: [2]int{0, 3}, g: 1},
		{pos: [2]int{1, 3}, g: 2},
	}, order[:5])

	// both the original and the replacement node are in the arena and counted
	var gs []int
	for _, n := range r.nodes {
		if n.state.Position(0) == 1 && n.state.Position(1) == 3 {
			gs = append(gs, n.g)
		}
	}
	assert.Equal(t, []int{3, 2}, gs)
	assert.Equal(t, len(r.nodes), res.NodesExpanded)

	require.Equal(t, StatusSolved, res.Status)
	assert.Equal(t, len(res.Path), res.Cost)
	final, err := puzzle.Replay(p, res.Path)
	require.NoError(t, err)
	assert.True(t, final.IsGoal())
	assert.True(t, final.Equal(res.Final))
}

func TestFrontier_FixAfterDecrease(t *testing.T) {
	var pq frontier
	items := []*item{
		{node: 0, f: 5, g: 1, seq: 1},
		{node: 1, f: 4, g: 1, seq: 2},
		{node: 2, f: 4, g: 0, seq: 3},
		{node: 3, f: 4, g: 0, seq: 4},
	}
	for _, it := range items {
		heap.Push(&pq, it)
	}

	items[0].f, items[0].seq = 3, 5
	heap.Fix(&pq, items[0].index)

	var got []int
	for pq.Len() > 0 {
		got = append(got, heap.Pop(&pq).(*item).node)
	}
	assert.Equal(t, []int{0, 2, 3, 1}, got, "f, then g, then seq")
}
