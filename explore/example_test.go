package explore_test

import (
	"fmt"

	"github.com/katalvlaran/rushhour/explore"
	"github.com/katalvlaran/rushhour/puzzle"
)

// ExampleExplore enumerates the state space of a two-car puzzle and reads
// back the shortest solution.
func ExampleExplore() {
	p, _ := puzzle.ParseBoard("............XXA.....A...............")

	res, err := explore.Explore(p)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	moves, _ := res.MovesTo(res.GoalKey)
	fmt.Printf("states=%d goals=%d optimal=%d deepest=%d\n", res.Reachable, res.Goals, res.GoalDepth, res.Deepest)
	fmt.Println(moves)
	// Output:
	// states=21 goals=5 optimal=2 deepest=3
	// [A-2 X+4]
}
