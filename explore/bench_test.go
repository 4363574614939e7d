package explore_test

import (
	"testing"

	"github.com/katalvlaran/rushhour/explore"
)

// BenchmarkExplore_FourMoves enumerates a 4166-state puzzle.
func BenchmarkExplore_FourMoves(b *testing.B) {
	p := mustParse(b, fourMoves)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = explore.Explore(p)
	}
}
