package bubbles

import (
	"testing"

	"github.com/arthurkushman/go-hungarian"
)

func TestMatchCirclesNoCandidates(t *testing.T) {
	c1, c2 := MatchCircles(3, nil, NewCircleAt(0, 0, 10, 1), NewCircleAt(5, 5, 10, 1))
	if c1 != nil || c2 != nil {
		t.Errorf("Expected nothing, got %v %v", c1, c2)
	}
}

func TestMatchCirclesSingleNoPriors(t *testing.T) {
	candidate := NewCircle(40, 40, 25)
	c1, c2 := MatchCircles(1, []*Circle{candidate}, nil, nil)
	if c1 != candidate || c2 != nil {
		t.Errorf("Expected (candidate, nil), got %v %v", c1, c2)
	}
	if candidate.FrameNo != 1 {
		t.Errorf("Candidate must be stamped, got %d", candidate.FrameNo)
	}
}

func TestMatchCirclesSingleReattribution(t *testing.T) {
	prev1 := NewCircleAt(0, 0, 25, 1)

	far := NewCircle(200, 0, 25)
	c1, c2 := MatchCircles(2, []*Circle{far}, prev1, nil)
	if c1 != nil || c2 != far {
		t.Errorf("Far candidate must go to the lost marker, got %v %v", c1, c2)
	}

	near := NewCircle(100, 0, 25)
	c1, c2 = MatchCircles(2, []*Circle{near}, prev1, nil)
	if c1 != near || c2 != nil {
		t.Errorf("Near candidate must continue the known marker, got %v %v", c1, c2)
	}

	// mirror case
	prev2 := NewCircleAt(0, 0, 25, 1)
	far = NewCircle(0, 150, 25)
	c1, c2 = MatchCircles(2, []*Circle{far}, nil, prev2)
	if c1 != far || c2 != nil {
		t.Errorf("Candidate at threshold must go to the lost marker, got %v %v", c1, c2)
	}
	near = NewCircle(0, 149, 25)
	c1, c2 = MatchCircles(2, []*Circle{near}, nil, prev2)
	if c1 != nil || c2 != near {
		t.Errorf("Near candidate must continue the known marker, got %v %v", c1, c2)
	}
}

func TestMatchCirclesSingleBothPriors(t *testing.T) {
	prev1 := NewCircleAt(0, 0, 25, 1)
	prev2 := NewCircleAt(100, 0, 25, 1)
	candidate := NewCircle(70, 0, 25)
	c1, c2 := MatchCircles(2, []*Circle{candidate}, prev1, prev2)
	if c1 != nil || c2 != candidate {
		t.Errorf("Expected (nil, candidate), got %v %v", c1, c2)
	}
}

func TestMatchCirclesTwoConsistentPairing(t *testing.T) {
	prev1 := NewCircleAt(0, 0, 25, 1)
	prev2 := NewCircleAt(100, 100, 25, 1)
	a := NewCircle(1, 1, 25)
	b := NewCircle(99, 99, 25)

	c1, c2 := MatchCircles(2, []*Circle{a, b}, prev1, prev2)
	if c1 != a || c2 != b {
		t.Errorf("Expected (a, b), got %v %v", c1, c2)
	}
	c1, c2 = MatchCircles(2, []*Circle{b, a}, prev1, prev2)
	if c1 != a || c2 != b {
		t.Errorf("Expected (a, b) for reversed input, got %v %v", c1, c2)
	}
}

func TestMatchCirclesTwoNoPriors(t *testing.T) {
	a := NewCircle(1, 1, 25)
	b := NewCircle(99, 99, 25)
	c1, c2 := MatchCircles(1, []*Circle{a, b}, nil, nil)
	if c1 != a || c2 != b {
		t.Errorf("Expected input order, got %v %v", c1, c2)
	}
}

func TestMatchCirclesTwoOnePrior(t *testing.T) {
	prev2 := NewCircleAt(100, 0, 25, 1)
	a := NewCircle(0, 0, 25)
	b := NewCircle(95, 0, 25)
	c1, c2 := MatchCircles(2, []*Circle{a, b}, nil, prev2)
	if c1 != a || c2 != b {
		t.Errorf("Expected (a, b), got %v %v", c1, c2)
	}
	c1, c2 = MatchCircles(2, []*Circle{b, a}, nil, prev2)
	if c1 != a || c2 != b {
		t.Errorf("Expected (a, b) for reversed input, got %v %v", c1, c2)
	}

	prev1 := NewCircleAt(100, 0, 25, 1)
	c1, c2 = MatchCircles(2, []*Circle{a, b}, prev1, nil)
	if c1 != b || c2 != a {
		t.Errorf("Expected (b, a), got %v %v", c1, c2)
	}
}

func TestMatchCirclesTwoCloseToSamePrior(t *testing.T) {
	prev1 := NewCircleAt(0, 0, 25, 1)
	prev2 := NewCircleAt(100, 0, 25, 1)

	// both are closer to prev1, the closest one takes it
	a := NewCircle(10, 0, 25)
	b := NewCircle(20, 0, 25)
	c1, c2 := MatchCircles(2, []*Circle{b, a}, prev1, prev2)
	if c1 != a || c2 != b {
		t.Errorf("Expected (a, b), got %v %v", c1, c2)
	}

	// both are closer to prev2
	a = NewCircle(80, 0, 25)
	b = NewCircle(90, 0, 25)
	c1, c2 = MatchCircles(2, []*Circle{a, b}, prev1, prev2)
	if c1 != a || c2 != b {
		t.Errorf("Expected (a, b), got %v %v", c1, c2)
	}
	c1, c2 = MatchCircles(2, []*Circle{b, a}, prev1, prev2)
	if c1 != a || c2 != b {
		t.Errorf("Expected (a, b) for reversed input, got %v %v", c1, c2)
	}
}

func TestMatchCirclesManyWithoutPriors(t *testing.T) {
	candidates := []*Circle{NewCircle(0, 0, 25), NewCircle(50, 0, 25), NewCircle(100, 0, 25)}
	c1, c2 := MatchCircles(2, candidates, NewCircleAt(0, 0, 25, 1), nil)
	if c1 != nil || c2 != nil {
		t.Errorf("Expected nothing, got %v %v", c1, c2)
	}
	c1, c2 = MatchCircles(2, candidates, nil, nil)
	if c1 != nil || c2 != nil {
		t.Errorf("Expected nothing, got %v %v", c1, c2)
	}
}

func TestMatchCirclesManyFiltersNoise(t *testing.T) {
	prev1 := NewCircleAt(0, 0, 25, 1)
	prev2 := NewCircleAt(300, 300, 25, 1)
	a := NewCircle(4, 3, 25)
	b := NewCircle(296, 303, 25)
	noise := []*Circle{NewCircle(150, 0, 25), NewCircle(0, 150, 25)}
	candidates := []*Circle{noise[0], b, noise[1], a}
	c1, c2 := MatchCircles(2, candidates, prev1, prev2)
	if c1 != a || c2 != b {
		t.Errorf("Expected (a, b), got %v %v", c1, c2)
	}
	if len(candidates) != 4 {
		t.Errorf("Input must not be modified, got %d candidates", len(candidates))
	}
	for i, c := range candidates {
		if c.FrameNo != 2 {
			t.Errorf("Candidate %d is not stamped: %d", i, c.FrameNo)
		}
	}
}

// One candidate is the nearest to both markers. Greedy reduction hands it to prev1
// even though the optimal assignment would give it to prev2.
func TestFindLikelyPairGreedyBias(t *testing.T) {
	prev1 := NewCircleAt(0, 0, 25, 1)
	prev2 := NewCircleAt(10, 0, 25, 1)
	shared := NewCircle(6, 0, 25)
	left := NewCircle(-20, 0, 25)
	right := NewCircle(30, 0, 25)
	candidates := []*Circle{left, shared, right}

	pair := FindLikelyPair(2, candidates, prev1, prev2)
	if len(pair) != 2 {
		t.Fatalf("Expected pair, got %d circles", len(pair))
	}
	if pair[0] != shared || pair[1] != right {
		t.Errorf("Expected (shared, right), got %v %v", pair[0], pair[1])
	}

	// Optimal assignment for reference: maximize (100 - diff), padded to square
	priors := []*Circle{prev1, prev2}
	scores := make([][]float64, len(candidates))
	for i := range scores {
		scores[i] = make([]float64, len(candidates))
		if i < len(priors) {
			for j, c := range candidates {
				scores[i][j] = 100.0 - Diff(c, priors[i])
			}
		}
	}
	optimal := make(map[int]int)
	for row, cols := range hungarian.SolveMax(scores) {
		for col := range cols {
			optimal[row] = col
		}
	}
	if candidates[optimal[0]] != left || candidates[optimal[1]] != shared {
		t.Errorf("Expected optimal assignment (left, shared), got %v %v", candidates[optimal[0]], candidates[optimal[1]])
	}
	if candidates[optimal[0]] == pair[0] {
		t.Error("Greedy and optimal assignments are expected to differ for prev1")
	}
}

func TestFindLikelyPairUnknownPrior(t *testing.T) {
	candidates := []*Circle{NewCircle(0, 0, 25), NewCircle(50, 0, 25), NewCircle(100, 0, 25)}
	pair := FindLikelyPair(2, candidates, nil, NewCircleAt(0, 0, 25, 1))
	if pair != nil {
		t.Errorf("Expected no pair, got %v", pair)
	}
}
