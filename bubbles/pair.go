package bubbles

// ReattributeThreshold is dissimilarity at which a lone candidate is no longer
// considered the known marker of a pair but the one which went missing.
const ReattributeThreshold = 150.0

// MatchCircles attributes candidates to two visually identical markers whose last
// known states are prev1 and prev2 (either may be nil).
// It returns continuations of prev1 and prev2 respectively, nil when nothing
// could be attributed to the marker on this frame.
func MatchCircles(frameNo int, circles []*Circle, prev1, prev2 *Circle) (*Circle, *Circle) {
	switch {
	case len(circles) == 0:
		return nil, nil
	case len(circles) == 1:
		circles[0].Stamp(frameNo)
		return matchSingle(circles[0], prev1, prev2)
	case len(circles) == 2:
		stampAll(circles, frameNo)
		return matchTwo(circles[0], circles[1], prev1, prev2)
	}
	// Without both anchors there is no way to say which two of N are real
	if prev1 == nil || prev2 == nil {
		return nil, nil
	}
	stampAll(circles, frameNo)
	pair := FindLikelyPair(frameNo, circles, prev1, prev2)
	return MatchCircles(frameNo, pair, prev1, prev2)
}

func matchSingle(circ, prev1, prev2 *Circle) (*Circle, *Circle) {
	switch {
	case prev1 == nil && prev2 == nil:
		// No way to know which of them has shown up
		return circ, nil
	case prev1 == nil:
		// Too far from the known one: it is the one we have lost
		if Diff(circ, prev2) >= ReattributeThreshold {
			return circ, nil
		}
		return nil, circ
	case prev2 == nil:
		if Diff(circ, prev1) >= ReattributeThreshold {
			return nil, circ
		}
		return circ, nil
	}
	if Diff(circ, prev1) < Diff(circ, prev2) {
		return circ, nil
	}
	return nil, circ
}

func matchTwo(circ1, circ2, prev1, prev2 *Circle) (*Circle, *Circle) {
	switch {
	case prev1 == nil && prev2 == nil:
		return circ1, circ2
	case prev1 == nil:
		if Diff(circ1, prev2) < Diff(circ2, prev2) {
			return circ2, circ1
		}
		return circ1, circ2
	case prev2 == nil:
		if Diff(circ1, prev1) < Diff(circ2, prev1) {
			return circ1, circ2
		}
		return circ2, circ1
	}

	d11, d12 := Diff(circ1, prev1), Diff(circ1, prev2)
	d21, d22 := Diff(circ2, prev1), Diff(circ2, prev2)

	// Candidates are close to different markers
	if d11 < d12 && d22 < d21 {
		return circ1, circ2
	}
	if d12 < d11 && d21 < d22 {
		return circ2, circ1
	}

	// Both are close to the same marker: the closer one takes it, the other one
	// goes to the remaining marker by elimination
	if d11 < d12 && d21 < d22 {
		if d11 < d21 {
			return circ1, circ2
		}
		return circ2, circ1
	}
	if d12 < d22 {
		return circ2, circ1
	}
	return circ1, circ2
}

// FindLikelyPair reduces more than two candidates to two: the closest one to prev1 is
// taken first, then the closest one to prev2 among the rest.
// Both prev1 and prev2 must be known. This is greedy, not an optimal assignment:
// a candidate close to both markers always goes to prev1.
// circles is not modified.
func FindLikelyPair(frameNo int, circles []*Circle, prev1, prev2 *Circle) []*Circle {
	idx1, circ1 := FindClosest(frameNo, circles, prev1)
	if idx1 < 0 {
		return nil
	}
	rest := make([]*Circle, 0, len(circles)-1)
	rest = append(rest, circles[:idx1]...)
	rest = append(rest, circles[idx1+1:]...)
	_, circ2 := FindClosest(frameNo, rest, prev2)
	return []*Circle{circ1, circ2}
}
