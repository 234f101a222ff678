package bubbles

// closestSeed is initial dissimilarity in FindClosest, anything real beats it
const closestSeed = 10_000.0

// FindClosest picks candidate that continues prev best.
// Every candidate gets stamped with frameNo.
// Returns index of the candidate in circles and the candidate itself, or (-1, nil) when
// there are no candidates or there are several of them and prev is unknown.
func FindClosest(frameNo int, circles []*Circle, prev *Circle) (int, *Circle) {
	if len(circles) == 0 {
		return -1, nil
	}
	if len(circles) == 1 {
		circles[0].Stamp(frameNo)
		return 0, circles[0]
	}
	if prev == nil {
		return -1, nil
	}
	stampAll(circles, frameNo)
	match := 0
	minDiff := closestSeed
	for i, circle := range circles {
		d := Diff(circle, prev)
		if d < minDiff {
			minDiff = d
			match = i
		}
	}
	return match, circles[match]
}
