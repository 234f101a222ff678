package bubbles

import "math"

// SpeedWeight balances speed change against location change in Diff.
// Tuned by trial and error on the reference recording.
const SpeedWeight = 4.3

// Distance returns Euclidean distance between circles' centers
func Distance(curr, prev *Circle) float64 {
	return euclideanDistance(curr.Center(), prev.Center())
}

// Speed returns displacement per frame between prev and curr.
// prev.FrameNo must be strictly less than curr.FrameNo.
func Speed(curr, prev *Circle) float64 {
	frameDiff := curr.FrameNo - prev.FrameNo
	return Distance(curr, prev) / float64(frameDiff)
}

// Diff is a dissimilarity of two marker states built from location and speed.
// The lower the value the more likely curr continues prev.
// Roles are not interchangeable: curr must be the newer state.
func Diff(curr, prev *Circle) float64 {
	locationDiff := Distance(curr, prev)
	speedDiff := 0.0
	if prevSpeed, ok := prev.Speed(); ok {
		speedDiff = math.Abs(Speed(curr, prev) - prevSpeed)
	}
	return locationDiff + SpeedWeight*speedDiff
}

// UpdateSpeed returns new last known state of a marker.
// Missing curr keeps prev, missing prev adopts curr as is (first sighting),
// otherwise speed is cached on curr.
func UpdateSpeed(curr, prev *Circle) *Circle {
	if curr == nil {
		return prev
	}
	if prev == nil {
		return curr
	}
	curr.SetSpeed(Speed(curr, prev))
	return curr
}
