package bubbles

import "github.com/google/uuid"

const defaultMaxTrackLen = 150

// Marker is one tracked bubble: a numbered slot holding last known state.
// The state is replaced only when a resolver attributes a circle to the marker,
// so missed detections keep the marker anchored at its last observed position.
type Marker struct {
	id           uuid.UUID
	number       int
	last         *Circle
	track        []Point
	maxTrackLen  int
	noMatchTimes int
}

// NewMarker creates marker in unknown state
func NewMarker(number int) *Marker {
	return &Marker{
		id:          uuid.New(),
		number:      number,
		track:       make([]Point, 0, defaultMaxTrackLen),
		maxTrackLen: defaultMaxTrackLen,
	}
}

// GetID returns marker's run-unique identifier
func (marker *Marker) GetID() uuid.UUID {
	return marker.id
}

// GetNumber returns marker's label (1..10 for the default roster)
func (marker *Marker) GetNumber() int {
	return marker.number
}

// Last returns last known state or nil if marker has never been seen
func (marker *Marker) Last() *Circle {
	return marker.last
}

// GetTrack returns marker's recent positions. Be careful: this is not copy of track, but reference to it
func (marker *Marker) GetTrack() []Point {
	return marker.track
}

// SetMaxTrackLen sets marker's max track length, dropping the oldest points beyond it
func (marker *Marker) SetMaxTrackLen(newMaxTrackLen int) {
	marker.maxTrackLen = newMaxTrackLen
	if extra := len(marker.track) - newMaxTrackLen; extra > 0 {
		marker.track = marker.track[extra:]
	}
}

// GetNoMatchTimes returns number of consecutive frames the marker has not been resolved in
func (marker *Marker) GetNoMatchTimes() int {
	return marker.noMatchTimes
}

// Update commits resolved state. Nil circle counts as a miss and keeps previous state.
func (marker *Marker) Update(circle *Circle) {
	if circle == nil {
		marker.noMatchTimes++
		return
	}
	marker.last = circle
	marker.noMatchTimes = 0
	marker.track = append(marker.track, circle.Center())
	if len(marker.track) > marker.maxTrackLen {
		marker.track = marker.track[1:]
	}
}
