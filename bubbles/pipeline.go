package bubbles

import (
	"io"
	"log/slog"

	"github.com/pkg/errors"
)

// ErrFrameOrder is returned when frames are not fed in strictly increasing order
var ErrFrameOrder = errors.New("frame numbers must be strictly increasing")

// Resolution is a marker's outcome on a single frame
type Resolution struct {
	Marker   int
	Strategy Strategy
	// Circle is nil when the marker has not been resolved in the frame
	Circle *Circle
}

// FrameResult holds resolutions of every marker for a frame, ordered by marker number
type FrameResult struct {
	FrameNo     int
	Resolutions []Resolution
}

// Circle returns resolved circle of the marker or nil
func (result *FrameResult) Circle(markerNo int) *Circle {
	for _, res := range result.Resolutions {
		if res.Marker == markerNo {
			return res.Circle
		}
	}
	return nil
}

// Pipeline resolves detections of every frame into marker positions.
// Frames must be processed one by one in increasing order.
type Pipeline struct {
	roster    []Group
	markers   map[int]*Marker
	numbers   []int
	history   *History
	lastFrame int
	logger    *slog.Logger
}

// NewDefaultPipeline creates pipeline for DefaultRoster
func NewDefaultPipeline(logger *slog.Logger) *Pipeline {
	pipeline, err := NewPipeline(DefaultRoster(), logger)
	if err != nil {
		panic("default roster is invalid: " + err.Error())
	}
	return pipeline
}

// NewPipeline creates pipeline with every marker of the roster in unknown state.
// Nil logger discards logs.
func NewPipeline(roster []Group, logger *slog.Logger) (*Pipeline, error) {
	if err := ValidateRoster(roster); err != nil {
		return nil, errors.Wrap(err, "Invalid roster")
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	numbers := rosterNumbers(roster)
	markers := make(map[int]*Marker, len(numbers))
	for _, n := range numbers {
		markers[n] = NewMarker(n)
	}
	return &Pipeline{
		roster:  roster,
		markers: markers,
		numbers: numbers,
		history: NewHistory(numbers),
		logger:  logger,
	}, nil
}

// Markers returns markers ordered by number
func (pipeline *Pipeline) Markers() []*Marker {
	markers := make([]*Marker, len(pipeline.numbers))
	for i, n := range pipeline.numbers {
		markers[i] = pipeline.markers[n]
	}
	return markers
}

// Marker returns marker by its number or nil
func (pipeline *Pipeline) Marker(number int) *Marker {
	return pipeline.markers[number]
}

// SetMaxTrackLen sets max track length of every marker
func (pipeline *Pipeline) SetMaxTrackLen(newMaxTrackLen int) {
	for _, marker := range pipeline.markers {
		marker.SetMaxTrackLen(newMaxTrackLen)
	}
}

// History returns accumulated position history
func (pipeline *Pipeline) History() *History {
	return pipeline.history
}

// ProcessFrame runs the detector for every group of the roster, resolves candidates
// into markers, commits their new states and appends the frame to history.
// Nothing is committed when any group fails, so the frame may be retried.
func (pipeline *Pipeline) ProcessFrame(frameNo int, detector FrameDetector) (*FrameResult, error) {
	if frameNo <= pipeline.lastFrame {
		return nil, errors.Wrapf(ErrFrameOrder, "frame %d after %d", frameNo, pipeline.lastFrame)
	}
	resolved := make(map[int]Resolution, len(pipeline.numbers))
	for _, group := range pipeline.roster {
		circles, err := pipeline.resolveGroup(frameNo, group, detector)
		if err != nil {
			return nil, errors.Wrapf(err, "Can't resolve %s group of markers %v on frame %d", group.Strategy, group.Markers, frameNo)
		}
		for i, n := range group.Markers {
			resolved[n] = Resolution{Marker: n, Strategy: group.Strategy, Circle: circles[i]}
		}
	}

	// Every group succeeded: commit
	pipeline.lastFrame = frameNo
	result := &FrameResult{
		FrameNo:     frameNo,
		Resolutions: make([]Resolution, 0, len(pipeline.numbers)),
	}
	for _, n := range pipeline.numbers {
		res := resolved[n]
		pipeline.markers[n].Update(res.Circle)
		result.Resolutions = append(result.Resolutions, res)
		pipeline.history.Add(frameNo, n, res.Circle)
	}
	return result, nil
}

func (pipeline *Pipeline) resolveGroup(frameNo int, group Group, detector FrameDetector) ([]*Circle, error) {
	switch group.Strategy {
	case StrategyEnclosing:
		circle, err := detector.EnclosingCircle(group.Color)
		if err != nil {
			return nil, err
		}
		if circle != nil {
			circle.Stamp(frameNo)
		}
		return []*Circle{circle}, nil
	case StrategyClosest:
		candidates, err := detector.HoughCircles(group.Color, group.Size)
		if err != nil {
			return nil, err
		}
		marker := pipeline.markers[group.Markers[0]]
		_, circle := FindClosest(frameNo, candidates, marker.Last())
		if circle == nil && len(candidates) > 1 {
			pipeline.logger.Debug("several candidates for unseen marker", "frame", frameNo, "marker", marker.GetNumber(), "candidates", len(candidates))
		}
		return []*Circle{circle}, nil
	case StrategyPair:
		candidates, err := detector.HoughCircles(group.Color, group.Size)
		if err != nil {
			return nil, err
		}
		marker1 := pipeline.markers[group.Markers[0]]
		marker2 := pipeline.markers[group.Markers[1]]
		prev1, prev2 := marker1.Last(), marker2.Last()
		circle1, circle2 := MatchCircles(frameNo, candidates, prev1, prev2)
		if len(candidates) > 0 && circle1 == nil && circle2 == nil {
			pipeline.logger.Debug("ambiguous pair candidates", "frame", frameNo, "markers", group.Markers, "candidates", len(candidates))
		}
		// Speed is cached on the fresh candidates only, markers are untouched until commit
		if circle1 != nil {
			circle1 = UpdateSpeed(circle1, prev1)
		}
		if circle2 != nil {
			circle2 = UpdateSpeed(circle2, prev2)
		}
		return []*Circle{circle1, circle2}, nil
	default:
		return nil, errors.Errorf("unknown strategy %d", group.Strategy)
	}
}
