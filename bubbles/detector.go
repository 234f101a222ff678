package bubbles

// ColorRange is inclusive per-channel range in BGR order
type ColorRange struct {
	Low  [3]uint8 `yaml:"low"`
	High [3]uint8 `yaml:"high"`
}

// HoughOptions configures the Hough circle detector for one size class
type HoughOptions struct {
	MinRadius int     `yaml:"min_radius"`
	MaxRadius int     `yaml:"max_radius"`
	MinDist   float64 `yaml:"min_dist"`
	Param1    float64 `yaml:"param1"`
	Param2    float64 `yaml:"param2"`
}

// FrameDetector gives circle candidates found on a single frame
type FrameDetector interface {
	// EnclosingCircle returns minimal circle enclosing all pixels of the color mask, nil for an empty mask
	EnclosingCircle(color ColorClass) (*Circle, error)
	// HoughCircles returns candidates of given size found on the color mask
	HoughCircles(color ColorClass, size SizeClass) ([]*Circle, error)
}
