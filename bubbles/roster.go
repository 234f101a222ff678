package bubbles

import (
	"fmt"
	"sort"

	"github.com/pkg/errors"
)

// Strategy is the way markers of a group are told apart
type Strategy uint16

const (
	// StrategyEnclosing is for a marker with a color of its own: the circle enclosing the whole color mask is the marker
	StrategyEnclosing Strategy = iota
	// StrategyClosest is for a single marker of given color and size with noisy detections
	StrategyClosest
	// StrategyPair is for two identical markers resolved jointly
	StrategyPair
)

func (s Strategy) String() string {
	switch s {
	case StrategyEnclosing:
		return "enclosing"
	case StrategyClosest:
		return "closest"
	case StrategyPair:
		return "pair"
	default:
		return fmt.Sprintf("strategy(%d)", uint16(s))
	}
}

// ColorClass names a color mask
type ColorClass string

const (
	ColorWhite  ColorClass = "white"
	ColorGray   ColorClass = "gray"
	ColorGreen  ColorClass = "green"
	ColorOrange ColorClass = "orange"
	ColorBlue   ColorClass = "blue"
)

// SizeClass names a Hough detector configuration (radius range)
type SizeClass int

// Group is a set of markers sharing color and size, resolved with the same strategy
type Group struct {
	Strategy Strategy
	Color    ColorClass
	// Size is unused by StrategyEnclosing
	Size    SizeClass
	Markers []int
}

// DefaultRoster returns the ten bubbles of the reference recording
func DefaultRoster() []Group {
	return []Group{
		{Strategy: StrategyEnclosing, Color: ColorOrange, Markers: []int{1}},
		{Strategy: StrategyEnclosing, Color: ColorBlue, Markers: []int{2}},
		{Strategy: StrategyEnclosing, Color: ColorGreen, Markers: []int{3}},
		{Strategy: StrategyClosest, Color: ColorWhite, Size: 2, Markers: []int{4}},
		{Strategy: StrategyPair, Color: ColorGray, Size: 1, Markers: []int{5, 6}},
		{Strategy: StrategyClosest, Color: ColorGray, Size: 2, Markers: []int{7}},
		{Strategy: StrategyClosest, Color: ColorGray, Size: 3, Markers: []int{8}},
		{Strategy: StrategyPair, Color: ColorGray, Size: 4, Markers: []int{9, 10}},
	}
}

// ValidateRoster checks group sizes and that every marker number is positive and used once
func ValidateRoster(roster []Group) error {
	if len(roster) == 0 {
		return errors.New("empty roster")
	}
	seen := make(map[int]struct{})
	for i, group := range roster {
		want := 1
		if group.Strategy == StrategyPair {
			want = 2
		}
		if len(group.Markers) != want {
			return errors.Errorf("group %d (%s): expected %d markers, got %d", i, group.Strategy, want, len(group.Markers))
		}
		if group.Color == "" {
			return errors.Errorf("group %d (%s): no color", i, group.Strategy)
		}
		for _, n := range group.Markers {
			if n <= 0 {
				return errors.Errorf("group %d: marker number must be positive, got %d", i, n)
			}
			if _, ok := seen[n]; ok {
				return errors.Errorf("group %d: marker %d is used twice", i, n)
			}
			seen[n] = struct{}{}
		}
	}
	return nil
}

func rosterNumbers(roster []Group) []int {
	numbers := make([]int, 0, len(roster)*2)
	for _, group := range roster {
		numbers = append(numbers, group.Markers...)
	}
	sort.Ints(numbers)
	return numbers
}
