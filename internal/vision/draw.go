package vision

import (
	"image"
	"image/color"
	"strconv"

	"github.com/LdDl/bubbles-go/bubbles"
	"gocv.io/x/gocv"
)

var (
	// ColorUniqueOutline is used for markers with a color of their own
	ColorUniqueOutline = color.RGBA{255, 0, 255, 0}
	// DefaultOutline is used for the rest of markers
	DefaultOutline = color.RGBA{255, 255, 0, 0}
	labelColor     = color.RGBA{255, 0, 0, 0}
)

const (
	outlineThickness = 3
	labelScale       = 1.0
	labelThickness   = 3
)

// DrawCircles draws outlines and labels of circles. Nil circles are skipped.
func DrawCircles(img *gocv.Mat, circles []*bubbles.Circle, outline color.RGBA, label string) {
	for _, c := range circles {
		if c == nil {
			continue
		}
		gocv.Circle(img, c.ImageCenter(), c.R, outline, outlineThickness)
		gocv.PutText(img, label, image.Pt(c.X-7, c.Y+7), gocv.FontHersheySimplex, labelScale, labelColor, labelThickness)
	}
}

// Annotate draws every resolved marker of the frame
func Annotate(img *gocv.Mat, result *bubbles.FrameResult) {
	for _, res := range result.Resolutions {
		if res.Circle == nil {
			continue
		}
		outline := DefaultOutline
		if res.Strategy == bubbles.StrategyEnclosing {
			outline = ColorUniqueOutline
		}
		DrawCircles(img, []*bubbles.Circle{res.Circle}, outline, strconv.Itoa(res.Marker))
	}
}
