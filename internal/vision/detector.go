package vision

import (
	"image"

	"github.com/LdDl/bubbles-go/bubbles"
	"github.com/pkg/errors"
	"gocv.io/x/gocv"
)

// houghBlurKernel and houghBlurSigma smooth a binary mask before circle detection
const (
	houghBlurKernel = 5
	houghBlurSigma  = 3.0
)

// Analyzer prepares frames for circle detection.
// It holds color ranges and Hough options for every color and size class.
type Analyzer struct {
	colors     map[bubbles.ColorClass]bubbles.ColorRange
	sizes      map[bubbles.SizeClass]bubbles.HoughOptions
	blurKernel int
	blurSigma  float64
}

// NewAnalyzer creates new instance of Analyzer
func NewAnalyzer(colors map[bubbles.ColorClass]bubbles.ColorRange, sizes map[bubbles.SizeClass]bubbles.HoughOptions, blurKernel int, blurSigma float64) *Analyzer {
	return &Analyzer{
		colors:     colors,
		sizes:      sizes,
		blurKernel: blurKernel,
		blurSigma:  blurSigma,
	}
}

// Analyze blurs the frame and returns detector bound to it.
// Caller must Close the result.
func (analyzer *Analyzer) Analyze(frame gocv.Mat) (*FrameAnalysis, error) {
	if frame.Empty() {
		return nil, errors.New("empty frame")
	}
	blurred := gocv.NewMat()
	gocv.GaussianBlur(frame, &blurred, image.Pt(analyzer.blurKernel, analyzer.blurKernel), analyzer.blurSigma, analyzer.blurSigma, gocv.BorderDefault)
	return &FrameAnalysis{
		analyzer: analyzer,
		blurred:  blurred,
		masks:    make(map[bubbles.ColorClass]gocv.Mat),
	}, nil
}

// FrameAnalysis implements bubbles.FrameDetector for a single frame.
// Color masks are computed once and shared between size classes.
type FrameAnalysis struct {
	analyzer *Analyzer
	blurred  gocv.Mat
	masks    map[bubbles.ColorClass]gocv.Mat
}

// Close releases every Mat held by the analysis
func (fa *FrameAnalysis) Close() error {
	for color, mask := range fa.masks {
		mask.Close()
		delete(fa.masks, color)
	}
	return fa.blurred.Close()
}

func (fa *FrameAnalysis) mask(color bubbles.ColorClass) (gocv.Mat, error) {
	if mask, ok := fa.masks[color]; ok {
		return mask, nil
	}
	colorRange, ok := fa.analyzer.colors[color]
	if !ok {
		return gocv.Mat{}, errors.Errorf("color %q is not configured", color)
	}
	mask := ColorMask(fa.blurred, colorRange)
	fa.masks[color] = mask
	return mask, nil
}

// EnclosingCircle implements bubbles.FrameDetector
func (fa *FrameAnalysis) EnclosingCircle(color bubbles.ColorClass) (*bubbles.Circle, error) {
	mask, err := fa.mask(color)
	if err != nil {
		return nil, err
	}
	return FindEnclosingCircle(mask), nil
}

// HoughCircles implements bubbles.FrameDetector
func (fa *FrameAnalysis) HoughCircles(color bubbles.ColorClass, size bubbles.SizeClass) ([]*bubbles.Circle, error) {
	opts, ok := fa.analyzer.sizes[size]
	if !ok {
		return nil, errors.Errorf("size %d is not configured", size)
	}
	mask, err := fa.mask(color)
	if err != nil {
		return nil, err
	}
	return FindCircles(mask, opts), nil
}

// ColorMask returns binary mask of pixels within inclusive BGR range. Caller must close it.
func ColorMask(frame gocv.Mat, colorRange bubbles.ColorRange) gocv.Mat {
	lower := gocv.NewScalar(float64(colorRange.Low[0]), float64(colorRange.Low[1]), float64(colorRange.Low[2]), 0)
	upper := gocv.NewScalar(float64(colorRange.High[0]), float64(colorRange.High[1]), float64(colorRange.High[2]), 0)
	mask := gocv.NewMat()
	gocv.InRangeWithScalar(frame, lower, upper, &mask)
	return mask
}

// FindCircles finds circles on binary mask with Hough gradient method
func FindCircles(mask gocv.Mat, opts bubbles.HoughOptions) []*bubbles.Circle {
	blurred := gocv.NewMat()
	defer blurred.Close()
	gocv.GaussianBlur(mask, &blurred, image.Pt(houghBlurKernel, houghBlurKernel), houghBlurSigma, houghBlurSigma, gocv.BorderDefault)

	circles := gocv.NewMat()
	defer circles.Close()
	gocv.HoughCirclesWithParams(blurred, &circles, gocv.HoughGradient, 1, opts.MinDist, opts.Param1, opts.Param2, opts.MinRadius, opts.MaxRadius)

	if circles.Empty() || circles.Cols() == 0 {
		return nil
	}
	found := make([]*bubbles.Circle, circles.Cols())
	for i := 0; i < circles.Cols(); i++ {
		found[i] = bubbles.NewCircle(
			float64(circles.GetFloatAt(0, i*3)),
			float64(circles.GetFloatAt(0, i*3+1)),
			float64(circles.GetFloatAt(0, i*3+2)),
		)
	}
	return found
}

// FindEnclosingCircle returns minimal circle enclosing every contour of the mask,
// nil when the mask is empty. Works when the color isolates a marker well enough
// and is more stable than Hough detection in that case.
func FindEnclosingCircle(mask gocv.Mat) *bubbles.Circle {
	contours := gocv.FindContours(mask, gocv.RetrievalTree, gocv.ChainApproxSimple)
	defer contours.Close()
	if contours.Size() == 0 {
		return nil
	}
	all := make([]image.Point, 0)
	for _, contour := range contours.ToPoints() {
		all = append(all, contour...)
	}
	points := gocv.NewPointVectorFromPoints(all)
	defer points.Close()
	x, y, radius := gocv.MinEnclosingCircle(points)
	if radius == 0 {
		return nil
	}
	return bubbles.NewCircle(float64(x), float64(y), float64(radius))
}
