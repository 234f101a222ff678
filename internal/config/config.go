package config

import (
	"os"
	"path/filepath"

	"github.com/LdDl/bubbles-go/bubbles"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config is the complete tracker configuration
type Config struct {
	Input  InputConfig  `yaml:"input"`
	Output OutputConfig `yaml:"output"`
	Blur   BlurConfig   `yaml:"blur"`
	// TrackLen bounds number of recent positions kept per marker for the trajectory plot
	TrackLen int `yaml:"track_len"`
	// Colors maps color class name to its BGR range
	Colors map[bubbles.ColorClass]bubbles.ColorRange `yaml:"colors"`
	// Sizes maps size class to Hough detector options
	Sizes map[bubbles.SizeClass]bubbles.HoughOptions `yaml:"sizes"`
}

// InputConfig contains source video settings
type InputConfig struct {
	Video string `yaml:"video"`
}

// OutputConfig contains output paths. Empty Database or Plot disables the sink.
type OutputConfig struct {
	Video    string `yaml:"video"`
	Codec    string `yaml:"codec"`
	Log      string `yaml:"log"`
	Database string `yaml:"database,omitempty"`
	Plot     string `yaml:"plot,omitempty"`
}

// BlurConfig is Gaussian blur applied to each frame before color masking
type BlurConfig struct {
	Kernel int     `yaml:"kernel"`
	Sigma  float64 `yaml:"sigma"`
}

// Default returns configuration tuned for the reference recording
func Default() *Config {
	return &Config{
		Input: InputConfig{
			Video: "Track_Circles.mp4",
		},
		Output: OutputConfig{
			Video: "Track_Circles_Output.mp4",
			Codec: "avc1",
			Log:   "bubble_locations.txt",
		},
		Blur: BlurConfig{
			Kernel: 5,
			Sigma:  1.5,
		},
		TrackLen: 150,
		Colors: map[bubbles.ColorClass]bubbles.ColorRange{
			bubbles.ColorWhite:  {Low: [3]uint8{251, 251, 251}, High: [3]uint8{255, 255, 255}},
			bubbles.ColorGray:   {Low: [3]uint8{227, 227, 227}, High: [3]uint8{233, 233, 233}},
			bubbles.ColorGreen:  {Low: [3]uint8{139, 205, 165}, High: [3]uint8{147, 211, 171}},
			bubbles.ColorOrange: {Low: [3]uint8{170, 200, 243}, High: [3]uint8{175, 205, 248}},
			bubbles.ColorBlue:   {Low: [3]uint8{228, 196, 176}, High: [3]uint8{232, 200, 180}},
		},
		Sizes: map[bubbles.SizeClass]bubbles.HoughOptions{
			1: {MinRadius: 97, MaxRadius: 110, MinDist: 30, Param1: 30, Param2: 10},
			2: {MinRadius: 55, MaxRadius: 72, MinDist: 15, Param1: 30, Param2: 20},
			3: {MinRadius: 37, MaxRadius: 52, MinDist: 15, Param1: 30, Param2: 20},
			4: {MinRadius: 22, MaxRadius: 34, MinDist: 15, Param1: 30, Param2: 15},
		},
	}
}

// Load reads YAML file on top of Default, so partial files are fine.
// Color and size entries given in the file replace the default entry as a whole.
func Load(path string) (*Config, error) {
	cleanPath := filepath.Clean(path)
	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, errors.Wrapf(err, "Can't read config file %s", cleanPath)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrapf(err, "Can't parse config file %s", cleanPath)
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "Invalid configuration")
	}
	return cfg, nil
}

// Validate checks that configuration covers the roster and is consistent
func (cfg *Config) Validate() error {
	if cfg.Input.Video == "" {
		return errors.New("input video is not set")
	}
	if cfg.Output.Log == "" {
		return errors.New("output log is not set")
	}
	if cfg.Output.Video != "" && len(cfg.Output.Codec) != 4 {
		return errors.Errorf("codec must be a fourcc, got %q", cfg.Output.Codec)
	}
	if cfg.Blur.Kernel <= 0 || cfg.Blur.Kernel%2 == 0 {
		return errors.Errorf("blur kernel must be positive and odd, got %d", cfg.Blur.Kernel)
	}
	if cfg.Blur.Sigma < 0 {
		return errors.Errorf("blur sigma must not be negative, got %f", cfg.Blur.Sigma)
	}
	if cfg.TrackLen <= 0 {
		return errors.Errorf("track length must be positive, got %d", cfg.TrackLen)
	}
	for name, colorRange := range cfg.Colors {
		for ch := 0; ch < 3; ch++ {
			if colorRange.Low[ch] > colorRange.High[ch] {
				return errors.Errorf("color %s: channel %d low %d is above high %d", name, ch, colorRange.Low[ch], colorRange.High[ch])
			}
		}
	}
	for size, opts := range cfg.Sizes {
		if opts.MinRadius < 0 || opts.MinRadius > opts.MaxRadius {
			return errors.Errorf("size %d: bad radius range [%d, %d]", size, opts.MinRadius, opts.MaxRadius)
		}
		if opts.MinDist <= 0 {
			return errors.Errorf("size %d: min distance must be positive, got %f", size, opts.MinDist)
		}
		if opts.Param1 <= 0 || opts.Param2 <= 0 {
			return errors.Errorf("size %d: detector parameters must be positive", size)
		}
	}
	return nil
}

// CheckRoster makes sure every group of the roster has its color and size configured
func (cfg *Config) CheckRoster(roster []bubbles.Group) error {
	for _, group := range roster {
		if _, ok := cfg.Colors[group.Color]; !ok {
			return errors.Errorf("markers %v: color %q is not configured", group.Markers, group.Color)
		}
		if group.Strategy == bubbles.StrategyEnclosing {
			continue
		}
		if _, ok := cfg.Sizes[group.Size]; !ok {
			return errors.Errorf("markers %v: size %d is not configured", group.Markers, group.Size)
		}
	}
	return nil
}
