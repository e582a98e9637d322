package stream

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v2"

	"github.com/Ts0n/rekapi/kapi"
)

var (
	// ErrInvalidConfig is returned for configuration that cannot run.
	ErrInvalidConfig = errors.New("stream: invalid config")
	// ErrUnknownPainter is returned for a painter name with no Painter.
	ErrUnknownPainter = errors.New("stream: unknown painter")
)

const (
	DefaultTopic = "rekapi/stream"
	DefaultAddr  = ":3000"
)

// Config of the streaming daemon, read from YAML.
type Config struct {
	Mqtt struct {
		URL      string `yaml:"url"`
		Username string `yaml:"username"`
		Password string `yaml:"password"`
		Topics   struct {
			Stream string `yaml:"stream"`
		} `yaml:"topics"`
	} `yaml:"mqtt"`
	HTTP struct {
		Addr string `yaml:"addr"`
	} `yaml:"http"`
	Show ShowConfig `yaml:"show"`
}

// ShowConfig describes the animation to play.
type ShowConfig struct {
	FPS           float64       `yaml:"fps"`
	Pixels        int           `yaml:"pixels"`
	Iterations    int           `yaml:"iterations"`
	ClearOnUpdate *bool         `yaml:"clearOnUpdate"`
	Persistence   float64       `yaml:"persistence"`
	Actors        []ActorConfig `yaml:"actors"`
}

// ActorConfig describes one Strip and its keyframes.
type ActorConfig struct {
	Name      string           `yaml:"name"`
	Painter   string           `yaml:"painter"`
	Gradient  GradientTable    `yaml:"gradient"`
	Palette   []string         `yaml:"palette"`
	Particles int              `yaml:"particles"`
	Seed      int64            `yaml:"seed"`
	Keyframes []KeyframeConfig `yaml:"keyframes"`
}

// KeyframeConfig is one call to Actor.Keyframe. Easings overrides Easing per
// property.
type KeyframeConfig struct {
	At      float64                `yaml:"at"`
	State   map[string]interface{} `yaml:"state"`
	Easing  string                 `yaml:"easing"`
	Easings map[string]string      `yaml:"easings"`
}

// LoadConfig reads, defaults and validates the YAML config at path.
func LoadConfig(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, err
	}
	defer f.Close()

	return ParseConfig(f)
}

// ParseConfig reads, defaults and validates a YAML config. REKAPI_MQTT_*
// variables override the broker settings.
func ParseConfig(r io.Reader) (Config, error) {
	var c Config
	decoder := yaml.NewDecoder(r)
	if err := decoder.Decode(&c); err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	c.ApplyEnv()
	c.SetDefaults()
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// ApplyEnv overrides the broker settings from REKAPI_MQTT_URL,
// REKAPI_MQTT_USERNAME and REKAPI_MQTT_PASSWORD when they are set.
func (c *Config) ApplyEnv() {
	if v := os.Getenv("REKAPI_MQTT_URL"); v != "" {
		c.Mqtt.URL = v
	}
	if v := os.Getenv("REKAPI_MQTT_USERNAME"); v != "" {
		c.Mqtt.Username = v
	}
	if v := os.Getenv("REKAPI_MQTT_PASSWORD"); v != "" {
		c.Mqtt.Password = v
	}
}

// SetDefaults fills in every unset optional field.
func (c *Config) SetDefaults() {
	if c.Mqtt.Topics.Stream == "" {
		c.Mqtt.Topics.Stream = DefaultTopic
	}
	if c.HTTP.Addr == "" {
		c.HTTP.Addr = DefaultAddr
	}
	if c.Show.FPS == 0 {
		c.Show.FPS = kapi.DefaultConfig.FPS
	}
	if c.Show.Pixels == 0 {
		c.Show.Pixels = DefaultPixels
	}
	if c.Show.Iterations == 0 {
		c.Show.Iterations = kapi.Infinite
	}
}

// Validate reports the first problem found in c.
func (c *Config) Validate() error {
	if c.Mqtt.URL == "" {
		return fmt.Errorf("%w: mqtt.url is required", ErrInvalidConfig)
	}
	return c.Show.Validate()
}

// Validate reports the first problem found in the show.
func (s ShowConfig) Validate() error {
	if s.FPS <= 0 {
		return fmt.Errorf("%w: show.fps must be positive", ErrInvalidConfig)
	}
	if s.Pixels <= 0 || s.Pixels > MaxPixels {
		return fmt.Errorf("%w: show.pixels must be between 1 and %d", ErrInvalidConfig, MaxPixels)
	}
	if s.Persistence < 0 || s.Persistence >= 1 {
		return fmt.Errorf("%w: show.persistence must be in [0, 1)", ErrInvalidConfig)
	}
	for i, a := range s.Actors {
		if _, err := NewPainter(a); err != nil {
			if errors.Is(err, ErrInvalidConfig) {
				return fmt.Errorf("show.actors[%d]: %w", i, err)
			}
			return fmt.Errorf("%w: show.actors[%d]: %w", ErrInvalidConfig, i, err)
		}
		for j, kf := range a.Keyframes {
			if kf.At < 0 {
				return fmt.Errorf("%w: show.actors[%d].keyframes[%d]: negative time", ErrInvalidConfig, i, j)
			}
			if len(kf.State) == 0 {
				return fmt.Errorf("%w: show.actors[%d].keyframes[%d]: empty state", ErrInvalidConfig, i, j)
			}
		}
	}
	return nil
}
