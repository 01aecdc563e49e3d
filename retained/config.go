package retained

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// ============================================================================
// Configuration
// ============================================================================

// Config holds the settings of one Gui. It is plain data loaded from TOML;
// there is no process-wide configuration.
type Config struct {
	// DoubleClickMs is the longest gap between two clicks that still counts
	// as a double click.
	DoubleClickMs int `toml:"double_click_ms"`

	// TabKeyUsage enables focus traversal with Tab and Shift+Tab.
	TabKeyUsage bool `toml:"tab_key_usage"`

	// TextSize is used by text widgets whose renderer has no text_size.
	TextSize float32 `toml:"text_size"`

	// CaretBlinkMs is the caret blink half-period of edit boxes.
	CaretBlinkMs int `toml:"caret_blink_ms"`

	// ToolTipDelayMs is how long the mouse must rest before a tool tip is
	// shown.
	ToolTipDelayMs int `toml:"tool_tip_delay_ms"`

	// ToolTipDistance is added to the mouse position to place a tool tip.
	ToolTipDistance [2]float32 `toml:"tool_tip_distance"`

	// Verbose turns on debug logging for the Gui created with this
	// configuration.
	Verbose bool `toml:"verbose"`

	// Styles maps a widget kind to renderer properties, e.g.
	//
	//	[theme.Button]
	//	background_color = "#f5f5f5"
	//	borders = [1, 1, 1, 1]
	Styles map[string]map[string]any `toml:"theme,omitempty"`
}

// DefaultConfig returns the settings used when no file is given.
func DefaultConfig() Config {
	return Config{
		DoubleClickMs:   500,
		TabKeyUsage:     true,
		TextSize:        13,
		CaretBlinkMs:    500,
		ToolTipDelayMs:  500,
		ToolTipDistance: [2]float32{5, 20},
	}
}

// DoubleClickTime returns DoubleClickMs as a duration.
func (c Config) DoubleClickTime() time.Duration {
	return time.Duration(c.DoubleClickMs) * time.Millisecond
}

// CaretBlinkInterval returns CaretBlinkMs as a duration.
func (c Config) CaretBlinkInterval() time.Duration {
	return time.Duration(c.CaretBlinkMs) * time.Millisecond
}

// ToolTipDelay returns ToolTipDelayMs as a duration.
func (c Config) ToolTipDelay() time.Duration {
	return time.Duration(c.ToolTipDelayMs) * time.Millisecond
}

// ParseConfig decodes TOML on top of the defaults.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config: %w", err)
	}
	if cfg.TextSize <= 0 {
		cfg.TextSize = DefaultConfig().TextSize
	}
	return cfg, nil
}

// LoadConfig reads a TOML file. A missing file yields the defaults.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return DefaultConfig(), nil
	}
	if err != nil {
		return DefaultConfig(), fmt.Errorf("failed to read %s: %w", path, err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Encode renders the configuration as TOML.
func (c Config) Encode() ([]byte, error) {
	data, err := toml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	return data, nil
}

// SaveConfig writes the configuration to path.
func SaveConfig(path string, cfg Config) error {
	data, err := cfg.Encode()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// Theme builds the renderer bundles described by the [theme] tables.
func (c Config) Theme() *Theme {
	t := NewTheme()
	for kind, props := range c.Styles {
		r := t.Renderer(WidgetKind(kind))
		for k, v := range props {
			r.Set(k, v)
		}
	}
	return t
}

// ============================================================================
// Theme
// ============================================================================

// Theme holds one shared renderer per widget kind. Widgets given a theme
// renderer share it until they modify their own copy through
// WidgetBase.Renderer.
type Theme struct {
	renderers map[WidgetKind]*RendererData
}

// NewTheme returns a theme with the built-in look.
func NewTheme() *Theme {
	return &Theme{renderers: make(map[WidgetKind]*RendererData)}
}

// Renderer returns the shared renderer of a kind, creating it from the
// built-in look on first use.
func (t *Theme) Renderer(kind WidgetKind) *RendererData {
	r, ok := t.renderers[kind]
	if !ok {
		r = defaultRenderer(kind)
		r.themed = true
		t.renderers[kind] = r
	}
	return r
}

// Apply gives w the theme's renderer for its kind.
func (t *Theme) Apply(w Widget) {
	b := w.Base()
	b.SetRenderer(t.Renderer(b.kind))
}

// ApplyTree applies the theme to w and all its descendants.
func (t *Theme) ApplyTree(w Widget) {
	w.Base().walk(func(b *WidgetBase) {
		b.SetRenderer(t.Renderer(b.kind))
	})
}
