package retained

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestParseConfig(t *testing.T) {
	data := []byte(`
double_click_ms = 300
tab_key_usage = false
text_size = 16
caret_blink_ms = 250

[theme.Button]
background_color = "#ff0000"
borders = [2, 3]
text_size = 18
`)
	cfg, err := ParseConfig(data)
	if err != nil {
		t.Fatalf("ParseConfig error = %v", err)
	}
	if cfg.DoubleClickTime() != 300*time.Millisecond {
		t.Errorf("DoubleClickTime = %v, want 300ms", cfg.DoubleClickTime())
	}
	if cfg.TabKeyUsage {
		t.Error("TabKeyUsage = true, want false")
	}
	if cfg.TextSize != 16 {
		t.Errorf("TextSize = %v, want 16", cfg.TextSize)
	}
	if cfg.CaretBlinkInterval() != 250*time.Millisecond {
		t.Errorf("CaretBlinkInterval = %v, want 250ms", cfg.CaretBlinkInterval())
	}

	r := cfg.Theme().Renderer(KindButton)
	if got, want := r.Color(PropBackgroundColor), (color.RGBA{0xff, 0, 0, 0xff}); got != want {
		t.Errorf("background_color = %v, want %v", got, want)
	}
	if got, want := r.Outline(PropBorders), (Outline{2, 3, 2, 3}); got != want {
		t.Errorf("borders = %v, want %v", got, want)
	}
	if got := r.Number(PropTextSize); got != 18 {
		t.Errorf("text_size = %v, want 18", got)
	}
	// Properties not in the file keep the built-in look.
	if got := r.Color(PropBorderColorFocused); got.A == 0 {
		t.Error("built-in border_color_focused was lost")
	}
}

func TestParseConfigDefaults(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "empty", data: ""},
		{name: "zero text size", data: "text_size = 0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := ParseConfig([]byte(tt.data))
			if err != nil {
				t.Fatalf("ParseConfig error = %v", err)
			}
			def := DefaultConfig()
			if cfg.TextSize != def.TextSize || cfg.DoubleClickMs != def.DoubleClickMs || cfg.TabKeyUsage != def.TabKeyUsage {
				t.Errorf("config = %+v, want defaults %+v", cfg, def)
			}
		})
	}
}

func TestParseConfigInvalid(t *testing.T) {
	for _, data := range []string{"double_click_ms = ", "[theme", `tab_key_usage = "yes"`} {
		if _, err := ParseConfig([]byte(data)); err == nil {
			t.Errorf("ParseConfig(%q) succeeded, want error", data)
		}
	}
}

func TestConfigRoundTrip(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DoubleClickMs = 420
	cfg.Verbose = true
	cfg.Styles = map[string]map[string]any{
		"Panel": {"background_color": "#102030"},
	}

	data, err := cfg.Encode()
	if err != nil {
		t.Fatalf("Encode error = %v", err)
	}
	got, err := ParseConfig(data)
	if err != nil {
		t.Fatalf("ParseConfig error = %v\n%s", err, data)
	}
	if got.DoubleClickMs != 420 || !got.Verbose || got.TextSize != cfg.TextSize {
		t.Errorf("round trip = %+v, want %+v", got, cfg)
	}
	if v := got.Styles["Panel"]["background_color"]; v != "#102030" {
		t.Errorf("theme value = %v, want #102030", v)
	}
}

func TestLoadAndSaveConfig(t *testing.T) {
	dir := t.TempDir()

	cfg, err := LoadConfig(filepath.Join(dir, "missing.toml"))
	if err != nil {
		t.Fatalf("LoadConfig(missing) error = %v", err)
	}
	if cfg.DoubleClickMs != DefaultConfig().DoubleClickMs {
		t.Errorf("missing file DoubleClickMs = %d, want default", cfg.DoubleClickMs)
	}

	path := filepath.Join(dir, "gui.toml")
	cfg.TextSize = 20
	if err := SaveConfig(path, cfg); err != nil {
		t.Fatalf("SaveConfig error = %v", err)
	}
	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig error = %v", err)
	}
	if loaded.TextSize != 20 {
		t.Errorf("TextSize = %v, want 20", loaded.TextSize)
	}

	bad := filepath.Join(dir, "bad.toml")
	if err := os.WriteFile(bad, []byte("text_size = ["), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(bad); err == nil {
		t.Error("LoadConfig(bad) succeeded, want error")
	}
}

func TestGuiUsesConfigTextSize(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TextSize = 20
	g := NewGui(cfg)
	l := NewLabel("x")
	if got := textSizeOf(&l.WidgetBase); got != DefaultConfig().TextSize {
		t.Errorf("detached text size = %v, want default", got)
	}
	mustAdd(t, g, l, "l")
	if got := textSizeOf(&l.WidgetBase); got != 20 {
		t.Errorf("text size = %v, want 20", got)
	}
	l.Renderer().Set(PropTextSize, 9)
	if got := textSizeOf(&l.WidgetBase); got != 9 {
		t.Errorf("renderer text size = %v, want 9", got)
	}
}
