package retained

import (
	"image/color"
	"slices"
	"testing"
)

func TestRendererCopyOnWrite(t *testing.T) {
	theme := NewTheme()
	a, b := NewPanel(), NewPanel()
	theme.Apply(a)
	theme.Apply(b)
	shared := theme.Renderer(KindPanel)

	if a.SharedRenderer() != shared || b.SharedRenderer() != shared {
		t.Fatal("theme renderer not shared")
	}
	a.Renderer().Set(PropBorders, UniformOutline(3))
	if a.SharedRenderer() == shared {
		t.Error("modifying a shared renderer did not copy it")
	}
	if got := b.SharedRenderer().Outline(PropBorders); got != (Outline{}) {
		t.Errorf("other widget sees borders %v", got)
	}
	if got := shared.Outline(PropBorders); got != (Outline{}) {
		t.Errorf("theme renderer changed to %v", got)
	}
	if got := a.SharedRenderer().Color(PropBackgroundColor); got != shared.Color(PropBackgroundColor) {
		t.Errorf("copy lost background %v", got)
	}
	a.SetSize(50, 50)
	if got, want := a.InnerSize(), (Vector2f{44, 44}); got != want {
		t.Errorf("InnerSize = %v, want %v", got, want)
	}
}

func TestThemedRendererCopiedForSingleUser(t *testing.T) {
	theme := NewTheme()
	a := NewButton("a")
	theme.Apply(a)
	if !theme.Renderer(KindButton).IsShared() {
		t.Error("theme renderer with one user is not shared")
	}
	a.Renderer().Set(PropTextSize, float32(30))
	if got := theme.Renderer(KindButton).Number(PropTextSize); got != 0 {
		t.Errorf("theme text_size = %v, want unset", got)
	}

	// A private renderer with a single user is changed in place.
	own := a.Renderer()
	if a.Renderer() != own {
		t.Error("private renderer was copied again")
	}
}

func TestSharedRendererNotifiesUsers(t *testing.T) {
	data := NewRendererData()
	a, b := NewPanel(), NewPanel()
	for _, p := range []*Panel{a, b} {
		p.SetSize(100, 100)
		p.SetRenderer(data)
	}
	if !data.IsShared() {
		t.Fatal("IsShared = false with two users")
	}

	data.Set(PropBorders, UniformOutline(4))
	for i, p := range []*Panel{a, b} {
		if got, want := p.InnerSize(), (Vector2f{92, 92}); got != want {
			t.Errorf("panel %d InnerSize = %v, want %v", i, got, want)
		}
	}

	data.Set(PropOpacity, float32(0.5))
	if got := b.Opacity(); got != 0.5 {
		t.Errorf("Opacity = %v, want 0.5", got)
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    color.RGBA
		wantErr bool
	}{
		{in: "#f00", want: color.RGBA{0xff, 0, 0, 0xff}},
		{in: "#00ff00", want: color.RGBA{0, 0xff, 0, 0xff}},
		{in: " 0000ff ", want: color.RGBA{0, 0, 0xff, 0xff}},
		{in: "#0000ff80", want: color.RGBA{0, 0, 0x80, 0x80}},
		{in: "#00000000", want: color.RGBA{}},
		{in: "#12", wantErr: true},
		{in: "#zzzzzz", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseColor(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseColor(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseColor(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestFormatColor(t *testing.T) {
	tests := []struct {
		in   color.RGBA
		want string
	}{
		{color.RGBA{0xff, 0, 0, 0xff}, "#ff0000"},
		{color.RGBA{0, 0, 0x80, 0x80}, "#0000ff80"},
		{color.RGBA{0x10, 0x20, 0x30, 0xff}, "#102030"},
	}
	for _, tt := range tests {
		if got := FormatColor(tt.in); got != tt.want {
			t.Errorf("FormatColor(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRendererOutline(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  Outline
	}{
		{name: "outline", value: Outline{1, 2, 3, 4}, want: Outline{1, 2, 3, 4}},
		{name: "number", value: float64(3), want: UniformOutline(3)},
		{name: "int", value: 2, want: UniformOutline(2)},
		{name: "one element list", value: []any{int64(5)}, want: UniformOutline(5)},
		{name: "two element list", value: []any{int64(1), 2.5}, want: Outline{1, 2.5, 1, 2.5}},
		{name: "four element list", value: []float32{1, 2, 3, 4}, want: Outline{1, 2, 3, 4}},
		{name: "three element list", value: []float32{1, 2, 3}, want: Outline{}},
		{name: "non numeric list", value: []any{"a"}, want: Outline{}},
		{name: "string", value: "wide", want: Outline{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRendererData()
			r.Set(PropPadding, tt.value)
			if got := r.Outline(PropPadding); got != tt.want {
				t.Errorf("Outline = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRendererColorSources(t *testing.T) {
	r := NewRendererData()
	r.Set(PropTextColor, "#336699")
	r.Set(PropBorderColor, color.NRGBA{0xff, 0xff, 0xff, 0x80})
	if got, want := r.Color(PropTextColor), (color.RGBA{0x33, 0x66, 0x99, 0xff}); got != want {
		t.Errorf("string color = %v, want %v", got, want)
	}
	if got, want := r.Color(PropBorderColor), (color.RGBA{0x80, 0x80, 0x80, 0x80}); got != want {
		t.Errorf("NRGBA color = %v, want %v", got, want)
	}
	if got, want := r.ColorOr(PropTabColor, color.RGBA{1, 2, 3, 4}), (color.RGBA{1, 2, 3, 4}); got != want {
		t.Errorf("ColorOr = %v, want %v", got, want)
	}
	if got := r.Properties(); !slices.Equal(got, []string{PropBorderColor, PropTextColor}) {
		t.Errorf("Properties = %v", got)
	}
}
