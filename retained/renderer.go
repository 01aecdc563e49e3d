package retained

import (
	"fmt"
	"image/color"
	"maps"
	"slices"
	"strconv"
	"strings"
	"weak"
)

// Renderer property names. Themes use the same names as TOML keys.
const (
	PropBackgroundColor         = "background_color"
	PropBackgroundColorHover    = "background_color_hover"
	PropBackgroundColorDown     = "background_color_down"
	PropBackgroundColorDisabled = "background_color_disabled"
	PropBorderColor             = "border_color"
	PropBorderColorFocused      = "border_color_focused"
	PropBorders                 = "borders"
	PropPadding                 = "padding"
	PropTextColor               = "text_color"
	PropTextColorDisabled       = "text_color_disabled"
	PropTextSize                = "text_size"
	PropOpacity                 = "opacity"
	PropOpacityDisabled         = "opacity_disabled"
	PropTexture                 = "texture"
	PropCaretColor              = "caret_color"
	PropCaretWidth              = "caret_width"
	PropTitleBarColor           = "title_bar_color"
	PropTitleBarHeight          = "title_bar_height"
	PropTitleColor              = "title_color"
	PropCloseButtonColor        = "close_button_color"
	PropTabHeight               = "tab_height"
	PropTabColor                = "tab_color"
	PropSelectedTabColor        = "selected_tab_color"
	PropScrollbarColor          = "scrollbar_color"
	PropScrollbarWidth          = "scrollbar_width"
)

// RendererListener is implemented by widgets whose layout depends on
// renderer properties (borders, padding, title bar height). An empty
// property name means every property may have changed.
type RendererListener interface {
	RendererChanged(property string)
}

// ============================================================================
// Renderer Data
// ============================================================================

// RendererData is a bag of visual properties. It may be shared by several
// widgets; a widget that wants to change only its own look calls
// WidgetBase.Renderer, which copies shared data first.
type RendererData struct {
	props map[string]any
	users []weak.Pointer[WidgetBase]

	// themed bags belong to a Theme and are copied before any widget
	// changes them, even with a single user.
	themed bool
}

// NewRendererData returns an empty, unshared property bag.
func NewRendererData() *RendererData {
	return &RendererData{props: make(map[string]any)}
}

// Clone copies the properties into a new bag with no users.
func (r *RendererData) Clone() *RendererData {
	return &RendererData{props: maps.Clone(r.props)}
}

// Set changes a property and notifies every widget using the bag.
func (r *RendererData) Set(property string, value any) {
	r.props[property] = value
	for _, u := range r.liveUsers() {
		u.rendererChanged(property)
	}
}

// Get returns the raw value of a property.
func (r *RendererData) Get(property string) (any, bool) {
	v, ok := r.props[property]
	return v, ok
}

// Properties returns the property names in sorted order.
func (r *RendererData) Properties() []string {
	return slices.Sorted(maps.Keys(r.props))
}

// IsShared reports whether more than one widget uses the bag, or the bag
// belongs to a theme.
func (r *RendererData) IsShared() bool {
	n := len(r.liveUsers())
	return n > 1 || (r.themed && n > 0)
}

func (r *RendererData) attach(w *WidgetBase) {
	r.users = append(r.users, weak.Make(w))
}

func (r *RendererData) detach(w *WidgetBase) {
	r.users = slices.DeleteFunc(r.users, func(p weak.Pointer[WidgetBase]) bool {
		v := p.Value()
		return v == nil || v == w
	})
}

func (r *RendererData) liveUsers() []*WidgetBase {
	live := make([]*WidgetBase, 0, len(r.users))
	r.users = slices.DeleteFunc(r.users, func(p weak.Pointer[WidgetBase]) bool {
		v := p.Value()
		if v != nil {
			live = append(live, v)
		}
		return v == nil
	})
	return live
}

// Color returns a color property, or transparent.
func (r *RendererData) Color(property string) color.RGBA {
	c, _ := r.lookupColor(property)
	return c
}

// ColorOr returns a color property, or fallback when unset.
func (r *RendererData) ColorOr(property string, fallback color.RGBA) color.RGBA {
	if c, ok := r.lookupColor(property); ok {
		return c
	}
	return fallback
}

func (r *RendererData) lookupColor(property string) (color.RGBA, bool) {
	switch v := r.props[property].(type) {
	case color.RGBA:
		return v, true
	case color.Color:
		return color.RGBAModel.Convert(v).(color.RGBA), true
	case string:
		c, err := ParseColor(v)
		return c, err == nil
	}
	return color.RGBA{}, false
}

// Number returns a numeric property, or 0.
func (r *RendererData) Number(property string) float32 {
	v, _ := r.lookupNumber(property)
	return v
}

func (r *RendererData) lookupNumber(property string) (float32, bool) {
	return toFloat32(r.props[property])
}

// Outline returns an outline property. A single number is used for every
// side; lists of two or four numbers follow the CSS order.
func (r *RendererData) Outline(property string) Outline {
	switch v := r.props[property].(type) {
	case Outline:
		return v
	case []any:
		nums := make([]float32, 0, len(v))
		for _, e := range v {
			n, ok := toFloat32(e)
			if !ok {
				return Outline{}
			}
			nums = append(nums, n)
		}
		return outlineFromList(nums)
	case []float32:
		return outlineFromList(v)
	}
	if n, ok := toFloat32(r.props[property]); ok {
		return UniformOutline(n)
	}
	return Outline{}
}

func outlineFromList(nums []float32) Outline {
	switch len(nums) {
	case 1:
		return UniformOutline(nums[0])
	case 2:
		return Outline{nums[0], nums[1], nums[0], nums[1]}
	case 4:
		return Outline{nums[0], nums[1], nums[2], nums[3]}
	}
	return Outline{}
}

// Bool returns a boolean property, or false.
func (r *RendererData) Bool(property string) bool {
	b, _ := r.props[property].(bool)
	return b
}

// String returns a string property, or "".
func (r *RendererData) String(property string) string {
	s, _ := r.props[property].(string)
	return s
}

// Texture returns a texture property, or nil.
func (r *RendererData) Texture(property string) Texture {
	t, _ := r.props[property].(Texture)
	return t
}

func toFloat32(v any) (float32, bool) {
	switch n := v.(type) {
	case float32:
		return n, true
	case float64:
		return float32(n), true
	case int:
		return float32(n), true
	case int64:
		return float32(n), true
	}
	return 0, false
}

// ParseColor parses "#rgb", "#rrggbb" or "#rrggbbaa". The result is
// premultiplied.
func ParseColor(s string) (color.RGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	if len(hex) != 8 {
		return color.RGBA{}, fmt.Errorf("invalid color %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	c := color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}
	return color.RGBAModel.Convert(c).(color.RGBA), nil
}

// FormatColor renders a color in the form accepted by ParseColor.
func FormatColor(c color.RGBA) string {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	if n.A == 0xff {
		return fmt.Sprintf("#%02x%02x%02x", n.R, n.G, n.B)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", n.R, n.G, n.B, n.A)
}

// ============================================================================
// Widget access
// ============================================================================

// Renderer returns the widget's renderer for modification. Shared data is
// copied first so the change only affects this widget.
func (w *WidgetBase) Renderer() *RendererData {
	if w.renderer.IsShared() {
		clone := w.renderer.Clone()
		w.renderer.detach(w)
		clone.attach(w)
		w.renderer = clone
	}
	return w.renderer
}

// SharedRenderer returns the renderer without copying. Changes affect every
// widget sharing it.
func (w *WidgetBase) SharedRenderer() *RendererData {
	return w.renderer
}

// SetRenderer makes the widget use data, shared with any other user.
func (w *WidgetBase) SetRenderer(data *RendererData) {
	if data == nil || data == w.renderer {
		return
	}
	w.renderer.detach(w)
	data.attach(w)
	w.renderer = data
	w.rendererChanged("")
}

func (w *WidgetBase) rendererChanged(property string) {
	if property == "" || property == PropOpacity {
		if v, ok := w.renderer.lookupNumber(PropOpacity); ok {
			w.SetOpacity(v)
		}
	}
	if l, ok := w.self.(RendererListener); ok {
		guard(w, func() { l.RendererChanged(property) })
	}
}

// defaultRenderer returns the built-in look of a widget kind.
func defaultRenderer(kind WidgetKind) *RendererData {
	r := NewRendererData()
	set := func(k string, v any) { r.props[k] = v }
	switch kind {
	case KindPanel:
		set(PropBackgroundColor, color.RGBA{0xf0, 0xf0, 0xf0, 0xff})
	case KindScrollablePanel:
		set(PropBackgroundColor, color.RGBA{0xf0, 0xf0, 0xf0, 0xff})
		set(PropScrollbarColor, color.RGBA{0xa0, 0xa0, 0xa0, 0xff})
		set(PropScrollbarWidth, float32(8))
	case KindChildWindow:
		set(PropBackgroundColor, color.RGBA{0xe6, 0xe6, 0xe6, 0xff})
		set(PropBorderColor, color.RGBA{0x3c, 0x3c, 0x3c, 0xff})
		set(PropBorders, UniformOutline(1))
		set(PropTitleBarColor, color.RGBA{0xaa, 0xaa, 0xaa, 0xff})
		set(PropTitleColor, color.RGBA{0x3c, 0x3c, 0x3c, 0xff})
		set(PropTitleBarHeight, float32(22))
		set(PropCloseButtonColor, color.RGBA{0xc8, 0x50, 0x50, 0xff})
	case KindButton:
		set(PropBackgroundColor, color.RGBA{0xf5, 0xf5, 0xf5, 0xff})
		set(PropBackgroundColorHover, color.RGBA{0xff, 0xff, 0xff, 0xff})
		set(PropBackgroundColorDown, color.RGBA{0xeb, 0xeb, 0xeb, 0xff})
		set(PropBackgroundColorDisabled, color.RGBA{0xe6, 0xe6, 0xe6, 0xff})
		set(PropBorderColor, color.RGBA{0x3c, 0x3c, 0x3c, 0xff})
		set(PropBorderColorFocused, color.RGBA{0x1e, 0x1e, 0xb4, 0xff})
		set(PropBorders, UniformOutline(1))
		set(PropTextColor, color.RGBA{0x3c, 0x3c, 0x3c, 0xff})
		set(PropTextColorDisabled, color.RGBA{0x7d, 0x7d, 0x7d, 0xff})
	case KindLabel:
		set(PropTextColor, color.RGBA{0x3c, 0x3c, 0x3c, 0xff})
	case KindEditBox:
		set(PropBackgroundColor, color.RGBA{0xf5, 0xf5, 0xf5, 0xff})
		set(PropBorderColor, color.RGBA{0x3c, 0x3c, 0x3c, 0xff})
		set(PropBorderColorFocused, color.RGBA{0x1e, 0x1e, 0xb4, 0xff})
		set(PropBorders, UniformOutline(1))
		set(PropPadding, Outline{4, 2, 4, 2})
		set(PropTextColor, color.RGBA{0x3c, 0x3c, 0x3c, 0xff})
		set(PropCaretColor, color.RGBA{0x00, 0x00, 0x00, 0xff})
		set(PropCaretWidth, float32(1))
	case KindTabContainer:
		set(PropTabHeight, float32(24))
		set(PropTabColor, color.RGBA{0xdc, 0xdc, 0xdc, 0xff})
		set(PropSelectedTabColor, color.RGBA{0xf5, 0xf5, 0xf5, 0xff})
		set(PropBorderColor, color.RGBA{0x3c, 0x3c, 0x3c, 0xff})
		set(PropTextColor, color.RGBA{0x3c, 0x3c, 0x3c, 0xff})
	}
	return r
}
