package retained

// ============================================================================
// Group
// ============================================================================

// Group is an undecorated container. Its renderer's padding insets the
// child area.
type Group struct {
	Container
}

// NewGroup creates an empty group.
func NewGroup() *Group {
	g := &Group{}
	g.initGroup(g, KindGroup)
	return g
}

func (g *Group) initGroup(self Widget, kind WidgetKind) {
	g.initContainer(self, kind)
	g.setInsets(g.renderer.Outline(PropPadding))
}

// RendererChanged keeps the child area in sync with the padding.
func (g *Group) RendererChanged(property string) {
	if property == "" || property == PropPadding {
		g.setInsets(g.renderer.Outline(PropPadding))
	}
}

// ============================================================================
// Panel
// ============================================================================

// Panel is a container with a background and borders. Children are placed
// inside the borders and padding.
type Panel struct {
	Container
}

// NewPanel creates an empty panel.
func NewPanel() *Panel {
	p := &Panel{}
	p.initPanel(p, KindPanel)
	return p
}

func (p *Panel) initPanel(self Widget, kind WidgetKind) {
	p.initContainer(self, kind)
	p.updateInsets()
}

func (p *Panel) updateInsets() {
	r := p.renderer
	p.setInsets(r.Outline(PropBorders).Add(r.Outline(PropPadding)))
}

// RendererChanged keeps the child area in sync with borders and padding.
func (p *Panel) RendererChanged(property string) {
	switch property {
	case "", PropBorders, PropPadding:
		p.updateInsets()
	}
}

// Draw fills the background, draws the borders and then the children.
func (p *Panel) Draw(target RenderTarget, states RenderStates) {
	drawBackground(target, states, p.renderer, p.Size())
	p.DrawChildren(target, states)
}
