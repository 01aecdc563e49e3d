// Package demo builds the sample widget tree shown by "tessera demo" and
// "tessera dump".
package demo

import (
	"fmt"

	"github.com/agiangrant/tessera/retained"
)

// Demo holds the widgets the sample wires together.
type Demo struct {
	Tabs   *retained.TabContainer
	Form   *retained.Grid
	Name   *retained.EditBox
	Email  *retained.EditBox
	Submit *retained.Button
	Status *retained.Label
	Column *retained.BoxLayout
	List   *retained.ScrollablePanel
	About  *retained.ChildWindow
}

// Build adds the sample tree to gui: a tab container with a form page, a box
// layout page and a scrolling list, plus a movable "about" window on top.
func Build(gui *retained.Gui) (*Demo, error) {
	d := &Demo{}

	d.Tabs = retained.NewTabContainer()
	d.Tabs.SetSizeLayout(retained.Layout2d{X: retained.Percent(100), Y: retained.Percent(100)})
	if err := gui.Add(d.Tabs, "tabs"); err != nil {
		return nil, err
	}

	if err := d.buildForm(d.Tabs.AddTab("Form", true)); err != nil {
		return nil, fmt.Errorf("form page: %w", err)
	}
	if err := d.buildColumn(d.Tabs.AddTab("Layout", false)); err != nil {
		return nil, fmt.Errorf("layout page: %w", err)
	}
	if err := d.buildList(d.Tabs.AddTab("Scroll", false)); err != nil {
		return nil, fmt.Errorf("scroll page: %w", err)
	}
	if err := d.buildAbout(gui); err != nil {
		return nil, fmt.Errorf("about window: %w", err)
	}
	return d, nil
}

func (d *Demo) buildForm(page *retained.Panel) error {
	d.Form = retained.NewGrid()
	d.Form.SetPosition(16, 16)

	d.Name = retained.NewEditBox()
	d.Name.SetSize(200, 24)
	d.Name.SetPlaceholder("your name")
	d.Email = retained.NewEditBox()
	d.Email.SetSize(200, 24)
	d.Email.Buffer().SetMaxLength(64)

	cells := []struct {
		w         retained.Widget
		row, col  int
		name      string
		alignment retained.Alignment
	}{
		{label("Name"), 0, 0, "name-label", retained.AlignLeft},
		{d.Name, 0, 1, "name", retained.AlignCenter},
		{label("Email"), 1, 0, "email-label", retained.AlignLeft},
		{d.Email, 1, 1, "email", retained.AlignCenter},
	}
	for _, c := range cells {
		if err := d.Form.AddAt(c.w, c.row, c.col, c.name); err != nil {
			return err
		}
		d.Form.SetAlignment(c.w, c.alignment)
		d.Form.SetPadding(c.w, retained.UniformOutline(4))
	}
	if err := page.Add(d.Form, "form"); err != nil {
		return err
	}

	d.Submit = retained.NewButton("Submit")
	d.Submit.SetSize(100, 28)
	tip := retained.NewLabel("Greets the name above")
	tip.SetSize(170, 18)
	d.Submit.SetToolTip(tip)
	if err := page.Add(d.Submit, "submit"); err != nil {
		return err
	}
	if err := d.Submit.SetPositionExpr("form.left, form.bottom + 10"); err != nil {
		return err
	}

	d.Status = retained.NewLabel("")
	if err := page.Add(d.Status, "status"); err != nil {
		return err
	}
	if err := d.Status.SetPositionExpr("submit.right + 10, submit.top + 6"); err != nil {
		return err
	}
	if err := d.Status.SetSizeExpr("parent.width - &.left - 16, 16"); err != nil {
		return err
	}

	greet := func(string) { d.Status.SetText(greeting(d.Name.Text())) }
	d.Submit.OnPress.Connect(func() { greet("") })
	d.Name.OnReturn.Connect(greet)
	return nil
}

func label(text string) *retained.Label {
	l := retained.NewLabel(text)
	l.SetSize(60, 16)
	return l
}

func greeting(name string) string {
	if name == "" {
		return "Please enter a name."
	}
	return "Hello, " + name + "!"
}

func (d *Demo) buildColumn(page *retained.Panel) error {
	d.Column = retained.NewVerticalLayout()
	d.Column.SetSizeLayout(retained.Layout2d{
		X: retained.Const(240),
		Y: retained.ParentRef(retained.FieldHeight).Minus(retained.Const(32)),
	})
	d.Column.SetPosition(16, 16)
	d.Column.SetSpacing(8)
	if err := page.Add(d.Column, "column"); err != nil {
		return err
	}
	for i, title := range []string{"One", "Two", "Three"} {
		if err := d.Column.Add(retained.NewButton(title), fmt.Sprintf("button-%d", i+1)); err != nil {
			return err
		}
	}
	d.Column.SetFixedSize(0, 40)
	d.Column.AddSpace(2)
	return nil
}

// listRows is the number of labels on the scroll page.
const listRows = 40

func (d *Demo) buildList(page *retained.Panel) error {
	d.List = retained.NewScrollablePanel()
	d.List.SetPosition(16, 16)
	d.List.SetSizeLayout(retained.Layout2d{
		X: retained.Const(240),
		Y: retained.ParentRef(retained.FieldHeight).Minus(retained.Const(32)),
	})
	if err := page.Add(d.List, "list"); err != nil {
		return err
	}
	for i := range listRows {
		row := retained.NewLabel(fmt.Sprintf("Row %d", i+1))
		row.SetPosition(8, float32(i*24+4))
		row.SetSize(200, 16)
		if err := d.List.Add(row, fmt.Sprintf("row-%d", i+1)); err != nil {
			return err
		}
	}
	return nil
}

func (d *Demo) buildAbout(gui *retained.Gui) error {
	d.About = retained.NewChildWindow("About")
	d.About.SetSize(260, 120)
	d.About.SetPositionLayout(retained.Layout2d{
		X: retained.Percent(100).Minus(retained.Const(280)),
		Y: retained.Const(60),
	})
	d.About.SetKeepInParent(true)
	if err := gui.Add(d.About, "about"); err != nil {
		return err
	}

	text := retained.NewLabel("tessera widget demo")
	text.SetPosition(10, 10)
	text.SetSize(240, 16)
	if err := d.About.Add(text, "text"); err != nil {
		return err
	}
	ok := retained.NewButton("OK")
	ok.SetSize(60, 24)
	if err := d.About.Add(ok, "ok"); err != nil {
		return err
	}
	if err := ok.SetPositionExpr("parent.width - &.width - 10, parent.height - &.height - 10"); err != nil {
		return err
	}
	ok.OnPress.Connect(func() { d.About.Close() })
	return nil
}
