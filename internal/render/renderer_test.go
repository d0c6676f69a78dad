package render

import (
	"errors"
	"log/slog"
	"strings"
	"testing"

	"resumecraft/internal/resume"
	"resumecraft/internal/template"
)

func newTestRenderer(t *testing.T) *Renderer {
	t.Helper()
	r, err := New(template.Builtin(), slog.New(slog.NewTextHandler(&strings.Builder{}, nil)))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	return r
}

func TestRender_UnknownTemplate(t *testing.T) {
	r := newTestRenderer(t)

	_, err := r.Render(Context{Data: resume.Sample(), TemplateID: "no-such-template"})
	if !errors.Is(err, ErrTemplateNotFound) {
		t.Fatalf("err = %v, want ErrTemplateNotFound", err)
	}
}

func TestRender_SidebarLayoutSplitsPersonalInfo(t *testing.T) {
	r := newTestRenderer(t)
	data := resume.Sample()

	html, err := r.Render(Context{Data: data, TemplateID: "chikorita"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	if !strings.Contains(html, `class="layout-sidebar"`) {
		t.Fatal("chikorita must render the sidebar layout shell")
	}

	mainStart := strings.Index(html, `class="column-main"`)
	sidebarStart := strings.Index(html, `class="column-sidebar"`)
	if mainStart < 0 || sidebarStart < 0 || mainStart > sidebarStart {
		t.Fatalf("column markers missing or out of order: main=%d sidebar=%d", mainStart, sidebarStart)
	}
	mainCol := html[mainStart:sidebarStart]
	sidebarCol := html[sidebarStart:]

	// 姓名与头衔属于主栏头部实例，联系方式属于侧栏实例。
	if !strings.Contains(mainCol, "Jordan Lee") {
		t.Fatal("name must render in the main column")
	}
	if strings.Contains(sidebarCol, "Jordan Lee") {
		t.Fatal("sidebar contact block must not repeat the name")
	}
	if !strings.Contains(sidebarCol, data.PersonalInfo.Email) {
		t.Fatal("contact details must render in the sidebar")
	}

	// 技能声明在侧栏（Columns=2），必须跟着布局走。
	if !strings.Contains(sidebarCol, "PostgreSQL") {
		t.Fatal("skills must render inside the sidebar column")
	}
	if strings.Contains(mainCol, "PostgreSQL") {
		t.Fatal("skills leaked into the main column")
	}
}

func TestRender_EmptyDataUsesPlaceholders(t *testing.T) {
	r := newTestRenderer(t)

	html, err := r.Render(Context{Data: resume.Data{}, TemplateID: "onyx"})
	if err != nil {
		t.Fatalf("render with empty data must not fail: %v", err)
	}
	if !strings.Contains(html, "Your Name") {
		t.Fatal("empty name must fall back to placeholder")
	}
	if !strings.Contains(html, `id="resume-root"`) {
		t.Fatal("document root marker missing")
	}
}

func TestRender_EditModeMarksFields(t *testing.T) {
	r := newTestRenderer(t)

	readonly, err := r.Render(Context{Data: resume.Sample(), TemplateID: "chikorita"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	editable, err := r.Render(Context{Data: resume.Sample(), TemplateID: "chikorita", EditMode: true})
	if err != nil {
		t.Fatalf("render edit mode: %v", err)
	}

	if strings.Contains(readonly, "data-field=") {
		t.Fatal("read-only output must not carry editable markers")
	}
	if !strings.Contains(editable, `data-field="personalInfo.name"`) {
		t.Fatal("edit mode must mark the name field with its path")
	}
	if !strings.Contains(editable, `data-field="summary"`) {
		t.Fatal("edit mode must mark the summary field")
	}
	if !strings.Contains(editable, `data-multiline="true"`) {
		t.Fatal("summary must be marked multiline")
	}
}

func TestRender_EscapesUserContent(t *testing.T) {
	r := newTestRenderer(t)
	data := resume.Sample()
	data.PersonalInfo.Name = `<script>alert("x")</script>`

	html, err := r.Render(Context{Data: data, TemplateID: "onyx"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(html, `<script>alert`) {
		t.Fatal("user content must be escaped")
	}
	if !strings.Contains(html, "&lt;script&gt;") {
		t.Fatal("escaped name missing from output")
	}
}

func TestRender_CustomizationOverridesColors(t *testing.T) {
	r := newTestRenderer(t)

	html, err := r.Render(Context{
		Data:       resume.Sample(),
		TemplateID: "onyx",
		Customizations: template.Customizations{
			Colors: map[string]any{"primary": "#bada55"},
		},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(html, "#bada55") {
		t.Fatal("color override must reach the stylesheet")
	}
}

func TestRenderConfig_SkipsUnknownComponent(t *testing.T) {
	r := newTestRenderer(t)
	cfg := template.Config{
		ID: "partial",
		Layout: template.Layout{
			Type: template.LayoutSingleColumn,
			Sections: []template.Section{
				{ID: "summary", Name: "Summary", Component: template.ComponentSummary, Visible: true, Order: 1, Columns: 1},
				{ID: "timeline", Name: "Timeline", Component: template.Component("Timeline"), Visible: true, Order: 2, Columns: 1},
			},
		},
	}
	data := resume.Sample()

	html, err := r.RenderConfig(&cfg, data, template.Customizations{}, false)
	if err != nil {
		t.Fatalf("unknown component must be skipped, not fatal: %v", err)
	}
	if !strings.Contains(html, data.Summary) {
		t.Fatal("known sections must still render")
	}
	if strings.Contains(html, "Timeline") {
		t.Fatal("unknown component produced output")
	}
}

func TestRender_SectionOrderHonored(t *testing.T) {
	r := newTestRenderer(t)

	html, err := r.Render(Context{
		Data:       resume.Sample(),
		TemplateID: "onyx",
		Customizations: template.Customizations{
			SectionOrder: []string{"education", "experience"},
		},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	edu := strings.Index(html, "Technical University of Munich")
	exp := strings.Index(html, "Northwind Systems")
	if edu < 0 || exp < 0 {
		t.Fatal("expected both sections in output")
	}
	if edu > exp {
		t.Fatal("sectionOrder override must place education before experience")
	}
}

func TestRender_HiddenSectionOmitted(t *testing.T) {
	r := newTestRenderer(t)

	html, err := r.Render(Context{
		Data:       resume.Sample(),
		TemplateID: "onyx",
		Customizations: template.Customizations{
			VisibleSections: []string{"personalInfo", "experience"},
		},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(html, "Technical University of Munich") {
		t.Fatal("hidden education section rendered")
	}
	if !strings.Contains(html, "Northwind Systems") {
		t.Fatal("visible experience section missing")
	}
}
