// Package render 把 (ResumeData, TemplateConfig, Customizations) 三元组
// 渲染成最终 HTML 文档。渲染是同步纯函数：相同输入得到相同输出，
// 没有内部共享可变状态，宿主每次状态变化后整体重渲染。
package render

import (
	"bytes"
	"errors"
	"fmt"
	"html"
	htmltemplate "html/template"
	"log/slog"

	"resumecraft/internal/resume"
	"resumecraft/internal/template"
)

// ErrTemplateNotFound 表示模板 id 不在目录中（配置错误，按 404 处理）。
var ErrTemplateNotFound = errors.New("template not found")

// Context 是一次渲染的全部输入。
type Context struct {
	Data           resume.Data
	TemplateID     string
	Customizations template.Customizations
	EditMode       bool
}

// Renderer 是模板渲染编排器：解析样式、解析渲染计划、按插槽分发。
// 它不含任何 Section 专属逻辑，所有视觉决策都声明在模板目录数据里。
type Renderer struct {
	catalog *template.Catalog
	logger  *slog.Logger
	tpl     *htmltemplate.Template
}

// New 构造 Renderer 并解析内嵌 HTML 模板。
func New(catalog *template.Catalog, logger *slog.Logger) (*Renderer, error) {
	if catalog == nil {
		return nil, errors.New("render: catalog is required")
	}
	if logger == nil {
		logger = slog.Default()
	}

	funcs := htmltemplate.FuncMap{
		"safeCSS": func(s string) htmltemplate.CSS { return htmltemplate.CSS(s) },
		"safeURL": func(s string) htmltemplate.URL { return htmltemplate.URL(s) },
		"editText": func(edit bool, multiline bool, field, value, placeholder string) htmltemplate.HTML {
			display := value
			if display == "" {
				display = placeholder
			}
			escaped := html.EscapeString(display)
			if !edit {
				return htmltemplate.HTML(escaped)
			}
			return htmltemplate.HTML(fmt.Sprintf(
				`<span class="editable" data-field=%q data-multiline="%t">%s</span>`,
				field, multiline, escaped,
			))
		},
	}

	tpl, err := htmltemplate.New("document").Funcs(funcs).Parse(documentTemplate)
	if err != nil {
		return nil, fmt.Errorf("parse document template: %w", err)
	}

	return &Renderer{catalog: catalog, logger: logger, tpl: tpl}, nil
}

// renderedSection 是文档模板消费的 Section 外壳。
type renderedSection struct {
	ID           string
	Title        string
	ShowTitle    bool
	Alignment    string
	HeaderStyle  string
	Divider      bool
	MarginBottom string
	Body         htmltemplate.HTML
}

// documentView 是文档模板的根视图。
type documentView struct {
	Layout string
	Styles styleView

	Header  []renderedSection
	Main    []renderedSection
	Sidebar []renderedSection
	Footer  []renderedSection
	All     []renderedSection
}

// Render 渲染指定模板 id 的文档。
func (r *Renderer) Render(ctx Context) (string, error) {
	cfg, ok := r.catalog.Get(ctx.TemplateID)
	if !ok {
		r.logger.Warn("render requested for unknown template",
			slog.String("template_id", ctx.TemplateID),
		)
		return "", fmt.Errorf("%w: %q", ErrTemplateNotFound, ctx.TemplateID)
	}
	return r.RenderConfig(cfg, ctx.Data, ctx.Customizations, ctx.EditMode)
}

// RenderConfig 按给定模板配置渲染，供测试用小目录直接驱动。
func (r *Renderer) RenderConfig(cfg *template.Config, data resume.Data, cust template.Customizations, editMode bool) (string, error) {
	styles := newStyleView(template.ResolveStyles(cfg, cust))
	plan := template.ResolvePlan(cfg, cust)

	view := documentView{
		Layout: string(cfg.Layout.Type),
		Styles: styles,
	}

	for _, entry := range plan.Entries {
		if !template.KnownComponent(entry.Section.Component) {
			template.LogUnknownComponent(r.logger, cfg.ID, entry.Section)
			continue
		}

		body, err := r.renderSectionBody(entry, data, styles, editMode)
		if err != nil {
			return "", fmt.Errorf("render section %q: %w", entry.Section.ID, err)
		}

		sec := newSectionStyles(entry.Styles)
		shell := renderedSection{
			ID:           entry.Section.ID,
			Title:        entry.Section.Name,
			ShowTitle:    entry.Section.Component != template.ComponentPersonalInfo,
			Alignment:    sec.Alignment(),
			HeaderStyle:  sec.HeaderStyle(),
			Divider:      sec.Divider(),
			MarginBottom: styles.Spacing("section"),
			Body:         body,
		}
		if entry.Section.Component == template.ComponentCustom {
			if cs, ok := data.CustomSections[entry.Section.ID]; ok && cs.Title != "" {
				shell.Title = cs.Title
			}
		}

		view.All = append(view.All, shell)
		switch entry.Slot {
		case template.SlotHeader:
			view.Header = append(view.Header, shell)
		case template.SlotSidebar:
			view.Sidebar = append(view.Sidebar, shell)
		case template.SlotFooter:
			view.Footer = append(view.Footer, shell)
		default:
			view.Main = append(view.Main, shell)
		}
	}

	var buf bytes.Buffer
	if err := r.tpl.Execute(&buf, view); err != nil {
		return "", fmt.Errorf("execute document template: %w", err)
	}
	return buf.String(), nil
}

// renderSectionBody 按组件标签与插槽选择对应的渲染模板。
// PersonalInfo 的插槽变体在计划构建时已解析完毕，这里只认 Slot。
func (r *Renderer) renderSectionBody(entry template.PlanEntry, data resume.Data, styles styleView, editMode bool) (htmltemplate.HTML, error) {
	sec := newSectionStyles(entry.Styles)

	var (
		name string
		view any
	)
	switch entry.Section.Component {
	case template.ComponentPersonalInfo:
		switch entry.Slot {
		case template.SlotHeader:
			name = "personal_header"
		case template.SlotSidebar:
			name = "personal_sidebar"
		default:
			name = "personal_main"
		}
		view = buildPersonalView(data, entry.Slot, styles, sec, editMode)
	case template.ComponentSummary:
		name = "summary"
		view = summaryView{Styles: styles, EditMode: editMode, Text: data.Summary}
	case template.ComponentExperience:
		name = "experience"
		view = buildExperienceView(data, styles, sec, editMode)
	case template.ComponentEducation:
		name = "education"
		view = buildEducationView(data, styles, editMode)
	case template.ComponentSkills:
		name = "skills"
		view = buildSkillsView(data, styles, sec, editMode)
	case template.ComponentLanguages:
		name = "languages"
		view = languagesView{Styles: styles, EditMode: editMode, Entries: data.Languages}
	case template.ComponentCertifications:
		name = "certifications"
		view = certificationsView{Styles: styles, EditMode: editMode, Entries: data.Certifications}
	case template.ComponentCustom:
		name = "custom"
		view = buildCustomView(data, entry.Section.ID, styles, editMode)
	default:
		return "", fmt.Errorf("no renderer for component %q", entry.Section.Component)
	}

	var buf bytes.Buffer
	if err := r.tpl.ExecuteTemplate(&buf, name, view); err != nil {
		return "", err
	}
	return htmltemplate.HTML(buf.String()), nil
}
