package template

// LayoutType 决定模板的整体分栏方式。
type LayoutType string

const (
	LayoutSingleColumn LayoutType = "single-column"
	LayoutTwoColumn    LayoutType = "two-column"
	LayoutThreeColumn  LayoutType = "three-column"
	LayoutSidebar      LayoutType = "sidebar"
	LayoutHeaderFooter LayoutType = "header-footer"
)

// Component 标识一个 Section 由哪个渲染器负责。
type Component string

const (
	ComponentPersonalInfo   Component = "PersonalInfo"
	ComponentSummary        Component = "Summary"
	ComponentExperience     Component = "Experience"
	ComponentEducation      Component = "Education"
	ComponentSkills         Component = "Skills"
	ComponentLanguages      Component = "Languages"
	ComponentCertifications Component = "Certifications"
	ComponentProjects       Component = "Projects"
	ComponentAwards         Component = "Awards"
	ComponentReferences     Component = "References"
	ComponentCustom         Component = "Custom"
)

// Section 声明模板中的一个内容块。
// 同一个 Component 可以在一个模板里出现多次（不同 id、不同 Columns），
// 例如头部展示照片+姓名、侧栏单独展示联系方式。
type Section struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Component Component `json:"component"`
	Visible   bool      `json:"visible"`
	Order     int       `json:"order"`
	// Columns 是插槽判别值：0=页眉，1=主内容，2=侧栏，3=页脚。
	Columns int            `json:"columns"`
	Styles  map[string]any `json:"styles,omitempty"`
}

// Layout 描述模板的布局定义：分栏类型、Section 列表与默认样式树。
type Layout struct {
	ID       string         `json:"id"`
	Name     string         `json:"name"`
	Type     LayoutType     `json:"type"`
	Sections []Section      `json:"sections"`
	Styles   map[string]any `json:"styles"`
}

// Config 是目录中的一条模板记录。运行期只读。
type Config struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Layout      Layout   `json:"layout"`
	Preview     string   `json:"preview,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

// Customizations 是用户针对单份文档的覆盖对象，永远是稀疏的局部：
// 缺失的键回落到模板默认值，而不是硬编码值，这样切换模板时
// 未被用户改过的部分会立即跟随新模板。
type Customizations struct {
	Colors     map[string]any            `json:"colors,omitempty"`
	Typography map[string]any            `json:"typography,omitempty"`
	Spacing    map[string]any            `json:"spacing,omitempty"`
	Effects    map[string]any            `json:"effects,omitempty"`
	Sections   map[string]map[string]any `json:"sections,omitempty"`
	// VisibleSections 为 nil 表示**未设置**（回落到模板默认可见性）；
	// 空切片表示用户显式隐藏了所有 Section。
	VisibleSections []string `json:"visibleSections,omitempty"`
	SectionOrder    []string `json:"sectionOrder,omitempty"`
}

// Overrides 将四棵顶层样式子树合成一个覆盖树，供 MergeStyles 使用。
func (c Customizations) Overrides() map[string]any {
	out := map[string]any{}
	if len(c.Colors) > 0 {
		out["colors"] = c.Colors
	}
	if len(c.Typography) > 0 {
		out["typography"] = c.Typography
	}
	if len(c.Spacing) > 0 {
		out["spacing"] = c.Spacing
	}
	if len(c.Effects) > 0 {
		out["effects"] = c.Effects
	}
	return out
}

// HasVisibleSections 区分“未设置”与“设置为空”。
func (c Customizations) HasVisibleSections() bool {
	return c.VisibleSections != nil
}
