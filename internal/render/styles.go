package render

import (
	"fmt"
	"strings"

	"resumecraft/internal/template"
)

// styleView 包装解析后的样式树，按点号路径取值并带默认值回落。
// 渲染模板只通过它读样式，缺键不会让渲染失败。
type styleView struct {
	tree map[string]any
}

func newStyleView(tree map[string]any) styleView {
	return styleView{tree: tree}
}

func (s styleView) str(path, fallback string) string {
	v, ok := template.LookupPath(s.tree, path)
	if !ok {
		return fallback
	}
	switch t := v.(type) {
	case string:
		return t
	case fmt.Stringer:
		return t.String()
	case float64:
		return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%f", t), "0"), ".")
	case int:
		return fmt.Sprintf("%d", t)
	default:
		return fallback
	}
}

func (s styleView) Color(name string) string {
	defaults := map[string]string{
		"primary":    "#1f2937",
		"secondary":  "#6b7280",
		"accent":     "#3b82f6",
		"text":       "#374151",
		"background": "#ffffff",
		"muted":      "#f3f4f6",
		"border":     "#e5e7eb",
		"surface":    "#f9fafb",
	}
	return s.str("colors."+name, defaults[name])
}

func (s styleView) FontFamily() string {
	return s.str("typography.fontFamily", "Inter, sans-serif")
}

func (s styleView) FontSize(role string) string {
	defaults := map[string]string{
		"base":        "11px",
		"heading1":    "24px",
		"heading2":    "16px",
		"heading3":    "14px",
		"small":       "10px",
		"contactInfo": "10px",
		"micro":       "9px",
	}
	return s.str("typography.fontSize."+role, defaults[role])
}

func (s styleView) LineHeight(role string) string {
	defaults := map[string]string{
		"tight":   "1.2",
		"normal":  "1.4",
		"relaxed": "1.6",
		"loose":   "1.8",
	}
	return s.str("typography.lineHeight."+role, defaults[role])
}

func (s styleView) Spacing(name string) string {
	defaults := map[string]string{
		"section":              "20px",
		"item":                 "8px",
		"compact":              "4px",
		"contentPadding":       "32px",
		"sidebarColumnPadding": "24px",
		"mainColumnPadding":    "32px",
	}
	return s.str("spacing."+name, defaults[name])
}

// sectionStyles 包装单个 Section 合并后的样式。
type sectionStyles struct {
	styleView
}

func newSectionStyles(tree map[string]any) sectionStyles {
	return sectionStyles{styleView{tree: tree}}
}

func (s sectionStyles) Alignment() string {
	return s.str("alignment", "left")
}

func (s sectionStyles) Display(fallback string) string {
	return s.str("display", fallback)
}

func (s sectionStyles) HeaderStyle() string {
	return s.str("headerStyle", "minimal")
}

func (s sectionStyles) Divider() bool {
	v, ok := template.LookupPath(s.tree, "divider")
	if !ok {
		return false
	}
	b, _ := v.(bool)
	return b
}

// GridColumns 返回 grid 展示模式的列数，默认 2。
func (s sectionStyles) GridColumns() int {
	v, ok := template.LookupPath(s.tree, "columns")
	if !ok {
		return 2
	}
	switch t := v.(type) {
	case int:
		if t > 0 {
			return t
		}
	case float64:
		if t > 0 {
			return int(t)
		}
	}
	return 2
}

// DisplayParts 返回 PersonalInfo 实例要展示的部件集合。
// 未配置时展示全部部件。
func (s sectionStyles) DisplayParts() map[string]bool {
	v, ok := template.LookupPath(s.tree, "displayParts")
	if !ok {
		return map[string]bool{"photo": true, "name": true, "title": true, "contact": true}
	}
	out := map[string]bool{}
	if list, ok := v.([]any); ok {
		for _, item := range list {
			if part, ok := item.(string); ok {
				out[part] = true
			}
		}
	}
	if list, ok := v.([]string); ok {
		for _, part := range list {
			out[part] = true
		}
	}
	return out
}

// PhotoSizePx 返回照片边长像素值；模板按 tailwind 刻度存储
// （“24” 表示 96px）。
func (s sectionStyles) PhotoSizePx() int {
	raw := s.str("photoSize", "24")
	var scale int
	if _, err := fmt.Sscanf(raw, "%d", &scale); err != nil || scale <= 0 {
		scale = 24
	}
	return scale * 4
}
