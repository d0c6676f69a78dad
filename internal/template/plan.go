package template

import (
	"log/slog"
	"sort"
)

// Slot 是 Section 实例在版面中的落位，由 Columns 判别值在构建
// 渲染计划时一次性解析出来，后续渲染不再分支判断数字。
type Slot int

const (
	SlotHeader Slot = iota
	SlotMain
	SlotSidebar
	SlotFooter
)

func (s Slot) String() string {
	switch s {
	case SlotHeader:
		return "header"
	case SlotSidebar:
		return "sidebar"
	case SlotFooter:
		return "footer"
	default:
		return "main"
	}
}

// slotForColumns 将模板里的数字判别值映射为插槽。
// 未知值按主内容处理，目录里的脏数据不应让渲染崩溃。
func slotForColumns(columns int) Slot {
	switch columns {
	case 0:
		return SlotHeader
	case 2:
		return SlotSidebar
	case 3:
		return SlotFooter
	default:
		return SlotMain
	}
}

// PlanEntry 是渲染计划中的一项：Section 定义、解析后的落位
// 以及合并过用户覆盖的最终 section 样式。
type PlanEntry struct {
	Section Section
	Slot    Slot
	Styles  map[string]any
}

// Plan 是 Layout Resolver 的输出：对给定 (Config, Customizations)
// 纯函数且确定，相同输入永远得到相同的有序计划。
type Plan struct {
	Entries []PlanEntry
	Styles  map[string]any
}

// BySlot 返回指定插槽内的条目，保持计划内顺序。
func (p Plan) BySlot(slot Slot) []PlanEntry {
	out := make([]PlanEntry, 0, len(p.Entries))
	for _, e := range p.Entries {
		if e.Slot == slot {
			out = append(out, e)
		}
	}
	return out
}

// ResolvePlan 根据模板与用户覆盖计算最终渲染计划：
//  1. 可见性过滤：customizations.visibleSections 存在时以它为准，
//     否则按 Section.Visible 的模板默认值。
//  2. 按 Columns 分组；组内排序优先遵循 customizations.sectionOrder
//     （仅限该组内出现的 id，计划外的陈旧 id 静默丢弃），
//     未被点名的 Section 按模板 Order 追加在后；若完全没有
//     sectionOrder，则整组回落到模板 Order。相同 Order 按目录
//     数组原始位置稳定排序。
//  3. 每个 Section 的样式为模板默认与 customizations.sections[id]
//     的深合并。
//
// cfg 为 nil 属于调用方编程错误，会 panic；数据形状问题只降级。
func ResolvePlan(cfg *Config, cust Customizations) Plan {
	if cfg == nil {
		panic("template: ResolvePlan called with nil config")
	}

	visible := visibleSet(cfg.Layout.Sections, cust)

	type indexed struct {
		section Section
		pos     int
	}
	groups := map[int][]indexed{}
	groupKeys := []int{}
	for i, sec := range cfg.Layout.Sections {
		if !visible[sec.ID] {
			continue
		}
		if _, ok := groups[sec.Columns]; !ok {
			groupKeys = append(groupKeys, sec.Columns)
		}
		groups[sec.Columns] = append(groups[sec.Columns], indexed{section: sec, pos: i})
	}
	sort.Ints(groupKeys)

	plan := Plan{Styles: CloneTree(cfg.Layout.Styles)}
	for _, col := range groupKeys {
		group := groups[col]

		// 模板默认顺序：Order 相同由目录位置决定（稳定）。
		sort.SliceStable(group, func(i, j int) bool {
			if group[i].section.Order != group[j].section.Order {
				return group[i].section.Order < group[j].section.Order
			}
			return group[i].pos < group[j].pos
		})

		ordered := group
		if len(cust.SectionOrder) > 0 {
			byID := make(map[string]indexed, len(group))
			for _, e := range group {
				byID[e.section.ID] = e
			}
			picked := make([]indexed, 0, len(group))
			taken := make(map[string]bool, len(group))
			// 顺序列表只约束本组内出现的 id，其余 id（含已被
			// 过滤或根本不属于模板的陈旧 id）直接忽略。
			for _, id := range cust.SectionOrder {
				if e, ok := byID[id]; ok && !taken[id] {
					picked = append(picked, e)
					taken[id] = true
				}
			}
			for _, e := range ordered {
				if !taken[e.section.ID] {
					picked = append(picked, e)
				}
			}
			ordered = picked
		}

		for _, e := range ordered {
			styles := e.section.Styles
			if override, ok := cust.Sections[e.section.ID]; ok {
				if styles == nil {
					styles = map[string]any{}
				}
				styles = MergeStyles(styles, override)
			} else {
				styles = CloneTree(styles)
			}
			plan.Entries = append(plan.Entries, PlanEntry{
				Section: e.section,
				Slot:    slotForColumns(e.section.Columns),
				Styles:  styles,
			})
		}
	}

	return plan
}

// ResolveStyles 合并模板默认样式树与用户覆盖，供渲染器使用。
func ResolveStyles(cfg *Config, cust Customizations) map[string]any {
	if cfg == nil {
		panic("template: ResolveStyles called with nil config")
	}
	return MergeStyles(cfg.Layout.Styles, cust.Overrides())
}

func visibleSet(sections []Section, cust Customizations) map[string]bool {
	set := make(map[string]bool, len(sections))
	if cust.HasVisibleSections() {
		allowed := make(map[string]bool, len(cust.VisibleSections))
		for _, id := range cust.VisibleSections {
			allowed[id] = true
		}
		for _, sec := range sections {
			set[sec.ID] = allowed[sec.ID]
		}
		return set
	}
	for _, sec := range sections {
		set[sec.ID] = sec.Visible
	}
	return set
}

// KnownComponent 报告某个组件标签是否有对应的渲染器。
// 未知标签由调用方记日志后跳过，绝不能让整页渲染失败。
func KnownComponent(c Component) bool {
	switch c {
	case ComponentPersonalInfo, ComponentSummary, ComponentExperience,
		ComponentEducation, ComponentSkills, ComponentLanguages,
		ComponentCertifications, ComponentCustom:
		return true
	default:
		return false
	}
}

// LogUnknownComponent 统一未知组件的诊断输出。
func LogUnknownComponent(log *slog.Logger, cfgID string, sec Section) {
	if log == nil {
		log = slog.Default()
	}
	log.Warn("unknown section component, skipping",
		slog.String("template_id", cfgID),
		slog.String("section_id", sec.ID),
		slog.String("component", string(sec.Component)),
	)
}
