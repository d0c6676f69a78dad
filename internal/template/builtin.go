package template

// 内置模板目录。数据结构与取值对齐前端模板库：
// 所有视觉决策都声明在这里，渲染代码只做分发。

// Builtin 构建内置目录。每次调用返回独立实例，调用方可安全持有。
func Builtin() *Catalog {
	return MustNewCatalog([]Config{
		chikorita(),
		azurill(),
		onyx(),
		ivyLeagueClassic(),
		navyHeaderProfessional(),
	})
}

// defaultStyles 是各模板共享的基准样式树，模板用 MergeStyles
// 叠加自己的差异，避免整棵树逐模板复制。
func defaultStyles() map[string]any {
	return map[string]any{
		"page": map[string]any{
			"margin":     "0",
			"padding":    "0",
			"background": "#ffffff",
		},
		"typography": map[string]any{
			"fontFamily": "Inter, sans-serif",
			"fontSize": map[string]any{
				"base":        "11px",
				"heading1":    "24px",
				"heading2":    "16px",
				"heading3":    "14px",
				"small":       "10px",
				"contactInfo": "10px",
				"micro":       "9px",
			},
			"lineHeight": map[string]any{
				"tight":   "1.2",
				"normal":  "1.4",
				"relaxed": "1.6",
				"loose":   "1.8",
			},
			"fontWeight": map[string]any{
				"light":    "300",
				"normal":   "400",
				"medium":   "500",
				"semibold": "600",
				"bold":     "700",
			},
		},
		"colors": map[string]any{
			"primary":    "#1f2937",
			"secondary":  "#6b7280",
			"accent":     "#3b82f6",
			"text":       "#374151",
			"background": "#ffffff",
			"muted":      "#f3f4f6",
			"border":     "#e5e7eb",
			"surface":    "#f9fafb",
		},
		"spacing": map[string]any{
			"section":              "20px",
			"item":                 "8px",
			"compact":              "4px",
			"contentPadding":       "32px",
			"sidebarColumnPadding": "24px",
			"mainColumnPadding":    "32px",
		},
		"effects": map[string]any{
			"borderRadius": map[string]any{
				"none": "0",
				"sm":   "2px",
				"md":   "4px",
				"lg":   "8px",
				"full": "50%",
			},
			"shadow": map[string]any{
				"none": "none",
				"sm":   "0 1px 2px 0 rgba(0, 0, 0, 0.05)",
				"md":   "0 4px 6px -1px rgba(0, 0, 0, 0.1)",
				"lg":   "0 10px 15px -3px rgba(0, 0, 0, 0.1)",
			},
		},
	}
}

func styledFrom(overrides map[string]any) map[string]any {
	return MergeStyles(defaultStyles(), overrides)
}

// chikorita：侧栏布局。PersonalInfo 拆成两个实例，主栏头部
// （照片+姓名+头衔）和侧栏联系方式块，两者独立开关与排序。
func chikorita() Config {
	return Config{
		ID:          "chikorita",
		Name:        "Chikorita Fresh",
		Description: "Sidebar layout with a split identity: name and photo lead the main column, contact details live in the sidebar",
		Category:    "modern",
		Preview:     "/templates/chikorita.jpg",
		Tags:        []string{"sidebar", "split-header", "clean"},
		Layout: Layout{
			ID:   "chikorita-layout",
			Name: "Sidebar Layout",
			Type: LayoutSidebar,
			Sections: []Section{
				{
					ID: "personalInfo-main", Name: "Personal Information",
					Component: ComponentPersonalInfo, Visible: true, Order: 1, Columns: 1,
					Styles: map[string]any{
						"alignment":    "left",
						"photoSize":    "24",
						"displayParts": []any{"photo", "name", "title"},
					},
				},
				{
					ID: "summary", Name: "Professional Summary",
					Component: ComponentSummary, Visible: true, Order: 2, Columns: 1,
					Styles: map[string]any{"headerStyle": "underline"},
				},
				{
					ID: "experience", Name: "Work Experience",
					Component: ComponentExperience, Visible: true, Order: 3, Columns: 1,
					Styles: map[string]any{"display": "timeline", "headerStyle": "underline"},
				},
				{
					ID: "education", Name: "Education",
					Component: ComponentEducation, Visible: true, Order: 4, Columns: 1,
					Styles: map[string]any{"headerStyle": "underline"},
				},
				{
					ID: "personalInfo-contact", Name: "Contact",
					Component: ComponentPersonalInfo, Visible: true, Order: 1, Columns: 2,
					Styles: map[string]any{
						"alignment":     "left",
						"displayParts":  []any{"contact"},
						"contactLayout": "column",
					},
				},
				{
					ID: "skills", Name: "Skills",
					Component: ComponentSkills, Visible: true, Order: 2, Columns: 2,
					Styles: map[string]any{"display": "list", "headerStyle": "underline"},
				},
				{
					ID: "languages", Name: "Languages",
					Component: ComponentLanguages, Visible: true, Order: 3, Columns: 2,
					Styles: map[string]any{"headerStyle": "underline"},
				},
				{
					ID: "certifications", Name: "Certifications",
					Component: ComponentCertifications, Visible: true, Order: 4, Columns: 2,
					Styles: map[string]any{"headerStyle": "underline"},
				},
			},
			Styles: styledFrom(map[string]any{
				"colors": map[string]any{
					"primary":   "#047857",
					"secondary": "#065f46",
					"accent":    "#34d399",
					"muted":     "#ecfdf5",
				},
			}),
		},
	}
}

// azurill：侧栏布局，完整个人信息集中在侧栏。
func azurill() Config {
	return Config{
		ID:          "azurill",
		Name:        "Azurill Professional",
		Description: "Clean sidebar layout with contact information and skills highlighted in the left column",
		Category:    "modern",
		Preview:     "/templates/azurill.jpg",
		Tags:        []string{"professional", "sidebar", "clean"},
		Layout: Layout{
			ID:   "azurill-layout",
			Name: "Sidebar Layout",
			Type: LayoutSidebar,
			Sections: []Section{
				{
					ID: "personalInfo", Name: "Personal Information",
					Component: ComponentPersonalInfo, Visible: true, Order: 1, Columns: 2,
					Styles: map[string]any{
						"alignment":     "left",
						"photoSize":     "24",
						"displayParts":  []any{"photo", "name", "title", "contact"},
						"contactLayout": "column",
					},
				},
				{
					ID: "skills", Name: "Skills",
					Component: ComponentSkills, Visible: true, Order: 2, Columns: 2,
					Styles: map[string]any{"display": "list", "headerStyle": "underline"},
				},
				{
					ID: "languages", Name: "Languages",
					Component: ComponentLanguages, Visible: true, Order: 3, Columns: 2,
					Styles: map[string]any{"headerStyle": "underline"},
				},
				{
					ID: "certifications", Name: "Certifications",
					Component: ComponentCertifications, Visible: true, Order: 4, Columns: 2,
					Styles: map[string]any{"headerStyle": "underline"},
				},
				{
					ID: "summary", Name: "Professional Summary",
					Component: ComponentSummary, Visible: true, Order: 5, Columns: 1,
					Styles: map[string]any{"headerStyle": "underline"},
				},
				{
					ID: "experience", Name: "Work Experience",
					Component: ComponentExperience, Visible: true, Order: 6, Columns: 1,
					Styles: map[string]any{"headerStyle": "underline"},
				},
				{
					ID: "education", Name: "Education",
					Component: ComponentEducation, Visible: true, Order: 7, Columns: 1,
					Styles: map[string]any{"headerStyle": "underline"},
				},
			},
			Styles: styledFrom(nil),
		},
	}
}

// onyx：单栏极简布局。
func onyx() Config {
	return Config{
		ID:          "onyx",
		Name:        "Onyx Minimal",
		Description: "Single column layout with restrained typography for traditional applications",
		Category:    "minimal",
		Preview:     "/templates/onyx.jpg",
		Tags:        []string{"minimal", "single-column", "ats-friendly"},
		Layout: Layout{
			ID:   "onyx-layout",
			Name: "Single Column",
			Type: LayoutSingleColumn,
			Sections: []Section{
				{
					ID: "personalInfo", Name: "Personal Information",
					Component: ComponentPersonalInfo, Visible: true, Order: 1, Columns: 1,
					Styles: map[string]any{
						"alignment":     "center",
						"displayParts":  []any{"name", "title", "contact"},
						"contactLayout": "row",
					},
				},
				{
					ID: "summary", Name: "Summary",
					Component: ComponentSummary, Visible: true, Order: 2, Columns: 1,
				},
				{
					ID: "experience", Name: "Experience",
					Component: ComponentExperience, Visible: true, Order: 3, Columns: 1,
				},
				{
					ID: "education", Name: "Education",
					Component: ComponentEducation, Visible: true, Order: 4, Columns: 1,
				},
				{
					ID: "skills", Name: "Skills",
					Component: ComponentSkills, Visible: true, Order: 5, Columns: 1,
					Styles: map[string]any{"display": "grid", "columns": 3},
				},
				{
					ID: "certifications", Name: "Certifications",
					Component: ComponentCertifications, Visible: false, Order: 6, Columns: 1,
				},
			},
			Styles: styledFrom(map[string]any{
				"colors": map[string]any{
					"primary": "#111827",
					"accent":  "#111827",
				},
				"typography": map[string]any{
					"fontFamily": "Georgia, serif",
				},
			}),
		},
	}
}

// ivyLeagueClassic：双栏经典布局，技能与证书在右栏。
func ivyLeagueClassic() Config {
	return Config{
		ID:          "ivy-league-classic",
		Name:        "Ivy League Classic",
		Description: "Two column layout with a traditional feel, experience on the left and credentials on the right",
		Category:    "classic",
		Preview:     "/templates/ivy-league-classic.jpg",
		Tags:        []string{"classic", "two-column"},
		Layout: Layout{
			ID:   "ivy-league-layout",
			Name: "Two Column",
			Type: LayoutTwoColumn,
			Sections: []Section{
				{
					ID: "personalInfo", Name: "Personal Information",
					Component: ComponentPersonalInfo, Visible: true, Order: 1, Columns: 1,
					Styles: map[string]any{
						"alignment":     "left",
						"displayParts":  []any{"photo", "name", "title", "contact"},
						"contactLayout": "grid",
					},
				},
				{
					ID: "summary", Name: "Profile",
					Component: ComponentSummary, Visible: true, Order: 2, Columns: 1,
				},
				{
					ID: "experience", Name: "Experience",
					Component: ComponentExperience, Visible: true, Order: 3, Columns: 1,
					Styles: map[string]any{"display": "cards"},
				},
				{
					ID: "education", Name: "Education",
					Component: ComponentEducation, Visible: true, Order: 1, Columns: 2,
				},
				{
					ID: "skills", Name: "Skills",
					Component: ComponentSkills, Visible: true, Order: 2, Columns: 2,
					Styles: map[string]any{"display": "tags"},
				},
				{
					ID: "certifications", Name: "Certifications",
					Component: ComponentCertifications, Visible: true, Order: 3, Columns: 2,
				},
				{
					ID: "languages", Name: "Languages",
					Component: ComponentLanguages, Visible: false, Order: 4, Columns: 2,
				},
			},
			Styles: styledFrom(map[string]any{
				"colors": map[string]any{
					"primary":   "#713f12",
					"secondary": "#854d0e",
					"accent":    "#ca8a04",
					"muted":     "#fefce8",
				},
				"typography": map[string]any{
					"fontFamily": "Merriweather, serif",
				},
			}),
		},
	}
}

// navyHeaderProfessional：页眉-正文布局，深色页眉承载个人信息。
func navyHeaderProfessional() Config {
	return Config{
		ID:          "navy-header-professional",
		Name:        "Navy Header Professional",
		Description: "Executive template with a navy header band and single column body for senior professionals",
		Category:    "professional",
		Preview:     "/templates/navy-header-professional.jpg",
		Tags:        []string{"executive", "header", "professional"},
		Layout: Layout{
			ID:   "navy-header-layout",
			Name: "Header Footer",
			Type: LayoutHeaderFooter,
			Sections: []Section{
				{
					ID: "personalInfo", Name: "Personal Information",
					Component: ComponentPersonalInfo, Visible: true, Order: 1, Columns: 0,
					Styles: map[string]any{
						"alignment":     "left",
						"displayParts":  []any{"photo", "name", "title", "contact"},
						"contactLayout": "row",
					},
				},
				{
					ID: "summary", Name: "Executive Summary",
					Component: ComponentSummary, Visible: true, Order: 1, Columns: 1,
				},
				{
					ID: "experience", Name: "Professional Experience",
					Component: ComponentExperience, Visible: true, Order: 2, Columns: 1,
					Styles: map[string]any{"display": "timeline"},
				},
				{
					ID: "education", Name: "Education",
					Component: ComponentEducation, Visible: true, Order: 3, Columns: 1,
				},
				{
					ID: "skills", Name: "Core Competencies",
					Component: ComponentSkills, Visible: true, Order: 4, Columns: 1,
					Styles: map[string]any{"display": "tags"},
				},
				{
					ID: "certifications", Name: "Certifications",
					Component: ComponentCertifications, Visible: true, Order: 1, Columns: 3,
				},
			},
			Styles: styledFrom(map[string]any{
				"colors": map[string]any{
					"primary":   "#1e293b",
					"secondary": "#475569",
					"accent":    "#60a5fa",
					"muted":     "#f1f5f9",
				},
			}),
		},
	}
}
