package render

import (
	"resumecraft/internal/resume"
	"resumecraft/internal/template"
)

// 各 Section 的视图模型。视图模型只携带展示需要的字段，
// 模板里不出现任何业务分支之外的逻辑。

type contactItem struct {
	Label string
	Value string
	Field string
}

// contactItems 是三种 PersonalInfo 变体共享的联系方式列表，
// 只收非空值。
func contactItems(p resume.PersonalInfo) []contactItem {
	candidates := []contactItem{
		{Label: "Phone", Value: p.Phone, Field: "personalInfo.phone"},
		{Label: "Email", Value: p.Email, Field: "personalInfo.email"},
		{Label: "LinkedIn", Value: p.LinkedIn, Field: "personalInfo.linkedin"},
		{Label: "Website", Value: p.Website, Field: "personalInfo.website"},
		{Label: "Location", Value: p.Location, Field: "personalInfo.location"},
	}
	items := make([]contactItem, 0, len(candidates))
	for _, c := range candidates {
		if c.Value != "" {
			items = append(items, c)
		}
	}
	return items
}

// personalView 承载 PersonalInfo 的某一个插槽变体。
type personalView struct {
	Slot     template.Slot
	Styles   styleView
	Section  sectionStyles
	EditMode bool

	Name  string
	Title string
	Photo string

	ShowPhoto   bool
	ShowName    bool
	ShowTitle   bool
	ShowContact bool

	Contacts      []contactItem
	ContactLayout string
	PhotoSize     int
}

func buildPersonalView(data resume.Data, slot template.Slot, styles styleView, sec sectionStyles, editMode bool) personalView {
	parts := sec.DisplayParts()
	name := data.PersonalInfo.Name
	if name == "" {
		name = "Your Name"
	}
	title := data.PersonalInfo.Title
	if title == "" {
		title = "Your Title"
	}
	return personalView{
		Slot:          slot,
		Styles:        styles,
		Section:       sec,
		EditMode:      editMode,
		Name:          name,
		Title:         title,
		Photo:         data.PersonalInfo.Photo,
		ShowPhoto:     parts["photo"],
		ShowName:      parts["name"],
		ShowTitle:     parts["title"],
		ShowContact:   parts["contact"],
		Contacts:      contactItems(data.PersonalInfo),
		ContactLayout: sec.str("contactLayout", "column"),
		PhotoSize:     sec.PhotoSizePx(),
	}
}

type summaryView struct {
	Styles   styleView
	EditMode bool
	Text     string
}

type experienceEntry struct {
	ID          string
	Position    string
	Company     string
	Location    string
	DateLabel   string
	Description []string
}

type experienceView struct {
	Styles   styleView
	EditMode bool
	Display  string
	Entries  []experienceEntry
}

// dateLabel 计算经历的时间标签：Current 时结束端固定为 Present。
func dateLabel(start, end string, current bool) string {
	if current {
		end = "Present"
	}
	switch {
	case start == "" && end == "":
		return ""
	case start == "":
		return end
	case end == "":
		return start
	default:
		return start + " - " + end
	}
}

func buildExperienceView(data resume.Data, styles styleView, sec sectionStyles, editMode bool) experienceView {
	view := experienceView{
		Styles:   styles,
		EditMode: editMode,
		Display:  sec.Display("plain"),
	}
	for _, e := range data.Experience {
		view.Entries = append(view.Entries, experienceEntry{
			ID:          e.ID,
			Position:    e.Position,
			Company:     e.Company,
			Location:    e.Location,
			DateLabel:   dateLabel(e.StartDate, e.EndDate, e.Current),
			Description: e.Description,
		})
	}
	return view
}

type educationEntry struct {
	ID          string
	Degree      string
	School      string
	Location    string
	DateLabel   string
	GPA         string
	Description string
}

type educationView struct {
	Styles   styleView
	EditMode bool
	Entries  []educationEntry
}

func buildEducationView(data resume.Data, styles styleView, editMode bool) educationView {
	view := educationView{Styles: styles, EditMode: editMode}
	for _, e := range data.Education {
		view.Entries = append(view.Entries, educationEntry{
			ID:          e.ID,
			Degree:      e.Degree,
			School:      e.School,
			Location:    e.Location,
			DateLabel:   dateLabel(e.StartDate, e.EndDate, false),
			GPA:         e.GPA,
			Description: e.Description,
		})
	}
	return view
}

type skillEntry struct {
	ID    string
	Name  string
	Level string
}

type skillsView struct {
	Styles      styleView
	EditMode    bool
	Display     string
	GridColumns int
	Entries     []skillEntry
}

func buildSkillsView(data resume.Data, styles styleView, sec sectionStyles, editMode bool) skillsView {
	view := skillsView{
		Styles:      styles,
		EditMode:    editMode,
		Display:     sec.Display("list"),
		GridColumns: sec.GridColumns(),
	}
	for _, s := range data.Skills {
		view.Entries = append(view.Entries, skillEntry{ID: s.ID, Name: s.Name, Level: s.Level})
	}
	return view
}

type languagesView struct {
	Styles   styleView
	EditMode bool
	Entries  []resume.Language
}

type certificationsView struct {
	Styles   styleView
	EditMode bool
	Entries  []resume.Certification
}

type customView struct {
	Styles   styleView
	EditMode bool
	FieldKey string
	Title    string
	Content  string
}

func buildCustomView(data resume.Data, sectionID string, styles styleView, editMode bool) customView {
	view := customView{Styles: styles, EditMode: editMode, FieldKey: sectionID}
	if cs, ok := data.CustomSections[sectionID]; ok {
		view.Title = cs.Title
		view.Content = cs.Content
	}
	return view
}
