package resume

import (
	"strings"

	"github.com/google/uuid"
)

// 抽取服务返回 snake_case 字段名的 JSON，这里做逐字段转换。
// 字段缺失一律按零值/空列表处理，不视为错误。

type ExtractedPersonalInfo struct {
	Name     string `json:"name"`
	Title    string `json:"title"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Location string `json:"location"`
	Website  string `json:"website"`
	LinkedIn string `json:"linkedin"`
}

type ExtractedExperience struct {
	Position    string   `json:"position"`
	Company     string   `json:"company"`
	Location    string   `json:"location"`
	StartDate   string   `json:"start_date"`
	EndDate     string   `json:"end_date"`
	Current     bool     `json:"current"`
	Description []string `json:"description"`
}

type ExtractedEducation struct {
	Degree      string `json:"degree"`
	School      string `json:"school"`
	Location    string `json:"location"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	GPA         string `json:"gpa"`
	Description string `json:"description"`
}

type ExtractedSkill struct {
	Name  string `json:"name"`
	Level string `json:"level"`
}

type ExtractedCertification struct {
	Name   string `json:"name"`
	Issuer string `json:"issuer"`
	Date   string `json:"date"`
	URL    string `json:"url"`
}

type ExtractedLanguage struct {
	Name  string `json:"name"`
	Level string `json:"level"`
}

// Extracted 是抽取服务响应体的完整形状。
type Extracted struct {
	PersonalInfo   ExtractedPersonalInfo    `json:"personal_info"`
	Summary        string                   `json:"summary"`
	Experience     []ExtractedExperience    `json:"experience"`
	Education      []ExtractedEducation     `json:"education"`
	Skills         []ExtractedSkill         `json:"skills"`
	Certifications []ExtractedCertification `json:"certifications"`
	Languages      []ExtractedLanguage      `json:"languages"`
}

// FromExtracted 将抽取结果转换为内部数据模型，并为每个列表项
// 生成稳定唯一 id（抽取服务不提供 id）。
func FromExtracted(in Extracted) Data {
	out := Data{
		PersonalInfo: PersonalInfo{
			Name:     strings.TrimSpace(in.PersonalInfo.Name),
			Title:    strings.TrimSpace(in.PersonalInfo.Title),
			Email:    strings.TrimSpace(in.PersonalInfo.Email),
			Phone:    strings.TrimSpace(in.PersonalInfo.Phone),
			Location: strings.TrimSpace(in.PersonalInfo.Location),
			Website:  strings.TrimSpace(in.PersonalInfo.Website),
			LinkedIn: strings.TrimSpace(in.PersonalInfo.LinkedIn),
		},
		Summary:        strings.TrimSpace(in.Summary),
		Experience:     make([]Experience, 0, len(in.Experience)),
		Education:      make([]Education, 0, len(in.Education)),
		Skills:         make([]Skill, 0, len(in.Skills)),
		Certifications: make([]Certification, 0, len(in.Certifications)),
	}

	for _, e := range in.Experience {
		out.Experience = append(out.Experience, Experience{
			ID:          uuid.NewString(),
			Position:    e.Position,
			Company:     e.Company,
			Location:    e.Location,
			StartDate:   e.StartDate,
			EndDate:     e.EndDate,
			Current:     e.Current,
			Description: append([]string(nil), e.Description...),
		})
	}
	for _, e := range in.Education {
		out.Education = append(out.Education, Education{
			ID:          uuid.NewString(),
			Degree:      e.Degree,
			School:      e.School,
			Location:    e.Location,
			StartDate:   e.StartDate,
			EndDate:     e.EndDate,
			GPA:         e.GPA,
			Description: e.Description,
		})
	}
	for _, s := range in.Skills {
		out.Skills = append(out.Skills, Skill{
			ID:    uuid.NewString(),
			Name:  s.Name,
			Level: s.Level,
		})
	}
	for _, c := range in.Certifications {
		out.Certifications = append(out.Certifications, Certification{
			ID:     uuid.NewString(),
			Name:   c.Name,
			Issuer: c.Issuer,
			Date:   c.Date,
			URL:    c.URL,
		})
	}
	for _, l := range in.Languages {
		out.Languages = append(out.Languages, Language{
			ID:    uuid.NewString(),
			Name:  l.Name,
			Level: l.Level,
		})
	}

	return out
}
