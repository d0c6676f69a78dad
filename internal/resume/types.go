package resume

// Data 表示存储在简历 Content(JSONB) 中的结构化数据。
// 核心渲染层只读它；所有修改通过 Apply 走字段路径更新，
// 产生新的快照，绝不原地改写。
type Data struct {
	PersonalInfo   PersonalInfo             `json:"personalInfo"`
	Summary        string                   `json:"summary"`
	Experience     []Experience             `json:"experience"`
	Education      []Education              `json:"education"`
	Skills         []Skill                  `json:"skills"`
	Certifications []Certification          `json:"certifications"`
	Languages      []Language               `json:"languages,omitempty"`
	CustomSections map[string]CustomSection `json:"customSections,omitempty"`
}

// PersonalInfo 是姓名、头衔与联系方式。Photo 为空或为 data URL。
type PersonalInfo struct {
	Name     string `json:"name"`
	Title    string `json:"title"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Location string `json:"location"`
	Website  string `json:"website,omitempty"`
	LinkedIn string `json:"linkedin,omitempty"`
	Photo    string `json:"photo,omitempty"`
}

// Experience 是一段工作经历。列表项 id 稳定唯一，
// 作为渲染 key 与字段路径更新的定位目标，会话内删除后不复用。
type Experience struct {
	ID          string   `json:"id"`
	Position    string   `json:"position"`
	Company     string   `json:"company"`
	Location    string   `json:"location"`
	StartDate   string   `json:"startDate"`
	EndDate     string   `json:"endDate"`
	Current     bool     `json:"current"`
	Description []string `json:"description"`
}

type Education struct {
	ID          string `json:"id"`
	Degree      string `json:"degree"`
	School      string `json:"school"`
	Location    string `json:"location"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	GPA         string `json:"gpa,omitempty"`
	Description string `json:"description,omitempty"`
}

// Skill 的 Level 是封闭枚举（Beginner/Intermediate/Advanced/Expert），
// 但未识别的值按原样透传展示，不报错。
type Skill struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Level string `json:"level,omitempty"`
}

const (
	SkillBeginner     = "Beginner"
	SkillIntermediate = "Intermediate"
	SkillAdvanced     = "Advanced"
	SkillExpert       = "Expert"
)

type Certification struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Issuer string `json:"issuer"`
	Date   string `json:"date"`
	URL    string `json:"url,omitempty"`
}

type Language struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Level string `json:"level"`
}

// CustomSection 是用户自建段落。
type CustomSection struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}
