package resume

// Sample 返回一份用于模板预览的示例简历。
// id 取固定值即可：预览数据不落库，也不参与字段路径更新。
func Sample() Data {
	return Data{
		PersonalInfo: PersonalInfo{
			Name:     "Jordan Lee",
			Title:    "Senior Software Engineer",
			Email:    "jordan.lee@example.com",
			Phone:    "+1 555 0100",
			Location: "Berlin, Germany",
			Website:  "https://jordanlee.dev",
			LinkedIn: "linkedin.com/in/jordanlee",
		},
		Summary: "Engineer with eight years of experience building backend services and developer tooling. Focused on reliability, observability and pragmatic API design.",
		Experience: []Experience{
			{
				ID:        "exp-sample-1",
				Position:  "Senior Software Engineer",
				Company:   "Northwind Systems",
				Location:  "Berlin",
				StartDate: "2021-03",
				Current:   true,
				Description: []string{
					"Led migration of the billing pipeline to an event driven architecture.",
					"Cut p99 request latency from 900ms to 120ms.",
				},
			},
			{
				ID:        "exp-sample-2",
				Position:  "Software Engineer",
				Company:   "Contoso GmbH",
				StartDate: "2017-06",
				EndDate:   "2021-02",
				Description: []string{
					"Built and operated the internal deployment platform used by 40 teams.",
				},
			},
		},
		Education: []Education{
			{
				ID:        "edu-sample-1",
				Degree:    "B.Sc. Computer Science",
				School:    "Technical University of Munich",
				StartDate: "2013",
				EndDate:   "2017",
			},
		},
		Skills: []Skill{
			{ID: "skill-sample-1", Name: "Go", Level: SkillExpert},
			{ID: "skill-sample-2", Name: "PostgreSQL", Level: SkillAdvanced},
			{ID: "skill-sample-3", Name: "Kubernetes", Level: SkillAdvanced},
			{ID: "skill-sample-4", Name: "TypeScript", Level: SkillIntermediate},
		},
		Certifications: []Certification{
			{ID: "cert-sample-1", Name: "CKA", Issuer: "CNCF", Date: "2022"},
		},
		Languages: []Language{
			{ID: "lang-sample-1", Name: "English", Level: "Native"},
			{ID: "lang-sample-2", Name: "German", Level: "B2"},
		},
	}
}
