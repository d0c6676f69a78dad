package resume

import "testing"

func TestFromExtracted_AssignsStableIDs(t *testing.T) {
	in := Extracted{
		Experience: []ExtractedExperience{
			{Position: "Engineer", Company: "Acme"},
			{Position: "Intern", Company: "Acme"},
		},
		Skills: []ExtractedSkill{{Name: "Go", Level: "Expert"}},
	}

	out := FromExtracted(in)

	seen := map[string]bool{}
	for _, e := range out.Experience {
		if e.ID == "" {
			t.Fatal("experience entry without id")
		}
		if seen[e.ID] {
			t.Fatalf("duplicate id %q", e.ID)
		}
		seen[e.ID] = true
	}
	if out.Skills[0].ID == "" {
		t.Fatal("skill entry without id")
	}
}

func TestFromExtracted_TrimsPersonalInfo(t *testing.T) {
	in := Extracted{
		PersonalInfo: ExtractedPersonalInfo{
			Name:  "  Ada Lovelace ",
			Email: " ada@example.com ",
		},
		Summary: "  summary text  ",
	}

	out := FromExtracted(in)
	if out.PersonalInfo.Name != "Ada Lovelace" {
		t.Fatalf("name = %q", out.PersonalInfo.Name)
	}
	if out.PersonalInfo.Email != "ada@example.com" {
		t.Fatalf("email = %q", out.PersonalInfo.Email)
	}
	if out.Summary != "summary text" {
		t.Fatalf("summary = %q", out.Summary)
	}
}

func TestFromExtracted_EmptyInput(t *testing.T) {
	out := FromExtracted(Extracted{})

	if out.Experience == nil || len(out.Experience) != 0 {
		t.Fatalf("experience = %v, want empty list", out.Experience)
	}
	if out.Education == nil || len(out.Education) != 0 {
		t.Fatalf("education = %v, want empty list", out.Education)
	}
	if out.Skills == nil || len(out.Skills) != 0 {
		t.Fatalf("skills = %v, want empty list", out.Skills)
	}
}

func TestFromExtracted_CopiesDescriptionSlices(t *testing.T) {
	desc := []string{"built things"}
	in := Extracted{Experience: []ExtractedExperience{{Position: "Engineer", Description: desc}}}

	out := FromExtracted(in)
	desc[0] = "mutated"
	if out.Experience[0].Description[0] != "built things" {
		t.Fatal("description slice must be copied, not aliased")
	}
}
