package assessment

import "strings"

// GeneralSkill is the sentinel bucket for answers whose feedback mentions none
// of the declared skills.
const GeneralSkill = "general"

// AttributeSkill assigns an evaluated answer to a declared skill by scanning
// the skills in profile order and picking the first whose name appears as a
// case-insensitive substring of the feedback. This is a heuristic: it only
// works when the model mentions the skill in its feedback text.
func AttributeSkill(feedback string, skills []string) string {
	lowered := strings.ToLower(feedback)
	for _, skill := range skills {
		if skill == "" {
			continue
		}
		if strings.Contains(lowered, strings.ToLower(skill)) {
			return skill
		}
	}
	return GeneralSkill
}
