package catalog

import (
	"encoding/json"
	"strings"
)

// skillColumns lists the header variants the dataset has used for the skills
// column across releases.
var skillColumns = []string{"Skills", "skills", "Skill", "skill", "Attributi", "attributi", "Tags", "tags"}

// ParseSkills extracts the skill tags from a dataset row. The column has
// shipped both as a JSON array and as a delimited string, sometimes wrapped
// in brackets and quoted, so parsing is tried in that order.
func ParseSkills(row Row) []string {
	var raw string
	for _, col := range skillColumns {
		if value, ok := row[col]; ok && value != "" {
			raw = value
			break
		}
	}
	if raw == "" {
		return nil
	}

	cleaned := strings.TrimSpace(raw)
	if strings.HasPrefix(cleaned, "[") && strings.HasSuffix(cleaned, "]") {
		cleaned = cleaned[1 : len(cleaned)-1]
	}

	var parsed []string
	if err := json.Unmarshal([]byte("["+cleaned+"]"), &parsed); err == nil {
		return parsed
	}

	var skills []string
	for _, part := range strings.FieldsFunc(cleaned, func(r rune) bool {
		return r == ',' || r == '|' || r == ';'
	}) {
		skill := strings.Trim(strings.TrimSpace(part), `'"`)
		if skill != "" {
			skills = append(skills, skill)
		}
	}
	return skills
}
