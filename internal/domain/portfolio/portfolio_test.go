package portfolio

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSkills_JSONKeepsCategoryOrder(t *testing.T) {
	raw := `{"Languages":["Go","TS"],"Backend":["gin"],"Frontend":[]}`

	var s Skills
	require.NoError(t, json.Unmarshal([]byte(raw), &s))
	assert.Equal(t, []string{"Languages", "Backend", "Frontend"}, s.Names())

	out, err := json.Marshal(s)
	require.NoError(t, err)
	assert.JSONEq(t, raw, string(out))
	assert.Equal(t, raw, string(out))
}

func TestSkills_RenameMovesToEnd(t *testing.T) {
	s := NewSkills(
		SkillCategory{Name: "Frontend", Skills: []string{"TS", "CSS"}},
		SkillCategory{Name: "Backend", Skills: []string{"Go"}},
	)

	renamed := s.Rename("Frontend", "Client")

	assert.False(t, renamed.Has("Frontend"))
	list, ok := renamed.Get("Client")
	require.True(t, ok)
	assert.Equal(t, []string{"TS", "CSS"}, list)
	assert.Equal(t, []string{"Backend", "Client"}, renamed.Names())
	assert.True(t, s.Has("Frontend"), "receiver must be left untouched")
}

func TestSkills_RenameOntoExistingKeepsPosition(t *testing.T) {
	s := NewSkills(
		SkillCategory{Name: "Web", Skills: []string{"HTML"}},
		SkillCategory{Name: "Frontend", Skills: []string{"TS"}},
	)

	renamed := s.Rename("Frontend", "Web")

	assert.Equal(t, []string{"Web"}, renamed.Names())
	list, _ := renamed.Get("Web")
	assert.Equal(t, []string{"TS"}, list)
}

func TestSkills_NullDecodesEmpty(t *testing.T) {
	var d Document
	require.NoError(t, json.Unmarshal([]byte(`{"skills":null}`), &d))
	assert.Equal(t, 0, d.Skills.Len())
}

func TestSkills_RejectsNonObject(t *testing.T) {
	var s Skills
	assert.Error(t, json.Unmarshal([]byte(`["Go"]`), &s))
}

func TestDocument_CloneIsDeep(t *testing.T) {
	d := Document{
		Skills:     NewSkills(SkillCategory{Name: "Go", Skills: []string{"gin"}}),
		Projects:   []Project{{ID: "p1", TechStack: []string{"Go"}}},
		Experience: []ExperienceEntry{{ID: "e1", Highlights: []string{"shipped"}}},
	}

	c := d.Clone()
	c.Projects[0].TechStack[0] = "Rust"
	c.Experience[0].Highlights[0] = "changed"
	c.Skills = c.Skills.Set("Go", []string{"echo"})

	assert.Equal(t, "Go", d.Projects[0].TechStack[0])
	assert.Equal(t, "shipped", d.Experience[0].Highlights[0])
	list, _ := d.Skills.Get("Go")
	assert.Equal(t, []string{"gin"}, list)
}

func TestDocument_MarshalEmptyCollections(t *testing.T) {
	out, err := json.Marshal(Document{Projects: []Project{{ID: "p1"}}})
	require.NoError(t, err)

	var generic map[string]any
	require.NoError(t, json.Unmarshal(out, &generic))
	assert.Equal(t, map[string]any{}, generic["skills"])
	assert.Equal(t, []any{}, generic["experience"])
	project := generic["projects"].([]any)[0].(map[string]any)
	assert.Equal(t, []any{}, project["techStack"])
	assert.NotContains(t, project, "image")
}

func TestDocument_HasID(t *testing.T) {
	d := Document{
		Projects:   []Project{{ID: "p1"}},
		Experience: []ExperienceEntry{{ID: "e1"}},
	}
	assert.True(t, d.HasID("p1"))
	assert.True(t, d.HasID("e1"))
	assert.False(t, d.HasID("x"))
	assert.Equal(t, 0, d.ProjectIndex("p1"))
	assert.Equal(t, -1, d.ExperienceIndex("p1"))
}

func TestParse_Invalid(t *testing.T) {
	_, err := Parse([]byte("{not json"))
	assert.Error(t, err)
}

func TestParse_RejectsNonObjectTopLevel(t *testing.T) {
	for _, raw := range []string{"null", " null\n", "[]", `"x"`, "42", "true", ""} {
		_, err := Parse([]byte(raw))
		assert.ErrorIs(t, err, ErrNotObject, "raw=%q", raw)
	}

	d, err := Parse([]byte(" \n{\"name\":\"Ann\"}"))
	require.NoError(t, err)
	assert.Equal(t, "Ann", d.Name)
}
