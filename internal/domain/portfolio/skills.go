package portfolio

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
)

type SkillCategory struct {
	Name   string
	Skills []string
}

// Skills maps category names to skill lists and keeps insertion order, so it
// encodes as a JSON object whose keys come out in the order they were added.
// Values are immutable: every mutator returns a new Skills.
type Skills struct {
	categories []SkillCategory
}

func NewSkills(categories ...SkillCategory) Skills {
	var s Skills
	for _, c := range categories {
		s = s.Set(c.Name, c.Skills)
	}
	return s
}

func (s Skills) Len() int { return len(s.categories) }

func (s Skills) Names() []string {
	names := make([]string, len(s.categories))
	for i, c := range s.categories {
		names[i] = c.Name
	}
	return names
}

func (s Skills) Categories() []SkillCategory {
	return s.Clone().categories
}

func (s Skills) Get(name string) ([]string, bool) {
	i := s.index(name)
	if i < 0 {
		return nil, false
	}
	return cloneStrings(s.categories[i].Skills), true
}

func (s Skills) Has(name string) bool { return s.index(name) >= 0 }

// Set replaces the list of an existing category in place or appends a new one.
func (s Skills) Set(name string, skills []string) Skills {
	out := s.Clone()
	if skills == nil {
		skills = []string{}
	}
	if i := out.index(name); i >= 0 {
		out.categories[i].Skills = cloneStrings(skills)
		return out
	}
	out.categories = append(out.categories, SkillCategory{Name: name, Skills: cloneStrings(skills)})
	return out
}

func (s Skills) Delete(name string) Skills {
	out := s.Clone()
	if i := out.index(name); i >= 0 {
		out.categories = slices.Delete(out.categories, i, i+1)
	}
	if len(out.categories) == 0 {
		out.categories = nil
	}
	return out
}

// Rename moves oldName's list under newName. An existing newName keeps its
// position and takes the moved list; otherwise the category goes to the end.
func (s Skills) Rename(oldName, newName string) Skills {
	list, ok := s.Get(oldName)
	if !ok || oldName == newName {
		return s.Clone()
	}
	return s.Delete(oldName).Set(newName, list)
}

func (s Skills) Clone() Skills {
	if len(s.categories) == 0 {
		return Skills{}
	}
	out := Skills{categories: make([]SkillCategory, len(s.categories))}
	for i, c := range s.categories {
		out.categories[i] = SkillCategory{Name: c.Name, Skills: cloneStrings(c.Skills)}
	}
	return out
}

func (s Skills) index(name string) int {
	return slices.IndexFunc(s.categories, func(c SkillCategory) bool { return c.Name == name })
}

func (s Skills) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, c := range s.categories {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(c.Name)
		if err != nil {
			return nil, err
		}
		skills := c.Skills
		if skills == nil {
			skills = []string{}
		}
		val, err := json.Marshal(skills)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (s *Skills) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*s = Skills{}
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("skills: expected object, got %v", tok)
	}

	var out Skills
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("skills: expected category name, got %v", keyTok)
		}
		var list []string
		if err := dec.Decode(&list); err != nil {
			return fmt.Errorf("skills: category %q: %w", key, err)
		}
		out = out.Set(key, list)
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*s = out
	return nil
}
