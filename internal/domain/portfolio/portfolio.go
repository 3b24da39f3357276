package portfolio

import (
	"bytes"
	"encoding/json"
	"errors"
	"slices"
)

var ErrNotObject = errors.New("portfolio: document must be a JSON object")

// Document is the single record behind every section of the site.
type Document struct {
	Name            string            `json:"name"`
	Title           string            `json:"title"`
	ExperienceYears string            `json:"experienceYears"`
	Intro           string            `json:"intro"`
	Skills          Skills            `json:"skills"`
	Projects        []Project         `json:"projects"`
	Experience      []ExperienceEntry `json:"experience"`
	Contact         Contact           `json:"contact"`
}

type Project struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	TechStack   []string `json:"techStack"`
	Role        string   `json:"role"`
	Image       string   `json:"image,omitempty"`
	Link        string   `json:"link,omitempty"`
}

type ExperienceEntry struct {
	ID         string   `json:"id"`
	Company    string   `json:"company"`
	Role       string   `json:"role"`
	Period     string   `json:"period"`
	Highlights []string `json:"highlights"`
}

type Contact struct {
	Email    string `json:"email"`
	Github   string `json:"github"`
	Linkedin string `json:"linkedin"`
}

// Clone returns a deep copy; edits on the copy never reach the receiver.
func (d Document) Clone() Document {
	out := d
	out.Skills = d.Skills.Clone()
	if d.Projects != nil {
		out.Projects = make([]Project, len(d.Projects))
		for i, p := range d.Projects {
			p.TechStack = cloneStrings(p.TechStack)
			out.Projects[i] = p
		}
	}
	if d.Experience != nil {
		out.Experience = make([]ExperienceEntry, len(d.Experience))
		for i, e := range d.Experience {
			e.Highlights = cloneStrings(e.Highlights)
			out.Experience[i] = e
		}
	}
	return out
}

// HasID reports whether id is already used by a project or an experience entry.
func (d Document) HasID(id string) bool {
	return d.ProjectIndex(id) >= 0 || d.ExperienceIndex(id) >= 0
}

func (d Document) ProjectIndex(id string) int {
	return slices.IndexFunc(d.Projects, func(p Project) bool { return p.ID == id })
}

func (d Document) ExperienceIndex(id string) int {
	return slices.IndexFunc(d.Experience, func(e ExperienceEntry) bool { return e.ID == id })
}

// MarshalJSON writes empty collections as [] instead of null.
func (d Document) MarshalJSON() ([]byte, error) {
	type plain Document
	return json.Marshal(plain(d.normalized()))
}

func (d Document) normalized() Document {
	out := d.Clone()
	if out.Projects == nil {
		out.Projects = []Project{}
	}
	if out.Experience == nil {
		out.Experience = []ExperienceEntry{}
	}
	for i := range out.Projects {
		if out.Projects[i].TechStack == nil {
			out.Projects[i].TechStack = []string{}
		}
	}
	for i := range out.Experience {
		if out.Experience[i].Highlights == nil {
			out.Experience[i].Highlights = []string{}
		}
	}
	return out
}

// Parse decodes a stored document. No validation beyond JSON shape; the top
// level must be an object, so null, arrays and scalars are rejected.
func Parse(data []byte) (Document, error) {
	if !IsObject(data) {
		return Document{}, ErrNotObject
	}
	var d Document
	if err := json.Unmarshal(data, &d); err != nil {
		return Document{}, err
	}
	return d, nil
}

// IsObject reports whether data is valid JSON with an object at the top level.
func IsObject(data []byte) bool {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	return len(trimmed) > 0 && trimmed[0] == '{' && json.Valid(data)
}

// Encode is the indented form used for local storage and exports.
func Encode(d Document) ([]byte, error) {
	return json.MarshalIndent(d, "", "  ")
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
