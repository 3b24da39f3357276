package editor

import (
	"context"
	"fmt"
	"math/rand/v2"
	"slices"
	"strconv"
	"strings"

	"github.com/khoahotran/portfolio/internal/domain/portfolio"
)

const base36 = "0123456789abcdefghijklmnopqrstuvwxyz"

// newID returns id-<unix ms>-<7 base36 chars>, unique within d.
func (e *Editor) newID(d *portfolio.Document) string {
	for {
		suffix := make([]byte, 7)
		for i := range suffix {
			suffix[i] = base36[rand.IntN(len(base36))]
		}
		id := "id-" + strconv.FormatInt(e.now().UnixMilli(), 10) + "-" + string(suffix)
		if !d.HasID(id) {
			return id
		}
	}
}

func (e *Editor) AddSkillCategory(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	return e.apply(ctx, func(d *portfolio.Document) (bool, error) {
		if name == "" || d.Skills.Has(name) {
			return false, nil
		}
		d.Skills = d.Skills.Set(name, []string{})
		return true, nil
	})
}

func (e *Editor) RemoveSkillCategory(ctx context.Context, name string) error {
	return e.apply(ctx, func(d *portfolio.Document) (bool, error) {
		if !d.Skills.Has(name) {
			return false, nil
		}
		d.Skills = d.Skills.Delete(name)
		return true, nil
	})
}

// RenameSkillCategory ignores blank or unchanged names.
func (e *Editor) RenameSkillCategory(ctx context.Context, oldName, newName string) error {
	newName = strings.TrimSpace(newName)
	return e.apply(ctx, func(d *portfolio.Document) (bool, error) {
		if newName == "" || newName == oldName {
			return false, nil
		}
		if !d.Skills.Has(oldName) {
			return false, fmt.Errorf("skill category %q: %w", oldName, ErrNotFound)
		}
		d.Skills = d.Skills.Rename(oldName, newName)
		return true, nil
	})
}

func (e *Editor) AddSkill(ctx context.Context, category, skill string) error {
	skill = strings.TrimSpace(skill)
	return e.apply(ctx, func(d *portfolio.Document) (bool, error) {
		list, ok := d.Skills.Get(category)
		if !ok {
			return false, fmt.Errorf("skill category %q: %w", category, ErrNotFound)
		}
		if skill == "" {
			return false, nil
		}
		d.Skills = d.Skills.Set(category, append(list, skill))
		return true, nil
	})
}

func (e *Editor) RemoveSkill(ctx context.Context, category string, index int) error {
	return e.apply(ctx, func(d *portfolio.Document) (bool, error) {
		list, ok := d.Skills.Get(category)
		if !ok {
			return false, fmt.Errorf("skill category %q: %w", category, ErrNotFound)
		}
		out, changed := removeAt(list, index)
		if changed {
			d.Skills = d.Skills.Set(category, out)
		}
		return changed, nil
	})
}

// AddProject prepends a blank project and returns its id.
func (e *Editor) AddProject(ctx context.Context) (string, error) {
	var id string
	err := e.apply(ctx, func(d *portfolio.Document) (bool, error) {
		id = e.newID(d)
		blank := portfolio.Project{ID: id, TechStack: []string{}}
		d.Projects = append([]portfolio.Project{blank}, d.Projects...)
		return true, nil
	})
	return id, err
}

func (e *Editor) RemoveProject(ctx context.Context, id string) error {
	return e.apply(ctx, func(d *portfolio.Document) (bool, error) {
		i := d.ProjectIndex(id)
		if i < 0 {
			return false, nil
		}
		d.Projects = slices.Delete(d.Projects, i, i+1)
		return true, nil
	})
}

func (e *Editor) AddTech(ctx context.Context, projectID, tech string) error {
	tech = strings.TrimSpace(tech)
	return e.apply(ctx, func(d *portfolio.Document) (bool, error) {
		i := d.ProjectIndex(projectID)
		if i < 0 {
			return false, fmt.Errorf("project %q: %w", projectID, ErrNotFound)
		}
		if tech == "" {
			return false, nil
		}
		d.Projects[i].TechStack = append(d.Projects[i].TechStack, tech)
		return true, nil
	})
}

func (e *Editor) RemoveTech(ctx context.Context, projectID string, index int) error {
	return e.apply(ctx, func(d *portfolio.Document) (bool, error) {
		i := d.ProjectIndex(projectID)
		if i < 0 {
			return false, fmt.Errorf("project %q: %w", projectID, ErrNotFound)
		}
		out, changed := removeAt(d.Projects[i].TechStack, index)
		d.Projects[i].TechStack = out
		return changed, nil
	})
}

// AddExperience prepends a blank entry and returns its id.
func (e *Editor) AddExperience(ctx context.Context) (string, error) {
	var id string
	err := e.apply(ctx, func(d *portfolio.Document) (bool, error) {
		id = e.newID(d)
		blank := portfolio.ExperienceEntry{ID: id, Highlights: []string{}}
		d.Experience = append([]portfolio.ExperienceEntry{blank}, d.Experience...)
		return true, nil
	})
	return id, err
}

func (e *Editor) RemoveExperience(ctx context.Context, id string) error {
	return e.apply(ctx, func(d *portfolio.Document) (bool, error) {
		i := d.ExperienceIndex(id)
		if i < 0 {
			return false, nil
		}
		d.Experience = slices.Delete(d.Experience, i, i+1)
		return true, nil
	})
}

func (e *Editor) AddHighlight(ctx context.Context, experienceID, highlight string) error {
	highlight = strings.TrimSpace(highlight)
	return e.apply(ctx, func(d *portfolio.Document) (bool, error) {
		i := d.ExperienceIndex(experienceID)
		if i < 0 {
			return false, fmt.Errorf("experience %q: %w", experienceID, ErrNotFound)
		}
		if highlight == "" {
			return false, nil
		}
		d.Experience[i].Highlights = append(d.Experience[i].Highlights, highlight)
		return true, nil
	})
}

func (e *Editor) RemoveHighlight(ctx context.Context, experienceID string, index int) error {
	return e.apply(ctx, func(d *portfolio.Document) (bool, error) {
		i := d.ExperienceIndex(experienceID)
		if i < 0 {
			return false, fmt.Errorf("experience %q: %w", experienceID, ErrNotFound)
		}
		out, changed := removeAt(d.Experience[i].Highlights, index)
		d.Experience[i].Highlights = out
		return changed, nil
	})
}

func removeAt(list []string, index int) ([]string, bool) {
	if index < 0 || index >= len(list) {
		return list, false
	}
	return slices.Delete(slices.Clone(list), index, index+1), true
}
