package editor

import (
	"context"
	"fmt"

	"github.com/khoahotran/portfolio/internal/domain/portfolio"
)

// Field names accepted by the Set*Field methods.
var (
	HeroFields       = []string{"name", "title", "experienceYears", "intro"}
	ContactFields    = []string{"email", "github", "linkedin"}
	ProjectFields    = []string{"title", "description", "role", "image", "link"}
	ExperienceFields = []string{"company", "role", "period"}
)

func (e *Editor) SetHeroField(ctx context.Context, field, value string) error {
	return e.apply(ctx, func(d *portfolio.Document) (bool, error) {
		switch field {
		case "name":
			d.Name = value
		case "title":
			d.Title = value
		case "experienceYears":
			d.ExperienceYears = value
		case "intro":
			d.Intro = value
		default:
			return false, fmt.Errorf("%w: %q", ErrUnknownField, field)
		}
		return true, nil
	})
}

func (e *Editor) SetContactField(ctx context.Context, field, value string) error {
	return e.apply(ctx, func(d *portfolio.Document) (bool, error) {
		switch field {
		case "email":
			d.Contact.Email = value
		case "github":
			d.Contact.Github = value
		case "linkedin":
			d.Contact.Linkedin = value
		default:
			return false, fmt.Errorf("%w: %q", ErrUnknownField, field)
		}
		return true, nil
	})
}

func (e *Editor) SetProjectField(ctx context.Context, id, field, value string) error {
	return e.apply(ctx, func(d *portfolio.Document) (bool, error) {
		i := d.ProjectIndex(id)
		if i < 0 {
			return false, fmt.Errorf("project %q: %w", id, ErrNotFound)
		}
		p := &d.Projects[i]
		switch field {
		case "title":
			p.Title = value
		case "description":
			p.Description = value
		case "role":
			p.Role = value
		case "image":
			p.Image = value
		case "link":
			p.Link = value
		default:
			return false, fmt.Errorf("%w: %q", ErrUnknownField, field)
		}
		return true, nil
	})
}

func (e *Editor) SetExperienceField(ctx context.Context, id, field, value string) error {
	return e.apply(ctx, func(d *portfolio.Document) (bool, error) {
		i := d.ExperienceIndex(id)
		if i < 0 {
			return false, fmt.Errorf("experience %q: %w", id, ErrNotFound)
		}
		x := &d.Experience[i]
		switch field {
		case "company":
			x.Company = value
		case "role":
			x.Role = value
		case "period":
			x.Period = value
		default:
			return false, fmt.Errorf("%w: %q", ErrUnknownField, field)
		}
		return true, nil
	})
}
