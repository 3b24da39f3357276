// Package site renders the public view of the portfolio document.
package site

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/glamour"
	"golang.org/x/term"

	"github.com/khoahotran/portfolio/internal/domain/portfolio"
)

const (
	defaultWidth = 80
	minWidth     = 20
)

// Markdown lays the document out section by section: hero, skills in document
// order, projects, experience, contact.
func Markdown(doc portfolio.Document) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", doc.Name)
	if doc.Title != "" {
		fmt.Fprintf(&b, "**%s**", doc.Title)
		if doc.ExperienceYears != "" {
			fmt.Fprintf(&b, " · %s years", doc.ExperienceYears)
		}
		b.WriteString("\n\n")
	}
	if doc.Intro != "" {
		fmt.Fprintf(&b, "%s\n\n", doc.Intro)
	}

	if doc.Skills.Len() > 0 {
		b.WriteString("## Skills\n\n")
		for _, c := range doc.Skills.Categories() {
			fmt.Fprintf(&b, "- **%s**: %s\n", c.Name, strings.Join(c.Skills, ", "))
		}
		b.WriteString("\n")
	}

	if len(doc.Projects) > 0 {
		b.WriteString("## Projects\n\n")
		for _, p := range doc.Projects {
			title := p.Title
			if p.Link != "" {
				title = fmt.Sprintf("[%s](%s)", p.Title, p.Link)
			}
			fmt.Fprintf(&b, "### %s\n\n", title)
			if p.Role != "" {
				fmt.Fprintf(&b, "_%s_\n\n", p.Role)
			}
			if p.Description != "" {
				fmt.Fprintf(&b, "%s\n\n", p.Description)
			}
			if len(p.TechStack) > 0 {
				fmt.Fprintf(&b, "`%s`\n\n", strings.Join(p.TechStack, "` `"))
			}
		}
	}

	if len(doc.Experience) > 0 {
		b.WriteString("## Experience\n\n")
		for _, x := range doc.Experience {
			fmt.Fprintf(&b, "### %s · %s\n\n", x.Role, x.Company)
			if x.Period != "" {
				fmt.Fprintf(&b, "_%s_\n\n", x.Period)
			}
			for _, h := range x.Highlights {
				fmt.Fprintf(&b, "- %s\n", h)
			}
			if len(x.Highlights) > 0 {
				b.WriteString("\n")
			}
		}
	}

	b.WriteString("## Contact\n\n")
	for _, line := range []struct{ label, value string }{
		{"Email", doc.Contact.Email},
		{"GitHub", doc.Contact.Github},
		{"LinkedIn", doc.Contact.Linkedin},
	} {
		if line.value != "" {
			fmt.Fprintf(&b, "- %s: %s\n", line.label, line.value)
		}
	}

	return b.String()
}

// TerminalWidth returns the current terminal width or a fallback when unavailable.
func TerminalWidth() int {
	if width, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && width > 0 {
		return width
	}
	if cols := os.Getenv("COLUMNS"); cols != "" {
		if parsed, err := strconv.Atoi(cols); err == nil && parsed > 0 {
			return parsed
		}
	}
	return defaultWidth
}

// Render formats the document for a terminal. An empty style picks one from
// the terminal background.
func Render(doc portfolio.Document, width int, style string) (string, error) {
	if width < minWidth {
		width = minWidth
	}
	styleOpt := glamour.WithAutoStyle()
	if style != "" {
		styleOpt = glamour.WithStandardStyle(style)
	}

	renderer, err := glamour.NewTermRenderer(styleOpt, glamour.WithWordWrap(width))
	if err != nil {
		return "", err
	}
	rendered, err := renderer.Render(Markdown(doc))
	if err != nil {
		return "", err
	}
	return strings.TrimRight(rendered, "\n"), nil
}
