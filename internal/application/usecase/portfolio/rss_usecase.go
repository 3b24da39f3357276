package portfolio

import (
	"context"
	"time"

	"github.com/gorilla/feeds"
	"go.uber.org/zap"

	"github.com/khoahotran/portfolio/internal/domain/portfolio"
	"github.com/khoahotran/portfolio/pkg/apperror"
)

// ExecuteProjectsFeed publishes the document's projects as an RSS feed.
func (uc *PortfolioUseCase) ExecuteProjectsFeed(ctx context.Context, siteURL string) (*feeds.Feed, error) {
	data, err := uc.ExecuteGet(ctx)
	if err != nil {
		return nil, err
	}

	doc, err := portfolio.Parse(data)
	if err != nil {
		return nil, apperror.NewInternal("Failed to load portfolio", err)
	}

	feed := &feeds.Feed{
		Title:       doc.Name + " - Projects",
		Link:        &feeds.Link{Href: siteURL},
		Description: doc.Intro,
		Author:      &feeds.Author{Name: doc.Name, Email: doc.Contact.Email},
		Created:     time.Now(),
	}

	for _, p := range doc.Projects {
		link := p.Link
		if link == "" {
			link = siteURL + "#projects"
		}
		feed.Items = append(feed.Items, &feeds.Item{
			Id:          p.ID,
			Title:       p.Title,
			Link:        &feeds.Link{Href: link},
			Description: p.Description,
		})
	}

	uc.logger.Debug("Projects feed generated", zap.Int("item_count", len(feed.Items)))
	return feed, nil
}
