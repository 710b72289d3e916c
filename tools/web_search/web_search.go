package web_search

import (
	"context"
	"errors"

	"github.com/pepo-gtm/pepo/tools/web_search/brave"
	"github.com/pepo-gtm/pepo/tools/web_search/models"
	"github.com/pepo-gtm/pepo/tools/web_search/serper"
)

// WebSearcher is the keyword-search backend behind the research tools.
type WebSearcher interface {
	Search(ctx context.Context, q string, k int) ([]models.Result, error)
}

type Provider string

const (
	SerperProvider Provider = "serper"
	BraveProvider  Provider = "brave"
)

var ErrUnsupportedProvider = errors.New("unsupported web search provider")

func NewWebSearcher(provider Provider, apiKey string) (WebSearcher, error) {
	switch provider {
	case SerperProvider:
		return serper.Search{ApiKey: apiKey}, nil
	case BraveProvider:
		return brave.Search{ApiKey: apiKey}, nil
	default:
		return nil, ErrUnsupportedProvider
	}
}
