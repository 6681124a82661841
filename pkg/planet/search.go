package planet

import (
	"context"
	"iter"
	"net/http"
)

// SearchRequest is the POST body for /quick-search requests.
type SearchRequest struct {
	ItemTypes []string `json:"item_types"`
	Filter    Filter   `json:"filter"`
	Name      string   `json:"name,omitempty"`
}

// SearchLinks carries the pagination links of a quick-search page.
type SearchLinks struct {
	First string `json:"_first,omitempty"`
	Next  string `json:"_next,omitempty"`
	Self  string `json:"_self,omitempty"`
}

// SceneCollection represents one page of quick-search results.
type SceneCollection struct {
	Type   string      `json:"type"`
	Scenes []*Scene    `json:"features"`
	Links  SearchLinks `json:"_links"`
}

// NextURL returns the absolute URL of the next page, or "" on the last page.
func (c *SceneCollection) NextURL() string {
	if c == nil {
		return ""
	}
	return c.Links.Next
}

// QuickSearchService executes Data API quick-search requests.
type QuickSearchService struct {
	client *Client
}

// Query streams search results lazily, following _next links across pages.
func (s *QuickSearchService) Query(ctx context.Context, req SearchRequest, opts ...RequestOption) iter.Seq2[*Scene, error] {
	return func(yield func(*Scene, error) bool) {
		page, err := s.GetPage(ctx, req, opts...)
		for {
			if err != nil {
				yield(nil, err)
				return
			}
			for _, scene := range page.Scenes {
				if scene == nil {
					continue
				}
				if !yield(scene, nil) {
					return
				}
			}
			next := page.NextURL()
			if next == "" {
				return
			}
			page, err = s.GetPageURL(ctx, next, opts...)
		}
	}
}

// GetPage performs a single POST /quick-search request returning one page.
func (s *QuickSearchService) GetPage(ctx context.Context, req SearchRequest, opts ...RequestOption) (*SceneCollection, error) {
	urlStr := s.client.buildURL("/quick-search", nil)
	var page SceneCollection
	if err := s.client.doJSON(ctx, http.MethodPost, urlStr, req, &page, opts); err != nil {
		return nil, err
	}
	return &page, nil
}

// GetPageURL fetches a page by its absolute link, as found in _links.
func (s *QuickSearchService) GetPageURL(ctx context.Context, urlStr string, opts ...RequestOption) (*SceneCollection, error) {
	var page SceneCollection
	if err := s.client.doJSON(ctx, http.MethodGet, urlStr, nil, &page, opts); err != nil {
		return nil, err
	}
	return &page, nil
}
