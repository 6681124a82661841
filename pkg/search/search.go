// Package search orchestrates one scene search: it builds the catalog
// request, collects the candidate scenes and refines them against the AOI.
package search

import (
	"context"
	"fmt"
	"iter"
	"time"

	"github.com/planet-tools/scene-search/pkg/aoi"
	"github.com/planet-tools/scene-search/pkg/planet"
	"github.com/planet-tools/scene-search/pkg/refine"
)

// Catalog is the upstream search capability: given a request, it returns a
// lazily-iterable sequence of candidate scenes. *planet.QuickSearchService
// satisfies it; tests use fixtures.
type Catalog interface {
	Query(ctx context.Context, req planet.SearchRequest, opts ...planet.RequestOption) iter.Seq2[*planet.Scene, error]
}

// CatalogFunc adapts a function to the Catalog interface.
type CatalogFunc func(ctx context.Context, req planet.SearchRequest, opts ...planet.RequestOption) iter.Seq2[*planet.Scene, error]

// Query implements the Catalog interface.
func (f CatalogFunc) Query(ctx context.Context, req planet.SearchRequest, opts ...planet.RequestOption) iter.Seq2[*planet.Scene, error] {
	return f(ctx, req, opts...)
}

// DefaultLookback is the date-range span used when no start date is given.
const DefaultLookback = 365 * 24 * time.Hour

// Options restrict a search. Zero values trigger the defaults: the end date
// defaults to now, the start date to one year before the end date, and the
// item types to the full enumeration.
type Options struct {
	StartDate time.Time
	EndDate   time.Time
	ItemTypes []string
}

// Scenes searches the catalog for scenes matching the AOI and options and
// returns the refined result: scenes fully covering the AOI, in ascending
// acquisition order, near-duplicates removed.
func Scenes(ctx context.Context, catalog Catalog, area *aoi.AOI, opts Options) ([]*planet.Scene, error) {
	req, err := buildRequest(area, opts)
	if err != nil {
		return nil, err
	}

	var scenes []*planet.Scene
	for scene, err := range catalog.Query(ctx, req) {
		if err != nil {
			return nil, err
		}
		scenes = append(scenes, scene)
	}

	aoiGeom, err := area.Geos()
	if err != nil {
		return nil, err
	}
	return refine.Scenes(scenes, aoiGeom)
}

func buildRequest(area *aoi.AOI, opts Options) (planet.SearchRequest, error) {
	end := opts.EndDate
	if end.IsZero() {
		end = time.Now()
	}
	start := opts.StartDate
	if start.IsZero() {
		start = end.Add(-DefaultLookback)
	}

	itemTypes := opts.ItemTypes
	if len(itemTypes) == 0 {
		itemTypes = planet.ItemTypes
	}
	for _, t := range itemTypes {
		if !planet.ValidItemType(t) {
			return planet.SearchRequest{}, fmt.Errorf("search: unknown item type %q", t)
		}
	}

	geometry, err := area.GeoJSON()
	if err != nil {
		return planet.SearchRequest{}, err
	}

	filters := []planet.Filter{
		planet.GeomFilter(geometry),
		planet.DateRange("acquired", start, end),
	}
	if needsQualityFilter(itemTypes) {
		filters = append(filters, planet.StringIn("quality_category", "standard"))
	}

	return planet.SearchRequest{
		ItemTypes: itemTypes,
		Filter:    planet.And(filters...),
	}, nil
}

// needsQualityFilter reports whether the requested item types require the
// implicit standard-quality filter.
func needsQualityFilter(itemTypes []string) bool {
	for _, t := range itemTypes {
		if t == "PSScene3Band" || t == "PSScene4Band" {
			return true
		}
	}
	return false
}
