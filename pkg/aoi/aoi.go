// Package aoi resolves a user-provided area of interest into a geometry
// usable both as a catalog search filter and as a containment test subject.
package aoi

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/go-spatial/geom"
	"github.com/go-spatial/geom/encoding/geojson"
	"github.com/go-spatial/geom/encoding/wkt"
	"github.com/paulsmith/gogeos/geos"
)

var (
	// ErrInvalidLatitude is returned for latitudes outside [-90, 90].
	ErrInvalidLatitude = errors.New("aoi: latitude must be in [-90, 90]")
	// ErrInvalidLongitude is returned for longitudes outside [-180, 180].
	ErrInvalidLongitude = errors.New("aoi: longitude must be in [-180, 180]")
	// ErrInvalidSize is returned for non-positive rectangle dimensions.
	ErrInvalidSize = errors.New("aoi: width and height must be positive")
	// ErrRectangleOutOfRange is returned when the requested rectangle
	// does not fit on the globe at the given center.
	ErrRectangleOutOfRange = errors.New("aoi: rectangle does not fit at this latitude")
	// ErrUnsupportedGeometry is returned for geometry types the search
	// cannot use as an area of interest.
	ErrUnsupportedGeometry = errors.New("aoi: geometry must be a point, polygon or multipolygon")
)

// AOI is an immutable area of interest.
type AOI struct {
	geometry geom.Geometry
}

// FromFile loads an AOI from a GeoJSON file. Bare geometries, features and
// feature collections are accepted; the latter are merged into a single
// multipolygon.
func FromFile(path string) (*AOI, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("aoi: %w", err)
	}
	return FromGeoJSON(data)
}

// FromGeoJSON builds an AOI from GeoJSON bytes.
func FromGeoJSON(data []byte) (*AOI, error) {
	g, err := unmarshalGeometry(data)
	if err != nil {
		return nil, fmt.Errorf("aoi: invalid geojson: %w", err)
	}
	switch g.(type) {
	case geom.Point, geom.Polygon, geom.MultiPolygon:
	default:
		return nil, ErrUnsupportedGeometry
	}
	return &AOI{geometry: g}, nil
}

// unmarshalGeometry decodes GeoJSON, merging feature collections into a
// multipolygon.
func unmarshalGeometry(data []byte) (geom.Geometry, error) {
	var g geojson.Geometry
	if err := g.UnmarshalJSON(data); err != nil {
		return nil, err
	}
	switch geo := g.Geometry.(type) {
	case geojson.FeatureCollection:
		var mp geom.MultiPolygon
		for _, f := range geo.Features {
			mergeMultiPolygons(f.Geometry.Geometry, &mp)
		}
		return mp, nil
	case geojson.Feature:
		return geo.Geometry.Geometry, nil
	default:
		return g.Geometry, nil
	}
}

func mergeMultiPolygons(g geom.Geometry, mp *geom.MultiPolygon) {
	switch g := g.(type) {
	case geom.MultiPolygon:
		*mp = append(*mp, g.Polygons()...)
	case geom.Polygon:
		*mp = append(*mp, g.LinearRings())
	case geom.Collection:
		for _, g := range g.Geometries() {
			mergeMultiPolygons(g, mp)
		}
	}
}

// metersPerDegree is the length of one degree of latitude on the WGS84
// ellipsoid, also used for longitude after scaling by cos(lat).
const metersPerDegree = 111319.49

// Rectangle builds a rectangular AOI centered on (lat, lon) with the given
// width and height in meters, using an equirectangular approximation.
func Rectangle(lat, lon, width, height float64) (*AOI, error) {
	if lat < -90 || lat > 90 {
		return nil, ErrInvalidLatitude
	}
	if lon < -180 || lon > 180 {
		return nil, ErrInvalidLongitude
	}
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidSize
	}

	dlat := height / 2 / metersPerDegree
	dlon := width / 2 / (metersPerDegree * math.Cos(lat*math.Pi/180))
	// Near the poles cos(lat) vanishes and the longitude span blows up.
	if lat-dlat < -90 || lat+dlat > 90 || !(dlon < 180) {
		return nil, ErrRectangleOutOfRange
	}

	ring := [][2]float64{
		{lon - dlon, lat - dlat},
		{lon + dlon, lat - dlat},
		{lon + dlon, lat + dlat},
		{lon - dlon, lat + dlat},
		{lon - dlon, lat - dlat},
	}
	return &AOI{geometry: geom.Polygon{ring}}, nil
}

// GeoJSON returns the AOI encoded as a GeoJSON geometry object.
func (a *AOI) GeoJSON() (json.RawMessage, error) {
	data, err := json.Marshal(geojson.Geometry{Geometry: a.geometry})
	if err != nil {
		return nil, fmt.Errorf("aoi: %w", err)
	}
	return data, nil
}

// Geos returns the AOI as a GEOS geometry for topological predicates.
func (a *AOI) Geos() (*geos.Geometry, error) {
	g, err := geos.FromWKT(wkt.MustEncode(a.geometry))
	if err != nil {
		return nil, fmt.Errorf("aoi: %w", err)
	}
	return g, nil
}
