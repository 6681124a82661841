package aoi_test

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/planet-tools/scene-search/pkg/aoi"
)

func TestRectangleGeometry(t *testing.T) {
	const lat, lon = 48.85, 2.33
	area, err := aoi.Rectangle(lat, lon, 5000, 5000)
	require.NoError(t, err)

	raw, err := area.GeoJSON()
	require.NoError(t, err)

	var decoded struct {
		Type        string         `json:"type"`
		Coordinates [][][2]float64 `json:"coordinates"`
	}
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, "Polygon", decoded.Type)
	require.Len(t, decoded.Coordinates, 1)

	ring := decoded.Coordinates[0]
	require.Len(t, ring, 5)
	assert.Equal(t, ring[0], ring[4], "ring must be closed")

	// The rectangle is centered on the requested point and roughly 5 km
	// across in ground distance.
	centerLon := (ring[0][0] + ring[2][0]) / 2
	centerLat := (ring[0][1] + ring[2][1]) / 2
	assert.InDelta(t, lon, centerLon, 1e-9)
	assert.InDelta(t, lat, centerLat, 1e-9)

	widthMeters := (ring[2][0] - ring[0][0]) * 111319.49 * math.Cos(lat*math.Pi/180)
	heightMeters := (ring[2][1] - ring[0][1]) * 111319.49
	assert.InDelta(t, 5000, widthMeters, 1)
	assert.InDelta(t, 5000, heightMeters, 1)
}

func TestRectangleValidation(t *testing.T) {
	_, err := aoi.Rectangle(91, 0, 5000, 5000)
	assert.ErrorIs(t, err, aoi.ErrInvalidLatitude)

	_, err = aoi.Rectangle(0, -181, 5000, 5000)
	assert.ErrorIs(t, err, aoi.ErrInvalidLongitude)

	_, err = aoi.Rectangle(0, 0, 0, 5000)
	assert.ErrorIs(t, err, aoi.ErrInvalidSize)
}

func TestRectangleNearPole(t *testing.T) {
	// A 5 km square cannot be projected this close to the pole: the
	// longitude span exceeds the globe.
	_, err := aoi.Rectangle(89.99999, 0, 5000, 5000)
	assert.ErrorIs(t, err, aoi.ErrRectangleOutOfRange)

	_, err = aoi.Rectangle(90, 0, 5000, 5000)
	assert.ErrorIs(t, err, aoi.ErrRectangleOutOfRange)

	_, err = aoi.Rectangle(-90, 0, 5000, 5000)
	assert.ErrorIs(t, err, aoi.ErrRectangleOutOfRange)

	// High but workable latitudes still resolve.
	area, err := aoi.Rectangle(78, 15, 5000, 5000)
	require.NoError(t, err)
	assert.NotNil(t, area)
}

func TestFromGeoJSONPolygon(t *testing.T) {
	area, err := aoi.FromGeoJSON([]byte(`{"type":"Polygon","coordinates":[[[0,0],[1,0],[1,1],[0,1],[0,0]]]}`))
	require.NoError(t, err)

	g, err := area.Geos()
	require.NoError(t, err)
	assert.NotNil(t, g)
}

func TestFromGeoJSONFeature(t *testing.T) {
	data := []byte(`{
		"type": "Feature",
		"properties": {},
		"geometry": {"type":"Polygon","coordinates":[[[0,0],[1,0],[1,1],[0,1],[0,0]]]}
	}`)
	area, err := aoi.FromGeoJSON(data)
	require.NoError(t, err)

	raw, err := area.GeoJSON()
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"Polygon"`)
}

func TestFromGeoJSONPoint(t *testing.T) {
	area, err := aoi.FromGeoJSON([]byte(`{"type":"Point","coordinates":[2.33,48.85]}`))
	require.NoError(t, err)

	g, err := area.Geos()
	require.NoError(t, err)
	assert.NotNil(t, g)
}

func TestFromGeoJSONUnsupported(t *testing.T) {
	_, err := aoi.FromGeoJSON([]byte(`{"type":"LineString","coordinates":[[0,0],[1,1]]}`))
	assert.ErrorIs(t, err, aoi.ErrUnsupportedGeometry)
}

func TestFromGeoJSONMalformed(t *testing.T) {
	_, err := aoi.FromGeoJSON([]byte(`{"type":"Polygon"`))
	assert.Error(t, err)
}

func TestFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "aoi.geojson")
	require.NoError(t, os.WriteFile(path, []byte(`{"type":"Polygon","coordinates":[[[0,0],[1,0],[1,1],[0,1],[0,0]]]}`), 0o644))

	area, err := aoi.FromFile(path)
	require.NoError(t, err)
	assert.NotNil(t, area)

	_, err = aoi.FromFile(filepath.Join(t.TempDir(), "missing.geojson"))
	assert.Error(t, err)
}
