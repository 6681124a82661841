package planet_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/planet-tools/scene-search/pkg/planet"
)

const sceneFixture = `{
	"type": "Feature",
	"id": "20200601_100000_1234",
	"geometry": {"type":"Polygon","coordinates":[[[0,0],[1,0],[1,1],[0,1],[0,0]]]},
	"properties": {
		"acquired": "2020-06-01T10:00:00.5Z",
		"cloud_cover": 0.02,
		"item_type": "PSScene3Band"
	},
	"_links": {"_self": "https://api.planet.com/data/v1/item-types/PSScene3Band/items/x"},
	"_permissions": ["assets.analytic:download"]
}`

func TestSceneForeignMemberPassthrough(t *testing.T) {
	var scene planet.Scene
	require.NoError(t, json.Unmarshal([]byte(sceneFixture), &scene))

	assert.Equal(t, "20200601_100000_1234", scene.ID)
	assert.Contains(t, scene.AdditionalFields, "_links")
	assert.Contains(t, scene.AdditionalFields, "_permissions")

	out, err := json.Marshal(&scene)
	require.NoError(t, err)
	assert.JSONEq(t, sceneFixture, string(out))
}

func TestSceneAcquired(t *testing.T) {
	var scene planet.Scene
	require.NoError(t, json.Unmarshal([]byte(sceneFixture), &scene))

	acquired, err := scene.Acquired()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2020, 6, 1, 10, 0, 0, 500000000, time.UTC), acquired.UTC())
}

func TestSceneAcquiredMissing(t *testing.T) {
	scene := planet.Scene{ID: "x", Properties: map[string]any{}}
	_, err := scene.Acquired()
	assert.ErrorIs(t, err, planet.ErrMissingAcquired)
}

func TestSceneAcquiredUnparseable(t *testing.T) {
	scene := planet.Scene{ID: "x", Properties: map[string]any{"acquired": "not a date"}}
	_, err := scene.Acquired()
	assert.Error(t, err)
}
