// Package refine turns the raw scene sequence returned by the catalog into
// a clean, chronological, deduplicated sequence.
package refine

import (
	"fmt"
	"runtime"
	"sort"
	"time"

	"github.com/go-spatial/geom/encoding/geojson"
	"github.com/go-spatial/geom/encoding/wkt"
	"github.com/paulsmith/gogeos/geos"

	"github.com/planet-tools/scene-search/pkg/planet"
)

// DuplicateWindow is the acquisition-time gap under which two scenes are
// considered near-duplicates.
const DuplicateWindow = 300 * time.Second

// MalformedRecordError reports a scene whose geometry or acquisition
// timestamp cannot be interpreted. The pipeline fails rather than silently
// returning partial results.
type MalformedRecordError struct {
	SceneID string
	Reason  string
	Err     error
}

func (e *MalformedRecordError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("refine: malformed scene %q: %s: %v", e.SceneID, e.Reason, e.Err)
	}
	return fmt.Sprintf("refine: malformed scene %q: %s", e.SceneID, e.Reason)
}

func (e *MalformedRecordError) Unwrap() error { return e.Err }

// Scenes refines raw search results against the AOI geometry:
//
//  1. keep only scenes whose footprint covers the full AOI (partial overlap
//     is not acceptable for downstream use),
//  2. sort the survivors by ascending acquisition time (stable on ties),
//  3. drop the earlier scene of every adjacent pair acquired less than
//     DuplicateWindow apart.
//
// Input scenes are never modified; the output is a subset of the input.
func Scenes(scenes []*planet.Scene, aoi *geos.Geometry) ([]*planet.Scene, error) {
	covering, err := removePartialCoverage(scenes, aoi)
	if err != nil {
		return nil, err
	}

	timed, err := sortByAcquired(covering)
	if err != nil {
		return nil, err
	}

	return removeNearDuplicates(timed), nil
}

// removePartialCoverage keeps the scenes whose footprint topologically
// covers the AOI, so that every point of the AOI lies within or on the
// boundary of the footprint.
func removePartialCoverage(scenes []*planet.Scene, aoi *geos.Geometry) ([]*planet.Scene, error) {
	var kept []*planet.Scene
	for _, scene := range scenes {
		footprint, err := footprintGeos(scene)
		if err != nil {
			return nil, err
		}
		covers, err := footprint.Covers(aoi)
		if err != nil {
			return nil, &MalformedRecordError{SceneID: scene.ID, Reason: "containment predicate failed", Err: err}
		}
		if covers {
			kept = append(kept, scene)
		}
	}
	runtime.KeepAlive(aoi)

	return kept, nil
}

func footprintGeos(scene *planet.Scene) (*geos.Geometry, error) {
	if len(scene.Geometry) == 0 || string(scene.Geometry) == "null" {
		return nil, &MalformedRecordError{SceneID: scene.ID, Reason: "missing geometry"}
	}
	var g geojson.Geometry
	if err := g.UnmarshalJSON(scene.Geometry); err != nil {
		return nil, &MalformedRecordError{SceneID: scene.ID, Reason: "invalid geometry", Err: err}
	}
	footprint, err := geos.FromWKT(wkt.MustEncode(g.Geometry))
	if err != nil {
		return nil, &MalformedRecordError{SceneID: scene.ID, Reason: "invalid geometry", Err: err}
	}
	return footprint, nil
}

type timedScene struct {
	scene    *planet.Scene
	acquired time.Time
}

// sortByAcquired orders scenes by ascending acquisition time. The sort is
// stable, so ties keep their input order and identical input produces
// identical output.
func sortByAcquired(scenes []*planet.Scene) ([]timedScene, error) {
	timed := make([]timedScene, 0, len(scenes))
	for _, scene := range scenes {
		acquired, err := scene.Acquired()
		if err != nil {
			return nil, &MalformedRecordError{SceneID: scene.ID, Reason: "unparseable acquired timestamp", Err: err}
		}
		timed = append(timed, timedScene{scene: scene, acquired: acquired})
	}
	sort.SliceStable(timed, func(i, j int) bool { return timed[i].acquired.Before(timed[j].acquired) })
	return timed, nil
}

// removeNearDuplicates walks adjacent pairs once, dropping the earlier
// scene when the gap to its successor is strictly under DuplicateWindow.
// In a run of 3+ close scenes only the last one survives. The final scene
// has no successor and is never dropped.
func removeNearDuplicates(timed []timedScene) []*planet.Scene {
	var kept []*planet.Scene
	for i, ts := range timed {
		if i+1 < len(timed) && timed[i+1].acquired.Sub(ts.acquired) < DuplicateWindow {
			continue
		}
		kept = append(kept, ts.scene)
	}
	return kept
}
