package planet

// ItemTypes enumerates the catalog item types this tool searches.
var ItemTypes = []string{
	"PSScene3Band",
	"PSScene4Band",
	"PSOrthoTile",
	"REScene",
	"REOrthoTile",
	"Sentinel2L1C",
	"Landsat8L1G",
	"Sentinel1",
	"SkySatScene",
}

// ValidItemType reports whether s is a known item type.
func ValidItemType(s string) bool {
	for _, t := range ItemTypes {
		if t == s {
			return true
		}
	}
	return false
}
