package inventory

import "strings"

// Area is a region of the game world. Collectibles are scoped to the area
// they were found in.
type Area int

const (
	AreaNone Area = iota
	Village
	Caves
	Ocean
	Jungle
	Desert
	Factory
	Military
	Mountain
	MagiTech
)

var areaNames = [...]string{
	AreaNone: "None",
	Village:  "Village",
	Caves:    "Caves",
	Ocean:    "Ocean",
	Jungle:   "Jungle",
	Desert:   "Desert",
	Factory:  "Factory",
	Military: "Military",
	Mountain: "Mountain",
	MagiTech: "MagiTech",
}

func (a Area) String() string {
	if a < 0 || int(a) >= len(areaNames) {
		return "Area(?)"
	}
	return areaNames[a]
}

// Areas returns every real area, Village through MagiTech.
func Areas() []Area {
	out := make([]Area, 0, MagiTech)
	for a := Village; a <= MagiTech; a++ {
		out = append(out, a)
	}
	return out
}

// ParseArea matches an area name case-insensitively.
func ParseArea(s string) (Area, bool) {
	for i, name := range areaNames {
		if strings.EqualFold(name, s) {
			return Area(i), true
		}
	}
	return AreaNone, false
}
