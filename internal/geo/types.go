// Package geo loads the Spanish province boundaries and derives the
// centroids used to position map labels and markers.
package geo

// Point is a WGS84 coordinate pair.
type Point struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// BBox is a [minLon, minLat, maxLon, maxLat] bounding box.
type BBox [4]float64

// Province holds one province boundary with its derived geometry metadata.
type Province struct {
	Name      string `json:"name"`
	Community string `json:"community"`
	Centroid  Point  `json:"centroid"`
	BBox      BBox   `json:"bbox"`

	rings []ring // valid outer rings, holes excluded
}

// Community aggregates the provinces of one autonomous community.
type Community struct {
	Name      string   `json:"name"`
	Provinces []string `json:"provinces"`
	Centroid  Point    `json:"centroid"`
	BBox      BBox     `json:"bbox"`
}

// ring is a closed sequence of lon/lat vertices.
type ring [][2]float64
