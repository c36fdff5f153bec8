package geo

import (
	"encoding/json"
	"math"
	"os"
	"sort"

	"github.com/yboleas/incendio-go/internal/errors"
	"github.com/yboleas/incendio-go/internal/logging"
)

// Property keys of the province boundary file.
const (
	propProvinceName = "Texto_Alt"
	propCommunity    = "CCAA"
)

// minRingPoints is the smallest closed ring GeoJSON allows.
const minRingPoints = 4

type featureCollection struct {
	Type     string    `json:"type"`
	Features []feature `json:"features"`
}

type feature struct {
	Type       string            `json:"type"`
	Properties map[string]string `json:"properties"`
	Geometry   *geometry         `json:"geometry"`
}

type geometry struct {
	Type        string          `json:"type"`
	Coordinates json.RawMessage `json:"coordinates"`
}

// Dataset holds the parsed province boundaries plus the raw document for
// serving to map clients unchanged.
type Dataset struct {
	provinces   []Province
	communities []Community
	raw         []byte
}

// Load reads and parses the province GeoJSON at path.
func Load(path string) (*Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New(err).
			Component("geo").
			Category(errors.CategoryFileIO).
			FileContext(path, 0).
			Build()
	}
	ds, err := Parse(data)
	if err != nil {
		return nil, errors.New(err).
			Component("geo").
			Category(errors.CategoryFileParsing).
			FileContext(path, int64(len(data))).
			Build()
	}
	logging.ForService("geo").Info("Province boundaries loaded",
		"path", path,
		"provinces", len(ds.provinces),
		"communities", len(ds.communities))
	return ds, nil
}

// Parse decodes a FeatureCollection of province polygons. Features without
// usable geometry are dropped with a warning rather than failing the load.
func Parse(data []byte) (*Dataset, error) {
	var fc featureCollection
	if err := json.Unmarshal(data, &fc); err != nil {
		return nil, errors.Newf("decoding GeoJSON: %v", err).
			Component("geo").
			Category(errors.CategoryFileParsing).
			Build()
	}
	if fc.Type != "FeatureCollection" {
		return nil, errors.Newf("unexpected GeoJSON root type %q", fc.Type).
			Component("geo").
			Category(errors.CategoryFileParsing).
			Build()
	}

	ds := &Dataset{raw: data}
	log := logging.ForService("geo")
	for i := range fc.Features {
		p, err := parseProvince(&fc.Features[i])
		if err != nil {
			log.Warn("Skipping province feature", "index", i, "error", err)
			continue
		}
		ds.provinces = append(ds.provinces, p)
	}
	if len(ds.provinces) == 0 {
		return nil, errors.Newf("no usable province features in GeoJSON").
			Component("geo").
			Category(errors.CategoryFileParsing).
			Build()
	}

	ds.communities = groupCommunities(ds.provinces)
	return ds, nil
}

func parseProvince(f *feature) (Province, error) {
	name := f.Properties[propProvinceName]
	if name == "" {
		return Province{}, errors.Newf("feature has no %s property", propProvinceName).
			Component("geo").
			Category(errors.CategoryFileParsing).
			Build()
	}
	if f.Geometry == nil {
		return Province{}, errors.Newf("province %q has no geometry", name).
			Component("geo").
			Category(errors.CategoryFileParsing).
			Build()
	}

	rings, err := parseRings(f.Geometry)
	if err != nil {
		return Province{}, err
	}
	if len(rings) == 0 {
		return Province{}, errors.Newf("province %q has no valid rings", name).
			Component("geo").
			Category(errors.CategoryGeo).
			Build()
	}

	p := Province{
		Name:      name,
		Community: f.Properties[propCommunity],
		rings:     rings,
	}
	p.Centroid = ringsCentroid(rings)
	p.BBox = ringsBBox(rings)
	return p, nil
}

// parseRings extracts the outer rings of a Polygon or MultiPolygon.
// Interior rings carry no weight for label placement and are discarded,
// as are degenerate rings below the GeoJSON minimum of four points.
func parseRings(g *geometry) ([]ring, error) {
	var polygons [][][][]float64
	switch g.Type {
	case "Polygon":
		var poly [][][]float64
		if err := json.Unmarshal(g.Coordinates, &poly); err != nil {
			return nil, invalidCoordinates(g.Type, err)
		}
		polygons = append(polygons, poly)
	case "MultiPolygon":
		if err := json.Unmarshal(g.Coordinates, &polygons); err != nil {
			return nil, invalidCoordinates(g.Type, err)
		}
	default:
		return nil, errors.Newf("unsupported geometry type %q", g.Type).
			Component("geo").
			Category(errors.CategoryGeo).
			Build()
	}

	var rings []ring
	for _, poly := range polygons {
		if len(poly) == 0 {
			continue
		}
		outer := poly[0]
		if len(outer) < minRingPoints {
			continue
		}
		r := make(ring, 0, len(outer))
		for _, pos := range outer {
			if len(pos) < 2 {
				return nil, errors.Newf("position with fewer than two coordinates").
					Component("geo").
					Category(errors.CategoryGeo).
					Build()
			}
			r = append(r, [2]float64{pos[0], pos[1]})
		}
		rings = append(rings, r)
	}
	return rings, nil
}

func invalidCoordinates(geomType string, err error) error {
	return errors.Newf("decoding %s coordinates: %v", geomType, err).
		Component("geo").
		Category(errors.CategoryFileParsing).
		Build()
}

// groupCommunities aggregates provinces by their autonomous community,
// weighting community centroids by province area.
func groupCommunities(provinces []Province) []Community {
	byName := make(map[string]*Community)
	weights := make(map[string]float64)
	sums := make(map[string][2]float64)

	for i := range provinces {
		p := &provinces[i]
		if p.Community == "" {
			continue
		}
		c, ok := byName[p.Community]
		if !ok {
			c = &Community{
				Name: p.Community,
				BBox: BBox{math.MaxFloat64, math.MaxFloat64, -math.MaxFloat64, -math.MaxFloat64},
			}
			byName[p.Community] = c
		}
		c.Provinces = append(c.Provinces, p.Name)
		c.BBox = mergeBBox(c.BBox, p.BBox)

		w := ringsArea(p.rings)
		weights[p.Community] += w
		s := sums[p.Community]
		s[0] += p.Centroid.Lon * w
		s[1] += p.Centroid.Lat * w
		sums[p.Community] = s
	}

	names := make([]string, 0, len(byName))
	for name := range byName {
		names = append(names, name)
	}
	sort.Strings(names)

	communities := make([]Community, 0, len(names))
	for _, name := range names {
		c := byName[name]
		if w := weights[name]; w > 0 {
			c.Centroid = Point{Lon: sums[name][0] / w, Lat: sums[name][1] / w}
		}
		sort.Strings(c.Provinces)
		communities = append(communities, *c)
	}
	return communities
}

// Raw returns the original GeoJSON document.
func (d *Dataset) Raw() []byte { return d.raw }

// Provinces returns the parsed provinces in file order.
func (d *Dataset) Provinces() []Province { return d.provinces }

// Communities returns the aggregated communities, alphabetically ordered.
func (d *Dataset) Communities() []Community { return d.communities }

// Community looks up one community by name.
func (d *Dataset) Community(name string) (Community, bool) {
	for i := range d.communities {
		if d.communities[i].Name == name {
			return d.communities[i], true
		}
	}
	return Community{}, false
}

// Province looks up one province by name.
func (d *Dataset) Province(name string) (Province, bool) {
	for i := range d.provinces {
		if d.provinces[i].Name == name {
			return d.provinces[i], true
		}
	}
	return Province{}, false
}
