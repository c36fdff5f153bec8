package geo

import "math"

// Planar approximations are accurate enough for label placement at
// province scale. Longitudes are scaled by cos(latitude) so east-west
// distances are not overweighted at Spanish latitudes.

// ringArea returns the approximate area of a ring in scaled square degrees.
func ringArea(r ring) float64 {
	if len(r) < 3 {
		return 0
	}
	latScale := math.Cos(meanLat(r) * math.Pi / 180)
	var sum float64
	for i := range r {
		j := (i + 1) % len(r)
		xi, yi := r[i][0]*latScale, r[i][1]
		xj, yj := r[j][0]*latScale, r[j][1]
		sum += xi*yj - xj*yi
	}
	return math.Abs(sum) / 2
}

// ringsArea sums the areas of all rings.
func ringsArea(rings []ring) float64 {
	var total float64
	for _, r := range rings {
		total += ringArea(r)
	}
	return total
}

// ringCentroid returns the area centroid of a single ring.
func ringCentroid(r ring) Point {
	if len(r) < 3 {
		return Point{}
	}
	var cx, cy, a float64
	for i := range r {
		j := (i + 1) % len(r)
		cross := r[i][0]*r[j][1] - r[j][0]*r[i][1]
		a += cross
		cx += (r[i][0] + r[j][0]) * cross
		cy += (r[i][1] + r[j][1]) * cross
	}
	if a == 0 {
		// Degenerate ring, fall back to the vertex mean.
		var sx, sy float64
		for _, p := range r {
			sx += p[0]
			sy += p[1]
		}
		n := float64(len(r))
		return Point{Lon: sx / n, Lat: sy / n}
	}
	return Point{Lon: cx / (3 * a), Lat: cy / (3 * a)}
}

// ringsCentroid returns the area-weighted centroid over multiple rings, so
// multi-part provinces like the archipelagos land between their islands.
func ringsCentroid(rings []ring) Point {
	var sumLon, sumLat, sumW float64
	for _, r := range rings {
		w := ringArea(r)
		c := ringCentroid(r)
		sumLon += c.Lon * w
		sumLat += c.Lat * w
		sumW += w
	}
	if sumW == 0 {
		if len(rings) > 0 {
			return ringCentroid(rings[0])
		}
		return Point{}
	}
	return Point{Lon: sumLon / sumW, Lat: sumLat / sumW}
}

func ringsBBox(rings []ring) BBox {
	b := BBox{math.MaxFloat64, math.MaxFloat64, -math.MaxFloat64, -math.MaxFloat64}
	for _, r := range rings {
		for _, p := range r {
			b[0] = math.Min(b[0], p[0])
			b[1] = math.Min(b[1], p[1])
			b[2] = math.Max(b[2], p[0])
			b[3] = math.Max(b[3], p[1])
		}
	}
	return b
}

func mergeBBox(a, b BBox) BBox {
	return BBox{
		math.Min(a[0], b[0]),
		math.Min(a[1], b[1]),
		math.Max(a[2], b[2]),
		math.Max(a[3], b[3]),
	}
}

func meanLat(r ring) float64 {
	if len(r) == 0 {
		return 0
	}
	var sum float64
	for _, p := range r {
		sum += p[1]
	}
	return sum / float64(len(r))
}
