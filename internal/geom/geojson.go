package geom

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
)

// LoadGeoJSON reads contours from a JSON file. Either GeoJSON or a bare
// contour dump ([[[x, y], ...], ...]) is accepted.
func LoadGeoJSON(path string) (ContourSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseGeoJSON(data)
}

// ParseGeoJSON converts GeoJSON geometry into contours. LineStrings and
// polygon rings become contours; Points become one-point contours.
// Supported: Point, MultiPoint, LineString, MultiLineString, Polygon,
// MultiPolygon, GeometryCollection, Feature, FeatureCollection.
// A document with no coordinates yields an empty set; callers report
// ErrNoGeometry when bounding it.
func ParseGeoJSON(data []byte) (ContourSet, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		return parseContourDump(trimmed)
	}
	var raw map[string]any
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		return nil, err
	}
	var cs ContourSet
	parsePoint := func(v any) (pt Point, ok bool) {
		if a, ok := v.([]any); ok && len(a) >= 2 {
			x, xok := a[0].(float64)
			y, yok := a[1].(float64)
			if xok && yok {
				return Point{X: x, Y: y}, true
			}
		}
		return Point{}, false
	}
	parseLine := func(v any) (c Contour, ok bool) {
		arr, ok := v.([]any)
		if !ok {
			return nil, false
		}
		for _, el := range arr {
			if pt, ok := parsePoint(el); ok {
				c = append(c, pt)
			}
		}
		return c, true
	}
	parseLines := func(v any) (lines ContourSet, ok bool) {
		arr, ok := v.([]any)
		if !ok {
			return nil, false
		}
		for _, el := range arr {
			if c, ok := parseLine(el); ok {
				lines = append(lines, c)
			}
		}
		return lines, true
	}
	var walkGeom func(g map[string]any)
	walkGeom = func(g map[string]any) {
		gt, _ := g["type"].(string)
		switch gt {
		case "Point":
			if pt, ok := parsePoint(g["coordinates"]); ok {
				cs = append(cs, Contour{pt})
			}
		case "MultiPoint":
			if pts, ok := parseLine(g["coordinates"]); ok {
				for _, p := range pts {
					cs = append(cs, Contour{p})
				}
			}
		case "LineString":
			if c, ok := parseLine(g["coordinates"]); ok {
				cs = append(cs, c)
			}
		case "MultiLineString", "Polygon":
			if lines, ok := parseLines(g["coordinates"]); ok {
				cs = append(cs, lines...)
			}
		case "MultiPolygon":
			if arr, ok := g["coordinates"].([]any); ok {
				for _, poly := range arr {
					if rings, ok := parseLines(poly); ok {
						cs = append(cs, rings...)
					}
				}
			}
		case "GeometryCollection":
			if gs, ok := g["geometries"].([]any); ok {
				for _, sub := range gs {
					if sm, ok := sub.(map[string]any); ok {
						walkGeom(sm)
					}
				}
			}
		}
	}
	t, _ := raw["type"].(string)
	switch t {
	case "":
		return nil, errors.New("invalid geojson: missing type")
	case "Feature":
		if g, ok := raw["geometry"].(map[string]any); ok {
			walkGeom(g)
		}
	case "FeatureCollection":
		if fs, ok := raw["features"].([]any); ok {
			for _, f := range fs {
				if fm, ok := f.(map[string]any); ok {
					if g, ok := fm["geometry"].(map[string]any); ok {
						walkGeom(g)
					}
				}
			}
		}
	default:
		walkGeom(raw)
	}
	if cs == nil {
		cs = ContourSet{}
	}
	return cs, nil
}

// parseContourDump reads [[[x, y], ...], ...]. An empty dump is valid and
// yields an empty set so callers can report ErrNoGeometry themselves.
func parseContourDump(data []byte) (ContourSet, error) {
	var raw [][][]float64
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	cs := make(ContourSet, 0, len(raw))
	for _, c := range raw {
		contour := make(Contour, 0, len(c))
		for _, p := range c {
			if len(p) < 2 {
				return nil, errors.New("contour dump: point needs two coordinates")
			}
			contour = append(contour, Point{X: p[0], Y: p[1]})
		}
		cs = append(cs, contour)
	}
	return cs, nil
}
