package geom

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ParseWKT reads pixel-space contours from a subset of WKT.
// Supported: POINT, MULTIPOINT, LINESTRING, MULTILINESTRING, POLYGON.
// Each linestring or polygon ring becomes one contour; each point becomes a
// one-point contour, which widens the bounds but is never drawn.
// "<TYPE> EMPTY" yields an empty set. Non-finite coordinates are an error.
func ParseWKT(wkt string) (ContourSet, error) {
	s := strings.TrimSpace(wkt)
	if s == "" {
		return nil, errors.New("empty wkt")
	}
	up := strings.ToUpper(s)
	if f := strings.Fields(up); len(f) == 2 && f[1] == "EMPTY" {
		switch f[0] {
		case "POINT", "MULTIPOINT", "LINESTRING", "MULTILINESTRING", "POLYGON":
			return ContourSet{}, nil
		}
		return nil, errors.New("unsupported wkt type")
	}
	body := func(lo, hi string) (string, bool) {
		i := strings.Index(s, lo)
		j := strings.LastIndex(s, hi)
		if i < 0 || j <= i {
			return "", false
		}
		return s[i+len(lo) : j], true
	}
	var cs ContourSet
	// order matters: MULTI* prefixes must be tested before their singular forms
	switch {
	case strings.HasPrefix(up, "MULTIPOINT"):
		b, ok := body("(", ")")
		if !ok {
			return nil, errors.New("wkt multipoint: invalid")
		}
		b = strings.NewReplacer("(", "", ")", "").Replace(b)
		pts, err := parseWKTTuples(b)
		if err != nil {
			return nil, err
		}
		for _, p := range pts {
			cs = append(cs, Contour{p})
		}
	case strings.HasPrefix(up, "POINT"):
		b, ok := body("(", ")")
		if !ok {
			return nil, errors.New("wkt point: invalid")
		}
		pts, err := parseWKTTuples(b)
		if err != nil {
			return nil, err
		}
		for _, p := range pts {
			cs = append(cs, Contour{p})
		}
	case strings.HasPrefix(up, "MULTILINESTRING"):
		b, ok := body("((", "))")
		if !ok {
			return nil, errors.New("wkt multilinestring: invalid")
		}
		for _, part := range splitWKTRings(b) {
			c, err := parseWKTTuples(part)
			if err != nil {
				return nil, err
			}
			cs = append(cs, c)
		}
	case strings.HasPrefix(up, "LINESTRING"):
		b, ok := body("(", ")")
		if !ok {
			return nil, errors.New("wkt linestring: invalid")
		}
		c, err := parseWKTTuples(b)
		if err != nil {
			return nil, err
		}
		cs = append(cs, c)
	case strings.HasPrefix(up, "POLYGON"):
		b, ok := body("((", "))")
		if !ok {
			return nil, errors.New("wkt polygon: invalid")
		}
		for _, part := range splitWKTRings(b) {
			c, err := parseWKTTuples(part)
			if err != nil {
				return nil, err
			}
			cs = append(cs, c)
		}
	default:
		return nil, errors.New("unsupported wkt type")
	}
	if PointCount(cs) == 0 {
		return nil, errors.New("wkt: no coordinates parsed")
	}
	return cs, nil
}

// splitWKTRings splits "a b, c d), (e f, g h" into its parenthesised parts.
func splitWKTRings(s string) []string {
	// normalize spaces around ring separators
	norm := strings.ReplaceAll(s, "), (", "),(")
	norm = strings.ReplaceAll(norm, ") , (", "),(")
	return strings.Split(norm, "),(")
}

// parseWKTTuples parses "x y, x y, ..." and skips malformed tuples.
func parseWKTTuples(block string) (Contour, error) {
	var out Contour
	for _, tup := range strings.Split(block, ",") {
		parts := strings.Fields(strings.TrimSpace(tup))
		if len(parts) < 2 {
			continue
		}
		x, err1 := strconv.ParseFloat(parts[0], 64)
		y, err2 := strconv.ParseFloat(parts[1], 64)
		if err1 != nil || err2 != nil {
			continue
		}
		if !finite(x) || !finite(y) {
			return nil, fmt.Errorf("wkt: non-finite coordinate %q", strings.TrimSpace(tup))
		}
		out = append(out, Point{X: x, Y: y})
	}
	return out, nil
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
