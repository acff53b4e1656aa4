package geom

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// LoadCSV reads contour points from a CSV with x and y columns.
// An optional contour|id|path column splits rows into contours: a new
// contour starts whenever its value changes. Without it every row belongs
// to a single contour. A file with no data rows yields an empty set.
func LoadCSV(path string) (ContourSet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	r := csv.NewReader(f)
	r.TrimLeadingSpace = true
	recs, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return ContourSet{}, nil
	}
	idxX, idxY, idxID := -1, -1, -1
	for i, h := range recs[0] {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case "x", "px", "col":
			if idxX == -1 {
				idxX = i
			}
		case "y", "py", "row":
			if idxY == -1 {
				idxY = i
			}
		case "contour", "id", "path":
			if idxID == -1 {
				idxID = i
			}
		}
	}
	if idxX == -1 || idxY == -1 {
		return nil, errors.New("csv: x/y columns not found")
	}
	var cs ContourSet
	var cur Contour
	lastID := ""
	for i, row := range recs[1:] {
		if idxX >= len(row) || idxY >= len(row) {
			continue
		}
		x, err1 := strconv.ParseFloat(strings.TrimSpace(row[idxX]), 64)
		y, err2 := strconv.ParseFloat(strings.TrimSpace(row[idxY]), 64)
		if err1 != nil || err2 != nil {
			continue
		}
		if !finite(x) || !finite(y) {
			return nil, fmt.Errorf("csv: non-finite coordinate on row %d", i+2)
		}
		if idxID >= 0 && idxID < len(row) {
			id := strings.TrimSpace(row[idxID])
			if id != lastID && len(cur) > 0 {
				cs = append(cs, cur)
				cur = nil
			}
			lastID = id
		}
		cur = append(cur, Point{X: x, Y: y})
	}
	if len(cur) > 0 {
		cs = append(cs, cur)
	}
	if cs == nil {
		cs = ContourSet{}
	}
	return cs, nil
}
