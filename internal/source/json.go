package source

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"gochart/internal/scale"
)

// ReadJSON reads records from a JSON array of objects, an object holding
// such an array under "data", or a GeoJSON Feature/FeatureCollection. Each
// feature becomes a record of its properties plus lon/lat taken from a Point
// geometry or the mean vertex of any other geometry.
func ReadJSON(r io.Reader) (*Dataset, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("json: %w", err)
	}
	var rows []any
	switch v := raw.(type) {
	case []any:
		rows = v
	case map[string]any:
		t, _ := v["type"].(string)
		switch {
		case t == "FeatureCollection":
			fs, _ := v["features"].([]any)
			for _, f := range fs {
				if fm, ok := f.(map[string]any); ok {
					rows = append(rows, feature(fm))
				}
			}
		case t == "Feature":
			rows = []any{feature(v)}
		case v["data"] != nil:
			rows, _ = v["data"].([]any)
		default:
			return nil, errors.New("json: expected an array of objects")
		}
	default:
		return nil, errors.New("json: expected an array of objects")
	}

	var records []Record
	for _, row := range rows {
		m, ok := row.(map[string]any)
		if !ok {
			continue
		}
		rec := Record{}
		for k, v := range m {
			rec[k] = typedJSON(v)
		}
		records = append(records, rec)
	}
	if len(records) == 0 {
		return nil, errors.New("json: no records found")
	}
	return &Dataset{Fields: fieldsOf(records), Records: records}, nil
}

// typedJSON keeps numbers and bools, turns date strings into times and
// flattens nested values to their JSON text.
func typedJSON(v any) any {
	switch t := v.(type) {
	case string:
		if tm, ok := scale.ParseTime(strings.TrimSpace(t)); ok {
			return tm
		}
		return t
	case float64, bool, nil, time.Time:
		return t
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprint(t)
		}
		return string(b)
	}
}

func feature(f map[string]any) map[string]any {
	out := map[string]any{}
	if props, ok := f["properties"].(map[string]any); ok {
		for k, v := range props {
			out[k] = v
		}
	}
	g, ok := f["geometry"].(map[string]any)
	if !ok {
		return out
	}
	var sumX, sumY float64
	n := 0
	parsePoint := func(v any) {
		if a, ok := v.([]any); ok && len(a) >= 2 {
			lon, lok := a[0].(float64)
			lat, aok := a[1].(float64)
			if lok && aok {
				sumX += lon
				sumY += lat
				n++
			}
		}
	}
	// coordinates nest one level deeper per geometry rank
	var walk func(v any, depth int)
	walk = func(v any, depth int) {
		if depth == 0 {
			parsePoint(v)
			return
		}
		arr, _ := v.([]any)
		for _, el := range arr {
			walk(el, depth-1)
		}
	}
	gt, _ := g["type"].(string)
	switch gt {
	case "Point":
		walk(g["coordinates"], 0)
	case "MultiPoint", "LineString":
		walk(g["coordinates"], 1)
	case "MultiLineString", "Polygon":
		walk(g["coordinates"], 2)
	case "MultiPolygon":
		walk(g["coordinates"], 3)
	}
	if gt != "" {
		out["geometry"] = gt
	}
	if n > 0 {
		out["lon"] = sumX / float64(n)
		out["lat"] = sumY / float64(n)
	}
	return out
}
