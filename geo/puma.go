// Package geo joins estimate tables onto PUMA boundary files for
// choropleth rendering. Styling and drawing are the mapping tool's job;
// this package only attaches the numbers.
package geo

import (
	"fmt"
	"os"
	"strconv"

	"github.com/paulmach/orb/geojson"

	"github.com/urbandatalab/svy"
)

// ReadBoundaries loads a GeoJSON FeatureCollection of PUMA polygons.
func ReadBoundaries(fileName string) (*geojson.FeatureCollection, error) {
	raw, e := os.ReadFile(fileName)
	if e != nil {
		return nil, e
	}

	fc, e := geojson.UnmarshalFeatureCollection(raw)
	if e != nil {
		return nil, fmt.Errorf("bad boundary file %s: %w", fileName, e)
	}

	return fc, nil
}

// Attach joins a one-key estimate table onto the features whose property
// propName matches the table key, writing est/lo/hi and the reliability
// class into each feature's properties. A feature with no matching table
// row gets only the insufficient-data class; the join never aborts on an
// unmatched key.
func Attach(fc *geojson.FeatureCollection, t *svy.Table, c *svy.Classifier, propName string) error {
	if len(t.KeyNames()) != 1 {
		return fmt.Errorf("choropleth join wants a one-key table, got %d keys", len(t.KeyNames()))
	}

	byKey := make(map[string]svy.Estimate, t.RowCount())
	for _, r := range t.Rows() {
		byKey[r.Keys[0]] = r.Est
	}

	for _, f := range fc.Features {
		key := propString(f.Properties[propName])

		est, ok := byKey[key]
		if !ok || !est.Known {
			f.Properties["class"] = svy.InsufficientData
			continue
		}

		f.Properties["est"] = est.Point
		f.Properties["lo"] = est.Lo
		f.Properties["hi"] = est.Hi
		f.Properties["class"] = c.Classify(est)
	}

	return nil
}

// Write saves the joined collection back out as GeoJSON.
func Write(fc *geojson.FeatureCollection, fileName string) error {
	raw, e := fc.MarshalJSON()
	if e != nil {
		return e
	}

	return os.WriteFile(fileName, raw, 0o644)
}

// propString renders a GeoJSON property value the way table keys are
// written: boundary files carry PUMA codes as strings (often zero-padded)
// or numbers depending on the publisher, so numeric-looking strings are
// normalized through an integer.
func propString(v any) string {
	switch x := v.(type) {
	case string:
		if n, e := strconv.Atoi(x); e == nil {
			return strconv.Itoa(n)
		}

		return x
	case float64:
		return strconv.Itoa(int(x))
	case int:
		return strconv.Itoa(x)
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", x)
	}
}
