package aoef

import (
	"sort"

	"soundcore/pkg/domain"
)

// featureMap flattens named feature values into the map form documents use.
func featureMap(fs []domain.Feature) map[string]float64 {
	if len(fs) == 0 {
		return nil
	}
	m := make(map[string]float64, len(fs))
	for _, f := range fs {
		m[f.Name] = f.Value
	}
	return m
}

// featureList rebuilds feature values from a document map. JSON objects have
// no order, so the result is sorted by name to keep imports deterministic.
func featureList(m map[string]float64) []domain.Feature {
	if len(m) == 0 {
		return nil
	}
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	fs := make([]domain.Feature, 0, len(names))
	for _, name := range names {
		fs = append(fs, domain.Feature{Name: name, Value: m[name]})
	}
	return fs
}
