// Package ldproxy renders a model.TableModel into the three configuration
// documents the ldproxy server consumes: the service definition, the SQL
// feature provider, and the tile provider. The document key names are a
// fixed contract with the server and must not change.
package ldproxy

import (
	"go.yaml.in/yaml/v3"
)

// entityStorageVersion is the entity schema version of the ldproxy store
// layout the documents target.
const entityStorageVersion = 2

// Mapping is a string-keyed YAML mapping that marshals in insertion order.
// The encoder would otherwise sort Go map keys, and the documents must list
// feature types and tilesets in table-model order so repeated runs over an
// unchanged schema emit identical files.
type Mapping[V any] struct {
	keys   []string
	values map[string]V
}

// NewMapping returns an empty ordered mapping.
func NewMapping[V any]() *Mapping[V] {
	return &Mapping[V]{values: make(map[string]V)}
}

// Set inserts or replaces the value for key. First insertion fixes the
// key's position.
func (m *Mapping[V]) Set(key string, value V) {
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

// Get returns the value stored under key.
func (m *Mapping[V]) Get(key string) (V, bool) {
	v, ok := m.values[key]
	return v, ok
}

// Len returns the number of entries.
func (m *Mapping[V]) Len() int {
	return len(m.keys)
}

// Keys returns the keys in insertion order. The returned slice is shared;
// callers must not modify it.
func (m *Mapping[V]) Keys() []string {
	return m.keys
}

// MarshalYAML emits the mapping as a YAML mapping node in insertion order.
func (m *Mapping[V]) MarshalYAML() (any, error) {
	root := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, key := range m.keys {
		keyNode := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key}
		valueNode := &yaml.Node{}
		if err := valueNode.Encode(m.values[key]); err != nil {
			return nil, err
		}
		root.Content = append(root.Content, keyNode, valueNode)
	}
	return root, nil
}

// CrsRef references a coordinate reference system by EPSG code.
type CrsRef struct {
	Code           int    `yaml:"code"`
	ForceAxisOrder string `yaml:"forceAxisOrder"`
}

// AxisOrder is the coordinate axis ordering applied to every geometry in a
// run. It is a single global policy — downstream consumers assume
// schema-wide consistency.
type AxisOrder string

const (
	AxisOrderLonLat AxisOrder = "LON_LAT"
	AxisOrderLatLon AxisOrder = "LAT_LON"
)
