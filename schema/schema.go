// Package schema describes nested observation spaces: string-keyed mappings
// terminating in shape descriptors, with no concrete data attached. Key order
// is preserved from construction (or from the YAML document) because it fixes
// the canonical flattening order of every slot tree built from the schema.
package schema

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Schema is either a leaf shape descriptor or an ordered mapping of
// sub-schemas. Exactly one of the two roles is active.
type Schema struct {
	keys  []string
	kids  map[string]*Schema
	shape []int
	leaf  bool
}

// Shape creates a leaf schema with the given dimension sizes. Shape() with
// no dims describes a scalar.
func Shape(dims ...int) *Schema {
	s := make([]int, len(dims))
	copy(s, dims)

	return &Schema{shape: s, leaf: true}
}

// Space creates an ordered mapping schema from the given entries.
func Space(entries ...Entry) *Schema {
	s := &Schema{kids: make(map[string]*Schema, len(entries))}
	for _, e := range entries {
		s.Set(e.Key, e.Node)
	}

	return s
}

// Entry pairs a key with its sub-schema for ordered Space construction.
type Entry struct {
	Key  string
	Node *Schema
}

// E is shorthand for building a schema Entry.
func E(key string, node *Schema) Entry {
	return Entry{Key: key, Node: node}
}

// Set adds or replaces a sub-schema. New keys append to the key order.
func (s *Schema) Set(key string, node *Schema) *Schema {
	if s.leaf {
		panic("schema: Set on a leaf shape")
	}

	if _, exists := s.kids[key]; !exists {
		s.keys = append(s.keys, key)
	}

	s.kids[key] = node

	return s
}

// IsLeaf reports whether the schema is a terminal shape descriptor.
func (s *Schema) IsLeaf() bool {
	return s.leaf
}

// Dims returns the leaf's dimension sizes. Nil for mapping schemas.
func (s *Schema) Dims() []int {
	if !s.leaf {
		return nil
	}

	out := make([]int, len(s.shape))
	copy(out, s.shape)

	return out
}

// Keys returns the mapping keys in declared order. Nil for leaves.
func (s *Schema) Keys() []string {
	if len(s.keys) == 0 {
		return nil
	}

	out := make([]string, len(s.keys))
	copy(out, s.keys)

	return out
}

// Child returns the sub-schema for key.
func (s *Schema) Child(key string) (*Schema, bool) {
	c, ok := s.kids[key]
	return c, ok
}

// UnmarshalYAML implements custom YAML unmarshaling for Schema.
// A sequence of integers is a leaf shape; a mapping is a nested space.
// Decoding walks the yaml.Node tree directly so document key order survives.
func (s *Schema) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.SequenceNode:
		var dims []int

		err := node.Decode(&dims)
		if err != nil {
			return fmt.Errorf("shape descriptor: %w", err)
		}

		s.shape = dims
		s.leaf = true

		return nil

	case yaml.MappingNode:
		s.kids = make(map[string]*Schema, len(node.Content)/2)

		// yaml.Node mapping content alternates key, value.
		for i := 0; i+1 < len(node.Content); i += 2 {
			var key string
			if err := node.Content[i].Decode(&key); err != nil {
				return err
			}

			sub := &Schema{}
			if err := sub.UnmarshalYAML(node.Content[i+1]); err != nil {
				return fmt.Errorf("key %q: %w", key, err)
			}

			s.Set(key, sub)
		}

		return nil

	default:
		return errors.New("schema node must be a mapping or a shape sequence")
	}
}

// MarshalYAML implements custom YAML marshaling for Schema, emitting keys in
// declared order.
func (s *Schema) MarshalYAML() (any, error) {
	if s.leaf {
		if len(s.shape) == 0 {
			// A scalar leaf still emits an (empty) sequence, never null.
			return []int{}, nil
		}

		return s.shape, nil
	}

	node := &yaml.Node{Kind: yaml.MappingNode}

	for _, key := range s.keys {
		keyNode := &yaml.Node{Kind: yaml.ScalarNode, Value: key}

		valNode := &yaml.Node{}
		if err := valNode.Encode(s.kids[key]); err != nil {
			return nil, err
		}

		node.Content = append(node.Content, keyNode, valNode)
	}

	return node, nil
}
