// Package codec serializes condition trees to and from JSON. The engine in
// pkg/tree is persistence-agnostic; this codec exists for the boundaries
// around it — exporting a finished tree, test fixtures, clipboard yanks.
//
// Wire shape, one object per node:
//
//	{"id": "...", "kind": "condition", "data": {...}}
//	{"id": "...", "kind": "group", "operator": "AND", "children": [...]}
package codec

import (
	"fmt"

	json "github.com/goccy/go-json"

	"github.com/vanderheijden86/condtree/pkg/model"
)

const (
	kindCondition = "condition"
	kindGroup     = "group"
)

// wireNode is the JSON shape of one node. Payloads stay raw until the
// caller's type parameter decodes them.
type wireNode struct {
	ID       string          `json:"id"`
	Kind     string          `json:"kind"`
	Data     json.RawMessage `json:"data,omitempty"`
	Operator model.Operator  `json:"operator,omitempty"`
	Children []wireNode      `json:"children,omitempty"`
}

// Marshal encodes a tree as compact JSON.
func Marshal[T any](root *model.Group[T]) ([]byte, error) {
	w, err := toWire[T](root)
	if err != nil {
		return nil, err
	}
	return json.Marshal(w)
}

// MarshalIndent encodes a tree as indented JSON, for files and clipboards.
func MarshalIndent[T any](root *model.Group[T]) ([]byte, error) {
	w, err := toWire[T](root)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(w, "", "  ")
}

// Unmarshal decodes a tree. The root must be a group; unknown kinds and
// operators are errors rather than silently skipped nodes.
func Unmarshal[T any](data []byte) (*model.Group[T], error) {
	var w wireNode
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("parsing tree: %w", err)
	}
	if w.Kind != kindGroup {
		return nil, fmt.Errorf("root node %q: kind %q, want %q", w.ID, w.Kind, kindGroup)
	}
	node, err := fromWire[T](w)
	if err != nil {
		return nil, err
	}
	return node.(*model.Group[T]), nil
}

func toWire[T any](n model.Node[T]) (wireNode, error) {
	switch node := n.(type) {
	case *model.Condition[T]:
		data, err := json.Marshal(node.Data)
		if err != nil {
			return wireNode{}, fmt.Errorf("encoding payload of %q: %w", node.ID, err)
		}
		return wireNode{ID: node.ID, Kind: kindCondition, Data: data}, nil
	case *model.Group[T]:
		children := make([]wireNode, len(node.Children))
		for i, child := range node.Children {
			w, err := toWire[T](child)
			if err != nil {
				return wireNode{}, err
			}
			children[i] = w
		}
		return wireNode{ID: node.ID, Kind: kindGroup, Operator: node.Operator, Children: children}, nil
	default:
		return wireNode{}, fmt.Errorf("encoding: unknown node type %T", n)
	}
}

func fromWire[T any](w wireNode) (model.Node[T], error) {
	if w.ID == "" {
		return nil, fmt.Errorf("node without id")
	}
	switch w.Kind {
	case kindCondition:
		var data T
		if len(w.Data) > 0 {
			if err := json.Unmarshal(w.Data, &data); err != nil {
				return nil, fmt.Errorf("decoding payload of %q: %w", w.ID, err)
			}
		}
		return &model.Condition[T]{ID: w.ID, Data: data}, nil
	case kindGroup:
		if !w.Operator.Valid() {
			return nil, fmt.Errorf("group %q: unknown operator %q", w.ID, w.Operator)
		}
		children := make([]model.Node[T], len(w.Children))
		for i, child := range w.Children {
			node, err := fromWire[T](child)
			if err != nil {
				return nil, err
			}
			children[i] = node
		}
		return &model.Group[T]{ID: w.ID, Operator: w.Operator, Children: children}, nil
	default:
		return nil, fmt.Errorf("node %q: unknown kind %q", w.ID, w.Kind)
	}
}
