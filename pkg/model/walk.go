package model

// Walk visits n and every descendant depth-first, pre-order, calling visit
// for each node. Returning false from visit stops the walk. Walk's own
// return value reports whether the walk ran to completion.
func Walk[T any](n Node[T], visit func(Node[T]) bool) bool {
	if n == nil {
		return true
	}
	if !visit(n) {
		return false
	}
	if g, ok := n.(*Group[T]); ok {
		for _, child := range g.Children {
			if !Walk[T](child, visit) {
				return false
			}
		}
	}
	return true
}

// Contains reports whether the subtree rooted at n holds a node with the
// given id, n itself included.
func Contains[T any](n Node[T], id string) bool {
	found := false
	Walk[T](n, func(node Node[T]) bool {
		if node.NodeID() == id {
			found = true
			return false
		}
		return true
	})
	return found
}

// Count returns the number of nodes in the subtree rooted at n, n included.
func Count[T any](n Node[T]) int {
	total := 0
	Walk[T](n, func(Node[T]) bool {
		total++
		return true
	})
	return total
}

// Clone deep-copies the subtree rooted at n. Payloads are copied by value;
// callers with pointer-shaped payloads share those across copies.
func Clone[T any](n Node[T]) Node[T] {
	switch node := n.(type) {
	case *Condition[T]:
		dup := *node
		return &dup
	case *Group[T]:
		children := make([]Node[T], len(node.Children))
		for i, child := range node.Children {
			children[i] = Clone[T](child)
		}
		return &Group[T]{ID: node.ID, Operator: node.Operator, Children: children}
	default:
		return n
	}
}

// Equal reports structural equality of two subtrees: same shape, ids and
// operators, with payloads compared via eq. Pointer identity is ignored.
func Equal[T any](a, b Node[T], eq func(x, y T) bool) bool {
	switch an := a.(type) {
	case *Condition[T]:
		bn, ok := b.(*Condition[T])
		if !ok || an.ID != bn.ID {
			return false
		}
		return eq == nil || eq(an.Data, bn.Data)
	case *Group[T]:
		bn, ok := b.(*Group[T])
		if !ok || an.ID != bn.ID || an.Operator != bn.Operator || len(an.Children) != len(bn.Children) {
			return false
		}
		for i := range an.Children {
			if !Equal[T](an.Children[i], bn.Children[i], eq) {
				return false
			}
		}
		return true
	default:
		return a == nil && b == nil
	}
}
