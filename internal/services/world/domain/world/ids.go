package world

// NextID returns one past the largest id, or 1 when ids is empty.
func NextID(ids []int) int {
	next := 1
	for _, id := range ids {
		if id >= next {
			next = id + 1
		}
	}
	return next
}

// NextLocationID allocates over every node in the tree, not just siblings.
func NextLocationID(root *Location) int {
	var ids []int
	walk(root, func(node *Location) {
		ids = append(ids, node.ID)
	})
	return NextID(ids)
}

func walk(node *Location, visit func(*Location)) {
	if node == nil {
		return
	}
	visit(node)
	for _, child := range node.Children {
		walk(child, visit)
	}
}
