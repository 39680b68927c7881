package world

// PathSegment is one hop of a root-to-node path.
type PathSegment struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// FlatLocation annotates a tree node with its position in the tree.
type FlatLocation struct {
	Location *Location
	Depth    int
	// ParentID is nil for the root.
	ParentID *int
	Path     []PathSegment
}

// FindByID returns the first node in pre-order whose id matches.
func FindByID(root *Location, id int) *Location {
	if root == nil {
		return nil
	}
	if root.ID == id {
		return root
	}
	for _, child := range root.Children {
		if found := FindByID(child, id); found != nil {
			return found
		}
	}
	return nil
}

// FindParent returns the node holding id as a direct child. Each level checks
// its own children before descending. The root has no parent.
func FindParent(root *Location, id int) *Location {
	if root == nil {
		return nil
	}
	for _, child := range root.Children {
		if child.ID == id {
			return root
		}
	}
	for _, child := range root.Children {
		if found := FindParent(child, id); found != nil {
			return found
		}
	}
	return nil
}

// PathTo returns the nodes from root to id inclusive, or nil when id is unknown.
func PathTo(root *Location, id int) []*Location {
	current := FindByID(root, id)
	if current == nil {
		return nil
	}
	var reversed []*Location
	for current != nil && current != root {
		reversed = append(reversed, current)
		current = FindParent(root, current.ID)
	}
	reversed = append(reversed, root)

	path := make([]*Location, len(reversed))
	for i, node := range reversed {
		path[len(reversed)-1-i] = node
	}
	return path
}

// Segments reduces a node path to id/name pairs.
func Segments(path []*Location) []PathSegment {
	out := make([]PathSegment, len(path))
	for i, node := range path {
		out[i] = PathSegment{ID: node.ID, Name: node.Name}
	}
	return out
}

// Flatten lists every node in pre-order with depth, parent and path.
func Flatten(root *Location) []FlatLocation {
	if root == nil {
		return nil
	}
	var out []FlatLocation
	var visit func(node *Location, depth int, parentID *int, prefix []PathSegment)
	visit = func(node *Location, depth int, parentID *int, prefix []PathSegment) {
		path := make([]PathSegment, len(prefix)+1)
		copy(path, prefix)
		path[len(prefix)] = PathSegment{ID: node.ID, Name: node.Name}

		out = append(out, FlatLocation{
			Location: node,
			Depth:    depth,
			ParentID: parentID,
			Path:     path,
		})
		id := node.ID
		for _, child := range node.Children {
			visit(child, depth+1, &id, path)
		}
	}
	visit(root, 0, nil, nil)
	return out
}
