package facts

import "strings"

// Tree nests records by their dotted names, so "memory.swap.total" becomes
// tree["memory"]["swap"]["total"]. A name that would overwrite a leaf with a
// branch, or the reverse, is kept flat at the top level.
func Tree(records []ResolvedFact) map[string]any {
	root := make(map[string]any)
	for _, f := range records {
		if !insert(root, strings.Split(f.Name, "."), f.Value) {
			root[f.Name] = f.Value
		}
	}
	return root
}

func insert(node map[string]any, path []string, value any) bool {
	for _, part := range path[:len(path)-1] {
		next, exists := node[part]
		if !exists {
			child := make(map[string]any)
			node[part] = child
			node = child
			continue
		}
		child, ok := next.(map[string]any)
		if !ok {
			return false
		}
		node = child
	}

	leaf := path[len(path)-1]
	if existing, exists := node[leaf]; exists {
		if _, isBranch := existing.(map[string]any); isBranch {
			return false
		}
	}
	node[leaf] = value
	return true
}

// Flatten returns records keyed by name
func Flatten(records []ResolvedFact) map[string]any {
	out := make(map[string]any, len(records))
	for _, f := range records {
		out[f.Name] = f.Value
	}
	return out
}
