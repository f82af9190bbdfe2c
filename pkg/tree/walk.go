package tree

import "strings"

// Walk traverses the tree rooted at n in deterministic depth-first order,
// visiting each node before its children and children in canonical order.
// The traversal uses an explicit stack so container depth never grows the
// call stack.
func Walk(n *Node, visit func(*Node)) {
	if n == nil {
		return
	}
	stack := []*Node{n}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		visit(cur)

		// Push in reverse so the first child is visited first.
		for i := len(cur.children) - 1; i >= 0; i-- {
			stack = append(stack, cur.children[i])
		}
	}
}

// Find resolves an absolute path against the tree rooted at root.
func Find(root *Node, path string) (*Node, bool) {
	if root == nil {
		return nil, false
	}
	if path == "/" || path == "" {
		return root, true
	}
	cur := root
	for _, part := range strings.Split(strings.Trim(path, "/"), "/") {
		next, ok := cur.Child(part)
		if !ok {
			return nil, false
		}
		cur = next
	}
	return cur, true
}

// Count returns the number of nodes in the tree rooted at n.
func Count(n *Node) int {
	total := 0
	Walk(n, func(*Node) { total++ })
	return total
}

// PathLess orders absolute paths by their position in the canonical
// depth-first traversal: segment-wise lexicographic, parents before
// children. Plain string comparison is not equivalent because the
// separator can sort after characters that appear inside names.
func PathLess(a, b string) bool {
	as := splitPath(a)
	bs := splitPath(b)
	for i := 0; i < len(as) && i < len(bs); i++ {
		if as[i] != bs[i] {
			return as[i] < bs[i]
		}
	}
	return len(as) < len(bs)
}

func splitPath(p string) []string {
	p = strings.Trim(p, "/")
	if p == "" {
		return nil
	}
	return strings.Split(p, "/")
}
