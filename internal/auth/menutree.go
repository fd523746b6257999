package auth

import (
	"sort"

	"github.com/anighost1/pp-be/internal/db/models"
)

// SortDirection orders menus by their order field.
type SortDirection string

const (
	// SortAsc puts the lowest order first.
	SortAsc SortDirection = "asc"
	// SortDesc puts the highest order first.
	SortDesc SortDirection = "desc"
)

// MenuRecord is a flat menu entry.
type MenuRecord struct {
	ID       uint   `json:"id"`
	Label    string `json:"label"`
	Path     string `json:"path"`
	ParentID *uint  `json:"parentId"`
	Order    int    `json:"order"`
	Active   bool   `json:"active"`
}

// MenuNode is a menu entry with its children.
type MenuNode struct {
	MenuRecord
	Children []*MenuNode `json:"children"`
}

// RecordFromModel converts a stored menu to a flat record.
func RecordFromModel(m models.Menu) MenuRecord {
	return MenuRecord{
		ID:       m.ID,
		Label:    m.Label,
		Path:     m.Path,
		ParentID: m.ParentID,
		Order:    m.Order,
		Active:   m.Active,
	}
}

// SortMenus returns a copy of menus stably sorted by order in the given
// direction. Any direction other than SortAsc sorts descending.
func SortMenus(menus []MenuRecord, dir SortDirection) []MenuRecord {
	out := make([]MenuRecord, len(menus))
	copy(out, menus)

	sort.SliceStable(out, func(i, j int) bool {
		if dir == SortAsc {
			return out[i].Order < out[j].Order
		}
		return out[i].Order > out[j].Order
	})

	return out
}

// BuildMenuTree links flat records into a forest. Sibling and root order
// follow the input order; callers sort beforehand.
//
// A record whose parent is absent, or is the record itself, becomes a root.
// For duplicate ids the first record wins. Records on a parent cycle, and
// their descendants, are not reachable from any root; each cycle is cut by
// promoting one of its records to root, so no record is lost.
func BuildMenuTree(menus []MenuRecord) []*MenuNode {
	byID := make(map[uint]*MenuNode, len(menus))
	nodes := make([]*MenuNode, 0, len(menus))

	for _, m := range menus {
		if _, dup := byID[m.ID]; dup {
			continue
		}
		n := &MenuNode{MenuRecord: m, Children: []*MenuNode{}}
		byID[m.ID] = n
		nodes = append(nodes, n)
	}

	roots := make([]*MenuNode, 0)
	parents := make(map[uint]*MenuNode, len(nodes))

	for _, n := range nodes {
		if n.ParentID != nil && *n.ParentID != n.ID {
			if p, ok := byID[*n.ParentID]; ok {
				p.Children = append(p.Children, n)
				parents[n.ID] = p
				continue
			}
		}
		roots = append(roots, n)
	}

	if len(roots)+countReachable(roots) == len(nodes) {
		return roots
	}

	seen := make(map[uint]struct{}, len(nodes))
	markSubtrees(roots, seen)

	for _, n := range nodes {
		if _, ok := seen[n.ID]; ok {
			continue
		}
		c := cycleEntry(n, parents)
		p := parents[c.ID]
		p.Children = removeChild(p.Children, c)
		delete(parents, c.ID)
		roots = append(roots, c)
		markSubtrees([]*MenuNode{c}, seen)
	}

	return roots
}

// FlattenMenuTree lists the forest in pre-order.
func FlattenMenuTree(roots []*MenuNode) []MenuRecord {
	out := make([]MenuRecord, 0, len(roots))

	stack := make([]*MenuNode, 0, len(roots))
	for i := len(roots) - 1; i >= 0; i-- {
		stack = append(stack, roots[i])
	}

	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		out = append(out, n.MenuRecord)

		for i := len(n.Children) - 1; i >= 0; i-- {
			stack = append(stack, n.Children[i])
		}
	}

	return out
}

// countReachable counts the descendants of roots.
func countReachable(roots []*MenuNode) int {
	count := 0
	queue := append([]*MenuNode(nil), roots...)

	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		count += len(n.Children)
		queue = append(queue, n.Children...)
	}

	return count
}

// cycleEntry walks up from an unreachable node until a node repeats and
// returns it. Every ancestor of an unreachable node has a parent.
func cycleEntry(n *MenuNode, parents map[uint]*MenuNode) *MenuNode {
	visited := make(map[uint]struct{})
	for {
		if _, ok := visited[n.ID]; ok {
			return n
		}
		visited[n.ID] = struct{}{}
		n = parents[n.ID]
	}
}

func markSubtrees(roots []*MenuNode, seen map[uint]struct{}) {
	queue := append([]*MenuNode(nil), roots...)

	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		if _, ok := seen[n.ID]; ok {
			continue
		}
		seen[n.ID] = struct{}{}
		queue = append(queue, n.Children...)
	}
}

func removeChild(children []*MenuNode, child *MenuNode) []*MenuNode {
	for i, c := range children {
		if c == child {
			return append(children[:i], children[i+1:]...)
		}
	}

	return children
}
