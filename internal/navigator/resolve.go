package navigator

import (
	"github.com/diewo77/gmao/internal/apperr"
)

// Resolve walks segments from root, matching each against a child slug or id.
// It returns the selected node and the trail from root to it (both included).
func Resolve(root *ClientNode, segments []string) (Node, []Node, error) {
	var cur Node = root
	trail := []Node{root}
	for _, seg := range segments {
		if seg == "" {
			continue
		}
		next := child(cur, seg)
		if next == nil {
			return nil, trail, apperr.NotFound("node", seg)
		}
		cur = next
		trail = append(trail, cur)
	}
	return cur, trail, nil
}

func child(n Node, seg string) Node {
	for _, c := range n.Children() {
		if c.Slug() == seg {
			return c
		}
	}
	for _, c := range n.Children() {
		if c.ID() == seg {
			return c
		}
	}
	return nil
}

// Path returns the slug segments leading to the last node of trail, root excluded.
func Path(trail []Node) []string {
	if len(trail) <= 1 {
		return []string{}
	}
	out := make([]string, 0, len(trail)-1)
	for _, n := range trail[1:] {
		out = append(out, n.Slug())
	}
	return out
}

// Equipment collects every equipment at or below n, in tree order.
func Equipment(n Node) []*EquipmentNode {
	var out []*EquipmentNode
	var walk func(Node)
	walk = func(n Node) {
		if e, ok := n.(*EquipmentNode); ok {
			out = append(out, e)
			return
		}
		for _, c := range n.Children() {
			walk(c)
		}
	}
	walk(n)
	return out
}
