package navigator

// View is the JSON projection of a node.
type View struct {
	Kind       Kind   `json:"kind"`
	ID         string `json:"id"`
	Label      string `json:"label"`
	Slug       string `json:"slug"`
	ChildCount int    `json:"childCount"`
	Children   []View `json:"children,omitempty"`
}

// ToView projects n, descending depth levels (0 stops at n, negative is unlimited).
func ToView(n Node, depth int) View {
	kids := n.Children()
	v := View{Kind: n.Kind(), ID: n.ID(), Label: n.Label(), Slug: n.Slug(), ChildCount: len(kids)}
	if depth == 0 {
		return v
	}
	for _, c := range kids {
		v.Children = append(v.Children, ToView(c, depth-1))
	}
	return v
}

// Crumb is one breadcrumb entry with the slug path that selects it.
type Crumb struct {
	Kind  Kind     `json:"kind"`
	ID    string   `json:"id"`
	Label string   `json:"label"`
	Path  []string `json:"path"`
}

func Breadcrumbs(trail []Node) []Crumb {
	out := make([]Crumb, 0, len(trail))
	for i, n := range trail {
		out = append(out, Crumb{Kind: n.Kind(), ID: n.ID(), Label: n.Label(), Path: Path(trail[:i+1])})
	}
	return out
}
