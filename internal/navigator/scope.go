package navigator

// Scope is the active hierarchical filter. Changing one level clears every
// level below it.
type Scope struct {
	SiteID     string `json:"siteId,omitempty"`
	BuildingID string `json:"buildingId,omitempty"`
	LevelID    string `json:"levelId,omitempty"`
	LocationID string `json:"locationId,omitempty"`
}

func (s Scope) WithSite(id string) Scope {
	return Scope{SiteID: id}
}

func (s Scope) WithBuilding(id string) Scope {
	return Scope{SiteID: s.SiteID, BuildingID: id}
}

func (s Scope) WithLevel(id string) Scope {
	return Scope{SiteID: s.SiteID, BuildingID: s.BuildingID, LevelID: id}
}

func (s Scope) WithLocation(id string) Scope {
	s.LocationID = id
	return s
}

// ScopeOf derives the scope selected by a resolution trail.
func ScopeOf(trail []Node) Scope {
	var s Scope
	for _, n := range trail {
		switch n := n.(type) {
		case *SiteNode:
			s = s.WithSite(n.ID())
		case *BuildingNode:
			s = s.WithBuilding(n.ID())
		case *LevelNode:
			s = s.WithLevel(n.ID())
		case *LocationNode:
			s = s.WithLocation(n.ID())
		}
	}
	return s
}

// Apply returns the node matching the deepest level set in s, or root when
// the scope is empty or does not match the tree.
func (s Scope) Apply(root *ClientNode) Node {
	var cur Node = root
	for _, id := range []string{s.SiteID, s.BuildingID, s.LevelID, s.LocationID} {
		if id == "" {
			break
		}
		next := child(cur, id)
		if next == nil {
			break
		}
		cur = next
	}
	return cur
}
