// Package navigator builds the per-client hierarchy tree and resolves the
// selected node from URL slug segments.
package navigator

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/diewo77/gmao/internal/models"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

type Kind string

const (
	KindClient    Kind = "client"
	KindSite      Kind = "site"
	KindBuilding  Kind = "building"
	KindLevel     Kind = "level"
	KindLocation  Kind = "location"
	KindEquipment Kind = "equipment"
)

// Node is one level of the hierarchy. The concrete types are ClientNode,
// SiteNode, BuildingNode, LevelNode, LocationNode and EquipmentNode.
type Node interface {
	Kind() Kind
	ID() string
	Label() string
	Slug() string
	Children() []Node
}

type meta struct {
	id    string
	label string
	slug  string
}

func (m meta) ID() string    { return m.id }
func (m meta) Label() string { return m.label }
func (m meta) Slug() string  { return m.slug }

type ClientNode struct {
	meta
	Client *models.Client
	Sites  []*SiteNode
}

type SiteNode struct {
	meta
	Site      *models.Site
	Buildings []*BuildingNode
}

type BuildingNode struct {
	meta
	Building *models.Building
	Levels   []*LevelNode
}

type LevelNode struct {
	meta
	Level     *models.Level
	Locations []*LocationNode
}

type LocationNode struct {
	meta
	Location   *models.Location
	Equipments []*EquipmentNode
}

type EquipmentNode struct {
	meta
	Equipment *models.Equipment
}

func (*ClientNode) Kind() Kind    { return KindClient }
func (*SiteNode) Kind() Kind      { return KindSite }
func (*BuildingNode) Kind() Kind  { return KindBuilding }
func (*LevelNode) Kind() Kind     { return KindLevel }
func (*LocationNode) Kind() Kind  { return KindLocation }
func (*EquipmentNode) Kind() Kind { return KindEquipment }

func (n *ClientNode) Children() []Node    { return nodes(n.Sites) }
func (n *SiteNode) Children() []Node      { return nodes(n.Buildings) }
func (n *BuildingNode) Children() []Node  { return nodes(n.Levels) }
func (n *LevelNode) Children() []Node     { return nodes(n.Locations) }
func (n *LocationNode) Children() []Node  { return nodes(n.Equipments) }
func (n *EquipmentNode) Children() []Node { return nil }

func nodes[T Node](in []T) []Node {
	out := make([]Node, len(in))
	for i, n := range in {
		out[i] = n
	}
	return out
}

// Build turns a client preloaded with its subtree into a navigation tree.
// Slugs are unique among siblings.
func Build(c *models.Client) *ClientNode {
	root := &ClientNode{meta: meta{id: c.ID, label: c.Name, slug: Slugify(c.Name)}, Client: c}
	siteSlugs := slugSet{}
	for i := range c.Sites {
		s := &c.Sites[i]
		sn := &SiteNode{meta: meta{id: s.ID, label: s.Name, slug: siteSlugs.next(s.Name)}, Site: s}
		buildingSlugs := slugSet{}
		for j := range s.Buildings {
			b := &s.Buildings[j]
			bn := &BuildingNode{meta: meta{id: b.ID, label: b.Name, slug: buildingSlugs.next(b.Name)}, Building: b}
			levelSlugs := slugSet{}
			for k := range b.Levels {
				l := &b.Levels[k]
				ln := &LevelNode{meta: meta{id: l.ID, label: l.Name, slug: levelSlugs.next(l.Name)}, Level: l}
				locationSlugs := slugSet{}
				for m := range l.Locations {
					loc := &l.Locations[m]
					lcn := &LocationNode{meta: meta{id: loc.ID, label: loc.Name, slug: locationSlugs.next(loc.Name)}, Location: loc}
					equipmentSlugs := slugSet{}
					for q := range loc.Equipments {
						e := &loc.Equipments[q]
						label := e.Code
						if e.Libelle != "" {
							label = e.Code + " - " + e.Libelle
						}
						lcn.Equipments = append(lcn.Equipments, &EquipmentNode{
							meta:      meta{id: e.ID, label: label, slug: equipmentSlugs.next(e.Code)},
							Equipment: e,
						})
					}
					ln.Locations = append(ln.Locations, lcn)
				}
				bn.Levels = append(bn.Levels, ln)
			}
			sn.Buildings = append(sn.Buildings, bn)
		}
		root.Sites = append(root.Sites, sn)
	}
	return root
}

type slugSet map[string]bool

func (s slugSet) next(label string) string {
	base := Slugify(label)
	slug := base
	for n := 2; s[slug]; n++ {
		slug = base + "-" + strconv.Itoa(n)
	}
	s[slug] = true
	return slug
}

// Slugify lower-cases, strips accents and joins alphanumeric runs with dashes.
func Slugify(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(folded) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	out := strings.TrimSuffix(b.String(), "-")
	if out == "" {
		return "item"
	}
	return out
}
