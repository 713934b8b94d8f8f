package engine

import (
	"fmt"
	"sort"

	"github.com/vovakirdan/termgame/internal/core"
)

// Container is implemented by Group and OrderedGroup.
type Container interface {
	Add(s *Sprite)
	Remove(s *Sprite)
	Has(s *Sprite) bool
	Len() int
	Sprites() []*Sprite
}

// groupRef lets a scene remove a drained sprite from its groups.
type groupRef interface {
	drop(s *Sprite)
}

// Group is a set of sprite references. Membership does not affect a sprite's
// lifecycle: killed sprites leave their groups when the scene drains them.
// Iteration follows insertion order.
type Group struct {
	name    string
	members []*Sprite
	index   map[*Sprite]struct{}
}

// NewGroup creates an empty group containing sprites.
func NewGroup(name string, sprites ...*Sprite) *Group {
	g := &Group{name: name, index: make(map[*Sprite]struct{})}
	for _, s := range sprites {
		g.Add(s)
	}
	return g
}

// Name returns the group name.
func (g *Group) Name() string { return g.name }

// Add inserts s. Adding a member again does nothing; zombies are ignored.
func (g *Group) Add(s *Sprite) {
	if s.state == StateZombie {
		return
	}
	if _, ok := g.index[s]; ok {
		return
	}
	g.index[s] = struct{}{}
	g.members = append(g.members, s)
	s.groups = append(s.groups, g)
}

// Remove deletes s from the group.
func (g *Group) Remove(s *Sprite) {
	if _, ok := g.index[s]; !ok {
		return
	}
	g.drop(s)
	s.groups = removeRef(s.groups, g)
}

func (g *Group) drop(s *Sprite) {
	delete(g.index, s)
	g.members = removeSprite(g.members, s)
}

// Has reports membership.
func (g *Group) Has(s *Sprite) bool {
	_, ok := g.index[s]
	return ok
}

// Len returns the number of members.
func (g *Group) Len() int { return len(g.members) }

// Sprites returns a snapshot of the members.
func (g *Group) Sprites() []*Sprite {
	return append([]*Sprite(nil), g.members...)
}

// KillAll kills every member.
func (g *Group) KillAll() { killAll(g.Sprites()) }

// UpdateAll runs the Updater of every placed member over a snapshot taken at
// call start.
func (g *Group) UpdateAll(f *Frame) { updateAll(g.Sprites(), f) }

// RenderAll renders the scenes of all placed members and flushes w once.
func (g *Group) RenderAll(w Writer) (int, error) { return renderAll(g.Sprites(), w) }

func (g *Group) String() string {
	return fmt.Sprintf("group %q (%d)", g.name, len(g.members))
}

// OrderedGroup is a list of sprite references whose order the caller
// controls. Like Group it never owns its members.
type OrderedGroup struct {
	name    string
	members []*Sprite
}

// NewOrderedGroup creates a list containing sprites in order.
func NewOrderedGroup(name string, sprites ...*Sprite) *OrderedGroup {
	g := &OrderedGroup{name: name}
	for _, s := range sprites {
		g.Add(s)
	}
	return g
}

// Name returns the group name.
func (g *OrderedGroup) Name() string { return g.name }

// Add appends s. A member is kept once, at its first position.
func (g *OrderedGroup) Add(s *Sprite) {
	g.Insert(len(g.members), s)
}

// Insert puts s at index i, clamped to the list bounds.
func (g *OrderedGroup) Insert(i int, s *Sprite) {
	if s.state == StateZombie || g.Has(s) {
		return
	}
	i = core.Clamp(i, 0, len(g.members))
	g.members = append(g.members, nil)
	copy(g.members[i+1:], g.members[i:])
	g.members[i] = s
	s.groups = append(s.groups, g)
}

// Remove deletes s from the list.
func (g *OrderedGroup) Remove(s *Sprite) {
	if !g.Has(s) {
		return
	}
	g.drop(s)
	s.groups = removeRef(s.groups, g)
}

func (g *OrderedGroup) drop(s *Sprite) {
	g.members = removeSprite(g.members, s)
}

// Has reports membership.
func (g *OrderedGroup) Has(s *Sprite) bool { return g.Index(s) >= 0 }

// Index returns the position of s, or -1.
func (g *OrderedGroup) Index(s *Sprite) int {
	for i, m := range g.members {
		if m == s {
			return i
		}
	}
	return -1
}

// At returns the member at index i.
func (g *OrderedGroup) At(i int) *Sprite { return g.members[i] }

// Len returns the number of members.
func (g *OrderedGroup) Len() int { return len(g.members) }

// Sprites returns a snapshot of the members in order.
func (g *OrderedGroup) Sprites() []*Sprite {
	return append([]*Sprite(nil), g.members...)
}

// Swap exchanges the members at i and j.
func (g *OrderedGroup) Swap(i, j int) {
	g.members[i], g.members[j] = g.members[j], g.members[i]
}

// Sort orders the members by less, keeping equal members in place.
func (g *OrderedGroup) Sort(less func(a, b *Sprite) bool) {
	sort.SliceStable(g.members, func(i, j int) bool { return less(g.members[i], g.members[j]) })
}

// KillAll kills every member.
func (g *OrderedGroup) KillAll() { killAll(g.Sprites()) }

// UpdateAll runs the Updater of every placed member in list order over a
// snapshot taken at call start.
func (g *OrderedGroup) UpdateAll(f *Frame) { updateAll(g.Sprites(), f) }

// RenderAll renders the scenes of all placed members and flushes w once.
func (g *OrderedGroup) RenderAll(w Writer) (int, error) { return renderAll(g.Sprites(), w) }

func (g *OrderedGroup) String() string {
	return fmt.Sprintf("ordered group %q (%d)", g.name, len(g.members))
}

func killAll(snap []*Sprite) {
	for _, s := range snap {
		s.Kill()
	}
}

func updateAll(snap []*Sprite, f *Frame) {
	for _, s := range snap {
		if s.state != StatePlaced {
			continue
		}
		if u, ok := s.behavior.(Updater); ok {
			u.Update(s, f)
		}
	}
}

// renderAll re-evaluates the members' cells in their scenes and emits the
// combined writes with one flush. Members of a scene that is not on screen
// are skipped; that scene repaints in full when it is shown again.
func renderAll(snap []*Sprite, w Writer) (int, error) {
	var scenes []*Scene
	seen := make(map[*Scene]bool)
	for _, s := range snap {
		if s.scene == nil || s.scene.offscreen {
			continue
		}
		s.scene.markChanged(s)
		if !seen[s.scene] {
			seen[s.scene] = true
			scenes = append(scenes, s.scene)
		}
	}
	n := 0
	for _, sc := range scenes {
		for _, wr := range sc.Diff() {
			w.WriteCell(wr.X, wr.Y, wr.Cell)
			n++
		}
	}
	if err := w.Flush(); err != nil {
		return n, fmt.Errorf("engine: flush: %w", err)
	}
	return n, nil
}

func removeSprite(list []*Sprite, s *Sprite) []*Sprite {
	for i, m := range list {
		if m == s {
			copy(list[i:], list[i+1:])
			list[len(list)-1] = nil
			return list[:len(list)-1]
		}
	}
	return list
}

func removeRef(list []groupRef, g groupRef) []groupRef {
	for i, m := range list {
		if m == g {
			return append(list[:i], list[i+1:]...)
		}
	}
	return list
}
