package engine

import (
	"fmt"
	"sort"

	"github.com/vovakirdan/termgame/internal/core"
)

// Write is one cell write emitted by a render pass, in screen coordinates.
type Write struct {
	X, Y int
	Cell core.Cell
}

// recordEntry is what the terminal shows at one cell and which sprite put it
// there. owner is zero for cells no live sprite owns, such as a footprint
// adopted from a previous scene.
type recordEntry struct {
	owner ID
	cell  core.Cell
}

var emptyEntry = recordEntry{cell: core.BlankCell}

// snapshot is a sprite's screen hitbox as of the last render.
type snapshot struct {
	rect core.Rect
}

// frame is the dirty-cell bookkeeping of one scene.
type frame struct {
	record  map[core.Point]recordEntry
	snaps   map[ID]snapshot
	changed []*Sprite
	marked  map[*Sprite]struct{}
	extra   map[core.Point]struct{} // cells to re-evaluate regardless of sprites
}

func newFrame() frame {
	return frame{
		record: make(map[core.Point]recordEntry),
		snaps:  make(map[ID]snapshot),
		marked: make(map[*Sprite]struct{}),
		extra:  make(map[core.Point]struct{}),
	}
}

func (f *frame) mark(s *Sprite) {
	if _, ok := f.marked[s]; ok {
		return
	}
	f.marked[s] = struct{}{}
	f.changed = append(f.changed, s)
}

func (f *frame) isChanged(s *Sprite) bool {
	_, ok := f.marked[s]
	return ok
}

func (f *frame) reset() {
	*f = newFrame()
}

func (f *frame) lookup(p core.Point) recordEntry {
	if e, ok := f.record[p]; ok {
		return e
	}
	return emptyEntry
}

func (f *frame) store(p core.Point, e recordEntry) {
	if e == emptyEntry {
		delete(f.record, p)
		return
	}
	f.record[p] = e
}

// Diff computes the cell writes that bring the terminal from what the record
// says it shows to what the scene should show now, and updates the record.
// Only cells in the affected region of changed sprites are examined: the
// union of each changed sprite's previous and current screen hitbox. Writes
// are ordered by row, then column.
//
// Diff is exposed for tests and custom writers; Render is the usual entry
// point.
func (sc *Scene) Diff() []Write {
	f := &sc.frame
	affected := make(map[core.Point]struct{})
	add := func(p core.Point) {
		if sc.view.Empty() || sc.view.Contains(p.X, p.Y) {
			affected[p] = struct{}{}
		}
	}

	for _, s := range f.changed {
		if snap, ok := f.snaps[s.id]; ok {
			snap.rect.Each(add)
		}
		if s.visible() {
			sc.screenRect(s).Each(add)
		}
	}
	for p := range f.extra {
		add(p)
	}

	writes := make([]Write, 0, len(affected))
	for p := range affected {
		next := sc.resolve(p)
		prev := f.lookup(p)
		if prev.owner != 0 && sc.byID[prev.owner] == nil {
			sc.violation(p, prev.owner)
			prev = emptyEntry
		}
		if next.cell != prev.cell {
			writes = append(writes, Write{X: p.X, Y: p.Y, Cell: next.cell})
		}
		f.store(p, next)
	}
	sort.Slice(writes, func(i, j int) bool {
		if writes[i].Y != writes[j].Y {
			return writes[i].Y < writes[j].Y
		}
		return writes[i].X < writes[j].X
	})

	for _, s := range f.changed {
		if s.visible() {
			f.snaps[s.id] = snapshot{rect: sc.screenRect(s)}
		} else {
			delete(f.snaps, s.id)
		}
	}
	f.changed = f.changed[:0]
	f.marked = make(map[*Sprite]struct{})
	f.extra = make(map[core.Point]struct{})
	return writes
}

// resolve finds the topmost opaque cell at screen point p. Zombies are not
// in the spatial index and hidden sprites are skipped, so neither can win.
func (sc *Scene) resolve(p core.Point) recordEntry {
	sp := p.Add(sc.offset)
	var top *Sprite
	var cell core.Cell
	for _, s := range sc.grid.at(sp) {
		if !s.visible() || !s.rect().Contains(sp.X, sp.Y) {
			continue
		}
		if top != nil && !s.above(top) {
			continue
		}
		c := s.cellAt(sp)
		if c.Transparent() {
			continue
		}
		top, cell = s, c
	}
	if top == nil {
		return emptyEntry
	}
	return recordEntry{owner: top.id, cell: cell}
}

// violation handles a record entry that names a sprite the scene no longer
// knows. It means a sprite left the scene without its erase being rendered.
func (sc *Scene) violation(p core.Point, owner ID) {
	if fatalInvariants {
		panic(fmt.Sprintf("engine: scene %q: record at (%d,%d) owned by removed sprite %d", sc.name, p.X, p.Y, owner))
	}
	sc.log.Warn("render record references removed sprite", "scene", sc.name, "x", p.X, "y", p.Y, "sprite", owner)
}

// Render diffs the scene, sends the writes to w and flushes once. It returns
// the number of writes.
func (sc *Scene) Render(w Writer) (int, error) {
	writes := sc.Diff()
	for _, wr := range writes {
		w.WriteCell(wr.X, wr.Y, wr.Cell)
	}
	if err := w.Flush(); err != nil {
		return len(writes), fmt.Errorf("engine: flush: %w", err)
	}
	return len(writes), nil
}

// handOff releases the scene from the screen: it returns what the terminal
// shows on behalf of sc and forgets it, leaving sc ready to repaint from
// scratch when it becomes active again. Pending zombies are removed.
func (sc *Scene) handOff() map[core.Point]core.Cell {
	shown := make(map[core.Point]core.Cell, len(sc.frame.record))
	for p, e := range sc.frame.record {
		shown[p] = e.cell
	}
	sc.frame.reset()
	for _, s := range sc.kills {
		sc.remove(s)
	}
	sc.kills = nil
	sc.touchAll()
	sc.offscreen = true
	return shown
}

// adopt takes over a terminal footprint left by another scene. The next
// render erases or overdraws every adopted cell in the same flush that
// paints this scene's first frame.
func (sc *Scene) adopt(shown map[core.Point]core.Cell) {
	sc.frame.reset()
	for p, c := range shown {
		sc.frame.record[p] = recordEntry{cell: c}
		sc.frame.extra[p] = struct{}{}
	}
	sc.touchAll()
	sc.offscreen = false
}
