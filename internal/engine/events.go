package engine

import "github.com/vovakirdan/termgame/internal/core"

// Processor consumes events before the game sees them, like a focused text
// input. Process reports whether the event was consumed.
type Processor interface {
	Process(e core.Event) bool
}

// Dispatch offers each event to the processors in order and returns the
// events none of them consumed.
func Dispatch(events []core.Event, ps ...Processor) []core.Event {
	var rest []core.Event
	for _, e := range events {
		consumed := false
		for _, p := range ps {
			if p.Process(e) {
				consumed = true
				break
			}
		}
		if !consumed {
			rest = append(rest, e)
		}
	}
	return rest
}

// SliceSource replays a fixed queue of events, one batch per Poll. It is
// the input source for scripted runs and tests.
type SliceSource struct {
	batches [][]core.Event
}

// NewSliceSource returns a source yielding each batch on successive polls.
func NewSliceSource(batches ...[]core.Event) *SliceSource {
	return &SliceSource{batches: batches}
}

// Push appends a batch.
func (s *SliceSource) Push(events ...core.Event) {
	s.batches = append(s.batches, events)
}

// Poll returns the next batch, or nil once exhausted.
func (s *SliceSource) Poll() []core.Event {
	if len(s.batches) == 0 {
		return nil
	}
	b := s.batches[0]
	s.batches = s.batches[1:]
	return b
}
