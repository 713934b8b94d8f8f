package engine

import "time"

// interval runs fn every `every` ticks.
type interval struct {
	id    int
	every uint64
	next  uint64
	loops int // remaining runs; 0 runs forever
	fn    func()
}

// timer runs fn every period of wall-clock time. It does not use a
// goroutine: runs are caught up at tick boundaries from the elapsed time.
type timer struct {
	id     int
	period time.Duration
	last   time.Time
	loops  int
	fn     func()
}

// Every schedules fn to run at the start of the next tick and then every
// `ticks` ticks, at most loops times (0 means forever). It returns an id for
// Cancel.
func (g *Game) Every(ticks uint64, loops int, fn func()) int {
	if ticks == 0 {
		ticks = 1
	}
	g.lastSched++
	g.intervals = append(g.intervals, &interval{
		id:    g.lastSched,
		every: ticks,
		next:  g.ntick + 1,
		loops: loops,
		fn:    fn,
	})
	return g.lastSched
}

// Timer schedules fn to run once per elapsed period of game-clock time, at
// most loops times (0 means forever). Runs missed between ticks are caught up
// in one burst. It returns an id for Cancel.
func (g *Game) Timer(period time.Duration, loops int, fn func()) int {
	if period <= 0 {
		period = time.Millisecond
	}
	g.lastSched++
	g.timers = append(g.timers, &timer{
		id:     g.lastSched,
		period: period,
		last:   g.now(),
		loops:  loops,
		fn:     fn,
	})
	return g.lastSched
}

// Cancel removes an interval or timer. It reports whether id was scheduled.
func (g *Game) Cancel(id int) bool {
	for i, iv := range g.intervals {
		if iv.id == id {
			g.intervals = append(g.intervals[:i], g.intervals[i+1:]...)
			return true
		}
	}
	for i, t := range g.timers {
		if t.id == id {
			g.timers = append(g.timers[:i], g.timers[i+1:]...)
			return true
		}
	}
	return false
}

// Scheduled returns the number of live intervals and timers.
func (g *Game) Scheduled() int {
	return len(g.intervals) + len(g.timers)
}

func (g *Game) fireIntervals() {
	due := append([]*interval(nil), g.intervals...)
	for _, iv := range due {
		if iv.next != g.ntick {
			continue
		}
		iv.next += iv.every
		if iv.loops > 0 {
			iv.loops--
			if iv.loops == 0 {
				g.Cancel(iv.id)
			}
		}
		iv.fn()
	}
}

func (g *Game) fireTimers(now time.Time) {
	due := append([]*timer(nil), g.timers...)
	for _, t := range due {
		n := int(now.Sub(t.last) / t.period)
		if n < 1 {
			continue
		}
		t.last = t.last.Add(time.Duration(n) * t.period)
		if t.loops > 0 {
			if n >= t.loops {
				n = t.loops
				g.Cancel(t.id)
			}
			t.loops -= n
		}
		for i := 0; i < n; i++ {
			t.fn()
		}
	}
}
