package input

import (
	"time"

	"github.com/kamstrup/intmap"
)

type holdState struct {
	elapsed time.Duration
	next    time.Duration
}

// Tracker turns per-command held state into command events. A command fires
// on its press edge. Commands marked as repeating fire again once they have
// been held for Delay and then every Interval.
type Tracker struct {
	Delay     time.Duration
	Interval  time.Duration
	repeating uint16
	held      *intmap.Map[Command, holdState]
}

func NewTracker(delay, interval time.Duration, repeating ...Command) *Tracker {
	t := &Tracker{
		Delay:    delay,
		Interval: interval,
		held:     intmap.New[Command, holdState](len(Commands)),
	}
	for _, c := range repeating {
		t.repeating |= 1 << c
	}
	return t
}

func (t *Tracker) repeats(c Command) bool {
	return t.repeating&(1<<c) != 0
}

// Step advances the tracker by dt and appends the commands that fire this
// frame to dst, in dispatch order.
func (t *Tracker) Step(dst []Command, dt time.Duration, held func(Command) bool) []Command {
	for _, c := range Commands {
		if !held(c) {
			t.held.Del(c)
			continue
		}
		st, ok := t.held.Get(c)
		if !ok {
			t.held.Put(c, holdState{next: t.Delay})
			dst = append(dst, c)
			continue
		}
		if !t.repeats(c) {
			continue
		}
		st.elapsed += dt
		if st.elapsed >= st.next {
			dst = append(dst, c)
			st.next += t.Interval
			if st.next <= st.elapsed && t.Interval > 0 {
				st.next = st.elapsed + t.Interval
			}
		}
		t.held.Put(c, st)
	}
	return dst
}

// Held reports whether c was held at the last step.
func (t *Tracker) Held(c Command) bool {
	return t.held.Has(c)
}

// Release forgets all held state, so every held command fires again as a
// fresh press.
func (t *Tracker) Release() {
	t.held.Clear()
}
