package movecheck

import (
	"fmt"
	"strings"

	"github.com/sc68cal/megamek-sub000/internal/movepath"
	"github.com/sc68cal/megamek-sub000/internal/psr"
)

// EndOfPath is the Entry.Step value for checks on the path as a whole.
const EndOfPath = -1

// Entry is one finding: a pending roll, or a free-text warning when Roll is
// nil.
type Entry struct {
	Rule string    `json:"rule"`
	Step int       `json:"step"`
	Roll *psr.Roll `json:"roll,omitempty"`
	Text string    `json:"text,omitempty"`
}

func (e Entry) String() string {
	if e.Roll == nil {
		return e.Text
	}
	return "Piloting skill check needed: " + e.Roll.String()
}

// DoorLoad is how many units leave through one bay door in a launch.
// Bonus counts the units past the two a door handles safely.
type DoorLoad struct {
	Bay   int `json:"bay"`
	Door  int `json:"door"`
	Units int `json:"units"`
	Bonus int `json:"bonus"`
}

// Report is the outcome of checking one path. The text and structured views
// are both derived from Entries.
type Report struct {
	Path     movepath.Path `json:"-"`
	Entries  []Entry       `json:"entries"`
	Launches []DoorLoad    `json:"launches,omitempty"`
}

// Rolls returns the pending rolls in the order they were raised.
func (r Report) Rolls() []*psr.Roll {
	var out []*psr.Roll
	for _, e := range r.Entries {
		if e.Roll != nil {
			out = append(out, e.Roll)
		}
	}
	return out
}

// Warnings returns the text-only findings.
func (r Report) Warnings() []string {
	var out []string
	for _, e := range r.Entries {
		if e.Roll == nil {
			out = append(out, e.Text)
		}
	}
	return out
}

func (r Report) Empty() bool { return len(r.Entries) == 0 }

// String renders every entry on its own line.
func (r Report) String() string {
	lines := make([]string, len(r.Entries))
	for i, e := range r.Entries {
		lines[i] = e.String()
	}
	return strings.Join(lines, "\n")
}

// ─── Accumulator ────────────────────────────────────────────────────────────

type accumulator struct {
	entries   []Entry
	launches  []DoorLoad
	stepStart int
	step      int
}

func (a *accumulator) beginStep(i int) {
	a.step = i
	a.stepStart = len(a.entries)
}

// roll records r unless it carries nothing beyond its base.
func (a *accumulator) roll(rule string, r *psr.Roll) {
	if r == nil || !r.HasReason() {
		return
	}
	a.entries = append(a.entries, Entry{Rule: rule, Step: a.step, Roll: r})
}

func (a *accumulator) nag(rule, format string, args ...any) {
	a.entries = append(a.entries, Entry{Rule: rule, Step: a.step, Text: fmt.Sprintf(format, args...)})
}

// stepRolls are the rolls raised so far for the current step.
func (a *accumulator) stepRolls() []*psr.Roll {
	var out []*psr.Roll
	for _, e := range a.entries[a.stepStart:] {
		if e.Roll != nil {
			out = append(out, e.Roll)
		}
	}
	return out
}

func (a *accumulator) report(p movepath.Path) Report {
	return Report{Path: p, Entries: a.entries, Launches: a.launches}
}
