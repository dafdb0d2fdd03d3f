// Package psr models piloting skill rolls that a movement requires: a base
// target number plus an itemized list of modifiers.
package psr

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Sentinel target values. They dominate normal modifiers and each other in
// the order Impossible > AutomaticFail > AutomaticSuccess.
const (
	Impossible       = math.MaxInt32
	AutomaticFail    = math.MaxInt32 - 1
	AutomaticSuccess = math.MinInt32
)

// Modifier is one itemized contribution to a target number.
type Modifier struct {
	Value int    `json:"value"`
	Desc  string `json:"desc"`
}

// IsSentinel reports whether v is one of the sentinel target values.
func IsSentinel(v int) bool {
	return v == Impossible || v == AutomaticFail || v == AutomaticSuccess
}

// Roll is a pending skill check. The first modifier is the base target.
type Roll struct {
	EntityID  int        `json:"entity_id"`
	Modifiers []Modifier `json:"modifiers"`
}

// New starts a roll from a base target number.
func New(entityID, base int, desc string) *Roll {
	return &Roll{
		EntityID:  entityID,
		Modifiers: []Modifier{{Value: base, Desc: desc}},
	}
}

// AddModifier appends one modifier.
func (r *Roll) AddModifier(value int, desc string) {
	r.Modifiers = append(r.Modifiers, Modifier{Value: value, Desc: desc})
}

// Append adds every modifier of o, base included, to r.
func (r *Roll) Append(o *Roll) {
	if o == nil {
		return
	}
	r.Modifiers = append(r.Modifiers, o.Modifiers...)
}

// Clone returns an independent copy.
func (r *Roll) Clone() *Roll {
	c := &Roll{EntityID: r.EntityID, Modifiers: make([]Modifier, len(r.Modifiers))}
	copy(c.Modifiers, r.Modifiers)
	return c
}

// Base returns the base target number.
func (r *Roll) Base() int {
	if len(r.Modifiers) == 0 {
		return 0
	}
	return r.Modifiers[0].Value
}

// Value aggregates the modifiers. Any sentinel short-circuits the sum.
func (r *Roll) Value() int {
	total := 0
	sentinel := 0
	for _, m := range r.Modifiers {
		switch m.Value {
		case Impossible:
			sentinel = Impossible
		case AutomaticFail:
			if sentinel != Impossible {
				sentinel = AutomaticFail
			}
		case AutomaticSuccess:
			if sentinel == 0 {
				sentinel = AutomaticSuccess
			}
		default:
			total += m.Value
		}
	}
	if sentinel != 0 {
		return sentinel
	}
	return total
}

// HasReason reports whether anything beyond the base was recorded.
func (r *Roll) HasReason() bool {
	return len(r.Modifiers) > 1
}

// Reasons lists the modifier descriptions in order, base first.
func (r *Roll) Reasons() []string {
	out := make([]string, len(r.Modifiers))
	for i, m := range r.Modifiers {
		out[i] = m.Desc
	}
	return out
}

// ValueString renders the target number or the sentinel name.
func (r *Roll) ValueString() string {
	return valueString(r.Value())
}

func valueString(v int) string {
	switch v {
	case Impossible:
		return "Impossible"
	case AutomaticFail:
		return "Automatic Failure"
	case AutomaticSuccess:
		return "Automatic Success"
	}
	return strconv.Itoa(v)
}

// Desc renders the itemized modifiers, e.g.
// "5 (base piloting skill) + 2 (gyro damaged) - 2 (landing in clear terrain)".
func (r *Roll) Desc() string {
	var sb strings.Builder
	for i, m := range r.Modifiers {
		switch {
		case IsSentinel(m.Value):
			if i > 0 {
				sb.WriteString(", ")
			}
			fmt.Fprintf(&sb, "%s (%s)", valueString(m.Value), m.Desc)
		case i == 0:
			fmt.Fprintf(&sb, "%d (%s)", m.Value, m.Desc)
		case m.Value < 0:
			fmt.Fprintf(&sb, " - %d (%s)", -m.Value, m.Desc)
		default:
			fmt.Fprintf(&sb, " + %d (%s)", m.Value, m.Desc)
		}
	}
	return sb.String()
}

func (r *Roll) String() string {
	return fmt.Sprintf("target %s: %s", r.ValueString(), r.Desc())
}
