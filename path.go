package wfgraph

import (
	"encoding/json"
	"iter"
	"slices"
	"strings"
)

// SentinelID fills every field of SentinelHop. It cannot be used as a node ID.
const SentinelID = "~end"

// SentinelHop terminates a Path that leaves the loop without closing back on its driver.
var SentinelHop = Hop{From: SentinelID, FromOutput: SentinelID, To: SentinelID, ToInput: SentinelID}

// Hop is one traversal step along an edge, labelled with endpoint display names.
type Hop struct {
	From       string `json:"from" yaml:"from"`
	FromOutput string `json:"from_output" yaml:"from_output"`
	To         string `json:"to" yaml:"to"`
	ToInput    string `json:"to_input" yaml:"to_input"`
}

// IsSentinel reports whether h is SentinelHop.
func (h Hop) IsSentinel() bool { return h == SentinelHop }

func (h Hop) String() string {
	if h.IsSentinel() {
		return "<end>"
	}
	return h.From + "." + h.FromOutput + " -> " + h.To + "." + h.ToInput
}

// Path is an ordered walk through the graph. Hops are appended at the tail and
// consumed from the head.
type Path struct {
	hops []Hop
}

// NewPath returns a Path holding the given hops.
func NewPath(hops ...Hop) Path {
	return Path{hops: slices.Clone(hops)}
}

// Append adds a hop at the tail.
func (p *Path) Append(h Hop) { p.hops = append(p.hops, h) }

// PopFront removes and returns the head hop.
func (p *Path) PopFront() (Hop, bool) {
	if len(p.hops) == 0 {
		return Hop{}, false
	}
	h := p.hops[0]
	p.hops = p.hops[1:]
	return h, true
}

// Len returns the number of hops left in the path.
func (p Path) Len() int { return len(p.hops) }

// All iterates the hops from head to tail.
func (p Path) All() iter.Seq[Hop] { return slices.Values(p.hops) }

// Hops returns a copy of the hops.
func (p Path) Hops() []Hop { return slices.Clone(p.hops) }

// First returns the head hop.
func (p Path) First() (Hop, bool) {
	if len(p.hops) == 0 {
		return Hop{}, false
	}
	return p.hops[0], true
}

// Last returns the tail hop.
func (p Path) Last() (Hop, bool) {
	if len(p.hops) == 0 {
		return Hop{}, false
	}
	return p.hops[len(p.hops)-1], true
}

// Equal reports whether both paths hold the same hops in the same order.
func (p Path) Equal(o Path) bool { return slices.Equal(p.hops, o.hops) }

// Clone returns an independent copy.
func (p Path) Clone() Path { return Path{hops: slices.Clone(p.hops)} }

// Closed reports whether the path ends on the node it started from.
func (p Path) Closed() bool {
	first, ok := p.First()
	if !ok {
		return false
	}
	last, _ := p.Last()
	return !last.IsSentinel() && first.From == last.To
}

// Terminated reports whether the path ends with SentinelHop.
func (p Path) Terminated() bool {
	last, ok := p.Last()
	return ok && last.IsSentinel()
}

func (p Path) String() string {
	parts := make([]string, len(p.hops))
	for i, h := range p.hops {
		parts[i] = h.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func (p Path) MarshalJSON() ([]byte, error) {
	if p.hops == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(p.hops)
}

func (p *Path) UnmarshalJSON(data []byte) error {
	var hops []Hop
	if err := json.Unmarshal(data, &hops); err != nil {
		return err
	}
	p.hops = hops
	return nil
}

func (p Path) MarshalYAML() (any, error) {
	if p.hops == nil {
		return []Hop{}, nil
	}
	return p.hops, nil
}

// PathSet is an unordered collection of paths.
type PathSet []Path

// Contains reports whether an equal path is in the set.
func (s PathSet) Contains(p Path) bool {
	return slices.ContainsFunc(s, p.Equal)
}

// Equal reports whether both sets hold the same paths, ignoring order.
func (s PathSet) Equal(o PathSet) bool {
	if len(s) != len(o) {
		return false
	}
	used := make([]bool, len(o))
	for _, p := range s {
		found := false
		for i, q := range o {
			if !used[i] && p.Equal(q) {
				used[i] = true
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
