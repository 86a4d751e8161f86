package cursor

import "github.com/kamstrup/intmap"

// TargetID identifies a registered hover target.
type TargetID uint32

// Rect is an axis-aligned rectangle in viewport pixels.
type Rect struct {
	X, Y, W, H float64
}

func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Targets is the set of regions that enlarge the cursor ring when hovered,
// the equivalent of links and buttons on the page.
type Targets struct {
	rects *intmap.Map[TargetID, Rect]
	next  TargetID
}

func NewTargets() *Targets {
	return &Targets{rects: intmap.New[TargetID, Rect](16)}
}

// Add registers r and returns its id.
func (t *Targets) Add(r Rect) TargetID {
	t.next++
	t.rects.Put(t.next, r)
	return t.next
}

// Set moves or resizes an existing target. It reports false for unknown ids.
func (t *Targets) Set(id TargetID, r Rect) bool {
	if _, ok := t.rects.Get(id); !ok {
		return false
	}
	t.rects.Put(id, r)
	return true
}

func (t *Targets) Remove(id TargetID) bool {
	return t.rects.Del(id)
}

func (t *Targets) Len() int {
	return t.rects.Len()
}

// HitTest returns a target containing (x, y). When targets overlap any one of
// them may be returned.
func (t *Targets) HitTest(x, y float64) (TargetID, bool) {
	var hit TargetID
	found := false
	t.rects.ForEach(func(id TargetID, r Rect) bool {
		if r.Contains(x, y) {
			hit, found = id, true
			return false
		}
		return true
	})
	return hit, found
}
