// Package iconset defines the fixed set of resolutions an icon container
// is assembled from.
package iconset

import "fmt"

// Entry is one required output resolution: a base size in points and a
// pixel density multiplier.
type Entry struct {
	Base  int
	Scale int
}

// Largest is the 1024px entry copied out as the standalone bitmap.
var Largest = Entry{Base: 1024, Scale: 1}

var entries = [...]Entry{
	{16, 1}, {16, 2},
	{32, 1}, {32, 2},
	{64, 1}, {64, 2},
	{128, 1}, {128, 2},
	{256, 1}, {256, 2},
	{512, 1}, {512, 2},
	{1024, 1},
}

// Entries returns the resolutions in processing order. The returned
// slice is a copy.
func Entries() []Entry {
	out := make([]Entry, len(entries))
	copy(out, entries[:])
	return out
}

// Pixels returns the actual edge length of the bitmap.
func (e Entry) Pixels() int {
	return e.Base * e.Scale
}

// FileName returns the iconset file name, e.g. "icon_16x16.png" or
// "icon_512x512@2x.png".
func (e Entry) FileName() string {
	if e.Scale > 1 {
		return fmt.Sprintf("icon_%dx%d@%dx.png", e.Base, e.Base, e.Scale)
	}
	return fmt.Sprintf("icon_%dx%d.png", e.Base, e.Base)
}

func (e Entry) String() string {
	return fmt.Sprintf("%s (%dx%d)", e.FileName(), e.Pixels(), e.Pixels())
}
