package iconset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntries(t *testing.T) {
	got := Entries()
	require.Len(t, got, 13)
	assert.Equal(t, Entry{16, 1}, got[0])
	assert.Equal(t, Entry{16, 2}, got[1])
	assert.Equal(t, Largest, got[len(got)-1])

	scale1, scale2 := 0, 0
	for _, e := range got {
		switch e.Scale {
		case 1:
			scale1++
		case 2:
			scale2++
			assert.NotEqual(t, 1024, e.Base, "1024 has no @2x entry")
		default:
			t.Errorf("unexpected scale %d", e.Scale)
		}
	}
	assert.Equal(t, 7, scale1)
	assert.Equal(t, 6, scale2)
}

func TestEntriesReturnsCopy(t *testing.T) {
	a := Entries()
	a[0] = Entry{1, 1}
	assert.Equal(t, Entry{16, 1}, Entries()[0])
}

func TestFileName(t *testing.T) {
	tests := []struct {
		e    Entry
		want string
		px   int
	}{
		{Entry{16, 1}, "icon_16x16.png", 16},
		{Entry{16, 2}, "icon_16x16@2x.png", 32},
		{Entry{512, 2}, "icon_512x512@2x.png", 1024},
		{Entry{1024, 1}, "icon_1024x1024.png", 1024},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.e.FileName())
		assert.Equal(t, tt.px, tt.e.Pixels())
	}
}

func TestString(t *testing.T) {
	assert.Equal(t, "icon_32x32@2x.png (64x64)", Entry{32, 2}.String())
}
