package ebitenui

import "testing"

func TestMeasureCacheEviction(t *testing.T) {
	c := newMeasureCache(2)
	c.put("a", 1)
	c.put("b", 2)

	// Touch "a" so "b" becomes the oldest.
	if w, ok := c.get("a"); !ok || w != 1 {
		t.Fatalf("get(a) = %v, %v, want 1, true", w, ok)
	}
	c.put("c", 3)

	tests := []struct {
		key    string
		want   float32
		wantOK bool
	}{
		{"a", 1, true},
		{"b", 0, false},
		{"c", 3, true},
	}
	for _, tt := range tests {
		w, ok := c.get(tt.key)
		if ok != tt.wantOK || w != tt.want {
			t.Errorf("get(%q) = %v, %v, want %v, %v", tt.key, w, ok, tt.want, tt.wantOK)
		}
	}
	if c.len() != 2 {
		t.Errorf("len = %d, want 2", c.len())
	}
}

func TestMeasureCacheUpdateAndClear(t *testing.T) {
	c := newMeasureCache(4)
	c.put("a", 1)
	c.put("a", 5)
	if w, _ := c.get("a"); w != 5 {
		t.Errorf("get(a) = %v, want 5", w)
	}
	if c.len() != 1 {
		t.Errorf("len = %d, want 1", c.len())
	}
	c.clear()
	if _, ok := c.get("a"); ok {
		t.Error("entry survived clear")
	}
}
