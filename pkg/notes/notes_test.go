package notes

import (
	"reflect"
	"testing"
)

func checkGet(t *testing.T, n *Notes, key string, want any) {
	t.Helper()
	if got, ok := n.Get(key); !ok {
		if want != nil {
			t.Errorf("n.Get(%q) = %v, %t, want %v, true", key, got, ok, want)
		}
	} else if want == nil {
		t.Errorf("n.Get(%q) = %v, %t, want false", key, got, ok)
	} else if !reflect.DeepEqual(got, want) {
		t.Errorf("n.Get(%q) = %v, %t, want %v, true", key, got, ok, want)
	}
}

func TestNotes(t *testing.T) {
	var n Notes
	checkGet(t, &n, "key1", nil)
	if !n.IsEmpty() {
		t.Error("n.IsEmpty() == false, want true")
	}
	n.Set("key1", "val1")
	checkGet(t, &n, "key1", "val1")
	if n.IsEmpty() {
		t.Error("n.IsEmpty() == true, want false")
	}

	AppendNote(&n, "key2", "a")
	AppendNote(&n, "key2", "b", "c")
	checkGet(t, &n, "key2", []string{"a", "b", "c"})

	want := "map[key1:val1 key2:[a b c]]"
	if got := n.String(); got != want {
		t.Errorf("n.String() == %q, want %q", got, want)
	}
}

func TestClear(t *testing.T) {
	var n Notes
	n.Set("key1", "val1")
	n.Clear()
	checkGet(t, &n, "key1", nil)
	if !n.IsEmpty() {
		t.Error("n.IsEmpty() == false, want true")
	}
}
