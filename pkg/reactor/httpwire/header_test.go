package httpwire

import "testing"

func TestHeaderGetAdd(t *testing.T) {
	h := NewHeader()
	h.Add("content-type", "text/plain")
	v, ok := h.Get("content-type")
	if !ok || v != "text/plain" {
		t.Fatalf("Get = %q, %v, want text/plain, true", v, ok)
	}
}

func TestHeaderGetMissing(t *testing.T) {
	h := NewHeader()
	if _, ok := h.Get("x-missing"); ok {
		t.Fatal("Get should report false for missing key")
	}
}

func TestHeaderSetDualAppendSemantics(t *testing.T) {
	h := NewHeader()
	h.Add("x-forwarded-for", "1.1.1.1")
	h.Set("x-forwarded-for", "2.2.2.2")

	if h.Len() != 2 {
		t.Fatalf("Len() = %d, want 2 (original entry comma-joined plus a fresh append)", h.Len())
	}

	var values []string
	h.VisitAll(func(key, value string) {
		if key == "x-forwarded-for" {
			values = append(values, value)
		}
	})
	if len(values) != 2 {
		t.Fatalf("got %v entries, want 2", values)
	}
	if values[0] != "1.1.1.1,2.2.2.2" {
		t.Fatalf("first entry = %q, want comma-joined value", values[0])
	}
	if values[1] != "2.2.2.2" {
		t.Fatalf("second entry = %q, want the freshly appended value", values[1])
	}
}

func TestHeaderSetOnNewKeyJustAppends(t *testing.T) {
	h := NewHeader()
	h.Set("host", "example.com")
	if h.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", h.Len())
	}
	v, _ := h.Get("host")
	if v != "example.com" {
		t.Fatalf("got %q, want example.com", v)
	}
}

func TestHeaderVisitAllPreservesOrder(t *testing.T) {
	h := NewHeader()
	h.Add("a", "1")
	h.Add("b", "2")
	h.Add("a", "3")
	var keys []string
	h.VisitAll(func(key, value string) {
		keys = append(keys, key+"="+value)
	})
	want := []string{"a=1", "b=2", "a=3"}
	if len(keys) != len(want) {
		t.Fatalf("got %v, want %v", keys, want)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Fatalf("got %v, want %v", keys, want)
		}
	}
}
