package seq

import "testing"

func TestAddGetLen(t *testing.T) {
	s := New[int](0)
	s.Add(1)
	s.Add(2)
	s.Add(3)
	if s.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", s.Len())
	}
	v, ok := s.Get(1)
	if !ok || v != 2 {
		t.Fatalf("Get(1) = %v, %v, want 2, true", v, ok)
	}
}

func TestGetOutOfRange(t *testing.T) {
	s := New[int](0)
	s.Add(1)
	if _, ok := s.Get(5); ok {
		t.Fatal("Get(5) should report false")
	}
	if _, ok := s.Get(-1); ok {
		t.Fatal("Get(-1) should report false")
	}
}

func TestRemoveAtPreservesOrder(t *testing.T) {
	s := New[string](0)
	s.Add("a")
	s.Add("b")
	s.Add("c")
	if !s.RemoveAt(1) {
		t.Fatal("RemoveAt(1) should succeed")
	}
	want := []string{"a", "c"}
	got := s.Data()
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestFind(t *testing.T) {
	s := New[int](0)
	s.Add(10)
	s.Add(20)
	s.Add(30)
	idx := s.Find(func(v int) bool { return v == 20 })
	if idx != 1 {
		t.Fatalf("Find = %d, want 1", idx)
	}
	if s.Find(func(v int) bool { return v == 99 }) != -1 {
		t.Fatal("Find should return -1 for no match")
	}
}
