package rng

import "testing"

func TestNewIsDeterministic(t *testing.T) {
	a := New(42)
	b := New(42)

	for i := 0; i < 1000; i++ {
		av, bv := a.Intn(52), b.Intn(52)
		if av != bv {
			t.Fatalf("draw %d diverged: %d vs %d", i, av, bv)
		}
	}
}

func TestDifferentSeedsDiverge(t *testing.T) {
	a := New(1)
	b := New(2)

	same := true
	for i := 0; i < 100; i++ {
		if a.Intn(1000) != b.Intn(1000) {
			same = false
			break
		}
	}
	if same {
		t.Error("100 draws from different seeds were identical")
	}
}

func TestIntnRange(t *testing.T) {
	src := New(7)
	for i := 0; i < 10000; i++ {
		v := src.Intn(6)
		if v < 0 || v >= 6 {
			t.Fatalf("Intn(6) returned %d", v)
		}
	}
}

func TestFloat64Range(t *testing.T) {
	src := New(7)
	for i := 0; i < 10000; i++ {
		f := src.Float64()
		if f < 0 || f >= 1 {
			t.Fatalf("Float64 returned %f", f)
		}
	}
}

func TestDieRange(t *testing.T) {
	src := New(99)
	seen := make(map[int]bool)
	for i := 0; i < 10000; i++ {
		v := Die(src)
		if v < 1 || v > 6 {
			t.Fatalf("Die returned %d", v)
		}
		seen[v] = true
	}
	for face := 1; face <= 6; face++ {
		if !seen[face] {
			t.Errorf("face %d never rolled in 10000 draws", face)
		}
	}
}

func TestLockedDelegates(t *testing.T) {
	plain := New(42)
	locked := Locked(New(42))

	for i := 0; i < 100; i++ {
		if plain.Intn(52) != locked.Intn(52) {
			t.Fatal("locked source diverged from plain source with same seed")
		}
	}
}
