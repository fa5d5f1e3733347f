// ABOUTME: Tests for the atomic enum bit set
// ABOUTME: Includes a concurrency property check that results match a sequential interleaving

package atomics

import (
	"sync"
	"testing"
)

type color int

const (
	red color = iota
	green
	blue
	yellow
	lastColor = yellow
)

func init() {
	CheckCapacity(int(lastColor))
}

func TestEnumSetBasicOps(t *testing.T) {
	var s EnumSet[color]

	if !s.IsEmpty() {
		t.Error("Expected fresh set to be empty")
	}

	s.Add(red)
	s.Add(blue)
	if !s.Contains(red) || !s.Contains(blue) {
		t.Error("Expected red and blue to be present")
	}
	if s.Contains(green) {
		t.Error("Expected green to be absent")
	}

	s.Remove(red)
	if s.Contains(red) {
		t.Error("Expected red to be removed")
	}

	s.RemoveAll()
	if !s.IsEmpty() {
		t.Error("Expected set to be empty after RemoveAll")
	}
}

func TestEnumSetIntersect(t *testing.T) {
	var a, b EnumSet[color]
	a.Add(red)
	a.Add(green)
	a.Add(blue)
	b.Add(green)
	b.Add(yellow)

	a.Intersect(&b)
	if a.Contains(red) || a.Contains(blue) {
		t.Errorf("Expected only green after intersect, got bits %#b", a.Bits())
	}
	if !a.Contains(green) {
		t.Error("Expected green to survive intersect")
	}
}

func TestEnumSetContainsAnyOf(t *testing.T) {
	var a, b, c EnumSet[color]
	a.Add(red)
	b.Add(red)
	b.Add(green)
	c.Add(yellow)

	if !a.ContainsAnyOf(&b) {
		t.Error("Expected a and b to overlap")
	}
	if a.ContainsAnyOf(&c) {
		t.Error("Expected a and c to be disjoint")
	}
}

func TestEnumSetUnionAndEqual(t *testing.T) {
	var a, b EnumSet[color]
	a.Add(red)
	b.Add(green)

	u := a.Union(&b)
	if !u.Contains(red) || !u.Contains(green) {
		t.Error("Expected union to contain both members")
	}
	if a.Equal(&b) {
		t.Error("Expected a != b")
	}

	a.Add(green)
	a.Remove(red)
	if !a.Equal(&b) {
		t.Error("Expected a == b after matching mutations")
	}
}

func TestEnumSetAddAll(t *testing.T) {
	var a, b EnumSet[color]
	a.Add(red)
	b.Add(green)
	b.Add(yellow)

	a.AddAll(&b)
	for _, c := range []color{red, green, yellow} {
		if !a.Contains(c) {
			t.Errorf("Expected %d to be present after AddAll", c)
		}
	}
}

func TestCheckCapacityRejectsOversizedEnum(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Expected panic for enum wider than the word")
		}
	}()
	CheckCapacity(WordBits)
}

// Property: with each goroutine finishing its Adds of a private member
// before any Removes of it, the final membership matches the sequential
// outcome and no torn word is ever observed.
func TestEnumSetConcurrentLinearizable(t *testing.T) {
	var s EnumSet[color]
	var wg sync.WaitGroup

	members := []color{red, green, blue, yellow}
	for i, m := range members {
		wg.Add(1)
		go func(m color, keep bool) {
			defer wg.Done()
			for j := 0; j < 500; j++ {
				s.Add(m)
				if !keep {
					s.Remove(m)
				}
			}
		}(m, i%2 == 0)
	}

	stop := make(chan struct{})
	go func() {
		// Concurrent readers must only ever see words made of valid
		// member bits.
		valid := uintptr(1)<<len(members) - 1
		for {
			select {
			case <-stop:
				return
			default:
			}
			if bits := s.Bits(); bits&^valid != 0 {
				t.Errorf("Observed invalid bits %#b", bits)
				return
			}
		}
	}()

	wg.Wait()
	close(stop)

	for i, m := range members {
		keep := i%2 == 0
		if s.Contains(m) != keep {
			t.Errorf("Expected Contains(%d) == %v after all operations", m, keep)
		}
	}
}
