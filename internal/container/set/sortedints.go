package set

import "sort"

// sortedInts is the compact-encoding substitute for the sorted integer
// array primitive (§6.2 "Integer array"): a sorted, deduplicated []int64
// with binary-search insert/find.
type sortedInts struct {
	vals []int64
}

func (s *sortedInts) Len() int { return len(s.vals) }

func (s *sortedInts) search(n int64) (int, bool) {
	i := sort.Search(len(s.vals), func(i int) bool { return s.vals[i] >= n })
	return i, i < len(s.vals) && s.vals[i] == n
}

// Add inserts n if absent, reporting whether it was added.
func (s *sortedInts) Add(n int64) bool {
	i, found := s.search(n)
	if found {
		return false
	}
	s.vals = append(s.vals, 0)
	copy(s.vals[i+1:], s.vals[i:])
	s.vals[i] = n
	return true
}

// Remove deletes n if present, reporting whether it was removed.
func (s *sortedInts) Remove(n int64) bool {
	i, found := s.search(n)
	if !found {
		return false
	}
	s.vals = append(s.vals[:i], s.vals[i+1:]...)
	return true
}

func (s *sortedInts) Find(n int64) bool {
	_, found := s.search(n)
	return found
}

func (s *sortedInts) Get(i int) (int64, bool) {
	if i < 0 || i >= len(s.vals) {
		return 0, false
	}
	return s.vals[i], true
}
