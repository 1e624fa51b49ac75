// Package set implements the dual-encoding Set container: a sorted integer
// array while every member is integer-encodable and the count stays under
// the configured threshold, promoted irreversibly to a hash set otherwise.
package set

import (
	"math/rand"

	"github.com/corekv/corekv/internal/obj"
)

// Encoding reports which representation a Set currently uses.
type Encoding uint8

const (
	IntSet Encoding = iota
	HashSet
)

func (e Encoding) String() string {
	if e == HashSet {
		return "hashtable"
	}
	return "intset"
}

// Set is a tagged IntSet/HashSet container.
type Set struct {
	enc  Encoding
	ints sortedInts
	hash map[string]*obj.Object
}

// New creates an empty set whose initial encoding is chosen by the first
// value it will hold: IntSet if that value is integer-encodable, HashSet
// otherwise. This mirrors setTypeCreate's factory behavior.
func New(first *obj.Object) *Set {
	if _, ok := first.Int(); ok {
		return &Set{enc: IntSet}
	}
	return &Set{enc: HashSet, hash: make(map[string]*obj.Object)}
}

// NewEmpty creates an empty IntSet-encoded set with no seed value, for
// callers (e.g. SUNIONSTORE's accumulator) that build up a result before
// any member is known.
func NewEmpty() *Set { return &Set{enc: IntSet} }

func (s *Set) Encoding() Encoding { return s.enc }

func (s *Set) Len() int {
	if s.enc == IntSet {
		return s.ints.Len()
	}
	return len(s.hash)
}

// MaxIntsetEntries bounds an IntSet before it must promote.
type Limits struct {
	MaxIntsetEntries int
}

func (s *Set) convertToHash(capacityHint int) {
	h := make(map[string]*obj.Object, capacityHint)
	for _, n := range s.ints.vals {
		o := obj.FromInt(n)
		h[string(o.Bytes())] = o
	}
	s.hash = h
	s.ints = sortedInts{}
	s.enc = HashSet
}

// Add inserts value, promoting IntSet -> HashSet if value is not
// integer-decodable or if adding it would exceed lim.MaxIntsetEntries.
// Mirrors tsetAddLiteral: a non-integer insert converts the whole set to a
// hash table *before* inserting the triggering element, so it lands exactly
// once.
func (s *Set) Add(value *obj.Object, lim Limits) bool {
	if s.enc == IntSet {
		n, ok := value.Int()
		if !ok {
			s.convertToHash(s.ints.Len() + 1)
		} else {
			added := s.ints.Add(n)
			if added && s.ints.Len() > lim.MaxIntsetEntries {
				s.convertToHash(s.ints.Len())
			}
			return added
		}
	}
	key := string(value.Bytes())
	if _, exists := s.hash[key]; exists {
		return false
	}
	s.hash[key] = value
	return true
}

// Remove deletes value if present.
func (s *Set) Remove(value *obj.Object) bool {
	if s.enc == IntSet {
		n, ok := value.Int()
		if !ok {
			return false
		}
		return s.ints.Remove(n)
	}
	key := string(value.Bytes())
	if _, exists := s.hash[key]; !exists {
		return false
	}
	delete(s.hash, key)
	return true
}

// Find reports whether value is a member. In IntSet encoding a
// non-integer-decodable literal is never a member (cross-encoding equality
// per spec §4.4).
func (s *Set) Find(value *obj.Object) bool {
	if s.enc == IntSet {
		n, ok := value.Int()
		if !ok {
			return false
		}
		return s.ints.Find(n)
	}
	_, exists := s.hash[string(value.Bytes())]
	return exists
}

// FindLiteral reports membership without forcing lit to materialize an
// Object when s is IntSet-encoded: it tries lit's integer fast path first,
// only falling back to the decoded byte form for HashSet membership tests.
// This is what keeps set-algebra scans allocation-free per element when
// every source happens to be integer-encoded (spec §4.6).
func (s *Set) FindLiteral(lit *obj.Literal) bool {
	if s.enc == IntSet {
		n, ok := lit.AsInt()
		if !ok {
			return false
		}
		return s.ints.Find(n)
	}
	return s.Find(lit.AsObject())
}

// Random returns a uniformly random member, or nil if the set is empty.
func (s *Set) Random() *obj.Object {
	n := s.Len()
	if n == 0 {
		return nil
	}
	if s.enc == IntSet {
		v, _ := s.ints.Get(rand.Intn(n))
		return obj.FromInt(v)
	}
	i := rand.Intn(n)
	for _, v := range s.hash {
		if i == 0 {
			return v
		}
		i--
	}
	return nil // unreachable
}
