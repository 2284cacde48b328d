// Package embeddings holds the per-transaction frontier: every code grown in
// a transaction together with the embeddings realizing it there.
package embeddings

import (
	"sort"
)

import (
	"github.com/timtadh/data-structures/hashtable"
)

import (
	"github.com/timtadh/gspan/dfs"
)

// Store maps codes to embeddings. It is not safe for concurrent use; each
// transaction owns its store.
type Store struct {
	codes *hashtable.LinearHash
}

func New() *Store {
	return &Store{
		codes: hashtable.NewLinearHash(),
	}
}

func (s *Store) Add(c dfs.Code, emb *dfs.Embedding) {
	s.Put(c, append(s.Get(c), emb))
}

// Put replaces the embeddings of c.
func (s *Store) Put(c dfs.Code, embs []*dfs.Embedding) {
	if err := s.codes.Put(c, embs); err != nil {
		panic(err)
	}
}

func (s *Store) Get(c dfs.Code) []*dfs.Embedding {
	if !s.codes.Has(c) {
		return nil
	}
	embs, err := s.codes.Get(c)
	if err != nil {
		panic(err)
	}
	return embs.([]*dfs.Embedding)
}

func (s *Store) Has(c dfs.Code) bool {
	return s.codes.Has(c)
}

func (s *Store) Remove(c dfs.Code) {
	if !s.codes.Has(c) {
		return
	}
	if _, err := s.codes.Remove(c); err != nil {
		panic(err)
	}
}

func (s *Store) Size() int {
	return s.codes.Size()
}

func (s *Store) Empty() bool {
	return s.codes.Size() == 0
}

// Each visits codes in hash order.
func (s *Store) Each(do func(dfs.Code, []*dfs.Embedding)) {
	for k, v, next := s.codes.Iterate()(); next != nil; k, v, next = next() {
		do(k.(dfs.Code), v.([]*dfs.Embedding))
	}
}

// Codes lists the stored codes in DFS code order.
func (s *Store) Codes() []dfs.Code {
	codes := make([]dfs.Code, 0, s.Size())
	s.Each(func(c dfs.Code, _ []*dfs.Embedding) {
		codes = append(codes, c)
	})
	sort.Slice(codes, func(i, j int) bool {
		return dfs.Compare(codes[i], codes[j]) < 0
	})
	return codes
}

// Retain drops every code keep rejects.
func (s *Store) Retain(keep func(dfs.Code) bool) {
	var drop []dfs.Code
	s.Each(func(c dfs.Code, _ []*dfs.Embedding) {
		if !keep(c) {
			drop = append(drop, c)
		}
	})
	for _, c := range drop {
		s.Remove(c)
	}
}
