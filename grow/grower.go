// Package grow extends the frontier of a transaction by one edge.
package grow

import (
	"github.com/hashicorp/golang-lru"
)

import (
	"github.com/timtadh/gspan/dfs"
	"github.com/timtadh/gspan/embeddings"
)

// Grower produces canonical children of frequent codes. A Grower may be
// shared by every transaction of a run: the only state it holds is a
// concurrency safe cache of canonical test results.
type Grower struct {
	Directed bool
	canon    *lru.Cache
}

func New(directed bool, cacheSize int) (*Grower, error) {
	canon, err := lru.New(cacheSize)
	if err != nil {
		return nil, err
	}
	return &Grower{
		Directed: directed,
		canon:    canon,
	}, nil
}

func (g *Grower) canonical(c dfs.Code) bool {
	key := string(dfs.Compress(c))
	if ok, has := g.canon.Get(key); has {
		return ok.(bool)
	}
	ok := dfs.IsCanonical(c, g.Directed)
	g.canon.Add(key, ok)
	return ok
}

// Initial computes the 1-edge codes of tx and their embeddings.
func (g *Grower) Initial(tx dfs.Graph) *embeddings.Store {
	store := embeddings.New()
	found := make(map[dfs.Step][]*dfs.Embedding)
	var order []dfs.Step
	dfs.Initial(tx, func(s dfs.Step, from, edge, to int) {
		if _, has := found[s]; !has {
			order = append(order, s)
		}
		found[s] = append(found[s], dfs.NewEmbedding(from, edge, to))
	})
	for _, s := range order {
		c := dfs.Code{s}
		if g.canonical(c) {
			store.Put(c, found[s])
		}
	}
	return store
}

type extension struct {
	parent *dfs.Embedding
	edge   int
	vertex int
}

// Grow computes every canonical child of every code in parents along with
// the child embeddings. Candidate steps are collected first so each child
// code is tested once no matter how many embeddings produce it.
func (g *Grower) Grow(tx dfs.Graph, parents *embeddings.Store) *embeddings.Store {
	kids := embeddings.New()
	for _, parent := range parents.Codes() {
		pending := make(map[dfs.Step][]extension)
		var order []dfs.Step
		for _, emb := range parents.Get(parent) {
			dfs.Extensions(tx, parent, emb, func(s dfs.Step, edge, vertex int) {
				if _, has := pending[s]; !has {
					order = append(order, s)
				}
				pending[s] = append(pending[s], extension{emb, edge, vertex})
			})
		}
		for _, s := range order {
			kid := parent.Extend(s)
			if !g.canonical(kid) {
				continue
			}
			exts := pending[s]
			embs := make([]*dfs.Embedding, 0, len(exts))
			for _, ext := range exts {
				embs = append(embs, ext.parent.Extend(ext.edge, ext.vertex))
			}
			kids.Put(kid, embs)
		}
	}
	return kids
}

// Embeddings finds every embedding of c in tx by following the code one step
// at a time. It does not look at any frontier so it works for codes tx never
// grew.
func (g *Grower) Embeddings(tx dfs.Graph, c dfs.Code) []*dfs.Embedding {
	if len(c) == 0 {
		return nil
	}
	var cur []*dfs.Embedding
	dfs.Initial(tx, func(s dfs.Step, from, edge, to int) {
		if s == c[0] {
			cur = append(cur, dfs.NewEmbedding(from, edge, to))
		}
	})
	for i := 1; i < len(c) && len(cur) > 0; i++ {
		var next []*dfs.Embedding
		for _, emb := range cur {
			dfs.Extensions(tx, c[:i], emb, func(s dfs.Step, edge, vertex int) {
				if s == c[i] {
					next = append(next, emb.Extend(edge, vertex))
				}
			})
		}
		cur = next
	}
	return cur
}

func (g *Grower) Supports(tx dfs.Graph, c dfs.Code) bool {
	return len(g.Embeddings(tx, c)) > 0
}
