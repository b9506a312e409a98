package escape

import (
	"sync"

	lru "github.com/hashicorp/golang-lru"
)

// Guard remembers which data fingerprints have already been escaped and
// with which parameters.
type Guard interface {
	Get(fingerprint string) (Params, bool)
	Add(fingerprint string, p Params)
	Len() int
}

// NewGuard returns an unbounded Guard when size is not positive and an
// LRU-bounded one otherwise.
func NewGuard(size int) (Guard, error) {
	if size <= 0 {
		return &mapGuard{entries: make(map[string]Params)}, nil
	}

	cache, err := lru.New(size)
	if err != nil {
		return nil, err
	}

	return &lruGuard{cache: cache}, nil
}

type mapGuard struct {
	sync.Mutex
	entries map[string]Params
}

func (g *mapGuard) Get(fingerprint string) (Params, bool) {
	g.Lock()
	defer g.Unlock()
	p, ok := g.entries[fingerprint]
	return p, ok
}

func (g *mapGuard) Add(fingerprint string, p Params) {
	g.Lock()
	g.entries[fingerprint] = p
	g.Unlock()
}

func (g *mapGuard) Len() int {
	g.Lock()
	defer g.Unlock()
	return len(g.entries)
}

type lruGuard struct {
	cache *lru.Cache
}

func (g *lruGuard) Get(fingerprint string) (Params, bool) {
	v, ok := g.cache.Get(fingerprint)
	if !ok {
		return Params{}, false
	}
	return v.(Params), true
}

func (g *lruGuard) Add(fingerprint string, p Params) {
	g.cache.Add(fingerprint, p)
}

func (g *lruGuard) Len() int {
	return g.cache.Len()
}
