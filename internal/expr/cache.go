package expr

import (
	"strings"
	"sync"
)

// Cache keeps compiled expressions so that repeated plots of the same
// function skip the interpreter.
//
// Cache is safe for concurrent use. Entries stay until Evict or Clear.
//
//	cache := expr.NewCache()
//	fn, err := cache.Load("cmplx.Sin(z) / z")
//	if err != nil {
//	    return err
//	}
//	w := fn.Call(2i)
type Cache struct {
	mu    sync.RWMutex
	funcs map[string]*Function
}

// NewCache creates an empty cache.
func NewCache() *Cache {
	return &Cache{
		funcs: make(map[string]*Function),
	}
}

// Load returns the compiled form of expression, compiling it on first use.
// Expressions are keyed by their trimmed source, so "1/z" and " 1/z " share
// an entry but "1/z" and "1 / z" do not. Compile errors are not cached.
func (c *Cache) Load(expression string) (*Function, error) {
	key := strings.TrimSpace(expression)

	c.mu.RLock()
	if fn, ok := c.funcs[key]; ok {
		c.mu.RUnlock()
		return fn, nil
	}
	c.mu.RUnlock()

	fn, err := Compile(key)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	if existing, ok := c.funcs[key]; ok {
		fn = existing
	} else {
		c.funcs[key] = fn
	}
	c.mu.Unlock()

	return fn, nil
}

// Len returns the number of cached expressions.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.funcs)
}

// Evict removes one expression. Unknown expressions are ignored.
func (c *Cache) Evict(expression string) {
	c.mu.Lock()
	delete(c.funcs, strings.TrimSpace(expression))
	c.mu.Unlock()
}

// Clear removes every cached expression.
func (c *Cache) Clear() {
	c.mu.Lock()
	c.funcs = make(map[string]*Function)
	c.mu.Unlock()
}
