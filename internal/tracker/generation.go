package tracker

// Generation numbers outstanding lookups so only the latest response is
// applied. Responses carry the number they were issued under.
type Generation struct {
	n uint64
}

// Next starts a new generation and returns its number. Every earlier
// number becomes stale.
func (g *Generation) Next() uint64 {
	g.n++
	return g.n
}

// Invalidate makes every outstanding number stale without issuing a request
func (g *Generation) Invalidate() {
	g.n++
}

// IsCurrent reports whether n is the latest generation
func (g Generation) IsCurrent(n uint64) bool {
	return n == g.n
}

// Current returns the latest generation number
func (g Generation) Current() uint64 {
	return g.n
}
