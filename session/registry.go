package session

import (
	"fmt"

	"github.com/fwojciec/diffpane"
)

// Registry holds the active compared pairs in creation order. A buffer
// belongs to at most one pair.
type Registry struct {
	pairs []*ComparedPair
}

// Add registers p. It fails if either of its buffers is already compared.
func (r *Registry) Add(p *ComparedPair) error {
	for _, f := range p.Files {
		if r.ByBuffer(f.Buffer) != nil {
			return fmt.Errorf("buffer %d is already compared: %w", f.Buffer, diffpane.ErrOperationIgnored)
		}
	}
	r.pairs = append(r.pairs, p)
	return nil
}

// Remove unregisters p and reports whether it was registered.
func (r *Registry) Remove(p *ComparedPair) bool {
	for i, q := range r.pairs {
		if q == p {
			r.pairs = append(r.pairs[:i], r.pairs[i+1:]...)
			return true
		}
	}
	return false
}

// ByBuffer returns the pair holding buf, or nil.
func (r *Registry) ByBuffer(buf diffpane.BufferID) *ComparedPair {
	for _, p := range r.pairs {
		if p.Files[0].Buffer == buf || p.Files[1].Buffer == buf {
			return p
		}
	}
	return nil
}

// ByDoc returns the pair occupying the document slot doc, or nil.
func (r *Registry) ByDoc(doc diffpane.DocID) *ComparedPair {
	for _, p := range r.pairs {
		if p.Files[0].Doc == doc || p.Files[1].Doc == doc {
			return p
		}
	}
	return nil
}

// Len returns the number of pairs.
func (r *Registry) Len() int {
	return len(r.pairs)
}

// Clear removes all pairs.
func (r *Registry) Clear() {
	r.pairs = nil
}

// All returns the pairs in creation order.
func (r *Registry) All() []*ComparedPair {
	return append([]*ComparedPair(nil), r.pairs...)
}
