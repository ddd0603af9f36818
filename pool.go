package recycler

import "fmt"

// ElementPool hands out physical cells and takes them back.
// The recycler acquires one cell at a time while building its ring and
// returns every cell on reset; it never holds a request open.
type ElementPool interface {
	Acquire() (Cell, error)
	Release(cell Cell)
}

// Pool is a free-list ElementPool over a factory function.
// Released cells are deactivated, detached and reused before new ones are made.
type Pool struct {
	newCell func() Cell
	free    []Cell
	limit   int // 0 = unlimited
	created int
	out     int
}

// PoolOption configures a Pool.
type PoolOption func(*Pool)

// WithPoolLimit caps how many cells the pool will ever create.
func WithPoolLimit(n int) PoolOption {
	return func(p *Pool) { p.limit = n }
}

// NewPool creates a pool. newCell is called when the free list is empty.
func NewPool(newCell func() Cell, opts ...PoolOption) *Pool {
	p := &Pool{newCell: newCell}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// NewBasicPool creates a pool of BasicCells named cell-0, cell-1, ...
func NewBasicPool(opts ...PoolOption) *Pool {
	var p *Pool
	p = NewPool(func() Cell {
		return NewBasicCell(fmt.Sprintf("cell-%d", p.created))
	}, opts...)
	return p
}

// Acquire implements ElementPool.
func (p *Pool) Acquire() (Cell, error) {
	if n := len(p.free); n > 0 {
		c := p.free[n-1]
		p.free = p.free[:n-1]
		p.out++
		c.Transform().SetActive(true)
		return c, nil
	}
	if p.newCell == nil {
		return nil, configError("pool", ErrMissingReference)
	}
	if p.limit > 0 && p.created >= p.limit {
		return nil, fmt.Errorf("acquire after %d cells: %w", p.created, ErrPoolExhausted)
	}
	c := p.newCell()
	if c == nil || c.Transform() == nil {
		return nil, configError("pool", fmt.Errorf("factory returned a cell without transform: %w", ErrMissingReference))
	}
	p.created++
	p.out++
	c.Transform().SetActive(true)
	return c, nil
}

// Release implements ElementPool.
func (p *Pool) Release(cell Cell) {
	if cell == nil {
		return
	}
	t := cell.Transform()
	t.SetActive(false)
	t.SetParent(nil)
	p.free = append(p.free, cell)
	if p.out > 0 {
		p.out--
	}
}

// Outstanding returns the number of cells acquired and not yet released.
func (p *Pool) Outstanding() int { return p.out }

// Created returns how many cells the factory has produced.
func (p *Pool) Created() int { return p.created }

// Free returns the number of idle cells.
func (p *Pool) Free() int { return len(p.free) }
