// Package core implements the deterministic simulation for blockfall:
// board physics, piece rotation with wall kicks, the piece generator,
// the tick-driven state machine, and the hash-chained scoring ledger.
// It has no rendering or platform dependencies so that every run is
// bit-reproducible from a seed.
package core

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Board dimensions. These never change; only cell contents mutate.
const (
	BoardWidth  = 10
	BoardHeight = 20
)

// Cell holds either empty (0) or an opaque color token.
type Cell uint8

// CellEmpty marks an unoccupied board cell.
const CellEmpty Cell = 0

// Board is the fixed 10x20 playfield grid.
type Board struct {
	cells [][]Cell
}

// NewBoard creates an empty board.
func NewBoard() *Board {
	cells := make([][]Cell, BoardHeight)
	for y := range cells {
		cells[y] = make([]Cell, BoardWidth)
	}
	return &Board{cells: cells}
}

// At returns the cell at (x, y). Out-of-bounds reads return empty.
func (b *Board) At(x, y int) Cell {
	if x < 0 || x >= BoardWidth || y < 0 || y >= BoardHeight {
		return CellEmpty
	}
	return b.cells[y][x]
}

// set writes a cell. Out-of-bounds writes are silently dropped, which
// lets pieces lock partly above the visible area.
func (b *Board) set(x, y int, c Cell) {
	if x < 0 || x >= BoardWidth || y < 0 || y >= BoardHeight {
		return
	}
	b.cells[y][x] = c
}

// Clone returns a deep copy of the board.
func (b *Board) Clone() *Board {
	clone := NewBoard()
	for y := range b.cells {
		copy(clone.cells[y], b.cells[y])
	}
	return clone
}

// IsEmpty reports whether no cell is filled.
func (b *Board) IsEmpty() bool {
	return b.FilledCount() == 0
}

// FilledCount returns the number of occupied cells.
func (b *Board) FilledCount() int {
	count := 0
	for y := range b.cells {
		for x := range b.cells[y] {
			if b.cells[y][x] != CellEmpty {
				count++
			}
		}
	}
	return count
}

// Fingerprint returns a short hex digest of the cell contents, used for
// replay snapshots and shadow memoization keys.
func (b *Board) Fingerprint() string {
	h := sha256.New()
	row := make([]byte, BoardWidth)
	for y := range b.cells {
		for x := range b.cells[y] {
			row[x] = byte(b.cells[y][x])
		}
		h.Write(row)
	}
	return hex.EncodeToString(h.Sum(nil))[:16]
}

// CheckIntegrity verifies the board's structural invariants: exactly
// BoardHeight rows of exactly BoardWidth cells. A failure is fatal if
// ever observed; it indicates memory corruption or a programming bug.
func (b *Board) CheckIntegrity() error {
	if len(b.cells) != BoardHeight {
		return fmt.Errorf("%w: %d rows, want %d", ErrInvalidBoardState, len(b.cells), BoardHeight)
	}
	for y, row := range b.cells {
		if len(row) != BoardWidth {
			return fmt.Errorf("%w: row %d has width %d, want %d", ErrInvalidBoardState, y, len(row), BoardWidth)
		}
	}
	return nil
}
