package core

// Pure predicates and transforms over a board+piece pair. Fits is the
// sole authority for all collision decisions elsewhere in the package.

// Offset is a wall-kick displacement tried after a failed bare rotation.
type Offset struct {
	Dx, Dy int
}

// kickOffsets is the shared wall-kick table, indexed by the rotation index
// the piece is leaving. Offsets are tried in listed order. Positive Dy is
// downward. These exact tables are load-bearing: replay determinism
// depends on matching them bit-for-bit.
var kickOffsets = [4][]Offset{
	{{-1, 0}, {1, 0}, {0, -1}, {-1, -1}, {1, -1}},
	{{1, 0}, {-1, 0}, {0, 1}, {1, 1}, {0, -2}},
	{{1, 0}, {-1, 0}, {0, -1}, {1, -1}, {-1, -1}},
	{{-1, 0}, {1, 0}, {0, 1}, {-1, 1}, {0, -2}},
}

// kickOffsetsI is the distinct wall-kick table for the line piece, which
// needs wider displacements.
var kickOffsetsI = [4][]Offset{
	{{-2, 0}, {1, 0}, {-2, 1}, {1, -2}},
	{{-1, 0}, {2, 0}, {-1, -2}, {2, 1}},
	{{2, 0}, {-1, 0}, {2, -1}, {-1, 2}},
	{{1, 0}, {-2, 0}, {1, 2}, {-2, -1}},
}

// Fits reports whether the piece, anchored at (x, y), occupies only legal
// cells: inside the horizontal bounds, above the bottom bound, and not
// overlapping any filled board cell. Rows above the visible board (y < 0)
// are always permitted.
func Fits(b *Board, p *Piece, x, y int) bool {
	for sy := range p.Shape {
		for sx := range p.Shape[sy] {
			if p.Shape[sy][sx] == 0 {
				continue
			}
			cx := x + sx
			cy := y + sy

			if cx < 0 || cx >= BoardWidth {
				return false
			}
			if cy >= BoardHeight {
				return false
			}
			if cy < 0 {
				continue
			}
			if b.At(cx, cy) != CellEmpty {
				return false
			}
		}
	}
	return true
}

// Shadow returns the resting row for the piece at its current column:
// the lowest y at which it still fits. Used for hard drops and for the
// ghost-piece display.
func Shadow(b *Board, p *Piece) int {
	y := p.Y
	for Fits(b, p, p.X, y+1) {
		y++
	}
	return y
}

// TryRotate attempts to rotate the piece in the given direction (+1
// clockwise, -1 counter-clockwise). If the bare rotated position is
// rejected and the piece is not the square kind (which never kicks), the
// rotation-transition-indexed offset table is walked in order and the
// first offset that fits wins. Returns the rotated piece and true on
// success, or the piece unchanged and false if every position fails.
func TryRotate(b *Board, p *Piece, dir int) (*Piece, bool) {
	rotated := p.Rotated(dir)

	if Fits(b, rotated, rotated.X, rotated.Y) {
		return rotated, true
	}

	if p.Kind == KindO {
		return p, false
	}

	table := kickOffsets
	if p.Kind == KindI {
		table = kickOffsetsI
	}

	for _, off := range table[p.Rotation] {
		if Fits(b, rotated, rotated.X+off.Dx, rotated.Y+off.Dy) {
			rotated.X += off.Dx
			rotated.Y += off.Dy
			return rotated, true
		}
	}

	return p, false
}

// Place returns a copy of the board with the piece's color token written
// into every occupied, in-bounds cell. Cells above or outside the board
// are silently dropped.
func Place(b *Board, p *Piece) *Board {
	out := b.Clone()
	for sy := range p.Shape {
		for sx := range p.Shape[sy] {
			if p.Shape[sy][sx] != 0 {
				out.set(p.X+sx, p.Y+sy, p.Color)
			}
		}
	}
	return out
}

// ClearedLines returns the indices of fully filled rows in ascending order.
func ClearedLines(b *Board) []int {
	var rows []int
	for y := 0; y < BoardHeight; y++ {
		full := true
		for x := 0; x < BoardWidth; x++ {
			if b.At(x, y) == CellEmpty {
				full = false
				break
			}
		}
		if full {
			rows = append(rows, y)
		}
	}
	return rows
}

// RemoveLines returns a copy of the board with the named rows removed and
// fresh empty rows prepended at the top until the height is restored.
func RemoveLines(b *Board, rows []int) *Board {
	removed := make(map[int]bool, len(rows))
	for _, y := range rows {
		removed[y] = true
	}

	out := NewBoard()
	dst := BoardHeight - 1
	for y := BoardHeight - 1; y >= 0; y-- {
		if removed[y] {
			continue
		}
		copy(out.cells[dst], b.cells[y])
		dst--
	}
	return out
}

// CanSpawn reports whether the piece fits at its spawn coordinates.
func CanSpawn(b *Board, p *Piece) bool {
	return Fits(b, p, p.X, p.Y)
}

// FilledCorners counts how many of the four diagonal corner cells around
// the piece's center are filled. A corner counts as filled if it is out
// of horizontal bounds, below the board floor, or occupies a non-empty
// board cell. Used by the spin-bonus heuristic for the T piece.
func FilledCorners(b *Board, p *Piece) int {
	cx := p.X + p.Width()/2
	cy := p.Y + p.Height()/2

	count := 0
	for _, off := range [4]Offset{{-1, -1}, {1, -1}, {-1, 1}, {1, 1}} {
		x := cx + off.Dx
		y := cy + off.Dy
		switch {
		case x < 0 || x >= BoardWidth:
			count++
		case y >= BoardHeight:
			count++
		case y >= 0 && b.At(x, y) != CellEmpty:
			count++
		}
	}
	return count
}
