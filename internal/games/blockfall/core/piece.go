package core

import "fmt"

// Kind identifies one of the eleven piece kinds: the seven classic
// tetrominoes plus four unlockable specials.
type Kind int

const (
	KindI Kind = iota
	KindO
	KindT
	KindS
	KindZ
	KindJ
	KindL
	KindPlus   // special: 3x3 plus sign
	KindU      // special: U shape
	KindCorner // special: 2x2 corner
	KindFloat  // rare levitating single cell
)

// KindCount is the total number of piece kinds.
const KindCount = 11

// String returns the piece kind's display name.
func (k Kind) String() string {
	switch k {
	case KindI:
		return "I"
	case KindO:
		return "O"
	case KindT:
		return "T"
	case KindS:
		return "S"
	case KindZ:
		return "Z"
	case KindJ:
		return "J"
	case KindL:
		return "L"
	case KindPlus:
		return "PLUS"
	case KindU:
		return "U"
	case KindCorner:
		return "CORNER"
	case KindFloat:
		return "FLOAT"
	default:
		return "UNKNOWN"
	}
}

// baseShapes holds each kind's rotation-0 shape matrix.
var baseShapes = map[Kind][][]int{
	KindI: {
		{1, 1, 1, 1},
	},
	KindO: {
		{1, 1},
		{1, 1},
	},
	KindT: {
		{0, 1, 0},
		{1, 1, 1},
	},
	KindS: {
		{0, 1, 1},
		{1, 1, 0},
	},
	KindZ: {
		{1, 1, 0},
		{0, 1, 1},
	},
	KindJ: {
		{1, 0, 0},
		{1, 1, 1},
	},
	KindL: {
		{0, 0, 1},
		{1, 1, 1},
	},
	KindPlus: {
		{0, 1, 0},
		{1, 1, 1},
		{0, 1, 0},
	},
	KindU: {
		{1, 0, 1},
		{1, 1, 1},
	},
	KindCorner: {
		{1, 0},
		{1, 1},
	},
	KindFloat: {
		{1},
	},
}

// Piece is a falling block: a kind, its current rotation and shape matrix,
// and its anchor position on the board (top-left of the shape matrix).
// Exclusively referenced by a State as current, next, or hold; never aliased.
type Piece struct {
	Kind     Kind
	Rotation int     // 0-3
	Shape    [][]int // current rotation's shape matrix
	X, Y     int     // anchor grid position; Y may be negative above the board
	Color    Cell    // opaque color token written into board cells on placement
	Rises    int     // accumulated upward moves (FLOAT only)
	Gen      uint64  // generation id, assigned at spawn and hold-swap
}

// NewPiece creates a piece of the given kind at its spawn position.
// Returns ErrUnknownPieceType for kinds absent from the shape table.
func NewPiece(kind Kind, gen uint64) (*Piece, error) {
	base, ok := baseShapes[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownPieceType, int(kind))
	}

	p := &Piece{
		Kind:  kind,
		Shape: copyShape(base),
		Color: Cell(kind) + 1,
		Gen:   gen,
	}
	p.ResetToSpawn()
	return p, nil
}

// MustPiece is NewPiece for kinds known at compile time; it panics on
// unknown kinds. Used by tests and the generator, which only draws from
// the shape table.
func MustPiece(kind Kind, gen uint64) *Piece {
	p, err := NewPiece(kind, gen)
	if err != nil {
		panic(err)
	}
	return p
}

// ResetToSpawn moves the piece to its spawn pose: rotation 0, horizontally
// centered, bottom row of the shape on the top board row.
func (p *Piece) ResetToSpawn() {
	if p.Rotation != 0 {
		p.Shape = copyShape(baseShapes[p.Kind])
		p.Rotation = 0
	}
	p.X = (BoardWidth - len(p.Shape[0])) / 2
	p.Y = 1 - len(p.Shape)
	p.Rises = 0
}

// Width returns the current shape matrix width.
func (p *Piece) Width() int {
	return len(p.Shape[0])
}

// Height returns the current shape matrix height.
func (p *Piece) Height() int {
	return len(p.Shape)
}

// Clone returns a deep copy of the piece.
func (p *Piece) Clone() *Piece {
	clone := *p
	clone.Shape = copyShape(p.Shape)
	return &clone
}

// Rotated returns a copy of the piece rotated 90 degrees in the given
// direction (+1 clockwise, -1 counter-clockwise), with the rotation index
// advanced mod 4. The anchor position is unchanged.
func (p *Piece) Rotated(dir int) *Piece {
	rows := len(p.Shape)
	cols := len(p.Shape[0])

	rotated := make([][]int, cols)
	for i := range rotated {
		rotated[i] = make([]int, rows)
	}

	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			if dir > 0 {
				rotated[c][rows-1-r] = p.Shape[r][c]
			} else {
				rotated[cols-1-c][r] = p.Shape[r][c]
			}
		}
	}

	clone := *p
	clone.Shape = rotated
	clone.Rotation = ((p.Rotation+dir)%4 + 4) % 4
	return &clone
}

func copyShape(shape [][]int) [][]int {
	out := make([][]int, len(shape))
	for i := range shape {
		out[i] = make([]int, len(shape[i]))
		copy(out[i], shape[i])
	}
	return out
}
