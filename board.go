package main

import (
	"errors"
	"fmt"

	"golang.org/x/exp/slices"
)

var (
	errUnknownPieceID         = errors.New("piece with id does not exist")
	errControllerSlotOccupied = errors.New("cannot override controller")
	errControllersNotAttached = errors.New("both controllers must be attached before running the game")
)

type pieceID uint8

type side uint8

const (
	white side = iota
	black
)

func (s side) String() string {
	if s == black {
		return "Black"
	}
	return "White"
}

func (s side) opponent() side {
	return s ^ 1
}

// sideForRank assigns black to pieces created above the middle of the board.
func sideForRank(y int) side {
	if y > 4 {
		return black
	}
	return white
}

type square struct {
	X, Y int
}

func (s square) add(d square) square {
	return square{s.X + d.X, s.Y + d.Y}
}

type piece struct {
	ID    pieceID
	Kind  pieceKind
	Loc   square
	Side  side
	Value float64
}

// registry keeps pieces in id order so iteration is reproducible.
type registry struct {
	order []pieceID
	byID  map[pieceID]*piece
}

func (r *registry) add(p *piece) {
	if r.byID == nil {
		r.byID = make(map[pieceID]*piece)
	}
	r.order = append(r.order, p.ID)
	r.byID[p.ID] = p
}

func (r registry) get(id pieceID) (*piece, bool) {
	p, ok := r.byID[id]
	return p, ok
}

func (r registry) list() []*piece {
	pieces := make([]*piece, 0, len(r.order))
	for _, id := range r.order {
		pieces = append(pieces, r.byID[id])
	}
	return pieces
}

func (r registry) ids() []pieceID {
	return slices.Clone(r.order)
}

type idAllocator struct {
	index pieceID
}

func (a *idAllocator) incr() pieceID {
	a.index++
	return a.index
}

// grid holds piece ids indexed [y][x]; zero is an empty cell.
type grid [8][8]pieceID

// play is one move applied by movePiece.
type play struct {
	Turn     int
	ID       pieceID
	Kind     pieceKind
	Side     side
	From     square
	Dest     square
	Captured pieceID
}

// Board board.
type Board struct {
	grid        grid
	pieces      [2]registry
	controllers [2]controller
	observers   []func(*Board, play) error
	plays       []play
	running     bool
}

func newEmptyBoard() *Board {
	return &Board{running: true}
}

// newBoard sets up the standard layout. White is hashed first so white
// holds ids 1..16 and black 17..32.
func newBoard() *Board {
	board := newEmptyBoard()
	var ids idAllocator
	for _, rank := range [][2]int{{0, 1}, {7, 6}} {
		for x, kind := range backRank {
			board.place(&ids, kind, square{x, rank[0]})
		}
		for x := 0; x < 8; x++ {
			board.place(&ids, pawn, square{x, rank[1]})
		}
	}
	return board
}

// restoreBoard rebuilds the standard pieces on a stored grid. Ids are
// stable across games so every id on the grid names the same piece kind.
func restoreBoard(g grid) *Board {
	board := newBoard()
	board.grid = g
	for y, row := range g {
		for x, id := range row {
			if id == 0 {
				continue
			}
			if p, ok := board.pieceByID(id); ok {
				p.Loc = square{x, y}
			}
		}
	}
	return board
}

func (board *Board) place(ids *idAllocator, kind pieceKind, loc square) *piece {
	p := &piece{
		ID:    ids.incr(),
		Kind:  kind,
		Loc:   loc,
		Side:  sideForRank(loc.Y),
		Value: kindValue[kind],
	}
	board.pieces[p.Side].add(p)
	board.grid[loc.Y][loc.X] = p.ID
	return p
}

func (board *Board) isValidCoordinate(loc square) bool {
	return 0 <= loc.X && loc.X < 8 && 0 <= loc.Y && loc.Y < 8
}

// isEmpty expects a valid coordinate.
func (board *Board) isEmpty(loc square) bool {
	return board.grid[loc.Y][loc.X] == 0
}

func (board *Board) pieceByID(id pieceID) (*piece, bool) {
	for _, pieces := range board.pieces {
		if p, ok := pieces.get(id); ok {
			return p, true
		}
	}
	return nil, false
}

func (board *Board) pieceAt(loc square) (*piece, bool) {
	id := board.grid[loc.Y][loc.X]
	if id == 0 {
		return nil, false
	}
	return board.pieceByID(id)
}

func (board *Board) colorSide(loc square) (side, bool) {
	p, ok := board.pieceAt(loc)
	if !ok {
		return white, false
	}
	return p.Side, true
}

// movePiece applies the move without any legality check. A captured piece
// stays in its registry; only the grid forgets it.
func (board *Board) movePiece(id pieceID, s side, loc square) error {
	p, ok := board.pieces[s].get(id)
	if !ok {
		return fmt.Errorf("%w: %d (%s)", errUnknownPieceID, id, s)
	}
	from := p.Loc
	captured := board.grid[loc.Y][loc.X]
	if captured == id {
		captured = 0
	}
	board.grid[loc.Y][loc.X] = id
	board.grid[from.Y][from.X] = 0
	p.Loc = loc
	board.plays = append(board.plays, play{
		Turn:     len(board.plays) + 1,
		ID:       id,
		Kind:     p.Kind,
		Side:     s,
		From:     from,
		Dest:     loc,
		Captured: captured,
	})
	return nil
}

func (board *Board) attachController(c controller) error {
	if board.controllers[c.side()] != nil {
		return fmt.Errorf("%w: %s", errControllerSlotOccupied, c.side())
	}
	board.controllers[c.side()] = c
	return nil
}

func (board *Board) observe(fn func(*Board, play) error) {
	board.observers = append(board.observers, fn)
}

// stop ends run after the turn in progress.
func (board *Board) stop() {
	board.running = false
}

func (board *Board) run() error {
	if board.controllers[white] == nil || board.controllers[black] == nil {
		return errControllersNotAttached
	}
	turn := white
	for board.running {
		if err := move(board.controllers[turn], board); err != nil {
			return err
		}
		last := board.plays[len(board.plays)-1]
		for _, fn := range board.observers {
			if err := fn(board, last); err != nil {
				return err
			}
		}
		turn = turn.opponent()
	}
	return nil
}

func stopAfter(turns int) func(*Board, play) error {
	return func(board *Board, p play) error {
		if p.Turn >= turns {
			board.stop()
		}
		return nil
	}
}
