package main

type moveFunc func(board *Board, p *piece) []square

var moveTable = [...]moveFunc{
	pawn:   movesForPawn,
	rook:   movesForRook,
	knight: movesForKnight,
	bishop: movesForBishop,
	king:   movesForKing,
	queen:  movesForQueen,
}

// raycast walks from the piece in one direction, collecting empty squares
// and the first occupied square when it holds an opponent.
func (board *Board) raycast(p *piece, direction square) []square {
	var points []square
	for pos := p.Loc.add(direction); board.isValidCoordinate(pos); pos = pos.add(direction) {
		if occupant, ok := board.colorSide(pos); ok {
			if occupant != p.Side {
				points = append(points, pos)
			}
			break
		}
		points = append(points, pos)
	}
	return points
}

func (board *Board) raycasts(p *piece, directions []square) []square {
	var points []square
	for _, direction := range directions {
		points = append(points, board.raycast(p, direction)...)
	}
	return points
}

func (board *Board) scanByOffsetList(p *piece, offsets []square) []square {
	var candidates []square
	for _, offset := range offsets {
		pos := p.Loc.add(offset)
		if !board.isValidCoordinate(pos) {
			continue
		}
		if occupant, ok := board.colorSide(pos); !ok || occupant != p.Side {
			candidates = append(candidates, pos)
		}
	}
	return candidates
}

// movesForPawn only ever advances toward +y, whichever side owns it.
func movesForPawn(board *Board, p *piece) []square {
	var candidates []square
	for _, offset := range pawnCaptures {
		pos := p.Loc.add(offset)
		if !board.isValidCoordinate(pos) {
			continue
		}
		if occupant, ok := board.colorSide(pos); ok && occupant != p.Side {
			candidates = append(candidates, pos)
		}
	}
	if pos := p.Loc.add(pawnAdvance); board.isValidCoordinate(pos) && board.isEmpty(pos) {
		candidates = append(candidates, pos)
	}
	return candidates
}

func movesForRook(board *Board, p *piece) []square {
	return board.raycasts(p, rookRays)
}

func movesForBishop(board *Board, p *piece) []square {
	return board.raycasts(p, bishopRays)
}

func movesForQueen(board *Board, p *piece) []square {
	return board.raycasts(p, queenRays)
}

func movesForKnight(board *Board, p *piece) []square {
	return board.scanByOffsetList(p, knightOffsets)
}

func movesForKing(board *Board, p *piece) []square {
	return board.scanByOffsetList(p, kingOffsets)
}

func (board *Board) movesForPiece(p *piece) []square {
	return moveTable[p.Kind](board, p)
}

type candidate struct {
	piece *piece
	dest  square
}

type candidateKey struct {
	id   pieceID
	dest square
}

// candidateSet keeps the first occurrence of every (piece, destination)
// pair in generation order.
type candidateSet struct {
	order []candidate
	seen  map[candidateKey]struct{}
}

func (set *candidateSet) add(c candidate) {
	if set.seen == nil {
		set.seen = make(map[candidateKey]struct{})
	}
	key := candidateKey{c.piece.ID, c.dest}
	if _, ok := set.seen[key]; ok {
		return
	}
	set.seen[key] = struct{}{}
	set.order = append(set.order, c)
}

func (set candidateSet) len() int {
	return len(set.order)
}

func (set candidateSet) destinations() map[square]struct{} {
	dests := make(map[square]struct{}, len(set.order))
	for _, c := range set.order {
		dests[c.dest] = struct{}{}
	}
	return dests
}

// candidatesFor enumerates the moves of the given pieces against the
// current grid. The pieces need not be the registered ones.
func (board *Board) candidatesFor(pieces []*piece) candidateSet {
	var set candidateSet
	for _, p := range pieces {
		for _, dest := range board.movesForPiece(p) {
			set.add(candidate{p, dest})
		}
	}
	return set
}

func (board *Board) movesForSide(s side) candidateSet {
	return board.candidatesFor(board.pieces[s].list())
}
