package main

type pieceKind uint8

const (
	pawn pieceKind = iota
	rook
	knight
	bishop
	king
	queen
)

// King value is a sentinel so the king is never traded in scoring.
var kindValue = [...]float64{
	pawn:   1,
	rook:   6,
	knight: 3,
	bishop: 3.75,
	king:   1000000000,
	queen:  9,
}

var kindName = [...]string{
	pawn:   "pawn",
	rook:   "rook",
	knight: "knight",
	bishop: "bishop",
	king:   "king",
	queen:  "queen",
}

func (k pieceKind) String() string {
	return kindName[k]
}

var valueToPieceWhite = map[pieceKind]rune{
	bishop: '♝',
	king:   '♚',
	knight: '♞',
	pawn:   '♟',
	queen:  '♛',
	rook:   '♜',
}
var valueToPieceBlack = map[pieceKind]rune{
	bishop: '♗',
	king:   '♔',
	knight: '♘',
	pawn:   '♙',
	queen:  '♕',
	rook:   '♖',
}

var backRank = [8]pieceKind{rook, knight, bishop, queen, king, bishop, knight, rook}

var (
	kingOffsets   = []square{{-1, 1}, {0, 1}, {1, 1}, {1, 0}, {1, -1}, {0, -1}, {-1, -1}, {-1, 0}}
	knightOffsets = []square{{1, 2}, {2, 1}, {2, -1}, {1, -2}, {-1, -2}, {-2, -1}, {-2, 1}, {-1, 2}}
	pawnCaptures  = []square{{-1, 1}, {1, 1}}
	pawnAdvance   = square{0, 1}
	rookRays      = []square{{0, 1}, {1, 0}, {0, -1}, {-1, 0}}
	bishopRays    = []square{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
	queenRays     = append(append([]square{}, bishopRays...), rookRays...)
)

// squareWeight is indexed [y][x].
var squareWeight = [8][8]float64{
	{3, 3, 3, 3, 3, 3, 3, 3},
	{1, 1, 1.65, 1.75, 1.75, 1.65, 1, 1},
	{0.5, 0.5, 1.25, 1.5, 1.5, 1.25, 0.5, 0.5},
	{0, 0, 1.75, 2, 2, 1.75, 0, 0},
	{0, 0, 1.8, 2, 2, 1.8, 0, 0},
	{0, 0, 0.8, 1, 1, 0.8, 0, 0},
	{0, 0, 0, 0, 0, 0, 0, 0},
	{0, 0, 0, 0, 0, 0, 0, 0},
}

const (
	// safetyFactor is 4 because the back rank is worth 24 in control,
	// below that a threatened rook still wants the back rank.
	safetyFactor  = 4
	repeatPenalty = 5
	historyLen    = 3
	controlWeight = 0.5
	defenseWeight = 0.75
	offenseWeight = 0.55
)
