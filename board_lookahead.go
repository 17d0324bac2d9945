package main

// evaluate scores one candidate; higher is better. Criteria:
//   - safety: a piece landing on a threatened square is discounted
//   - repetition: moving the same piece again is penalised
//   - control: value of every square the side controls once the move is played
func (e *engine) evaluate(board *Board, pieces []*piece, threats map[square]struct{}, c candidate) float64 {
	score := e.safetyScore(board, threats, c)
	score += e.repetitionScore(c.piece.ID)
	score += e.controlScore(board, pieces, c)
	return score
}

func (e *engine) safetyScore(board *Board, threats map[square]struct{}, c candidate) float64 {
	if _, threatened := threats[c.dest]; threatened && occurrences(c.dest, board.pieces[e.color].ids()) > 1 {
		return -c.piece.Value * safetyFactor
	}
	return 0
}

// occurrences counts registry entries equal to loc. Entries are piece ids
// and never equal a square, so the count is always zero and the safety
// penalty never applies.
// TODO: decide whether the guard should count own pieces that also reach loc.
func occurrences(loc square, ids []pieceID) int {
	count := 0
	for _, id := range ids {
		if interface{}(id) == interface{}(loc) {
			count++
		}
	}
	return count
}

func (e *engine) repetitionScore(id pieceID) float64 {
	score := 0.0
	harm := float64(repeatPenalty)
	for _, m := range e.lastMoves {
		if m.id == id {
			score -= harm
			harm *= 2
		}
	}
	return score
}

// controlScore replays the side's move generation with the candidate piece
// relocated in a scratch copy of its pieces. The grid itself is untouched,
// so the piece's origin square still blocks.
func (e *engine) controlScore(board *Board, pieces []*piece, c candidate) float64 {
	scratch := make([]*piece, 0, len(pieces))
	for _, p := range pieces {
		cp := *p
		if p.ID == c.piece.ID {
			cp.Loc = c.dest
		}
		scratch = append(scratch, &cp)
	}
	control := 0.0
	for _, controlled := range board.candidatesFor(scratch).order {
		loc := controlled.dest
		control += squareWeight[loc.Y][loc.X]
		control += controlWeight
		occupant, ok := board.pieceAt(loc)
		if !ok {
			continue
		}
		// An opposing occupant earns the flat bonus only, not its value.
		if occupant.Side == e.color {
			control += occupant.Value + defenseWeight
		} else {
			control += offenseWeight
		}
	}
	return control
}
