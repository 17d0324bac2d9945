package main

import (
	"errors"

	"github.com/apex/log"
	"github.com/apex/log/handlers/memory"
	. "gopkg.in/check.v1"
)

type AgentSuite struct{}

var _ = Suite(&AgentSuite{})

func (s *AgentSuite) TestControlScoreEmptyBoard(c *C) {
	board, pieces := setup(placement{rook, square{0, 0}})
	e := newEngine(white)
	score := e.controlScore(board, pieces, candidate{pieces[0], square{0, 1}})
	// 13 squares: file a above a2 and rank 2, the rook's old square blocks.
	c.Assert(score, closeTo, 0.5+9.8+13*controlWeight)
}

func (s *AgentSuite) TestControlScoreOpposingOccupant(c *C) {
	board, pieces := setup(placement{rook, square{0, 0}}, placement{pawn, square{0, 6}})
	e := newEngine(white)
	mine := pieces[:1]
	score := e.controlScore(board, mine, candidate{pieces[0], square{0, 1}})
	c.Assert(score, closeTo, 0.5+9.8+12*controlWeight+offenseWeight)
	threats := board.movesForSide(black).destinations()
	c.Assert(e.evaluate(board, mine, threats, candidate{pieces[0], square{0, 1}}), closeTo, score)
}

func (s *AgentSuite) TestControlScoreLeavesBoardUntouched(c *C) {
	board := newBoard()
	before := board.grid
	e := newEngine(white)
	pieces := board.pieces[white].list()
	e.controlScore(board, pieces, candidate{pieces[1], square{2, 2}})
	c.Assert(board.grid, Equals, before)
	c.Assert(pieces[1].Loc, Equals, square{1, 0})
}

func (s *AgentSuite) TestSafetyGuardNeverFires(c *C) {
	board, pieces := setup(placement{rook, square{0, 0}}, placement{rook, square{7, 5}})
	c.Assert(pieces[1].Side, Equals, black)
	e := newEngine(white)
	threats := board.movesForSide(black).destinations()
	_, threatened := threats[square{0, 5}]
	c.Assert(threatened, Equals, true)
	c.Assert(occurrences(square{0, 5}, board.pieces[white].ids()), Equals, 0)
	c.Assert(e.safetyScore(board, threats, candidate{pieces[0], square{0, 5}}), Equals, 0.0)
}

func (s *AgentSuite) TestRepetitionScore(c *C) {
	e := newEngine(white)
	e.lastMoves = []historyEntry{{1, square{0, 1}}, {1, square{0, 2}}, {1, square{0, 3}}}
	c.Assert(e.repetitionScore(1), Equals, -35.0)
	c.Assert(e.repetitionScore(2), Equals, 0.0)
	e.lastMoves = []historyEntry{{1, square{0, 1}}, {2, square{1, 1}}, {1, square{0, 3}}}
	c.Assert(e.repetitionScore(1), Equals, -15.0)
	c.Assert(e.repetitionScore(2), Equals, -5.0)
}

func (s *AgentSuite) TestSelectBestTieBreak(c *C) {
	board, pieces := setup(placement{rook, square{0, 0}})
	candidates := board.candidatesFor(pieces).order
	c.Assert(selectBest(candidates, func(candidate) float64 { return 1 }), Equals, 0)
	scores := map[square]float64{{0, 2}: 3, {0, 4}: 3, {0, 3}: 2}
	c.Assert(selectBest(candidates, func(c candidate) float64 { return scores[c.dest] }), Equals, 1)
	c.Assert(selectBest(nil, func(candidate) float64 { return 1 }), Equals, -1)
}

func (s *AgentSuite) TestDecidePicksFirstBest(c *C) {
	board := newBoard()
	e := newEngine(white)
	c.Assert(e.decide(board), IsNil)
	pieces := board.pieces[white].list()
	threats := board.movesForSide(black).destinations()
	candidates := board.candidatesFor(pieces).order
	best := selectBest(candidates, func(cand candidate) float64 {
		return e.evaluate(board, pieces, threats, cand)
	})
	c.Assert(e.moveID, Equals, candidates[best].piece.ID)
	c.Assert(*e.moveLocation, Equals, candidates[best].dest)
	c.Assert(e.lastScore, closeTo, e.evaluate(board, pieces, threats, candidates[best]))
}

func (s *AgentSuite) TestCommitRecordsHistory(c *C) {
	board := newBoard()
	e := newEngine(black)
	e.lastMoves = []historyEntry{{17, square{0, 6}}, {18, square{0, 5}}, {25, square{0, 7}}, {26, square{1, 7}}, {27, square{2, 7}}}
	c.Assert(e.decide(board), IsNil)
	c.Assert(e.lastMoves, HasLen, historyLen)
	c.Assert(e.lastMoves[0].id, Equals, pieceID(25))
	c.Assert(move(e, board), IsNil)
	c.Assert(e.lastMoves, HasLen, historyLen+1)
	last := e.lastMoves[len(e.lastMoves)-1]
	c.Assert(last.id, Equals, e.moveID)
	c.Assert(last.dest, Equals, *e.moveLocation)
	c.Assert(board.grid[last.dest.Y][last.dest.X], Equals, last.id)
}

func (s *AgentSuite) TestNoCandidateMoves(c *C) {
	board, _ := setup(placement{rook, square{0, 0}})
	e := newEngine(black)
	err := e.decide(board)
	c.Assert(errors.Is(err, errNoCandidateMoves), Equals, true)
	c.Assert(e.moveLocation, IsNil)
}

func (s *AgentSuite) TestCommitWithoutDecision(c *C) {
	board := newBoard()
	e := newEngine(white)
	c.Assert(errors.Is(e.commit(board), errNoMoveSelected), Equals, true)
	e.moveID = 9
	c.Assert(errors.Is(e.commit(board), errNoMoveSelected), Equals, true)
	c.Assert(e.lastMoves, HasLen, 0)
	c.Assert(board.grid, Equals, newBoard().grid)
}

func (s *AgentSuite) TestDecisionLogged(c *C) {
	logger := log.Log.(*log.Logger)
	handler, level := logger.Handler, logger.Level
	defer func() {
		logger.Handler, logger.Level = handler, level
	}()
	h := memory.New()
	logger.Handler, logger.Level = h, log.DebugLevel

	board := newBoard()
	c.Assert(newEngine(white).decide(board), IsNil)
	var decided *log.Entry
	for _, entry := range h.Entries {
		if entry.Message == "engine decided" {
			decided = entry
		}
	}
	c.Assert(decided, NotNil)
	c.Assert(decided.Fields["candidates"], Equals, 12)
	c.Assert(decided.Fields["side"], Equals, white)
}
