package main

import (
	"errors"
	"fmt"
	"math"

	"github.com/apex/log"
	"github.com/montanaflynn/stats"
	"golang.org/x/exp/slices"
)

var (
	errNoMoveSelected   = errors.New("no move selected")
	errNoCandidateMoves = errors.New("no candidate moves")
)

type controller interface {
	side() side
	decide(board *Board) error
	commit(board *Board) error
}

func move(c controller, board *Board) error {
	if err := c.decide(board); err != nil {
		return err
	}
	return c.commit(board)
}

// pending is the decision shared by every controller.
type pending struct {
	color        side
	moveID       pieceID
	moveLocation *square
}

func (p *pending) side() side {
	return p.color
}

func (p *pending) set(id pieceID, loc square) {
	p.moveID = id
	p.moveLocation = &loc
}

func (p *pending) commit(board *Board) error {
	if p.moveID == 0 {
		return fmt.Errorf("%w: cannot move none type piece", errNoMoveSelected)
	}
	if p.moveLocation == nil {
		return fmt.Errorf("%w: cannot move piece to none type location", errNoMoveSelected)
	}
	return board.movePiece(p.moveID, p.color, *p.moveLocation)
}

type historyEntry struct {
	id   pieceID
	dest square
}

type engine struct {
	pending

	lastMoves []historyEntry
	lastScore float64
}

func newEngine(s side) *engine {
	return &engine{pending: pending{color: s}}
}

func (e *engine) trimHistory() {
	if len(e.lastMoves) > historyLen {
		e.lastMoves = slices.Clone(e.lastMoves[len(e.lastMoves)-historyLen:])
	}
}

func (e *engine) decide(board *Board) error {
	pieces := board.pieces[e.color].list()
	candidates := board.candidatesFor(pieces)
	threats := board.movesForSide(e.color.opponent()).destinations()
	e.trimHistory()
	if candidates.len() == 0 {
		return fmt.Errorf("%w: %s", errNoCandidateMoves, e.color)
	}
	scores := make([]float64, 0, candidates.len())
	best := selectBest(candidates.order, func(c candidate) float64 {
		score := e.evaluate(board, pieces, threats, c)
		scores = append(scores, score)
		return score
	})
	if best < 0 {
		return fmt.Errorf("%w: %s", errNoCandidateMoves, e.color)
	}
	choice := candidates.order[best]
	e.set(choice.piece.ID, choice.dest)
	e.lastScore = scores[best]
	logDecision(e.color, choice, scores)
	return nil
}

func (e *engine) commit(board *Board) error {
	if err := e.pending.commit(board); err != nil {
		return err
	}
	e.lastMoves = append(e.lastMoves, historyEntry{e.moveID, *e.moveLocation})
	return nil
}

// playScore is the engine's score for a play it just made, zero otherwise.
func playScore(board *Board, p play) float64 {
	if e, ok := board.controllers[p.Side].(*engine); ok {
		return e.lastScore
	}
	return 0
}

// selectBest returns the index of the first candidate with the greatest score.
func selectBest(candidates []candidate, score func(candidate) float64) int {
	bestScore := math.Inf(-1)
	best := -1
	for i, c := range candidates {
		if s := score(c); s > bestScore {
			bestScore = s
			best = i
		}
	}
	return best
}

func logDecision(s side, choice candidate, scores []float64) {
	data := stats.LoadRawData(scores)
	mean, err := stats.Mean(data)
	if err != nil {
		log.WithError(err).Warn("score mean")
	}
	percentile, err := stats.Percentile(data, 80)
	if err != nil {
		log.WithError(err).Warn("score percentile")
	}
	best, err := stats.Max(data)
	if err != nil {
		log.WithError(err).Warn("score max")
	}
	log.WithFields(log.Fields{
		"side":       s,
		"piece":      choice.piece.ID,
		"kind":       choice.piece.Kind,
		"dest":       choice.dest.String(),
		"candidates": len(scores),
		"best":       best,
		"mean":       mean,
		"p80":        percentile,
	}).Debug("engine decided")
}
