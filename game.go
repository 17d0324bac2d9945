package main

import (
	"errors"
	"io"
	"net/http"
	"sync"

	"github.com/apex/log"
	"github.com/labstack/echo/v4"
	uuid "github.com/satori/go.uuid"
)

var errSessionNotFound = errors.New("game not found")

// gameView is what the API reports for a game, live or stored.
type gameView struct {
	GameID uuid.UUID
	White  string
	Black  string
	ToMove string
	Turns  int
	End    bool
	Error  string
	Board  string
}

// session runs one board on its own goroutine. Everything outside that
// goroutine reads the snapshot fields under mu.
type session struct {
	mu sync.RWMutex

	id      uuid.UUID
	agents  [2]string
	queues  [2]tokenQueue
	board   *Board
	store   *store
	done    chan struct{}
	toMove  side
	plays   []play
	render  string
	end     bool
	stopped bool
	err     error
}

type sessions struct {
	mu    sync.RWMutex
	games map[uuid.UUID]*session
	store *store
}

func newSessions(st *store) *sessions {
	return &sessions{games: make(map[uuid.UUID]*session), store: st}
}

func (m *sessions) create(agents [2]string) (*session, error) {
	for _, agent := range agents {
		if !validAgent(agent) {
			return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid agent "+agent)
		}
	}
	if agents[white] != agentUser && agents[black] != agentUser {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "a user agent is required")
	}
	s := &session{
		id:     uuid.NewV4(),
		agents: agents,
		board:  newBoard(),
		store:  m.store,
		done:   make(chan struct{}),
	}
	for _, color := range []side{white, black} {
		var input tokenReader
		if agents[color] == agentUser {
			s.queues[color] = make(tokenQueue, 1)
			input = s.queues[color]
		}
		if err := s.board.attachController(newController(agents[color], color, input, io.Discard)); err != nil {
			return nil, err
		}
	}
	s.render = s.board.String()
	s.board.observe(s.observe)
	if s.store != nil {
		if err := s.store.createGame(s.id, agents, s.board.grid); err != nil {
			return nil, err
		}
	}

	m.mu.Lock()
	m.games[s.id] = s
	m.mu.Unlock()

	go s.start()
	return s, nil
}

func (m *sessions) get(id uuid.UUID) (*session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.games[id]
	if !ok {
		return nil, errSessionNotFound
	}
	return s, nil
}

func (m *sessions) list() []gameView {
	m.mu.RLock()
	defer m.mu.RUnlock()
	views := make([]gameView, 0, len(m.games))
	for _, s := range m.games {
		views = append(views, s.view())
	}
	return views
}

// stored reports a game that is no longer held in memory.
func (m *sessions) stored(id uuid.UUID) (gameView, []string, error) {
	if m.store == nil {
		return gameView{}, nil, errSessionNotFound
	}
	game, err := m.store.getGame(id)
	if err != nil {
		return gameView{}, nil, err
	}
	moves := make([]string, 0, len(game.Plays))
	for _, p := range game.Plays {
		moves = append(moves, p.Move)
	}
	toMove := white
	if game.Turns%2 == 1 {
		toMove = black
	}
	return gameView{
		GameID: game.GameID,
		White:  game.White,
		Black:  game.Black,
		ToMove: toMove.String(),
		Turns:  game.Turns,
		End:    game.End,
		Error:  game.Error,
		Board:  restoreBoard(game.Board).String(),
	}, moves, nil
}

func (s *session) start() {
	defer close(s.done)
	log.WithField("game", s.id).Info("game started")
	err := s.board.run()
	if errors.Is(err, io.EOF) {
		err = nil
	}
	s.mu.Lock()
	s.end = true
	s.err = err
	s.closeQueues()
	s.mu.Unlock()
	if err != nil {
		log.WithError(err).WithField("game", s.id).Error("game aborted")
	} else {
		log.WithField("game", s.id).Info("game ended")
	}
	if s.store != nil {
		if err := s.store.endGame(s.id, err); err != nil {
			log.WithError(err).WithField("game", s.id).Error("store end game")
		}
	}
}

// observe runs on the game goroutine after every turn.
func (s *session) observe(board *Board, p play) error {
	s.mu.Lock()
	s.plays = append(s.plays, p)
	s.toMove = p.Side.opponent()
	s.render = board.String()
	if s.stopped {
		board.stop()
	}
	s.mu.Unlock()
	if s.store != nil {
		return s.store.recordPlay(s.id, board.grid, p, playScore(board, p))
	}
	return nil
}

func (s *session) closeQueues() {
	for i, q := range s.queues {
		if q != nil {
			close(q)
			s.queues[i] = nil
		}
	}
}

func (s *session) submit(o order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.end || s.stopped {
		return echo.NewHTTPError(http.StatusBadRequest, "game is over")
	}
	q := s.queues[s.toMove]
	if q == nil {
		return echo.NewHTTPError(http.StatusNotAcceptable, "not your turn")
	}
	select {
	case q <- o.String():
		return nil
	default:
		return echo.NewHTTPError(http.StatusNotAcceptable, "move already pending")
	}
}

func (s *session) stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopped = true
	s.closeQueues()
}

func (s *session) view() gameView {
	s.mu.RLock()
	defer s.mu.RUnlock()
	view := gameView{
		GameID: s.id,
		White:  s.agents[white],
		Black:  s.agents[black],
		ToMove: s.toMove.String(),
		Turns:  len(s.plays),
		End:    s.end,
		Board:  s.render,
	}
	if s.err != nil {
		view.Error = s.err.Error()
	}
	return view
}

func (s *session) moves() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	moves := make([]string, 0, len(s.plays))
	for _, p := range s.plays {
		moves = append(moves, p.String())
	}
	return moves
}
