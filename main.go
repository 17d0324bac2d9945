package main

import (
	"context"
	"errors"
	"io"
	"os"
	"os/signal"

	"github.com/apex/log"
	"github.com/apex/log/handlers/cli"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	uuid "github.com/satori/go.uuid"
)

var sigint chan os.Signal

func waitShutdown(e *echo.Echo, idleConnsClosed chan<- interface{}) {
	defer close(idleConnsClosed)

	sigint = make(chan os.Signal, 1)
	signal.Notify(sigint, os.Interrupt)
	defer signal.Stop(sigint)

	<-sigint
	log.Info("received shutdown signal")

	idleError("HTTP server shutdown:", e.Shutdown(context.Background()))
}

func listenAndServe(addr string, games *sessions, idleConnsClosed chan<- interface{}) {
	e := apiHandler(games)
	go waitShutdown(e, idleConnsClosed)

	e.Use(middleware.Logger())

	idleError("HTTP server end:", e.Start(addr))
}

// Open open.
func Open(addr string, games *sessions) {
	idleConnsClosed := make(chan interface{})
	go listenAndServe(addr, games, idleConnsClosed)
	<-idleConnsClosed
}

// playLocal runs one game in the terminal.
func playLocal(cfg config, st *store, in io.Reader, out io.Writer) error {
	board := newBoard()
	input := newLineReader(in)
	for _, color := range []side{white, black} {
		if err := board.attachController(newController(cfg.agents[color], color, input, out)); err != nil {
			return err
		}
	}
	if cfg.turns > 0 {
		board.observe(stopAfter(cfg.turns))
	}
	if st != nil {
		id := uuid.NewV4()
		if err := st.createGame(id, cfg.agents, board.grid); err != nil {
			return err
		}
		board.observe(func(board *Board, p play) error {
			return st.recordPlay(id, board.grid, p, playScore(board, p))
		})
		defer func() {
			idleError("store end game:", st.endGame(id, nil))
		}()
	}
	err := board.run()
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

func main() {
	log.SetHandler(cli.New(os.Stderr))
	cfg, err := loadConfig(os.Args[1:])
	if err != nil {
		log.WithError(err).Fatal("invalid configuration")
	}
	log.SetLevel(cfg.level)

	var st *store
	if cfg.dbname != "" {
		st, err = openStore(cfg.dbname)
		if err != nil {
			log.WithError(err).WithField("dbname", cfg.dbname).Fatal("failed to connect database")
		}
		defer func() {
			idleError("close store:", st.Close())
		}()
	}

	if cfg.addr != "" {
		Open(cfg.addr, newSessions(st))
		return
	}
	if err := playLocal(cfg, st, os.Stdin, os.Stdout); err != nil {
		log.WithError(err).Fatal("game aborted")
	}
}
