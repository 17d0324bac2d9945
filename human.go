package main

import (
	"bufio"
	"fmt"
	"io"

	"github.com/apex/log"
)

type tokenReader interface {
	readToken() (string, error)
}

type lineReader struct {
	scanner *bufio.Scanner
}

func newLineReader(r io.Reader) *lineReader {
	scanner := bufio.NewScanner(r)
	scanner.Split(bufio.ScanWords)
	return &lineReader{scanner: scanner}
}

func (r *lineReader) readToken() (string, error) {
	if !r.scanner.Scan() {
		if err := r.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return r.scanner.Text(), nil
}

// tokenQueue feeds a human controller from the HTTP API. Closing it ends
// the game at the next read.
type tokenQueue chan string

func (q tokenQueue) readToken() (string, error) {
	token, ok := <-q
	if !ok {
		return "", io.EOF
	}
	return token, nil
}

type human struct {
	pending

	input tokenReader
	out   io.Writer
}

func newHuman(s side, input tokenReader, out io.Writer) *human {
	return &human{pending: pending{color: s}, input: input, out: out}
}

func (h *human) prompt() string {
	if h.color == black {
		return "♔  Black: "
	}
	return "♚ White: "
}

func (h *human) decide(board *Board) error {
	for {
		if err := board.render(h.out); err != nil {
			return err
		}
		if _, err := io.WriteString(h.out, h.prompt()); err != nil {
			return err
		}
		token, err := h.input.readToken()
		if err != nil {
			return err
		}
		o, err := parseOrder(token)
		if err != nil {
			log.WithError(err).WithField("token", token).Warn("invalid move")
			fmt.Fprintln(h.out, err)
			continue
		}
		h.set(o.ID, o.Dest)
		return nil
	}
}
