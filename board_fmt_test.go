package main

import (
	"encoding/json"
	"strings"

	. "gopkg.in/check.v1"
)

type FmtSuite struct{}

var _ = Suite(&FmtSuite{})

func (s *FmtSuite) TestParseOrder(c *C) {
	o, err := parseOrder("07a3")
	c.Assert(err, IsNil)
	c.Assert(o, Equals, order{ID: 7, Dest: square{0, 2}})
	o, err = parseOrder("31H8")
	c.Assert(err, IsNil)
	c.Assert(o, Equals, order{ID: 31, Dest: square{7, 7}})
	c.Assert(o.String(), Equals, "31h8")
}

func (s *FmtSuite) TestParseOrderInvalid(c *C) {
	for token, message := range map[string]string{
		"7a3":   "invalid move format 3 7a3",
		"07a3x": "invalid move format 5 07a3x",
		"x7a3":  "invalid piece id x7",
		"07i3":  "invalid file i",
		"07a9":  "invalid rank 9",
		"07a0":  "invalid rank 0",
	} {
		_, err := parseOrder(token)
		c.Assert(err, ErrorMatches, message, Commentf(token))
	}
	_, err := parseOrder("")
	c.Assert(err, NotNil)
}

func (s *FmtSuite) TestSquareString(c *C) {
	c.Assert(square{0, 0}.String(), Equals, "a1")
	c.Assert(square{7, 7}.String(), Equals, "h8")
	buffer, err := json.Marshal(square{4, 3})
	c.Assert(err, IsNil)
	c.Assert(string(buffer), Equals, `"e4"`)
}

func (s *FmtSuite) TestPlayString(c *C) {
	board := newBoard()
	c.Assert(board.movePiece(2, white, square{2, 2}), IsNil)
	c.Assert(board.movePiece(20, black, square{3, 1}), IsNil)
	c.Assert(board.plays[0].String(), Equals, "♞02b1c3")
	c.Assert(board.plays[1].String(), Equals, "♕20d8xd2")
	buffer, err := json.Marshal(board.plays[1])
	c.Assert(err, IsNil)
	c.Assert(string(buffer), Equals, `"♕20d8xd2"`)
}

func (s *FmtSuite) TestRender(c *C) {
	lines := strings.Split(newBoard().String(), "\n")
	c.Assert(lines, HasLen, 10)
	c.Assert(lines[0], Equals, "8 ♖ 17 ♘ 18 ♗ 19 ♕ 20 ♔ 21 ♗ 22 ♘ 23 ♖ 24 ")
	c.Assert(lines[1], Equals, "7 ♙ 25 ♙ 26 ♙ 27 ♙ 28 ♙ 29 ♙ 30 ♙ 31 ♙ 32 ")
	c.Assert(lines[2], Equals, "6 "+strings.Repeat(" ", 40))
	c.Assert(lines[7], Equals, "1 ♜ 01 ♞ 02 ♝ 03 ♛ 04 ♚ 05 ♝ 06 ♞ 07 ♜ 08 ")
	c.Assert(lines[8], Equals, "   a    b    c    d    e    f    g    h")
	c.Assert(lines[9], Equals, "")
}

func (s *FmtSuite) TestGridValue(c *C) {
	value, err := grid{}.Value()
	c.Assert(err, IsNil)
	c.Assert(value, Equals, strings.Repeat("00", 64))
	value, err = newBoard().grid.Value()
	c.Assert(err, IsNil)
	c.Assert(value, Equals, "0102030405060708090a0b0c0d0e0f10"+strings.Repeat("00", 32)+"191a1b1c1d1e1f201112131415161718")
}

func (s *FmtSuite) TestGridScan(c *C) {
	original := newBoard().grid
	value, err := original.Value()
	c.Assert(err, IsNil)
	var scanned grid
	c.Assert(scanned.Scan(value), IsNil)
	c.Assert(scanned, Equals, original)
	c.Assert(scanned.Scan("0102"), ErrorMatches, "grid is not length 64: 2")
	c.Assert(scanned.Scan("zz"), NotNil)
	c.Assert(scanned.Scan(42), ErrorMatches, "invalid format scaning 42")
}
