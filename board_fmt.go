package main

import (
	"database/sql/driver"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

func (s square) String() string {
	return fmt.Sprintf("%c%d", 'a'+s.X, s.Y+1)
}

func (s square) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func glyph(kind pieceKind, s side) rune {
	if s == black {
		return valueToPieceBlack[kind]
	}
	return valueToPieceWhite[kind]
}

// order is a parsed player token: two id digits, a file and a rank, "07a3".
type order struct {
	ID   pieceID
	Dest square
}

func (o *order) Scan(state fmt.ScanState, verb rune) error {
	token, err := state.Token(true, nil)
	if err != nil {
		return err
	}
	s := strings.ToLower(string(token))
	if len(s) != 4 {
		return fmt.Errorf("invalid move format %d %s", len(s), s)
	}
	if s[0] < '0' || s[0] > '9' || s[1] < '0' || s[1] > '9' {
		return fmt.Errorf("invalid piece id %s", s[:2])
	}
	if s[2] < 'a' || s[2] > 'h' {
		return fmt.Errorf("invalid file %c", s[2])
	}
	if s[3] < '1' || s[3] > '8' {
		return fmt.Errorf("invalid rank %c", s[3])
	}
	o.ID = pieceID((s[0]-'0')*10 + s[1] - '0')
	o.Dest = square{int(s[2] - 'a'), int(s[3] - '1')}
	return nil
}

func (o order) String() string {
	return fmt.Sprintf("%02d%s", o.ID, o.Dest)
}

func parseOrder(s string) (order, error) {
	var o order
	if _, err := fmt.Sscan(s, &o); err != nil {
		return order{}, err
	}
	return o, nil
}

func (p play) String() string {
	capture := ""
	if p.Captured != 0 {
		capture = "x"
	}
	return fmt.Sprintf("%c%02d%s%s%s", glyph(p.Kind, p.Side), p.ID, p.From, capture, p.Dest)
}

func (p play) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

// render writes rank 8 first, each piece as its glyph and padded id.
func (board *Board) render(w io.Writer) error {
	var b strings.Builder
	for y := 7; y >= 0; y-- {
		fmt.Fprintf(&b, "%d ", y+1)
		for x := 0; x < 8; x++ {
			p, ok := board.pieceAt(square{x, y})
			if !ok {
				b.WriteString("     ")
				continue
			}
			fmt.Fprintf(&b, "%c %02d ", glyph(p.Kind, p.Side), p.ID)
		}
		b.WriteString("\n")
	}
	b.WriteString("   a    b    c    d    e    f    g    h\n")
	_, err := io.WriteString(w, b.String())
	return err
}

func (board *Board) String() string {
	var b strings.Builder
	if err := board.render(&b); err != nil {
		return err.Error()
	}
	return b.String()
}

func (g grid) Value() (driver.Value, error) {
	cells := make([]byte, 0, 64)
	for _, row := range g {
		for _, id := range row {
			cells = append(cells, byte(id))
		}
	}
	return hex.EncodeToString(cells), nil
}

func (g *grid) Scan(cell interface{}) error {
	var src []byte
	switch cell := cell.(type) {
	case string:
		decoded, err := hex.DecodeString(cell)
		if err != nil {
			return err
		}
		src = decoded
	case []byte:
		decoded, err := hex.DecodeString(string(cell))
		if err != nil {
			return err
		}
		src = decoded
	default:
		return fmt.Errorf("invalid format scaning %#v", cell)
	}
	if len(src) != 64 {
		return fmt.Errorf("grid is not length 64: %d", len(src))
	}
	for i, id := range src {
		g[i/8][i%8] = pieceID(id)
	}
	return nil
}
