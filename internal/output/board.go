package output

import (
	"fmt"
	"strings"

	"github.com/lgbarn/duel-chess/internal/chess"
)

// RenderBoard draws the board for a terminal with the seat's pieces at the
// bottom. Uppercase letters are White, lowercase Black.
func RenderBoard(b *chess.Board, seat chess.Colour) string {
	rows, cols := order(seat)

	var sb strings.Builder
	files := "  "
	for _, col := range cols {
		files += " " + string(rune('a'+col))
	}
	sb.WriteString(files + "\n")

	for _, row := range rows {
		rank := chess.BoardSize - row
		fmt.Fprintf(&sb, "%d |", rank)
		for _, col := range cols {
			sb.WriteByte(' ')
			if p := b.Get(row, col); p != nil {
				sb.WriteByte(p.Letter())
			} else {
				sb.WriteByte('.')
			}
		}
		fmt.Fprintf(&sb, " | %d\n", rank)
	}

	sb.WriteString(files + "\n")
	return sb.String()
}

// order returns the row and column iteration order for the seat.
func order(seat chess.Colour) (rows, cols []int) {
	for i := 0; i < chess.BoardSize; i++ {
		if seat == chess.Black {
			rows = append(rows, chess.BoardSize-1-i)
			cols = append(cols, chess.BoardSize-1-i)
		} else {
			rows = append(rows, i)
			cols = append(cols, i)
		}
	}
	return rows, cols
}

// DescribeMove renders a finalized move for the terminal, for example
// "White e2e4" or "Black d8h4 checkmate".
func DescribeMove(m chess.Move) string {
	who := m.Colour.String()
	if m.Remote {
		who += " (peer)"
	}
	s := fmt.Sprintf("%s %s", who, m)
	switch m.Status {
	case chess.Check:
		s += " check"
	case chess.Checkmate:
		s += " checkmate"
	}
	return s
}
