package engine

import "testing"

func boardWith(stones map[Move]Cell) *Board {
	board := &Board{}
	for move, cell := range stones {
		board.Set(move.X, move.Y, cell)
	}
	return board
}

func TestCheckWinAtAllAxes(t *testing.T) {
	axes := [][2]int{{1, 0}, {0, 1}, {1, 1}, {1, -1}}
	for _, axis := range axes {
		board := &Board{}
		startX, startY := 5, 7
		for i := 0; i < 5; i++ {
			board.Set(startX+i*axis[0], startY+i*axis[1], CellWhite)
		}
		for i := 0; i < 5; i++ {
			x := startX + i*axis[0]
			y := startY + i*axis[1]
			if !CheckWinAt(board, x, y, PlayerWhite) {
				t.Fatalf("axis %v: expected win through (%d,%d)", axis, x, y)
			}
			if CheckWinAt(board, x, y, PlayerBlack) {
				t.Fatalf("axis %v: black should not win on white stones", axis)
			}
		}
	}
}

func TestCheckWinAtNeedsFiveContiguous(t *testing.T) {
	board := boardWith(map[Move]Cell{
		{X: 0, Y: 0}: CellBlack,
		{X: 1, Y: 0}: CellBlack,
		{X: 2, Y: 0}: CellBlack,
		{X: 3, Y: 0}: CellBlack,
		{X: 5, Y: 0}: CellBlack,
	})
	if CheckWinAt(board, 3, 0, PlayerBlack) {
		t.Fatalf("four with a gap is not a win")
	}
	board.Set(4, 0, CellWhite)
	if CheckWinAt(board, 3, 0, PlayerBlack) {
		t.Fatalf("a differing stone must stop the run")
	}
	board.Set(4, 0, CellBlack)
	if !CheckWinAt(board, 0, 0, PlayerBlack) {
		t.Fatalf("six in a row counts as a win")
	}
}

func TestCheckWinAtHypotheticalStone(t *testing.T) {
	board := boardWith(map[Move]Cell{
		{X: 10, Y: 14}: CellWhite,
		{X: 11, Y: 14}: CellWhite,
		{X: 12, Y: 14}: CellWhite,
		{X: 13, Y: 14}: CellWhite,
	})
	if !CheckWinAt(board, 14, 14, PlayerWhite) {
		t.Fatalf("expected an empty cell completing five to count")
	}
	if CheckWinAt(board, 15, 14, PlayerWhite) {
		t.Fatalf("out of bounds cell must not win")
	}
}

func TestWinningLineOrdered(t *testing.T) {
	board := &Board{}
	for i := 0; i < 5; i++ {
		board.Set(2+i, 12-i, CellBlack)
	}
	line := WinningLine(board, 4, 10, PlayerBlack)
	if len(line) != 5 {
		t.Fatalf("expected 5 cells, got %v", line)
	}
	for i := 1; i < len(line); i++ {
		if line[i].X != line[i-1].X+1 || line[i].Y != line[i-1].Y-1 {
			t.Fatalf("line not contiguous along the anti-diagonal: %v", line)
		}
	}
	if WinningLine(board, 0, 0, PlayerBlack) != nil {
		t.Fatalf("expected no line through an unrelated cell")
	}
}
