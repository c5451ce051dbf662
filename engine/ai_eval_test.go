package engine

import (
	"math"
	"testing"
)

func TestDirectionalRunScores(t *testing.T) {
	board := boardWith(map[Move]Cell{
		{X: 4, Y: 7}: CellBlack,
		{X: 5, Y: 7}: CellBlack,
		{X: 6, Y: 7}: CellBlack,
	})
	if got := EvaluateDirectionalRun(board, 7, 7, 1, 0, PlayerBlack); got != scoreOpenFour {
		t.Fatalf("open three extension: got %d want %d", got, scoreOpenFour)
	}
	board.Set(3, 7, CellWhite)
	if got := EvaluateDirectionalRun(board, 7, 7, 1, 0, PlayerBlack); got != scoreClosedFour {
		t.Fatalf("capped three extension: got %d want %d", got, scoreClosedFour)
	}
	board.Set(8, 7, CellBlack)
	if got := EvaluateDirectionalRun(board, 7, 7, 1, 0, PlayerBlack); got != scoreFive {
		t.Fatalf("four stones around the cell: got %d want %d", got, scoreFive)
	}
	if got := EvaluateDirectionalRun(board, 7, 7, 0, 1, PlayerBlack); got != 1 {
		t.Fatalf("empty axis: got %d want 1", got)
	}
}

func TestDirectionalRunToleratesOneGapPerSide(t *testing.T) {
	board := boardWith(map[Move]Cell{
		{X: 5, Y: 7}: CellBlack,
		{X: 9, Y: 7}: CellBlack,
	})
	// One gap on each side: both stones are reached.
	if got := EvaluateDirectionalRun(board, 7, 7, 1, 0, PlayerBlack); got != scoreOpenThree {
		t.Fatalf("gapped pair: got %d want %d", got, scoreOpenThree)
	}
	board.Set(10, 7, CellBlack)
	board.Remove(9, 7)
	// (8,7) and (9,7) are two gaps, so (10,7) is out of reach.
	if got := EvaluateDirectionalRun(board, 7, 7, 1, 0, PlayerBlack); got != scoreOpenTwo {
		t.Fatalf("second gap should stop the walk: got %d want %d", got, scoreOpenTwo)
	}
}

func TestDirectionalRunEdgeCountsAsBlocked(t *testing.T) {
	board := boardWith(map[Move]Cell{
		{X: 0, Y: 0}: CellWhite,
		{X: 1, Y: 0}: CellWhite,
	})
	if got := EvaluateDirectionalRun(board, 2, 0, 1, 0, PlayerWhite); got != scoreClosedThree {
		t.Fatalf("pair against the edge: got %d want %d", got, scoreClosedThree)
	}
}

func TestEvaluatePositionWeightsDefence(t *testing.T) {
	board := &Board{}
	center := BoardSize / 2
	own := EvaluatePositionFor(board, center, center, PlayerWhite)
	if own != 4+10 {
		t.Fatalf("empty centre for one side: got %f want 14", own)
	}
	general := EvaluatePosition(board, center, center, PlayerWhite)
	if math.Abs(general-(4+4*defenseWeight+10)) > 1e-9 {
		t.Fatalf("empty centre general score: got %f", general)
	}
	if corner := EvaluatePositionFor(board, 0, 0, PlayerWhite); corner >= own {
		t.Fatalf("expected the corner to score below the centre, got %f", corner)
	}
}

func TestEvaluateBoardSign(t *testing.T) {
	white := boardWith(map[Move]Cell{{X: 7, Y: 7}: CellWhite})
	black := boardWith(map[Move]Cell{{X: 7, Y: 7}: CellBlack})
	if EvaluateBoard(white) <= 0 {
		t.Fatalf("white stone should favour white")
	}
	if EvaluateBoard(black) != -EvaluateBoard(white) {
		t.Fatalf("expected mirrored scores, got %f and %f", EvaluateBoard(black), EvaluateBoard(white))
	}
	if EvaluateBoard(&Board{}) != 0 {
		t.Fatalf("empty board should score zero")
	}
}
