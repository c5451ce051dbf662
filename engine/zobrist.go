package engine

// zobristTable holds one random key per (cell, colour). Seeded with a fixed
// constant so hashes are stable across runs.
var zobristTable = buildZobristTable()

func buildZobristTable() [BoardSize * BoardSize * 2]uint64 {
	var table [BoardSize * BoardSize * 2]uint64
	rng := splitmix64{state: uint64(0x9e3779b97f4a7c15) ^ uint64(BoardSize)}
	for i := range table {
		table[i] = rng.next()
	}
	return table
}

func zobristStone(x, y int, cell Cell) uint64 {
	idx := index(x, y) * 2
	if cell == CellWhite {
		idx++
	}
	return zobristTable[idx]
}

// ComputeHash hashes a board from scratch.
func ComputeHash(board *Board) uint64 {
	var hash uint64
	for y := 0; y < BoardSize; y++ {
		for x := 0; x < BoardSize; x++ {
			cell := board.At(x, y)
			if cell == CellEmpty {
				continue
			}
			hash ^= zobristStone(x, y, cell)
		}
	}
	return hash
}

type splitmix64 struct {
	state uint64
}

func (s *splitmix64) next() uint64 {
	s.state += 0x9e3779b97f4a7c15
	z := s.state
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}
