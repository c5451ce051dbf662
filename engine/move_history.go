package engine

// HistoryEntry is one recorded stone: where it went and who placed it.
type HistoryEntry struct {
	Move   Move        `json:"move"`
	Player PlayerColor `json:"player"`
	IsAi   bool        `json:"is_ai"`
}

// MoveHistory is the ordered record of placed stones. Entries are only ever
// appended, or taken back from the tail.
type MoveHistory struct {
	entries []HistoryEntry
}

func (h *MoveHistory) Clear() {
	h.entries = nil
}

func (h *MoveHistory) Push(entry HistoryEntry) {
	h.entries = append(h.entries, entry)
}

// Pop removes and returns the most recent entry.
func (h *MoveHistory) Pop() (HistoryEntry, bool) {
	if len(h.entries) == 0 {
		return HistoryEntry{}, false
	}
	last := h.entries[len(h.entries)-1]
	h.entries = h.entries[:len(h.entries)-1]
	return last, true
}

// Last returns the most recent entry without removing it.
func (h *MoveHistory) Last() (HistoryEntry, bool) {
	if len(h.entries) == 0 {
		return HistoryEntry{}, false
	}
	return h.entries[len(h.entries)-1], true
}

// removeLatestAt drops the most recent entry for the given cell.
func (h *MoveHistory) removeLatestAt(move Move) bool {
	for i := len(h.entries) - 1; i >= 0; i-- {
		if h.entries[i].Move.Equals(move) {
			h.entries = append(h.entries[:i], h.entries[i+1:]...)
			return true
		}
	}
	return false
}

func (h *MoveHistory) Size() int {
	return len(h.entries)
}

func (h *MoveHistory) At(i int) HistoryEntry {
	return h.entries[i]
}

func (h *MoveHistory) All() []HistoryEntry {
	return append([]HistoryEntry(nil), h.entries...)
}
