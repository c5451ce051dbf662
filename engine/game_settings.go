package engine

import (
	"fmt"
	"strings"
)

type GameMode int

const (
	ModePvP GameMode = iota
	ModePvE
)

type Difficulty int

const (
	DifficultyEasy Difficulty = iota
	DifficultyMedium
	DifficultyHard
)

// GameSettings is fixed for the lifetime of a session. In pve the human plays
// Black and the AI plays White.
type GameSettings struct {
	Mode       GameMode   `json:"mode"`
	Difficulty Difficulty `json:"difficulty"`
}

func DefaultGameSettings() GameSettings {
	return GameSettings{
		Mode:       ModePvE,
		Difficulty: DifficultyMedium,
	}
}

func (m GameMode) String() string {
	if m == ModePvP {
		return "pvp"
	}
	return "pve"
}

func ParseGameMode(value string) (GameMode, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "pvp":
		return ModePvP, nil
	case "pve", "":
		return ModePvE, nil
	}
	return ModePvE, fmt.Errorf("unknown mode %q", value)
}

func (d Difficulty) String() string {
	switch d {
	case DifficultyEasy:
		return "easy"
	case DifficultyHard:
		return "hard"
	default:
		return "medium"
	}
}

func ParseDifficulty(value string) (Difficulty, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "easy":
		return DifficultyEasy, nil
	case "medium", "":
		return DifficultyMedium, nil
	case "hard":
		return DifficultyHard, nil
	}
	return DifficultyMedium, fmt.Errorf("unknown difficulty %q", value)
}

func (m GameMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *GameMode) UnmarshalText(text []byte) error {
	parsed, err := ParseGameMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

func (d Difficulty) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Difficulty) UnmarshalText(text []byte) error {
	parsed, err := ParseDifficulty(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
