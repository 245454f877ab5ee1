package engine

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// requiredLegend maps each tile code to the name a pack's legend must use.
var requiredLegend = map[string]string{
	"#": "wall",
	" ": "floor",
	"@": "player",
	"P": "player_on_goal",
	"B": "box",
	"X": "box_on_goal",
	"T": "goal",
}

// ValidateLevelPack validates a level pack for correctness and playability
func ValidateLevelPack(pack *LevelPack) error {
	if pack == nil {
		return fmt.Errorf("pack validation: pack is nil")
	}
	if pack.Name == "" {
		return fmt.Errorf("pack validation: name is required")
	}
	if len(pack.Levels) == 0 {
		return fmt.Errorf("pack validation: at least one level is required")
	}

	if pack.Legend != nil {
		for key, expectedValue := range requiredLegend {
			if value, ok := pack.Legend[key]; ok && value != expectedValue {
				return fmt.Errorf("pack validation: legend[%q] must be %q, got %q", key, expectedValue, value)
			}
		}
	}

	seen := make(map[string]bool, len(pack.Levels))
	for i, level := range pack.Levels {
		if level.ID == "" {
			return fmt.Errorf("pack validation: level %d: id is required", i+1)
		}
		if seen[level.ID] {
			return fmt.Errorf("pack validation: duplicate level id %q", level.ID)
		}
		seen[level.ID] = true

		if err := ValidateLevel(&pack.Levels[i]); err != nil {
			return fmt.Errorf("pack validation: level %q: %w", level.ID, err)
		}
	}

	return nil
}

// ValidateLevel checks a single level layout: rectangular shape, known
// tile codes, exactly one player, at least one unfilled goal, and enough
// loose boxes to fill every unfilled goal.
func ValidateLevel(level *Level) error {
	rows := len(level.Layout)
	if rows < MinGridSize || rows > MaxGridSize {
		return fmt.Errorf("layout must have between %d and %d rows, got %d", MinGridSize, MaxGridSize, rows)
	}

	cols := len(level.Layout[0])
	if cols < MinGridSize || cols > MaxGridSize {
		return fmt.Errorf("rows must have between %d and %d columns, got %d", MinGridSize, MaxGridSize, cols)
	}

	players := 0
	goals := 0
	looseBoxes := 0
	for i, row := range level.Layout {
		if len(row) != cols {
			return fmt.Errorf("row %d must have %d characters to match row 1, got %d", i+1, cols, len(row))
		}
		for j := 0; j < len(row); j++ {
			t, err := decodeTile(row[j])
			if err != nil {
				return fmt.Errorf("row %d, col %d: %w", i+1, j+1, err)
			}
			switch t {
			case PlayerOnFloor, PlayerOnGoal:
				players++
			case Goal:
				goals++
			case BoxOnFloor:
				looseBoxes++
			}
			if t == PlayerOnGoal {
				goals++
			}
		}
	}

	if players != 1 {
		return fmt.Errorf("layout must contain exactly one player cell, got %d", players)
	}
	if goals == 0 {
		return fmt.Errorf("layout must contain at least one unfilled goal cell")
	}
	if looseBoxes < goals {
		return fmt.Errorf("layout has %d unfilled goals but only %d loose boxes", goals, looseBoxes)
	}

	return nil
}

// LoadLevelPack loads and validates a level pack from a JSON file
func LoadLevelPack(filename string) (*LevelPack, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	var pack LevelPack
	if err := json.Unmarshal(data, &pack); err != nil {
		return nil, fmt.Errorf("failed to parse pack file %q: %w", filepath.Base(filename), err)
	}

	if err := ValidateLevelPack(&pack); err != nil {
		return nil, err
	}

	return &pack, nil
}

// InitGameStateFromLevel decodes the indexed level of a pack into a fresh
// session state. The level template is never mutated; the state owns a
// deep-copied grid.
func InitGameStateFromLevel(pack *LevelPack, index int) (*GameState, error) {
	if index < 0 || index >= len(pack.Levels) {
		return nil, fmt.Errorf("level index %d out of range [0,%d)", index, len(pack.Levels))
	}

	level := pack.Levels[index]
	grid, err := DecodeLayout(level.Layout)
	if err != nil {
		return nil, fmt.Errorf("level %q: %w", level.ID, err)
	}

	welcome := pack.Messages.Welcome
	if welcome == "" {
		welcome = fmt.Sprintf("Level %s: push every box onto a goal.", level.Name)
	}

	return &GameState{
		Grid:              grid,
		LevelIndex:        index,
		LevelID:           level.ID,
		LevelName:         level.Name,
		PackName:          pack.Name,
		MoveCount:         0,
		Completed:         false,
		Message:           welcome,
		MoveHistory:       []MoveHistoryEntry{},
		TotalMoves:        0,
		CurrentMoves:      []MoveHistoryEntry{},
		CurrentMovesCount: 0,
	}, nil
}

// DefaultPack returns the built-in level pack used when no packs
// directory is available.
func DefaultPack() *LevelPack {
	return &LevelPack{
		Name:        "classic",
		Description: "Built-in starter levels",
		Legend:      legendCopy(),
		Levels: []Level{
			{
				ID:   "warehouse-1",
				Name: "First Steps",
				Layout: []string{
					"#######",
					"#     #",
					"# @B T#",
					"#     #",
					"#######",
				},
			},
			{
				ID:   "warehouse-2",
				Name: "Two Crates",
				Layout: []string{
					"########",
					"#  T   #",
					"# #B# ##",
					"# @ B T#",
					"#   #  #",
					"########",
				},
			},
			{
				ID:   "warehouse-3",
				Name: "Tight Corner",
				Layout: []string{
					"#########",
					"##  #   #",
					"#  BB @ #",
					"# #T  # #",
					"#  T# B #",
					"##  T   #",
					"#########",
				},
			},
		},
		Messages: PackMessages{
			Welcome:       "Welcome! Push every box (B) onto a goal (T).",
			LevelComplete: "Level complete in %d moves!",
			CantMove:      "Can't move there",
			BoxBlocked:    "The box is blocked",
			MoveStatus:    "Moves: %d",
		},
	}
}

func legendCopy() map[string]string {
	legend := make(map[string]string, len(requiredLegend))
	for k, v := range requiredLegend {
		legend[k] = v
	}
	return legend
}

// PackFilename normalizes a pack name into its on-disk filename.
func PackFilename(name string) string {
	if !strings.HasSuffix(name, ".json") {
		return name + ".json"
	}
	return name
}
