// Command validate provides a small CLI that validates level pack JSON
// files in the ../levels directory. It checks:
//   - JSON structure and required fields
//   - Grid consistency and allowed tile codes (#, space, @, P, B, X, T)
//   - Exactly one player per level
//   - Box/goal balance: enough loose boxes to fill every unfilled goal
//   - Required message keys
//   - Connectivity: all boxes and goals are reachable from the player
//     via non-wall cells (boxes are treated as passable for this analysis)
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Pack mirrors the JSON schema for a level pack.
type Pack struct {
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Legend      map[string]string `json:"legend"`
	Levels      []Level           `json:"levels"`
	Messages    map[string]string `json:"messages"`
}

// Level mirrors a single level entry in a pack file.
type Level struct {
	ID     string   `json:"id"`
	Name   string   `json:"name"`
	Layout []string `json:"layout"`
}

// ValidationResult captures the outcome of validating a single file.
// If Valid is true, Errors contains informational messages; otherwise it
// accumulates the validation errors that were found.
type ValidationResult struct {
	File   string
	Valid  bool
	Errors []string
}

// validatePack loads and validates a single level pack JSON file.
// It performs structural checks, per-level grid validation, message
// presence, and reachability analysis for boxes and goals.
func validatePack(filePath string) ValidationResult {
	result := ValidationResult{
		File:   filepath.Base(filePath),
		Valid:  true,
		Errors: []string{},
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Failed to read file: %v", err))
		return result
	}

	var pack Pack
	if err := json.Unmarshal(data, &pack); err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Invalid JSON: %v", err))
		return result
	}

	if pack.Name == "" {
		result.Valid = false
		result.Errors = append(result.Errors, "Pack name is required")
	}

	if len(pack.Levels) == 0 {
		result.Valid = false
		result.Errors = append(result.Errors, "Pack must contain at least 1 level")
	}

	totalBoxes := 0
	totalGoals := 0
	seenIDs := map[string]bool{}

	for i, level := range pack.Levels {
		prefix := fmt.Sprintf("Level %d (%s)", i+1, level.ID)

		if level.ID == "" {
			result.Valid = false
			result.Errors = append(result.Errors, fmt.Sprintf("Level %d: id is required", i+1))
		} else if seenIDs[level.ID] {
			result.Valid = false
			result.Errors = append(result.Errors, fmt.Sprintf("Duplicate level id %q", level.ID))
		}
		seenIDs[level.ID] = true

		levelResult := validateLayout(level.Layout)
		if !levelResult.Valid {
			result.Valid = false
			for _, e := range levelResult.Errors {
				result.Errors = append(result.Errors, fmt.Sprintf("%s: %s", prefix, e))
			}
			continue
		}

		boxes, goals := countLayout(level.Layout)
		totalBoxes += boxes
		totalGoals += goals

		connectivity := validateConnectivity(level.Layout)
		if !connectivity.Valid {
			result.Valid = false
			for _, e := range connectivity.Errors {
				result.Errors = append(result.Errors, fmt.Sprintf("%s: %s", prefix, e))
			}
		}
	}

	// Validate messages
	requiredMessages := []string{
		"welcome",
		"level_complete",
		"cant_move",
		"box_blocked",
		"move_status",
	}
	for _, msg := range requiredMessages {
		if _, exists := pack.Messages[msg]; !exists {
			result.Valid = false
			result.Errors = append(result.Errors, fmt.Sprintf("Missing required message: %s", msg))
		}
	}

	// Add informational data
	if result.Valid {
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Name: %s", pack.Name))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Levels: %d", len(pack.Levels)))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Loose boxes: %d", totalBoxes))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Unfilled goals: %d", totalGoals))
	}

	return result
}

// validateLayout checks a single layout grid: rectangular shape, allowed
// tile codes, exactly one player, and box/goal balance.
func validateLayout(layout []string) ValidationResult {
	result := ValidationResult{
		Valid:  true,
		Errors: []string{},
	}

	if len(layout) == 0 {
		result.Valid = false
		result.Errors = append(result.Errors, "Layout is empty")
		return result
	}

	gridWidth := -1
	playerCount := 0
	validChars := map[rune]bool{
		'#': true, // wall
		' ': true, // floor
		'@': true, // player on floor
		'P': true, // player on goal
		'B': true, // box on floor
		'X': true, // box on goal
		'T': true, // goal
	}

	for i, row := range layout {
		if gridWidth == -1 {
			gridWidth = len(row)
		} else if len(row) != gridWidth {
			result.Valid = false
			result.Errors = append(result.Errors, fmt.Sprintf("Inconsistent grid width at row %d: expected %d, got %d", i+1, gridWidth, len(row)))
		}

		for j, char := range row {
			if !validChars[char] {
				result.Valid = false
				result.Errors = append(result.Errors, fmt.Sprintf("Invalid tile '%c' at position [%d,%d]", char, i+1, j+1))
			}
			if char == '@' || char == 'P' {
				playerCount++
			}
		}
	}

	if playerCount != 1 {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Must have exactly 1 player (@ or P) cell, got %d", playerCount))
	}

	boxes, goals := countLayout(layout)
	if goals == 0 {
		result.Valid = false
		result.Errors = append(result.Errors, "Must have at least 1 unfilled goal (T or P)")
	}
	if boxes < goals {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("%d unfilled goal(s) but only %d loose box(es)", goals, boxes))
	}

	return result
}

// countLayout counts loose boxes and unfilled goals. A box already on a
// goal (X) contributes to neither side of the balance; a player standing
// on a goal (P) leaves that goal unfilled.
func countLayout(layout []string) (boxes, goals int) {
	for _, row := range layout {
		for _, char := range row {
			switch char {
			case 'B':
				boxes++
			case 'T', 'P':
				goals++
			}
		}
	}
	return boxes, goals
}

// validateConnectivity ensures all boxes and unfilled goals are reachable
// from the player using 4-directional movement over non-wall cells. Boxes
// are treated as passable here: this is a coarse playability filter, not a
// solver. It reports anything the player can never touch.
func validateConnectivity(layout []string) ValidationResult {
	result := ValidationResult{
		Valid:  true,
		Errors: []string{},
	}

	if len(layout) == 0 {
		result.Valid = false
		result.Errors = append(result.Errors, "Cannot validate connectivity: empty layout")
		return result
	}

	height := len(layout)
	width := len(layout[0])

	var player []int
	var boxes [][]int
	var goals [][]int

	for y := 0; y < height; y++ {
		for x := 0; x < width && x < len(layout[y]); x++ {
			switch layout[y][x] {
			case '@', 'P':
				player = []int{x, y}
			case 'B', 'X':
				boxes = append(boxes, []int{x, y})
			case 'T':
				goals = append(goals, []int{x, y})
			}
		}
	}

	if player == nil {
		result.Valid = false
		result.Errors = append(result.Errors, "No player position found for connectivity test")
		return result
	}

	// Flood fill from the player to find all reachable cells
	visited := make(map[string]bool)
	queue := [][]int{player}

	isPassable := func(x, y int) bool {
		if x < 0 || y < 0 || y >= height || x >= width || x >= len(layout[y]) {
			return false
		}
		return layout[y][x] != '#'
	}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		x, y := current[0], current[1]
		key := fmt.Sprintf("%d,%d", x, y)

		if visited[key] {
			continue
		}
		visited[key] = true

		directions := [][]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}
		for _, dir := range directions {
			nx, ny := x+dir[0], y+dir[1]
			nkey := fmt.Sprintf("%d,%d", nx, ny)

			if !visited[nkey] && isPassable(nx, ny) {
				queue = append(queue, []int{nx, ny})
			}
		}
	}

	unreachable := []string{}
	for _, box := range boxes {
		key := fmt.Sprintf("%d,%d", box[0], box[1])
		if !visited[key] {
			unreachable = append(unreachable, fmt.Sprintf("Box at (%d,%d)", box[1], box[0]))
		}
	}
	for _, goal := range goals {
		key := fmt.Sprintf("%d,%d", goal[0], goal[1])
		if !visited[key] {
			unreachable = append(unreachable, fmt.Sprintf("Goal at (%d,%d)", goal[1], goal[0]))
		}
	}

	if len(unreachable) > 0 {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Connectivity failure: %d cell(s) unreachable from player", len(unreachable)))
		for _, cell := range unreachable {
			result.Errors = append(result.Errors, fmt.Sprintf("Unreachable: %s", cell))
		}
	} else {
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Connectivity: all %d box(es) and %d goal(s) reachable", len(boxes), len(goals)))
	}

	return result
}

// main scans ../levels for *.json files and validates each one, printing a
// concise report and exiting with non-zero status if any are invalid.
func main() {
	levelsDir := "../levels"
	files, err := filepath.Glob(filepath.Join(levelsDir, "*.json"))
	if err != nil {
		fmt.Printf("Error finding level pack files: %v\n", err)
		os.Exit(1)
	}

	allValid := true
	for _, file := range files {
		result := validatePack(file)

		fmt.Printf("\n%s %s\n", strings.Repeat("=", 20), result.File)

		if result.Valid {
			fmt.Println("✅ VALID")
			for _, info := range result.Errors {
				fmt.Println("  " + info)
			}
		} else {
			fmt.Println("❌ INVALID")
			allValid = false
			for _, err := range result.Errors {
				if !strings.HasPrefix(err, "✓") {
					fmt.Println("  ❌ " + err)
				}
			}
		}
	}

	fmt.Printf("\n%s\n", strings.Repeat("=", 40))
	if allValid {
		fmt.Println("✅ All level packs are valid!")
	} else {
		fmt.Println("❌ Some level packs have errors")
		os.Exit(1)
	}
}
