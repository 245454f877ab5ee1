// Command analyze prints quick, human-readable heuristics about level pack
// files in the project's levels directory. For each level it summarizes
// dimensions, tile counts, the player's reachable area, corner cells where a
// pushed box would be stuck forever, and Manhattan-distance estimates from
// each box to its nearest goal.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// AnalysisPack is a light struct for reading pack files used by analysis.
type AnalysisPack struct {
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Legend      map[string]string `json:"legend"`
	Levels      []AnalysisLevel   `json:"levels"`
	Messages    map[string]string `json:"messages"`
}

// AnalysisLevel is a single level entry in a pack file.
type AnalysisLevel struct {
	ID     string   `json:"id"`
	Name   string   `json:"name"`
	Layout []string `json:"layout"`
}

// AnalysisPoint denotes a grid coordinate used during analysis output.
type AnalysisPoint struct {
	Row, Col int
}

func main() {
	packs, err := filepath.Glob(filepath.Join("levels", "*.json"))
	if err != nil || len(packs) == 0 {
		fmt.Println("No pack files found under levels/")
		return
	}

	for _, packFile := range packs {
		fmt.Printf("\n=== Analyzing %s ===\n", filepath.Base(packFile))
		analyzePack(packFile)
	}
}

func analyzePack(path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Printf("Error reading file: %v\n", err)
		return
	}

	var pack AnalysisPack
	if err := json.Unmarshal(data, &pack); err != nil {
		fmt.Printf("Error parsing JSON: %v\n", err)
		return
	}

	fmt.Printf("Name: %s\n", pack.Name)
	fmt.Printf("Levels: %d\n", len(pack.Levels))

	for i, level := range pack.Levels {
		fmt.Printf("\n--- Level %d: %s (%s) ---\n", i, level.Name, level.ID)
		analyzeLevel(level.Layout)
	}
}

func analyzeLevel(layout []string) {
	if len(layout) == 0 {
		fmt.Println("Empty layout")
		return
	}

	height := len(layout)
	width := len(layout[0])
	fmt.Printf("Grid: %d rows x %d cols\n", height, width)

	var player AnalysisPoint
	foundPlayer := false
	var boxes []AnalysisPoint
	var goals []AnalysisPoint
	walls, floors, filled := 0, 0, 0

	for row, line := range layout {
		for col, cell := range line {
			switch cell {
			case '@', 'P':
				player = AnalysisPoint{row, col}
				foundPlayer = true
				if cell == 'P' {
					goals = append(goals, AnalysisPoint{row, col})
				}
			case 'B':
				boxes = append(boxes, AnalysisPoint{row, col})
			case 'X':
				filled++
			case 'T':
				goals = append(goals, AnalysisPoint{row, col})
			case '#':
				walls++
			case ' ':
				floors++
			}
		}
	}

	if !foundPlayer {
		fmt.Println("⚠️  WARNING: no player cell found")
		return
	}

	fmt.Printf("Player: (%d, %d)\n", player.Row, player.Col)
	fmt.Printf("Loose boxes: %d | Unfilled goals: %d | Already filled: %d\n",
		len(boxes), len(goals), filled)
	fmt.Printf("Walls: %d | Open floor: %d\n", walls, floors)

	// Reachable area: flood fill from the player treating boxes as passable.
	reachable := floodFill(layout, player)
	open := 0
	for _, line := range layout {
		for _, cell := range line {
			if cell != '#' {
				open++
			}
		}
	}
	fmt.Printf("Reachable cells: %d/%d non-wall\n", len(reachable), open)

	unreachableGoals := 0
	for _, g := range goals {
		if !reachable[g] {
			unreachableGoals++
			fmt.Printf("⚠️  CRITICAL: goal at (%d, %d) is unreachable!\n", g.Row, g.Col)
		}
	}
	unreachableBoxes := 0
	for _, b := range boxes {
		if !reachable[b] {
			unreachableBoxes++
			fmt.Printf("⚠️  CRITICAL: box at (%d, %d) is unreachable!\n", b.Row, b.Col)
		}
	}
	if unreachableGoals == 0 && unreachableBoxes == 0 {
		fmt.Println("✅ All boxes and goals are reachable from the player")
	}

	// Dead corners: non-goal open cells with two perpendicular adjacent walls.
	// A box pushed into one can never leave, so the level becomes unwinnable.
	deadCorners := findDeadCorners(layout)
	if len(deadCorners) > 0 {
		fmt.Printf("Dead corners (box here = unwinnable): %d\n", len(deadCorners))
		for i, p := range deadCorners {
			if i < 5 { // Show first 5
				fmt.Printf("   Dead corner: (%d, %d)\n", p.Row, p.Col)
			}
		}
		if len(deadCorners) > 5 {
			fmt.Printf("   ... and %d more\n", len(deadCorners)-5)
		}
	} else {
		fmt.Println("✅ No dead corners")
	}

	// Push distance floor: Manhattan distance from each box to its nearest
	// goal. A lower bound only; real push counts are higher.
	totalDistance := 0
	for _, b := range boxes {
		minDist := -1
		for _, g := range goals {
			dist := abs(b.Row-g.Row) + abs(b.Col-g.Col)
			if minDist == -1 || dist < minDist {
				minDist = dist
			}
		}
		if minDist > 0 {
			totalDistance += minDist
		}
	}
	fmt.Printf("Minimum total push distance (Manhattan lower bound): %d\n", totalDistance)
}

// floodFill returns every cell reachable from start through non-wall cells
// using 4-directional movement. Boxes count as passable: this measures the
// player's potential area, not the current walkable set.
func floodFill(layout []string, start AnalysisPoint) map[AnalysisPoint]bool {
	height := len(layout)
	visited := map[AnalysisPoint]bool{}
	queue := []AnalysisPoint{start}

	passable := func(p AnalysisPoint) bool {
		if p.Row < 0 || p.Row >= height || p.Col < 0 || p.Col >= len(layout[p.Row]) {
			return false
		}
		return layout[p.Row][p.Col] != '#'
	}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		if visited[current] {
			continue
		}
		visited[current] = true

		neighbors := []AnalysisPoint{
			{current.Row - 1, current.Col},
			{current.Row + 1, current.Col},
			{current.Row, current.Col - 1},
			{current.Row, current.Col + 1},
		}
		for _, n := range neighbors {
			if !visited[n] && passable(n) {
				queue = append(queue, n)
			}
		}
	}

	return visited
}

// findDeadCorners locates open non-goal cells with walls on two
// perpendicular sides
func findDeadCorners(layout []string) []AnalysisPoint {
	height := len(layout)
	var corners []AnalysisPoint

	isWall := func(row, col int) bool {
		if row < 0 || row >= height || col < 0 || col >= len(layout[row]) {
			return true
		}
		return layout[row][col] == '#'
	}

	for row, line := range layout {
		for col, cell := range line {
			// Only plain floor or a loose box can deadlock; goal cells are
			// legitimate box destinations.
			if cell != ' ' && cell != 'B' && cell != '@' {
				continue
			}
			up, down := isWall(row-1, col), isWall(row+1, col)
			left, right := isWall(row, col-1), isWall(row, col+1)
			if (up || down) && (left || right) {
				corners = append(corners, AnalysisPoint{row, col})
			}
		}
	}

	return corners
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
