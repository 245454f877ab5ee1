package engine

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func validTestPack() *LevelPack {
	return &LevelPack{
		Name: "test",
		Levels: []Level{
			{
				ID:   "l1",
				Name: "One",
				Layout: []string{
					"#####",
					"#@BT#",
					"#####",
				},
			},
		},
		Messages: PackMessages{
			Welcome:       "hello",
			LevelComplete: "done in %d",
			MoveStatus:    "moves: %d",
		},
	}
}

func TestValidateLevelPack(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*LevelPack)
		wantErr string
	}{
		{"valid", func(p *LevelPack) {}, ""},
		{"nil name", func(p *LevelPack) { p.Name = "" }, "name is required"},
		{"no levels", func(p *LevelPack) { p.Levels = nil }, "at least one level"},
		{
			"duplicate ids",
			func(p *LevelPack) { p.Levels = append(p.Levels, p.Levels[0]) },
			"duplicate level id",
		},
		{
			"missing level id",
			func(p *LevelPack) { p.Levels[0].ID = "" },
			"id is required",
		},
		{
			"legend mismatch",
			func(p *LevelPack) { p.Legend = map[string]string{"#": "brick"} },
			`legend["#"]`,
		},
		{
			"legend extra keys allowed",
			func(p *LevelPack) { p.Legend = map[string]string{"#": "wall", "~": "water"} },
			"",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pack := validTestPack()
			tt.mutate(pack)
			err := ValidateLevelPack(pack)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("expected valid pack, got error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("expected error containing %q, got nil", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not contain %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestValidateLevel(t *testing.T) {
	tests := []struct {
		name    string
		layout  []string
		wantErr string
	}{
		{
			"valid",
			[]string{"#####", "#@BT#", "#####"},
			"",
		},
		{
			"player on goal counts as goal",
			[]string{"#####", "#PBT#", "#  B#", "#####"},
			"",
		},
		{
			"too few rows",
			[]string{"###", "###"},
			"rows",
		},
		{
			"ragged rows",
			[]string{"#####", "#@BT##", "#####"},
			"match row 1",
		},
		{
			"unknown tile",
			[]string{"#####", "#@BZ#", "#####"},
			"invalid tile code",
		},
		{
			"no player",
			[]string{"#####", "# BT#", "#####"},
			"exactly one player",
		},
		{
			"two players",
			[]string{"#####", "#@BT#", "#@  #", "#####"},
			"exactly one player",
		},
		{
			"no goals",
			[]string{"#####", "#@B #", "#####"},
			"at least one unfilled goal",
		},
		{
			"not enough boxes",
			[]string{"#####", "#@BT#", "# TT#", "#####"},
			"loose boxes",
		},
		{
			"filled goal needs no box",
			[]string{"#####", "#@BT#", "# X #", "#####"},
			"",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			level := &Level{ID: "l", Name: "L", Layout: tt.layout}
			err := ValidateLevel(level)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("expected valid level, got error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("expected error containing %q, got nil", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not contain %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestDefaultPackIsValid(t *testing.T) {
	pack := DefaultPack()
	if err := ValidateLevelPack(pack); err != nil {
		t.Fatalf("built-in pack failed validation: %v", err)
	}
	if len(pack.Levels) < 3 {
		t.Errorf("expected at least 3 built-in levels, got %d", len(pack.Levels))
	}
}

func TestLoadLevelPack(t *testing.T) {
	dir := t.TempDir()

	t.Run("round trip", func(t *testing.T) {
		path := filepath.Join(dir, "classic.json")
		data, err := json.Marshal(DefaultPack())
		if err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, data, 0644); err != nil {
			t.Fatal(err)
		}

		pack, err := LoadLevelPack(path)
		if err != nil {
			t.Fatalf("LoadLevelPack failed: %v", err)
		}
		if pack.Name != "classic" {
			t.Errorf("expected pack name classic, got %q", pack.Name)
		}
		if len(pack.Levels) != 3 {
			t.Errorf("expected 3 levels, got %d", len(pack.Levels))
		}
	})

	t.Run("missing file", func(t *testing.T) {
		if _, err := LoadLevelPack(filepath.Join(dir, "nope.json")); err == nil {
			t.Error("expected error for missing file")
		}
	})

	t.Run("malformed json", func(t *testing.T) {
		path := filepath.Join(dir, "bad.json")
		if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
			t.Fatal(err)
		}
		if _, err := LoadLevelPack(path); err == nil {
			t.Error("expected parse error")
		}
	})

	t.Run("invalid pack", func(t *testing.T) {
		path := filepath.Join(dir, "invalid.json")
		if err := os.WriteFile(path, []byte(`{"name":"x","levels":[]}`), 0644); err != nil {
			t.Fatal(err)
		}
		if _, err := LoadLevelPack(path); err == nil {
			t.Error("expected validation error for empty level list")
		}
	})
}

func TestInitGameStateFromLevel(t *testing.T) {
	pack := DefaultPack()

	state, err := InitGameStateFromLevel(pack, 1)
	if err != nil {
		t.Fatalf("InitGameStateFromLevel failed: %v", err)
	}
	if state.LevelIndex != 1 {
		t.Errorf("expected level index 1, got %d", state.LevelIndex)
	}
	if state.LevelID != pack.Levels[1].ID {
		t.Errorf("expected level id %q, got %q", pack.Levels[1].ID, state.LevelID)
	}
	if state.MoveCount != 0 || state.Completed {
		t.Error("fresh state must start with zero moves and not completed")
	}
	if state.Message != pack.Messages.Welcome {
		t.Errorf("expected welcome message, got %q", state.Message)
	}
	if _, found := LocatePlayer(state.Grid); !found {
		t.Error("decoded grid has no player")
	}

	// The level template must stay pristine when the state mutates.
	state.Grid[0][0].Type = Floor
	if pack.Levels[1].Layout[0][0] != '#' {
		t.Error("mutating a game state leaked into the level template")
	}

	if _, err := InitGameStateFromLevel(pack, len(pack.Levels)); err == nil {
		t.Error("expected out-of-range error")
	}
	if _, err := InitGameStateFromLevel(pack, -1); err == nil {
		t.Error("expected out-of-range error for negative index")
	}
}

func TestPackFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"classic", "classic.json"},
		{"classic.json", "classic.json"},
		{"my-pack", "my-pack.json"},
	}
	for _, tt := range tests {
		if got := PackFilename(tt.in); got != tt.want {
			t.Errorf("PackFilename(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
