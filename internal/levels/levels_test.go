package levels

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-platformer/internal/entity"
	"github.com/vovakirdan/tui-platformer/internal/grid"
)

func TestBuiltinLevelsBuild(t *testing.T) {
	all, err := Builtin().LoadAll()
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"level1", "level2", "level3"}, []string{all[0].ID, all[1].ID, all[2].ID})

	for _, lvl := range all {
		t.Run(lvl.ID, func(t *testing.T) {
			g, spawns, err := lvl.Build(48)
			require.NoError(t, err)
			assert.Positive(t, g.Rows())
			assert.NotEmpty(t, spawns)

			goals := 0
			for _, sp := range spawns {
				if sp.Kind == entity.KindGoal {
					goals++
				}
			}
			assert.Equal(t, 1, goals, "every built-in level has one goal")
		})
	}
}

func TestLevel1Contents(t *testing.T) {
	lvl, err := Builtin().LoadByID("level1")
	require.NoError(t, err)
	assert.Equal(t, "Tutorial", lvl.Name)
	assert.Equal(t, "builtin/level1.yaml", lvl.FilePath)

	g, spawns, err := lvl.Build(48)
	require.NoError(t, err)
	assert.Equal(t, 13, g.Rows())
	assert.Equal(t, 42, g.Cols())
	assert.Equal(t, grid.Solid, g.At(12, 0))
	assert.Equal(t, grid.Empty, g.At(12, 38), "gap in the bottom floor")

	counts := map[entity.Kind]int{}
	for _, sp := range spawns {
		counts[sp.Kind]++
	}
	assert.Equal(t, 1, counts[entity.KindPlayer])
	assert.Equal(t, 1, counts[entity.KindWalker])
	assert.Equal(t, 6, counts[entity.KindCoin])
	assert.Equal(t, 1, counts[entity.KindSpike])

	player := spawns[0]
	for _, sp := range spawns {
		if sp.Kind == entity.KindPlayer {
			player = sp
		}
	}
	assert.Equal(t, 0.0, player.X)
	assert.Equal(t, 4*48.0, player.Y)
}

func TestBuildGlyphs(t *testing.T) {
	lvl := Level{ID: "t", Rows: []string{
		"",
		"P=~|SDJH",
		"#B O^CF",
		"",
	}}
	g, spawns, err := lvl.Build(10)
	require.NoError(t, err)

	assert.Equal(t, 2, g.Rows(), "blank edge lines are trimmed")
	assert.Equal(t, 8, g.Cols())
	assert.Equal(t, grid.OnePlatform, g.At(0, 1))
	assert.Equal(t, grid.Hazard, g.At(0, 2))
	assert.Equal(t, grid.Solid, g.At(0, 3))
	assert.Equal(t, grid.Empty, g.At(1, 7), "short rows are padded")

	powers := []entity.PowerKind{}
	for _, sp := range spawns {
		if sp.Kind == entity.KindPowerUp {
			powers = append(powers, sp.Power)
		}
	}
	assert.Equal(t, []entity.PowerKind{entity.PowerSpeed, entity.PowerShield, entity.PowerTripleJump, entity.PowerHealth}, powers)
	assert.Equal(t, entity.KindFlyer, spawns[5].Kind)
	assert.Equal(t, 10.0, spawns[5].X)
	assert.Equal(t, 10.0, spawns[5].Y)
}

func TestBuildRejectsBadMaps(t *testing.T) {
	tests := []struct {
		name string
		rows []string
	}{
		{"no player", []string{"...", "###"}},
		{"two players", []string{"P.P", "###"}},
		{"unknown glyph", []string{"P.?", "###"}},
		{"empty map", []string{"", ""}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			lvl := Level{ID: tc.name, Rows: tc.rows}
			_, _, err := lvl.Build(48)
			assert.True(t, errors.Is(err, grid.ErrInvalidLevelGeometry), "got %v", err)
		})
	}
}

func TestLoaderOrderingAndFormats(t *testing.T) {
	dir := t.TempDir()
	write := func(name, body string) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o600))
	}
	write("level10.txt", "P.G\n###\n")
	write("level2.txt", "P..G\n####\n")
	write("level1.yml", "id: level1\nmap: |\n  P.G\n  ###\n")
	write("broken.yaml", "id: [")
	write("notes.md", "ignored")

	l := NewLoader(dir)
	ids := []string{}
	all, err := l.LoadAll()
	require.NoError(t, err)
	for _, lvl := range all {
		ids = append(ids, lvl.ID)
	}
	assert.Equal(t, []string{"level1", "level2", "level10"}, ids)
	assert.Equal(t, "level1", all[0].Name, "name defaults to id")

	lvl, err := l.LoadByID("level10")
	require.NoError(t, err)
	assert.Equal(t, "level10", lvl.ID)

	_, err = l.LoadByID("level99")
	assert.ErrorIs(t, err, ErrLevelNotFound)
}

func TestParseFile(t *testing.T) {
	p := filepath.Join(t.TempDir(), "custom.txt")
	require.NoError(t, os.WriteFile(p, []byte("P.\n##"), 0o600))

	lvl, err := ParseFile(p)
	require.NoError(t, err)
	assert.Equal(t, "custom", lvl.ID)
	assert.Equal(t, p, lvl.FilePath)

	_, err = ParseFile(filepath.Join(t.TempDir(), "x.json"))
	assert.Error(t, err)
}

func TestNumber(t *testing.T) {
	assert.Equal(t, 12, Number("level12"))
	assert.Equal(t, 0, Number("bonus"))
	assert.Equal(t, 3, Number("3"))
}
