package grid

import (
	"math/rand"
	"testing"
)

func TestSlideLineMerge(t *testing.T) {
	tests := []struct {
		name     string
		input    []int
		expected []int
		score    int
	}{
		{
			name:     "simple merge",
			input:    []int{2, 2, 0, 0},
			expected: []int{4, 0, 0, 0},
			score:    4,
		},
		{
			name:     "merged tile does not merge again",
			input:    []int{2, 2, 4, 0},
			expected: []int{4, 4, 0, 0},
			score:    4,
		},
		{
			name:     "merge with trailing tile",
			input:    []int{2, 2, 2, 0},
			expected: []int{4, 2, 0, 0},
			score:    4,
		},
		{
			name:     "double merge",
			input:    []int{2, 2, 2, 2},
			expected: []int{4, 4, 0, 0},
			score:    8,
		},
		{
			name:     "two different pairs",
			input:    []int{4, 4, 8, 8},
			expected: []int{8, 16, 0, 0},
			score:    24,
		},
		{
			name:     "no merge possible",
			input:    []int{2, 4, 8, 16},
			expected: []int{2, 4, 8, 16},
			score:    0,
		},
		{
			name:     "slide with multiple gaps",
			input:    []int{2, 0, 0, 2},
			expected: []int{4, 0, 0, 0},
			score:    4,
		},
		{
			name:     "empty row",
			input:    []int{0, 0, 0, 0},
			expected: []int{0, 0, 0, 0},
			score:    0,
		},
		{
			name:     "five wide",
			input:    []int{2, 2, 2, 0, 2},
			expected: []int{4, 4, 0, 0, 0},
			score:    8,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, score := slideLine(tt.input)
			if !equalInts(result, tt.expected) {
				t.Errorf("slideLine(%v) = %v, want %v", tt.input, result, tt.expected)
			}
			if score != tt.score {
				t.Errorf("slideLine(%v) score = %d, want %d", tt.input, score, tt.score)
			}
		})
	}
}

func TestSlideRowExamples(t *testing.T) {
	tests := []struct {
		name  string
		row   []int
		dir   Direction
		want  []int
		score int
	}{
		{"left 2 2 4", []int{2, 2, 4, 0}, Left, []int{4, 4, 0, 0}, 4},
		{"right 2 2 4", []int{2, 2, 4, 0}, Right, []int{0, 0, 4, 4}, 4},
		{"left 2 2 2 2", []int{2, 2, 2, 2}, Left, []int{4, 4, 0, 0}, 8},
		{"right 2 2 2 2", []int{2, 2, 2, 2}, Right, []int{0, 0, 4, 4}, 8},
		{"right 4 2 2 0", []int{4, 2, 2, 0}, Right, []int{0, 0, 4, 4}, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := New(4)
			copy(g[0], tt.row)

			out, score, changed := Slide(g, tt.dir)
			if !equalInts(out[0], tt.want) {
				t.Errorf("row = %v, want %v", out[0], tt.want)
			}
			if score != tt.score {
				t.Errorf("score = %d, want %d", score, tt.score)
			}
			if !changed {
				t.Error("Slide should indicate board changed")
			}
		})
	}
}

func TestSlideLeft(t *testing.T) {
	g := Grid{
		{2, 2, 0, 0},
		{4, 0, 4, 0},
		{2, 2, 2, 2},
		{0, 0, 0, 2},
	}

	expected := Grid{
		{4, 0, 0, 0},
		{8, 0, 0, 0},
		{4, 4, 0, 0},
		{2, 0, 0, 0},
	}

	result, score, changed := Slide(g, Left)

	if !result.Equal(expected) {
		t.Errorf("Slide left: got\n%v\nwant\n%v", result, expected)
	}
	if !changed {
		t.Error("Slide left should indicate board changed")
	}
	if score != 4+8+8 {
		t.Errorf("Slide left score = %d, want %d", score, 20)
	}
}

func TestSlideUp(t *testing.T) {
	g := Grid{
		{2, 4, 2, 0},
		{2, 0, 2, 0},
		{0, 4, 2, 0},
		{0, 0, 2, 2},
	}

	expected := Grid{
		{4, 8, 4, 2},
		{0, 0, 4, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	}

	result, _, changed := Slide(g, Up)

	if !result.Equal(expected) {
		t.Errorf("Slide up: got\n%v\nwant\n%v", result, expected)
	}
	if !changed {
		t.Error("Slide up should indicate board changed")
	}
}

func TestSlideDown(t *testing.T) {
	g := Grid{
		{2, 4, 2, 2},
		{2, 0, 2, 0},
		{0, 4, 2, 0},
		{0, 0, 2, 0},
	}

	expected := Grid{
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 4, 0},
		{4, 8, 4, 2},
	}

	result, _, changed := Slide(g, Down)

	if !result.Equal(expected) {
		t.Errorf("Slide down: got\n%v\nwant\n%v", result, expected)
	}
	if !changed {
		t.Error("Slide down should indicate board changed")
	}
}

func TestSlideDoesNotModifyInput(t *testing.T) {
	g := Grid{
		{2, 2, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 4},
	}
	before := g.Clone()

	Slide(g, Left)

	if !g.Equal(before) {
		t.Errorf("input grid modified: got %v, want %v", g, before)
	}
}

func TestSlideNoChange(t *testing.T) {
	g := Grid{
		{4, 2, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	}

	_, score, changed := Slide(g, Left)
	if changed {
		t.Error("Slide left should not change a left-packed board")
	}
	if score != 0 {
		t.Errorf("score = %d, want 0", score)
	}

	_, _, changed = Slide(g, None)
	if changed {
		t.Error("Slide towards None should never change the board")
	}
}

func TestSlideSecondPassIdempotent(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for i := range 200 {
		g := randomGrid(rng, 4)
		for _, dir := range Directions {
			once, _, _ := Slide(g, dir)
			if HasPossibleMerge(once) {
				// A fresh pass may merge tiles produced by the previous one.
				continue
			}
			twice, score, changed := Slide(once, dir)
			if changed || score != 0 {
				t.Fatalf("case %d %s: second slide changed=%v score=%d\n%v", i, dir, changed, score, once)
			}
			if !twice.Equal(once) {
				t.Fatalf("case %d %s: second slide altered grid", i, dir)
			}
		}
	}
}

func TestSlideSecondPassNeverCompacts(t *testing.T) {
	// [2 2 2 2] -> [4 4 0 0] -> [8 0 0 0]: the second pass only merges.
	g := New(4)
	copy(g[0], []int{2, 2, 2, 2})

	once, _, _ := Slide(g, Left)
	twice, score, changed := Slide(once, Left)

	if !changed || score != 8 {
		t.Fatalf("second slide changed=%v score=%d, want true 8", changed, score)
	}
	if !equalInts(twice[0], []int{8, 0, 0, 0}) {
		t.Errorf("row = %v, want [8 0 0 0]", twice[0])
	}
}

func TestSlidePreservesTileSum(t *testing.T) {
	rng := rand.New(rand.NewSource(11))

	for i := range 200 {
		g := randomGrid(rng, 4)
		for _, dir := range Directions {
			out, _, _ := Slide(g, dir)
			if Sum(out) != Sum(g) {
				t.Fatalf("case %d %s: sum %d -> %d", i, dir, Sum(g), Sum(out))
			}
		}
	}
}

func TestIsTerminal(t *testing.T) {
	tests := []struct {
		name string
		grid Grid
		want bool
	}{
		{
			name: "full without merges",
			grid: Grid{
				{2, 4, 2, 4},
				{4, 2, 4, 2},
				{2, 4, 2, 4},
				{4, 2, 4, 2},
			},
			want: true,
		},
		{
			name: "one empty cell",
			grid: Grid{
				{2, 4, 2, 4},
				{4, 2, 4, 2},
				{2, 4, 2, 4},
				{4, 2, 4, 0},
			},
			want: false,
		},
		{
			name: "horizontal merge",
			grid: Grid{
				{2, 2, 8, 4},
				{4, 8, 4, 2},
				{2, 4, 2, 4},
				{4, 2, 4, 2},
			},
			want: false,
		},
		{
			name: "vertical merge in last column",
			grid: Grid{
				{2, 4, 2, 4},
				{4, 2, 4, 8},
				{2, 4, 2, 8},
				{4, 2, 4, 2},
			},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsTerminal(tt.grid); got != tt.want {
				t.Errorf("IsTerminal() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSpawn(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	g := New(4)

	for i := range 16 {
		if !Spawn(g, rng, DefaultSpawn4Prob) {
			t.Fatalf("Spawn %d returned false on a non-full grid", i)
		}
	}

	if EmptyCount(g) != 0 {
		t.Errorf("EmptyCount = %d after 16 spawns, want 0", EmptyCount(g))
	}
	for _, row := range g {
		for _, v := range row {
			if v != 2 && v != 4 {
				t.Errorf("spawned value %d, want 2 or 4", v)
			}
		}
	}

	if Spawn(g, rng, DefaultSpawn4Prob) {
		t.Error("Spawn should return false on a full grid")
	}
}

func TestSpawnProbability(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	fours := 0
	const trials = 5000

	for range trials {
		g := New(2)
		Spawn(g, rng, DefaultSpawn4Prob)
		if MaxTile(g) == 4 {
			fours++
		}
	}

	ratio := float64(fours) / trials
	if ratio < 0.07 || ratio > 0.13 {
		t.Errorf("4-tile ratio = %.3f, want about 0.1", ratio)
	}
}

func TestStatsHelpers(t *testing.T) {
	g := Grid{
		{2, 0, 0, 128},
		{4, 4, 0, 0},
		{0, 0, 0, 0},
		{8, 0, 0, 2},
	}

	if got := MaxTile(g); got != 128 {
		t.Errorf("MaxTile = %d, want 128", got)
	}
	if got := EmptyCount(g); got != 10 {
		t.Errorf("EmptyCount = %d, want 10", got)
	}
	if got := Corners(g); got != [4]int{2, 128, 8, 2} {
		t.Errorf("Corners = %v", got)
	}

	hist := Histogram(g)
	want := map[int]int{2: 2, 4: 2, 8: 1, 128: 1}
	if len(hist) != len(want) {
		t.Fatalf("Histogram = %v, want %v", hist, want)
	}
	for k, v := range want {
		if hist[k] != v {
			t.Errorf("Histogram[%d] = %d, want %d", k, hist[k], v)
		}
	}

	cells := EmptyCells(g)
	if len(cells) != 10 || cells[0] != (Cell{Row: 0, Col: 1}) {
		t.Errorf("EmptyCells not row-major: %v", cells)
	}
}

func TestAvailableMoves(t *testing.T) {
	g := Grid{
		{2, 4, 2, 4},
		{4, 2, 4, 2},
		{2, 4, 2, 4},
		{4, 2, 4, 0},
	}

	got := AvailableMoves(g)
	want := []Direction{Down, Right}
	if len(got) != len(want) {
		t.Fatalf("AvailableMoves = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("AvailableMoves[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestParseDirection(t *testing.T) {
	tests := map[string]Direction{
		"up":       Up,
		"DOWN":     Down,
		" left ":   Left,
		"right":    Right,
		"":         None,
		"sideways": None,
	}
	for in, want := range tests {
		if got := ParseDirection(in); got != want {
			t.Errorf("ParseDirection(%q) = %s, want %s", in, got, want)
		}
	}
}

func randomGrid(rng *rand.Rand, n int) Grid {
	g := New(n)
	for r := range n {
		for c := range n {
			if rng.Intn(3) == 0 {
				continue
			}
			g[r][c] = 1 << (1 + rng.Intn(4))
		}
	}
	return g
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
