package grouping

import (
	"fmt"
	"math/rand"
	"slices"
	"testing"

	"github.com/bityantriki/autoconc/internal/concurrency"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKey(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		id          string
		wantFile    string
		wantPackage string
	}{
		"root file":         {id: "a.py::t1", wantFile: "a.py", wantPackage: "."},
		"nested file":       {id: "tests/unit/test_a.py::test_x", wantFile: "tests/unit/test_a.py", wantPackage: "tests/unit"},
		"class qualifier":   {id: "tests/test_b.py::TestB::test_y", wantFile: "tests/test_b.py", wantPackage: "tests"},
		"params with slash": {id: "tests/test_c.py::test_z[a/b::c]", wantFile: "tests/test_c.py", wantPackage: "tests"},
		"no qualifier":      {id: "pkg/test_d.py", wantFile: "pkg/test_d.py", wantPackage: "pkg"},
		"absolute root":     {id: "/test_e.py::t", wantFile: "/test_e.py", wantPackage: "."},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.wantFile, Key(tt.id, concurrency.GroupingFile))
			assert.Equal(t, tt.wantPackage, Key(tt.id, concurrency.GroupingPackage))
		})
	}
}

func TestGroup(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		ids        []string
		mode       concurrency.Grouping
		want       []string
		wantGroups int
	}{
		"by file": {
			ids:        []string{"a.py::t1", "b.py::t1", "a.py::t2"},
			mode:       concurrency.GroupingFile,
			want:       []string{"a.py::t1", "a.py::t2", "b.py::t1"},
			wantGroups: 2,
		},
		"by package": {
			ids: []string{
				"x/a.py::t1", "y/b.py::t1", "c.py::t1", "x/d.py::t1", "y/b.py::t2", "e.py::t1",
			},
			mode: concurrency.GroupingPackage,
			want: []string{
				"x/a.py::t1", "x/d.py::t1", "y/b.py::t1", "y/b.py::t2", "c.py::t1", "e.py::t1",
			},
			wantGroups: 3,
		},
		"already grouped": {
			ids:        []string{"a.py::t1", "a.py::t2", "b.py::t1"},
			mode:       concurrency.GroupingFile,
			want:       []string{"a.py::t1", "a.py::t2", "b.py::t1"},
			wantGroups: 2,
		},
		"unsupported mode groups by file": {
			ids:        []string{"x/a.py::t1", "x/b.py::t1", "x/a.py::t2"},
			mode:       concurrency.Grouping("module"),
			want:       []string{"x/a.py::t1", "x/a.py::t2", "x/b.py::t1"},
			wantGroups: 2,
		},
		"empty": {
			ids:        nil,
			mode:       concurrency.GroupingFile,
			want:       []string{},
			wantGroups: 0,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			res := Group(tt.ids, tt.mode)
			assert.Equal(t, tt.want, res.Items)
			assert.Equal(t, tt.wantGroups, res.Groups)
		})
	}
}

// TestGroup_PermutationAndStability checks that grouping only reorders and
// keeps each group's relative order, on random inputs.
func TestGroup_PermutationAndStability(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(42))
	dirs := []string{"", "a/", "a/b/", "c/"}
	files := []string{"test_1.py", "test_2.py", "test_3.py"}

	for round := 0; round < 50; round++ {
		ids := make([]string, rng.Intn(40))
		for i := range ids {
			ids[i] = fmt.Sprintf("%s%s::t%d", dirs[rng.Intn(len(dirs))], files[rng.Intn(len(files))], i)
		}

		for _, mode := range []concurrency.Grouping{concurrency.GroupingFile, concurrency.GroupingPackage} {
			res := Group(ids, mode)

			gotSorted := slices.Clone(res.Items)
			wantSorted := slices.Clone(ids)
			slices.Sort(gotSorted)
			slices.Sort(wantSorted)
			require.Equal(t, wantSorted, gotSorted, "output must be a permutation")

			keys := map[string]bool{}
			for _, id := range ids {
				keys[Key(id, mode)] = true
			}
			assert.Equal(t, len(keys), res.Groups)

			for key := range keys {
				assert.Equal(t, restrict(ids, key, mode), restrict(res.Items, key, mode), "group %q keeps input order", key)
			}
			assert.Equal(t, res.Groups, countRuns(res.Items, mode), "each group is contiguous")
		}
	}
}

func restrict(ids []string, key string, mode concurrency.Grouping) []string {
	var out []string
	for _, id := range ids {
		if Key(id, mode) == key {
			out = append(out, id)
		}
	}
	return out
}

func countRuns(ids []string, mode concurrency.Grouping) int {
	runs := 0
	for i, id := range ids {
		if i == 0 || Key(ids[i-1], mode) != Key(id, mode) {
			runs++
		}
	}
	return runs
}

func TestPartition_Generic(t *testing.T) {
	t.Parallel()

	type item struct {
		name  string
		owner string
	}
	items := []item{{"1", "b"}, {"2", "a"}, {"3", "b"}, {"4", "c"}, {"5", "a"}}

	got := Partition(items, func(i item) string { return i.owner })
	assert.Equal(t, [][]item{
		{{"1", "b"}, {"3", "b"}},
		{{"2", "a"}, {"5", "a"}},
		{{"4", "c"}},
	}, got)
}

func TestActive(t *testing.T) {
	t.Parallel()

	threadFile := &concurrency.Decision{Workers: 2, Strategy: concurrency.Threading, Grouping: concurrency.GroupingFile}

	tests := map[string]struct {
		decision *concurrency.Decision
		n        int
		want     bool
	}{
		"threading with grouping": {decision: threadFile, n: 2, want: true},
		"no decision":             {decision: nil, n: 5, want: false},
		"single item":             {decision: threadFile, n: 1, want: false},
		"multiprocessing": {
			decision: &concurrency.Decision{Workers: 2, Strategy: concurrency.Multiprocessing, Grouping: concurrency.GroupingFile},
			n:        5,
		},
		"no grouping": {
			decision: &concurrency.Decision{Workers: 2, Strategy: concurrency.Threading},
			n:        5,
		},
		"no workers": {
			decision: &concurrency.Decision{Strategy: concurrency.Threading, Grouping: concurrency.GroupingFile},
			n:        5,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Active(tt.decision, tt.n))
		})
	}
}

type lines []string

func (l *lines) Infof(format string, args ...any) { *l = append(*l, fmt.Sprintf(format, args...)) }
func (l *lines) Warnf(format string, args ...any) {
	*l = append(*l, "warn: "+fmt.Sprintf(format, args...))
}

func TestApply(t *testing.T) {
	t.Parallel()

	ids := []string{"x/a.py::t1", "y/b.py::t1", "x/a.py::t2", "x/c.py::t1"}

	t.Run("groups and reports", func(t *testing.T) {
		t.Parallel()

		var out lines
		d := &concurrency.Decision{Workers: 3, Strategy: concurrency.Threading, Grouping: concurrency.GroupingPackage}
		got := Apply(d, slices.Clone(ids), &out)

		assert.Equal(t, []string{"x/a.py::t1", "x/a.py::t2", "x/c.py::t1", "y/b.py::t1"}, got)
		assert.Equal(t, lines{
			"Reordered 4 tests into 2 package groups for threading strategy",
			"Grouped tests will be scheduled across 3 threads",
		}, out)
	})

	t.Run("inactive returns input", func(t *testing.T) {
		t.Parallel()

		var out lines
		d := &concurrency.Decision{Workers: 3, Strategy: concurrency.Multiprocessing, Grouping: concurrency.GroupingFile}
		got := Apply(d, ids, &out)

		assert.Equal(t, ids, got)
		assert.Empty(t, out)
	})

	t.Run("nil notifier", func(t *testing.T) {
		t.Parallel()

		d := &concurrency.Decision{Workers: 3, Strategy: concurrency.Threading, Grouping: concurrency.GroupingFile}
		assert.NotPanics(t, func() { Apply(d, ids, nil) })
	})
}
