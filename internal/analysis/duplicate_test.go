package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Smith-Tools/smith-validation/pkg/semantic"
)

func parseSource(t *testing.T, src string) *semantic.SourceContext {
	t.Helper()
	sctx, err := semantic.Parse("sample.go", []byte(src))
	require.NoError(t, err)
	return sctx
}

const reorderedCasesSource = `package sample

type counter struct {
	count int
	dirty bool
	last  string
}

func (s *counter) apply(op string) {
	switch op {
	case "increment":
		total := s.count + 1
		s.count = total
		s.dirty = true
	case "bump":
		s.dirty = true
		total := s.count + 1
		s.count = total
	case "reset":
		s.count = 0
		s.dirty = false
		s.last = ""
	}
}
`

func TestDetectIgnoresStatementOrder(t *testing.T) {
	groups := NewDuplicateDetector().Detect(parseSource(t, reorderedCasesSource))
	require.Len(t, groups, 1)
	assert.Equal(t, `"increment"`, groups[0].First)
	assert.Equal(t, `"bump"`, groups[0].Second)
	assert.Equal(t, 1.0, groups[0].Similarity)
}

func TestDetectSkipsShortCases(t *testing.T) {
	src := `package sample

func pick(op string) int {
	switch op {
	case "a":
		x := 1
		return x
	case "b":
		x := 1
		return x
	}
	return 0
}
`
	groups := NewDuplicateDetector().Detect(parseSource(t, src))
	assert.Empty(t, groups)
}

func TestDetectStateTransforms(t *testing.T) {
	groups := NewDuplicateDetector().DetectStateTransforms(parseSource(t, reorderedCasesSource))
	require.Len(t, groups, 1)
	assert.Equal(t, 1.0, groups[0].Similarity)
}

func TestDetectAsyncShapes(t *testing.T) {
	src := `package sample

type worker struct {
	loading bool
	pending bool
	err     error
}

func (s *worker) handle(action string) {
	switch action {
	case "refresh":
		go s.fetchUsers()
		s.loading = true
		s.err = nil
	case "reload":
		go s.loadOrders()
		s.loading = true
		s.err = nil
	case "announce":
		go s.sendAlert()
		s.pending = true
		s.err = nil
	}
}

func (s *worker) fetchUsers() {}
func (s *worker) loadOrders() {}
func (s *worker) sendAlert()  {}
`
	groups := NewDuplicateDetector().DetectAsyncShapes(parseSource(t, src))
	require.Len(t, groups, 1)
	assert.Equal(t, AsyncDataFetch, groups[0].Pattern)
	assert.Equal(t, `"refresh"`, groups[0].First)
	assert.Equal(t, `"reload"`, groups[0].Second)
}

func TestClassifyAsync(t *testing.T) {
	assert.Equal(t, AsyncDataFetch, ClassifyAsync("go s.fetchUsers()"))
	assert.Equal(t, AsyncDataSave, ClassifyAsync("go s.persistOrder(o)"))
	assert.Equal(t, AsyncActionSend, ClassifyAsync("go bus.Dispatch(ev)"))
	assert.Equal(t, AsyncGeneric, ClassifyAsync("go s.tick()"))
}

func TestNormalizeLine(t *testing.T) {
	assert.Equal(t, "name := $str", NormalizeLine(`name := "Alice"`))
	assert.Equal(t, "$member += $num", NormalizeLine("s.count += 42"))
	assert.Equal(t, "total := $member + $num", NormalizeLine("  total := a.b.c + 10 "))
	assert.Equal(t, "", NormalizeLine("   "))
}

func TestJaccard(t *testing.T) {
	set := func(items ...string) map[string]struct{} {
		m := map[string]struct{}{}
		for _, it := range items {
			m[it] = struct{}{}
		}
		return m
	}

	a := set("x", "y", "z")
	b := set("y", "z", "w")
	assert.Equal(t, 1.0, Jaccard(a, a))
	assert.Equal(t, 0.0, Jaccard(a, set("p", "q")))
	assert.Equal(t, 1.0, Jaccard(nil, nil))
	assert.Equal(t, 0.5, Jaccard(a, b))
	assert.Equal(t, Jaccard(a, b), Jaccard(b, a))
}
