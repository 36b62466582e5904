package checks

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Smith-Tools/smith-validation/pkg/model"
	"github.com/Smith-Tools/smith-validation/pkg/rules"
	"github.com/Smith-Tools/smith-validation/pkg/semantic"
)

func buildRule(t *testing.T, id string, overrides map[string]rules.Override) rules.Rule {
	t.Helper()
	reg := rules.NewRegistry()
	Register(reg)
	for _, r := range reg.Build(overrides) {
		if r.Meta().ID == id {
			return r
		}
	}
	t.Fatalf("rule %s not built", id)
	return nil
}

func validate(t *testing.T, r rules.Rule, src string) []model.Violation {
	t.Helper()
	sctx, err := semantic.Parse("sample.go", []byte(src))
	require.NoError(t, err)
	vs, err := r.Validate(context.Background(), sctx)
	require.NoError(t, err)
	return vs
}

func structWithProperties(n int) string {
	var b strings.Builder
	b.WriteString("package sample\n\ntype Wide struct {\n")
	for i := 0; i < n; i++ {
		fmt.Fprintf(&b, "\tField%02d int\n", i)
	}
	b.WriteString("}\n")
	return b.String()
}

func TestTypeSizeOverThreshold(t *testing.T) {
	r := buildRule(t, "TYPE-SIZE", nil)
	vs := validate(t, r, structWithProperties(16))
	require.Len(t, vs, 1)
	assert.Equal(t, model.SeverityMedium, vs[0].Severity)
	assert.Equal(t, 16, vs[0].Metadata["count"])
	assert.Equal(t, 15, vs[0].Metadata["threshold"])
	assert.Equal(t, 1, vs[0].Metadata["excess"])
}

func TestTypeSizeAtThreshold(t *testing.T) {
	r := buildRule(t, "TYPE-SIZE", nil)
	assert.Empty(t, validate(t, r, structWithProperties(15)))
}

func TestTypeSizeThresholdOverride(t *testing.T) {
	r := buildRule(t, "TYPE-SIZE", map[string]rules.Override{
		"type-size": {Thresholds: map[string]int{"maxProperties": 16}},
	})
	assert.Empty(t, validate(t, r, structWithProperties(16)))
}

func TestEnumSize(t *testing.T) {
	var b strings.Builder
	b.WriteString("package sample\n\ntype Code int\n\nconst (\n")
	for i := 0; i < 21; i++ {
		fmt.Fprintf(&b, "\tCode%02d Code = %d\n", i, i)
	}
	b.WriteString(")\n")

	r := buildRule(t, "ENUM-SIZE", nil)
	vs := validate(t, r, b.String())
	require.Len(t, vs, 1)
	assert.Equal(t, 21, vs[0].Metadata["count"])
	assert.Equal(t, 1, vs[0].Metadata["excess"])
}

func TestFunctionLength(t *testing.T) {
	src := `package sample

func long() int {
	a := 1
	b := 2
	c := 3
	return a + b + c
}
`
	r := buildRule(t, "FUNCTION-LENGTH", map[string]rules.Override{
		"function-length": {Thresholds: map[string]int{"maxLines": 3}},
	})
	vs := validate(t, r, src)
	require.Len(t, vs, 1)
	assert.Equal(t, 6, vs[0].Metadata["lines"])
}

func TestErrorDiscarded(t *testing.T) {
	src := `package sample

import "encoding/json"

func run(v any, f func() (int, error)) {
	_ = json.Unmarshal(nil, v)
	n, _ := f()
	m, err := f()
	_ = n
	_, _ = m, err
}
`
	r := buildRule(t, "ERROR-DISCARDED", nil)
	vs := validate(t, r, src)
	// json.Unmarshal and the n, _ := f() assignment; _ = n has no call on
	// the right side so it is not flagged.
	require.Len(t, vs, 2)
	assert.Equal(t, 6, vs[0].Line)
	assert.Equal(t, 7, vs[1].Line)
	assert.NotEmpty(t, vs[0].Snippet)
}

func TestDuplicateCases(t *testing.T) {
	src := `package sample

type counter struct {
	count int
	dirty bool
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
	}
}
`
	r := buildRule(t, "DUPLICATE-CASES", nil)
	vs := validate(t, r, src)
	require.Len(t, vs, 1)
	assert.Equal(t, model.SeverityHigh, vs[0].Severity)
	assert.Equal(t, 1.0, vs[0].Metadata["similarity"])
}

func TestNestedLoops(t *testing.T) {
	src := `package sample

func scan(rows [][]int) int {
	sum := 0
	for _, row := range rows {
		for _, v := range row {
			for v > 0 {
				sum++
				v--
			}
		}
	}
	return sum
}
`
	r := buildRule(t, "NESTED-LOOPS", map[string]rules.Override{
		"nested-loops": {Thresholds: map[string]int{"maxDepth": 2}},
	})
	vs := validate(t, r, src)
	require.Len(t, vs, 1)
	assert.Equal(t, 3, vs[0].Metadata["depth"])
}

func TestRecursionRule(t *testing.T) {
	src := `package sample

func fib(n int) int {
	if n < 2 {
		return n
	}
	return fib(n-1) + fib(n-2)
}

func plain() int { return 1 }
`
	r := buildRule(t, "RECURSION", nil)
	vs := validate(t, r, src)
	require.Len(t, vs, 1)
	assert.Equal(t, model.SeverityInfo, vs[0].Severity)
	assert.Equal(t, "fib", vs[0].Metadata["function"])
	assert.Equal(t, 2, vs[0].Metadata["callSites"])
}

func TestComplexCalculation(t *testing.T) {
	src := `package sample

import "sort"

func order(xs []int) {
	sort.Slice(xs, func(i, j int) bool { return xs[i] < xs[j] })
}
`
	r := buildRule(t, "COMPLEX-CALCULATION", nil)
	vs := validate(t, r, src)
	require.Len(t, vs, 1)
	assert.Equal(t, model.SeverityLow, vs[0].Severity)
	assert.Equal(t, "sort.Slice", vs[0].Metadata["callee"])
}

func TestHighCouplingOverThreshold(t *testing.T) {
	var b strings.Builder
	b.WriteString("package sample\n\nimport (\n")
	for i := 0; i < 20; i++ {
		fmt.Fprintf(&b, "\tm%02d \"example.com/dep%02d\"\n", i, i)
	}
	b.WriteString(")\n")

	r := buildRule(t, "HIGH-COUPLING", nil)
	vs := validate(t, r, b.String())
	require.Len(t, vs, 1)
	assert.Equal(t, model.SeverityHigh, vs[0].Severity)
	assert.Equal(t, 20, vs[0].Metadata["count"])
	assert.Equal(t, 5, vs[0].Metadata["excess"])
}

func TestHighCouplingUnderThreshold(t *testing.T) {
	r := buildRule(t, "HIGH-COUPLING", nil)
	assert.Empty(t, validate(t, r, "package sample\n\nimport \"fmt\"\n\nvar _ = fmt.Sprint\n"))
}

func TestRegisterCatalog(t *testing.T) {
	reg := rules.NewRegistry()
	Register(reg)
	assert.Len(t, reg.Metas(), 11)
}
