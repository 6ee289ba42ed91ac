package scripted

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/lasso/internal/fixture"
	"github.com/bnema/lasso/internal/geometry"
	"github.com/bnema/lasso/internal/selection"
)

func button(id string) *fixture.Element {
	return fixture.New(fixture.Spec{
		ID: id, Tag: "button", Text: "Go",
		Bounds: geometry.Rect{Left: 0, Top: 0, Right: 80, Bottom: 30},
	})
}

func TestEngine_InvertsBuiltinVerdict(t *testing.T) {
	eng, err := New(context.Background(), "invert.js", `
		function significant(el, builtin) { return !builtin; }
	`)
	require.NoError(t, err)

	got, err := eng.Hook()(button("b"), true)
	require.NoError(t, err)
	assert.False(t, got)

	got, err = eng.Hook()(button("b"), false)
	require.NoError(t, err)
	assert.True(t, got)
}

func TestEngine_ScriptSeesElementFields(t *testing.T) {
	eng, err := New(context.Background(), "fields.js", `
		function significant(el, builtin) {
			return el.tag === "button" && el.width === 80 && el.clickable === false;
		}
	`)
	require.NoError(t, err)

	got, err := eng.Hook()(button("b"), false)
	require.NoError(t, err)
	assert.True(t, got)

	link := fixture.New(fixture.Spec{ID: "l", Tag: "a", Href: "https://example.org", Bounds: geometry.Rect{Right: 80, Bottom: 30}})
	got, err = eng.Hook()(link, true)
	require.NoError(t, err)
	assert.False(t, got)
}

func TestEngine_CoercesReturnToBoolean(t *testing.T) {
	tests := []struct {
		name string
		body string
		want bool
	}{
		{"number one", "return 1;", true},
		{"number zero", "return 0;", false},
		{"string", "return 'yes';", true},
		{"no return", "", false},
		{"null", "return null;", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eng, err := New(context.Background(), "coerce.js",
				"function significant(el, builtin) { "+tt.body+" }")
			require.NoError(t, err)

			got, err := eng.Hook()(button("b"), true)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEngine_MissingEntrypoint(t *testing.T) {
	_, err := New(context.Background(), "empty.js", `var unrelated = 1;`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "significant")
}

func TestEngine_CompileError(t *testing.T) {
	_, err := New(context.Background(), "broken.js", `function significant(`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "compile")
}

func TestEngine_ThrowSurfacesAsError(t *testing.T) {
	eng, err := New(context.Background(), "throw.js", `
		function significant(el, builtin) { throw new Error("boom"); }
	`)
	require.NoError(t, err)

	_, err = eng.Hook()(button("b"), true)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
}

func TestEngine_RunawayScriptInterrupted(t *testing.T) {
	eng, err := New(context.Background(), "spin.js", `
		function significant(el, builtin) { while (true) {} }
	`)
	require.NoError(t, err)

	_, err = eng.Hook()(button("b"), true)
	require.Error(t, err)

	// The runtime stays usable after an interrupt.
	eng2, err := New(context.Background(), "ok.js", `
		function significant(el, builtin) { return builtin; }
	`)
	require.NoError(t, err)
	got, err := eng2.Hook()(button("b"), true)
	require.NoError(t, err)
	assert.True(t, got)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.js")
	require.NoError(t, os.WriteFile(path, []byte(`
		function significant(el, builtin) { return el.tag === "a"; }
	`), 0o644))

	eng, err := LoadFile(context.Background(), path)
	require.NoError(t, err)

	got, err := eng.Hook()(button("b"), true)
	require.NoError(t, err)
	assert.False(t, got)

	_, err = LoadFile(context.Background(), filepath.Join(t.TempDir(), "missing.js"))
	require.Error(t, err)
}

func TestEngine_DrivesClassifier(t *testing.T) {
	ctx := context.Background()
	eng, err := New(ctx, "deny.js", `
		function significant(el, builtin) { return false; }
	`)
	require.NoError(t, err)

	classifier := selection.NewClassifier(ctx, selection.DefaultPolicy())
	classifier.SetRuleHook(eng.Hook())

	assert.False(t, classifier.Significant(button("b")))
}
