// Package scripted loads user rule scripts that can override the built-in
// significance verdict. A script defines a single global function:
//
//	function significant(element, builtin) { return builtin; }
//
// where element carries the candidate's id, tag, role, text, href,
// dimensions, depth, child count and click-handler flag, and builtin is
// the verdict the built-in rules reached. Whatever the function returns is
// coerced to a boolean and becomes the final verdict.
package scripted

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/grafana/sobek"
	"github.com/rs/zerolog"

	"github.com/bnema/lasso/internal/logging"
	"github.com/bnema/lasso/internal/selection"
)

// callBudget bounds a single rule invocation; a script running past it is
// interrupted, and the resulting error disables the hook.
const callBudget = 50 * time.Millisecond

const entrypoint = "significant"

// Engine owns one JavaScript runtime with a loaded rule script. It is not
// safe for concurrent use; the kernel calls it from the UI goroutine only.
type Engine struct {
	vm     *sobek.Runtime
	call   sobek.Callable
	logger zerolog.Logger
}

// New compiles source and resolves its significant(element, builtin)
// entrypoint. The name only labels stack traces.
func New(ctx context.Context, name, source string) (*Engine, error) {
	logger := logging.FromContext(ctx).With().Str("component", "scripted-rules").Logger()

	program, err := sobek.Compile(name, source, true)
	if err != nil {
		return nil, fmt.Errorf("compile rule script: %w", err)
	}

	vm := sobek.New()
	vm.SetFieldNameMapper(sobek.TagFieldNameMapper("json", true))
	if _, err := vm.RunProgram(program); err != nil {
		return nil, fmt.Errorf("evaluate rule script: %w", err)
	}

	call, ok := sobek.AssertFunction(vm.Get(entrypoint))
	if !ok {
		return nil, fmt.Errorf("rule script defines no %s function", entrypoint)
	}

	logger.Debug().Str("script", name).Msg("rule script loaded")
	return &Engine{vm: vm, call: call, logger: logger}, nil
}

// LoadFile reads path and builds an engine from its contents.
func LoadFile(ctx context.Context, path string) (*Engine, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rule script: %w", err)
	}
	return New(ctx, filepath.Base(path), string(src))
}

// elementRecord is the candidate shape handed to scripts.
type elementRecord struct {
	ID        string  `json:"id"`
	Tag       string  `json:"tag"`
	Role      string  `json:"role"`
	Text      string  `json:"text"`
	Href      string  `json:"href"`
	Width     float64 `json:"width"`
	Height    float64 `json:"height"`
	Depth     int     `json:"depth"`
	Children  int     `json:"children"`
	Clickable bool    `json:"clickable"`
}

// Hook adapts the engine to the classifier's hook slot.
func (e *Engine) Hook() selection.RuleHook {
	return e.significant
}

func (e *Engine) significant(el selection.ElementView, builtin bool) (bool, error) {
	bounds := el.Bounds()
	record := elementRecord{
		ID:        el.ID(),
		Tag:       el.Tag(),
		Role:      el.Role(),
		Text:      el.Text(),
		Href:      el.Href(),
		Width:     bounds.Width(),
		Height:    bounds.Height(),
		Depth:     el.Depth(),
		Children:  el.ChildCount(),
		Clickable: el.HasClickHandler(),
	}

	guard := time.AfterFunc(callBudget, func() {
		e.vm.Interrupt("rule call exceeded budget")
	})
	defer guard.Stop()
	defer e.vm.ClearInterrupt()

	res, err := e.call(sobek.Undefined(), e.vm.ToValue(record), e.vm.ToValue(builtin))
	if err != nil {
		return false, fmt.Errorf("rule call: %w", err)
	}
	return res.ToBoolean(), nil
}
