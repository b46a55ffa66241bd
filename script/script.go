// Package script builds parts from zygomys (Lisp) recipes.
//
// A recipe builds catalog parts with keyword parameters, combines them
// with primitives and boolean modifiers and emits the parts to export:
//
//	(def plate (part "box" :size (vec3 40 20 3)))
//	(cut plate (move (part "nut_hole" :size "m3") (vec3 10 0 3)))
//	(emit plate)
package script

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	zygo "github.com/glycerine/zygomys/zygo"
	"github.com/romly/pmesh"
	"go.uber.org/zap"
)

// Error is a recipe error with the line it occurred on, when known.
type Error struct {
	Line    int
	Message string
}

func (e *Error) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Message)
	}
	return e.Message
}

// Engine evaluates recipes. Every Run uses a fresh sandboxed interpreter,
// so an Engine may be shared.
type Engine struct {
	Log *zap.Logger
}

// New returns an engine. A nil logger discards output.
func New(log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{Log: log}
}

type runResult struct {
	parts []*pmesh.Part
	err   error
}

// Run evaluates source and returns the emitted parts in order. When
// nothing is emitted the value of the last expression is returned if it
// is a part. The interpreter is abandoned when ctx is done.
func (e *Engine) Run(ctx context.Context, source string) ([]*pmesh.Part, error) {
	ch := make(chan runResult, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				ch <- runResult{err: fmt.Errorf("panic during evaluation: %v", r)}
			}
		}()
		parts, err := e.run(source)
		ch <- runResult{parts: parts, err: err}
	}()
	select {
	case res := <-ch:
		return res.parts, res.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (e *Engine) run(source string) ([]*pmesh.Part, error) {
	if strings.TrimSpace(source) == "" {
		return nil, nil
	}
	env := zygo.NewZlispSandbox()
	defer env.Stop()
	st := &state{log: e.logger()}
	st.register(env)
	if err := env.LoadString(preprocess(source)); err != nil {
		return nil, toError(err)
	}
	last, err := env.Run()
	if err != nil {
		return nil, toError(err)
	}
	if len(st.emitted) == 0 {
		if p, ok := last.(*sexpPart); ok {
			st.emitted = append(st.emitted, p.p)
		}
	}
	return st.emitted, nil
}

func (e *Engine) logger() *zap.Logger {
	if e.Log == nil {
		return zap.NewNop()
	}
	return e.Log
}

var linePattern = regexp.MustCompile(`(?i)(?:error )?on line (\d+):\s*(.*)`)

// toError extracts the line number zygomys puts in its messages.
func toError(err error) error {
	msg := strings.TrimSpace(err.Error())
	if m := linePattern.FindStringSubmatch(msg); m != nil {
		line, _ := strconv.Atoi(m[1])
		return &Error{Line: line, Message: strings.TrimSpace(m[2])}
	}
	return &Error{Message: msg}
}

// kwPrefix marks keyword arguments rewritten by preprocess.
const kwPrefix = "__kw_"

// preprocess rewrites :keyword into the string "__kw_keyword" and ;
// comments into // comments. String literals are left alone.
func preprocess(source string) string {
	b := []byte(source)
	out := make([]byte, 0, len(b)+len(b)/4)
	for i := 0; i < len(b); {
		switch c := b[i]; {
		case c == '"' || c == '`':
			j := i + 1
			for j < len(b) && b[j] != c {
				if c == '"' && b[j] == '\\' {
					j++
				}
				j++
			}
			j = min(j+1, len(b))
			out = append(out, b[i:j]...)
			i = j
		case c == ';':
			for i < len(b) && b[i] == ';' {
				i++
			}
			out = append(out, '/', '/')
			for i < len(b) && b[i] != '\n' {
				out = append(out, b[i])
				i++
			}
		case c == ':' && i+1 < len(b) && isLetter(b[i+1]):
			j := i + 1
			for j < len(b) && isKWChar(b[j]) {
				j++
			}
			out = append(out, '"')
			out = append(out, kwPrefix...)
			out = append(out, strings.ReplaceAll(string(b[i+1:j]), "-", "_")...)
			out = append(out, '"')
			i = j
		default:
			out = append(out, c)
			i++
		}
	}
	return string(out)
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isKWChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '-' || c == '_' || c == '.'
}
