// Package classify provides ordered, first-match-wins case selection
// on top of the structural pattern matcher.
//
// A Classifier is an ordered list of Cases.  Each Case has a pattern,
// an optional guard, and a result template.  Classifying a fact tries
// the cases in order; the first case whose pattern matches and whose
// guard (if any) passes produces the Outcome.
package classify

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/sanamassaly/structmatch/match"
)

var (
	// InterpreterNotFound occurs when you try to Compile a
	// GuardSource, and the required interpreter isn't in the
	// given map of interpreters.
	InterpreterNotFound = errors.New("interpreter not found")
)

// Interpreter can optionally compile and execute guard code.
type Interpreter interface {
	// Compile can make something that helps when Exec()ing the
	// code later.
	Compile(ctx context.Context, code interface{}) (interface{}, error)

	// Exec executes the guard code.  The result of a previous
	// Compile() might be provided.
	//
	// nil Bindings means the guard rejected the case.  Non-nil
	// Bindings (possibly extended with computed values) means the
	// guard passed.
	Exec(ctx context.Context, bs match.Bindings, code interface{}, compiled interface{}) (match.Bindings, error)
}

// InterpretersMap maps interpreter names to Interpreters.
type InterpretersMap map[string]Interpreter

func NewInterpretersMap() InterpretersMap {
	return make(InterpretersMap, 2)
}

// Guard decides whether a matched case applies.
//
// A Guard returns nil Bindings to reject the case.  A passing Guard
// returns the (possibly extended) Bindings that the case's result
// template will see.
type Guard interface {
	Exec(ctx context.Context, bs match.Bindings) (match.Bindings, error)
}

// GuardFunc wraps a Go function as a Guard.
type GuardFunc func(ctx context.Context, bs match.Bindings) (match.Bindings, error)

func (g GuardFunc) Exec(ctx context.Context, bs match.Bindings) (match.Bindings, error) {
	return g(ctx, bs)
}

// GuardSource can be compiled to a Guard.
type GuardSource struct {
	Interpreter string      `json:"interpreter,omitempty" yaml:",omitempty"`
	Source      interface{} `json:"source" yaml:"source"`
}

// Compile attempts to compile the GuardSource into a Guard using the
// given interpreters.
func (g *GuardSource) Compile(ctx context.Context, interpreters InterpretersMap) (Guard, error) {
	interpreter, have := interpreters[g.Interpreter]
	if !have {
		return nil, InterpreterNotFound
	}

	compiled, err := interpreter.Compile(ctx, g.Source)
	if err != nil {
		return nil, err
	}

	return GuardFunc(func(ctx context.Context, bs match.Bindings) (match.Bindings, error) {
		return interpreter.Exec(ctx, bs, g.Source, compiled)
	}), nil
}

// Case is one branch of a Classifier.
type Case struct {
	// Doc is optional documentation (in Markdown) for this case.
	Doc string `json:"doc,omitempty" yaml:",omitempty"`

	// Pattern is matched against the fact.  A nil Pattern is a
	// default (wildcard) case.
	//
	// Depending on the Classifier's PatternSyntax, a Pattern
	// given as a string is parsed during Compile.
	Pattern interface{} `json:"pattern,omitempty" yaml:",omitempty"`

	// Guard is an optional procedure that will prevent selection
	// of this case if the procedure returns nil Bindings.
	Guard Guard `json:"-" yaml:"-"`

	// GuardSource, if given, is compiled to the Guard.
	GuardSource *GuardSource `json:"guard,omitempty" yaml:"guard,omitempty"`

	// Result is a template for the case's outcome.  Pattern
	// variables in the template are replaced by their bound
	// values.  See Subst.
	Result interface{} `json:"result,omitempty" yaml:",omitempty"`
}

// Classifier is an ordered list of Cases.
type Classifier struct {
	// Name is a short name for this classifier.
	Name string `json:"name,omitempty" yaml:",omitempty"`

	// Doc is general documentation (in Markdown).
	Doc string `json:"doc,omitempty" yaml:",omitempty"`

	// PatternSyntax indicates the syntax (if any) for case
	// patterns given as strings.  See DefaultPatternParser.
	PatternSyntax string `json:"patternSyntax,omitempty" yaml:"patternSyntax,omitempty"`

	Cases []*Case `json:"cases,omitempty" yaml:",omitempty"`

	compiled bool
}

// DefaultPatternParser parses a case pattern per the given syntax.
//
// Syntax "json" parses string patterns as JSON.  With no syntax, a
// string pattern must be a pattern variable; a constant string
// pattern is probably unparsed JSON, so it's an error.
var DefaultPatternParser = func(syntax string, p interface{}) (interface{}, error) {
	switch syntax {
	case "none", "":
		if s, is := p.(string); is && !DefaultMatcher().IsVariable(s) {
			return nil, errors.New("warning: pattern is a string: " + s)
		}
		return p, nil
	case "json":
		if js, is := p.(string); is {
			var x interface{}
			if err := json.Unmarshal([]byte(js), &x); err != nil {
				return nil, err
			}
			return x, nil
		}
		return p, nil
	default:
		return nil, errors.New("unsupported pattern syntax: " + syntax)
	}
}

// DefaultMatcher just returns match.DefaultMatcher (to avoid the
// import for callers that want to ask about variables).
func DefaultMatcher() *match.Matcher {
	return match.DefaultMatcher
}

// Compile parses string patterns, canonicalizes all patterns and
// result templates, and compiles guard sources into Guards.
//
// Unless force is given, compiling an already-compiled Classifier
// does nothing, so Compile is cheap to call defensively.
func (c *Classifier) Compile(ctx context.Context, interpreters InterpretersMap, force bool) error {
	if c.compiled && !force {
		return nil
	}

	for _, cs := range c.Cases {
		if cs.Pattern != nil {
			x, err := DefaultPatternParser(c.PatternSyntax, cs.Pattern)
			if err != nil {
				return err
			}
			if x, err = Canonicalize(x); err != nil {
				return err
			}
			cs.Pattern = x
		}

		if cs.Result != nil {
			x, err := Canonicalize(cs.Result)
			if err != nil {
				return err
			}
			cs.Result = x
		}

		if cs.GuardSource != nil && (force || cs.Guard == nil) {
			guard, err := cs.GuardSource.Compile(ctx, interpreters)
			if err != nil {
				return err
			}
			cs.Guard = guard
		}
	}

	c.compiled = true

	return nil
}

// Outcome is the result of classifying a fact.
type Outcome struct {
	// Case is the index of the selected Case.
	Case int `json:"case"`

	// Bs are the bindings the selected case matched with
	// (including anything its guard computed).
	Bs match.Bindings `json:"bs,omitempty"`

	// Result is the selected case's Result template with pattern
	// variables substituted from Bs.
	Result interface{} `json:"result,omitempty"`
}

// Classify tries the cases in order against the given fact.
//
// The first case whose pattern matches the fact and whose guard (if
// any) passes for some set of bindings wins.  A nil Outcome (with a
// nil error) means no case was selected.
func (c *Classifier) Classify(ctx context.Context, fact interface{}) (*Outcome, error) {
	for i, cs := range c.Cases {
		var (
			bss []match.Bindings
			err error
		)
		if cs.Pattern == nil {
			bss = []match.Bindings{match.NewBindings()}
		} else {
			bss, err = match.Match(cs.Pattern, fact, match.NewBindings())
			if err != nil {
				return nil, err
			}
		}

		for _, bs := range bss {
			if cs.Guard != nil {
				bs, err = cs.Guard.Exec(ctx, bs)
				if err != nil {
					return nil, err
				}
				if bs == nil {
					continue
				}
			}
			return &Outcome{
				Case:   i,
				Bs:     bs,
				Result: Subst(cs.Result, bs),
			}, nil
		}
	}

	return nil, nil
}
