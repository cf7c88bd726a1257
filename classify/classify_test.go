package classify

import (
	"context"
	"strings"
	"testing"

	"github.com/sanamassaly/structmatch/match"
)

// echoInterpreter is a trivial Interpreter for testing GuardSource
// compilation.  Its source is a variable name, and the guard binds
// "?echoed" to that variable's value (and rejects if unbound).
type echoInterpreter struct {
	compilations int
}

func (i *echoInterpreter) Compile(ctx context.Context, code interface{}) (interface{}, error) {
	i.compilations++
	return code, nil
}

func (i *echoInterpreter) Exec(ctx context.Context, bs match.Bindings, code interface{}, compiled interface{}) (match.Bindings, error) {
	v, have := bs[compiled.(string)]
	if !have {
		return nil, nil
	}
	return bs.Copy().Extend("?echoed", v), nil
}

func statusTestClassifier() *Classifier {
	return &Classifier{
		Name: "status",
		Cases: []*Case{
			{
				Pattern: 200.0,
				Result:  "OK",
			},
			{
				Pattern: 404.0,
				Result:  "Not found",
			},
			{
				Pattern: "?code",
				Result:  "unknown code: ?code",
			},
		},
	}
}

func TestClassifyOrder(t *testing.T) {
	ctx := context.Background()
	c := statusTestClassifier()
	if err := c.Compile(ctx, nil, false); err != nil {
		t.Fatal(err)
	}

	o, err := c.Classify(ctx, 404.0)
	if err != nil {
		t.Fatal(err)
	}
	if o == nil || o.Case != 1 {
		t.Fatalf("expected case 1; got %#v", o)
	}
	if o.Result != "Not found" {
		t.Fatal(o.Result)
	}

	o, err = c.Classify(ctx, 418.0)
	if err != nil {
		t.Fatal(err)
	}
	if o == nil || o.Case != 2 {
		t.Fatalf("expected the fallback case; got %#v", o)
	}
	if o.Result != "unknown code: 418" {
		t.Fatal(o.Result)
	}
}

func TestClassifyNoCase(t *testing.T) {
	ctx := context.Background()
	c := &Classifier{
		Cases: []*Case{
			{Pattern: "quit", Result: "bye"},
		},
	}
	if err := c.Compile(ctx, nil, false); err != nil {
		t.Fatal(err)
	}
	o, err := c.Classify(ctx, "hello")
	if err != nil {
		t.Fatal(err)
	}
	if o != nil {
		t.Fatalf("expected no outcome; got %#v", o)
	}
}

func TestClassifyDefaultCase(t *testing.T) {
	ctx := context.Background()
	c := &Classifier{
		Cases: []*Case{
			{Pattern: "quit", Result: "bye"},
			{Result: "unrecognized"},
		},
	}
	if err := c.Compile(ctx, nil, false); err != nil {
		t.Fatal(err)
	}
	o, err := c.Classify(ctx, map[string]interface{}{"what": "ever"})
	if err != nil {
		t.Fatal(err)
	}
	if o == nil || o.Case != 1 || o.Result != "unrecognized" {
		t.Fatalf("expected the default case; got %#v", o)
	}
}

func TestClassifyGuard(t *testing.T) {
	ctx := context.Background()

	minor := GuardFunc(func(ctx context.Context, bs match.Bindings) (match.Bindings, error) {
		age, is := bs["?age"].(float64)
		if !is || 18 <= age {
			return nil, nil
		}
		return bs, nil
	})

	c := &Classifier{
		Cases: []*Case{
			{
				Pattern: map[string]interface{}{"age": "?age"},
				Guard:   minor,
				Result:  "minor",
			},
			{
				Pattern: map[string]interface{}{"age": "?age"},
				Result:  "adult",
			},
		},
	}
	if err := c.Compile(ctx, nil, false); err != nil {
		t.Fatal(err)
	}

	o, err := c.Classify(ctx, map[string]interface{}{"age": 16.0})
	if err != nil {
		t.Fatal(err)
	}
	if o == nil || o.Case != 0 {
		t.Fatalf("expected the guarded case; got %#v", o)
	}

	// A rejecting guard falls through to the next case.
	o, err = c.Classify(ctx, map[string]interface{}{"age": 40.0})
	if err != nil {
		t.Fatal(err)
	}
	if o == nil || o.Case != 1 {
		t.Fatalf("expected the unguarded case; got %#v", o)
	}
}

func TestClassifyGuardExtends(t *testing.T) {
	ctx := context.Background()

	sum := GuardFunc(func(ctx context.Context, bs match.Bindings) (match.Bindings, error) {
		x, _ := bs["?x"].(float64)
		y, _ := bs["?y"].(float64)
		return bs.Copy().Extend("?sum", x+y), nil
	})

	c := &Classifier{
		Cases: []*Case{
			{
				Pattern: []interface{}{"add", "?x", "?y"},
				Guard:   sum,
				Result:  "?x + ?y = ?sum",
			},
		},
	}
	if err := c.Compile(ctx, nil, false); err != nil {
		t.Fatal(err)
	}

	o, err := c.Classify(ctx, []interface{}{"add", 5.0, 3.0})
	if err != nil {
		t.Fatal(err)
	}
	if o == nil {
		t.Fatal("expected an outcome")
	}
	if o.Result != "5 + 3 = 8" {
		t.Fatal(o.Result)
	}
}

func TestCompileJSONPatterns(t *testing.T) {
	ctx := context.Background()
	c := &Classifier{
		PatternSyntax: "json",
		Cases: []*Case{
			{
				Pattern: `{"$or": [200, 201, 204]}`,
				Result:  "success",
			},
		},
	}
	if err := c.Compile(ctx, nil, false); err != nil {
		t.Fatal(err)
	}
	o, err := c.Classify(ctx, 204.0)
	if err != nil {
		t.Fatal(err)
	}
	if o == nil || o.Result != "success" {
		t.Fatalf("expected success; got %#v", o)
	}
}

func TestCompileStringPatternWithoutSyntax(t *testing.T) {
	ctx := context.Background()
	c := &Classifier{
		Cases: []*Case{
			// Probably unparsed JSON, so Compile complains.
			{Pattern: `{"looks": "like json"}`},
		},
	}
	err := c.Compile(ctx, nil, false)
	if err == nil {
		t.Fatal("expected an error")
	}
	if !strings.Contains(err.Error(), "pattern is a string") {
		t.Fatal(err)
	}
}

func TestCompileGuardSource(t *testing.T) {
	ctx := context.Background()
	interpreter := &echoInterpreter{}
	interpreters := NewInterpretersMap()
	interpreters["echo"] = interpreter

	c := &Classifier{
		Cases: []*Case{
			{
				Pattern:     map[string]interface{}{"name": "?name"},
				GuardSource: &GuardSource{Interpreter: "echo", Source: "?name"},
				Result:      "hello ?echoed",
			},
		},
	}
	if err := c.Compile(ctx, interpreters, false); err != nil {
		t.Fatal(err)
	}

	o, err := c.Classify(ctx, map[string]interface{}{"name": "Sana"})
	if err != nil {
		t.Fatal(err)
	}
	if o == nil || o.Result != "hello Sana" {
		t.Fatalf("expected a greeting; got %#v", o)
	}

	// Compile again without force: nothing should recompile.
	if err := c.Compile(ctx, interpreters, false); err != nil {
		t.Fatal(err)
	}
	if interpreter.compilations != 1 {
		t.Fatal(interpreter.compilations)
	}

	if err := c.Compile(ctx, interpreters, true); err != nil {
		t.Fatal(err)
	}
	if interpreter.compilations != 2 {
		t.Fatal(interpreter.compilations)
	}
}

func TestCompileInterpreterNotFound(t *testing.T) {
	ctx := context.Background()
	c := &Classifier{
		Cases: []*Case{
			{
				Pattern:     "?x",
				GuardSource: &GuardSource{Interpreter: "cobol", Source: "?x"},
			},
		},
	}
	if err := c.Compile(ctx, NewInterpretersMap(), false); err != InterpreterNotFound {
		t.Fatal(err)
	}
}
