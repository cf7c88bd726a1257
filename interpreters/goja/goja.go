/* Copyright 2018-2019 Comcast Cable Communications Management, LLC
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 * http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package goja provides an ECMAScript-compatible guard interpreter.
package goja

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/sanamassaly/structmatch/classify"
	"github.com/sanamassaly/structmatch/match"

	"github.com/dop251/goja"
	"github.com/gorhill/cronexpr"
)

var (
	// InterruptedMessage is the string value of Interrupted.
	InterruptedMessage = "RuntimeError: timeout"

	// Interrupted is returned by Exec if the execution is
	// interrupted.
	Interrupted = errors.New(InterruptedMessage)
)

// Interpreter implements classify.Interpreter using Goja, which is a
// Go implementation of ECMAScript 5.1+.
//
// See https://github.com/dop251/goja.
type Interpreter struct {
	// Test exposes some additional runtime capabilities (sleep,
	// log) that are handy in tests.
	Test bool
}

// NewInterpreter makes a new Interpreter.
func NewInterpreter() *Interpreter {
	return &Interpreter{}
}

func wrapSrc(src string) string {
	return fmt.Sprintf("(function() {\n%s\n}());\n", src)
}

func AsSource(src interface{}) (code string, err error) {
	switch vv := src.(type) {
	case string:
		code = vv
		return
	default:
		err = fmt.Errorf("bad ECMAScript source (%T)", src)
		return
	}
}

// Compile calls goja.Compile.  This step is optional.
func (i *Interpreter) Compile(ctx context.Context, src interface{}) (interface{}, error) {
	code, err := AsSource(src)
	if err != nil {
		return nil, err
	}

	code = wrapSrc(code)

	obj, err := goja.Compile("", code, true)
	if err != nil {
		return nil, errors.New(err.Error() + ": " + code)
	}

	return obj, nil
}

func protest(o *goja.Runtime, x interface{}) {
	panic(o.ToValue(x))
}

func deepCopy(x interface{}) (interface{}, error) {
	js, err := json.Marshal(&x)
	if err != nil {
		return nil, err
	}
	var y interface{}
	if err = json.Unmarshal(js, &y); err != nil {
		return nil, err
	}
	return y, nil
}

// Exec implements the classify.Interpreter method of the same name.
//
// The guard's return value decides the case: a boolean passes or
// rejects with the matched bindings unchanged; an object becomes the
// new bindings; null/undefined rejects.
//
// The following properties are available from the runtime at _.
//
//	bindings: the map of the current bindings (a deep copy, so
//	  guard code can't have side effects on the caller).
//	match(pat, obj, bs): Execute the pattern matcher.
//	cronNext(s): Return a string representing (RFC3339Nano) the
//	  next time for the given crontab expression.
//
// Testing properties (enabled by the interpreter's Test property):
//
//	sleep(ms): sleep for the given number of milliseconds.
//	log(x): log the given value as JSON.
func (i *Interpreter) Exec(ctx context.Context, bs match.Bindings, src interface{}, compiled interface{}) (match.Bindings, error) {
	var p *goja.Program
	if compiled == nil {
		var err error
		if compiled, err = i.Compile(ctx, src); err != nil {
			return nil, err
		}
	}
	var is bool
	if p, is = compiled.(*goja.Program); !is {
		return nil, fmt.Errorf("ECMAScript bad compilation: %T %#v", compiled, compiled)
	}

	env := map[string]interface{}{
		"ctx": ctx,
	}

	if bs != nil {
		// Guard code is allowed to modify values, and we
		// don't want any side effects.  So:
		x, err := deepCopy(map[string]interface{}(bs))
		if err != nil {
			return nil, err
		}
		bsCopy, is := x.(map[string]interface{})
		if !is {
			return nil, fmt.Errorf("internal error: %#v copy failed", bs)
		}
		env["bindings"] = bsCopy
	}

	o := goja.New()

	o.Set("_", env)

	// cronNext parses the given string as a crontab expression
	// using github.com/gorhill/cronexpr.  Returns the next time
	// as a string formatted in time.RFC3339Nano (UTC).
	env["cronNext"] = func(x interface{}) interface{} {
		switch vv := x.(type) {
		case goja.Value:
			x = vv.Export()
		}
		cronExpr, is := x.(string)
		if !is {
			protest(o, "not a string")
		}

		c, err := cronexpr.Parse(cronExpr)
		if err != nil {
			protest(o, err.Error())
		}
		return c.Next(time.Now()).UTC().Format(time.RFC3339Nano)
	}

	// match is a utility that invokes the pattern matcher.
	env["match"] = func(pat, mess, gbs goja.Value) interface{} {
		var bindings match.Bindings

		if gbs == nil {
			bindings = match.NewBindings()
		} else {
			x, err := deepCopy(gbs.Export())
			if err != nil {
				protest(o, err.Error())
			}
			m, is := x.(map[string]interface{})
			if !is {
				protest(o, "bad bindings")
			}
			bindings = match.Bindings(m)
		}

		var (
			pp  interface{}
			mm  interface{}
			err error
		)

		if pp, err = deepCopy(pat.Export()); err != nil {
			protest(o, err.Error())
		}

		if mm, err = deepCopy(mess.Export()); err != nil {
			protest(o, err.Error())
		}

		bss, err := match.Match(pp, mm, bindings)
		if err != nil {
			protest(o, err.Error())
		}

		var x interface{}
		if x, err = deepCopy(bss); err != nil {
			protest(o, err.Error())
		}

		return x
	}

	if i.Test {
		env["sleep"] = func(n interface{}) interface{} {
			switch vv := n.(type) {
			case goja.Value:
				n = vv.Export()
			}
			ms, is := n.(int64)
			if !is {
				protest(o, fmt.Sprintf("a %T is not an %T", n, ms))
			}
			time.Sleep(time.Duration(ms) * time.Millisecond)
			return nil
		}

		env["log"] = func(x interface{}) interface{} {
			switch vv := x.(type) {
			case goja.Value:
				x = vv.Export()
			}
			js, err := json.Marshal(&x)
			if err != nil {
				log.Println("goja.log (can't marshal: " + err.Error() + ")")
			} else {
				log.Println(string(js))
			}

			return x
		}
	}

	// We want to make sure that the following goroutine is
	// terminated as soon as possible.
	ictx, cancel := context.WithCancel(ctx)
	go func() {
		<-ictx.Done()
		// If this Exec method calls cancel() after RunProgram
		// returns, then we'll never see this
		// InterruptedMessage, which is actually the behavior
		// we want.  In this case, we weren't actually
		// interrupted.
		o.Interrupt(InterruptedMessage)
	}()

	v, err := RunProgram(o, p)
	cancel()

	if err != nil {
		if _, is := err.(*goja.InterruptedError); is {
			return nil, Interrupted
		}
		return nil, err
	}

	x := v.Export()

	switch vv := x.(type) {
	case *goja.InterruptedError:
		return nil, vv
	case bool:
		if vv {
			return bs.Copy(), nil
		}
		return nil, nil
	case map[string]interface{}:
		return match.Bindings(vv), nil
	case match.Bindings:
		return vv, nil
	case nil:
		return nil, nil
	default:
		return nil, fmt.Errorf("%#v (%T) isn't Bindings or a boolean", x, x)
	}
}

func RunProgram(o *goja.Runtime, p *goja.Program) (v goja.Value, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%s", r)
		}
	}()
	return o.RunProgram(p)
}

var _ classify.Interpreter = (*Interpreter)(nil)
