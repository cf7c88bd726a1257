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

package goja

import (
	"context"
	"testing"
	"time"

	"github.com/sanamassaly/structmatch/match"
)

func exec(t *testing.T, src string, bs match.Bindings) (match.Bindings, error) {
	t.Helper()
	i := &Interpreter{Test: true}
	ctx := context.Background()
	compiled, err := i.Compile(ctx, src)
	if err != nil {
		t.Fatal(err)
	}
	return i.Exec(ctx, bs, src, compiled)
}

func TestExecBooleanPass(t *testing.T) {
	bs := match.NewBindings().Extend("?age", 16.0)
	got, err := exec(t, `return _.bindings["?age"] < 18;`, bs)
	if err != nil {
		t.Fatal(err)
	}
	if got == nil {
		t.Fatal("expected the guard to pass")
	}
	if got["?age"] != 16.0 {
		t.Fatal(got)
	}
}

func TestExecBooleanReject(t *testing.T) {
	bs := match.NewBindings().Extend("?age", 40.0)
	got, err := exec(t, `return _.bindings["?age"] < 18;`, bs)
	if err != nil {
		t.Fatal(err)
	}
	if got != nil {
		t.Fatal(got)
	}
}

func TestExecExtendsBindings(t *testing.T) {
	bs := match.NewBindings().Extend("?x", 5.0).Extend("?y", 3.0)
	got, err := exec(t, `
var bs = _.bindings;
bs["?sum"] = bs["?x"] + bs["?y"];
return bs;
`, bs)
	if err != nil {
		t.Fatal(err)
	}
	if got == nil {
		t.Fatal("expected the guard to pass")
	}
	if got["?sum"] != 8.0 {
		t.Fatal(got)
	}
	// The caller's bindings are unchanged.
	if _, have := bs["?sum"]; have {
		t.Fatal(bs)
	}
}

func TestExecNullRejects(t *testing.T) {
	got, err := exec(t, `return null;`, match.NewBindings())
	if err != nil {
		t.Fatal(err)
	}
	if got != nil {
		t.Fatal(got)
	}
}

func TestExecBadReturn(t *testing.T) {
	if _, err := exec(t, `return "strings aren't bindings";`, match.NewBindings()); err == nil {
		t.Fatal("expected an error")
	}
}

func TestExecNoSideEffects(t *testing.T) {
	inner := map[string]interface{}{"n": 1.0}
	bs := match.NewBindings().Extend("?m", inner)
	if _, err := exec(t, `_.bindings["?m"]["n"] = 42; return true;`, bs); err != nil {
		t.Fatal(err)
	}
	if inner["n"] != 1.0 {
		t.Fatal(inner)
	}
}

func TestExecMatch(t *testing.T) {
	got, err := exec(t, `
var bss = _.match({"likes": "?likes"}, {"likes": "chai"}, {});
return 0 < bss.length;
`, match.NewBindings())
	if err != nil {
		t.Fatal(err)
	}
	if got == nil {
		t.Fatal("expected the guard to pass")
	}
}

func TestExecCronNext(t *testing.T) {
	got, err := exec(t, `
var next = _.cronNext("* * * * *");
var bs = _.bindings;
bs["?next"] = next;
return bs;
`, match.NewBindings())
	if err != nil {
		t.Fatal(err)
	}
	if got == nil {
		t.Fatal("expected the guard to pass")
	}
	s, is := got["?next"].(string)
	if !is {
		t.Fatal(got)
	}
	if _, err := time.Parse(time.RFC3339Nano, s); err != nil {
		t.Fatal(err)
	}
}

func TestExecInterrupt(t *testing.T) {
	i := &Interpreter{Test: true}
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err := i.Exec(ctx, match.NewBindings(), `_.sleep(500); return true;`, nil)
	if err != Interrupted {
		t.Fatal(err)
	}
}

func TestCompileBadSource(t *testing.T) {
	i := NewInterpreter()
	if _, err := i.Compile(context.Background(), `return return return`); err == nil {
		t.Fatal("expected an error")
	}
}

func TestExecUncompiled(t *testing.T) {
	i := NewInterpreter()
	got, err := i.Exec(context.Background(), match.NewBindings(), `return true;`, nil)
	if err != nil {
		t.Fatal(err)
	}
	if got == nil {
		t.Fatal("expected the guard to pass")
	}
}
