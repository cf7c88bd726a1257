/* Copyright 2018 Comcast Cable Communications Management, LLC
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

// Package match implements the core structural pattern matcher.
//
// Patterns and facts are interface{} trees as produced by
// encoding/json.  A pattern selects facts by literal content, by
// shape, or by kind, and can capture parts of a fact into named
// bindings:
//
//	Literal    200, "quit", true, nil
//	Capture    "?name"
//	Wildcard   "?"
//	Optional   "??name" (a missing map key is not a failure)
//	Sequence   ["add", "?x", "?y"], ["send", "?to", "?*words"]
//	Mapping    {"action": "login", "username": "?user"}
//	Rest       {"email": "?email", "$rest": "?extras"}
//	OR         {"$or": [301, 302, 307, 308]}
//	AS         {"$as": "?code", "$match": {"$or": [301, 302]}}
//	Type       {"$type": "string", "$as": "?email"}
//
// Sequences match positionally.  A sequence pattern may contain at
// most one star variable ("?*name", or the anonymous "?*"), which
// captures the run of elements between the pattern's fixed prefix and
// fixed suffix.  Mappings match partially: pattern keys must be
// present in the fact, and extra fact keys are ignored unless a
// "$rest" entry captures them.
package match

import (
	"errors"
	"strings"
)

type Matcher struct {
	// AllowPropertyVariables enables support for a property
	// variable in a mapping pattern that contains only one
	// property.  A property variable ranges over the fact's keys,
	// so a single match can return multiple sets of bindings.
	AllowPropertyVariables bool

	// CheckForBadPropertyVariables runs a test to verify that a
	// mapping pattern does not contain a property variable along
	// with other properties.
	//
	// This check might not be necessary because the other code
	// will report an error if a bad property variable is actually
	// encountered during matching.  If a match fails before
	// encountering the bad property variable, then that code will
	// not report the problem.  In order to report the problem
	// always, turn on this switch.
	CheckForBadPropertyVariables bool
}

var DefaultMatcher = &Matcher{
	AllowPropertyVariables:       true,
	CheckForBadPropertyVariables: true,
}

// Operator properties.  A mapping pattern containing any of OrKey,
// AsKey, MatchKey, or TypeKey is an operator pattern rather than a
// plain mapping pattern, so these keys can't be matched literally.
const (
	// OrKey maps to a sequence of alternative patterns.  The
	// first alternative that matches wins.
	OrKey = "$or"

	// AsKey maps to a variable that's bound to the entire fact
	// considered by the operator pattern.
	AsKey = "$as"

	// MatchKey maps to a subpattern that the fact must also
	// match.
	MatchKey = "$match"

	// TypeKey maps to a kind name: "null", "bool", "number",
	// "string", "list", or "map".
	TypeKey = "$type"

	// RestKey is an entry in a plain mapping pattern.  Its
	// variable captures the fact properties not consumed by the
	// pattern's other keys.
	RestKey = "$rest"
)

// Bindings is a map from variables (strings starting with a '?') to
// their values.
type Bindings map[string]interface{}

func NewBindings() Bindings {
	return make(Bindings, 8)
}

// Extend adds the property; modifies and returns the Bindings.
//
// The Bindings are modified.
func (bs Bindings) Extend(p string, v interface{}) Bindings {
	bs[p] = v
	return bs
}

// Remove removes the given keys.
//
// The Bindings are modified.
func (bs Bindings) Remove(ps ...string) Bindings {
	for _, p := range ps {
		delete(bs, p)
	}
	return bs
}

// DeleteExcept removes all but the given properties.
//
// Does not copy.
func (bs Bindings) DeleteExcept(keeps ...string) Bindings {
REM:
	for p := range bs {
		for _, keep := range keeps {
			if keep == p {
				continue REM
			}
		}
		delete(bs, p)
	}

	return bs
}

// Copy makes a shallow copy of the Bindings.
func (bs Bindings) Copy() Bindings {
	acc := make(Bindings, len(bs))
	for k, v := range bs {
		acc[k] = v
	}
	return acc
}

// IsVariable reports if the string represents a pattern variable.
//
// All pattern variables start with a '?'.
func (m *Matcher) IsVariable(s string) bool {
	return strings.HasPrefix(s, "?")
}

// IsAnonymousVariable detects a variable of the form '?'.  A binding
// for an anonymous variable shouldn't ever make it into bindings.
func (m *Matcher) IsAnonymousVariable(s string) bool {
	return s == "?"
}

// IsOptionalVariable detects a variable of the form '??name'.  When
// an optional variable is the value for a mapping pattern property,
// the absence of that property in the fact is not a match failure.
func (m *Matcher) IsOptionalVariable(x interface{}) bool {
	if s, is := x.(string); is {
		return strings.HasPrefix(s, "??")
	}
	return false
}

// IsStarVariable detects a variable of the form '?*name' (or the
// anonymous '?*'), which is only legal as an element of a sequence
// pattern.
func (m *Matcher) IsStarVariable(x interface{}) bool {
	if s, is := x.(string); is {
		return strings.HasPrefix(s, "?*")
	}
	return false
}

// IsConstant reports if the string represents a constant (and not a
// pattern variable).
func (m *Matcher) IsConstant(s string) bool {
	return !m.IsVariable(s)
}

func (m *Matcher) checkForBadPropertyVariables(pattern map[string]interface{}) error {
	if !m.CheckForBadPropertyVariables {
		return nil
	}
	if len(pattern) <= 1 {
		return nil
	}
	for k := range pattern {
		if m.IsVariable(k) {
			return errors.New(`can't have a variable as a key ("` + k + `") with other keys`)
		}
	}
	return nil
}

// mapcatMatch attempts to extend the given bindingss 'bss' based on
// pair-wise matching of the mapping pattern to the fact.
func (m *Matcher) mapcatMatch(bss []Bindings, pattern map[string]interface{}, fact map[string]interface{}) ([]Bindings, error) {
	if err := m.checkForBadPropertyVariables(pattern); err != nil {
		return nil, err
	}

	for k, v := range pattern {
		if k == RestKey {
			// Considered below, after the other keys have
			// been consumed.
			continue
		}
		if m.IsVariable(k) {
			if !m.AllowPropertyVariables {
				return nil, errors.New(`can't have a variable as a key ("` + k + `")`)
			}
			if len(pattern) != 1 {
				return nil, errors.New(`can't have a variable as a key ("` + k + `") with other keys`)
			}
			// Iterate over the fact keys and collect match
			// results.
			gather := make([]Bindings, 0, len(fact))
			for fk, fv := range fact {
				ext := copyBindingss(bss)

				// Try to match keys.
				ext, err := m.matchWithBindingss(ext, k, fk)
				if err != nil {
					return nil, err
				}
				if 0 == len(ext) {
					// Didn't match keys.
					continue
				}
				// Matched keys.  Now check values.
				ext, err = m.matchWithBindingss(ext, v, fv)
				if err != nil {
					return nil, err
				}
				if 0 == len(ext) {
					// Didn't match values.
					continue
				}
				gather = append(gather, ext...)
			}
			return gather, nil
		}

		fv, found := fact[k]
		if !found {
			if m.IsOptionalVariable(v) {
				continue
			}
			return nil, nil
		}

		acc, err := m.matchWithBindingss(bss, v, fv)
		if nil != err {
			return nil, err
		}
		if 0 == len(acc) {
			return nil, nil
		}
		bss = acc
	}

	if rest, has := pattern[RestKey]; has {
		s, is := rest.(string)
		if !is || !m.IsVariable(s) {
			return nil, errors.New(`"` + RestKey + `" wants a variable`)
		}
		leftover := make(map[string]interface{}, len(fact))
		for fk, fv := range fact {
			if _, consumed := pattern[fk]; consumed {
				continue
			}
			leftover[fk] = fv
		}
		return m.matchWithBindingss(bss, s, leftover)
	}

	return bss, nil
}

// seqMatch matches a sequence pattern against a fact sequence
// positionally.
//
// At most one star variable can appear in the pattern.  The star
// captures the run of fact elements between the pattern's fixed
// prefix and fixed suffix, which makes patterns like
//
//	["file", "upload", "?*files", "--to", "?dest"]
//
// work the way you'd hope.
func (m *Matcher) seqMatch(bindings Bindings, pattern, fact []interface{}) ([]Bindings, error) {
	star := -1
	for i, p := range pattern {
		if m.IsStarVariable(p) {
			if 0 <= star {
				return nil, errors.New("can't have multiple star variables in one sequence pattern")
			}
			star = i
		}
	}

	bss := []Bindings{bindings}
	var err error

	if star < 0 {
		if len(pattern) != len(fact) {
			return nil, nil
		}
		for i, p := range pattern {
			bss, err = m.matchWithBindingss(bss, p, fact[i])
			if nil != err {
				return nil, err
			}
			if 0 == len(bss) {
				return nil, nil
			}
		}
		return bss, nil
	}

	prefix := pattern[:star]
	suffix := pattern[star+1:]
	if len(fact) < len(prefix)+len(suffix) {
		return nil, nil
	}

	for i, p := range prefix {
		bss, err = m.matchWithBindingss(bss, p, fact[i])
		if nil != err {
			return nil, err
		}
		if 0 == len(bss) {
			return nil, nil
		}
	}
	for i, p := range suffix {
		bss, err = m.matchWithBindingss(bss, p, fact[len(fact)-len(suffix)+i])
		if nil != err {
			return nil, err
		}
		if 0 == len(bss) {
			return nil, nil
		}
	}

	s := pattern[star].(string)
	if s == "?*" {
		return bss, nil
	}

	rest := make([]interface{}, len(fact)-len(prefix)-len(suffix))
	copy(rest, fact[len(prefix):len(fact)-len(suffix)])

	// A star variable binds under its plain name ("?*words" binds
	// "?words").
	return m.matchWithBindingss(bss, "?"+s[2:], rest)
}

// isOperator reports whether the mapping is an operator pattern
// rather than a plain mapping pattern.
func isOperator(pattern map[string]interface{}) bool {
	for _, k := range []string{OrKey, AsKey, MatchKey, TypeKey} {
		if _, has := pattern[k]; has {
			return true
		}
	}
	return false
}

// kindOf names the kind of a (fudged) fact for TypeKey checks.
func kindOf(x interface{}) string {
	switch x.(type) {
	case nil:
		return "null"
	case bool:
		return "bool"
	case float64:
		return "number"
	case string:
		return "string"
	case []interface{}:
		return "list"
	case map[string]interface{}:
		return "map"
	default:
		return ""
	}
}

func (m *Matcher) matchOperator(pattern map[string]interface{}, fact interface{}, bindings Bindings) ([]Bindings, error) {
	if alts, has := pattern[OrKey]; has {
		if len(pattern) != 1 {
			return nil, errors.New(`"` + OrKey + `" can't be combined with other properties`)
		}
		xs, is := alts.([]interface{})
		if !is {
			return nil, errors.New(`"` + OrKey + `" wants a sequence of alternative patterns`)
		}
		// The first alternative that matches wins; an OR
		// commits to that alternative.
		for _, alt := range xs {
			bss, err := m.match(alt, fact, bindings.Copy())
			if nil != err {
				return nil, err
			}
			if 0 < len(bss) {
				return bss, nil
			}
		}
		return nil, nil
	}

	for k := range pattern {
		switch k {
		case AsKey, MatchKey, TypeKey:
		default:
			return nil, errors.New(`"` + k + `" can't appear in an operator pattern`)
		}
	}

	if kind, has := pattern[TypeKey]; has {
		s, is := kind.(string)
		if !is {
			return nil, errors.New(`"` + TypeKey + `" wants a string`)
		}
		switch s {
		case "null", "bool", "number", "string", "list", "map":
		default:
			return nil, errors.New(`unknown kind "` + s + `" for "` + TypeKey + `"`)
		}
		if kindOf(fact) != s {
			return nil, nil
		}
	}

	bss := []Bindings{bindings}
	var err error

	if sub, has := pattern[MatchKey]; has {
		bss, err = m.matchWithBindingss(bss, sub, fact)
		if nil != err {
			return nil, err
		}
		if 0 == len(bss) {
			return nil, nil
		}
	}

	if v, has := pattern[AsKey]; has {
		s, is := v.(string)
		if !is || !m.IsVariable(s) {
			return nil, errors.New(`"` + AsKey + `" wants a variable`)
		}
		return m.matchWithBindingss(bss, s, fact)
	}

	return bss, nil
}

// matchWithBindingss attempts to extend the given bindingss 'bss'
// from matches of the fact against the pattern.
//
// This function mostly just calls 'Match()'.
func (m *Matcher) matchWithBindingss(bss []Bindings, pattern interface{}, fact interface{}) ([]Bindings, error) {
	acc := make([]Bindings, 0, len(bss))
	for _, bs := range bss {
		matches, err := m.Match(pattern, fact, bs)
		if nil != err {
			return nil, err
		}
		if nil != matches {
			acc = append(acc, matches...)
		}
	}

	return acc, nil
}

// Matches attempts to match the given fact with the given pattern.
// Returns an array of 'Bindings'.  Each Bindings is just a map from
// variables to their values.
//
// Note that this function can return multiple (sets of) bindings.
// This ambiguity is introduced when a mapping pattern contains a
// property variable, which can range over the fact's keys.
func (m *Matcher) Matches(pattern interface{}, fact interface{}) ([]Bindings, error) {
	return m.Match(pattern, fact, make(Bindings))
}

// fudge is a hack to cast numbers to float64s.
func fudge(x interface{}) interface{} {
	switch vv := x.(type) {
	case float64:
		return vv
	case float32:
		return float64(vv)
	case int64:
		return float64(vv)
	case int32:
		return float64(vv)
	case int:
		return float64(vv)
	case Bindings:
		return map[string]interface{}(vv)
	default:
		return x
	}
}

// Match is a version of 'Matches' that takes initial bindings.
//
// Those initial bindings are not modified.
func (m *Matcher) Match(pattern interface{}, fact interface{}, bindings Bindings) ([]Bindings, error) {
	return m.match(pattern, fact, bindings.Copy())
}

// match is a version of 'Matches' that takes initial bindings (which
// can be modified).
func (m *Matcher) match(pattern interface{}, fact interface{}, bindings Bindings) ([]Bindings, error) {

	pattern = fudge(pattern)
	fact = fudge(fact)

	if bindings == nil {
		return nil, nil
	}

	switch vv := pattern.(type) {
	case nil:
		switch fact.(type) {
		case nil:
			return []Bindings{bindings}, nil
		default:
			return nil, nil
		}

	case bool:
		switch y := fact.(type) {
		case bool:
			if vv == y {
				return []Bindings{bindings}, nil
			}
			return nil, nil
		default:
			return nil, nil
		}

	case float64:
		switch y := fact.(type) {
		case float64:
			if vv == y {
				return []Bindings{bindings}, nil
			}
			return nil, nil
		default:
			return nil, nil
		}

	case string:
		if m.IsConstant(vv) {
			switch fs := fact.(type) {
			case string:
				if vv == fs {
					return []Bindings{bindings}, nil
				}
				return nil, nil
			default:
				return nil, nil
			}
		}
		// IsVariable
		if m.IsAnonymousVariable(vv) {
			return []Bindings{bindings}, nil
		}
		if m.IsStarVariable(vv) {
			return nil, errors.New(`star variable ("` + vv + `") outside a sequence pattern`)
		}
		v := vv
		if m.IsOptionalVariable(vv) {
			// An optional variable that sees a fact binds
			// under its plain name.
			v = "?" + vv[2:]
		}
		binding, found := bindings[v]
		if found {
			return m.match(binding, fact, bindings)
		}
		// Add new binding.
		bindings[v] = fact
		return []Bindings{bindings}, nil

	case map[string]interface{}:
		if isOperator(vv) {
			return m.matchOperator(vv, fact, bindings)
		}
		switch fm := fact.(type) {
		case map[string]interface{}:
			if 0 == len(vv) {
				// Empty mapping pattern matches any
				// given map.
				return []Bindings{bindings}, nil
			}
			return m.mapcatMatch([]Bindings{bindings}, vv, fm)
		default:
			return nil, nil
		}

	case []interface{}:
		switch fa := fact.(type) {
		case []interface{}:
			return m.seqMatch(bindings, vv, fa)
		default:
			return nil, nil
		}

	default:
		return nil, &UnknownPatternType{pattern}
	}
}

func copyBindingss(bss []Bindings) []Bindings {
	acc := make([]Bindings, 0, len(bss))
	for _, bs := range bss {
		acc = append(acc, bs.Copy())
	}

	return acc
}

// UnknownPatternType is an error that includes the thing that's
// causing the trouble.
type UnknownPatternType struct {
	Pattern interface{}
}

func (e *UnknownPatternType) Error() string {
	return "unknown pattern type"
}

func Match(pattern interface{}, fact interface{}, bindings Bindings) ([]Bindings, error) {
	return DefaultMatcher.Match(pattern, fact, bindings)
}

// Matches calls DefaultMatcher.Matches.
func Matches(pattern interface{}, fact interface{}) ([]Bindings, error) {
	return DefaultMatcher.Matches(pattern, fact)
}
