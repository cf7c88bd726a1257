package classify

import (
	"encoding/json"
	"sort"
	"strconv"
	"strings"

	"github.com/sanamassaly/structmatch/match"
)

// Subst replaces pattern variables in a result template with their
// bound values.
//
// A string that is exactly a variable is replaced by the bound value
// itself (preserving its type).  A variable inside a longer string is
// replaced by a rendering of its value.  Maps and sequences are
// processed recursively.  Unbound variables are left alone.
func Subst(template interface{}, bs match.Bindings) interface{} {
	switch vv := template.(type) {
	case string:
		if v, have := bs[vv]; have {
			return v
		}
		return substString(vv, bs)
	case []interface{}:
		acc := make([]interface{}, len(vv))
		for i, x := range vv {
			acc[i] = Subst(x, bs)
		}
		return acc
	case map[string]interface{}:
		acc := make(map[string]interface{}, len(vv))
		for k, x := range vv {
			acc[substString(k, bs)] = Subst(x, bs)
		}
		return acc
	default:
		return template
	}
}

// substString replaces variable tokens inside a string.
//
// Longer variables are replaced first so that "?n" can't clobber an
// occurrence of "?name".
func substString(s string, bs match.Bindings) string {
	if !strings.Contains(s, "?") {
		return s
	}
	vs := make([]string, 0, len(bs))
	for v := range bs {
		vs = append(vs, v)
	}
	sort.Slice(vs, func(i, j int) bool {
		if len(vs[i]) != len(vs[j]) {
			return len(vs[j]) < len(vs[i])
		}
		return vs[i] < vs[j]
	})
	for _, v := range vs {
		if !strings.Contains(s, v) {
			continue
		}
		s = strings.ReplaceAll(s, v, render(bs[v]))
	}
	return s
}

// render gives the in-string representation of a bound value.
func render(x interface{}) string {
	switch vv := x.(type) {
	case nil:
		return "null"
	case string:
		return vv
	case bool:
		if vv {
			return "true"
		}
		return "false"
	case float64:
		return strconv.FormatFloat(vv, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(vv), 'f', -1, 64)
	case int:
		return strconv.Itoa(vv)
	case int32:
		return strconv.FormatInt(int64(vv), 10)
	case int64:
		return strconv.FormatInt(vv, 10)
	default:
		js, err := json.Marshal(&x)
		if err != nil {
			return "?"
		}
		return string(js)
	}
}
