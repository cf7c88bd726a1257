package classify

import (
	"encoding/json"
)

// Canonicalize serializes the given value as JSON and parses the
// result, which is then the canonical form of that value: generic
// maps and sequences with all numbers as float64s.
func Canonicalize(x interface{}) (interface{}, error) {
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
