package classify

import (
	"github.com/jsccast/yaml"
)

// FromYAML parses a Classifier from YAML.
//
// The result still needs to be Compiled before use (to parse string
// patterns and compile guard sources).
func FromYAML(bs []byte) (*Classifier, error) {
	var c Classifier
	if err := yaml.Unmarshal(bs, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// MustFromYAML is FromYAML for embedded classifier sources.
func MustFromYAML(src string) *Classifier {
	c, err := FromYAML([]byte(src))
	if err != nil {
		panic(err)
	}
	return c
}
