package demo

import (
	"fmt"
	"io"

	"github.com/sanamassaly/structmatch/classify"
	"github.com/sanamassaly/structmatch/util/testutil"
)

// Guards: the same pattern, successively weaker conditions.

func ageGuard(src string) *classify.GuardSource {
	return &classify.GuardSource{Interpreter: "goja", Source: src}
}

func agePattern() map[string]interface{} {
	return map[string]interface{}{"name": "?name", "age": "?age"}
}

var agesClassifier = &classify.Classifier{
	Name: "ages",
	Doc: `Every case matches the same shape; the guards decide.  Order
matters: each guard only sees what the previous guards let through.`,
	Cases: []*classify.Case{
		{
			Pattern:     agePattern(),
			GuardSource: ageGuard(`return _.bindings["?age"] < 0;`),
			Result:      "invalid age for ?name",
		},
		{
			Pattern:     agePattern(),
			GuardSource: ageGuard(`return _.bindings["?age"] < 13;`),
			Result:      "?name is a child",
		},
		{
			Pattern:     agePattern(),
			GuardSource: ageGuard(`return _.bindings["?age"] < 20;`),
			Result:      "?name is a teenager",
		},
		{
			Pattern:     agePattern(),
			GuardSource: ageGuard(`return _.bindings["?age"] < 60;`),
			Result:      "?name is an adult",
		},
		{
			Pattern: agePattern(),
			Result:  "?name is a senior",
		},
		{
			Result: "invalid format",
		},
	},
}

// AgeMessage classifies a person record.
func AgeMessage(person interface{}) (string, error) {
	out, err := run(agesClassifier, person)
	if err != nil {
		return "", err
	}
	return out.Result.(string), nil
}

var Ages = &Demo{
	Name:  "ages",
	Title: "EXAMPLE 5: Guards",
	Doc: `Attach a condition to a case.  The pattern gets the shape and
the captures; the guard gets the decision.`,
	Classifiers: []*classify.Classifier{agesClassifier},
}

func runAges(w io.Writer) error {
	banner(w, Ages.Title)
	people := []interface{}{
		map[string]interface{}{"name": "Amadou", "age": 8},
		map[string]interface{}{"name": "Fatou", "age": 16},
		map[string]interface{}{"name": "Moussa", "age": 35},
		map[string]interface{}{"name": "Mariama", "age": 70},
		map[string]interface{}{"name": "Bug", "age": -5},
	}
	for _, p := range people {
		msg, err := AgeMessage(p)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s -> %s\n", testutil.JS(p), msg)
	}
	return nil
}

func init() { Ages.Run = runAges }
