// Package demo contains the runnable pattern matching
// demonstrations.
//
// Each demonstration is self-contained: it builds one or more
// classifiers, runs them against a fixed list of sample inputs, and
// prints each classification.  Demonstrations share no state.
package demo

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/sanamassaly/structmatch/classify"
	"github.com/sanamassaly/structmatch/interpreters"
)

// Demo is one self-contained demonstration.
type Demo struct {
	// Name is the short name used by 'patdemo -only'.
	Name string

	// Title is the banner line printed when the demonstration
	// runs.
	Title string

	// Doc describes the demonstration (in Markdown) for the HTML
	// catalog.
	Doc string

	// Classifiers are the classifiers behind the demonstration,
	// exposed so the catalog can render their cases.
	Classifiers []*classify.Classifier

	// Run writes the demonstration's output.
	Run func(w io.Writer) error
}

// All returns the demonstrations in presentation order.
func All() []*Demo {
	return []*Demo{
		Status,
		Commands,
		Points,
		Requests,
		Ages,
		Shapes,
		HTTPClasses,
		Signup,
		CLI,
		Reference,
	}
}

// Find returns the named demonstration (or nil).
func Find(name string) *Demo {
	for _, d := range All() {
		if d.Name == name {
			return d
		}
	}
	return nil
}

// Interpreters is the interpreter map used to compile the
// demonstrations' guards.
var Interpreters = interpreters.Standard()

// run compiles the classifier if necessary and classifies the fact.
func run(c *classify.Classifier, fact interface{}) (*classify.Outcome, error) {
	ctx := context.Background()
	if err := c.Compile(ctx, Interpreters, false); err != nil {
		return nil, err
	}
	return c.Classify(ctx, fact)
}

func banner(w io.Writer, title string) {
	fmt.Fprintf(w, "\n%s\n", strings.Repeat("=", 50))
	fmt.Fprintf(w, "%s\n", title)
	fmt.Fprintf(w, "%s\n", strings.Repeat("=", 50))
}
