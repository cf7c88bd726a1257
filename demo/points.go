package demo

import (
	"fmt"
	"io"

	"github.com/sanamassaly/structmatch/classify"
	"github.com/sanamassaly/structmatch/util/testutil"
)

// Positional sequence patterns mixing literals and captures.

var pointsClassifier = &classify.Classifier{
	Name: "points",
	Doc: `Destructure a point given as a sequence of coordinates.  The
most specific cases come first: the origin, then the axes, then any
2D or 3D point.`,
	Cases: []*classify.Case{
		{Pattern: []interface{}{0, 0}, Result: "origin"},
		{Pattern: []interface{}{0, "?y"}, Result: "on the y axis at y=?y"},
		{Pattern: []interface{}{"?x", 0}, Result: "on the x axis at x=?x"},
		{Pattern: []interface{}{"?x", "?y"}, Result: "point (?x, ?y)"},
		{Pattern: []interface{}{"?x", "?y", "?z"}, Result: "3D point (?x, ?y, ?z)"},
		{Result: "invalid format"},
	},
}

// PointMessage classifies a point (or whatever else is given).
func PointMessage(point interface{}) (string, error) {
	out, err := run(pointsClassifier, point)
	if err != nil {
		return "", err
	}
	return out.Result.(string), nil
}

var Points = &Demo{
	Name:  "points",
	Title: "EXAMPLE 3: Sequences",
	Doc: `Match sequences positionally.  Literal elements pin
coordinates to zero while captures pick up the rest.`,
	Classifiers: []*classify.Classifier{pointsClassifier},
}

func runPoints(w io.Writer) error {
	banner(w, Points.Title)
	points := []interface{}{
		[]interface{}{0, 0},
		[]interface{}{0, 5},
		[]interface{}{3, 0},
		[]interface{}{2, 4},
		[]interface{}{1, 2, 3},
		"invalid",
	}
	for _, p := range points {
		msg, err := PointMessage(p)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s -> %s\n", testutil.JS(p), msg)
	}
	return nil
}

func init() { Points.Run = runPoints }
