package demo

import (
	"fmt"
	"io"

	"github.com/sanamassaly/structmatch/classify"
	"github.com/sanamassaly/structmatch/util/testutil"
)

// Class-style matching: small value records that render themselves as
// tagged maps, so attribute patterns can destructure them.

type Point struct {
	X, Y float64
}

type Circle struct {
	Center Point
	Radius float64
}

type Rectangle struct {
	Corner        Point
	Width, Height float64
}

func (p Point) value() map[string]interface{} {
	return map[string]interface{}{"x": p.X, "y": p.Y}
}

func (c Circle) value() map[string]interface{} {
	return map[string]interface{}{
		"shape":  "circle",
		"center": c.Center.value(),
		"radius": c.Radius,
	}
}

func (r Rectangle) value() map[string]interface{} {
	return map[string]interface{}{
		"shape":  "rectangle",
		"corner": r.Corner.value(),
		"width":  r.Width,
		"height": r.Height,
	}
}

type valuer interface {
	value() map[string]interface{}
}

// shapeFact renders a shape for matching; anything else passes
// through untouched.
func shapeFact(x interface{}) interface{} {
	if v, is := x.(valuer); is {
		return v.value()
	}
	return x
}

var shapesClassifier = &classify.Classifier{
	Name: "shapes",
	Doc: `Match values by class tag and attributes.  The guards reject
degenerate shapes and compute areas for the rest.`,
	Cases: []*classify.Case{
		{
			Pattern: map[string]interface{}{
				"shape":  "circle",
				"center": map[string]interface{}{"x": "?x", "y": "?y"},
				"radius": "?r",
			},
			GuardSource: &classify.GuardSource{
				Interpreter: "goja",
				Source: `var bs = _.bindings;
var r = bs["?r"];
if (!(r > 0)) return false;
bs["?area"] = (Math.PI * r * r).toFixed(2);
return bs;`,
			},
			Result: "circle at (?x,?y), area = ?area",
		},
		{
			Pattern: map[string]interface{}{
				"shape":  "rectangle",
				"corner": map[string]interface{}{"x": "?x", "y": "?y"},
				"width":  "?w",
				"height": "?h",
			},
			GuardSource: &classify.GuardSource{
				Interpreter: "goja",
				Source: `var bs = _.bindings;
var w = bs["?w"], h = bs["?h"];
if (!(w > 0 && h > 0)) return false;
bs["?area"] = (w * h).toFixed(2);
return bs;`,
			},
			Result: "rectangle at (?x,?y), area = ?area",
		},
		{
			Pattern: map[string]interface{}{"shape": "circle", "radius": "?r"},
			GuardSource: &classify.GuardSource{
				Interpreter: "goja",
				Source:      `return _.bindings["?r"] <= 0;`,
			},
			Result: "invalid radius",
		},
		{
			Pattern: map[string]interface{}{"shape": "rectangle", "width": "?w", "height": "?h"},
			GuardSource: &classify.GuardSource{
				Interpreter: "goja",
				Source:      `var bs = _.bindings; return bs["?w"] <= 0 || bs["?h"] <= 0;`,
			},
			Result: "invalid dimensions",
		},
		{
			Result: "unrecognized shape",
		},
	},
}

// AreaMessage classifies a shape and reports its area.
func AreaMessage(shape interface{}) (string, error) {
	out, err := run(shapesClassifier, shapeFact(shape))
	if err != nil {
		return "", err
	}
	return out.Result.(string), nil
}

var Shapes = &Demo{
	Name:  "shapes",
	Title: "EXAMPLE 6: Classes and records",
	Doc: `Value records (a circle, a rectangle) render themselves as
maps with a class tag, which makes attribute-based matching just
another mapping pattern.`,
	Classifiers: []*classify.Classifier{shapesClassifier},
}

func runShapes(w io.Writer) error {
	banner(w, Shapes.Title)
	shapes := []interface{}{
		Circle{Point{0, 0}, 5},
		Rectangle{Point{1, 1}, 4, 3},
		Circle{Point{0, 0}, -1},
		"triangle",
	}
	for _, s := range shapes {
		msg, err := AreaMessage(s)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\n", testutil.JS(shapeFact(s)))
		fmt.Fprintf(w, "  -> %s\n\n", msg)
	}
	return nil
}

func init() { Shapes.Run = runShapes }
