package demo

import (
	"fmt"
	"io"

	"github.com/sanamassaly/structmatch/classify"
)

// OR patterns, AS captures, and a type check.

var httpClassClassifier = &classify.Classifier{
	Name: "httpclass",
	Doc: `Group status codes into classes with "$or", and use "$as" to
keep the matched code available for the message.`,
	Cases: []*classify.Case{
		{
			Pattern: map[string]interface{}{
				"$or": []interface{}{200, 201, 204},
			},
			Result: "success",
		},
		{
			Pattern: map[string]interface{}{
				"$as":    "?code",
				"$match": map[string]interface{}{"$or": []interface{}{301, 302, 307, 308}},
			},
			Result: "redirect (?code)",
		},
		{
			Pattern: map[string]interface{}{
				"$as":    "?code",
				"$match": map[string]interface{}{"$or": []interface{}{400, 401, 403, 404}},
			},
			Result: "client error (?code)",
		},
		{
			Pattern: map[string]interface{}{
				"$as":    "?code",
				"$match": map[string]interface{}{"$or": []interface{}{500, 502, 503}},
			},
			Result: "server error (?code)",
		},
		{
			Pattern: map[string]interface{}{"$type": "number", "$as": "?code"},
			GuardSource: &classify.GuardSource{
				Interpreter: "goja",
				Source:      `var c = _.bindings["?code"]; return 100 <= c && c < 200;`,
			},
			Result: "informational (?code)",
		},
		{
			Result: "unknown code",
		},
	},
}

// HTTPClassMessage names the class of an HTTP status code.
func HTTPClassMessage(code int) (string, error) {
	out, err := run(httpClassClassifier, code)
	if err != nil {
		return "", err
	}
	return out.Result.(string), nil
}

var HTTPClasses = &Demo{
	Name:  "httpclass",
	Title: "EXAMPLE 7: OR and AS",
	Doc: `"$or" tries alternatives in order; "$as" binds the whole
matched value so the message can echo it.`,
	Classifiers: []*classify.Classifier{httpClassClassifier},
}

func runHTTPClasses(w io.Writer) error {
	banner(w, HTTPClasses.Title)
	for _, code := range []int{200, 201, 301, 404, 500, 100, 999} {
		msg, err := HTTPClassMessage(code)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "HTTP %d: %s\n", code, msg)
	}
	return nil
}

func init() { HTTPClasses.Run = runHTTPClasses }
