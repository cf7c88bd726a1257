package demo

import (
	"fmt"
	"io"

	"github.com/sanamassaly/structmatch/classify"
)

// Literal patterns with a wildcard fallback.

var statusClassifier = &classify.Classifier{
	Name: "status",
	Doc:  "Classify an HTTP status code by matching literal values.",
	Cases: []*classify.Case{
		{Pattern: 200, Result: "OK - request succeeded"},
		{Pattern: 404, Result: "Not Found - no such page"},
		{Pattern: 500, Result: "Internal Server Error"},
		{Pattern: "?code", Result: "unknown code: ?code"},
	},
}

// StatusMessage classifies an HTTP status code.
func StatusMessage(code int) (string, error) {
	out, err := run(statusClassifier, code)
	if err != nil {
		return "", err
	}
	return out.Result.(string), nil
}

var Status = &Demo{
	Name:  "status",
	Title: "EXAMPLE 1: Basic literal match",
	Doc: `Match a status code against literal values.  The final case
captures anything else, so there's always an answer.`,
	Classifiers: []*classify.Classifier{statusClassifier},
}

func runStatus(w io.Writer) error {
	banner(w, Status.Title)
	for _, code := range []int{200, 404, 500, 418} {
		msg, err := StatusMessage(code)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "Code %d: %s\n", code, msg)
	}
	return nil
}

func init() { Status.Run = runStatus }
