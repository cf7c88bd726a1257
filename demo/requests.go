package demo

import (
	"fmt"
	"io"

	"github.com/sanamassaly/structmatch/classify"
	"github.com/sanamassaly/structmatch/util/testutil"
)

// Mapping patterns over API-style payloads.

var requestsClassifier = &classify.Classifier{
	Name: "requests",
	Doc: `Dispatch an API payload on its shape.  Mapping patterns match
partially, "$rest" gathers the unmatched properties, and a sequence
pattern inside the order case picks the first item.`,
	Cases: []*classify.Case{
		{
			Pattern: map[string]interface{}{
				"action":   "login",
				"username": "?user",
				"password": "?",
			},
			Result: "login attempt by ?user",
		},
		{
			Pattern: map[string]interface{}{
				"action": "signup",
				"email":  "?email",
				"$rest":  "?extras",
			},
			Result: "signup with email ?email",
		},
		{
			Pattern: map[string]interface{}{
				"action": "order",
				"items":  []interface{}{"?first", "?*more"},
			},
			GuardSource: &classify.GuardSource{
				Interpreter: "goja",
				Source: `var bs = _.bindings;
bs["?count"] = bs["?more"].length + 1;
return bs;`,
			},
			Result: "ordering ?count item(s), first: ?first",
		},
		{
			Pattern: map[string]interface{}{"error": "?msg"},
			Result:  "error: ?msg",
		},
		{
			// An empty mapping pattern matches any map.
			Pattern: map[string]interface{}{},
			Result:  "empty request",
		},
		{
			Result: "unknown request format",
		},
	},
}

// RequestMessage classifies an API payload.
func RequestMessage(payload interface{}) (string, error) {
	out, err := run(requestsClassifier, payload)
	if err != nil {
		return "", err
	}
	return out.Result.(string), nil
}

var Requests = &Demo{
	Name:  "requests",
	Title: "EXAMPLE 4: Mappings (JSON/API)",
	Doc: `Mapping patterns are the natural fit for JSON payloads:
required keys must match, and everything else is ignored (or captured
with "$rest").`,
	Classifiers: []*classify.Classifier{requestsClassifier},
}

func runRequests(w io.Writer) error {
	banner(w, Requests.Title)
	payloads := []interface{}{
		map[string]interface{}{"action": "login", "username": "sana", "password": "secret123"},
		map[string]interface{}{"action": "signup", "email": "dev@senegal.sn", "name": "Diallo"},
		map[string]interface{}{"action": "order", "items": []interface{}{"laptop", "mouse", "keyboard"}},
		map[string]interface{}{"error": "token expired"},
		map[string]interface{}{},
		"not a map",
	}
	for _, payload := range payloads {
		msg, err := RequestMessage(payload)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\n", testutil.JS(payload))
		fmt.Fprintf(w, "  -> %s\n\n", msg)
	}
	return nil
}

func init() { Requests.Run = runRequests }
