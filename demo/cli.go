package demo

import (
	"fmt"
	"io"
	"strings"

	"github.com/sanamassaly/structmatch/classify"
)

// A CLI dispatcher, defined entirely in YAML: patterns as JSON
// strings, guards as ECMAScript.

const cliSource = `
name: cli
doc: |
  Argv dispatch for a little project-management tool.
patternSyntax: json
cases:
  - pattern: '{"$or": [["help"], ["-h"], ["--help"]]}'
    result: "showing help..."
  - pattern: '{"$or": [["version"], ["-v"]]}'
    result: "version 1.0.0"
  - pattern: '["project", "create", "?name"]'
    result: "creating project '?name'"
  - pattern: '["project", "delete", "?name", "--force"]'
    result: "force-deleting project '?name'"
  - pattern: '["project", "list"]'
    result: "listing projects..."
  - pattern: '["file", "upload", "?*files", "--to", "?dest"]'
    guard:
      interpreter: goja
      source: |
        var bs = _.bindings;
        bs["?count"] = bs["?files"].length;
        return bs;
    result: "uploading ?count file(s) to ?dest"
  - pattern: '["file", "upload", "?*files"]'
    guard:
      interpreter: goja
      source: |
        var bs = _.bindings;
        if (bs["?files"].length == 0) return false;
        bs["?count"] = bs["?files"].length;
        return bs;
    result: "uploading ?count file(s) to ./uploads/"
  - pattern: '["user", "add", "?email"]'
    guard:
      interpreter: goja
      source: |
        return String(_.bindings["?email"]).indexOf("@") >= 0;
    result: "adding user ?email"
  - pattern: '["user", "add", "?"]'
    result: "invalid email"
  - pattern: '["config", "set", "?setting"]'
    guard:
      interpreter: goja
      source: |
        var bs = _.bindings;
        var s = String(bs["?setting"]);
        var i = s.indexOf("=");
        if (i < 0) return false;
        bs["?key"] = s.slice(0, i);
        bs["?value"] = s.slice(i + 1);
        return bs;
    result: "setting ?key = ?value"
  - pattern: '[]'
    result: "type 'help' to see available commands"
  - pattern: '["?cmd", "?*"]'
    result: "unknown command: ?cmd"
`

var cliClassifier = classify.MustFromYAML(cliSource)

// ExecuteCommand dispatches a command line given as argv.
func ExecuteCommand(args []string) (string, error) {
	argv := make([]interface{}, len(args))
	for i, a := range args {
		argv[i] = a
	}
	out, err := run(cliClassifier, argv)
	if err != nil {
		return "", err
	}
	return out.Result.(string), nil
}

var CLI = &Demo{
	Name:  "cli",
	Title: "EXAMPLE 9: CLI dispatcher",
	Doc: `The whole dispatcher lives in a YAML document: JSON patterns,
ECMAScript guards, and result templates.  The Go side just splits the
command line.`,
	Classifiers: []*classify.Classifier{cliClassifier},
}

func runCLI(w io.Writer) error {
	banner(w, CLI.Title)
	commands := [][]string{
		{"help"},
		{"version"},
		{"project", "create", "kaay-signe"},
		{"project", "delete", "old-project", "--force"},
		{"project", "list"},
		{"file", "upload", "doc1.pdf", "doc2.pdf", "--to", "/documents"},
		{"file", "upload", "image.png"},
		{"user", "add", "dev@senegal.sn"},
		{"user", "add", "invalid"},
		{"config", "set", "DEBUG=true"},
		{},
		{"unknown", "command"},
	}
	for _, cmd := range commands {
		msg, err := ExecuteCommand(cmd)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "$ app %s\n", strings.Join(cmd, " "))
		fmt.Fprintf(w, "  -> %s\n\n", msg)
	}
	return nil
}

func init() { CLI.Run = runCLI }
