package demo

import (
	"fmt"
	"io"
	"strings"

	"github.com/sanamassaly/structmatch/classify"
)

// Sequence patterns with captures and a star variable.

var commandsClassifier = &classify.Classifier{
	Name: "commands",
	Doc: `Interpret a chat-style command line.  Captures pull the
arguments out, and a star variable gathers the tail of a "send".`,
	Cases: []*classify.Case{
		{
			Pattern: []interface{}{"quit"},
			Result:  "goodbye!",
		},
		{
			Pattern: []interface{}{"hello", "?name"},
			Result:  "hello, ?name!",
		},
		{
			Pattern: []interface{}{"add", "?x", "?y"},
			GuardSource: &classify.GuardSource{
				Interpreter: "goja",
				Source: `var bs = _.bindings;
var sum = Number(bs["?x"]) + Number(bs["?y"]);
if (isNaN(sum)) return false;
bs["?sum"] = sum;
return bs;`,
			},
			Result: "?x + ?y = ?sum",
		},
		{
			Pattern: []interface{}{"send", "?to", "?*words"},
			GuardSource: &classify.GuardSource{
				Interpreter: "goja",
				Source: `var bs = _.bindings;
bs["?message"] = bs["?words"].join(" ");
return bs;`,
			},
			Result: "sending to ?to: ?message",
		},
		{
			Result: "unrecognized command",
		},
	},
}

// CommandMessage interprets one command line.
func CommandMessage(command string) (string, error) {
	fields := strings.Fields(command)
	args := make([]interface{}, len(fields))
	for i, f := range fields {
		args[i] = f
	}
	out, err := run(commandsClassifier, args)
	if err != nil {
		return "", err
	}
	return out.Result.(string), nil
}

var Commands = &Demo{
	Name:  "commands",
	Title: "EXAMPLE 2: Captures",
	Doc: `Split a command line into words and match the result as a
sequence.  "add" shows a guard computing with captured values;
"send" shows a star variable capturing the rest of the line.`,
	Classifiers: []*classify.Classifier{commandsClassifier},
}

func runCommands(w io.Writer) error {
	banner(w, Commands.Title)
	commands := []string{
		"quit",
		"hello Sana",
		"add 5 3",
		"send client@email.com your order is ready",
		"unknown command",
	}
	for _, cmd := range commands {
		msg, err := CommandMessage(cmd)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "'%s' -> %s\n", cmd, msg)
	}
	return nil
}

func init() { Commands.Run = runCommands }
