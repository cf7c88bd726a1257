package demo

import (
	"fmt"
	"io"
)

// referenceTable is the printed summary of the pattern constructs.
const referenceTable = `
  PATTERN     EXAMPLE
  ----------  ------------------------------------------
  Literal     200, "quit", true, null
  Capture     "?x"
  Wildcard    "?"
  Optional    "??x"
  Sequence    ["add", "?x", "?y"]
  Star        ["send", "?to", "?*words"]
  Mapping     {"action": "login", "username": "?user"}
  Rest        {"email": "?email", "$rest": "?extras"}
  OR          {"$or": [301, 302, 307, 308]}
  AS          {"$as": "?code", "$match": {"$or": [1, 2]}}
  Type        {"$type": "string", "$as": "?email"}
  Guard       return _.bindings["?x"] > 0;

  PRACTICE NOTES:
    1. Put the most specific cases FIRST.
    2. End with a default case (nil pattern) so there's
       always an answer.
    3. Use guards for conditions a shape can't express.
    4. Variables in patterns are CAPTURES, not
       comparisons.  To compare against a value you
       already have, pass it in the initial bindings or
       use a guard.
`

// ReferenceTable returns the plain-text pattern reference.
func ReferenceTable() string {
	return referenceTable
}

var Reference = &Demo{
	Name:  "reference",
	Title: "SUMMARY: pattern constructs",
	Doc: `The whole pattern language on one screen, plus the habits
that keep classifiers predictable.`,
}

func runReference(w io.Writer) error {
	banner(w, Reference.Title)
	fmt.Fprint(w, referenceTable)
	return nil
}

func init() { Reference.Run = runReference }
