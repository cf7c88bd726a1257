package demo

import (
	"fmt"
	"io"

	"github.com/sanamassaly/structmatch/classify"
	"github.com/sanamassaly/structmatch/util/testutil"
)

// Form validation: one happy path, then targeted error cases.

var signupClassifier = &classify.Classifier{
	Name: "signup",
	Doc: `Validate a signup form.  The first case accepts a complete,
consistent submission; the following cases each diagnose one way the
form can be wrong, most specific first.`,
	Cases: []*classify.Case{
		{
			Pattern: map[string]interface{}{
				"email":            map[string]interface{}{"$type": "string", "$as": "?email"},
				"password":         map[string]interface{}{"$type": "string", "$as": "?pwd"},
				"password_confirm": map[string]interface{}{"$type": "string", "$as": "?confirm"},
				"telephone":        map[string]interface{}{"$type": "string", "$as": "?tel"},
				"$rest":            "?extras",
			},
			GuardSource: &classify.GuardSource{
				Interpreter: "goja",
				Source: `var bs = _.bindings;
if (bs["?email"].indexOf("@") < 0) return false;
if (bs["?pwd"].length < 8) return false;
if (bs["?pwd"] !== bs["?confirm"]) return false;
return bs;`,
			},
			Result: map[string]interface{}{
				"status":  "success",
				"message": "signup accepted for ?email",
				"extras":  "?extras",
			},
		},
		{
			Pattern: map[string]interface{}{"email": "?email"},
			GuardSource: &classify.GuardSource{
				Interpreter: "goja",
				Source:      `return String(_.bindings["?email"]).indexOf("@") < 0;`,
			},
			Result: map[string]interface{}{
				"status":  "error",
				"field":   "email",
				"message": "invalid email",
			},
		},
		{
			Pattern: map[string]interface{}{"password": "?pwd"},
			GuardSource: &classify.GuardSource{
				Interpreter: "goja",
				Source:      `return String(_.bindings["?pwd"]).length < 8;`,
			},
			Result: map[string]interface{}{
				"status":  "error",
				"field":   "password",
				"message": "password too short (min 8 characters)",
			},
		},
		{
			Pattern: map[string]interface{}{
				"password":         "?pwd",
				"password_confirm": "?confirm",
			},
			GuardSource: &classify.GuardSource{
				Interpreter: "goja",
				Source:      `return _.bindings["?pwd"] !== _.bindings["?confirm"];`,
			},
			Result: map[string]interface{}{
				"status":  "error",
				"field":   "password_confirm",
				"message": "passwords do not match",
			},
		},
		{
			Pattern: map[string]interface{}{"email": "?"},
			Result: map[string]interface{}{
				"status":  "error",
				"message": "missing fields",
			},
		},
		{
			Result: map[string]interface{}{
				"status":  "error",
				"message": "invalid data",
			},
		},
	},
}

// ValidateSignup validates a signup form submission.
func ValidateSignup(form interface{}) (map[string]interface{}, error) {
	out, err := run(signupClassifier, form)
	if err != nil {
		return nil, err
	}
	return out.Result.(map[string]interface{}), nil
}

var Signup = &Demo{
	Name:  "signup",
	Title: "EXAMPLE 8: Form validation",
	Doc: `A practical composition: type checks via "$type", extra
fields via "$rest", and a guard for the conditions a shape can't
express.`,
	Classifiers: []*classify.Classifier{signupClassifier},
}

func runSignup(w io.Writer) error {
	banner(w, Signup.Title)
	forms := []interface{}{
		map[string]interface{}{
			"email":            "sana@dev.sn",
			"password":         "secure123",
			"password_confirm": "secure123",
			"telephone":        "+221771234567",
			"newsletter":       true,
		},
		map[string]interface{}{
			"email":            "invalid-email",
			"password":         "test",
			"password_confirm": "test",
			"telephone":        "123",
		},
		map[string]interface{}{
			"email":            "ok@test.com",
			"password":         "short",
			"password_confirm": "short",
			"telephone":        "123",
		},
		map[string]interface{}{
			"email":            "ok@test.com",
			"password":         "longpassword",
			"password_confirm": "different",
			"telephone":        "123",
		},
		map[string]interface{}{"email": "only@email.com"},
	}
	for i, form := range forms {
		result, err := ValidateSignup(form)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "form %d: %s\n", i+1, testutil.JS(form))
		fmt.Fprintf(w, "  -> %s\n\n", testutil.JS(result))
	}
	return nil
}

func init() { Signup.Run = runSignup }
