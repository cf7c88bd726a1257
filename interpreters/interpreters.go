package interpreters

import (
	"github.com/sanamassaly/structmatch/classify"
	"github.com/sanamassaly/structmatch/interpreters/goja"
)

// Standard returns the interpreters this repo's classifiers use.
func Standard() classify.InterpretersMap {
	is := classify.NewInterpretersMap()

	gi := goja.NewInterpreter()
	is["goja"] = gi
	is["ecmascript"] = gi
	is["ecmascript-5.1"] = gi

	return is
}
