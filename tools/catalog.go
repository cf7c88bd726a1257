// Package tools renders demonstration catalogs.
package tools

import (
	"fmt"
	"io"

	"github.com/sanamassaly/structmatch/classify"
	"github.com/sanamassaly/structmatch/demo"

	. "github.com/sanamassaly/structmatch/util/testutil"

	md "github.com/russross/blackfriday/v2"
)

// RenderCatalogHTML writes an HTML catalog of the given
// demonstrations: docs rendered from Markdown, classifier cases as
// tables.
func RenderCatalogHTML(demos []*demo.Demo, out io.Writer) error {
	f := func(format string, args ...interface{}) {
		fmt.Fprintf(out, format+"\n", args...)
	}

	f(`<!DOCTYPE html>`)
	f(`<html><head><meta charset="utf-8"><title>pattern matching demonstrations</title></head><body>`)

	for _, d := range demos {
		f(`<div class="demo">`)
		f(`<h2 id="%s">%s</h2>`, d.Name, d.Title)
		if d.Doc != "" {
			f(`<div class="demoDoc doc">%s</div>`, md.Run([]byte(d.Doc)))
		}
		for _, c := range d.Classifiers {
			if err := RenderClassifierHTML(c, out); err != nil {
				return err
			}
		}
		f(`</div>`)
	}

	f(`</body></html>`)

	return nil
}

// RenderClassifierHTML writes one classifier's cases as a table.
func RenderClassifierHTML(c *classify.Classifier, out io.Writer) error {
	f := func(format string, args ...interface{}) {
		fmt.Fprintf(out, format+"\n", args...)
	}

	f(`<div class="classifier">`)
	if c.Doc != "" {
		f(`<div class="classifierDoc doc">%s</div>`, md.Run([]byte(c.Doc)))
	}
	f(`<table>`)
	for i, cs := range c.Cases {
		f(`<tr><td><div class="caseNum">%d</div></td><td>`, i)
		f(`<table>`)
		if cs.Doc != "" {
			f(`<tr><td></td><td>doc</td>`)
			f(`<td><div class="caseDoc doc">%s</div></td></tr>`, md.Run([]byte(cs.Doc)))
		}
		if cs.Pattern != nil {
			f(`<tr><td></td><td>pattern</td>`)
			f(`<td><code>%s</code></td></tr>`, JS(cs.Pattern))
		} else {
			f(`<tr><td></td><td>pattern</td>`)
			f(`<td><em>default</em></td></tr>`)
		}
		if cs.GuardSource != nil {
			f(`<tr><td></td><td>guard</td>`)
			f(`<td><div class="code"><pre>%s</pre></div></td></tr>`, cs.GuardSource.Source)
		}
		if cs.Result != nil {
			f(`<tr><td></td><td>result</td>`)
			f(`<td><code>%s</code></td></tr>`, JS(cs.Result))
		}
		f(`</table>`)
		f(`</td></tr>`)
	}
	f(`</table>`)
	f(`</div>`)

	return nil
}
