// patdemo runs the structural pattern matching demonstrations.
//
//	patdemo                run everything, in order
//	patdemo -only cli      run one demonstration
//	patdemo -list          list demonstration names
//	patdemo -catalog x.html  write the HTML catalog
package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"

	"github.com/sanamassaly/structmatch/demo"
	"github.com/sanamassaly/structmatch/tools"
)

// minGoVersion is the oldest Go runtime these demonstrations support.
const minGoVersion = "go1.21"

func main() {
	var (
		only    = flag.String("only", "", "run just the named demonstration")
		list    = flag.Bool("list", false, "list demonstration names and exit")
		catalog = flag.String("catalog", "", "write the HTML catalog to this file and exit")
	)

	flag.Parse()

	if !versionOK(runtime.Version(), minGoVersion) {
		fmt.Fprintf(os.Stderr, "error: %s or newer required (running %s)\n",
			minGoVersion, runtime.Version())
		os.Exit(1)
	}

	if *list {
		for _, d := range demo.All() {
			fmt.Printf("%s\n", d.Name)
		}
		return
	}

	if *catalog != "" {
		f, err := os.Create(*catalog)
		if err != nil {
			panic(err)
		}
		if err = tools.RenderCatalogHTML(demo.All(), f); err != nil {
			panic(err)
		}
		if err = f.Close(); err != nil {
			panic(err)
		}
		return
	}

	ds := demo.All()
	if *only != "" {
		d := demo.Find(*only)
		if d == nil {
			fmt.Fprintf(os.Stderr, "error: no demonstration named '%s'\n", *only)
			os.Exit(1)
		}
		ds = []*demo.Demo{d}
	}

	for _, d := range ds {
		if err := d.Run(os.Stdout); err != nil {
			panic(err)
		}
	}
}

// versionOK reports whether the running Go version (like "go1.22.3")
// satisfies the minimum (like "go1.21").
//
// A version that doesn't parse (a development build, say) is assumed
// to be new enough.
func versionOK(have, min string) bool {
	h, ok := versionNums(have)
	if !ok {
		return true
	}
	m, ok := versionNums(min)
	if !ok {
		return true
	}
	for i := 0; i < len(m); i++ {
		var x int
		if i < len(h) {
			x = h[i]
		}
		if x != m[i] {
			return m[i] < x
		}
	}
	return true
}

func versionNums(v string) ([]int, bool) {
	if !strings.HasPrefix(v, "go") {
		return nil, false
	}
	parts := strings.Split(v[2:], ".")
	ns := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return nil, false
		}
		ns = append(ns, n)
	}
	return ns, true
}
