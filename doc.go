// Package structmatch provides structural pattern matching over
// JSON-ish values, along with runnable demonstrations of every
// pattern construct.
//
// The matcher is in package 'match', ordered case selection is in
// package 'classify', and the demonstration program is in
// 'cmd/patdemo'.
package structmatch
