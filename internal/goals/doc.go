// Package goals defines the degree targets a program is checked
// against and evaluates them.
//
// Each goal is a small value type holding its threshold; the evaluator
// runs a set of them against a program and reports pass or fail per
// goal name. Thresholds come from a goals file with built-in defaults
// for everything it leaves unset.
package goals
