// Package study models a degree program as a tree of semesters, modules
// and courses, and derives progress figures from it.
//
// Grades follow the German scale: 1.0 is the best grade and anything
// above 4.0 is a fail. Averages are weighted by ECTS credits.
package study
