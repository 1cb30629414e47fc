// Package ctest runs contract tests in a tree of named test contexts.
//
// A *T plays the same role as *testing.T, but it reports results through a
// framework.TestLogger instead of the Go test runner, so that a test run can be driven from
// a command-line tool against a live service. *T implements the TestingT interfaces of
// github.com/stretchr/testify, so assert and require can be used with it directly.
//
// Cleanup that must always happen, such as deleting a fixture that a test created, is
// registered with T.Defer. Problems during cleanup are recorded with T.Warn; they appear in
// the report but never make a test fail.
package ctest
