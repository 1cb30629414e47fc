// Package couriertests contains the courier service contract tests themselves and their
// supporting API.
//
// Infrastructure that is not specific to the courier domain, such as sending requests,
// checking responses, and running a tree of tests, is in the lower-level framework packages.
// Creating and deleting couriers is in the courier package.
package couriertests
