// Package framework contains the low-level implementation of test harness infrastructure
// that can be reused for different kinds of API contract tests. The base package contains
// shared types such as Logger, TestID and Results; other components are in the subpackages
// harness, expect and ctest.
//
// The general model is:
//
// 1. The test harness talks to a remote HTTP service (the service under test) through the
// client in the harness package. Transport failures are reported separately from HTTP error
// statuses, which are just responses like any other.
//
// 2. Responses are checked against declarative expectations from the expect package.
//
// 3. There is a general notion of a test context (ctest.T) which is similar to Go's
// testing.T, allowing pieces of test logic to be associated with a test identifier, to
// register cleanup actions, and to accumulate failures and cleanup warnings.
//
// The domain-specific code that knows what is being tested is responsible for providing the
// request bodies, the expectations, and any fixtures that have to exist on the remote service
// while a test runs.
package framework
