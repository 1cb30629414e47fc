// Package courier manages couriers that contract tests create in the service under test.
//
// A test that needs a courier calls Fixtures.Create, which returns a *Fixture handle. The
// handle owns the courier's remote id, which the service does not return from the create call,
// so it is looked up separately with a login request by Resolver. Every fixture that was
// created must be passed to Fixtures.Finalize exactly once, which resolves it if necessary
// and deletes it. Problems during Finalize are returned as CleanupWarnings rather than errors.
//
// Fixtures with the same login are serialized: a second Create for a login waits until the
// fixture currently holding that login has been finalized.
package courier
