// Package courierapi contains the request and response records of the scooter-rental
// courier service, along with its endpoint paths and the fixed error messages it returns.
//
// These types are only a description of the wire format. The courier package and the
// contract tests use them to build request bodies, so that no request is ever assembled by
// string concatenation.
package courierapi
