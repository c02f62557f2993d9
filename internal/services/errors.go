// Package services defines the business logic of the lookup gateway. This
// file centralizes service-level error values so they can be consistently
// returned by service methods and mapped to HTTP results at the handler
// layer. Credential denials live in keystore and upstream failures in
// upstream; only orchestration-level errors are declared here.
package services

import "errors"

// ErrNumberRequired is returned when the lookup request carried no query
// string at all.
var ErrNumberRequired = errors.New("number required")
