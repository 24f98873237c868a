// Package validator provides a small validation abstraction for request and
// domain structs.
//
// Business code depends on the Validator interface; the go-playground/validator
// v10 implementation lives here together with the custom rules the account
// module relies on.
package validator
