// Package accountservice contains the Shipline user account module:
// registration, authentication, password management and admin-only user
// administration.
//
// The module keeps domain/application logic decoupled from runtime/platform
// concerns through ports and adapter composition.
package accountservice
