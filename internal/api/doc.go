// Package api contains the HTTP layer: the response mediator that maps
// operation outcomes onto status codes and JSON bodies, the generic REST
// controller built on a persistence capability, and the authentication and
// system handlers.
package api
