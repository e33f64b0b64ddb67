// Package store defines the persistence capability consumed by the REST
// controllers: a generic Repository interface per resource model, plus the
// sentinel error taxonomy that outcome classification is built on.
// Implementations live under internal/platform.
package store
