// Package domain contains the core business entities and domain logic:
// the resource models exposed over REST, their validation rules, and the
// attribute-merge semantics used by updates. It is independent of any
// transport or storage concern.
package domain
