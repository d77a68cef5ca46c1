// Package kernel provides core domain primitives shared across the delivery
// brokerage model. It implements fundamental building blocks following
// Domain-Driven Design principles that are used throughout the domain model.
//
// The package includes:
//   - UUID: A value object for unique identifiers with validation and comparison capabilities
//   - GeoPoint: A value object holding a validated longitude/latitude pair
//   - Role and Actor: the acting-principal primitives used for role-based authorization
//
// These primitives enforce domain invariants and validation rules, ensuring that
// domain objects are always in a valid state. They are immutable and thread-safe,
// making them suitable for concurrent use.
package kernel
