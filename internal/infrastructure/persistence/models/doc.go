// Package models contains the GORM persistence models of the correspondence
// store. They are kept apart from the domain entities so the domain layer
// carries no ORM tags; repositories convert between the two.
//
// Structure:
//   - base.go: BaseModel, the identity and timestamp columns
//   - correspondence.go: letters, letter counters and the two catalogs
package models
