// Package plan turns declaration fields, enum variants and type parameters
// into the pieces an emission unit is assembled from.
//
// Three planners live here:
//   - PlanField: the access expression, label and formatting call of one field
//   - PlanVariant: one type-switch arm per enum variant
//   - Bind: the constrained type parameter list of one unit
//
// All planners are total pure functions.
package plan
