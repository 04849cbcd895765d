// Package permissions defines the boundary to the external auth
// collaborator.
//
// Authentication and the permission-gate framework live outside this
// service. What crosses the boundary is, per named capability, an optional
// restriction object: a list of metadata fields the caller may edit and a
// filter expression narrowing the records the caller may see. The absence
// of a restriction means the capability is fully permitted.
package permissions
