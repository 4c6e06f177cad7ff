// Package types defines the Inventory and table interfaces, entity types,
// and standard errors for the stockroom data-access layer.
//
// Entities mirror the four persisted tables: stores, the single-row
// selected_store selector, uniforms, and stock operations. OperationRecord
// is the denormalized read model produced by the operations join.
package types
