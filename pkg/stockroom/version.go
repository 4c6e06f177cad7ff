// Package stockroom holds module-wide identifiers.
package stockroom

// Version is the released version of the stockroom module and CLI.
const Version = "0.1.0"

// ModulePath is the Go import path of the module.
const ModulePath = "github.com/mesh-intelligence/stockroom"
