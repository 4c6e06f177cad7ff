package types

import (
	"encoding/json"
	"fmt"
	"strings"
)

// OperationType is the direction of a stock movement. It is persisted as an
// integer: 1 for an entry, 0 for an exit.
type OperationType int

// Operation types.
const (
	OperationExit  OperationType = 0
	OperationEntry OperationType = 1
)

// String returns "entry" or "exit".
func (t OperationType) String() string {
	switch t {
	case OperationEntry:
		return "entry"
	case OperationExit:
		return "exit"
	default:
		return fmt.Sprintf("OperationType(%d)", int(t))
	}
}

// ParseOperationType accepts "entry" or "exit", case-insensitively.
func ParseOperationType(s string) (OperationType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "entry":
		return OperationEntry, nil
	case "exit":
		return OperationExit, nil
	default:
		return 0, fmt.Errorf("%w: %q (want entry or exit)", ErrInvalidOperationType, s)
	}
}

// MarshalJSON encodes the type as its string name.
func (t OperationType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// UnmarshalJSON decodes "entry" or "exit".
func (t *OperationType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseOperationType(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Operation is a stock movement as written: a quantity of one uniform
// entering or leaving one store on one day. Operations are never updated,
// only deleted by id.
type Operation struct {
	ID        int64         `json:"id"`
	StoreID   int64         `json:"store"`
	Type      OperationType `json:"type"`
	Concept   string        `json:"concept"`
	UniformID int64         `json:"uniform"`
	Quantity  int64         `json:"quantity"`
	Date      Date          `json:"date"`
}

// OperationRecord is the denormalized read model of an operation, joined with
// the store and uniform it references. Store and Uniform are never nil.
type OperationRecord struct {
	ID       int64         `json:"id"`
	Type     OperationType `json:"type"`
	Concept  string        `json:"concept"`
	Quantity int64         `json:"quantity"`
	Date     Date          `json:"date"`
	Store    *Store        `json:"store"`
	Uniform  *Uniform      `json:"uniform"`
}

// OrphanedOperation is an operation whose store or uniform reference no
// longer resolves. The join read skips these rows.
type OrphanedOperation struct {
	ID             int64 `json:"id"`
	StoreID        int64 `json:"store"`
	UniformID      int64 `json:"uniform"`
	MissingStore   bool  `json:"missing_store"`
	MissingUniform bool  `json:"missing_uniform"`
}

// Missing names the dangling references, e.g. "store", "uniform", or
// "store,uniform".
func (o OrphanedOperation) Missing() string {
	var parts []string
	if o.MissingStore {
		parts = append(parts, "store")
	}
	if o.MissingUniform {
		parts = append(parts, "uniform")
	}
	return strings.Join(parts, ",")
}

// Balance is the stock level of one uniform at one store: the sum of entry
// quantities minus the sum of exit quantities.
type Balance struct {
	Uniform  Uniform `json:"uniform"`
	Quantity int64   `json:"quantity"`
}
