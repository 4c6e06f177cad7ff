package types

// Store is a retail location that holds uniform stock.
type Store struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// SelectedStore is a row of the selector table. At most one row exists at a
// time; it names the active store for new operations.
type SelectedStore struct {
	ID      int64 `json:"id"`
	StoreID int64 `json:"store"`
}

// Selection is the state of the active-store selector.
// The zero value is the Unselected state.
type Selection struct {
	Selected bool  `json:"selected"`
	StoreID  int64 `json:"store,omitempty"`
}

// Unselected is the selector state with no active store.
var Unselected = Selection{}

// SelectedAs returns the Selected state for storeID.
func SelectedAs(storeID int64) Selection {
	return Selection{Selected: true, StoreID: storeID}
}
