package model

// Board is the full snapshot returned to clients. It is derived, not stored.
type Board struct {
	Columns []Column
	Cards   []Card
}
