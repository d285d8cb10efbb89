package model

type Store struct {
	BaseModel
	Name          string  `db:"name" json:"name"`
	ParentStoreID *string `db:"parent_store_id" json:"parent_store_id"` // Nullable, nil = main store
	IsActive      bool    `db:"is_active" json:"is_active"`
}

// IsMain reports whether the store is a top-level main store.
// The hierarchy is two levels deep: main stores and their branches.
func (s *Store) IsMain() bool {
	return s.ParentStoreID == nil
}
