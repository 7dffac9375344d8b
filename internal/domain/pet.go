package domain

// Pet belongs to an owner (auth provider UID)
type Pet struct {
	ID      string
	OwnerID string
	Name    string
	Species Species
	Size    *SizeTier
}
