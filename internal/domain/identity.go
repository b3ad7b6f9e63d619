package domain

// Identity is the secret used to label outgoing requests. Loaded once at
// startup and immutable afterwards.
type Identity struct {
	UserID UserID
	Secret string
}

func (i Identity) Valid() bool {
	return i.UserID != 0 && i.Secret != ""
}
