package models

import "errors"

// Sentinel errors shared by the catalog, pricing and cart packages.
var (
	// ErrNotFound is returned when no entity exists for the given key.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists is returned when a unique column (slug, sku) collides.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInUse is returned when deleting a row that other rows still reference.
	ErrInUse = errors.New("still in use")

	// ErrInvalidName is returned when a name yields an empty slug.
	ErrInvalidName = errors.New("name must contain letters or digits")

	// ErrInvalidHierarchy is returned when a category would become its own ancestor.
	ErrInvalidHierarchy = errors.New("invalid category hierarchy")

	// ErrNoPriceSet is returned when neither an override nor a base price is set.
	ErrNoPriceSet = errors.New("no price set")

	// ErrGalleryFull is returned when a gallery has no images available.
	ErrGalleryFull = errors.New("gallery is full")

	// ErrCheckedOut is returned when mutating a cart that has been checked out.
	ErrCheckedOut = errors.New("cart already checked out")

	// ErrInvalidQuantity is returned for cart quantities below one.
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
)
