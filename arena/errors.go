package arena

import "errors"

var (
	// ErrInvalidSize indicates a non-positive or unencodable size request.
	ErrInvalidSize = errors.New("arena: size must be positive")

	// ErrAlreadyInitialized indicates the process-wide arena was already created.
	ErrAlreadyInitialized = errors.New("arena: already initialized")

	// ErrNotInitialized indicates the process-wide arena has not been created yet.
	ErrNotInitialized = errors.New("arena: not initialized")

	// ErrHostAlloc indicates the host refused to reserve the backing region.
	ErrHostAlloc = errors.New("arena: host memory reservation failed")

	// ErrOutOfMemory indicates no free block large enough was found.
	ErrOutOfMemory = errors.New("arena: no free block large enough")

	// ErrInvalidPointer indicates an address that is not the payload address
	// of a live block.
	ErrInvalidPointer = errors.New("arena: invalid payload address")

	// ErrDoubleFree indicates an attempt to free a block that is already free.
	ErrDoubleFree = errors.New("arena: block already free")

	// ErrReleased indicates use of an arena whose region was returned to
	// the host.
	ErrReleased = errors.New("arena: use after release")
)
