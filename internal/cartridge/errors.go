package cartridge

import "errors"

// Cartridge loading error definitions
var (
	// ErrHeaderCorrupted is returned when the Nintendo logo or header
	// checksum fails verification. Recoverable: the caller may retry with
	// verify=false to load the cartridge anyway.
	ErrHeaderCorrupted = errors.New("cartridge header corrupted: logo or checksum mismatch")

	// ErrTruncated is returned when the supplied ROM image is shorter than
	// the size declared by its own header.
	ErrTruncated = errors.New("cartridge truncated: file shorter than declared ROM size")

	// ErrUnsupportedCartridge is returned when CreateMBC encounters a
	// cartridge type with no implemented controller.
	ErrUnsupportedCartridge = errors.New("unsupported cartridge type")
)
