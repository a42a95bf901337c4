package native

import (
	"errors"
	"slices"

	"github.com/ZenLiuCN/fn"
)

// Signatures declares the symbols to bind, keyed by exported symbol name.
type Signatures map[string]Signature

// Names dump sorted symbol names inside Signatures
func (s Signatures) Names() []string {
	n := fn.MapKeys(s)
	slices.Sort(n)
	return n
}

// Validate checks every declared signature.
func (s Signatures) Validate() error {
	var errs []error
	for _, name := range s.Names() {
		if name == "" {
			errs = append(errs, errors.Join(ErrInvalidSignature, errors.New("empty symbol name")))
			continue
		}
		if err := s[name].Validate(); err != nil {
			errs = append(errs, &SignatureError{Symbol: name, Err: err})
		}
	}
	return errors.Join(errs...)
}

var (
	// ErrUnsupportedPlatform occurs when no library naming convention is known for the operating system.
	ErrUnsupportedPlatform = errors.New("unsupported platform")
	// ErrInvalidName occurs when a logical library name is empty or contains a path separator.
	ErrInvalidName = errors.New("invalid library name")
	// ErrLibraryNotFound occurs when the resolved library file does not exist.
	ErrLibraryNotFound = errors.New("library not found")
	// ErrLibraryLoad occurs when the operating system refuses to map the library.
	ErrLibraryLoad = errors.New("library load failed")
	// ErrSymbolNotFound occurs when can't found a symbol.
	ErrSymbolNotFound = errors.New("missing symbol")
	// ErrInvalidSignature occurs when a declared signature can't be bound.
	ErrInvalidSignature = errors.New("invalid signature")
	// ErrArguments occurs when a call does not match the declared signature.
	ErrArguments = errors.New("arguments mismatch")
	// ErrUnknownFormat occurs when inspecting a file that is not ELF, Mach-O or PE.
	ErrUnknownFormat = errors.New("unknown shared library format")
)
