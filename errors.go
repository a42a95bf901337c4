package native

import (
	"fmt"
	"strings"
)

// UnsupportedPlatformError is returned by the locator when the operating system has no known naming convention.
type UnsupportedPlatformError struct {
	OS string
}

func (e *UnsupportedPlatformError) Error() string {
	return fmt.Sprintf("unsupported operating system: %s", e.OS)
}
func (e *UnsupportedPlatformError) Is(target error) bool { return target == ErrUnsupportedPlatform }

// LibraryNotFoundError reports a missing library file together with how to build it.
type LibraryNotFoundError struct {
	Path    string
	Dir     string //directory to build in
	Command string //command expected to produce the file
}

func (e *LibraryNotFoundError) Error() string {
	return fmt.Sprintf("lib not exists: %s\n  cd %s\n  %s", e.Path, e.Dir, e.Command)
}
func (e *LibraryNotFoundError) Is(target error) bool { return target == ErrLibraryNotFound }

// Hint is the remediation text without the leading message.
func (e *LibraryNotFoundError) Hint() string {
	return fmt.Sprintf("cd %s\n%s", e.Dir, e.Command)
}

// LibraryLoadError wraps the diagnostic of the operating system loader.
type LibraryLoadError struct {
	Path string
	Err  error
}

func (e *LibraryLoadError) Error() string {
	return fmt.Sprintf("load library %s: %v", e.Path, e.Err)
}
func (e *LibraryLoadError) Is(target error) bool { return target == ErrLibraryLoad }
func (e *LibraryLoadError) Unwrap() error        { return e.Err }

// SymbolNotFoundError names the one symbol that could not be resolved.
type SymbolNotFoundError struct {
	Path   string
	Symbol string
	Err    error
}

func (e *SymbolNotFoundError) Error() string {
	s := "symbol " + e.Symbol + " not found"
	if e.Path != "" {
		s += " in " + e.Path
	}
	if e.Err != nil {
		s += ": " + e.Err.Error()
	}
	return s
}
func (e *SymbolNotFoundError) Is(target error) bool { return target == ErrSymbolNotFound }
func (e *SymbolNotFoundError) Unwrap() error        { return e.Err }

// SignatureError reports why a declared signature was refused.
type SignatureError struct {
	Symbol string
	Err    error
}

func (e *SignatureError) Error() string {
	return fmt.Sprintf("signature of %s: %v", e.Symbol, e.Err)
}
func (e *SignatureError) Is(target error) bool { return target == ErrInvalidSignature }
func (e *SignatureError) Unwrap() error        { return e.Err }

// Remedy describes the build command printed when a library file is missing. It is never executed.
type Remedy struct {
	Compiler string
	Flags    []string
	Sources  []string
}

// DefaultRemedy builds a shared library from cpp.cc with g++.
var DefaultRemedy = Remedy{
	Compiler: "g++",
	Flags:    []string{"-shared", "-fPIC", "-g"},
	Sources:  []string{"cpp.cc"},
}

// Command renders the build command producing file.
func (r Remedy) Command(file string) string {
	s := new(strings.Builder)
	if r.Compiler == "" {
		s.WriteString(DefaultRemedy.Compiler)
	} else {
		s.WriteString(r.Compiler)
	}
	for _, f := range r.Flags {
		s.WriteByte(' ')
		s.WriteString(f)
	}
	s.WriteString(" -o ")
	s.WriteString(file)
	for _, f := range r.Sources {
		s.WriteByte(' ')
		s.WriteString(f)
	}
	return s.String()
}
