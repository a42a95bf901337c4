// Package manifest loads the declaration of a native library and its symbol signatures from a YAML or TOML file.
//
// A manifest looks like:
//
//	name: example
//	dir: ./lib
//	remedy:
//	  compiler: g++
//	  flags: [-shared, -fPIC, -g]
//	  sources: [cpp.cc]
//	symbols:
//	  add:
//	    args: [int32, int32]
//	    return: int32
//
// Values are layered as defaults < file < environment (NATIVE_NAME, NATIVE_DIR).
// A relative dir from the file is taken from the manifest directory, a relative NATIVE_DIR from the working directory.
package manifest

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ZenLiuCN/native"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pelletier/go-toml/v2"
)

// EnvPrefix prefixes environment variables overriding manifest values.
const EnvPrefix = "NATIVE_"

var (
	// ErrInvalid occurs when a manifest misses required values.
	ErrInvalid = errors.New("invalid manifest")
)

type (
	// Manifest declares one native library.
	Manifest struct {
		Name    string            `koanf:"name"`
		Dir     string            `koanf:"dir"`
		Remedy  Remedy            `koanf:"remedy"`
		Symbols map[string]Symbol `koanf:"symbols"`
		File    string            `koanf:"-"` //file loaded from, empty when built in code
	}
	// Remedy is the build command printed when the library is missing.
	Remedy struct {
		Compiler string   `koanf:"compiler"`
		Flags    []string `koanf:"flags"`
		Sources  []string `koanf:"sources"`
	}
	// Symbol declares the signature of one exported function.
	Symbol struct {
		Args   []string `koanf:"args"`
		Return string   `koanf:"return"`
	}
)

func defaults() map[string]any {
	return map[string]any{
		"dir":             ".",
		"remedy.compiler": native.DefaultRemedy.Compiler,
		"remedy.flags":    native.DefaultRemedy.Flags,
		"remedy.sources":  native.DefaultRemedy.Sources,
	}
}

// Load reads a manifest file. A relative dir written in the file is anchored at the directory of the file,
// a relative NATIVE_DIR at the working directory.
func Load(path string) (m *Manifest, err error) {
	var abs string
	if abs, err = filepath.Abs(path); err != nil {
		return nil, err
	}
	k := koanf.New(".")
	if err = k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		var data []byte
		if data, err = os.ReadFile(path); err != nil {
			return nil, fmt.Errorf("error reading manifest %s: %w", path, err)
		}
		var raw map[string]any
		if err = toml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("error parsing manifest %s: %w", path, err)
		}
		if err = k.Load(confmap.Provider(raw, ""), nil); err != nil {
			return nil, fmt.Errorf("error reading manifest %s: %w", path, err)
		}
	default:
		if err = k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading manifest %s: %w", path, err)
		}
	}
	if d := k.String("dir"); !filepath.IsAbs(d) {
		if err = k.Set("dir", filepath.Join(filepath.Dir(abs), d)); err != nil {
			return nil, err
		}
	}
	if err = k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}
	m = &Manifest{File: abs}
	if err = k.Unmarshal("", m); err != nil {
		return nil, fmt.Errorf("unable to decode manifest %s: %w", path, err)
	}
	if m.Dir, err = filepath.Abs(m.Dir); err != nil {
		return nil, err
	}
	if err = m.Validate(); err != nil {
		return nil, err
	}
	return
}

// Validate checks the library name and every symbol signature.
func (m *Manifest) Validate() error {
	if m.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalid)
	}
	if len(m.Symbols) == 0 {
		return fmt.Errorf("%w: no symbols declared for %s", ErrInvalid, m.Name)
	}
	_, err := m.Signatures()
	return err
}

// Signatures converts the declared symbols to native signatures.
func (m *Manifest) Signatures() (native.Signatures, error) {
	sigs := make(native.Signatures, len(m.Symbols))
	var errs []error
	for name, s := range m.Symbols {
		sig, err := s.Signature()
		if err != nil {
			errs = append(errs, &native.SignatureError{Symbol: name, Err: err})
			continue
		}
		sigs[name] = sig
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return sigs, nil
}

// Signature parses the declared types.
func (s Symbol) Signature() (sig native.Signature, err error) {
	if sig.Return, err = native.ParseType(s.Return); err != nil {
		return
	}
	sig.Args = make([]native.Type, len(s.Args))
	for i, a := range s.Args {
		if sig.Args[i], err = native.ParseType(a); err != nil {
			return
		}
	}
	err = sig.Validate()
	return
}

// NativeRemedy converts the remedy for a [native.Loader].
func (m *Manifest) NativeRemedy() native.Remedy {
	return native.Remedy{
		Compiler: m.Remedy.Compiler,
		Flags:    m.Remedy.Flags,
		Sources:  m.Remedy.Sources,
	}
}

// Path resolves the library file for the running platform.
func (m *Manifest) Path() (string, error) {
	return native.Resolve(m.Dir, m.Name)
}

// Load resolves and loads the library with l, binding the declared symbols.
func (m *Manifest) Load(l *native.Loader) (native.Bindings, error) {
	sigs, err := m.Signatures()
	if err != nil {
		return nil, err
	}
	return l.LoadNamed(m.Dir, m.Name, sigs)
}
