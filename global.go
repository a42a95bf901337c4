package native

var global = NewLoader(DefaultRemedy)

// Global the process wide Loader used by the package level functions.
func Global() *Loader {
	return global
}

// Open maps a library with the global Loader.
func Open(path string) (*Library, error) {
	return global.Open(path)
}

// Load opens and binds a library with the global Loader.
func Load(path string, sigs Signatures) (Bindings, error) {
	return global.Load(path, sigs)
}

// LoadNamed resolves, opens and binds a library with the global Loader.
func LoadNamed(base, name string, sigs Signatures) (Bindings, error) {
	return global.LoadNamed(base, name, sigs)
}

// GlobalLibraries the libraries opened by the global Loader.
func GlobalLibraries() []string {
	return global.Libraries()
}
