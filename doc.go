/*
Package native locates, loads and binds native shared libraries with declared C signatures, based on [purego].

# License

Source codes are under Apache License Version 2.0.

# Underwater

 1. A logical library name (e.g. "example") is expanded to the platform file name: libexample.so on linux,
    libexample.dylib on darwin and example.dll on windows. Other platforms are refused before any filesystem access.
 2. The resolved file must exist before it is mapped; a missing file reports the directory and the command expected to build it.
 3. The library is mapped with dlopen (LoadLibrary on windows) at most once per canonical path for each [Loader].
 4. Each symbol is bound with an explicit [Signature], and becomes a typed go function via [purego.RegisterFunc].

# Notes

 1. Libraries are never unloaded. A [Library] lives as long as the process.
 2. Symbols are bound independently: a missing symbol does not prevent other symbols from binding.
 3. A bound [Func] is as thread-safe as the native function behind it, nothing more.
 4. Arguments are only checked against the declared type width; the native side sees whatever is passed.

# Samples

	bindings, err := native.LoadNamed("./lib", "example", native.Signatures{
		"add":       native.Sig(native.Int32, native.Int32, native.Int32),
		"fibonacci": native.Sig(native.Int32, native.Int32),
	})
	if err != nil {
		log.Fatal(err)
	}
	add := native.MustAs[func(int32, int32) int32](bindings["add"])
	println(add(5, 7))

See testdata, the example package and tests.

[purego]: https://github.com/ebitengine/purego
*/
package native
