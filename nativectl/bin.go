package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/ZenLiuCN/native"
	"github.com/ZenLiuCN/native/example"
	"github.com/ZenLiuCN/native/manifest"
	"github.com/davecgh/go-spew/spew"
	"github.com/urfave/cli/v2"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatalf("failure %s", err)
	}
}

func newApp() *cli.App {
	app := cli.NewApp()
	app.Usage = "native library loader"
	app.Name = "nativectl"
	app.Description = "resolve, inspect and call native shared libraries with declared signatures"
	app.Flags = []cli.Flag{
		&cli.BoolFlag{Name: "debug", Aliases: []string{"d"}},
		&cli.StringFlag{Name: "manifest", Aliases: []string{"m"}, Usage: "library manifest (yaml or toml)"},
	}
	app.Commands = []*cli.Command{
		{
			Name:   "resolve",
			Action: resolve,
			Usage:  "print the platform file path of a logical library name",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "dir", Value: ".", Usage: "base directory"},
				&cli.StringFlag{Name: "name", Aliases: []string{"n"}, Usage: "logical library name, default from manifest"},
				&cli.StringFlag{Name: "os", Usage: "platform to resolve for, default current"},
			},
		},
		{
			Name:   "symbols",
			Action: symbols,
			Usage:  "display exported functions of library files",
			Args:   true,
		},
		{
			Name:      "call",
			Action:    call,
			Usage:     "call a symbol declared in the manifest",
			ArgsUsage: "<symbol> [args...]",
			Args:      true,
		},
		{
			Name:   "demo",
			Action: demo,
			Usage:  "load the example library and call add and fibonacci",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "dir", Value: ".", Usage: "directory containing the example library"},
			},
		},
	}
	return app
}

func loadManifest(ctx *cli.Context) (m *manifest.Manifest, err error) {
	p := ctx.String("manifest")
	if p == "" {
		return nil, fmt.Errorf("required flag -m|--manifest missing")
	}
	if m, err = manifest.Load(p); err != nil {
		return
	}
	if ctx.Bool("debug") {
		spew.Fdump(ctx.App.ErrWriter, m)
	}
	return
}

func resolve(ctx *cli.Context) (err error) {
	name, dir := ctx.String("name"), ctx.String("dir")
	if name == "" {
		var m *manifest.Manifest
		if m, err = loadManifest(ctx); err != nil {
			return
		}
		name = m.Name
		if !ctx.IsSet("dir") {
			dir = m.Dir
		}
	}
	var p string
	if o := ctx.String("os"); o != "" {
		p, err = native.ResolveFor(native.PlatformOf(o), dir, name)
	} else {
		p, err = native.Resolve(dir, name)
	}
	if err != nil {
		return
	}
	_, err = fmt.Fprintln(ctx.App.Writer, p)
	return
}

func symbols(ctx *cli.Context) (err error) {
	if ctx.NArg() == 0 {
		return fmt.Errorf("missing library files")
	}
	for _, s := range ctx.Args().Slice() {
		var names []string
		if names, err = native.Exports(s); err != nil {
			return
		}
		fmt.Fprintf(ctx.App.Writer, "%s:\n", s)
		for _, n := range names {
			fmt.Fprintf(ctx.App.Writer, "\t%s\n", n)
		}
	}
	return
}

func call(ctx *cli.Context) (err error) {
	if ctx.NArg() == 0 {
		return fmt.Errorf("missing symbol to call")
	}
	var m *manifest.Manifest
	if m, err = loadManifest(ctx); err != nil {
		return
	}
	name := ctx.Args().First()
	decl, ok := m.Symbols[name]
	if !ok {
		return fmt.Errorf("symbol %s is not declared in %s", name, m.File)
	}
	var sig native.Signature
	if sig, err = decl.Signature(); err != nil {
		return
	}
	raw := ctx.Args().Tail()
	if len(raw) != len(sig.Args) {
		return fmt.Errorf("%w: %s%s takes %d arguments, got %d", native.ErrArguments, name, sig, len(sig.Args), len(raw))
	}
	args := make([]any, len(raw))
	for i, r := range raw {
		if args[i], err = native.ParseValue(sig.Args[i], r); err != nil {
			return
		}
	}
	l := native.NewLoader(m.NativeRemedy(), ctx.Bool("debug"))
	var b native.Bindings
	if b, err = l.LoadNamed(m.Dir, m.Name, native.Signatures{name: sig}); err != nil {
		return
	}
	var v any
	if v, err = b.Call(name, args...); err != nil {
		return
	}
	if v == nil {
		fmt.Fprintf(ctx.App.Writer, "%s(%s)\n", name, strings.Join(raw, ", "))
	} else {
		fmt.Fprintf(ctx.App.Writer, "%s(%s) = %v\n", name, strings.Join(raw, ", "), v)
	}
	return
}

func demo(ctx *cli.Context) (err error) {
	w := ctx.App.Writer
	banner := strings.Repeat("=", 50)
	fmt.Fprintln(w, banner)
	fmt.Fprintln(w, "Go && C native binding example")
	fmt.Fprintln(w, banner)
	var lib *example.Library
	if lib, err = example.Load(ctx.String("dir")); err != nil {
		return
	}
	fmt.Fprintf(w, "Successfully loaded library: %s\n\n", lib.Path())

	a, b := int32(5), int32(7)
	fmt.Fprintf(w, "add(%d, %d) = %d\n", a, b, lib.Add(a, b))
	n := int32(10)
	fmt.Fprintf(w, "fibonacci(%d) = %d\n", n, lib.Fibonacci(n))

	fmt.Fprintln(w)
	fmt.Fprintln(w, banner)
	fmt.Fprintln(w, "All tests completed!")
	fmt.Fprintln(w, banner)
	return
}
