package main

import (
	"fmt"
	"log"
	"os"

	. "github.com/ZenLiuCN/dylib"
	"github.com/davecgh/go-spew/spew"
	"github.com/urfave/cli/v2"
)

func main() {
	app := cli.NewApp()
	app.Name = "Inspect"
	app.Usage = "shared library inspect tool"
	app.Description = "probe, validate and resolve native shared libraries against declared symbol manifests"
	app.Flags = []cli.Flag{
		&cli.BoolFlag{Name: "debug", Aliases: []string{"d"}},
	}
	app.Commands = []*cli.Command{
		{Name: "filename", Action: filename, Usage: "display platform filenames of library names", Args: true},
		{Name: "valid", Action: valid, Usage: "validate library filenames or paths", Args: true},
		{Name: "probe", Action: probe, Usage: "report whether libraries are loadable", Args: true},
		{Name: "path", Action: path, Usage: "resolve absolute paths of loadable libraries", Args: true},
		{Name: "verify", Action: verify, Usage: "bind every symbol of manifest files", Args: true},
	}
	if err := app.Run(os.Args); err != nil {
		log.Fatalf("failure %s", err)
	}
}

func filename(ctx *cli.Context) error {
	for _, n := range ctx.Args().Slice() {
		fmt.Println(LibraryFilename(n))
	}
	return nil
}

func valid(ctx *cli.Context) error {
	for _, c := range ctx.Args().Slice() {
		fmt.Printf("%s filename:%v path:%v\n", c, IsLibraryFilename(c), IsLibraryPath(c))
	}
	return nil
}

func probe(ctx *cli.Context) (err error) {
	for _, n := range ctx.Args().Slice() {
		ok := IsLoadable(n)
		fmt.Printf("%s %v\n", n, ok)
		if !ok {
			err = fmt.Errorf("not loadable: %s", n)
		}
	}
	return
}

func path(ctx *cli.Context) (err error) {
	var p string
	for _, n := range ctx.Args().Slice() {
		if p, err = LibraryPath(n); err != nil {
			return
		}
		fmt.Println(p)
	}
	return
}

func verify(ctx *cli.Context) (err error) {
	d := ctx.Bool("debug")
	for _, f := range ctx.Args().Slice() {
		var m *Manifest
		if m, err = ReadManifest(f); err != nil {
			return
		}
		if d {
			log.Printf("manifest %s:\n%s", f, spew.Sdump(m))
		}
		var l Library
		var sym Symbols
		if l, sym, err = m.Open(true, d); err != nil {
			return
		}
		fmt.Printf("%s: %v\n", m.Library, sym.Loaded())
		if err = l.Close(); err != nil {
			return
		}
	}
	return
}
