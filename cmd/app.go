// Package cmd wires the scene-preprocessor's flag-based CLI surface: a
// single action dispatching on input extension and output-mode flags, no
// nested subcommands.
package cmd

import (
	"github.com/urfave/cli"
)

// NewApp builds the urfave/cli application exposing the tool's flat flag
// surface.
func NewApp(name, version string) *cli.App {
	app := cli.NewApp()
	app.Name = name
	app.Usage = "preprocess a scene into the binary format consumed by the raytrace pipeline"
	app.Version = version
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "in, i",
			Usage: "input scene file (.scene) or pre-serialized binary",
		},
		cli.StringFlag{
			Name:  "out, o",
			Usage: "output path",
		},
		cli.StringFlag{
			Name:  "rt",
			Value: "de1soclinux,50000",
			Usage: "raytrace mode: host,port of the render target",
		},
		cli.UintFlag{
			Name:  "max-bv",
			Value: 128,
			Usage: "BV leaf count cap, must be a power of two",
		},
		cli.StringFlag{
			Name:  "serfmt",
			Value: "dup",
			Usage: "serialization layout: dup or nodup",
		},
		cli.BoolFlag{
			Name:  "tobin, b",
			Usage: "output mode: binary file",
		},
		cli.BoolFlag{
			Name:  "tohdr, c",
			Usage: "output mode: C header",
		},
		cli.BoolFlag{
			Name:  "bv-report",
			Usage: "diagnostic mode: print BV efficiency statistics for a .scene input",
		},
		cli.BoolFlag{
			Name:  "eswap, e",
			Usage: "byteswap every output word",
		},
		cli.BoolFlag{
			Name:  "verbose, v",
			Usage: "enable debug logging",
		},
	}
	app.Action = Run
	return app
}
