// probe is a headless CLI for inspecting how the viewer sees a town mesh:
// what it classifies as terrain, where the ground is and how the camera is
// pushed out of buildings.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	var err error
	switch command {
	case "info":
		err = cmdInfo(os.Stdout, args)
	case "height", "ground":
		err = cmdHeight(os.Stdout, args)
	case "resolve", "push":
		err = cmdResolve(os.Stdout, args)
	case "help", "-h", "--help":
		printUsage()
		return
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`probe - town mesh collision inspector

Usage:
  probe <command> [options]

Commands:
  info <file.obj>                        Show mesh, terrain and grid statistics
  height <file.obj> <x> <z>              Ground height under a world position
  resolve <file.obj> <x> <y> <z> [r]     Push a sphere out of nearby buildings

Options (all commands):
  -cell-size N      Grid cell size in model units (default 250)
  -scale S          Uniform scene scale (default 0.1)
  -yaw DEG          Scene rotation about +Y in degrees
  -translate X,Y,Z  Scene translation

Examples:
  probe info models/town.obj
  probe height -scale 0.1 models/town.obj -120.6 -217.3
  probe resolve models/town.obj -120.6 3.8 -217.3 0.01`)
}
