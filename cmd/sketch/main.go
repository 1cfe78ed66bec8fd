// Command sketch renders, inspects and displays scene files.
//
//	sketch validate scene.yaml
//	sketch render scene.yaml -o scene.png
//	sketch svg scene.yaml -o scene.svg
//	sketch hit scene.yaml 40 25
//	sketch show scene.yaml
package main

import (
	"os"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
