// Command bridgeworks shows the animated bridge construction site, renders snapshots of it,
// and runs or trains the beam prediction service that its upload zone talks to.
package main

import (
	"os"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
