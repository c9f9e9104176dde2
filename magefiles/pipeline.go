//go:build mage

package main

import (
	"os"
	"os/exec"
	"path/filepath"

	"github.com/magefile/mage/mg"
)

// engine runs the built CLI binary with the given arguments.
func engine(args ...string) error {
	cmd := exec.Command(filepath.Join(binDir, binName), args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// Fetch downloads open-access PDFs for papers citing the given DOI.
func Fetch(doi string) error {
	mg.Deps(Build)
	return engine("fetch", doi)
}

// Convert extracts plain text from every PDF in pdfs/.
func Convert() error {
	mg.Deps(Build)
	return engine("convert")
}
