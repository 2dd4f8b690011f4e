package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/Alia5/padmap/input"
)

// readScript loads a recorded event script from path, or stdin for "-".
func readScript(path string) ([]input.Step, error) {
	var r io.Reader = os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}
	steps, err := input.ReadScript(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return steps, nil
}
