// Package loader turns a program file on disk into the word slice the
// engine installs as segment 0.
package loader

import (
	"encoding/binary"
	"os"

	"um/pkg/vm"
	"um/pkg/vmerrors"
)

// Load reads path and decodes it as a sequence of big-endian 32-bit
// instruction words, matching the original scroll format's byte order.
func Load(path string) ([]vm.Word, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, vmerrors.Wrap(vmerrors.Invocation, err, "reading program file")
	}
	if len(data)%4 != 0 {
		return nil, vmerrors.New(vmerrors.Invocation, "program file length %d is not a multiple of 4", len(data))
	}
	words := make([]vm.Word, len(data)/4)
	for i := range words {
		words[i] = vm.Word(binary.BigEndian.Uint32(data[i*4:]))
	}
	return words, nil
}
