// Package rcximage holds the Image/Chunk data the downloader consumes:
// an ordered list of named chunks ready to be sent to a target, plus the
// Spybotics blob linker. Compiling or assembling the chunks' contents
// (turning RCX source code into task/subroutine byte code) is out of
// scope per spec.md §1 ("image compilation/linking" is an external
// collaborator concern); this package only models the already-compiled
// result.
package rcximage

import (
	"os"

	"github.com/kbrick/rcx/pkg/rcxcmd"
)

// Chunk is one named, typed slice of a download payload.
type Chunk struct {
	Type   rcxcmd.ChunkType
	Number byte
	Data   []byte
}

// Image is an ordered list of chunks ready for a program download.
type Image struct {
	Chunks []Chunk
}

// Size returns the total byte length across every chunk, the value the
// downloader reports as its progress total on the first chunk.
func (img *Image) Size() int {
	total := 0
	for _, c := range img.Chunks {
		total += len(c.Data)
	}
	return total
}

// LinkSpybotics concatenates an Image's chunks into the single
// contiguous blob a Spybotics target expects, in chunk order.
//
// The original RCX_SpyboticsLinker performs real relocation and symbol
// fixup across chunks (subroutine call targets get patched to their
// final offset in the combined blob); that fixup algorithm depends on
// the Spybotics byte-code format, which is an "image compilation"
// concern spec.md places outside this core. This function only
// performs the concatenation step the core's download path actually
// depends on (see DESIGN.md for why the omission is safe: the core
// only needs one contiguous []byte and its checksum, never the
// relocation details).
func LinkSpybotics(img *Image) []byte {
	out := make([]byte, 0, img.Size())
	for _, c := range img.Chunks {
		out = append(out, c.Data...)
	}
	return out
}

// LoadTaskImage builds a single-task Image from a raw, already-compiled
// task-chunk file. Real RCX toolchains compile source into a whole
// multi-task, multi-subroutine image; lacking that compiler here, the
// CLI's download command accepts one pre-built chunk per invocation,
// which is all the downloader below this point ever needed anyway.
func LoadTaskImage(path string) (*Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return &Image{Chunks: []Chunk{{Type: rcxcmd.ChunkTask, Number: 0, Data: data}}}, nil
}
