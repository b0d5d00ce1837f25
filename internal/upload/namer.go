package upload

import (
	"path/filepath"
	"strings"
	"unicode"

	"github.com/bwmarrin/snowflake"
	"github.com/pkg/errors"
)

// Namer allocates stored file names of the form <snowflake-id><ext>.
// Snowflake ids carry a per-node sequence, so names stay unique for files
// received within the same millisecond.
type Namer struct {
	node *snowflake.Node
}

// NewNamer creates a namer for the given snowflake node (0..1023).
func NewNamer(node int64) (*Namer, error) {
	n, err := snowflake.NewNode(node)
	if err != nil {
		return nil, errors.Wrapf(err, "snowflake node %d", node)
	}
	return &Namer{node: n}, nil
}

// Name returns a fresh name keeping the extension of original.
func (n *Namer) Name(original string) string {
	return n.node.Generate().String() + Extension(original)
}

// Extension returns the extension of a client supplied file name, or ""
// when it contains anything other than letters and digits.
func Extension(original string) string {
	if i := strings.LastIndexAny(original, `/\`); i >= 0 {
		original = original[i+1:]
	}
	ext := filepath.Ext(original)
	if len(ext) < 2 || len(ext) > 16 {
		return ""
	}
	for _, r := range ext[1:] {
		if r > unicode.MaxASCII || !(unicode.IsLetter(r) || unicode.IsDigit(r)) {
			return ""
		}
	}
	return ext
}
