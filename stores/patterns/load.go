package patterns

import (
	"github.com/timtadh/data-structures/errors"
)

import (
	"github.com/timtadh/gspan/dfs"
	"github.com/timtadh/gspan/support"
)

// Load reads every pattern in the index at path. Codes that do not decode,
// or that use labels outside the given dictionary sizes, are logged and
// skipped.
func Load(path string, decoder *dfs.Decoder, vertices, edges int) ([]support.Supported, error) {
	tree, err := OpenBpTree(path)
	if err != nil {
		return nil, err
	}
	defer tree.Close()
	loaded := make([]support.Supported, 0, tree.Size())
	err = Do(tree.Iterate, func(z dfs.Compressed, n int32) error {
		code, err := decoder.Decode(z)
		if err == nil {
			err = code.LabelsWithin(vertices, edges)
		}
		if err != nil {
			errors.Logf("ERROR", "skipping an indexed pattern: %v", err)
			return nil
		}
		loaded = append(loaded, support.Supported{Code: code, Support: int(n)})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return loaded, nil
}
