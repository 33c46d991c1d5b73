// Package cleanup implements the final cleanup stage (spec.md §4.5): a
// thin wrapper around modal.UpdateState that strips words and modal-group
// commands redundant with what's already been emitted.
package cleanup

import (
	"github.com/chrisns/gfilter-cnc/internal/block"
	"github.com/chrisns/gfilter-cnc/internal/modal"
)

// NewState returns a Shadow whose modal fields hold a sentinel that can
// never equal a legitimate modal-group value, guaranteeing the first
// occurrence of every modal group survives the redundancy filter.
// original_source/cleanup.c achieves the same effect by memset-ing the
// shadow's modal struct to all-0xFF bytes; here every field is set to -1
// explicitly instead of relying on a byte-level sentinel.
func NewState() *block.Shadow {
	return &block.Shadow{
		Modal: block.Modal{
			Motion:      -1,
			PlaneSelect: -1,
			Distance:    -1,
			FeedRate:    -1,
			Units:       -1,
			ToolLength:  -1,
			CoordSelect: -1,
			ProgramFlow: -1,
			Spindle:     -1,
			Coolant:     -1,
			Override:    -1,
		},
	}
}

// Cleanup strips words and modal-group commands from blk that are
// redundant given everything emitted so far.
func Cleanup(state *block.Shadow, blk *block.ParserBlock) {
	modal.UpdateState(state, blk)
}
