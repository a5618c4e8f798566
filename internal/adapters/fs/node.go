package fs

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/delta/internal/core/ports"
)

// HasherNodeID is the unique identifier for the content hasher Graft node.
const HasherNodeID graft.ID = "adapter.content_hasher"

// WalkerNodeID is the unique identifier for the file resolver Graft node.
const WalkerNodeID graft.ID = "adapter.file_resolver"

func init() {
	graft.Register(graft.Node[ports.ContentHasher]{
		ID:        HasherNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.ContentHasher, error) {
			return NewHasher(), nil
		},
	})

	graft.Register(graft.Node[ports.FileResolver]{
		ID:        WalkerNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.FileResolver, error) {
			return NewWalker(), nil
		},
	})
}
