package graph

import (
	"encoding/hex"
	"fmt"

	"github.com/google/uuid"
)

// nodeNamespace scopes node IDs so that they never collide with UUIDs
// minted for other purposes from the same path strings.
var nodeNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/chazu/nurbs/graph"))

// NodeID is a deterministic identifier derived from a node's path in the
// design script (for example "defshape/rim" or "arc/3"). Re-evaluating
// unchanged source yields the same IDs.
type NodeID uuid.UUID

// NewNodeID returns the ID for path.
func NewNodeID(path string) NodeID {
	return NodeID(uuid.NewSHA1(nodeNamespace, []byte(path)))
}

// IsZero reports whether id is the zero value.
func (id NodeID) IsZero() bool {
	return id == NodeID{}
}

func (id NodeID) String() string {
	return uuid.UUID(id).String()
}

// Short returns the first 6 bytes of the ID in hex, for messages.
func (id NodeID) Short() string {
	return hex.EncodeToString(id[:6])
}

// MarshalText implements encoding.TextMarshaler so IDs can key JSON maps.
func (id NodeID) MarshalText() ([]byte, error) {
	return uuid.UUID(id).MarshalText()
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (id *NodeID) UnmarshalText(b []byte) error {
	u, err := uuid.ParseBytes(b)
	if err != nil {
		return fmt.Errorf("graph: bad node id %q: %w", b, err)
	}
	*id = NodeID(u)
	return nil
}
