package modapi

import (
	"strings"

	"craftcore/pkg/domain"
)

type refKind int

const (
	refByID refKind = iota
	refByName
	refByHandle
)

// ItemRef names an item by raw id, by name, or by an already resolved
// handle. All three forms go through the same resolution step inside the
// builder.
type ItemRef struct {
	kind   refKind
	id     domain.ItemID
	name   string
	handle ItemHandle
}

// ItemByID references an item by its registry id.
func ItemByID(id domain.ItemID) ItemRef {
	return ItemRef{kind: refByID, id: id}
}

// ItemNamed references an item by name. A bare "Item" resolves in the
// builder's own namespace; "Mod/Item" resolves in the named mod's namespace.
func ItemNamed(name string) ItemRef {
	return ItemRef{kind: refByName, name: name}
}

// ItemByHandle references an already resolved item. It cannot fail to
// resolve.
func ItemByHandle(handle ItemHandle) ItemRef {
	return ItemRef{kind: refByHandle, handle: handle}
}

// splitQualified splits "Mod/Item" into namespace and name, falling back to
// the owning namespace for bare names.
func splitQualified(name, owner string) (string, string) {
	if idx := strings.IndexByte(name, '/'); idx >= 0 {
		return name[:idx], name[idx+1:]
	}
	return owner, name
}
