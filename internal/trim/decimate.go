package trim

import (
	"context"

	"github.com/roverscene/scenemesh/internal/scenegeo"
)

// PassThrough calls an external Decimator collaborator (§4.8, §6)
// through decimate, with the mandatory pass-through guarantee: a mesh
// already at or below target faces (or any mesh when targetFaces <= 0)
// is returned unchanged, without invoking the external call.
func PassThrough(ctx context.Context, m *scenegeo.Mesh, targetFaces int, decimate func(context.Context, *scenegeo.Mesh, int) (*scenegeo.Mesh, error)) (*scenegeo.Mesh, error) {
	if targetFaces <= 0 || m.NumFaces() <= targetFaces {
		return m, nil
	}
	return decimate(ctx, m, targetFaces)
}
