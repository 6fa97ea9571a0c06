// Package scenestore implements the §6 "Project storage" collaborator
// against SQLite: one row per project/mesh-variant in scene_mesh, plus
// an optional standalone mesh_file row keyed by output URL.
package scenestore

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/roverscene/scenemesh/internal/scenerecon"
)

// Store is a modernc.org/sqlite-backed scenerecon.ProjectStore.
type Store struct {
	db *sql.DB
}

var _ scenerecon.ProjectStore = (*Store)(nil)

// Open opens (creating if necessary) the SQLite database at path and
// migrates it to the latest schema version.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("scenestore: open %s: %w", path, err)
	}
	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("scenestore: journal_mode: %w", err)
	}
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("scenestore: busy_timeout: %w", err)
	}
	if err := migrateUp(db); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveSceneMesh upserts the single scene_mesh row for (projectID,
// record.MeshVariant), per §6: exactly one record per project/variant.
func (s *Store) SaveSceneMesh(ctx context.Context, projectID string, record scenerecon.SceneMeshRecord) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO scene_mesh (
			project_id, mesh_variant,
			bbox_min_x, bbox_min_y, bbox_min_z,
			bbox_max_x, bbox_max_y, bbox_max_z,
			surface_extent, mesh_blob, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT (project_id, mesh_variant) DO UPDATE SET
			bbox_min_x = excluded.bbox_min_x,
			bbox_min_y = excluded.bbox_min_y,
			bbox_min_z = excluded.bbox_min_z,
			bbox_max_x = excluded.bbox_max_x,
			bbox_max_y = excluded.bbox_max_y,
			bbox_max_z = excluded.bbox_max_z,
			surface_extent = excluded.surface_extent,
			mesh_blob = excluded.mesh_blob,
			updated_at = CURRENT_TIMESTAMP
	`,
		projectID, record.MeshVariant,
		record.BoundingBox.Min[0], record.BoundingBox.Min[1], record.BoundingBox.Min[2],
		record.BoundingBox.Max[0], record.BoundingBox.Max[1], record.BoundingBox.Max[2],
		record.SurfaceExtent, record.MeshBlob,
	)
	if err != nil {
		return fmt.Errorf("scenestore: save scene mesh: %w", err)
	}
	return nil
}

// SaveMeshFile upserts the standalone mesh file keyed by url.
func (s *Store) SaveMeshFile(ctx context.Context, url string, data []byte) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO mesh_file (url, data, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT (url) DO UPDATE SET data = excluded.data, updated_at = CURRENT_TIMESTAMP
	`, url, data)
	if err != nil {
		return fmt.Errorf("scenestore: save mesh file: %w", err)
	}
	return nil
}

// LoadSceneMesh retrieves the persisted record for (projectID,
// meshVariant), or ok=false if no such row exists.
func (s *Store) LoadSceneMesh(ctx context.Context, projectID, meshVariant string) (record scenerecon.SceneMeshRecord, ok bool, err error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT bbox_min_x, bbox_min_y, bbox_min_z, bbox_max_x, bbox_max_y, bbox_max_z, surface_extent, mesh_blob
		FROM scene_mesh WHERE project_id = ? AND mesh_variant = ?
	`, projectID, meshVariant)

	record.MeshVariant = meshVariant
	err = row.Scan(
		&record.BoundingBox.Min[0], &record.BoundingBox.Min[1], &record.BoundingBox.Min[2],
		&record.BoundingBox.Max[0], &record.BoundingBox.Max[1], &record.BoundingBox.Max[2],
		&record.SurfaceExtent, &record.MeshBlob,
	)
	if err == sql.ErrNoRows {
		return scenerecon.SceneMeshRecord{}, false, nil
	}
	if err != nil {
		return scenerecon.SceneMeshRecord{}, false, fmt.Errorf("scenestore: load scene mesh: %w", err)
	}
	return record, true, nil
}
