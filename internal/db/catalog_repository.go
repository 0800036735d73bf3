package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/udisondev/osrs-sim/internal/data"
)

// ErrSnapshotNotFound is returned when no snapshot matches the request.
var ErrSnapshotNotFound = errors.New("catalog snapshot not found")

// SnapshotInfo describes a stored catalog snapshot without its payload.
type SnapshotInfo struct {
	ID           int64
	Digest       string
	Label        string
	ItemCount    int
	MonsterCount int
	CreatedAt    time.Time
}

// CatalogRepository хранит снимки каталога предметов и монстров.
type CatalogRepository struct {
	db *pgxpool.Pool
}

// NewCatalogRepository создаёт новый CatalogRepository.
func NewCatalogRepository(db *pgxpool.Pool) *CatalogRepository {
	return &CatalogRepository{db: db}
}

// Save stores snap under its digest. Saving an identical catalog again
// returns the existing row and only updates a non-empty label.
func (r *CatalogRepository) Save(ctx context.Context, label string, snap data.Snapshot) (SnapshotInfo, error) {
	payload, err := snap.Encode()
	if err != nil {
		return SnapshotInfo{}, err
	}
	digest, err := snap.Digest()
	if err != nil {
		return SnapshotInfo{}, err
	}

	query := `
		INSERT INTO catalog_snapshots (digest, label, item_count, monster_count, payload)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (digest) DO UPDATE
			SET label = COALESCE(NULLIF(EXCLUDED.label, ''), catalog_snapshots.label)
		RETURNING id, label, created_at
	`

	info := SnapshotInfo{
		Digest:       digest,
		ItemCount:    len(snap.Items),
		MonsterCount: len(snap.Monsters),
	}
	err = r.db.QueryRow(ctx, query, digest, label, info.ItemCount, info.MonsterCount, payload).
		Scan(&info.ID, &info.Label, &info.CreatedAt)
	if err != nil {
		return SnapshotInfo{}, fmt.Errorf("saving catalog snapshot %s: %w", digest, err)
	}

	slog.Info("saved catalog snapshot",
		"id", info.ID,
		"digest", digest,
		"items", info.ItemCount,
		"monsters", info.MonsterCount)
	return info, nil
}

// Load returns the snapshot stored under digest. The payload is re-digested
// so a row edited in place is rejected.
func (r *CatalogRepository) Load(ctx context.Context, digest string) (data.Snapshot, error) {
	var payload []byte
	err := r.db.QueryRow(ctx,
		`SELECT payload FROM catalog_snapshots WHERE digest = $1`, digest,
	).Scan(&payload)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return data.Snapshot{}, fmt.Errorf("digest %s: %w", digest, ErrSnapshotNotFound)
		}
		return data.Snapshot{}, fmt.Errorf("querying catalog snapshot %s: %w", digest, err)
	}

	var snap data.Snapshot
	if err := json.Unmarshal(payload, &snap); err != nil {
		return data.Snapshot{}, fmt.Errorf("decoding catalog snapshot %s: %w", digest, err)
	}
	got, err := snap.Digest()
	if err != nil {
		return data.Snapshot{}, err
	}
	if got != digest {
		return data.Snapshot{}, fmt.Errorf("catalog snapshot %s: payload digests to %s", digest, got)
	}
	return snap, nil
}

// Latest returns the most recently created snapshot.
func (r *CatalogRepository) Latest(ctx context.Context) (SnapshotInfo, error) {
	infos, err := r.list(ctx, 1)
	if err != nil {
		return SnapshotInfo{}, err
	}
	if len(infos) == 0 {
		return SnapshotInfo{}, ErrSnapshotNotFound
	}
	return infos[0], nil
}

// List returns every stored snapshot, newest first.
func (r *CatalogRepository) List(ctx context.Context) ([]SnapshotInfo, error) {
	return r.list(ctx, -1)
}

func (r *CatalogRepository) list(ctx context.Context, limit int) ([]SnapshotInfo, error) {
	query := `
		SELECT id, digest, label, item_count, monster_count, created_at
		FROM catalog_snapshots
		ORDER BY created_at DESC, id DESC
	`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT $1`
		args = append(args, limit)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying catalog snapshots: %w", err)
	}
	defer rows.Close()

	var out []SnapshotInfo
	for rows.Next() {
		var info SnapshotInfo
		if err := rows.Scan(&info.ID, &info.Digest, &info.Label, &info.ItemCount, &info.MonsterCount, &info.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning catalog snapshot row: %w", err)
		}
		out = append(out, info)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating catalog snapshot rows: %w", err)
	}
	return out, nil
}

// Delete removes the snapshot stored under digest.
func (r *CatalogRepository) Delete(ctx context.Context, digest string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM catalog_snapshots WHERE digest = $1`, digest)
	if err != nil {
		return fmt.Errorf("deleting catalog snapshot %s: %w", digest, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("digest %s: %w", digest, ErrSnapshotNotFound)
	}
	return nil
}
