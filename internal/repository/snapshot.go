package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/vancomm/bstree/bstree"
)

type Snapshot struct {
	Name       string             `db:"name" json:"name"`
	EntryCount int32              `db:"entry_count" json:"entry_count"`
	CreatedAt  pgtype.Timestamptz `db:"created_at" json:"-"`
	UpdatedAt  pgtype.Timestamptz `db:"updated_at" json:"-"`
}

type TreeEntry struct {
	Position int32  `db:"position"`
	Key      string `db:"key"`
	Value    string `db:"value"`
}

func entryRows(entries []bstree.Pair[string, string], name string) pgx.CopyFromSource {
	return pgx.CopyFromSlice(len(entries), func(i int) ([]any, error) {
		return []any{name, int32(i), entries[i].Key, entries[i].Value}, nil
	})
}

/*
Save entries under name, replacing whatever was stored there before. The
entries keep their order, so saving a pre-order dump and loading it back
rebuilds the same tree shape.
*/
func (q *Queries) SaveSnapshot(
	ctx context.Context, name string, entries []bstree.Pair[string, string],
) (snapshot *Snapshot, err error) {
	tx, err := q.db.Begin(ctx)
	if err != nil {
		return nil, classify(err)
	}
	defer func() {
		if err != nil {
			tx.Rollback(ctx)
		}
	}()

	rows, _ := tx.Query(ctx, `
		INSERT INTO tree_snapshot (name, entry_count)
		VALUES (@name, @entry_count)
		ON CONFLICT (name)
		DO UPDATE SET entry_count = excluded.entry_count, updated_at = now()
		RETURNING *`,
		pgx.NamedArgs{
			"name":        name,
			"entry_count": len(entries),
		},
	)
	snapshot, err = pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[Snapshot])
	if err != nil {
		return nil, classify(err)
	}

	if _, err = tx.Exec(ctx, "DELETE FROM tree_entry WHERE name = $1", name); err != nil {
		return nil, classify(err)
	}

	copied, err := tx.CopyFrom(
		ctx,
		pgx.Identifier{"tree_entry"},
		[]string{"name", "position", "key", "value"},
		entryRows(entries, name),
	)
	if err != nil {
		return nil, classify(err)
	}
	if copied != int64(len(entries)) {
		err = fmt.Errorf("copied %d entries, expected %d", copied, len(entries))
		return nil, err
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, classify(err)
	}
	return snapshot, nil
}

// LoadSnapshot returns the entries saved under name in their saved order.
func (q *Queries) LoadSnapshot(ctx context.Context, name string) ([]bstree.Pair[string, string], error) {
	rows, _ := q.db.Query(ctx, "SELECT * FROM tree_snapshot WHERE name = $1", name)
	if _, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[Snapshot]); err != nil {
		return nil, classify(err)
	}

	rows, _ = q.db.Query(ctx, `
		SELECT position, key, value
		FROM tree_entry
		WHERE name = $1
		ORDER BY position`,
		name,
	)
	stored, err := pgx.CollectRows(rows, pgx.RowToStructByName[TreeEntry])
	if err != nil {
		return nil, classify(err)
	}

	entries := make([]bstree.Pair[string, string], len(stored))
	for i, e := range stored {
		entries[i] = bstree.Pair[string, string]{Key: e.Key, Value: e.Value}
	}
	return entries, nil
}

func (q *Queries) ListSnapshots(ctx context.Context) ([]Snapshot, error) {
	rows, _ := q.db.Query(ctx, "SELECT * FROM tree_snapshot ORDER BY name")
	snapshots, err := pgx.CollectRows(rows, pgx.RowToStructByName[Snapshot])
	return snapshots, classify(err)
}

func (q *Queries) DeleteSnapshot(ctx context.Context, name string) error {
	rows, _ := q.db.Query(ctx, "DELETE FROM tree_snapshot WHERE name = $1 RETURNING *", name)
	_, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[Snapshot])
	return classify(err)
}
