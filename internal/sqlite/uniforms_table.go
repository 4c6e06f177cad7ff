package sqlite

import (
	"context"

	"github.com/mesh-intelligence/stockroom/pkg/types"
)

var _ types.UniformsTable = (*uniformsTable)(nil)

// uniformsTable implements UniformsTable.
type uniformsTable struct {
	backend *Backend
}

// List returns every uniform ordered by id.
func (ut *uniformsTable) List(ctx context.Context) ([]types.Uniform, error) {
	db, release, err := ut.backend.reader()
	if err != nil {
		return nil, err
	}
	defer release()

	rows, err := db.QueryContext(ctx, "SELECT id, type, size FROM uniforms ORDER BY id")
	if err != nil {
		return nil, queryError(types.EntityUniform, "list", err)
	}
	defer rows.Close()

	uniforms := []types.Uniform{}
	for rows.Next() {
		var u types.Uniform
		if err := rows.Scan(&u.ID, &u.Type, &u.Size); err != nil {
			return nil, queryError(types.EntityUniform, "list", err)
		}
		uniforms = append(uniforms, u)
	}
	if err := rows.Err(); err != nil {
		return nil, queryError(types.EntityUniform, "list", err)
	}
	return uniforms, nil
}

// Insert appends a uniform and returns its id. Duplicate type/size pairs
// are accepted.
func (ut *uniformsTable) Insert(ctx context.Context, u types.Uniform) (int64, error) {
	db, release, err := ut.backend.writer()
	if err != nil {
		return 0, err
	}
	defer release()

	res, err := db.ExecContext(ctx, "INSERT INTO uniforms (type, size) VALUES (?, ?)", u.Type, u.Size)
	if err != nil {
		return 0, queryError(types.EntityUniform, "insert", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, queryError(types.EntityUniform, "insert", err)
	}
	return id, nil
}

// Delete removes the uniform with id. No cascade.
func (ut *uniformsTable) Delete(ctx context.Context, id int64) error {
	db, release, err := ut.backend.writer()
	if err != nil {
		return err
	}
	defer release()

	if _, err := db.ExecContext(ctx, "DELETE FROM uniforms WHERE id = ?", id); err != nil {
		return queryError(types.EntityUniform, "delete", err)
	}
	return nil
}
