package academic

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strconv"
	"time"
)

// SQLStore keeps each gradebook as one row with its nested collections in
// JSON columns, matching the persisted-state shape of the record.
type SQLStore struct {
	db     *sql.DB
	driver string // "sqlite" or "postgres"
}

func NewSQLStore(db *sql.DB, driver string) *SQLStore {
	return &SQLStore{db: db, driver: driver}
}

func (s *SQLStore) Get(ctx context.Context, id string) (Gradebook, error) {
	row := s.db.QueryRowContext(ctx, `SELECT subject,grade,group_name,period,owner_id,
		items_json,scores_json,observations_json,descriptors_json,is_locked,version
		FROM gradebooks WHERE id=$1`, id)
	return scanGradebook(row)
}

func (s *SQLStore) List(ctx context.Context, f Filter) ([]Gradebook, error) {
	q := `SELECT subject,grade,group_name,period,owner_id,
		items_json,scores_json,observations_json,descriptors_json,is_locked,version
		FROM gradebooks WHERE 1=1`
	args := []interface{}{}
	add := func(col, val string) {
		if val == "" {
			return
		}
		args = append(args, val)
		q += " AND " + col + "=$" + strconv.Itoa(len(args))
	}
	add("subject", f.Subject)
	add("grade", f.Grade)
	add("group_name", f.Group)
	add("period", f.Period)
	q += " ORDER BY id"

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Gradebook, 0)
	for rows.Next() {
		g, err := scanGradebook(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

func (s *SQLStore) Put(ctx context.Context, gb Gradebook) (Gradebook, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Gradebook{}, err
	}
	defer tx.Rollback()

	id := gb.ID()
	var curVersion int64
	var curLocked bool
	err = tx.QueryRowContext(ctx, `SELECT version, is_locked FROM gradebooks WHERE id=$1`, id).
		Scan(&curVersion, &curLocked)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		gb.Version = 1
		if err := s.insert(ctx, tx, id, gb); err != nil {
			return Gradebook{}, err
		}
	case err != nil:
		return Gradebook{}, err
	default:
		if curVersion != gb.Version {
			return Gradebook{}, ErrVersionConflict
		}
		if curLocked && gb.Locked {
			return Gradebook{}, ErrLocked
		}
		gb.Version = curVersion + 1
		if err := s.update(ctx, tx, id, gb); err != nil {
			return Gradebook{}, err
		}
	}
	if err := tx.Commit(); err != nil {
		return Gradebook{}, err
	}
	return gb, nil
}

func (s *SQLStore) insert(ctx context.Context, tx *sql.Tx, id string, gb Gradebook) error {
	items, scores, obs, descs, err := marshalParts(gb)
	if err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx, `INSERT INTO gradebooks
		(id,subject,grade,group_name,period,owner_id,items_json,scores_json,observations_json,descriptors_json,is_locked,version,updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)`,
		id, gb.Subject, gb.Grade, gb.Group, gb.Period, gb.OwnerID,
		items, scores, obs, descs, gb.Locked, gb.Version, time.Now().Unix())
	return err
}

func (s *SQLStore) update(ctx context.Context, tx *sql.Tx, id string, gb Gradebook) error {
	items, scores, obs, descs, err := marshalParts(gb)
	if err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx, `UPDATE gradebooks SET owner_id=$1, items_json=$2, scores_json=$3,
		observations_json=$4, descriptors_json=$5, is_locked=$6, version=$7, updated_at=$8
		WHERE id=$9`,
		gb.OwnerID, items, scores, obs, descs, gb.Locked, gb.Version, time.Now().Unix(), id)
	return err
}

func marshalParts(gb Gradebook) (items, scores, obs, descs string, err error) {
	b, err := json.Marshal(gb.Items)
	if err != nil {
		return
	}
	items = string(b)
	if b, err = json.Marshal(gb.Scores); err != nil {
		return
	}
	scores = string(b)
	if gb.Observations == nil {
		gb.Observations = map[string]string{}
	}
	if b, err = json.Marshal(gb.Observations); err != nil {
		return
	}
	obs = string(b)
	if b, err = json.Marshal(gb.DescriptorIDs); err != nil {
		return
	}
	descs = string(b)
	return
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanGradebook(row rowScanner) (Gradebook, error) {
	var g Gradebook
	var items, scores, obs, descs string
	err := row.Scan(&g.Subject, &g.Grade, &g.Group, &g.Period, &g.OwnerID,
		&items, &scores, &obs, &descs, &g.Locked, &g.Version)
	if errors.Is(err, sql.ErrNoRows) {
		return Gradebook{}, ErrNotFound
	}
	if err != nil {
		return Gradebook{}, err
	}
	if err := json.Unmarshal([]byte(items), &g.Items); err != nil {
		return Gradebook{}, err
	}
	if err := json.Unmarshal([]byte(scores), &g.Scores); err != nil {
		return Gradebook{}, err
	}
	if err := json.Unmarshal([]byte(obs), &g.Observations); err != nil {
		return Gradebook{}, err
	}
	if err := json.Unmarshal([]byte(descs), &g.DescriptorIDs); err != nil {
		return Gradebook{}, err
	}
	return g, nil
}
