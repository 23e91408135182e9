package roster

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strconv"
	"time"
)

type SQLStore struct {
	db     *sql.DB
	driver string // "sqlite" or "postgres"
}

func NewSQLStore(db *sql.DB, driver string) *SQLStore {
	return &SQLStore{db: db, driver: driver}
}

func (s *SQLStore) Get(ctx context.Context, id string) (Person, error) {
	row := s.db.QueryRowContext(ctx, `SELECT id,name,kind,grade,group_name,jornada,subject,ward_ids_json
		FROM people WHERE id=$1`, id)
	var p Person
	var wards string
	err := row.Scan(&p.ID, &p.Name, &p.Kind, &p.Grade, &p.Group, &p.Jornada, &p.Subject, &wards)
	if errors.Is(err, sql.ErrNoRows) {
		return Person{}, ErrNotFound
	}
	if err != nil {
		return Person{}, err
	}
	if wards != "" {
		if err := json.Unmarshal([]byte(wards), &p.WardIDs); err != nil {
			return Person{}, err
		}
	}
	return p, nil
}

func (s *SQLStore) Put(ctx context.Context, p Person) error {
	wards, err := json.Marshal(p.WardIDs)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `INSERT INTO people
		(id,name,kind,grade,group_name,jornada,subject,ward_ids_json,created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		ON CONFLICT (id) DO UPDATE SET name=EXCLUDED.name, kind=EXCLUDED.kind,
		grade=EXCLUDED.grade, group_name=EXCLUDED.group_name, jornada=EXCLUDED.jornada,
		subject=EXCLUDED.subject, ward_ids_json=EXCLUDED.ward_ids_json`,
		p.ID, p.Name, string(p.Kind), p.Grade, p.Group, p.Jornada, p.Subject, string(wards), time.Now().Unix())
	return err
}

func (s *SQLStore) ListStudents(ctx context.Context, f Filter) ([]Student, error) {
	q := `SELECT id,name,grade,group_name,jornada FROM people WHERE kind=$1`
	args := []interface{}{string(KindStudent)}
	add := func(col, val string) {
		if val == "" {
			return
		}
		args = append(args, val)
		q += " AND " + col + "=$" + strconv.Itoa(len(args))
	}
	add("grade", f.Grade)
	add("group_name", f.Group)
	add("jornada", f.Jornada)
	q += " ORDER BY name"

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Student, 0)
	for rows.Next() {
		var st Student
		if err := rows.Scan(&st.ID, &st.Name, &st.Grade, &st.Group, &st.Jornada); err != nil {
			return nil, err
		}
		out = append(out, st)
	}
	return out, rows.Err()
}
