package extract

import (
	"database/sql"
	"fmt"

	"github.com/jackc/pgtype"
	"github.com/pkg/errors"
)

//go:generate mockgen -source=introspector.go -destination=mock_introspector.go -package=extract

// Introspector reads just enough catalog structure out of a database to
// seed a generation project from it.
type Introspector interface {
	GetTableList() ([]TableEntry, error)
	GetColumns(schema, table string) ([]ColumnEntry, error)
	GetPrimaryKey(schema, table string) ([]string, error)
	GetForeignKeys() ([]ForeignKeyEntry, error)
	GetSampleRows(schema, table string, limit int) (map[string][]string, error)
}

type LiveIntrospector struct {
	conn *Connection
}

var _ Introspector = &LiveIntrospector{}

func NewIntrospector(conn *Connection) *LiveIntrospector {
	return &LiveIntrospector{conn}
}

func (self *LiveIntrospector) GetTableList() ([]TableEntry, error) {
	res, err := self.conn.query(`
		SELECT schemaname, tablename
		FROM pg_catalog.pg_tables
		WHERE schemaname NOT IN ('information_schema', 'pg_catalog')
		ORDER BY schemaname, tablename;
	`)
	if err != nil {
		return nil, errors.Wrap(err, "while running query")
	}

	out := []TableEntry{}
	for res.Next() {
		entry := TableEntry{}
		err := res.Scan(&entry.Schema, &entry.Table)
		if err != nil {
			return nil, errors.Wrap(err, "while scanning result")
		}
		out = append(out, entry)
	}
	if err := res.Err(); err != nil {
		return nil, errors.Wrap(err, "while iterating results")
	}
	return out, nil
}

func (self *LiveIntrospector) GetColumns(schema, table string) ([]ColumnEntry, error) {
	res, err := self.conn.query(`
		SELECT
			column_name, column_default,
			format_type(atttypid, atttypmod) as attribute_data_type
		FROM information_schema.columns
			JOIN pg_class pgc ON (pgc.relname = table_name AND pgc.relkind='r')
			JOIN pg_namespace nsp ON (nsp.nspname = table_schema AND nsp.oid = pgc.relnamespace)
			JOIN pg_attribute pga ON (pga.attrelid = pgc.oid AND columns.column_name = pga.attname)
		WHERE table_schema=$1 AND table_name=$2
			AND attnum > 0
			AND NOT attisdropped
		ORDER BY ordinal_position ASC
	`, schema, table)
	if err != nil {
		return nil, errors.Wrap(err, "while running query")
	}

	out := []ColumnEntry{}
	for res.Next() {
		entry := ColumnEntry{}
		err := res.Scan(&entry.Name, &maybeStr{&entry.Default}, &entry.AttrType)
		if err != nil {
			return nil, errors.Wrap(err, "while scanning result")
		}
		out = append(out, entry)
	}
	if err := res.Err(); err != nil {
		return nil, errors.Wrap(err, "while iterating results")
	}
	return out, nil
}

func (self *LiveIntrospector) GetPrimaryKey(schema, table string) ([]string, error) {
	arr := pgtype.TextArray{}
	err := self.conn.queryRow(`
		SELECT coalesce(array_agg(a.attname ORDER BY ord.n), '{}')
		FROM pg_catalog.pg_index i
			JOIN pg_catalog.pg_class c ON c.oid = i.indrelid
			JOIN pg_catalog.pg_namespace n ON n.oid = c.relnamespace
			JOIN unnest(i.indkey) WITH ORDINALITY AS ord(attnum, n) ON true
			JOIN pg_catalog.pg_attribute a ON a.attrelid = c.oid AND a.attnum = ord.attnum
		WHERE n.nspname = $1 AND c.relname = $2 AND i.indisprimary
	`, schema, table).Scan(&arr)
	if err != nil {
		return nil, errors.Wrap(err, "while running query")
	}

	out := []string{}
	if err := arr.AssignTo(&out); err != nil {
		return nil, errors.Wrap(err, "while scanning result")
	}
	return out, nil
}

func (self *LiveIntrospector) GetForeignKeys() ([]ForeignKeyEntry, error) {
	// FOREIGN KEYs are not accurately visible through information_schema,
	// read them from pg_catalog instead
	res, err := self.conn.query(`
		SELECT
			con.constraint_name,
			lns.nspname AS local_schema, lt_cl.relname AS local_table, array_agg(lc_att.attname) AS local_columns,
			fns.nspname AS foreign_schema, ft_cl.relname AS foreign_table, array_agg(fc_att.attname) AS foreign_columns
		FROM (
			-- get column mappings
			SELECT
				local_constraint.conrelid AS local_table, unnest(local_constraint.conkey) AS local_col,
				local_constraint.confrelid AS foreign_table, unnest(local_constraint.confkey) AS foreign_col,
				local_constraint.conname AS constraint_name
			FROM pg_class cl
				INNER JOIN pg_namespace ns ON cl.relnamespace = ns.oid
				INNER JOIN pg_constraint local_constraint ON local_constraint.conrelid = cl.oid
			WHERE ns.nspname NOT IN ('pg_catalog','information_schema')
				AND local_constraint.contype = 'f'
		) con
			INNER JOIN pg_class lt_cl ON lt_cl.oid = con.local_table
			INNER JOIN pg_namespace lns ON lns.oid = lt_cl.relnamespace
			INNER JOIN pg_attribute lc_att ON lc_att.attrelid = con.local_table AND lc_att.attnum = con.local_col
			INNER JOIN pg_class ft_cl ON ft_cl.oid = con.foreign_table
			INNER JOIN pg_namespace fns ON fns.oid = ft_cl.relnamespace
			INNER JOIN pg_attribute fc_att ON fc_att.attrelid = con.foreign_table AND fc_att.attnum = con.foreign_col
		GROUP BY con.constraint_name, lns.nspname, lt_cl.relname, fns.nspname, ft_cl.relname;
	`)
	if err != nil {
		return nil, errors.Wrap(err, "while running query")
	}

	out := []ForeignKeyEntry{}
	for res.Next() {
		entry := ForeignKeyEntry{}
		localCols := pgtype.TextArray{}
		foreignCols := pgtype.TextArray{}
		err := res.Scan(
			&entry.ConstraintName,
			&entry.LocalSchema, &entry.LocalTable, &localCols,
			&entry.ForeignSchema, &entry.ForeignTable, &foreignCols,
		)
		if err != nil {
			return nil, errors.Wrap(err, "while scanning result")
		}
		if err := localCols.AssignTo(&entry.LocalColumns); err != nil {
			return nil, errors.Wrap(err, "while scanning result")
		}
		if err := foreignCols.AssignTo(&entry.ForeignColumns); err != nil {
			return nil, errors.Wrap(err, "while scanning result")
		}
		out = append(out, entry)
	}
	if err := res.Err(); err != nil {
		return nil, errors.Wrap(err, "while iterating results")
	}
	return out, nil
}

// GetSampleRows pulls up to limit rows and pivots them into per-column
// value lists. NULLs come back as empty strings.
func (self *LiveIntrospector) GetSampleRows(schema, table string, limit int) (map[string][]string, error) {
	// table names cannot be parameterized
	res, err := self.conn.query(fmt.Sprintf(`SELECT * FROM "%s"."%s" LIMIT $1`, schema, table), limit)
	if err != nil {
		return nil, errors.Wrap(err, "while running query")
	}

	fields := res.FieldDescriptions()
	cols := make([]string, len(fields))
	vals := make([]sql.NullString, len(fields))
	dests := make([]interface{}, len(fields))
	for i, field := range fields {
		cols[i] = string(field.Name)
		dests[i] = &vals[i]
	}

	out := map[string][]string{}
	for res.Next() {
		err := res.Scan(dests...)
		if err != nil {
			return nil, errors.Wrap(err, "while scanning result")
		}
		for i, col := range cols {
			out[col] = append(out[col], vals[i].String)
		}
	}
	if err := res.Err(); err != nil {
		return nil, errors.Wrap(err, "while iterating results")
	}
	return out, nil
}
