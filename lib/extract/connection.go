package extract

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/pkg/errors"
)

// Connection is a live postgres session that extraction introspects.
type Connection struct {
	conn *pgxpool.Pool
}

func NewConnection(host string, port uint, name, user, pass string) (*Connection, error) {
	// TODO(feat) support envvar password
	dsnNoPass := fmt.Sprintf("host=%s port=%d user=%s dbname=%s", host, port, user, name)
	dsn := dsnNoPass + fmt.Sprintf(" password=%s", pass)
	conn, err := pgxpool.Connect(context.Background(), dsn)
	if err != nil {
		return nil, errors.Wrap(err, "could not connect to postgres database")
	}
	return &Connection{conn}, nil
}

func (self *Connection) Disconnect() {
	self.conn.Close()
}

func (self *Connection) query(query string, params ...interface{}) (pgx.Rows, error) {
	return self.conn.Query(context.TODO(), query, params...)
}

func (self *Connection) queryRow(query string, params ...interface{}) pgx.Row {
	return self.conn.QueryRow(context.TODO(), query, params...)
}
