package role

import "github.com/lib/pq"

type Role struct {
	ID          int            `db:"id" json:"id"`
	Name        string         `db:"name" json:"name"`
	Permissions pq.StringArray `db:"permissions" json:"permissions"`
}
