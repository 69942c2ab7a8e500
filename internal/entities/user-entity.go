package entities

import (
	"time"

	"inventory-system/pkg/constants"
)

type User struct {
	ID        uint64         `db:"id"`
	Name      string         `db:"name"`
	Email     string         `db:"email"`
	Password  string         `db:"password"`
	Role      constants.Role `db:"role"`
	CreatedAt time.Time      `db:"created_at"`
}
