package domain

import "time"

type Staff struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Type      RoleType  `json:"type"` // closer か girl のみ
	Email     string    `json:"email"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	Version   int32     `json:"-"`
}
