// internal/domain/user.go
package domain

import (
	"errors"
	"time"
)

// ErrUsernameTaken возвращается хранилищем при нарушении уникальности username
var ErrUsernameTaken = errors.New("username already exists")

// User представляет модель пользователя в системе.
// Соответствует таблице 'users' в базе данных (и коллекции users в MongoDB).
type User struct {
	ID        string    `json:"_id" db:"id" gorm:"type:uuid;primaryKey"`
	Username  string    `json:"username" db:"username" gorm:"uniqueIndex;not null"`
	CreatedAt time.Time `json:"-" db:"created_at"`
}

func (User) TableName() string {
	return "users"
}
