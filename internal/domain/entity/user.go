package entity

import "time"

// User representa un usuario del sistema. PasswordHash es opaco: lo produce el servicio de
// hashing, la entidad nunca ve la contraseña en texto plano.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
