// Package domain defines the value shapes that cross the service boundary:
// the externally owned users row, the country summary returned by the
// country API routes, and the local file payload. None of them is owned or
// persisted by this service; each lives for a single request.
package domain

// User mirrors a row of the externally owned users table. Password and Role
// were added to the schema later and may be NULL.
//
// Fields:
//   - ID: primary key.
//   - Nombre: display name (NOT NULL).
//   - Email: unique address (NOT NULL, unique index).
//   - Password / Role: optional columns, omitted from JSON when NULL.
type User struct {
	ID       uint    `json:"id"                 gorm:"primaryKey;autoIncrement"`
	Nombre   string  `json:"nombre"             gorm:"type:varchar(100);not null"`
	Email    string  `json:"email"              gorm:"type:varchar(150);not null;uniqueIndex:ux_users_email"`
	Password *string `json:"password,omitempty" gorm:"type:varchar(255)"`
	Role     *string `json:"role,omitempty"     gorm:"type:varchar(50)"`
}

// TableName returns the database table name for User.
func (User) TableName() string { return "users" }

// Country is the summary extracted from the country API.
type Country struct {
	Nombre  string `json:"nombre"  example:"Spain"`
	Capital string `json:"capital" example:"Madrid"`
	Bandera string `json:"bandera" example:"https://flagcdn.com/w320/es.png"`
}

// CapitalUnavailable is reported when the upstream record has no capital.
const CapitalUnavailable = "No disponible"

// FileContent is the payload returned for a successfully read local file.
type FileContent struct {
	Mensaje   string `json:"mensaje"   example:"correcto.txt"`
	Contenido string `json:"contenido" example:"Contenido de prueba"`
}

// InsertResult is returned when an insert that is expected to fail goes
// through anyway.
type InsertResult struct {
	Mensaje string `json:"mensaje" example:"usuario insertado"`
}
