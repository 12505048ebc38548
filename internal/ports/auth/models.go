package auth

// Claims representa la información extraída del token.
// Role viaja solo como dato; el control de roles vive fuera de este servicio.
type Claims struct {
	UserID string
	Email  string
	Name   string
	Role   string
}
