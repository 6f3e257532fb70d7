package dto

// RegisterCompanyRequest campos de formulario del registro (multipart; el
// logo llega como archivo aparte). Los passwords viajan en texto y se hashean
// en el use case.
type RegisterCompanyRequest struct {
	NombreUsuario    string   `form:"nombreUsuario"`
	EmailContacto    string   `form:"emailContacto"`
	PasswordAdmin    string   `form:"passwordAdmin"`
	PasswordVendedor string   `form:"passwordVendedor"`
	RUC              string   `form:"ruc"` // opcional; si viene exige razón social
	RazonSocial      string   `form:"razonSocial"`
	NombreComercial  string   `form:"nombreComercial"`
	Direccion        string   `form:"direccion"`
	Telefonos        []string `form:"telefonos"`
}

// RegisterCompanyResponse salida del registro iniciado.
type RegisterCompanyResponse struct {
	Message   string `json:"message"`
	EmpresaID int64  `json:"empresaId"`
}

// VerifyRequest entrada de la verificación de cuenta.
type VerifyRequest struct {
	EmpresaID int64  `json:"empresaId"`
	Codigo    string `json:"codigo"`
}

// LoginRequest entrada de login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserProfile perfil visible del usuario autenticado. Nunca incluye el hash.
type UserProfile struct {
	Email         string `json:"email"`
	Rol           string `json:"rol"`
	NombreUsuario string `json:"nombreUsuario"`
	RUC           string `json:"ruc,omitempty"`
	RazonSocial   string `json:"razonSocial,omitempty"`
	Logo          string `json:"logo"`
}

// LoginResponse salida de login con la credencial de sesión.
type LoginResponse struct {
	Message string      `json:"message"`
	Token   string      `json:"token"`
	User    UserProfile `json:"user"`
}

// ForgotPasswordRequest entrada de la fase 1 de recuperación.
type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

// ForgotPasswordResponse salida de la fase 1: código enviado.
type ForgotPasswordResponse struct {
	Message   string `json:"message"`
	EmpresaID int64  `json:"empresaId"`
}

// VerifyResetCodeRequest entrada de la fase 2 de recuperación (solo lectura).
type VerifyResetCodeRequest struct {
	EmpresaID int64  `json:"empresaId"`
	Codigo    string `json:"codigo"`
}

// ResetPasswordRequest entrada de la fase 3: consume el código y fija la
// nueva contraseña del usuario con el rol objetivo.
type ResetPasswordRequest struct {
	EmpresaID   int64  `json:"empresaId"`
	Codigo      string `json:"codigo"`
	TargetRol   string `json:"targetRol"` // "ADMIN" | "VENDEDOR"
	NewPassword string `json:"newPassword"`
}

// MessageResponse respuesta simple de confirmación.
type MessageResponse struct {
	Message string `json:"message"`
}
