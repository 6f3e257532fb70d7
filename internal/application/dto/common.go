package dto

// ErrorResponse cuerpo de error HTTP. Message es apto para el usuario final;
// nunca transporta detalle interno ni errores crudos del driver.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
