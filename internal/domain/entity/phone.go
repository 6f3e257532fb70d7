package entity

// Phone teléfono de contacto de una empresa. Se crean en lote durante el
// registro y solo se eliminan con la empresa (rollback incluido).
type Phone struct {
	ID        int64
	CompanyID int64
	Numero    string
}
