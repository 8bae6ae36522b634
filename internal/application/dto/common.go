package dto

// PageRequest paginación para listados.
type PageRequest struct {
	Limit  int    `query:"limit" validate:"omitempty,min=1,max=500"`
	Cursor string `query:"cursor"`
}

// DefaultPage aplica valores por defecto si Limit es cero.
func (p *PageRequest) DefaultPage() {
	if p.Limit <= 0 {
		p.Limit = 20
	}
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
