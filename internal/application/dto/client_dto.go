package dto

// ClientInput datos editables de un cliente (alta y edición).
// ID y CreatedAt los asigna el Record Store.
type ClientInput struct {
	Name  string `json:"name" validate:"required"`
	Phone string `json:"phone,omitempty"`
}
