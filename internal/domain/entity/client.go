package entity

// Client representa un cliente del negocio.
// Las etiquetas JSON definen el formato persistido (clientsDB) y el de respaldo.
type Client struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Phone     string `json:"phone,omitempty"`
	CreatedAt int64  `json:"createdAt"` // milisegundos desde epoch; no cambia al editar
}
