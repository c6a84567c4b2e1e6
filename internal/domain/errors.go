package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")

	// ErrStorageFull: el almacenamiento durable rechazó la escritura (cuota o indisponibilidad).
	// La mutación en memoria ya quedó aplicada; el llamador solo debe advertir.
	ErrStorageFull = errors.New("almacenamiento lleno o no disponible")
	// ErrCorruptData: una entrada persistida no se pudo leer; se carga como colección vacía.
	ErrCorruptData = errors.New("datos persistidos corruptos")
	// ErrStorageUnavailable: no se pudo leer el almacenamiento durable (conexión, permisos,
	// contexto cancelado). El estado persistido es desconocido y no se debe sobrescribir.
	ErrStorageUnavailable = errors.New("almacenamiento no disponible")

	ErrInvalidFormat    = errors.New("formato de respaldo inválido")
	ErrImportInProgress = errors.New("ya hay una importación en curso")
)
