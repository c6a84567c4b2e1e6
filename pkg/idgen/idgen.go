// Package idgen genera identificadores para registros nuevos.
package idgen

import "github.com/google/uuid"

// Generator produce identificadores únicos como string.
type Generator interface {
	NewID() string
}

// UUIDv7 genera UUID versión 7: 48 bits de timestamp en milisegundos más bits
// aleatorios. Dentro del proceso son monótonos, por lo que no se repiten
// aunque un registro se elimine.
type UUIDv7 struct{}

// NewID implementa Generator.
func (UUIDv7) NewID() string {
	return uuid.Must(uuid.NewV7()).String()
}

// Default generador usado cuando no se inyecta otro.
var Default Generator = UUIDv7{}
