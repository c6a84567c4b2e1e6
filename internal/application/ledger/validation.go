package ledger

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"golang.org/x/text/unicode/norm"

	"github.com/jhoicas/Pedidos-api/internal/application/dto"
	"github.com/jhoicas/Pedidos-api/internal/domain"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// decimal.Decimal se valida como número (gte=0 en OrderInput.Amount).
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
	// Los errores reportan el nombre JSON del campo.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validateInput devuelve un error que envuelve domain.ErrInvalidInput con la lista de campos.
func validateInput(in any) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, fe.Field())
		}
		return fmt.Errorf("%w: campos inválidos: %s", domain.ErrInvalidInput, strings.Join(fields, ", "))
	}
	return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
}

// clean recorta espacios y lleva el texto a NFC ("José" tecleado en distintos
// dispositivos queda con los mismos bytes).
func clean(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

func normalizeClient(in dto.ClientInput) dto.ClientInput {
	in.Name = clean(in.Name)
	in.Phone = strings.TrimSpace(in.Phone)
	return in
}

func normalizeOrder(in dto.OrderInput) dto.OrderInput {
	in.ClientID = strings.TrimSpace(in.ClientID)
	in.Details = clean(in.Details)
	return in
}
