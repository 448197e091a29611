package httperr

import "errors"

// BusinessError es una regla de negocio violada, identificada por un
// código estable en snake_case (invalid_status, time_conflict, ...).
// Los use cases lo devuelven sin status HTTP; el handler lo traduce.
type BusinessError struct {
	Code string
}

func (e BusinessError) Error() string {
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

// IsBusiness pregunta por un código puntual, para los switch de mapeo
// de errores en los handlers.
func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}
