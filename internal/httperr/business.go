package httperr

import "errors"

type Kind string

const (
	KindValidation   Kind = "validation"
	KindConflict     Kind = "conflict"
	KindAccessDenied Kind = "access_denied"
	KindForbidden    Kind = "forbidden"
	KindNotFound     Kind = "not_found"
)

type BusinessError struct {
	Kind Kind
	Code string
}

func (e BusinessError) Error() string {
	return e.Code
}

func ErrValidation(code string) error {
	return BusinessError{Kind: KindValidation, Code: code}
}

// ErrConflict é recuperável: o cliente deve escolher outro horário ou recarregar.
func ErrConflict(code string) error {
	return BusinessError{Kind: KindConflict, Code: code}
}

// ErrAccessDenied sinaliza que o lead precisa ser comprado.
func ErrAccessDenied(code string) error {
	return BusinessError{Kind: KindAccessDenied, Code: code}
}

func ErrForbidden(code string) error {
	return BusinessError{Kind: KindForbidden, Code: code}
}

func ErrNotFound(code string) error {
	return BusinessError{Kind: KindNotFound, Code: code}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

func KindOf(err error) (Kind, bool) {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Kind, true
	}
	return "", false
}

func IsKind(err error, kind Kind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}
