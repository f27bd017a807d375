package usecase

import "errors"

// ErrNoMatch não é falha: é o resultado "não faço nada" para triggers
// desconhecidas (e para mensagens sem corpo). Quem recebe não envia nem
// registra nada.
var ErrNoMatch = errors.New("trigger sem template correspondente")

type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func IsDomainError(err error) bool {
	var de *DomainError
	return errors.As(err, &de)
}

// TechnicalError: banco fora, gateway fora, fila fora. Transiente por
// definição: logado por item, nunca derruba o processo.
type TechnicalError struct {
	Code    string
	Message string
	Err     error
}

func (e *TechnicalError) Error() string {
	return e.Message
}

func (e *TechnicalError) Unwrap() error {
	return e.Err
}

func IsTechnicalError(err error) bool {
	var te *TechnicalError
	return errors.As(err, &te)
}
