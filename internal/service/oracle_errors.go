package service

import (
	"errors"
	"fmt"
)

// OracleErrorKind clasifica los fallos de una invocacion al oraculo.
type OracleErrorKind string

const (
	OracleTransport       OracleErrorKind = "transport"
	OracleEmptyOutput     OracleErrorKind = "empty_output"
	OracleMalformedOutput OracleErrorKind = "malformed_output"
	OracleSchema          OracleErrorKind = "schema"
)

// Sentinels para usar con errors.Is contra un *OracleError.
var (
	ErrOracleTransport       = &OracleError{Kind: OracleTransport}
	ErrOracleEmptyOutput     = &OracleError{Kind: OracleEmptyOutput}
	ErrOracleMalformedOutput = &OracleError{Kind: OracleMalformedOutput}
	ErrOracleSchema          = &OracleError{Kind: OracleSchema}
)

// OracleError es el unico tipo de error que devuelve OracleClient. Todos los tipos son reintentables.
type OracleError struct {
	Kind  OracleErrorKind
	Msg   string
	Cause error
}

func (e *OracleError) Error() string {
	msg := "oracle " + string(e.Kind)
	if e.Msg != "" {
		msg += ": " + e.Msg
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *OracleError) Unwrap() error { return e.Cause }

// Is compara solo por Kind, asi errors.Is(err, ErrOracleSchema) funciona con cualquier mensaje.
func (e *OracleError) Is(target error) bool {
	var t *OracleError
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

func newOracleError(kind OracleErrorKind, cause error, format string, args ...any) *OracleError {
	return &OracleError{Kind: kind, Msg: fmt.Sprintf(format, args...), Cause: cause}
}

// schemaErrorf es el helper que usan los shape checks.
func schemaErrorf(format string, args ...any) error {
	return newOracleError(OracleSchema, nil, format, args...)
}

// oracleErrorKind devuelve el tipo de un error del oraculo o "" si no lo es.
func oracleErrorKind(err error) OracleErrorKind {
	var oe *OracleError
	if errors.As(err, &oe) {
		return oe.Kind
	}
	return ""
}
