package contract

import (
	"errors"
	"fmt"
)

// ErrUserRejected is returned when the user declines the transaction preview.
var ErrUserRejected = errors.New("transaction rejected by user")

// ReadError wraps a failed contract read.
type ReadError struct {
	Method string
	Err    error
}

func (e *ReadError) Error() string { return fmt.Sprintf("reading %s: %v", e.Method, e.Err) }

func (e *ReadError) Unwrap() error { return e.Err }

// TxErrorKind classifies a failed mint.
type TxErrorKind int

const (
	UserRejected TxErrorKind = iota
	ChainError
)

func (k TxErrorKind) String() string {
	if k == UserRejected {
		return "user rejected"
	}
	return "chain error"
}

// TxError is returned by Minter.Mint. Hash is set once the tx was broadcast.
type TxError struct {
	Kind TxErrorKind
	Hash string
	Err  error
}

func (e *TxError) Error() string {
	if e.Hash != "" {
		return fmt.Sprintf("mint failed (%s, tx %s): %v", e.Kind, e.Hash, e.Err)
	}
	return fmt.Sprintf("mint failed (%s): %v", e.Kind, e.Err)
}

func (e *TxError) Unwrap() error { return e.Err }

func chainErr(hash string, format string, args ...any) *TxError {
	return &TxError{Kind: ChainError, Hash: hash, Err: fmt.Errorf(format, args...)}
}
