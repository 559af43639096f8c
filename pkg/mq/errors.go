package mq

import "errors"

type TempError struct {
	Err error
}

func (e TempError) Error() string {
	return e.Err.Error()
}

func (e TempError) Unwrap() error {
	return e.Err
}

func (e TempError) Temporary() bool {
	return true
}

// Temporary marks err as retryable so the consumer requeues the message.
func Temporary(err error) error {
	return TempError{Err: err}
}

func IsTemporary(err error) bool {
	var te interface{ Temporary() bool }
	return errors.As(err, &te) && te.Temporary()
}
