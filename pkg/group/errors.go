package group

import "fmt"

type Error string

const (
	ErrNilFields          Error = "contains nil field"
	ErrNotInRange         Error = "alpha and beta must be in [2,…,p-1]"
	ErrOrderTooLarge      Error = "q must be smaller than p"
	ErrWrongOrder         Error = "alpha and beta must have order q"
	ErrEqualGenerators    Error = "alpha cannot be equal to beta"
	ErrDegenerateExponent Error = "exponent must not be congruent to 0 or 1 mod q"
	ErrUnknownGroup       Error = "unknown group name"
	ErrZeroModulus        Error = "p and q must be non zero"
)

func (e Error) Error() string {
	return fmt.Sprintf("group: %s", string(e))
}
