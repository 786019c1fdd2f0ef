package zkcp

import "fmt"

type Error string

const (
	ErrWrongPhase        Error = "operation not allowed in the current phase"
	ErrChallengeMismatch Error = "challenge does not match the committed challenge"
	ErrNilValue          Error = "message contains a nil value"
	ErrChallengeRange    Error = "challenge must be in [0,…,q-1]"
)

func (e Error) Error() string {
	return fmt.Sprintf("zkcp: %s", string(e))
}

// Phase tracks how far a session has progressed through the three moves.
type Phase uint8

const (
	PhaseUninitiated Phase = iota
	PhaseCommitted
	PhaseChallenged
	PhaseResponded
	PhaseVerified
)

func (p Phase) String() string {
	switch p {
	case PhaseUninitiated:
		return "uninitiated"
	case PhaseCommitted:
		return "committed"
	case PhaseChallenged:
		return "challenged"
	case PhaseResponded:
		return "responded"
	case PhaseVerified:
		return "verified"
	default:
		return fmt.Sprintf("phase(%d)", uint8(p))
	}
}

func wrongPhase(op string, phase Phase) error {
	return fmt.Errorf("%w: %s in phase %s", ErrWrongPhase, op, phase)
}
