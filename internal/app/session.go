package app

import (
	"fmt"

	"github.com/MGTheTrain/crypto-gateway/internal/domain/cryptoalg"
	"github.com/MGTheTrain/crypto-gateway/internal/domain/gateway"
	"github.com/MGTheTrain/crypto-gateway/internal/pkg/logger"
)

// session implements gateway.Session. It owns a cloned parameter set and the
// only reference to its accumulator; finalize drops that reference.
type session struct {
	variant   gateway.Variant
	params    *gateway.ParameterSet
	acc       cryptoalg.Accumulator
	state     gateway.SessionState
	validator *Validator
	logger    logger.Logger
}

func newSession(variant gateway.Variant, params *gateway.ParameterSet, acc cryptoalg.Accumulator, validator *Validator, logger logger.Logger) *session {
	s := &session{
		variant:   variant,
		params:    params,
		acc:       acc,
		state:     gateway.SessionOpen,
		validator: validator,
		logger:    logger,
	}
	s.checkInvariant()
	return s
}

func (s *session) Variant() gateway.Variant { return s.variant }

func (s *session) State() gateway.SessionState { return s.state }

// Update absorbs chunk. After finalize it fails with SessionClosed and leaves
// the session untouched.
func (s *session) Update(chunk []byte) error {
	if s.state != gateway.SessionOpen {
		s.checkInvariant()
		return gateway.NewSessionClosed(s.variant)
	}
	s.checkInvariant()

	s.acc.Write(chunk)
	return nil
}

// Finalize produces the output using params.HashLength or the variant default.
func (s *session) Finalize() ([]byte, error) {
	return s.finalize(nil)
}

// FinalizeWithLength produces an output of exactly length bytes.
func (s *session) FinalizeWithLength(length int) ([]byte, error) {
	return s.finalize(&length)
}

// Close wipes an open session without producing output.
func (s *session) Close() {
	if s.state != gateway.SessionOpen {
		return
	}
	s.checkInvariant()
	s.release()
	s.state = gateway.SessionFinalized
}

func (s *session) finalize(requested *int) (out []byte, err error) {
	if s.state == gateway.SessionFinalized {
		return nil, gateway.NewAlreadyFinalized(s.variant)
	}
	s.checkInvariant()

	// a rejected length leaves the session open and the accumulator untouched
	length, err := s.validator.ResolveFinalizeLength(s.variant, s.params, requested)
	if err != nil {
		return nil, err
	}

	acc := s.acc
	s.acc = nil
	s.state = gateway.SessionFinalized
	defer func() {
		acc.Wipe()
		s.params.Wipe()
		if r := recover(); r != nil {
			out, err = nil, recovered(s.variant, r)
		}
	}()

	out, err = acc.Sum(length)
	if err != nil {
		return nil, normalize(s.variant, err)
	}

	s.logger.Debug("Finalized ", s.variant, " session output_size=", len(out))
	return out, nil
}

func (s *session) release() {
	if s.acc != nil {
		s.acc.Wipe()
		s.acc = nil
	}
	s.params.Wipe()
}

// checkInvariant panics when an open session has lost its accumulator or holds
// one built for another variant, or when the session was already marked
// invalid. Neither can be caused by a caller.
func (s *session) checkInvariant() {
	switch s.state {
	case gateway.SessionInvalid:
		panic(fmt.Sprintf("session for %s observed in invalid state", s.variant))
	case gateway.SessionOpen:
		if s.acc == nil || s.acc.Variant() != s.variant {
			s.state = gateway.SessionInvalid
			panic(fmt.Sprintf("session for %s lost its accumulator invariant", s.variant))
		}
	}
}
