package core

// pipeline.go runs a form submission through its stages.
//
// Each stage is a step function that either returns the next stage or an
// error. Submit loops until a terminal stage is reached, logging every
// transition under the submission's id.

import (
	"context"
	"fmt"
	"net/url"

	"github.com/JonMunkholm/petition/internal/logging"
	"github.com/google/uuid"
)

// Stage is a state of the submission pipeline.
type Stage int

const (
	StageAwaitingSubmission Stage = iota
	StageValidating
	StageInvalid
	StageSanitizing
	StagePersisting
	StageRedirected
)

func (s Stage) String() string {
	switch s {
	case StageAwaitingSubmission:
		return "awaiting_submission"
	case StageValidating:
		return "validating"
	case StageInvalid:
		return "invalid"
	case StageSanitizing:
		return "sanitizing"
	case StagePersisting:
		return "persisting"
	case StageRedirected:
		return "redirected"
	default:
		return fmt.Sprintf("stage(%d)", int(s))
	}
}

// Terminal reports whether the pipeline stops at s.
func (s Stage) Terminal() bool {
	return s == StageInvalid || s == StageRedirected
}

// Submission is the state of one form submission as it moves through the
// pipeline.
type Submission struct {
	ID    string
	Stage Stage

	// Form holds the values as submitted. An Invalid submission echoes them
	// back to the signer unchanged.
	Form Form

	// Errors is set when Stage is StageInvalid.
	Errors []ValidationError

	// Signature is set once the submission passed validation.
	Signature Signature

	sanitized  Form
	decodeErrs []ValidationError
}

type stepFunc func(ctx context.Context, sub *Submission) (Stage, error)

// Submit validates, sanitizes and stores a submitted form.
//
// A submission that fails validation is returned with Stage StageInvalid and
// a nil error. A storage failure is returned as an error wrapping
// ErrPersistence; the submission is returned alongside it for logging.
func (s *Service) Submit(ctx context.Context, values url.Values) (*Submission, error) {
	form, decodeErrs := DecodeForm(values)
	sub := &Submission{
		ID:         uuid.NewString(),
		Stage:      StageAwaitingSubmission,
		Form:       form,
		decodeErrs: decodeErrs,
	}

	log := logging.WithFields(ctx, "submission_id", sub.ID)
	sub.Stage = StageValidating

	for !sub.Stage.Terminal() {
		step, ok := s.steps[sub.Stage]
		if !ok {
			return sub, fmt.Errorf("submission %s: no step for stage %s", sub.ID, sub.Stage)
		}

		next, err := step(ctx, sub)
		if err != nil {
			log.Error("submission failed", "stage", sub.Stage.String(), "error", err)
			return sub, err
		}

		log.Debug("submission stage", "from", sub.Stage.String(), "to", next.String())
		sub.Stage = next
	}

	if sub.Stage == StageInvalid {
		log.Info("submission rejected", "errors", len(sub.Errors))
	}
	return sub, nil
}

func (s *Service) validate(_ context.Context, sub *Submission) (Stage, error) {
	errs := Validate(sub.Form)
	errs = append(errs, sub.decodeErrs...)
	if len(errs) > 0 {
		sub.Errors = errs
		return StageInvalid, nil
	}
	return StageSanitizing, nil
}

func (s *Service) sanitize(_ context.Context, sub *Submission) (Stage, error) {
	sub.sanitized = Sanitize(sub.Form)

	sig, errs := NewSignature(sub.sanitized)
	if len(errs) > 0 {
		sub.Errors = errs
		return StageInvalid, nil
	}
	sub.Signature = sig
	return StagePersisting, nil
}

func (s *Service) persist(ctx context.Context, sub *Submission) (Stage, error) {
	tag, err := s.store.Insert(ctx, sub.Signature)
	if err != nil {
		return StagePersisting, fmt.Errorf("%w: insert signature: %w", ErrPersistence, err)
	}
	if n := tag.RowsAffected(); n != 1 {
		return StagePersisting, fmt.Errorf("%w: insert signature affected %d rows", ErrPersistence, n)
	}

	logging.WithFields(ctx, "submission_id", sub.ID).Info("signature stored",
		"a_list", sub.Signature.AList,
		"ip", IPAddressFromContext(ctx),
		"user_agent", UserAgentFromContext(ctx),
	)
	return StageRedirected, nil
}
