package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/accounts/account-service/internal/core/domain"
	"github.com/accounts/account-service/internal/core/ports"
	"github.com/accounts/account-service/internal/core/validation"
	"github.com/accounts/account-service/internal/pkg/metrics"
)

const (
	DefaultBcryptCost       = bcrypt.DefaultCost
	defaultFailureThreshold = 5
)

// AccountServiceOptions tunes the account service. Zero values select defaults.
type AccountServiceOptions struct {
	BcryptCost int
	// FailureThreshold is the number of consecutive failed signins for one
	// email after which a warning is logged.
	FailureThreshold int64
	Tracker          ports.SigninAttemptTracker
	Audit            ports.AuditSink
}

// AccountService implements signup and signin.
type AccountService struct {
	repo      ports.AccountRepository
	validator *validation.Validator
	tracker   ports.SigninAttemptTracker
	audit     ports.AuditSink
	log       zerolog.Logger

	cost      int
	threshold int64
	// decoyHash is compared against when the email is unknown so both
	// failure paths cost one bcrypt comparison.
	decoyHash []byte
	now       func() time.Time
}

func NewAccountService(
	repo ports.AccountRepository,
	validator *validation.Validator,
	log zerolog.Logger,
	opts AccountServiceOptions,
) (*AccountService, error) {
	cost := opts.BcryptCost
	if cost == 0 {
		cost = DefaultBcryptCost
	}
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return nil, fmt.Errorf("account service: bcrypt cost %d out of range", cost)
	}
	threshold := opts.FailureThreshold
	if threshold <= 0 {
		threshold = defaultFailureThreshold
	}

	decoy, err := bcrypt.GenerateFromPassword([]byte("decoy-password-for-unknown-accounts"), cost)
	if err != nil {
		return nil, fmt.Errorf("account service: decoy hash: %w", err)
	}

	s := &AccountService{
		repo:      repo,
		validator: validator,
		tracker:   opts.Tracker,
		audit:     opts.Audit,
		log:       log,
		cost:      cost,
		threshold: threshold,
		decoyHash: decoy,
		now:       time.Now,
	}
	if s.tracker == nil {
		s.tracker = noopTracker{}
	}
	if s.audit == nil {
		s.audit = noopAudit{}
	}
	return s, nil
}

// Signup validates the input, rejects an email that is already registered,
// hashes the password and persists the new account.
func (s *AccountService) Signup(ctx context.Context, in ports.SignupInput) (*domain.Account, error) {
	if violations := s.validator.Signup(in); len(violations) > 0 {
		s.record(domain.ActionSignup, in.Email, domain.OutcomeValidationFailed)
		return nil, &domain.ValidationError{Violations: violations}
	}

	email := domain.NormalizeEmail(in.Email)

	_, err := s.repo.FindByNormalizedEmail(ctx, email)
	switch {
	case err == nil:
		s.record(domain.ActionSignup, email, domain.OutcomeConflict)
		return nil, domain.ErrAccountConflict
	case !errors.Is(err, domain.ErrAccountNotFound):
		return nil, s.internal(domain.ActionSignup, email, "lookup account", err)
	}

	hash, err := s.hash(in.Password)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			s.record(domain.ActionSignup, email, domain.OutcomeValidationFailed)
			return nil, &domain.ValidationError{Violations: []domain.Violation{{
				Field:   "password",
				Message: "Password must be at most 72 bytes long",
			}}}
		}
		return nil, s.internal(domain.ActionSignup, email, "hash password", err)
	}

	now := s.now().UTC()
	created, err := s.repo.Insert(ctx, &domain.Account{
		Email:        email,
		Name:         in.Name,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		// A concurrent signup can win between the lookup and the insert; the
		// store's unique index reports it and the caller sees the same conflict.
		if errors.Is(err, domain.ErrAccountConflict) {
			s.record(domain.ActionSignup, email, domain.OutcomeConflict)
			return nil, domain.ErrAccountConflict
		}
		return nil, s.internal(domain.ActionSignup, email, "insert account", err)
	}

	s.record(domain.ActionSignup, email, domain.OutcomeSuccess)
	s.log.Info().Str("account_id", created.ID).Msg("account created")
	return created, nil
}

// Signin returns the account whose stored hash matches password. Unknown
// email and wrong password produce the same domain.ErrAuthenticationFailed.
func (s *AccountService) Signin(ctx context.Context, in ports.SigninInput) (*domain.Account, error) {
	if violations := s.validator.Signin(in); len(violations) > 0 {
		s.record(domain.ActionSignin, in.Email, domain.OutcomeValidationFailed)
		return nil, &domain.ValidationError{Violations: violations}
	}

	email := domain.NormalizeEmail(in.Email)

	account, err := s.repo.FindByNormalizedEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, domain.ErrAccountNotFound) {
			return nil, s.internal(domain.ActionSignin, email, "lookup account", err)
		}
		_ = bcrypt.CompareHashAndPassword(s.decoyHash, []byte(in.Password))
		return nil, s.rejectSignin(ctx, email)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(in.Password)); err != nil {
		return nil, s.rejectSignin(ctx, email)
	}

	if err := s.tracker.Reset(ctx, email); err != nil {
		s.log.Warn().Err(err).Msg("failed to reset signin failure counter")
	}
	s.record(domain.ActionSignin, email, domain.OutcomeSuccess)
	return account, nil
}

func (s *AccountService) rejectSignin(ctx context.Context, email string) error {
	s.record(domain.ActionSignin, email, domain.OutcomeInvalidCredentials)

	failures, err := s.tracker.RecordFailure(ctx, email)
	if err != nil {
		s.log.Warn().Err(err).Msg("failed to record signin failure")
	} else if failures == s.threshold {
		metrics.SigninFailureThresholdTotal.Inc()
		s.log.Warn().
			Str("email", email).
			Int64("failures", failures).
			Msg("repeated failed signins for account")
	}

	return domain.ErrAuthenticationFailed
}

func (s *AccountService) hash(password string) ([]byte, error) {
	start := time.Now()
	defer func() {
		metrics.PasswordHashDuration.Observe(time.Since(start).Seconds())
	}()
	return bcrypt.GenerateFromPassword([]byte(password), s.cost)
}

// internal logs the cause and returns an opaque error for the caller.
func (s *AccountService) internal(action domain.AuthAction, email, op string, cause error) error {
	s.log.Error().
		Err(cause).
		Str("action", string(action)).
		Str("op", op).
		Msg("account operation failed")
	s.record(action, email, domain.OutcomeInternalError)
	return fmt.Errorf("%s: %w", action, domain.ErrInternal)
}

func (s *AccountService) record(action domain.AuthAction, email string, outcome domain.AuthOutcome) {
	metrics.AuthRequestsTotal.WithLabelValues(string(action), string(outcome)).Inc()
	s.audit.Record(domain.AuthEvent{
		Email:      domain.NormalizeEmail(email),
		Action:     action,
		Outcome:    outcome,
		OccurredAt: s.now().UTC(),
	})
}

type noopTracker struct{}

func (noopTracker) RecordFailure(context.Context, string) (int64, error) { return 0, nil }
func (noopTracker) Reset(context.Context, string) error                  { return nil }

type noopAudit struct{}

func (noopAudit) Record(domain.AuthEvent) {}
