// Package auth implements pin-based login for tracker users on top of the
// user store.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/nhle/team-tracker/internal/logging"
	"github.com/nhle/team-tracker/internal/model"
	"github.com/nhle/team-tracker/internal/store"
)

// Service handles user creation, login, pin reset and soft deletion.
// Raw pins and recovery answers never reach the log.
type Service struct {
	store store.Store
	log   *zap.Logger
	cost  int
}

// NewService returns a Service hashing pins at the given bcrypt cost.
// A cost outside bcrypt's accepted range falls back to bcrypt.DefaultCost.
func NewService(s store.Store, log *zap.Logger, cost int) *Service {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Service{
		store: s,
		log:   logging.OrNop(log).Named("auth"),
		cost:  cost,
	}
}

// CreateUser stores a new active user with a bcrypt digest of pin.
func (a *Service) CreateUser(
	ctx context.Context,
	username, pin string,
	profileName, recoveryAnswer *string,
) (*model.User, error) {
	const op = "creating user"

	if strings.TrimSpace(username) == "" {
		return nil, model.Validationf(op, "username is required")
	}
	if pin == "" {
		return nil, model.Validationf(op, "pin is required")
	}

	hash, err := a.hash(op, pin)
	if err != nil {
		return nil, err
	}

	u, err := a.store.CreateUser(ctx, model.User{
		Username:       username,
		PinHash:        hash,
		ProfileName:    profileName,
		RecoveryAnswer: recoveryAnswer,
	})
	if err != nil {
		return nil, err
	}

	a.log.Info("user created", zap.String("username", u.Username), zap.Int64("user_id", u.ID))
	return u, nil
}

// LoginUser returns the user with LastLogin refreshed, or (nil, nil) when
// the username is unknown, the account is inactive, or the pin is wrong.
func (a *Service) LoginUser(ctx context.Context, username, pin string) (*model.User, error) {
	u, err := a.store.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if u == nil || !u.IsActive {
		a.log.Info("login rejected", zap.String("username", username))
		return nil, nil
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PinHash), []byte(pin)); err != nil {
		if !errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			a.log.Warn("unreadable pin digest", zap.Int64("user_id", u.ID), zap.Error(err))
		}
		a.log.Info("login rejected", zap.String("username", username))
		return nil, nil
	}

	return a.store.TouchLastLogin(ctx, u.ID)
}

// ResetPin replaces the pin of an active user whose stored recovery answer
// matches exactly. It returns (nil, nil) when the reset is refused.
func (a *Service) ResetPin(
	ctx context.Context,
	username, recoveryAnswer, newPin string,
) (*model.User, error) {
	const op = "resetting pin"

	if newPin == "" {
		return nil, model.Validationf(op, "new pin is required")
	}

	u, err := a.store.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if u == nil || !u.IsActive || u.RecoveryAnswer == nil || *u.RecoveryAnswer == "" ||
		*u.RecoveryAnswer != recoveryAnswer {
		a.log.Info("pin reset rejected", zap.String("username", username))
		return nil, nil
	}

	hash, err := a.hash(op, newPin)
	if err != nil {
		return nil, err
	}

	updated, err := a.store.SetPinHash(ctx, u.ID, hash)
	if err != nil {
		return nil, err
	}
	a.log.Info("pin reset", zap.String("username", updated.Username))
	return updated, nil
}

// DeleteUser deactivates the account. The row is kept.
func (a *Service) DeleteUser(ctx context.Context, id int64) (*model.User, error) {
	return a.store.SoftDeleteUser(ctx, id)
}

func (a *Service) hash(op, pin string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(pin), a.cost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", model.Validationf(op, "pin is too long")
	}
	if err != nil {
		return "", model.Storage(op, fmt.Errorf("hashing pin: %w", err))
	}
	return string(b), nil
}
