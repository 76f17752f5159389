package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/phenrril/fightshop/internal/domain"
)

const MinPasswordLen = 6

// AuthUC registers users and opens sessions. Delay is a cosmetic pause before every
// credential check; it ends early when ctx is cancelled.
type AuthUC struct {
	Users    domain.UserRepo
	Profiles domain.ProfileRepo
	Delay    time.Duration
	Now      func() time.Time
	// Cost is the bcrypt cost, bcrypt.DefaultCost when zero.
	Cost int
}

func (uc *AuthUC) now() time.Time {
	if uc.Now != nil {
		return uc.Now()
	}
	return time.Now()
}

func (uc *AuthUC) wait(ctx context.Context) error {
	if uc.Delay <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(uc.Delay)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

var registerMessages = map[string]string{
	"required": "Обязательное поле",
	"email":    "Некорректный email",
}

func validateRegister(req domain.RegisterRequest) error {
	err := formValidator.Struct(req)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := domain.ValidationErrors{}
	for _, fe := range verrs {
		msg, ok := registerMessages[fe.Tag()]
		if !ok {
			msg = fe.Error()
		}
		out[fe.Field()] = msg
	}
	return out
}

// SessionFor builds the session payload for u.
func SessionFor(u *domain.User, rememberMe bool) *domain.Session {
	return &domain.Session{
		IsAuthenticated: true,
		User: domain.SessionUser{
			ID:        u.ID,
			Email:     u.Email,
			FirstName: u.FirstName,
			LastName:  u.LastName,
			Phone:     u.Phone,
		},
		RememberMe: rememberMe,
	}
}

// Register creates the account and its profile and signs the user in with rememberMe set.
func (uc *AuthUC) Register(ctx context.Context, req domain.RegisterRequest) (*domain.Session, error) {
	req.FirstName = strings.TrimSpace(req.FirstName)
	req.LastName = strings.TrimSpace(req.LastName)
	req.Phone = strings.TrimSpace(req.Phone)
	req.Email = normalizeEmail(req.Email)
	if err := validateRegister(req); err != nil {
		return nil, err
	}
	if req.Password != req.ConfirmPassword {
		return nil, domain.ErrPasswordMismatch
	}
	if len([]rune(req.Password)) < MinPasswordLen {
		return nil, domain.ErrPasswordTooShort
	}
	if err := uc.wait(ctx); err != nil {
		return nil, err
	}
	if _, err := uc.Users.FindByEmail(ctx, req.Email); err == nil {
		return nil, domain.ErrEmailTaken
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	cost := uc.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	u := &domain.User{
		ID:           uuid.New(),
		Email:        req.Email,
		PasswordHash: string(hash),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Phone:        req.Phone,
		CreatedAt:    uc.now(),
	}
	if err := uc.Users.Create(ctx, u); err != nil {
		return nil, err
	}
	if err := uc.ensureProfile(ctx, u); err != nil {
		return nil, err
	}
	return SessionFor(u, true), nil
}

// Login checks the credentials. Unknown emails and wrong passwords both return
// ErrInvalidCredentials.
func (uc *AuthUC) Login(ctx context.Context, email, password string, rememberMe bool) (*domain.Session, error) {
	if err := uc.wait(ctx); err != nil {
		return nil, err
	}
	u, err := uc.Users.FindByEmail(ctx, normalizeEmail(email))
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if u.PasswordHash == "" || bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}
	if err := uc.ensureProfile(ctx, u); err != nil {
		return nil, err
	}
	return SessionFor(u, rememberMe), nil
}

// LoginExternal signs in a user verified by an external provider, creating the account on
// first sign-in. Such accounts have no password.
func (uc *AuthUC) LoginExternal(ctx context.Context, email, firstName, lastName string) (*domain.Session, error) {
	email = normalizeEmail(email)
	if email == "" {
		return nil, domain.ErrInvalidCredentials
	}
	u, err := uc.Users.FindByEmail(ctx, email)
	if errors.Is(err, domain.ErrNotFound) {
		u = &domain.User{
			ID:        uuid.New(),
			Email:     email,
			FirstName: firstName,
			LastName:  lastName,
			CreatedAt: uc.now(),
		}
		err = uc.Users.Create(ctx, u)
	}
	if err != nil {
		return nil, err
	}
	if err := uc.ensureProfile(ctx, u); err != nil {
		return nil, err
	}
	return SessionFor(u, true), nil
}

// ensureProfile seeds the profile from the account the first time; later edits are kept.
func (uc *AuthUC) ensureProfile(ctx context.Context, u *domain.User) error {
	_, err := uc.Profiles.Get(ctx, u.ID)
	if err == nil {
		return nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return err
	}
	return uc.Profiles.Save(ctx, &domain.Profile{
		UserID:    u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Phone:     u.Phone,
		UpdatedAt: uc.now(),
	})
}
