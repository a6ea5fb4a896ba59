package service

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"eats-api/internal/models"
	"eats-api/internal/repository"
	"eats-api/internal/token"
)

// Mailer delivers verification mail. Delivery is best-effort: failures are
// logged and never fail the account flow that triggered them.
type Mailer interface {
	SendVerificationEmail(to, code string) error
}

type Users struct {
	users         repository.UserRepository
	verifications repository.VerificationRepository
	tokens        *token.Service
	mailer        Mailer
}

func NewUsers(users repository.UserRepository, verifications repository.VerificationRepository, tokens *token.Service, mailer Mailer) *Users {
	return &Users{users: users, verifications: verifications, tokens: tokens, mailer: mailer}
}

// CreateAccount registers a new user and issues a verification code.
func (s *Users) CreateAccount(email, password string, role models.UserRole) (*models.User, error) {
	exists, err := s.users.ExistsByEmail(email)
	if err != nil {
		return nil, Internal("Could not create account.")
	}
	if exists {
		return nil, Conflict("There is an user with that email already.")
	}
	user := models.User{Email: email, Password: password, Role: role}
	if err := s.users.Create(&user); err != nil {
		return nil, Internal("Could not create account.")
	}
	s.issueVerification(&user)
	return &user, nil
}

// Login checks credentials and returns a signed bearer token.
func (s *Users) Login(email, password string) (string, error) {
	user, err := s.users.FindByEmail(email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", NotFound("User does not found.")
		}
		return "", Internal("Could not log in.")
	}
	if !user.CheckPassword(password) {
		return "", Forbidden("Password does not match.")
	}
	tokenStr, err := s.tokens.Sign(user.ID)
	if err != nil {
		return "", Internal("Could not log in.")
	}
	return tokenStr, nil
}

func (s *Users) FindByID(id uint) (*models.User, error) {
	user, err := s.users.FindByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, NotFound(fmt.Sprintf("Could not find user have id: %d", id))
		}
		return nil, Internal("Could not find user.")
	}
	return user, nil
}

// UpdateAccount changes e-mail and/or password. An e-mail change resets
// verification and issues a fresh code; a password change re-hashes via the
// model's save hook.
func (s *Users) UpdateAccount(id uint, email, password *string) (*models.User, error) {
	user, err := s.users.FindByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, NotFound(fmt.Sprintf("Could not find user have id: %d", id))
		}
		return nil, Internal("Could not update account.")
	}
	emailChanged := false
	if email != nil && *email != "" && *email != user.Email {
		user.Email = *email
		user.Verified = false
		emailChanged = true
	}
	if password != nil && *password != "" {
		user.Password = *password
	}
	if err := s.users.Save(user); err != nil {
		return nil, Internal("Could not update account.")
	}
	if emailChanged {
		s.issueVerification(user)
	}
	return user, nil
}

func (s *Users) DeleteAccount(id uint) error {
	if err := s.users.Delete(id); err != nil {
		return Internal("Could not delete account.")
	}
	return nil
}

// VerifyEmail consumes a verification code exactly once and marks the user
// verified.
func (s *Users) VerifyEmail(code string) error {
	verification, err := s.verifications.FindByCode(code)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return NotFound("Verification not found.")
		}
		return Internal("Could not verify email.")
	}
	user := verification.User
	user.Verified = true
	if err := s.users.Save(&user); err != nil {
		return Internal("Could not verify email.")
	}
	if err := s.verifications.Delete(verification.ID); err != nil {
		return Internal("Could not verify email.")
	}
	return nil
}

func (s *Users) issueVerification(user *models.User) {
	verification, err := s.verifications.Replace(user.ID)
	if err != nil {
		logrus.WithError(err).WithField("user_id", user.ID).Error("failed to create verification")
		return
	}
	if s.mailer == nil {
		return
	}
	if err := s.mailer.SendVerificationEmail(user.Email, verification.Code); err != nil {
		logrus.WithError(err).WithField("email", user.Email).Warn("failed to send verification email")
	}
}
