package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"eats-api/internal/models"
	"eats-api/internal/repository"
	"eats-api/internal/token"
)

func newUsersService(t *testing.T) (*Users, *fakeMailer, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	mailer := &fakeMailer{}
	svc := NewUsers(
		repository.NewUserRepository(db),
		repository.NewVerificationRepository(db),
		token.New("test-secret"),
		mailer,
	)
	return svc, mailer, db
}

func verificationFor(t *testing.T, db *gorm.DB, userID uint) *models.Verification {
	t.Helper()
	var verification models.Verification
	require.NoError(t, db.Where("user_id = ?", userID).First(&verification).Error)
	return &verification
}

func TestCreateAccount(t *testing.T) {
	svc, mailer, db := newUsersService(t)

	user, err := svc.CreateAccount("client@example.com", "secret", models.RoleClient)
	require.NoError(t, err)
	assert.Equal(t, models.RoleClient, user.Role)
	assert.False(t, user.Verified)

	// The stored password is hashed, never the plaintext.
	var stored models.User
	require.NoError(t, db.First(&stored, user.ID).Error)
	assert.NotEqual(t, "secret", stored.Password)
	assert.True(t, stored.CheckPassword("secret"))

	// A verification code was issued and mailed.
	verification := verificationFor(t, db, user.ID)
	assert.NotEmpty(t, verification.Code)
	assert.Equal(t, []string{"client@example.com"}, mailer.sent)
}

func TestCreateAccountDuplicateEmail(t *testing.T) {
	svc, _, _ := newUsersService(t)

	_, err := svc.CreateAccount("dup@example.com", "secret", models.RoleClient)
	require.NoError(t, err)

	_, err = svc.CreateAccount("dup@example.com", "other", models.RoleOwner)
	requireKind(t, err, KindConflict)
	assert.EqualError(t, err, "There is an user with that email already.")
}

func TestLogin(t *testing.T) {
	svc, _, _ := newUsersService(t)
	_, err := svc.CreateAccount("login@example.com", "secret", models.RoleClient)
	require.NoError(t, err)

	t.Run("unknown email", func(t *testing.T) {
		_, err := svc.Login("nobody@example.com", "secret")
		requireKind(t, err, KindNotFound)
		assert.EqualError(t, err, "User does not found.")
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login("login@example.com", "nope")
		requireKind(t, err, KindForbidden)
		assert.EqualError(t, err, "Password does not match.")
	})

	t.Run("success", func(t *testing.T) {
		tokenStr, err := svc.Login("login@example.com", "secret")
		require.NoError(t, err)
		assert.NotEmpty(t, tokenStr)

		userID, err := token.New("test-secret").Verify(tokenStr)
		require.NoError(t, err)
		assert.NotZero(t, userID)
	})
}

func TestVerifyEmail(t *testing.T) {
	svc, _, db := newUsersService(t)
	user, err := svc.CreateAccount("verify@example.com", "secret", models.RoleClient)
	require.NoError(t, err)

	verification := verificationFor(t, db, user.ID)
	require.NoError(t, svc.VerifyEmail(verification.Code))

	var verified models.User
	require.NoError(t, db.First(&verified, user.ID).Error)
	assert.True(t, verified.Verified)

	// The code is consumed: a second attempt fails.
	err = svc.VerifyEmail(verification.Code)
	requireKind(t, err, KindNotFound)
	assert.EqualError(t, err, "Verification not found.")
}

func TestVerifyEmailUnknownCode(t *testing.T) {
	svc, _, _ := newUsersService(t)
	err := svc.VerifyEmail("no-such-code")
	requireKind(t, err, KindNotFound)
}

func TestUpdateAccount(t *testing.T) {
	t.Run("email change resets verification", func(t *testing.T) {
		svc, mailer, db := newUsersService(t)
		user, err := svc.CreateAccount("old@example.com", "secret", models.RoleClient)
		require.NoError(t, err)

		verification := verificationFor(t, db, user.ID)
		require.NoError(t, svc.VerifyEmail(verification.Code))

		newEmail := "new@example.com"
		updated, err := svc.UpdateAccount(user.ID, &newEmail, nil)
		require.NoError(t, err)
		assert.Equal(t, "new@example.com", updated.Email)
		assert.False(t, updated.Verified)

		// A fresh code exists and was mailed to the new address.
		fresh := verificationFor(t, db, user.ID)
		assert.NotEqual(t, verification.Code, fresh.Code)
		assert.Contains(t, mailer.sent, "new@example.com")
	})

	t.Run("password change re-hashes", func(t *testing.T) {
		svc, _, _ := newUsersService(t)
		user, err := svc.CreateAccount("pw@example.com", "secret", models.RoleClient)
		require.NoError(t, err)

		newPassword := "changed"
		_, err = svc.UpdateAccount(user.ID, nil, &newPassword)
		require.NoError(t, err)

		_, err = svc.Login("pw@example.com", "secret")
		requireKind(t, err, KindForbidden)
		tokenStr, err := svc.Login("pw@example.com", "changed")
		require.NoError(t, err)
		assert.NotEmpty(t, tokenStr)
	})

	t.Run("unknown user", func(t *testing.T) {
		svc, _, _ := newUsersService(t)
		email := "x@example.com"
		_, err := svc.UpdateAccount(999, &email, nil)
		requireKind(t, err, KindNotFound)
	})
}

func TestDeleteAccount(t *testing.T) {
	svc, _, db := newUsersService(t)
	user, err := svc.CreateAccount("gone@example.com", "secret", models.RoleClient)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteAccount(user.ID))

	err = db.First(&models.User{}, user.ID).Error
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
