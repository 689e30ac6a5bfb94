package app

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"skinvault/internal/model"
	"skinvault/internal/repository"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	// Each sqlite :memory: connection is its own database; pin the pool to
	// one connection so every query sees the same schema.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&model.User{}, &model.Collection{}, &model.Skin{}, &model.CatalogEvent{}))
	return db
}

func newAuthService(t *testing.T) (*AuthService, *gorm.DB) {
	t.Helper()

	db := newTestDB(t)
	return NewAuthService(repository.NewUserRepository(db)), db
}

func TestHashPassword_SaltedButBothVerify(t *testing.T) {
	t.Parallel()

	first, err := HashPassword("secret")
	require.NoError(t, err)
	second, err := HashPassword("secret")
	require.NoError(t, err)

	require.NotEqual(t, first, second)
	require.True(t, VerifyPassword("secret", first))
	require.True(t, VerifyPassword("secret", second))
	require.False(t, VerifyPassword("other", first))
}

func TestVerifyPassword_MalformedHash(t *testing.T) {
	t.Parallel()

	require.False(t, VerifyPassword("secret", "not-a-bcrypt-hash"))
	require.False(t, VerifyPassword("secret", ""))
}

func TestRegister_EmptyFields(t *testing.T) {
	t.Parallel()
	svc, _ := newAuthService(t)

	_, err := svc.Register(RegisterInput{Username: "", Password: "secret"})
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Register(RegisterInput{Username: "alice", Password: ""})
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Register(RegisterInput{Username: "   ", Password: "secret"})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestRegister_StoresHashNotPlaintext(t *testing.T) {
	t.Parallel()
	svc, _ := newAuthService(t)

	user, err := svc.Register(RegisterInput{Username: "alice", Password: "secret"})
	require.NoError(t, err)
	require.NotEqual(t, "secret", user.PasswordHash)
	require.True(t, VerifyPassword("secret", user.PasswordHash))
}

func TestRegister_DuplicateUsername(t *testing.T) {
	t.Parallel()
	svc, db := newAuthService(t)

	_, err := svc.Register(RegisterInput{Username: "alice", Password: "secret"})
	require.NoError(t, err)

	_, err = svc.Register(RegisterInput{Username: "alice", Password: "another"})
	require.ErrorIs(t, err, ErrUsernameExists)

	var count int64
	require.NoError(t, db.Model(&model.User{}).Count(&count).Error)
	require.EqualValues(t, 1, count)
}

// The pre-check can race; the unique index catches the insert that loses and
// the error still maps to the same conflict.
func TestRegister_UniqueIndexBackstop(t *testing.T) {
	t.Parallel()
	svc, db := newAuthService(t)

	hash, err := HashPassword("secret")
	require.NoError(t, err)
	require.NoError(t, db.Create(&model.User{Username: "alice", PasswordHash: hash}).Error)

	repo := repository.NewUserRepository(db)
	err = repo.Create(&model.User{Username: "alice", PasswordHash: hash})
	require.Error(t, err)
	require.True(t, isUniqueViolation(err))

	_, err = svc.Register(RegisterInput{Username: "alice", Password: "secret"})
	require.ErrorIs(t, err, ErrUsernameExists)
}

func TestLogin(t *testing.T) {
	t.Parallel()
	svc, _ := newAuthService(t)

	registered, err := svc.Register(RegisterInput{Username: "alice", Password: "secret"})
	require.NoError(t, err)

	user, err := svc.Login(LoginInput{Username: "alice", Password: "secret"})
	require.NoError(t, err)
	require.Equal(t, registered.ID, user.ID)

	_, err = svc.Login(LoginInput{Username: "alice", Password: "wrong"})
	require.ErrorIs(t, err, ErrInvalidCredential)

	_, err = svc.Login(LoginInput{Username: "nobody", Password: "secret"})
	require.ErrorIs(t, err, ErrInvalidCredential)

	_, err = svc.Login(LoginInput{Username: "", Password: ""})
	require.ErrorIs(t, err, ErrInvalidCredential)
}

func TestGetUserByID(t *testing.T) {
	t.Parallel()
	svc, _ := newAuthService(t)

	registered, err := svc.Register(RegisterInput{Username: "alice", Password: "secret"})
	require.NoError(t, err)

	user, err := svc.GetUserByID(registered.ID)
	require.NoError(t, err)
	require.Equal(t, "alice", user.Username)

	missing, err := svc.GetUserByID(registered.ID + 100)
	require.NoError(t, err)
	require.Nil(t, missing)
}
