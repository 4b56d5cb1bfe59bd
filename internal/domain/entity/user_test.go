package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// mockTx создаёт минимальный мок для передачи в BeforeSave
// В реальности BeforeSave не использует tx напрямую, но сигнатура требует его
var mockTx *gorm.DB = nil

func TestUser_BeforeSave_HashesPassword(t *testing.T) {
	// Arrange: создаём пользователя с открытым паролем
	plainPassword := "mySecretPassword123"
	user := &User{
		Username: "testuser",
		Email:    "test@example.com",
		Password: plainPassword,
	}

	// Act: вызываем BeforeSave
	err := user.BeforeSave(mockTx)

	// Assert: пароль должен быть хеширован
	require.NoError(t, err, "BeforeSave не должен возвращать ошибку")
	assert.NotEqual(t, plainPassword, user.Password, "Пароль должен быть изменён после хеширования")
	assert.True(t, len(user.Password) > 50, "Хеш bcrypt должен быть длиннее 50 символов")

	// Проверяем, что пароль действительно bcrypt-хеш
	err = bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(plainPassword))
	assert.NoError(t, err, "Хеш должен соответствовать исходному паролю")
}

func TestUser_BeforeSave_SkipsAlreadyHashedPassword(t *testing.T) {
	// Arrange: создаём пользователя с уже хешированным паролем
	plainPassword := "alreadyHashed"
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(plainPassword), bcrypt.DefaultCost)
	require.NoError(t, err)

	user := &User{
		Username: "testuser",
		Email:    "test@example.com",
		Password: string(hashedPassword),
	}
	originalHash := user.Password

	// Act: вызываем BeforeSave
	err = user.BeforeSave(mockTx)

	// Assert: пароль не должен измениться (нет двойного хеширования)
	require.NoError(t, err, "BeforeSave не должен возвращать ошибку")
	assert.Equal(t, originalHash, user.Password, "Уже хешированный пароль не должен изменяться")
}

func TestUser_BeforeSave_SkipsEmptyPassword(t *testing.T) {
	// Arrange: пользователь без пароля (например, созданный через OAuth)
	user := &User{
		Username: "testuser",
		Email:    "test@example.com",
		Password: "",
	}

	// Act: вызываем BeforeSave
	err := user.BeforeSave(mockTx)

	// Assert: пароль должен остаться пустым
	require.NoError(t, err, "BeforeSave не должен возвращать ошибку для пустого пароля")
	assert.Equal(t, "", user.Password, "Пустой пароль должен оставаться пустым")
}

func TestUser_CheckPassword(t *testing.T) {
	// Arrange: создаём пользователя и хешируем его пароль
	correctPassword := "correctPassword123"
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(correctPassword), bcrypt.DefaultCost)
	require.NoError(t, err)

	user := &User{
		Username: "testuser",
		Email:    "test@example.com",
		Password: string(hashedPassword),
	}

	// Act & Assert
	assert.True(t, user.CheckPassword(correctPassword), "CheckPassword должен вернуть true для правильного пароля")
	assert.False(t, user.CheckPassword("wrongPassword456"), "CheckPassword должен вернуть false для неправильного пароля")
	assert.False(t, user.CheckPassword(""), "CheckPassword должен вернуть false для пустого пароля")
}

func TestUser_IsAdmin(t *testing.T) {
	// Arrange & Act & Assert
	admin := &User{Role: RoleAdmin}
	user := &User{Role: RoleUser}

	assert.True(t, admin.IsAdmin(), "Пользователь с ролью admin должен быть администратором")
	assert.False(t, user.IsAdmin(), "Обычный пользователь не должен быть администратором")
}

func TestUser_TableName(t *testing.T) {
	assert.Equal(t, "users", User{}.TableName(), "TableName должен возвращать 'users'")
}
