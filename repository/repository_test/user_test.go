package repository_test_test

import (
	"testing"

	"social_posting_ms/repository"
	"social_posting_ms/repository/repository_test"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestExists_SQLMock(t *testing.T) {
	conn, mock := repository_test.SetupMockDB(t)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "users" WHERE email = \$1`).
		WithArgs("test@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	repo := repository.NewUserRepository()
	exists, err := repo.Exists(conn, "test@example.com")

	assert.NoError(t, err)
	assert.True(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExists_SQLMock_NoRow(t *testing.T) {
	conn, mock := repository_test.SetupMockDB(t)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "users" WHERE email = \$1`).
		WithArgs("ghost@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	repo := repository.NewUserRepository()
	exists, err := repo.Exists(conn, "ghost@example.com")

	assert.NoError(t, err)
	assert.False(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetUserByEmail_SQLMock(t *testing.T) {
	conn, mock := repository_test.SetupMockDB(t)

	rows := sqlmock.NewRows([]string{"id", "email", "email_verified"}).
		AddRow(1, "test@example.com", true)

	// The email is passed as $1, and LIMIT is $2
	mock.ExpectQuery(`SELECT \* FROM "users" WHERE email = \$1 ORDER BY "users"\."id" LIMIT \$2`).
		WithArgs("test@example.com", 1).
		WillReturnRows(rows)

	repo := repository.NewUserRepository()
	user, err := repo.GetUserByEmail(conn, "test@example.com")

	assert.NoError(t, err)
	assert.NotNil(t, user)
	assert.Equal(t, "test@example.com", user.Email)
	assert.True(t, user.EmailVerified)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetUserByEmail_SQLMock_NotFound(t *testing.T) {
	conn, mock := repository_test.SetupMockDB(t)

	mock.ExpectQuery(`SELECT \* FROM "users" WHERE email = \$1 ORDER BY "users"\."id" LIMIT \$2`).
		WithArgs("ghost@example.com", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email"}))

	repo := repository.NewUserRepository()
	user, err := repo.GetUserByEmail(conn, "ghost@example.com")

	assert.ErrorIs(t, err, repository.ErrUserNotFound)
	assert.Nil(t, user)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkVerified_SQLMock(t *testing.T) {
	conn, mock := repository_test.SetupMockDB(t)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "users" SET "email_verified"=\$1,"updated_at"=\$2 WHERE email = \$3`).
		WithArgs(true, sqlmock.AnyArg(), "test@example.com").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	repo := repository.NewUserRepository()
	err := repo.MarkVerified(conn, "test@example.com")

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateSignCount_SQLMock(t *testing.T) {
	conn, mock := repository_test.SetupMockDB(t)

	credID := []byte("cred-id")

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "user_passkeys" SET "sign_count"=\$1,"updated_at"=\$2 WHERE credential_id = \$3`).
		WithArgs(42, sqlmock.AnyArg(), credID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	repo := repository.NewUserRepository()
	err := repo.UpdateSignCount(conn, credID, 42)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
