package postgres

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"storerate/internal/domain/entity"
	"storerate/internal/infra/persistence/model"
)

var testDBSeq atomic.Int64

// newTestDB opens an isolated in-memory database with the full schema.
// TranslateError makes the driver report constraint violations through
// GORM's portable error values, same as the postgres setup. Each test gets
// its own named shared-cache database so pooled connections see one store
// while tests stay isolated from each other.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", testDBSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError:         true,
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&model.UserModel{},
		&model.StoreModel{},
		&model.RatingModel{},
	))

	return db
}

func createTestUser(t *testing.T, db *gorm.DB, email string, role entity.Role) *entity.User {
	t.Helper()

	user := &entity.User{
		Name:         "Integration Test Account",
		Email:        email,
		Address:      "1 Test Street",
		PasswordHash: "$2a$10$fakefakefakefakefakefakefakefakefakefakefakefakefake",
		Role:         role,
	}
	require.NoError(t, NewUserRepository(db).Create(context.Background(), user))

	return user
}

func createTestStore(t *testing.T, db *gorm.DB, email string, ownerID int64) *entity.Store {
	t.Helper()

	store := &entity.Store{
		Name:    "Test Store",
		Email:   email,
		Address: "2 Market Street",
		OwnerID: ownerID,
	}
	require.NoError(t, NewStoreRepository(db).Create(context.Background(), store))

	return store
}
