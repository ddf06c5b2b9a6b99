package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"userauth/internal/domain"
)

func TestUserRepository_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository()

	user := &domain.User{ID: "1", Username: "alice", Email: "a@b.com", PasswordHash: "$2a$10$x"}
	require.NoError(t, repo.Create(ctx, user))

	got, err := repo.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, user, got)

	got.Email = "changed@b.com"
	again, err := repo.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "a@b.com", again.Email, "stored user must not alias returned copies")
}

func TestUserRepository_AgeNotShared(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository()

	age := 30
	user := &domain.User{ID: "1", Username: "alice", Age: &age}
	require.NoError(t, repo.Create(ctx, user))

	age = 12
	got, err := repo.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	require.NotNil(t, got.Age)
	assert.Equal(t, 30, *got.Age, "caller's pointer must not reach the stored user")

	*got.Age = 99
	again, err := repo.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, 30, *again.Age)
}

func TestUserRepository_Duplicate(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository()

	require.NoError(t, repo.Create(ctx, &domain.User{ID: "1", Username: "alice"}))
	err := repo.Create(ctx, &domain.User{ID: "2", Username: "alice"})
	assert.ErrorIs(t, err, domain.ErrDuplicateUser)
}

func TestUserRepository_NotFound(t *testing.T) {
	_, err := NewUserRepository().GetByUsername(context.Background(), "ghost")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestUserRepository_ConcurrentCreateSameUsername(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository()

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		created int
	)
	for i := range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := repo.Create(ctx, &domain.User{ID: fmt.Sprint(i), Username: "race"}); err == nil {
				mu.Lock()
				created++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, created)
}
