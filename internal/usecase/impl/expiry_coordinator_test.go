package impl

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"cooked/internal/domain/entity"
	"cooked/internal/infra/persistence/blobstore"
	mockService "cooked/internal/mocks/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocloud.dev/blob/memblob"
)

func TestExpiryCoordinator_Trigger_RunsHandlerOnce(t *testing.T) {
	coordinator := NewExpiryCoordinator(nil, nil, discardLogger())

	var calls atomic.Int32
	coordinator.Register(func(context.Context, string) { calls.Add(1) })
	coordinator.Arm()

	var wg sync.WaitGroup
	for range 32 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			coordinator.Trigger(context.Background(), "401")
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
	assert.False(t, coordinator.Armed())
}

func TestExpiryCoordinator_Trigger_DisarmedIsNoop(t *testing.T) {
	coordinator := NewExpiryCoordinator(nil, nil, discardLogger())

	var calls atomic.Int32
	coordinator.Register(func(context.Context, string) { calls.Add(1) })

	coordinator.Trigger(context.Background(), "before sign-in")

	coordinator.Arm()
	coordinator.Disarm()
	coordinator.Trigger(context.Background(), "after sign-out")

	assert.Zero(t, calls.Load())
}

func TestExpiryCoordinator_Trigger_RearmedRunsAgain(t *testing.T) {
	coordinator := NewExpiryCoordinator(nil, nil, discardLogger())

	var reasons []string
	coordinator.Register(func(_ context.Context, reason string) { reasons = append(reasons, reason) })

	coordinator.Arm()
	coordinator.Trigger(context.Background(), "first")
	coordinator.Trigger(context.Background(), "ignored")
	coordinator.Arm()
	coordinator.Trigger(context.Background(), "second")

	assert.Equal(t, []string{"first", "second"}, reasons)
}

func TestExpiryCoordinator_DefaultHandler(t *testing.T) {
	ctx := context.Background()
	bucket := memblob.OpenBucket(nil)
	t.Cleanup(func() { _ = bucket.Close() })

	repo := blobstore.NewSessionRepository(bucket, "session/")
	require.NoError(t, repo.Save(ctx, cookSession(42)))

	navigator := mockService.NewMockNavigator(t)
	navigator.EXPECT().Navigate(entity.RouteSignIn).Once()

	coordinator := NewExpiryCoordinator(repo, navigator, discardLogger())
	coordinator.Arm()
	coordinator.Trigger(ctx, "401")

	stored, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, stored)
}
