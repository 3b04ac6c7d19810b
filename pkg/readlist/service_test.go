package readlist_test

import (
	"context"
	"errors"
	"testing"

	"anitrack/pkg/readlist"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type mockRepo struct {
	mock.Mock
}

func (m *mockRepo) Create(ctx context.Context, item *readlist.Item) error {
	args := m.Called(item)
	if args.Error(0) == nil {
		item.ID = primitive.NewObjectID()
	}
	return args.Error(0)
}

func (m *mockRepo) FindOne(ctx context.Context, userID int64, provider, providerID string) (*readlist.Item, error) {
	args := m.Called(userID, provider, providerID)
	if it := args.Get(0); it != nil {
		return it.(*readlist.Item), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRepo) ListByUser(ctx context.Context, userID int64) ([]*readlist.Item, error) {
	args := m.Called(userID)
	if it := args.Get(0); it != nil {
		return it.([]*readlist.Item), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	return m.Called(id).Error(0)
}

func TestService_Add(t *testing.T) {
	ctx := context.Background()
	input := readlist.Item{Provider: "anilist", ProviderID: "21", Title: "One Piece"}

	t.Run("created", func(t *testing.T) {
		repo := new(mockRepo)
		repo.On("FindOne", int64(1), "anilist", "21").Return(nil, readlist.ErrNotFound)
		repo.On("Create", mock.AnythingOfType("*readlist.Item")).Return(nil)

		item, created, err := readlist.NewService(repo).Add(ctx, 1, input)

		require.NoError(t, err)
		assert.True(t, created)
		assert.Equal(t, int64(1), item.UserID)
		assert.False(t, item.ID.IsZero())
		assert.False(t, item.CreatedAt.IsZero())
		repo.AssertExpectations(t)
	})

	t.Run("already present", func(t *testing.T) {
		repo := new(mockRepo)
		existing := &readlist.Item{ID: primitive.NewObjectID(), UserID: 1, Provider: "anilist", ProviderID: "21"}
		repo.On("FindOne", int64(1), "anilist", "21").Return(existing, nil)

		item, created, err := readlist.NewService(repo).Add(ctx, 1, input)

		require.NoError(t, err)
		assert.False(t, created)
		assert.Same(t, existing, item)
		repo.AssertNotCalled(t, "Create", mock.Anything)
	})

	t.Run("lost insert race", func(t *testing.T) {
		repo := new(mockRepo)
		existing := &readlist.Item{ID: primitive.NewObjectID(), UserID: 1}
		repo.On("FindOne", int64(1), "anilist", "21").Return(nil, readlist.ErrNotFound).Once()
		repo.On("Create", mock.Anything).Return(readlist.ErrAlreadyExists)
		repo.On("FindOne", int64(1), "anilist", "21").Return(existing, nil).Once()

		item, created, err := readlist.NewService(repo).Add(ctx, 1, input)

		require.NoError(t, err)
		assert.False(t, created)
		assert.Same(t, existing, item)
	})

	t.Run("missing fields", func(t *testing.T) {
		svc := readlist.NewService(new(mockRepo))

		for _, it := range []readlist.Item{
			{ProviderID: "21", Title: "x"},
			{Provider: "anilist", Title: "x"},
			{Provider: "anilist", ProviderID: "21", Title: "  "},
		} {
			_, _, err := svc.Add(ctx, 1, it)
			assert.ErrorIs(t, err, readlist.ErrValidation)
		}
	})

	t.Run("repo error", func(t *testing.T) {
		repo := new(mockRepo)
		repo.On("FindOne", int64(1), "anilist", "21").Return(nil, errors.New("mongo down"))

		_, _, err := readlist.NewService(repo).Add(ctx, 1, input)
		assert.EqualError(t, err, "mongo down")
	})
}

func TestService_Remove(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		repo := new(mockRepo)
		id := primitive.NewObjectID()
		repo.On("FindOne", int64(2), "anilist", "21").Return(&readlist.Item{ID: id}, nil)
		repo.On("Delete", id).Return(nil)

		assert.NoError(t, readlist.NewService(repo).Remove(ctx, 2, "anilist", "21"))
		repo.AssertExpectations(t)
	})

	t.Run("not in list", func(t *testing.T) {
		repo := new(mockRepo)
		repo.On("FindOne", int64(2), "anilist", "21").Return(nil, readlist.ErrNotFound)

		err := readlist.NewService(repo).Remove(ctx, 2, "anilist", "21")
		assert.ErrorIs(t, err, readlist.ErrNotFound)
	})

	t.Run("missing fields", func(t *testing.T) {
		err := readlist.NewService(new(mockRepo)).Remove(ctx, 2, "", "21")
		assert.ErrorIs(t, err, readlist.ErrValidation)
	})
}

func TestService_List(t *testing.T) {
	repo := new(mockRepo)
	items := []*readlist.Item{{Title: "a"}, {Title: "b"}}
	repo.On("ListByUser", int64(4)).Return(items, nil)

	got, err := readlist.NewService(repo).List(context.Background(), 4)

	require.NoError(t, err)
	assert.Equal(t, items, got)
}
