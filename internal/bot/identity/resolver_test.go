package identity

import (
	"MyneBooks/internal/adapters/locale"
	"MyneBooks/internal/core/domain"
	"MyneBooks/internal/core/ports"
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- Mocks ---

// MockChatRepository
type MockChatRepository struct {
	mock.Mock
}

var _ ports.ChatRepository = (*MockChatRepository)(nil)

func (m *MockChatRepository) Create(ctx context.Context, chat *domain.Chat) error {
	args := m.Called(ctx, chat)
	return args.Error(0)
}
func (m *MockChatRepository) GetByID(ctx context.Context, id int64) (*domain.Chat, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Chat), args.Error(1)
}
func (m *MockChatRepository) List(ctx context.Context) ([]*domain.Chat, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Chat), args.Error(1)
}
func (m *MockChatRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// --- Helpers ---

func newTestResolver(t *testing.T, repo ports.ChatRepository) *Resolver {
	t.Helper()
	nopLogger := zerolog.Nop()
	lang, err := locale.New("en-GB", &nopLogger)
	require.NoError(t, err)
	return NewResolver(repo, lang, &nopLogger)
}

var privateChat = ports.Chat{ID: 500, Type: ports.ChatTypePrivate}

// --- Tests ---

func TestResolve_FirstContactUser(t *testing.T) {
	// 1. Setup
	repo := new(MockChatRepository)
	repo.On("GetByID", mock.Anything, int64(500)).Return(nil, nil).Once()
	repo.On("Create", mock.Anything, mock.MatchedBy(func(c *domain.Chat) bool {
		return c.ID == 500 &&
			c.Kind == domain.ChatKindUser &&
			c.DisplayName == "Ana Lima" &&
			c.Locale == "pt-BR"
	})).Return(nil).Once()

	resolver := newTestResolver(t, repo)
	from := &ports.User{ID: 500, FirstName: "Ana", LastName: "Lima", LanguageCode: "pt-br"}

	// 2. Execute
	got := resolver.Resolve(context.Background(), privateChat, from)

	// 3. Assert
	assert.Equal(t, "pt-BR", got)
	repo.AssertExpectations(t)
	repo.AssertNumberOfCalls(t, "Create", 1)
}

func TestResolve_FirstContactUnsupportedLanguage(t *testing.T) {
	repo := new(MockChatRepository)
	repo.On("GetByID", mock.Anything, int64(500)).Return(nil, nil)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(c *domain.Chat) bool {
		return c.Locale == "en-GB"
	})).Return(nil).Once()

	resolver := newTestResolver(t, repo)
	got := resolver.Resolve(context.Background(), privateChat, &ports.User{ID: 500, FirstName: "Jan", LanguageCode: "de"})

	assert.Equal(t, "en-GB", got)
	repo.AssertExpectations(t)
}

func TestResolve_FirstContactGroup(t *testing.T) {
	repo := new(MockChatRepository)
	group := ports.Chat{ID: -100, Type: ports.ChatTypeSupergroup, Title: "Readers"}
	repo.On("GetByID", mock.Anything, int64(-100)).Return(nil, nil)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(c *domain.Chat) bool {
		// The sender's language is not the group's
		return c.Kind == domain.ChatKindGroup && c.DisplayName == "Readers" && c.Locale == "en-GB"
	})).Return(nil).Once()

	resolver := newTestResolver(t, repo)
	got := resolver.Resolve(context.Background(), group, &ports.User{ID: 500, LanguageCode: "pt-br"})

	assert.Equal(t, "en-GB", got)
	repo.AssertExpectations(t)
}

func TestResolve_FirstContactWithoutSender(t *testing.T) {
	repo := new(MockChatRepository)
	repo.On("GetByID", mock.Anything, int64(500)).Return(nil, nil)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(c *domain.Chat) bool {
		return c.Kind == domain.ChatKindUser && c.DisplayName == "500"
	})).Return(nil).Once()

	resolver := newTestResolver(t, repo)

	assert.Equal(t, "en-GB", resolver.Resolve(context.Background(), privateChat, nil))
	repo.AssertExpectations(t)
}

func TestResolve_KnownChatLooksUpOnly(t *testing.T) {
	repo := new(MockChatRepository)
	repo.On("GetByID", mock.Anything, int64(500)).
		Return(&domain.Chat{ID: 500, Kind: domain.ChatKindUser, Locale: "pt-BR"}, nil).
		Twice()

	resolver := newTestResolver(t, repo)
	from := &ports.User{ID: 500, LanguageCode: "en"}

	assert.Equal(t, "pt-BR", resolver.Resolve(context.Background(), privateChat, from))
	assert.Equal(t, "pt-BR", resolver.Resolve(context.Background(), privateChat, from))

	repo.AssertExpectations(t)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestResolve_StorageFailuresDegrade(t *testing.T) {
	t.Run("Lookup fails", func(t *testing.T) {
		repo := new(MockChatRepository)
		repo.On("GetByID", mock.Anything, int64(500)).Return(nil, errors.New("connection refused"))

		resolver := newTestResolver(t, repo)
		got := resolver.Resolve(context.Background(), privateChat, &ports.User{ID: 500, LanguageCode: "pt-br"})

		assert.Equal(t, "en-GB", got)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Register fails", func(t *testing.T) {
		repo := new(MockChatRepository)
		repo.On("GetByID", mock.Anything, int64(500)).Return(nil, nil)
		repo.On("Create", mock.Anything, mock.Anything).Return(errors.New("disk full"))

		resolver := newTestResolver(t, repo)
		got := resolver.Resolve(context.Background(), privateChat, &ports.User{ID: 500, LanguageCode: "pt-br"})

		assert.Equal(t, "en-GB", got)
	})
}
