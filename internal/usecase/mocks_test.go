package usecase_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/xavierca1/ligue-cursos/internal/entity"
)

// MockLeadRepository
type MockLeadRepository struct {
	mock.Mock
}

func (m *MockLeadRepository) Create(ctx context.Context, lead *entity.Lead) error {
	args := m.Called(ctx, lead)
	return args.Error(0)
}

func (m *MockLeadRepository) FindByPhone(ctx context.Context, phone string) (*entity.Lead, error) {
	args := m.Called(ctx, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Lead), args.Error(1)
}

func (m *MockLeadRepository) List(ctx context.Context) ([]*entity.Lead, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Lead), args.Error(1)
}

func (m *MockLeadRepository) UpdateByPhone(ctx context.Context, phone string, lead *entity.Lead) error {
	args := m.Called(ctx, phone, lead)
	return args.Error(0)
}

func (m *MockLeadRepository) DeleteByPhone(ctx context.Context, phone string) error {
	args := m.Called(ctx, phone)
	return args.Error(0)
}

func (m *MockLeadRepository) ResolveTrigger(ctx context.Context, phone, trigger string) (*entity.TemplateResolution, error) {
	args := m.Called(ctx, phone, trigger)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.TemplateResolution), args.Error(1)
}

func (m *MockLeadRepository) ListFollowupCandidates(ctx context.Context) ([]*entity.FollowupCandidate, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.FollowupCandidate), args.Error(1)
}

func (m *MockLeadRepository) UpdateEngagement(ctx context.Context, phone string, eng entity.Engagement) error {
	args := m.Called(ctx, phone, eng)
	return args.Error(0)
}

// MockInteractionRepository
type MockInteractionRepository struct {
	mock.Mock
}

func (m *MockInteractionRepository) Append(ctx context.Context, interaction *entity.Interaction) error {
	args := m.Called(ctx, interaction)
	return args.Error(0)
}

// MockGateway
type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) SendText(ctx context.Context, to, body string) error {
	args := m.Called(ctx, to, body)
	return args.Error(0)
}

// MockMailer
type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) SendAccess(to, name, courseName, accessLink string) error {
	args := m.Called(to, name, courseName, accessLink)
	return args.Error(0)
}

// MockUserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *entity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context) ([]*entity.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.User), args.Error(1)
}
