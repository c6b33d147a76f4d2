package service_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Twit-Snap/users-service/internal/domain"
	"github.com/Twit-Snap/users-service/internal/pkg/apperror"
	"github.com/Twit-Snap/users-service/internal/pkg/logger"
	"github.com/Twit-Snap/users-service/internal/port"
	"github.com/Twit-Snap/users-service/internal/service"
)

func TestAuditService_Record(t *testing.T) {
	repo := new(MockAuditLogRepository)
	svc := service.NewAuditService(repo, logger.Discard())

	ctx := logger.WithClientContext(context.Background(), logger.ClientInfo{IP: "10.0.0.7", UserAgent: "curl/8.0"})

	var saved *domain.AuditLog
	repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.AuditLog")).
		Run(func(args mock.Arguments) { saved = args.Get(1).(*domain.AuditLog) }).
		Return(nil).Once()

	err := svc.Record(ctx, port.AuditEntry{
		Action:       domain.AuditActionLoginFailed,
		ResourceType: domain.AuditResourceTypeAuth,
		ResourceID:   "ghost",
		Details:      map[string]interface{}{"reason": "unknown identifier"},
	})
	require.NoError(t, err)
	require.NotNil(t, saved)

	assert.Equal(t, service.ActorAnonymous, saved.ActorType)
	assert.Equal(t, "ghost", saved.ResourceID)
	require.NotNil(t, saved.IPAddress)
	assert.Equal(t, "10.0.0.7", *saved.IPAddress)
	require.NotNil(t, saved.UserAgent)
	assert.Equal(t, "curl/8.0", *saved.UserAgent)
	assert.False(t, saved.CreatedAt.IsZero())

	var details map[string]string
	require.NoError(t, json.Unmarshal(saved.Details, &details))
	assert.Equal(t, "unknown identifier", details["reason"])
}

func TestAuditService_Record_WithoutClientOrDetails(t *testing.T) {
	repo := new(MockAuditLogRepository)
	svc := service.NewAuditService(repo, logger.Discard())

	repo.On("Create", mock.Anything, mock.MatchedBy(func(l *domain.AuditLog) bool {
		return l.ActorType == "user" && l.IPAddress == nil && l.UserAgent == nil && l.Details == nil
	})).Return(nil).Once()

	require.NoError(t, svc.Record(context.Background(), port.AuditEntry{
		ActorType: "user", ActorID: "1", Action: domain.AuditActionLoginSuccess,
	}))
	repo.AssertExpectations(t)
}

func TestAuditService_RecordTx_PropagatesError(t *testing.T) {
	repo := new(MockAuditLogRepository)
	svc := service.NewAuditService(repo, logger.Discard())
	repo.On("CreateTx", mock.Anything, mock.Anything, mock.Anything).
		Return(apperror.Internal("insert failed", nil)).Once()

	err := svc.RecordTx(context.Background(), nil, port.AuditEntry{Action: domain.AuditActionUserBlock})

	requireAppError(t, err, apperror.CodeInternal)
}

func TestAuditService_History_DefaultLimit(t *testing.T) {
	repo := new(MockAuditLogRepository)
	svc := service.NewAuditService(repo, logger.Discard())
	repo.On("FindByActor", mock.Anything, "admin", "root", 50).
		Return([]domain.AuditLog{{Action: domain.AuditActionAdminLogin}}, nil).Once()

	logs, err := svc.History(context.Background(), "admin", "root", 0)

	require.NoError(t, err)
	assert.Len(t, logs, 1)
	repo.AssertExpectations(t)
}
