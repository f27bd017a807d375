package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/xavierca1/ligue-cursos/internal/entity"
	"github.com/xavierca1/ligue-cursos/internal/usecase"
)

// TestHandleMessageCourse1FlowSuccess - fluxo completo de uma trigger de curso
func TestHandleMessageCourse1FlowSuccess(t *testing.T) {
	ctx := context.Background()

	mockLeadRepo := new(MockLeadRepository)
	mockInteractionRepo := new(MockInteractionRepository)
	mockGateway := new(MockGateway)
	mockMailer := new(MockMailer)

	res := &entity.TemplateResolution{
		Message:      "Hi [FULLNAME], [Course Name] starts [Start Date]. Secure your spot: [Payment Link]",
		NextStatus:   "INTERESTED",
		NextDecision: "CONSIDERING",
		FullName:     "Sam",
		CourseName:   "Curso Completo 1",
		StartDate:    "10/09/2026",
		PaymentLink:  "https://pay.example.com/1",
	}

	mockLeadRepo.On("ResolveTrigger", ctx, "15551234567", "COURSE1").Return(res, nil)
	mockGateway.On("SendText", ctx, "15551234567",
		"Hi Sam, Curso Completo 1 starts 10/09/2026. Secure your spot: https://pay.example.com/1").Return(nil)
	mockInteractionRepo.On("Append", ctx, mock.Anything).Return(nil)
	mockLeadRepo.On("UpdateEngagement", ctx, "15551234567", mock.Anything).Return(nil)

	uc := usecase.NewHandleMessageUseCase(mockLeadRepo, mockInteractionRepo, mockGateway, mockMailer)

	err := uc.Execute(ctx, usecase.MessageInput{From: "15551234567", Body: "course1"})

	assert.NoError(t, err)

	// Duas interações: a trigger recebida e a resposta enviada, nessa ordem
	mockInteractionRepo.AssertNumberOfCalls(t, "Append", 2)

	received := mockInteractionRepo.Calls[0].Arguments.Get(1).(*entity.Interaction)
	assert.Equal(t, entity.DirectionReceived, received.Direction)
	assert.Equal(t, "COURSE1", received.Message)
	assert.Equal(t, "INTERESTED", received.Status)
	if assert.NotNil(t, received.CourseID) {
		assert.Equal(t, 1, *received.CourseID)
	}

	sent := mockInteractionRepo.Calls[1].Arguments.Get(1).(*entity.Interaction)
	assert.Equal(t, entity.DirectionSent, sent.Direction)
	if assert.NotNil(t, sent.CourseID) {
		assert.Equal(t, 1, *sent.CourseID)
	}

	// Nenhuma matrícula fechada: nada de email
	mockMailer.AssertNotCalled(t, "SendAccess", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	mockLeadRepo.AssertExpectations(t)
	mockGateway.AssertExpectations(t)
}

// TestHandleMessageNoMatchIsSilent - trigger desconhecida: nada enviado, nada gravado
func TestHandleMessageNoMatchIsSilent(t *testing.T) {
	ctx := context.Background()

	mockLeadRepo := new(MockLeadRepository)
	mockInteractionRepo := new(MockInteractionRepository)
	mockGateway := new(MockGateway)

	mockLeadRepo.On("ResolveTrigger", ctx, "15551234567", "WHAT IS THIS").Return(nil, usecase.ErrNoMatch)

	uc := usecase.NewHandleMessageUseCase(mockLeadRepo, mockInteractionRepo, mockGateway, nil)

	err := uc.Execute(ctx, usecase.MessageInput{From: "15551234567", Body: "  what is this  "})

	assert.NoError(t, err)
	mockGateway.AssertNotCalled(t, "SendText", mock.Anything, mock.Anything, mock.Anything)
	mockInteractionRepo.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
	mockLeadRepo.AssertNotCalled(t, "UpdateEngagement", mock.Anything, mock.Anything, mock.Anything)
}

// TestHandleMessageEmptyBodyIsIgnored - corpo vazio cai no mesmo caminho do NoMatch
func TestHandleMessageEmptyBodyIsIgnored(t *testing.T) {
	mockLeadRepo := new(MockLeadRepository)
	mockInteractionRepo := new(MockInteractionRepository)
	mockGateway := new(MockGateway)

	uc := usecase.NewHandleMessageUseCase(mockLeadRepo, mockInteractionRepo, mockGateway, nil)

	err := uc.Execute(context.Background(), usecase.MessageInput{From: "15551234567", Body: "   "})

	assert.NoError(t, err)
	mockLeadRepo.AssertNotCalled(t, "ResolveTrigger", mock.Anything, mock.Anything, mock.Anything)
	mockGateway.AssertNotCalled(t, "SendText", mock.Anything, mock.Anything, mock.Anything)
}

// TestHandleMessageStoreDownPropagates - banco fora é erro do item, reportado pra fila
func TestHandleMessageStoreDownPropagates(t *testing.T) {
	ctx := context.Background()

	mockLeadRepo := new(MockLeadRepository)
	mockInteractionRepo := new(MockInteractionRepository)
	mockGateway := new(MockGateway)

	mockLeadRepo.On("ResolveTrigger", ctx, "15551234567", "COURSE1").
		Return(nil, errors.New("connection refused"))

	uc := usecase.NewHandleMessageUseCase(mockLeadRepo, mockInteractionRepo, mockGateway, nil)

	err := uc.Execute(ctx, usecase.MessageInput{From: "15551234567", Body: "COURSE1"})

	assert.Error(t, err)
	mockGateway.AssertNotCalled(t, "SendText", mock.Anything, mock.Anything, mock.Anything)
	mockInteractionRepo.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
}

// TestHandleMessageSendFailureNothingLogged - falhou o envio, não registra troca
func TestHandleMessageSendFailureNothingLogged(t *testing.T) {
	ctx := context.Background()

	mockLeadRepo := new(MockLeadRepository)
	mockInteractionRepo := new(MockInteractionRepository)
	mockGateway := new(MockGateway)

	res := &entity.TemplateResolution{
		Message:    "Hi [FULLNAME]",
		NextStatus: "CONTACTED",
		FullName:   "Ana",
	}

	mockLeadRepo.On("ResolveTrigger", ctx, "5511999999999", "HELLO").Return(res, nil)
	mockGateway.On("SendText", ctx, "5511999999999", "Hi Ana").Return(errors.New("gateway timeout"))

	uc := usecase.NewHandleMessageUseCase(mockLeadRepo, mockInteractionRepo, mockGateway, nil)

	err := uc.Execute(ctx, usecase.MessageInput{From: "+55 11 99999-9999", Body: "hello"})

	assert.Error(t, err)
	mockInteractionRepo.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
	mockLeadRepo.AssertNotCalled(t, "UpdateEngagement", mock.Anything, mock.Anything, mock.Anything)
}

// TestHandleMessageEnrolledSendsAccessEmail - matrícula fechada dispara o email de acesso
func TestHandleMessageEnrolledSendsAccessEmail(t *testing.T) {
	ctx := context.Background()

	mockLeadRepo := new(MockLeadRepository)
	mockInteractionRepo := new(MockInteractionRepository)
	mockGateway := new(MockGateway)
	mockMailer := new(MockMailer)

	res := &entity.TemplateResolution{
		Message:      "Welcome aboard, [FULLNAME]! Here is your access to [Course Name]: [Access Link]",
		NextStatus:   "ENROLLED",
		NextDecision: "ENROLLED",
		FullName:     "Sam",
		Email:        "sam@example.com",
		CourseName:   "Curso Completo 1",
		AccessLink:   "https://app.example.com/1",
	}

	mockLeadRepo.On("ResolveTrigger", ctx, "15551234567", "PAID").Return(res, nil)
	mockGateway.On("SendText", ctx, "15551234567", mock.Anything).Return(nil)
	mockInteractionRepo.On("Append", ctx, mock.Anything).Return(nil)
	mockLeadRepo.On("UpdateEngagement", ctx, "15551234567", mock.Anything).Return(nil)
	mockMailer.On("SendAccess", "sam@example.com", "Sam", "Curso Completo 1", "https://app.example.com/1").Return(nil)

	uc := usecase.NewHandleMessageUseCase(mockLeadRepo, mockInteractionRepo, mockGateway, mockMailer)

	err := uc.Execute(ctx, usecase.MessageInput{From: "15551234567", Body: "paid"})

	assert.NoError(t, err)
	mockMailer.AssertExpectations(t)
}

// TestHandleMessageAccessEmailFailureIsNotFatal - email é melhor-esforço
func TestHandleMessageAccessEmailFailureIsNotFatal(t *testing.T) {
	ctx := context.Background()

	mockLeadRepo := new(MockLeadRepository)
	mockInteractionRepo := new(MockInteractionRepository)
	mockGateway := new(MockGateway)
	mockMailer := new(MockMailer)

	res := &entity.TemplateResolution{
		Message:      "Welcome [FULLNAME]",
		NextStatus:   "ENROLLED",
		NextDecision: "ENROLLED",
		FullName:     "Sam",
		Email:        "sam@example.com",
	}

	mockLeadRepo.On("ResolveTrigger", ctx, "15551234567", "PAID").Return(res, nil)
	mockGateway.On("SendText", ctx, "15551234567", "Welcome Sam").Return(nil)
	mockInteractionRepo.On("Append", ctx, mock.Anything).Return(nil)
	mockLeadRepo.On("UpdateEngagement", ctx, "15551234567", mock.Anything).Return(nil)
	mockMailer.On("SendAccess", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(errors.New("smtp down"))

	uc := usecase.NewHandleMessageUseCase(mockLeadRepo, mockInteractionRepo, mockGateway, mockMailer)

	err := uc.Execute(ctx, usecase.MessageInput{From: "15551234567", Body: "PAID"})

	assert.NoError(t, err)
}
