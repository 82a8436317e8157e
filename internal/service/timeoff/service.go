package timeoff

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonScheduling/internal/domain"
	"github.com/m04kA/SMC-SalonScheduling/internal/integrations/salonapi"
	"github.com/m04kA/SMC-SalonScheduling/pkg/ptr"
)

const (
	opCreate = "create_time_off"
	opReview = "review_time_off"
	opDelete = "delete_time_off"
	opReopen = "reopen_time_off"
)

// Service сервис заявок на отсутствие
// Каждая мутация проверяется локально по свежей копии заявки до обращения к salon API.
// При сбое salon API мутации возвращают вместе с ошибкой перечитанную заявку (nil, если
// перечитать не удалось или заявки больше нет).
type Service struct {
	client  SalonClient
	locks   Locker
	metrics Metrics
	logger  Logger
}

// NewService создает новый экземпляр сервиса
func NewService(client SalonClient, locks Locker, metrics Metrics, logger Logger) *Service {
	return &Service{
		client:  client,
		locks:   locks,
		metrics: metrics,
		logger:  logger,
	}
}

// List возвращает заявки; сотрудник видит только свои, клиент не видит ничего
func (s *Service) List(ctx context.Context, actor domain.Actor, filter ListFilter) ([]domain.TimeOffRequest, error) {
	switch actor.Role {
	case domain.RoleManager:
	case domain.RoleEmployee:
		if filter.EmployeeID == nil {
			filter.EmployeeID = ptr.Ptr(actor.ID)
		} else if *filter.EmployeeID != actor.ID {
			return nil, fmt.Errorf("%w: %s may not list time off of employee %d", domain.ErrAccessDenied, actor, *filter.EmployeeID)
		}
	default:
		return nil, fmt.Errorf("%w: %s may not list time off", domain.ErrAccessDenied, actor)
	}

	requests, err := s.client.ListTimeOff(ctx, actor, salonapi.TimeOffFilter{
		EmployeeID: filter.EmployeeID,
		Status:     filter.Status,
	})
	if err != nil {
		s.logger.Error("List: failed to list time off: %v", err)
		return nil, translate(err)
	}
	return requests, nil
}

// Create создает заявку в статусе pending
func (s *Service) Create(ctx context.Context, actor domain.Actor, input CreateInput) (*domain.TimeOffRequest, error) {
	if err := domain.CheckCreateTimeOff(actor, input.EmployeeID); err != nil {
		return nil, s.reject(opCreate, err)
	}
	if err := domain.ValidateTimeOffDates(input.DateFrom, input.DateTo); err != nil {
		return nil, s.reject(opCreate, err)
	}
	if err := validateReason(input.Reason); err != nil {
		return nil, s.reject(opCreate, err)
	}

	created, err := s.client.CreateTimeOff(ctx, actor, salonapi.CreateTimeOffInput{
		EmployeeID: input.EmployeeID,
		DateFrom:   input.DateFrom.Format(domain.DateFormat),
		DateTo:     input.DateTo.Format(domain.DateFormat),
		Reason:     input.Reason,
	})
	if err != nil {
		s.logger.Error("Create: failed to create time off for employee=%d: %v", input.EmployeeID, err)
		return s.findCreated(ctx, actor, input, err), translate(err)
	}

	s.logger.Info("Create: time-off id=%d created for employee=%d by %s", created.ID, created.EmployeeID, actor)
	return created, nil
}

// Approve одобряет заявку в статусе pending
func (s *Service) Approve(ctx context.Context, actor domain.Actor, id int64) (*domain.TimeOffRequest, error) {
	return s.Review(ctx, actor, id, domain.DecisionApprove)
}

// Reject отклоняет заявку в статусе pending
func (s *Service) Reject(ctx context.Context, actor domain.Actor, id int64) (*domain.TimeOffRequest, error) {
	return s.Review(ctx, actor, id, domain.DecisionReject)
}

// Review применяет решение менеджера
func (s *Service) Review(ctx context.Context, actor domain.Actor, id int64, decision domain.TimeOffDecision) (*domain.TimeOffRequest, error) {
	unlock, err := s.lock(opReview, id)
	if err != nil {
		return nil, err
	}
	defer unlock()

	current, err := s.fetch(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if err := current.CheckReview(actor, decision); err != nil {
		return nil, s.reject(opReview, err)
	}

	target, _ := decision.Target()
	updated, err := s.client.UpdateTimeOff(ctx, actor, id, salonapi.UpdateTimeOffInput{Status: ptr.Ptr(string(target))})
	if err != nil {
		s.logger.Error("Review: failed to %s time-off id=%d: %v", decision, id, err)
		return s.refetch(ctx, actor, id, err), translate(err)
	}

	s.logger.Info("Review: time-off id=%d %s by %s", id, updated.Status, actor)
	return updated, nil
}

// Delete удаляет заявку; допускается только из pending независимо от роли
// Статус проверяется по свежей копии, отказ сервера возвращается как RemoteError
// вместе с перечитанной заявкой. При успехе заявка не возвращается.
func (s *Service) Delete(ctx context.Context, actor domain.Actor, id int64) (*domain.TimeOffRequest, error) {
	unlock, err := s.lock(opDelete, id)
	if err != nil {
		return nil, err
	}
	defer unlock()

	current, err := s.fetch(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if err := current.CheckDelete(actor); err != nil {
		return nil, s.reject(opDelete, err)
	}

	if err := s.client.DeleteTimeOff(ctx, actor, id); err != nil {
		s.logger.Error("Delete: failed to delete time-off id=%d: %v", id, err)
		return s.refetch(ctx, actor, id, err), translate(err)
	}

	s.logger.Info("Delete: time-off id=%d deleted by %s", id, actor)
	return nil, nil
}

// Reopen возвращает рассмотренную заявку в pending с новыми датами
func (s *Service) Reopen(ctx context.Context, actor domain.Actor, id int64, input ReopenInput) (*domain.TimeOffRequest, error) {
	if err := domain.ValidateTimeOffDates(input.DateFrom, input.DateTo); err != nil {
		return nil, s.reject(opReopen, err)
	}
	if err := validateReason(input.Reason); err != nil {
		return nil, s.reject(opReopen, err)
	}

	unlock, err := s.lock(opReopen, id)
	if err != nil {
		return nil, err
	}
	defer unlock()

	current, err := s.fetch(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if err := current.CheckReopen(actor); err != nil {
		return nil, s.reject(opReopen, err)
	}

	updated, err := s.client.UpdateTimeOff(ctx, actor, id, salonapi.UpdateTimeOffInput{
		Status:   ptr.Ptr(string(domain.TimeOffPending)),
		DateFrom: ptr.Ptr(input.DateFrom.Format(domain.DateFormat)),
		DateTo:   ptr.Ptr(input.DateTo.Format(domain.DateFormat)),
		Reason:   input.Reason,
	})
	if err != nil {
		s.logger.Error("Reopen: failed to reopen time-off id=%d: %v", id, err)
		return s.refetch(ctx, actor, id, err), translate(err)
	}

	s.logger.Info("Reopen: time-off id=%d reopened by %s", id, actor)
	return updated, nil
}

func (s *Service) fetch(ctx context.Context, actor domain.Actor, id int64) (*domain.TimeOffRequest, error) {
	current, err := s.client.GetTimeOff(ctx, actor, id)
	if err != nil {
		s.logger.Error("failed to get time-off id=%d: %v", id, err)
		return nil, translate(err)
	}
	return current, nil
}

// refetch перечитывает заявку после отказа salon API
func (s *Service) refetch(ctx context.Context, actor domain.Actor, id int64, cause error) *domain.TimeOffRequest {
	var remote *domain.RemoteError
	if !errors.As(cause, &remote) {
		return nil
	}

	// исходный контекст мог уже истечь
	current, err := s.client.GetTimeOff(context.WithoutCancel(ctx), actor, id)
	if err != nil {
		s.logger.Warn("failed to re-fetch time-off id=%d: %v", id, err)
		return nil
	}
	return current
}

// findCreated ищет заявку, которую сервер мог создать, хотя ответ на создание не дошел
func (s *Service) findCreated(ctx context.Context, actor domain.Actor, input CreateInput, cause error) *domain.TimeOffRequest {
	var remote *domain.RemoteError
	if !errors.As(cause, &remote) {
		return nil
	}

	list, err := s.client.ListTimeOff(context.WithoutCancel(ctx), actor, salonapi.TimeOffFilter{
		EmployeeID: ptr.Ptr(input.EmployeeID),
		Status:     ptr.Ptr(domain.TimeOffPending),
	})
	if err != nil {
		s.logger.Warn("Create: failed to re-fetch time off of employee=%d: %v", input.EmployeeID, err)
		return nil
	}

	from, to := input.DateFrom.Format(domain.DateFormat), input.DateTo.Format(domain.DateFormat)
	for i := range list {
		req := &list[i]
		if req.EmployeeID == input.EmployeeID && req.IsPending() &&
			req.DateFrom.Format(domain.DateFormat) == from && req.DateTo.Format(domain.DateFormat) == to {
			s.logger.Info("Create: time-off id=%d exists despite the failure", req.ID)
			return req
		}
	}
	return nil
}

func (s *Service) lock(operation string, id int64) (func(), error) {
	unlock, ok := s.locks.TryLock(fmt.Sprintf("time-off:%d", id))
	if !ok {
		return nil, s.reject(operation, fmt.Errorf("%w: time-off request %d", domain.ErrBusy, id))
	}
	return unlock, nil
}

func (s *Service) reject(operation string, err error) error {
	s.metrics.IncRejection(operation, domain.KindName(err))
	s.logger.Warn("%s: rejected locally: %v", operation, err)
	return err
}

func validateReason(reason *string) error {
	if reason != nil && len(*reason) > domain.MaxTimeOffReasonLength {
		return fmt.Errorf("%w: reason exceeds %d characters", domain.ErrInvalidInput, domain.MaxTimeOffReasonLength)
	}
	return nil
}

func translate(err error) error {
	if errors.Is(err, salonapi.ErrNotFound) {
		return fmt.Errorf("%w: %v", domain.ErrNotFound, err)
	}
	return err
}
