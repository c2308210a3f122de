package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"procura/internal/domain"
	"procura/internal/port"
	"procura/internal/validation"
)

// Actor identifies the authenticated user performing an operation.
type Actor struct {
	UserID uuid.UUID
	Role   domain.UserRole
}

// IsProcurement reports whether the actor has the procurement role.
func (a Actor) IsProcurement() bool {
	return a.Role == domain.RoleProcurement
}

// OrderLineInput is the DTO for one order line.
type OrderLineInput struct {
	LineType            domain.LineType  `json:"line_type"`
	Description         string           `json:"description" binding:"required"`
	DetailedDescription string           `json:"detailed_description"`
	UnitPrice           decimal.Decimal  `json:"unit_price"`
	Amount              decimal.Decimal  `json:"amount"`
	Unit                string           `json:"unit"`
	DiscountPercent     *decimal.Decimal `json:"discount_percent"`
	DiscountAmount      *decimal.Decimal `json:"discount_amount"`
}

// CreateRequestInput is the DTO for creating a procurement request.
type CreateRequestInput struct {
	Title            string           `json:"title" binding:"required"`
	VendorName       string           `json:"vendor_name" binding:"required"`
	VatID            string           `json:"vat_id" binding:"required"`
	Department       string           `json:"department" binding:"required"`
	CommodityGroupID *uuid.UUID       `json:"commodity_group_id"`
	Notes            string           `json:"notes"`
	OrderLines       []OrderLineInput `json:"order_lines" binding:"required"`
}

// UpdateRequestInput is the DTO for updating a request. Nil slices and
// empty strings leave the stored value untouched.
type UpdateRequestInput struct {
	Title            *string          `json:"title"`
	VendorName       *string          `json:"vendor_name"`
	VatID            *string          `json:"vat_id"`
	Department       *string          `json:"department"`
	CommodityGroupID *uuid.UUID       `json:"commodity_group_id"`
	Notes            *string          `json:"notes"`
	OrderLines       []OrderLineInput `json:"order_lines"`
}

// ListRequestsInput filters request listings.
type ListRequestsInput struct {
	Status     domain.RequestStatus
	Department string
	Offset     int
	Limit      int
}

// ChangeStatusInput is the DTO for a status transition.
type ChangeStatusInput struct {
	Status  domain.RequestStatus `json:"status" binding:"required"`
	Comment string               `json:"comment"`
}

// RequestService defines the procurement request workflow contract.
type RequestService interface {
	Create(ctx context.Context, actor Actor, input CreateRequestInput) (*domain.Request, error)
	Get(ctx context.Context, actor Actor, id uuid.UUID) (*domain.Request, error)
	List(ctx context.Context, actor Actor, input ListRequestsInput) ([]domain.Request, int, error)
	Update(ctx context.Context, actor Actor, id uuid.UUID, input UpdateRequestInput) (*domain.Request, error)
	ChangeStatus(ctx context.Context, actor Actor, id uuid.UUID, input ChangeStatusInput) (*domain.Request, error)
	Delete(ctx context.Context, actor Actor, id uuid.UUID) error
	History(ctx context.Context, actor Actor, id uuid.UUID) ([]domain.StatusHistory, error)
}

type requestService struct {
	requests port.RequestRepository
	history  port.StatusHistoryRepository
	groups   port.CommodityGroupRepository
	users    port.UserRepository
	email    port.EmailSender
}

// NewRequestService creates a new RequestService implementation.
func NewRequestService(
	requests port.RequestRepository,
	history port.StatusHistoryRepository,
	groups port.CommodityGroupRepository,
	users port.UserRepository,
	email port.EmailSender,
) RequestService {
	return &requestService{
		requests: requests,
		history:  history,
		groups:   groups,
		users:    users,
		email:    email,
	}
}

func (s *requestService) Create(ctx context.Context, actor Actor, input CreateRequestInput) (*domain.Request, error) {
	if err := validation.ValidateVatID(input.VatID); err != nil {
		return nil, err
	}
	if len(input.OrderLines) == 0 {
		return nil, fmt.Errorf("%w: at least one order line is required", domain.ErrInvalidInput)
	}

	lines, totalCost, err := buildOrderLines(input.OrderLines)
	if err != nil {
		return nil, err
	}

	if input.CommodityGroupID != nil {
		if _, err := s.groups.GetByID(ctx, *input.CommodityGroupID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, fmt.Errorf("%w: unknown commodity group", domain.ErrInvalidInput)
			}
			return nil, fmt.Errorf("requestService.Create: %w", err)
		}
	}

	req := &domain.Request{
		RequestorID:      actor.UserID,
		Title:            input.Title,
		VendorName:       input.VendorName,
		VatID:            validation.NormalizeVatID(input.VatID),
		Department:       input.Department,
		CommodityGroupID: input.CommodityGroupID,
		TotalCost:        totalCost,
		Status:           domain.StatusOpen,
		Notes:            input.Notes,
		OrderLines:       lines,
	}
	if err := s.requests.Create(ctx, req); err != nil {
		return nil, fmt.Errorf("requestService.Create: %w", err)
	}
	return req, nil
}

func (s *requestService) Get(ctx context.Context, actor Actor, id uuid.UUID) (*domain.Request, error) {
	req, err := s.requests.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	// Requestors only see their own requests; a foreign ID reads as
	// not found rather than forbidden.
	if !actor.IsProcurement() && req.RequestorID != actor.UserID {
		return nil, domain.ErrNotFound
	}
	return req, nil
}

func (s *requestService) List(ctx context.Context, actor Actor, input ListRequestsInput) ([]domain.Request, int, error) {
	filter := port.RequestFilter{
		Status:     input.Status,
		Department: input.Department,
		Offset:     input.Offset,
		Limit:      input.Limit,
	}
	if !actor.IsProcurement() {
		filter.RequestorID = actor.UserID
	}
	return s.requests.List(ctx, filter)
}

func (s *requestService) Update(ctx context.Context, actor Actor, id uuid.UUID, input UpdateRequestInput) (*domain.Request, error) {
	req, err := s.Get(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if req.RequestorID != actor.UserID {
		return nil, domain.ErrForbidden
	}
	if req.Status == domain.StatusClosed {
		return nil, domain.ErrRequestClosed
	}

	if input.Title != nil {
		req.Title = *input.Title
	}
	if input.VendorName != nil {
		req.VendorName = *input.VendorName
	}
	if input.VatID != nil {
		if err := validation.ValidateVatID(*input.VatID); err != nil {
			return nil, err
		}
		req.VatID = validation.NormalizeVatID(*input.VatID)
	}
	if input.Department != nil {
		req.Department = *input.Department
	}
	if input.CommodityGroupID != nil {
		if _, err := s.groups.GetByID(ctx, *input.CommodityGroupID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, fmt.Errorf("%w: unknown commodity group", domain.ErrInvalidInput)
			}
			return nil, fmt.Errorf("requestService.Update: %w", err)
		}
		req.CommodityGroupID = input.CommodityGroupID
	}
	if input.Notes != nil {
		req.Notes = *input.Notes
	}
	if input.OrderLines != nil {
		lines, totalCost, err := buildOrderLines(input.OrderLines)
		if err != nil {
			return nil, err
		}
		req.OrderLines = lines
		req.TotalCost = totalCost
	}

	if err := s.requests.Update(ctx, req); err != nil {
		return nil, fmt.Errorf("requestService.Update: %w", err)
	}
	return req, nil
}

func (s *requestService) ChangeStatus(ctx context.Context, actor Actor, id uuid.UUID, input ChangeStatusInput) (*domain.Request, error) {
	if !actor.IsProcurement() {
		return nil, domain.ErrForbidden
	}

	req, err := s.requests.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := validation.ValidateTransition(req.Status, input.Status); err != nil {
		return nil, err
	}

	fromStatus := req.Status
	if err := s.requests.UpdateStatus(ctx, id, input.Status); err != nil {
		return nil, fmt.Errorf("requestService.ChangeStatus: %w", err)
	}
	req.Status = input.Status

	entry := &domain.StatusHistory{
		RequestID:  id,
		FromStatus: fromStatus,
		ToStatus:   input.Status,
		ChangedBy:  actor.UserID,
		Comment:    input.Comment,
	}
	if err := s.history.Create(ctx, entry); err != nil {
		return nil, fmt.Errorf("requestService.ChangeStatus history: %w", err)
	}

	s.notifyStatusChange(ctx, req, fromStatus, input)

	return req, nil
}

// notifyStatusChange emails the requestor. Delivery failures are logged,
// never surfaced: the transition already happened.
func (s *requestService) notifyStatusChange(ctx context.Context, req *domain.Request, from domain.RequestStatus, input ChangeStatusInput) {
	requestor, err := s.users.GetByID(ctx, req.RequestorID)
	if err != nil {
		log.Printf("status notification: loading requestor %s: %v", req.RequestorID, err)
		return
	}
	err = s.email.SendStatusChangeEmail(ctx, port.StatusChangeEmail{
		ToEmail:      requestor.Email,
		ToName:       requestor.FullName,
		RequestID:    req.ID.String(),
		RequestTitle: req.Title,
		FromStatus:   from,
		ToStatus:     input.Status,
		Comment:      input.Comment,
	})
	if err != nil {
		log.Printf("status notification: sending to %s: %v", requestor.Email, err)
	}
}

func (s *requestService) Delete(ctx context.Context, actor Actor, id uuid.UUID) error {
	req, err := s.Get(ctx, actor, id)
	if err != nil {
		return err
	}
	if !actor.IsProcurement() && req.RequestorID != actor.UserID {
		return domain.ErrForbidden
	}
	if req.Status != domain.StatusOpen {
		return domain.ErrRequestNotOpen
	}
	return s.requests.Delete(ctx, id)
}

func (s *requestService) History(ctx context.Context, actor Actor, id uuid.UUID) ([]domain.StatusHistory, error) {
	if _, err := s.Get(ctx, actor, id); err != nil {
		return nil, err
	}
	return s.history.ListByRequest(ctx, id)
}

// buildOrderLines validates the input lines and computes per-line and
// request totals. Only standard lines count toward the request total.
func buildOrderLines(inputs []OrderLineInput) ([]domain.OrderLine, decimal.Decimal, error) {
	lines := make([]domain.OrderLine, 0, len(inputs))
	ruleInputs := make([]validation.LineInput, 0, len(inputs))

	for i, in := range inputs {
		lineType := domain.NormalizeLineType(string(in.LineType))
		ruleInput := validation.LineInput{
			LineType:        lineType,
			Description:     in.Description,
			UnitPrice:       in.UnitPrice,
			Amount:          in.Amount,
			DiscountPercent: in.DiscountPercent,
		}
		if err := validation.ValidateOrderLine(i, ruleInput); err != nil {
			return nil, decimal.Zero, err
		}
		ruleInputs = append(ruleInputs, ruleInput)

		unit := in.Unit
		if unit == "" {
			unit = "pcs"
		}
		lines = append(lines, domain.OrderLine{
			LineType:            lineType,
			Description:         in.Description,
			DetailedDescription: in.DetailedDescription,
			UnitPrice:           in.UnitPrice,
			Amount:              in.Amount,
			Unit:                unit,
			DiscountPercent:     in.DiscountPercent,
			DiscountAmount:      in.DiscountAmount,
			TotalPrice:          validation.LineTotal(in.UnitPrice, in.Amount, in.DiscountPercent),
		})
	}

	return lines, validation.RequestTotal(ruleInputs), nil
}
