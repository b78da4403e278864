package usecase

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"

	"tripcollab/internal/domain/entity"
	"tripcollab/internal/domain/repository"
	"tripcollab/internal/domain/service"
	ws "tripcollab/internal/infrastructure/websocket"
	"tripcollab/pkg/errors"
)

type OrderUseCase struct {
	orderRepo   repository.OrderRepository
	threadRepo  repository.ThreadRepository
	userRepo    repository.UserRepository
	fileService service.FileUploadService
	fileRepo    repository.FileMetadataRepository
	wsManager   *ws.Manager
}

func NewOrderUseCase(
	orderRepo repository.OrderRepository,
	threadRepo repository.ThreadRepository,
	userRepo repository.UserRepository,
	fileService service.FileUploadService,
	fileRepo repository.FileMetadataRepository,
	wsManager *ws.Manager,
) *OrderUseCase {
	return &OrderUseCase{
		orderRepo:   orderRepo,
		threadRepo:  threadRepo,
		userRepo:    userRepo,
		fileService: fileService,
		fileRepo:    fileRepo,
		wsManager:   wsManager,
	}
}

// requireParty loads an order and checks the caller is one of its two
// parties.
func (uc *OrderUseCase) requireParty(ctx context.Context, orderID, userID string) (*entity.Order, error) {
	order, err := uc.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.BrandID != userID && order.CreatorID != userID {
		return nil, errors.Forbidden("You are not a party to this order", nil)
	}
	return order, nil
}

func (uc *OrderUseCase) GetOrder(ctx context.Context, userID, orderID string) (*entity.Order, error) {
	return uc.requireParty(ctx, orderID, userID)
}

func (uc *OrderUseCase) ListOrders(ctx context.Context, userID, status string, limit, offset int) ([]*entity.Order, int64, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, 0, err
	}
	return uc.orderRepo.ListByUser(ctx, userID, user.Role, status, limit, offset)
}

// StartWork moves a paid order into in_progress. Creator only.
func (uc *OrderUseCase) StartWork(ctx context.Context, creatorID, orderID string) (*entity.Order, error) {
	order, err := uc.requireParty(ctx, orderID, creatorID)
	if err != nil {
		return nil, err
	}
	if order.CreatorID != creatorID {
		return nil, errors.Forbidden("Only the creator can start work", nil)
	}
	if !order.CanTransitionTo(entity.OrderStatusInProgress) {
		return nil, errors.Conflict("Order must be paid before work starts")
	}

	now := time.Now()
	order.Status = entity.OrderStatusInProgress
	order.StartedAt = &now
	if err := uc.orderRepo.Update(ctx, order); err != nil {
		return nil, err
	}

	uc.announce(ctx, order, "work_started",
		"You started work on this collaboration.",
		"The creator has started working on your collaboration.")

	return order, nil
}

type AddDeliverableInput struct {
	File     io.Reader
	FileType string
	Filename string
	Caption  string
}

// AddDeliverable uploads a file into the order's private delivery folder and
// records it on the order. Creator only, and only while the order is paid or
// in progress.
func (uc *OrderUseCase) AddDeliverable(ctx context.Context, creatorID, orderID string, input AddDeliverableInput) (*entity.Order, error) {
	order, err := uc.requireParty(ctx, orderID, creatorID)
	if err != nil {
		return nil, err
	}
	if order.CreatorID != creatorID {
		return nil, errors.Forbidden("Only the creator can deliver files", nil)
	}
	if order.Status != entity.OrderStatusPaid && order.Status != entity.OrderStatusInProgress {
		return nil, errors.Conflict("Order is not open for deliveries")
	}

	result, err := uc.fileService.UploadFile(ctx, input.File, input.FileType, input.Filename, "deliveries/"+orderID, false)
	if err != nil {
		return nil, errors.Internal("Failed to upload deliverable", err)
	}

	if err := uc.fileRepo.Create(ctx, &entity.FileMetadata{
		URL:        result.URL,
		ObjectName: result.ObjectName,
		EntityType: "delivery",
		EntityID:   orderID,
		UploadedBy: creatorID,
		Filename:   input.Filename,
		FileType:   input.FileType,
		FileSize:   result.Size,
		IsPublic:   false,
	}); err != nil {
		return nil, err
	}

	order.Deliverables = append(order.Deliverables, entity.Deliverable{
		ID:         uuid.New().String(),
		FileName:   input.Filename,
		FileType:   input.FileType,
		FileSize:   result.Size,
		URL:        result.URL,
		Caption:    input.Caption,
		UploadedAt: time.Now(),
	})
	if err := uc.orderRepo.Update(ctx, order); err != nil {
		return nil, err
	}

	uc.announce(ctx, order, "files_delivered",
		"You delivered files for this collaboration.",
		"The creator delivered files for your collaboration.")

	return order, nil
}

// CreateDeliverableUploadURL returns a short-lived signed URL the creator
// can PUT a large deliverable to directly, bypassing the API body limit.
// Same gating as AddDeliverable.
func (uc *OrderUseCase) CreateDeliverableUploadURL(ctx context.Context, creatorID, orderID, fileType string) (string, error) {
	order, err := uc.requireParty(ctx, orderID, creatorID)
	if err != nil {
		return "", err
	}
	if order.CreatorID != creatorID {
		return "", errors.Forbidden("Only the creator can deliver files", nil)
	}
	if order.Status != entity.OrderStatusPaid && order.Status != entity.OrderStatusInProgress {
		return "", errors.Conflict("Order is not open for deliveries")
	}

	url, err := uc.fileService.GenerateSignedUploadURL(ctx, fileType, "deliveries/"+orderID)
	if err != nil {
		return "", errors.Internal("Failed to create upload URL", err)
	}
	return url, nil
}

// CompleteOrder closes an in-progress order. Creator only, and requires at
// least one deliverable.
func (uc *OrderUseCase) CompleteOrder(ctx context.Context, creatorID, orderID string) (*entity.Order, error) {
	order, err := uc.requireParty(ctx, orderID, creatorID)
	if err != nil {
		return nil, err
	}
	if order.CreatorID != creatorID {
		return nil, errors.Forbidden("Only the creator can complete the order", nil)
	}
	if !order.CanTransitionTo(entity.OrderStatusCompleted) {
		return nil, errors.Conflict("Order is not in progress")
	}
	if len(order.Deliverables) == 0 {
		return nil, errors.BadRequest("Deliver at least one file before completing", nil)
	}

	now := time.Now()
	order.Status = entity.OrderStatusCompleted
	order.CompletedAt = &now
	if err := uc.orderRepo.Update(ctx, order); err != nil {
		return nil, err
	}

	uc.announce(ctx, order, "order_completed",
		"You marked this collaboration as completed.",
		"The collaboration has been completed.")

	return order, nil
}

// announce posts a dual-perspective system message into the order's thread
// and pushes the order diff to both parties.
func (uc *OrderUseCase) announce(ctx context.Context, order *entity.Order, kind, creatorText, brandText string) {
	if thread, err := uc.threadRepo.GetByID(ctx, order.ThreadID); err == nil {
		message := &entity.Message{
			ThreadID:    thread.ID,
			SenderID:    "system",
			Type:        entity.MessageTypeSystem,
			Status:      "sent",
			SystemKind:  kind,
			CreatorText: creatorText,
			BrandText:   brandText,
		}
		if err := uc.threadRepo.CreateMessage(ctx, message); err == nil {
			thread.LastMessage = kind
			thread.LastMessageAt = time.Now()
			_ = uc.threadRepo.Update(ctx, thread)
			if uc.wsManager != nil {
				uc.wsManager.SendToThread(thread.ID, ws.NewEvent(ws.EventMessageNew, message))
			}
		}
	}

	if uc.wsManager != nil {
		event := ws.NewEvent(ws.EventOrderUpdated, order)
		uc.wsManager.SendToUser(order.BrandID, event)
		uc.wsManager.SendToUser(order.CreatorID, event)
	}
}
