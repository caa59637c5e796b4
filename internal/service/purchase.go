package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"infinity-realms-shop/internal/client"
	"infinity-realms-shop/internal/dto"
	"infinity-realms-shop/internal/logger"
	"infinity-realms-shop/internal/model"
	"infinity-realms-shop/internal/repository"
)

type PurchaseService interface {
	Submit(ctx context.Context, req *dto.ProcessPaymentRequest, ip string) (*model.Purchase, error)
	Verify(ctx context.Context, purchaseID string) error
	List(ctx context.Context) ([]*model.Purchase, error)
	HistoryFor(ctx context.Context, username string) ([]dto.HistoryEntry, error)
	PopularItems(ctx context.Context) ([]dto.PopularItem, error)
	ClearLedger(ctx context.Context) error
}

type purchaseServiceImpl struct {
	log           *logger.Logger
	purchaseRepo  repository.PurchaseRepository
	discordClient client.DiscordClient
}

func NewPurchaseService(
	log *logger.Logger,
	purchaseRepo repository.PurchaseRepository,
	discordClient client.DiscordClient,
) PurchaseService {
	return &purchaseServiceImpl{
		log:           log.With("service", "purchase"),
		purchaseRepo:  purchaseRepo,
		discordClient: discordClient,
	}
}

// Submit writes a checkout as an unverified ledger entry. The submitted
// amount is recorded as-is; it is the snapshot the buyer saw, not a
// recomputation against the live catalog.
func (s *purchaseServiceImpl) Submit(ctx context.Context, req *dto.ProcessPaymentRequest, ip string) (*model.Purchase, error) {
	if req.Method == "" || req.TransactionID == "" || req.Username == "" ||
		req.Amount.IsZero() || len(req.Items) == 0 {
		return nil, fmt.Errorf("%w: missing required payment fields", model.ErrValidation)
	}

	snapshot := make([]model.PurchaseItem, len(req.Items))
	for i, item := range req.Items {
		snapshot[i] = model.PurchaseItem{
			ID:        item.ID,
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		}
	}
	itemsJSON, err := json.Marshal(snapshot)
	if err != nil {
		return nil, fmt.Errorf("marshal items snapshot: %w", err)
	}

	currency := req.Currency
	if currency == "" {
		currency = "NPR"
	}

	timestamp := time.Now()
	if req.Timestamp != "" {
		if parsed, err := time.Parse(time.RFC3339, req.Timestamp); err == nil {
			timestamp = parsed
		}
	}

	purchase := &model.Purchase{
		ID:                 uuid.NewString(),
		Username:           req.Username,
		Email:              req.Email,
		MinecraftUsername:  req.Username,
		Items:              itemsJSON,
		Amount:             req.Amount,
		Currency:           currency,
		Provider:           req.Method,
		Status:             model.StatusUnverified,
		VerificationStatus: model.StatusUnverified,
		IP:                 ip,
		TransactionID:      req.TransactionID,
		PhoneNumber:        req.PhoneNumber,
		Timestamp:          timestamp,
	}

	if err := s.purchaseRepo.Create(ctx, purchase); err != nil {
		return nil, fmt.Errorf("store purchase: %w", err)
	}

	s.notify(ctx, purchase, false)

	s.log.Infow("purchase created",
		"purchase_id", purchase.ID,
		"username", purchase.Username,
		"amount", purchase.Amount.String(),
		"provider", purchase.Provider,
	)
	return purchase, nil
}

// Verify marks a purchase verified. Calling it on an already-verified
// purchase succeeds without changing anything.
func (s *purchaseServiceImpl) Verify(ctx context.Context, purchaseID string) error {
	if purchaseID == "" {
		return fmt.Errorf("%w: missing purchaseId", model.ErrValidation)
	}

	purchase, err := s.purchaseRepo.MarkVerified(ctx, purchaseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: purchase %s", model.ErrNotFound, purchaseID)
		}
		return fmt.Errorf("verify purchase: %w", err)
	}

	s.notify(ctx, purchase, true)

	s.log.Infow("purchase verified", "purchase_id", purchaseID)
	return nil
}

func (s *purchaseServiceImpl) List(ctx context.Context) ([]*model.Purchase, error) {
	return s.purchaseRepo.List(ctx)
}

func (s *purchaseServiceImpl) HistoryFor(ctx context.Context, username string) ([]dto.HistoryEntry, error) {
	purchases, err := s.purchaseRepo.ListByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("list purchases: %w", err)
	}

	entries := make([]dto.HistoryEntry, 0, len(purchases))
	for _, p := range purchases {
		var items []model.PurchaseItem
		if err := json.Unmarshal(p.Items, &items); err != nil {
			items = []model.PurchaseItem{}
		}
		entries = append(entries, dto.HistoryEntry{
			ID:        p.ID,
			Timestamp: p.CreatedAt.Format(time.RFC3339),
			Total:     p.Amount,
			Status:    p.Status,
			Items:     items,
		})
	}
	return entries, nil
}

// PopularItems sums quantities per catalog item across the whole ledger and
// returns the top five. Ties break by item id for a stable order.
func (s *purchaseServiceImpl) PopularItems(ctx context.Context) ([]dto.PopularItem, error) {
	purchases, err := s.purchaseRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list purchases: %w", err)
	}

	counts := make(map[string]int)
	for _, p := range purchases {
		var items []model.PurchaseItem
		if err := json.Unmarshal(p.Items, &items); err != nil {
			continue
		}
		for _, item := range items {
			if item.ID == "" {
				continue
			}
			qty := item.Quantity
			if qty < 1 {
				qty = 1
			}
			counts[item.ID] += qty
		}
	}

	popular := make([]dto.PopularItem, 0, len(counts))
	for id, count := range counts {
		popular = append(popular, dto.PopularItem{ID: id, Count: count})
	}
	sort.Slice(popular, func(i, j int) bool {
		if popular[i].Count != popular[j].Count {
			return popular[i].Count > popular[j].Count
		}
		return popular[i].ID < popular[j].ID
	})
	if len(popular) > 5 {
		popular = popular[:5]
	}
	return popular, nil
}

func (s *purchaseServiceImpl) ClearLedger(ctx context.Context) error {
	return s.purchaseRepo.DeleteAll(ctx)
}

// notify is fire-and-forget: a lost Discord message never fails the
// ledger operation that triggered it.
func (s *purchaseServiceImpl) notify(ctx context.Context, purchase *model.Purchase, verified bool) {
	if err := s.discordClient.NotifyPurchase(ctx, purchase, verified); err != nil {
		s.log.Warnw("discord notification failed", "purchase_id", purchase.ID, "error", err)
	}
}
