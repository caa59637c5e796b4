package service

import (
	"context"
	"crypto/subtle"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"infinity-realms-shop/internal/catalog"
	"infinity-realms-shop/internal/logger"
	"infinity-realms-shop/internal/model"
	"infinity-realms-shop/internal/repository"
)

const adminTokenTTL = time.Hour

// AdminService gates every mutating admin operation. A successful password
// login issues a short-lived token that each subsequent admin request must
// carry; the password itself is never trusted from cached client state.
type AdminService interface {
	Login(password string) (string, error)
	VerifyAdminToken(token string) error
	ApplyGlobalSale(percentage int) error
	RemoveGlobalSale()
	ApplyProductSale(productID string, percentage int) error
	RemoveProductSale(productID string) error
	ProductSales() map[string]catalog.Sale
	ClearDatabase(ctx context.Context) error
	Announce(message string) error
}

type adminServiceImpl struct {
	log           *logger.Logger
	userRepo      repository.UserRepository
	purchaseRepo  repository.PurchaseRepository
	discounts     *catalog.DiscountStore
	adminPassword string
	jwtSecret     string
}

func NewAdminService(
	log *logger.Logger,
	userRepo repository.UserRepository,
	purchaseRepo repository.PurchaseRepository,
	discounts *catalog.DiscountStore,
	adminPassword string,
	jwtSecret string,
) AdminService {
	return &adminServiceImpl{
		log:           log.With("service", "admin"),
		userRepo:      userRepo,
		purchaseRepo:  purchaseRepo,
		discounts:     discounts,
		adminPassword: adminPassword,
		jwtSecret:     jwtSecret,
	}
}

func (s *adminServiceImpl) Login(password string) (string, error) {
	if s.adminPassword == "" {
		return "", fmt.Errorf("%w: admin password not configured", model.ErrUnauthorized)
	}
	if subtle.ConstantTimeCompare([]byte(password), []byte(s.adminPassword)) != 1 {
		return "", fmt.Errorf("%w: wrong password", model.ErrUnauthorized)
	}

	claims := jwt.MapClaims{
		"scope": "admin",
		"exp":   time.Now().Add(adminTokenTTL).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", fmt.Errorf("sign admin token: %w", err)
	}

	s.log.Infow("admin logged in")
	return token, nil
}

func (s *adminServiceImpl) VerifyAdminToken(token string) error {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil || !parsed.Valid {
		return fmt.Errorf("%w: invalid admin token", model.ErrUnauthorized)
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok || claims["scope"] != "admin" {
		return fmt.Errorf("%w: invalid admin token", model.ErrUnauthorized)
	}
	return nil
}

func (s *adminServiceImpl) ApplyGlobalSale(percentage int) error {
	if err := s.discounts.ApplyGlobal(percentage); err != nil {
		return err
	}
	s.log.Infow("applied global sale", "percentage", percentage)
	return nil
}

func (s *adminServiceImpl) RemoveGlobalSale() {
	s.discounts.RemoveGlobal()
	s.log.Infow("removed global sale")
}

func (s *adminServiceImpl) ApplyProductSale(productID string, percentage int) error {
	if _, ok := catalog.Find(productID); !ok {
		return fmt.Errorf("%w: unknown product %q", model.ErrValidation, productID)
	}
	if err := s.discounts.ApplyProduct(productID, percentage); err != nil {
		return err
	}
	s.log.Infow("applied product sale", "product_id", productID, "percentage", percentage)
	return nil
}

func (s *adminServiceImpl) RemoveProductSale(productID string) error {
	if productID == "" {
		return fmt.Errorf("%w: product id required", model.ErrValidation)
	}
	s.discounts.RemoveProduct(productID)
	s.log.Infow("removed product sale", "product_id", productID)
	return nil
}

func (s *adminServiceImpl) ProductSales() map[string]catalog.Sale {
	return s.discounts.ProductSales()
}

// ClearDatabase wipes both the ledger and the account directory.
func (s *adminServiceImpl) ClearDatabase(ctx context.Context) error {
	if err := s.purchaseRepo.DeleteAll(ctx); err != nil {
		return fmt.Errorf("clear purchases: %w", err)
	}
	if err := s.userRepo.DeleteAll(ctx); err != nil {
		return fmt.Errorf("clear users: %w", err)
	}
	s.log.Warnw("database cleared by admin")
	return nil
}

// Announce only logs the message; the RCON bridge to the game server was
// removed and can come back behind this method.
func (s *adminServiceImpl) Announce(message string) error {
	if message == "" {
		return fmt.Errorf("%w: missing message", model.ErrValidation)
	}
	s.log.Infow("admin announcement", "message", message)
	return nil
}
