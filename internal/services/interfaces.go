package services

import (
	"context"
	"net/url"

	"github.com/radshield/radshield-web/internal/models"
	"github.com/radshield/radshield-web/internal/quote"
	"github.com/radshield/radshield-web/pkg/jwt"
)

// ContactServiceInterface defines the interface for contact service operations
type ContactServiceInterface interface {
	SubmitContactForm(ctx context.Context, locale, remoteIP string, req *models.ContactRequest) (*models.ContactResponse, error)
}

// CatalogServiceInterface defines the interface for catalogue reads
type CatalogServiceInterface interface {
	List(locale string, q models.CatalogQuery) *models.CatalogResponse
	Featured(locale string, n int) []models.ProductSummary
	Product(locale, slug, lead, size string) (*models.ProductDetailResponse, error)
	DatasheetURL(ctx context.Context, slug, lead string) (string, error)
}

// QuoteServiceInterface defines the quote wizard operations
type QuoteServiceInterface interface {
	Mount(locale string, query url.Values) (string, *quote.Wizard, error)
	Get(id string) (*quote.Wizard, error)
	Discard(id string)
	Next(id string) (*quote.Wizard, error)
	Back(id string) (*quote.Wizard, error)
	ToggleNeed(id string, need quote.Need) (*quote.Wizard, error)
	SetFields(id string, fields map[string]string) (*quote.Wizard, error)
	Submit(ctx context.Context, id string) (string, *quote.Wizard, error)
	IssueToken(id, locale string) (string, error)
	GetSessionTTL() int
	GetCookieDomain() string
	GetCookieSecure() bool
	GetTokenManager() *jwt.TokenManager
}

// Ensure implementations satisfy interfaces
var (
	_ ContactServiceInterface = (*ContactService)(nil)
	_ CatalogServiceInterface = (*CatalogService)(nil)
	_ QuoteServiceInterface   = (*QuoteService)(nil)
)
