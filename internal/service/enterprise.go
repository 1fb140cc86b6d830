package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mulan-edu/mulan/internal/apperror"
	"github.com/mulan-edu/mulan/internal/model"
	"github.com/mulan-edu/mulan/internal/repository"
)

// DefaultPerPage is the listing page size.
const DefaultPerPage = 3

// EnterpriseService handles enterprise CRUD and the listing page math.
type EnterpriseService struct {
	repo    repository.EnterpriseRepository
	logger  *slog.Logger
	perPage int
}

// NewEnterpriseService creates an EnterpriseService. perPage values
// below 1 fall back to DefaultPerPage.
func NewEnterpriseService(repo repository.EnterpriseRepository, logger *slog.Logger, perPage int) *EnterpriseService {
	if perPage < 1 {
		perPage = DefaultPerPage
	}
	return &EnterpriseService{
		repo:    repo,
		logger:  logger,
		perPage: perPage,
	}
}

// Page is one listing page plus the numbers the pagination UI needs.
type Page struct {
	Items      []model.Enterprise
	Number     int
	PerPage    int
	Total      int64
	TotalPages int
}

// HasPrev reports whether a previous page exists.
func (p *Page) HasPrev() bool { return p.Number > 1 }

// HasNext reports whether a next page exists.
func (p *Page) HasNext() bool { return p.Number < p.TotalPages }

// PrevNumber is the previous page number; only meaningful when HasPrev.
func (p *Page) PrevNumber() int { return p.Number - 1 }

// NextNumber is the next page number; only meaningful when HasNext.
func (p *Page) NextNumber() int { return p.Number + 1 }

// Create validates uniqueness, assigns a fresh GUID, and stores the
// enterprise with its value tags under the given owner.
func (s *EnterpriseService) Create(ctx context.Context, ownerID, name, description, symbol string, values []string) (*model.Enterprise, error) {
	if ownerID == "" {
		return nil, fmt.Errorf("enterprise owner must not be empty")
	}

	if SymbolReserved(symbol) {
		return nil, apperror.ValidationFailed("symbol", "this symbol is already registered on the New York Stock Exchange")
	}
	if err := s.checkNameFree(ctx, name); err != nil {
		return nil, err
	}
	if err := s.checkSymbolFree(ctx, symbol); err != nil {
		return nil, err
	}

	enterprise := &model.Enterprise{
		ID:          model.NewGUID(),
		Name:        name,
		Description: description,
		Symbol:      symbol,
		UserID:      ownerID,
	}
	if err := s.repo.CreateEnterprise(ctx, enterprise); err != nil {
		if errors.Is(err, apperror.ErrConflict) {
			return nil, apperror.ValidationFailed("name", "please use a different name")
		}
		s.logger.Error("failed to create enterprise",
			slog.String("name", name),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("creating enterprise: %w", err)
	}

	if len(values) > 0 {
		if err := s.repo.ReplaceValues(ctx, enterprise.ID, values); err != nil {
			s.logger.Error("failed to attach values",
				slog.String("enterprise", name),
				slog.String("error", err.Error()),
			)
			return nil, fmt.Errorf("attaching values: %w", err)
		}
	}

	s.logger.Info("enterprise created",
		slog.String("id", enterprise.ID.String()),
		slog.String("name", enterprise.Name),
		slog.String("owner", ownerID),
	)
	return enterprise, nil
}

// List returns the requested listing page, newest first. Page numbers
// below 1 clamp to 1; pages past the end come back empty rather than
// erroring, so a stale link still renders.
func (s *EnterpriseService) List(ctx context.Context, page int) (*Page, error) {
	if page < 1 {
		page = 1
	}

	total, err := s.repo.CountEnterprises(ctx)
	if err != nil {
		return nil, fmt.Errorf("counting enterprises: %w", err)
	}

	items, err := s.repo.ListEnterprises(ctx, repository.ListOptions{
		Limit:  s.perPage,
		Offset: (page - 1) * s.perPage,
	})
	if err != nil {
		s.logger.Error("failed to list enterprises", slog.String("error", err.Error()))
		return nil, fmt.Errorf("listing enterprises: %w", err)
	}

	totalPages := int((total + int64(s.perPage) - 1) / int64(s.perPage))

	return &Page{
		Items:      items,
		Number:     page,
		PerPage:    s.perPage,
		Total:      total,
		TotalPages: totalPages,
	}, nil
}

// GetByName fetches one enterprise for the edit form.
func (s *EnterpriseService) GetByName(ctx context.Context, name string) (*model.Enterprise, error) {
	return s.repo.GetEnterpriseByName(ctx, name)
}

// Values returns the enterprise's value tags.
func (s *EnterpriseService) Values(ctx context.Context, id model.GUID) ([]model.Value, error) {
	return s.repo.ValuesFor(ctx, id)
}

// Edit looks up the enterprise by its current name and applies the new
// fields. Uniqueness is re-checked only for fields that actually change,
// so saving the form unmodified always succeeds.
func (s *EnterpriseService) Edit(ctx context.Context, name, newName, description, symbol string) (*model.Enterprise, error) {
	enterprise, err := s.repo.GetEnterpriseByName(ctx, name)
	if err != nil {
		return nil, err
	}

	if newName != enterprise.Name {
		if err := s.checkNameFree(ctx, newName); err != nil {
			return nil, err
		}
	}
	if symbol != enterprise.Symbol {
		if SymbolReserved(symbol) {
			return nil, apperror.ValidationFailed("symbol", "this symbol is already registered on the New York Stock Exchange")
		}
		if err := s.checkSymbolFree(ctx, symbol); err != nil {
			return nil, err
		}
	}

	enterprise.Name = newName
	enterprise.Description = description
	enterprise.Symbol = symbol
	if err := s.repo.UpdateEnterprise(ctx, enterprise); err != nil {
		if errors.Is(err, apperror.ErrConflict) {
			return nil, apperror.ValidationFailed("name", "please use a different name")
		}
		s.logger.Error("failed to update enterprise",
			slog.String("name", name),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("updating enterprise: %w", err)
	}

	s.logger.Info("enterprise updated",
		slog.String("id", enterprise.ID.String()),
		slog.String("name", enterprise.Name),
	)
	return enterprise, nil
}

// Delete removes the enterprise by name. A missing name is
// apperror.ErrNotFound, never a silent no-op.
func (s *EnterpriseService) Delete(ctx context.Context, name string) error {
	if err := s.repo.DeleteEnterpriseByName(ctx, name); err != nil {
		return err
	}
	s.logger.Info("enterprise deleted", slog.String("name", name))
	return nil
}

func (s *EnterpriseService) checkNameFree(ctx context.Context, name string) error {
	if _, err := s.repo.GetEnterpriseByName(ctx, name); err == nil {
		return apperror.ValidationFailed("name", "please use a different name")
	} else if !errors.Is(err, apperror.ErrNotFound) {
		return fmt.Errorf("checking name: %w", err)
	}
	return nil
}

func (s *EnterpriseService) checkSymbolFree(ctx context.Context, symbol string) error {
	if _, err := s.repo.GetEnterpriseBySymbol(ctx, symbol); err == nil {
		return apperror.ValidationFailed("symbol", "symbol already in use, please choose a different one")
	} else if !errors.Is(err, apperror.ErrNotFound) {
		return fmt.Errorf("checking symbol: %w", err)
	}
	return nil
}
