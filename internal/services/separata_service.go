package services

import (
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/sisventas/separata-backend/internal/models"
	"github.com/sisventas/separata-backend/internal/pricing"

	"gorm.io/gorm"
)

var codePattern = regexp.MustCompile(`^\d{6}$`)

// SeparataStore is the separata side of the repository gateway
type SeparataStore interface {
	GetAll() ([]*models.Separata, error)
	GetByID(id string) (*models.Separata, error)
	FindByDateRange(start, end time.Time) (*models.Separata, error)
	UpdateDeadline(id string, deadline time.Time) error
	UpdateTitle(id string, title string) error
	GetRevisionMarker() (int64, error)
}

// SeparataItemStore is the item side of the repository gateway
type SeparataItemStore interface {
	GetBySeparata(separataID string) ([]*models.SeparataItem, error)
	GetByID(id string) (*models.SeparataItem, error)
	Save(item *models.SeparataItem, newSeparata *models.Separata) error
	Update(item *models.SeparataItem) error
	Delete(id string) error
}

// CatalogLookup resolves catalog items by code (external collaborator)
type CatalogLookup interface {
	GetItemByCode(code string) (*models.CatalogItem, error)
}

// EventPublisher emits mutation events for downstream audit consumers
type EventPublisher interface {
	PublishItemEvent(action string, item *models.SeparataItem)
	PublishSeparataEvent(action, separataID, actor string)
}

type SeparataService struct {
	separataRepo SeparataStore
	itemRepo     SeparataItemStore
	catalog      CatalogLookup
	events       EventPublisher
	now          func() time.Time
}

func NewSeparataService(
	separataRepo SeparataStore,
	itemRepo SeparataItemStore,
	catalog CatalogLookup,
	events EventPublisher,
) *SeparataService {
	return &SeparataService{
		separataRepo: separataRepo,
		itemRepo:     itemRepo,
		catalog:      catalog,
		events:       events,
		now:          time.Now,
	}
}

// ListSeparatas retrieves all separatas with their vigency classification
func (s *SeparataService) ListSeparatas() ([]*models.SeparataResponse, error) {
	separatas, err := s.separataRepo.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list separatas: %w", err)
	}

	responses := make([]*models.SeparataResponse, len(separatas))
	for i, separata := range separatas {
		responses[i] = s.toResponse(separata, nil)
	}
	return responses, nil
}

// GetSeparata retrieves one separata with its items
func (s *SeparataService) GetSeparata(id string) (*models.SeparataResponse, error) {
	separata, err := s.separataRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSeparataNotFound
		}
		return nil, fmt.Errorf("failed to get separata: %w", err)
	}

	items := make([]*models.SeparataItem, len(separata.Items))
	for i := range separata.Items {
		items[i] = &separata.Items[i]
	}
	return s.toResponse(separata, items), nil
}

// FindOrCreate looks up the separata matching the exact date range. Two
// operators drafting the same window must converge on one record, so an
// existing match is always returned instead of creating a duplicate. When
// nothing matches, found is false and creation happens implicitly on the
// first item save. The check is advisory: no lock is taken, and a true
// race is caught by the storage uniqueness index instead.
func (s *SeparataService) FindOrCreate(startDate, endDate string) (*models.SeparataResponse, bool, error) {
	start, end, err := s.parseRange(startDate, endDate)
	if err != nil {
		return nil, false, err
	}

	separata, err := s.separataRepo.FindByDateRange(start, end)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to look up date range: %w", err)
	}
	return s.toResponse(separata, nil), true, nil
}

// AddItem validates and persists a new item. When no separata exists for
// the request's date range, one is created in the same repository
// transaction as the item.
func (s *SeparataService) AddItem(actor models.Actor, req *models.AddItemRequest) (*models.SeparataItemResponse, error) {
	if !codePattern.MatchString(req.Code) {
		return nil, newValidationError("code", "must be exactly 6 digits")
	}
	if req.DiscountPercent == nil && req.FinalPrice == nil {
		return nil, newValidationError("discount_percent", "either discount_percent or final_price is required")
	}

	start, end, err := s.parseRange(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}
	deadline, err := parseDate(req.EditDeadline)
	if err != nil {
		return nil, newValidationError("edit_deadline", "must be a date in YYYY-MM-DD format")
	}

	var newSeparata *models.Separata
	separata, err := s.separataRepo.FindByDateRange(start, end)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("failed to look up date range: %w", err)
		}
		newSeparata = &models.Separata{
			StartDate:    start,
			EndDate:      end,
			EditDeadline: &deadline,
		}
	} else if gateErr := s.checkItemGate(actor, separata); gateErr != nil {
		return nil, gateErr
	}

	catalogItem, err := s.catalog.GetItemByCode(req.Code)
	if err != nil {
		if errors.Is(err, ErrCatalogItemNotFound) {
			return nil, newValidationError("code", "not found in catalog")
		}
		return nil, fmt.Errorf("catalog lookup failed: %w", err)
	}

	quote := pricing.Quote{RegularPrice: catalogItem.RegularPrice}
	if req.DiscountPercent != nil {
		quote.DiscountPercent = req.DiscountPercent
		quote.Recompute(pricing.FieldDiscountPercent)
	} else {
		// Operator chose to store only the final price; no discount kept.
		quote.FinalPrice = *req.FinalPrice
	}

	item := &models.SeparataItem{
		Code:            catalogItem.Code,
		Description:     catalogItem.Description,
		SecondaryLine:   catalogItem.SecondaryLine,
		UnitOfMeasure:   catalogItem.UnitOfMeasure,
		Measure:         catalogItem.Measure,
		Stock:           catalogItem.Stock,
		RegularPrice:    quote.RegularPrice,
		DiscountPercent: quote.DiscountPercent,
		FinalPrice:      quote.FinalPrice,
		Notes:           req.Notes,
		EnteredBy:       actor.Username,
	}
	if separata != nil {
		item.SeparataID = separata.ID
	}

	if err := s.itemRepo.Save(item, newSeparata); err != nil {
		return nil, fmt.Errorf("failed to save item: %w", err)
	}

	if s.events != nil {
		s.events.PublishItemEvent("item_added", item)
	}
	return itemToResponse(item), nil
}

// UpdateItem applies a partial edit to an item, rederiving the dependent
// price field from whichever one the operator edited last.
func (s *SeparataService) UpdateItem(actor models.Actor, itemID string, req *models.UpdateItemRequest) (*models.SeparataItemResponse, error) {
	item, separata, err := s.itemWithSeparata(itemID)
	if err != nil {
		return nil, err
	}
	if gateErr := s.checkItemGate(actor, separata); gateErr != nil {
		return nil, gateErr
	}

	quote := pricing.Quote{
		RegularPrice:    item.RegularPrice,
		DiscountPercent: item.DiscountPercent,
		FinalPrice:      item.FinalPrice,
	}
	lastEdited := pricing.Field(req.LastEdited)
	switch lastEdited {
	case "", pricing.FieldRegularPrice, pricing.FieldDiscountPercent, pricing.FieldFinalPrice:
	default:
		return nil, newValidationError("last_edited", `must be "regular_price", "discount_percent" or "final_price"`)
	}
	if req.RegularPrice != nil {
		quote.RegularPrice = *req.RegularPrice
		if lastEdited == "" {
			lastEdited = pricing.FieldRegularPrice
		}
	}
	if req.DiscountPercent != nil {
		quote.DiscountPercent = req.DiscountPercent
		if lastEdited == "" {
			lastEdited = pricing.FieldDiscountPercent
		}
	}
	if req.FinalPrice != nil {
		quote.FinalPrice = *req.FinalPrice
		if lastEdited == "" {
			lastEdited = pricing.FieldFinalPrice
		}
	}
	quote.Recompute(lastEdited)

	item.RegularPrice = quote.RegularPrice
	item.DiscountPercent = quote.DiscountPercent
	item.FinalPrice = quote.FinalPrice
	if req.Notes != nil {
		item.Notes = *req.Notes
	}
	item.EnteredBy = actor.Username

	if err := s.itemRepo.Update(item); err != nil {
		return nil, fmt.Errorf("failed to update item: %w", err)
	}

	if s.events != nil {
		s.events.PublishItemEvent("item_updated", item)
	}
	return itemToResponse(item), nil
}

// DeleteItem removes an item, subject to the edit-deadline gate
func (s *SeparataService) DeleteItem(actor models.Actor, itemID string) error {
	item, separata, err := s.itemWithSeparata(itemID)
	if err != nil {
		return err
	}
	if gateErr := s.checkItemGate(actor, separata); gateErr != nil {
		return gateErr
	}

	if err := s.itemRepo.Delete(itemID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrItemNotFound
		}
		return fmt.Errorf("failed to delete item: %w", err)
	}

	if s.events != nil {
		s.events.PublishItemEvent("item_deleted", item)
	}
	return nil
}

// UpdateDeadline changes the edit deadline. Privileged actors only; the
// deadline itself is never time-gated.
func (s *SeparataService) UpdateDeadline(actor models.Actor, separataID, newDeadline string) error {
	if !actor.Privileged {
		return &PermissionError{Rule: "only privileged users may change the edit deadline"}
	}
	deadline, err := parseDate(newDeadline)
	if err != nil {
		return newValidationError("edit_deadline", "must be a date in YYYY-MM-DD format")
	}

	if err := s.separataRepo.UpdateDeadline(separataID, deadline); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSeparataNotFound
		}
		return fmt.Errorf("failed to update deadline: %w", err)
	}

	if s.events != nil {
		s.events.PublishSeparataEvent("deadline_changed", separataID, actor.Username)
	}
	return nil
}

// UpdateTitle changes the separata title. Privileged actors only.
func (s *SeparataService) UpdateTitle(actor models.Actor, separataID, title string) error {
	if !actor.Privileged {
		return &PermissionError{Rule: "only privileged users may change the title"}
	}

	if err := s.separataRepo.UpdateTitle(separataID, title); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSeparataNotFound
		}
		return fmt.Errorf("failed to update title: %w", err)
	}

	if s.events != nil {
		s.events.PublishSeparataEvent("title_changed", separataID, actor.Username)
	}
	return nil
}

// checkItemGate enforces the edit-deadline policy: items stay freely
// editable through the deadline day, after that only privileged actors may
// mutate them. Purely a function of wall-clock time, not a stored state.
func (s *SeparataService) checkItemGate(actor models.Actor, separata *models.Separata) error {
	if actor.Privileged {
		return nil
	}
	if separata.EditDeadline == nil {
		return nil
	}
	if dateOnly(s.now()).After(dateOnly(*separata.EditDeadline)) {
		return &PermissionError{Rule: "edit deadline has passed"}
	}
	return nil
}

func (s *SeparataService) itemWithSeparata(itemID string) (*models.SeparataItem, *models.Separata, error) {
	item, err := s.itemRepo.GetByID(itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrItemNotFound
		}
		return nil, nil, fmt.Errorf("failed to get item: %w", err)
	}

	separata, err := s.separataRepo.GetByID(item.SeparataID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get separata for item: %w", err)
	}
	return item, separata, nil
}

func (s *SeparataService) parseRange(startDate, endDate string) (time.Time, time.Time, error) {
	start, err := parseDate(startDate)
	if err != nil {
		return time.Time{}, time.Time{}, newValidationError("start_date", "must be a date in YYYY-MM-DD format")
	}
	end, err := parseDate(endDate)
	if err != nil {
		return time.Time{}, time.Time{}, newValidationError("end_date", "must be a date in YYYY-MM-DD format")
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, newValidationError("end_date", "must not be before start_date")
	}
	return start, end, nil
}

func (s *SeparataService) toResponse(separata *models.Separata, items []*models.SeparataItem) *models.SeparataResponse {
	resp := &models.SeparataResponse{
		ID:        separata.ID,
		Title:     separata.Title,
		StartDate: separata.StartDate.Format(time.DateOnly),
		EndDate:   separata.EndDate.Format(time.DateOnly),
		Vigency:   separata.Vigency(s.now()),
		CreatedAt: separata.CreatedAt.Format(time.RFC3339),
	}
	if separata.EditDeadline != nil {
		resp.EditDeadline = separata.EditDeadline.Format(time.DateOnly)
	}
	for _, item := range items {
		resp.Items = append(resp.Items, itemToResponse(item))
	}
	return resp
}

func itemToResponse(item *models.SeparataItem) *models.SeparataItemResponse {
	resp := &models.SeparataItemResponse{
		ID:            item.ID,
		SeparataID:    item.SeparataID,
		Code:          item.Code,
		Description:   item.Description,
		SecondaryLine: item.SecondaryLine,
		UnitOfMeasure: item.UnitOfMeasure,
		Measure:       item.Measure,
		Stock:         item.Stock,
		RegularPrice:  item.RegularPrice,
		FinalPrice:    item.FinalPrice,
		Notes:         item.Notes,
		EnteredBy:     item.EnteredBy,
		CreatedAt:     item.CreatedAt.Format(time.RFC3339),
	}
	if item.DiscountPercent != nil {
		// Two decimal places is presentation only; the stored value is exact.
		display := item.DiscountPercent.StringFixed(2)
		resp.DiscountPercent = &display
	}
	return resp
}

func parseDate(value string) (time.Time, error) {
	return time.Parse(time.DateOnly, value)
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
