package item

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/stashbox/core/internal/models"
	"github.com/stashbox/core/internal/modules/processing/ai"
	"github.com/stashbox/core/internal/modules/system/configs"
	"github.com/stashbox/core/internal/pkg/pagination"
	"github.com/stashbox/core/internal/pkg/response"
)

var ErrInvalidType = errors.New("invalid item type")

// Service owns item CRUD. Every query is scoped to the owning user, and
// saves hand freshly captured items to the enrichment pipeline in the
// background according to the capture options.
type Service struct {
	db     *gorm.DB
	cfgSvc *configs.Service
	aiSvc  *ai.Service
	logger *zap.Logger
}

func NewService(db *gorm.DB, cfgSvc *configs.Service, aiSvc *ai.Service, logger *zap.Logger) *Service {
	return &Service{db: db, cfgSvc: cfgSvc, aiSvc: aiSvc, logger: logger}
}

func parseItemType(raw string) (models.ItemType, error) {
	switch models.ItemType(strings.TrimSpace(raw)) {
	case "", models.ItemNote:
		return models.ItemNote, nil
	case models.ItemLink:
		return models.ItemLink, nil
	case models.ItemInsight:
		return models.ItemInsight, nil
	default:
		return "", ErrInvalidType
	}
}

func (s *Service) Create(userID string, dto *CreateItemDTO) (*models.ItemModel, error) {
	itemType, err := parseItemType(dto.Type)
	if err != nil {
		return nil, err
	}

	item := models.ItemModel{
		UserID:  userID,
		Title:   strings.TrimSpace(dto.Title),
		Type:    itemType,
		URL:     strings.TrimSpace(dto.URL),
		Content: dto.Content,
	}
	if err := s.db.Create(&item).Error; err != nil {
		return nil, err
	}

	if s.enrichOnCreate() {
		s.enqueueEnrich(item.ID, userID)
	}
	return &item, nil
}

func (s *Service) GetByID(userID, id string) (*models.ItemModel, error) {
	var item models.ItemModel
	if err := s.db.First(&item, "id = ? AND user_id = ?", id, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

// List returns the user's items newest-first, pinned items on top.
func (s *Service) List(userID string, q pagination.Query, filter ListFilter) ([]models.ItemModel, response.Pagination, error) {
	tx := s.db.Model(&models.ItemModel{}).
		Where("user_id = ?", userID).
		Order("pinned DESC, created_at DESC")

	if filter.Type != "" {
		tx = tx.Where("type = ?", filter.Type)
	}
	if filter.Category != "" {
		tx = tx.Where("category = ?", filter.Category)
	}
	if filter.Tag != "" {
		// Tags persist as a JSON array in a text column.
		tx = tx.Where("tags LIKE ?", `%"`+filter.Tag+`"%`)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		tx = tx.Where("title LIKE ? OR content LIKE ? OR summary LIKE ?", like, like, like)
	}

	var items []models.ItemModel
	pag, err := pagination.Paginate(tx, q, &items)
	return items, pag, err
}

func (s *Service) Update(userID, id string, dto *UpdateItemDTO) (*models.ItemModel, error) {
	item, err := s.GetByID(userID, id)
	if err != nil || item == nil {
		return item, err
	}

	contentChanged := false
	if dto.Title != nil {
		item.Title = strings.TrimSpace(*dto.Title)
	}
	if dto.Type != nil {
		itemType, err := parseItemType(*dto.Type)
		if err != nil {
			return nil, err
		}
		item.Type = itemType
	}
	if dto.URL != nil {
		item.URL = strings.TrimSpace(*dto.URL)
	}
	if dto.Content != nil && *dto.Content != item.Content {
		item.Content = *dto.Content
		contentChanged = true
	}
	if dto.Summary != nil {
		item.Summary = *dto.Summary
	}
	if dto.Tags != nil {
		item.Tags = models.StringArray(*dto.Tags)
	}
	if dto.Category != nil {
		item.Category = *dto.Category
	}
	if dto.Pinned != nil {
		item.Pinned = *dto.Pinned
	}

	if err := s.db.Save(item).Error; err != nil {
		return nil, err
	}

	if contentChanged && s.enrichOnUpdate() {
		s.enqueueEnrich(item.ID, userID)
	}
	return item, nil
}

func (s *Service) Delete(userID, id string) (bool, error) {
	result := s.db.Delete(&models.ItemModel{}, "id = ? AND user_id = ?", id, userID)
	return result.RowsAffected > 0, result.Error
}

// Categories returns the distinct categories present in the user's stash.
func (s *Service) Categories(userID string) ([]string, error) {
	var categories []string
	err := s.db.Model(&models.ItemModel{}).
		Where("user_id = ? AND category <> ''", userID).
		Distinct().
		Order("category ASC").
		Pluck("category", &categories).Error
	return categories, err
}

func (s *Service) enrichOnCreate() bool {
	cfg, err := s.cfgSvc.Get()
	return err == nil && cfg.Capture.EnrichOnCreate && cfg.AI.EnableEnrich
}

func (s *Service) enrichOnUpdate() bool {
	cfg, err := s.cfgSvc.Get()
	return err == nil && cfg.Capture.EnrichOnUpdate && cfg.AI.EnableEnrich
}

func (s *Service) enqueueEnrich(itemID, userID string) {
	if _, err := s.aiSvc.EnqueueEnrich(context.Background(), itemID, userID); err != nil {
		if s.logger != nil {
			s.logger.Warn("failed to enqueue enrichment",
				zap.String("item_id", itemID),
				zap.Error(err))
		}
	}
}
