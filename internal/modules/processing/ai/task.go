package ai

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/stashbox/core/internal/models"
	"github.com/stashbox/core/internal/pkg/taskqueue"
)

const TaskTypeEnrich = "ai:enrich"

var errItemNotFound = errors.New("item not found")

// EnqueueEnrich creates a background enrichment task for an item, deduped on
// the item ID so repeated saves don't stack work.
func (s *Service) EnqueueEnrich(ctx context.Context, itemID, userID string) (*taskqueue.Task, error) {
	var item models.ItemModel
	if err := s.db.First(&item, "id = ? AND user_id = ?", itemID, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errItemNotFound
		}
		return nil, err
	}

	payload := EnrichPayload{ItemID: itemID, UserID: userID}
	task, err := s.taskSvc.Enqueue(ctx, TaskTypeEnrich, payload, itemID, userID)
	if err != nil {
		return nil, err
	}

	// Execute immediately in a goroutine (in production use a worker pool)
	if task.Status == taskqueue.TaskPending {
		go s.executeEnrich(context.Background(), task.ID, payload)
	}

	return task, nil
}

func (s *Service) executeEnrich(ctx context.Context, taskID string, payload EnrichPayload) {
	s.taskSvc.UpdateStatus(ctx, taskID, taskqueue.TaskRunning, nil, "")

	var item models.ItemModel
	if err := s.db.First(&item, "id = ? AND user_id = ?", payload.ItemID, payload.UserID).Error; err != nil {
		s.taskSvc.UpdateStatus(ctx, taskID, taskqueue.TaskFailed, nil, "item not found")
		return
	}

	// meta is always usable; a non-nil error only records why the model path
	// was skipped.
	meta, genErr := s.GenerateMetadata(item.Title, string(item.Type), item.Content)

	updates := map[string]interface{}{
		"summary":  meta.Summary,
		"tags":     models.StringArray(meta.Tags),
		"category": meta.Category,
		"enriched": true,
	}
	if err := s.db.Model(&models.ItemModel{}).
		Where("id = ?", item.ID).
		Updates(updates).Error; err != nil {
		s.taskSvc.UpdateStatus(ctx, taskID, taskqueue.TaskFailed, nil, err.Error())
		return
	}

	note := ""
	if genErr != nil {
		note = "heuristic fallback: " + genErr.Error()
	}
	s.taskSvc.UpdateStatus(ctx, taskID, taskqueue.TaskCompleted, gin.H{
		"item_id":    item.ID,
		"from_model": meta.FromModel,
	}, note)
}
