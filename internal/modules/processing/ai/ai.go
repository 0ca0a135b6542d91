package ai

import (
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/stashbox/core/internal/config"
	"github.com/stashbox/core/internal/models"
	"github.com/stashbox/core/internal/modules/system/configs"
	"github.com/stashbox/core/internal/pkg/taskqueue"
)

// Service owns the enrichment and question-answering pipelines. All model
// traffic funnels through the governor, and every enrichment failure falls
// back to the offline heuristics so items are never left bare.
type Service struct {
	db       *gorm.DB
	taskSvc  *taskqueue.Service
	logger   *zap.Logger
	governor *Governor

	// getCfg, call and fetchItems are indirections over the config service,
	// the provider round trip and the item lookup; tests swap them for stubs.
	getCfg     func() (*config.FullConfig, error)
	call       callFunc
	fetchItems func(userID string) ([]models.ItemModel, error)
}

func NewService(db *gorm.DB, cfgSvc *configs.Service, taskSvc *taskqueue.Service, logger *zap.Logger) *Service {
	s := &Service{
		db:       db,
		taskSvc:  taskSvc,
		logger:   logger,
		governor: NewGovernor(),
		getCfg:   cfgSvc.Get,
		call:     callModel,
	}
	s.fetchItems = s.queryItems
	return s
}
