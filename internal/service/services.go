package service

import (
	"remodel-portal/internal/config"
	"remodel-portal/internal/logger"
	"remodel-portal/internal/store"
	"remodel-portal/internal/utils"
)

type Services struct {
	AuthService       AuthService
	RoomService       RoomService
	ProductService    ProductService
	ExpenseService    ExpenseService
	AggregatorService AggregatorService
	TimelineService   TimelineService
}

func NewServices(storages *store.Storages, cfg *config.StructuredConfig, logger *logger.Logger) *Services {
	ids := utils.NewUUIDGenerator()

	return &Services{
		AuthService:       NewAuthService(storages.UserRepository, cfg.App, ids, logger),
		RoomService:       NewRoomService(storages.RoomRepository, ids, logger),
		ProductService:    NewProductService(storages.RoomRepository, ids, logger),
		ExpenseService:    NewExpenseService(storages.ExpenseRepository, ids, logger),
		AggregatorService: NewAggregatorService(storages.RoomRepository, storages.ExpenseRepository, logger),
		TimelineService:   NewTimelineService(storages.TimelineRepository, ids, logger),
	}
}
