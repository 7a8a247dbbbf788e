package cmd

import (
	"log/slog"

	httpadapter "restaurant/internal/adapters/in/http"
	"restaurant/internal/adapters/out/eventbus"
	"restaurant/internal/adapters/out/postgres"
	"restaurant/internal/core/application/usecases/commands"
	"restaurant/internal/core/application/usecases/queries"
	"restaurant/internal/core/domain/services"
	"restaurant/internal/jobs"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB      *gorm.DB
	uowFactory  postgres.GormUnitOfWorkFactory
	broadcaster *eventbus.Broadcaster
	locator     services.StoreLocator
}

func NewCompositionRoot(_ Config, gormDB *gorm.DB) (CompositionRoot, error) {
	locator, err := services.NewStoreLocator(services.DefaultStores())
	if err != nil {
		return CompositionRoot{}, err
	}

	return CompositionRoot{
		gormDB:      gormDB,
		uowFactory:  *postgres.NewGormUnitOfWorkFactory(gormDB),
		broadcaster: eventbus.NewBroadcaster(),
		locator:     locator,
	}, nil
}

func (c *CompositionRoot) Broadcaster() *eventbus.Broadcaster {
	return c.broadcaster
}

func (c *CompositionRoot) CreatePlaceOrderCommandHandler() commands.PlaceOrderCommandHandler {
	return commands.NewPlaceOrderCommandHandler(
		c.orderUoWFactory(),
		c.locator,
		services.NewDeliveryPricer(),
		services.NewPickupCodeGenerator(),
		c.broadcaster,
	)
}

func (c *CompositionRoot) CreateTransitionOrderCommandHandler() commands.TransitionOrderCommandHandler {
	return commands.NewTransitionOrderCommandHandler(c.orderUoWFactory(), c.broadcaster)
}

func (c *CompositionRoot) CreateUpdatePaymentCommandHandler() commands.UpdatePaymentCommandHandler {
	return commands.NewUpdatePaymentCommandHandler(c.orderUoWFactory(), c.broadcaster)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetBoardOrdersQueryHandler() queries.GetBoardOrdersQueryHandler {
	return queries.NewGetBoardOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetCustomerOrdersQueryHandler() queries.GetCustomerOrdersQueryHandler {
	return queries.NewGetCustomerOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateHTTPServer() *httpadapter.Server {
	return httpadapter.NewServer(
		c.CreatePlaceOrderCommandHandler(),
		c.CreateTransitionOrderCommandHandler(),
		c.CreateUpdatePaymentCommandHandler(),
		c.CreateGetOrderQueryHandler(),
		c.CreateGetBoardOrdersQueryHandler(),
		c.CreateGetCustomerOrdersQueryHandler(),
		c.broadcaster,
	)
}

func (c *CompositionRoot) CreateJobManager(logger *slog.Logger) *jobs.JobManager {
	return jobs.NewJobManager(c.orderUoWFactory(), c.broadcaster, logger)
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}
