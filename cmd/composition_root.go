// Package cmd wires the application together: configuration, the composition
// root and the dependency graph behind every use case handler.
package cmd

import (
	"log/slog"

	adapterhttp "nlivrilik/internal/adapters/in/http"
	"nlivrilik/internal/adapters/out/mailer"
	"nlivrilik/internal/adapters/out/postgres"
	"nlivrilik/internal/core/application/usecases/commands"
	"nlivrilik/internal/core/application/usecases/queries"
	"nlivrilik/internal/core/ports"
	"nlivrilik/internal/jobs"
	"nlivrilik/internal/notifications"

	"gorm.io/gorm"
)

// CompositionRoot builds and owns the long-lived collaborators and hands out
// fully wired command and query handlers.
type CompositionRoot struct {
	config     Config
	logger     *slog.Logger
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	notifier   ports.NotificationClient
	dispatcher *notifications.Dispatcher
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) *CompositionRoot {
	notifier := mailer.NewHTTPNotificationClient(config.MailRelayEndpoint, config.MailRelayAPIKey, logger)
	dispatcher := notifications.NewDispatcher(notifier, notifications.Config{
		AdminRecipients:   config.AdminEmails,
		CourierRecipients: config.CourierDeskEmails,
	}, logger)

	return &CompositionRoot{
		config:     config,
		logger:     logger,
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		notifier:   notifier,
		dispatcher: dispatcher,
	}
}

// Dispatcher exposes the event dispatcher so main can manage its lifecycle.
func (c *CompositionRoot) Dispatcher() *notifications.Dispatcher {
	return c.dispatcher
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f, c.dispatcher)
}

func (c *CompositionRoot) CreateTakeOrderCommandHandler() commands.TakeOrderCommandHandler {
	var f commands.OrderUserUoWFactory = FuncOrderUserUoWFactory(func() commands.OrderUserUoW {
		return c.uowFactory.Create()
	})
	return commands.NewTakeOrderCommandHandler(f, c.dispatcher)
}

func (c *CompositionRoot) CreateUpdateOrderStatusCommandHandler() commands.UpdateOrderStatusCommandHandler {
	var f commands.OrderUserUoWFactory = FuncOrderUserUoWFactory(func() commands.OrderUserUoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdateOrderStatusCommandHandler(f, c.dispatcher)
}

func (c *CompositionRoot) CreateCompleteDeliveryCommandHandler() commands.CompleteDeliveryCommandHandler {
	var f commands.OrderUserUoWFactory = FuncOrderUserUoWFactory(func() commands.OrderUserUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCompleteDeliveryCommandHandler(f, c.dispatcher)
}

func (c *CompositionRoot) CreateSubmitRatingCommandHandler() commands.SubmitRatingCommandHandler {
	var f commands.RatingUoWFactory = FuncRatingUoWFactory(func() commands.RatingUoW {
		return c.uowFactory.Create()
	})
	return commands.NewSubmitRatingCommandHandler(f)
}

func (c *CompositionRoot) CreateCreateUserCommandHandler() commands.CreateUserCommandHandler {
	var f commands.UserUoWFactory = FuncUserUoWFactory(func() commands.UserUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateUserCommandHandler(f)
}

func (c *CompositionRoot) CreateSetCourierAvailabilityCommandHandler() commands.SetCourierAvailabilityCommandHandler {
	var f commands.UserUoWFactory = FuncUserUoWFactory(func() commands.UserUoW {
		return c.uowFactory.Create()
	})
	return commands.NewSetCourierAvailabilityCommandHandler(f)
}

func (c *CompositionRoot) CreateNotifyStaleOrdersCommandHandler() commands.NotifyStaleOrdersCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewNotifyStaleOrdersCommandHandler(f, c.notifier, c.config.AdminEmails)
}

func (c *CompositionRoot) CreateGetOrderByIDQueryHandler() queries.GetOrderByIDQueryHandler {
	return queries.NewGetOrderByIDQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrdersByStatusQueryHandler() queries.GetOrdersByStatusQueryHandler {
	return queries.NewGetOrdersByStatusQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetActiveDeliveriesQueryHandler() queries.GetActiveDeliveriesQueryHandler {
	return queries.NewGetActiveDeliveriesQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetAvailableCouriersQueryHandler() queries.GetAvailableCouriersQueryHandler {
	return queries.NewGetAvailableCouriersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetCourierRatingSummaryQueryHandler() queries.GetCourierRatingSummaryQueryHandler {
	return queries.NewGetCourierRatingSummaryQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderRatingQueryHandler() queries.GetOrderRatingQueryHandler {
	return queries.NewGetOrderRatingQueryHandler(c.gormDB)
}

// CreateJobManager wires the scheduled background jobs.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreateNotifyStaleOrdersCommandHandler(),
		c.config.StaleOrderThreshold,
		c.config.StaleOrderSchedule,
		c.logger,
	)
}

// CreateHTTPServer wires the HTTP adapter with every handler it serves.
func (c *CompositionRoot) CreateHTTPServer() *adapterhttp.Server {
	return adapterhttp.NewServer(
		c.config.JWTSecret,
		c.CreateCreateOrderCommandHandler(),
		c.CreateTakeOrderCommandHandler(),
		c.CreateUpdateOrderStatusCommandHandler(),
		c.CreateCompleteDeliveryCommandHandler(),
		c.CreateSubmitRatingCommandHandler(),
		c.CreateCreateUserCommandHandler(),
		c.CreateSetCourierAvailabilityCommandHandler(),
		c.CreateGetOrderByIDQueryHandler(),
		c.CreateGetOrdersByStatusQueryHandler(),
		c.CreateGetActiveDeliveriesQueryHandler(),
		c.CreateGetAvailableCouriersQueryHandler(),
		c.CreateGetCourierRatingSummaryQueryHandler(),
		c.CreateGetOrderRatingQueryHandler(),
	)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncUserUoWFactory func() commands.UserUoW

func (f FuncUserUoWFactory) Create() commands.UserUoW {
	return f()
}

type FuncOrderUserUoWFactory func() commands.OrderUserUoW

func (f FuncOrderUserUoWFactory) Create() commands.OrderUserUoW {
	return f()
}

type FuncRatingUoWFactory func() commands.RatingUoW

func (f FuncRatingUoWFactory) Create() commands.RatingUoW {
	return f()
}
