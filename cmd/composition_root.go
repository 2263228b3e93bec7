package cmd

import (
	"log/slog"

	"parceltrack/internal/adapters/out/postgres"
	"parceltrack/internal/core/application/usecases/commands"
	"parceltrack/internal/core/application/usecases/queries"
	"parceltrack/internal/core/domain/services"
	"parceltrack/internal/core/ports"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB         *gorm.DB
	uowFactory     postgres.GormUnitOfWorkFactory
	auditSink      ports.AuditSink
	violationQueue ports.ViolationQueue
	eventPublisher ports.StatusEventPublisher
	inspector      services.SLAInspector
	logger         *slog.Logger
}

func NewCompositionRoot(
	_ Config,
	gormDB *gorm.DB,
	auditSink ports.AuditSink,
	violationQueue ports.ViolationQueue,
	eventPublisher ports.StatusEventPublisher,
	inspector services.SLAInspector,
	logger *slog.Logger,
) CompositionRoot {
	return CompositionRoot{
		gormDB:         gormDB,
		uowFactory:     *postgres.NewGormUnitOfWorkFactory(gormDB),
		auditSink:      auditSink,
		violationQueue: violationQueue,
		eventPublisher: eventPublisher,
		inspector:      inspector,
		logger:         logger,
	}
}

func (c *CompositionRoot) CreateBookShipmentCommandHandler() commands.BookShipmentCommandHandler {
	var f commands.ShipmentUoWFactory = FuncShipmentUoWFactory(func() commands.ShipmentUoW {
		return c.uowFactory.Create()
	})
	return commands.NewBookShipmentCommandHandler(f, c.auditSink)
}

func (c *CompositionRoot) CreateTransitionShipmentCommandHandler() commands.TransitionShipmentCommandHandler {
	var f commands.ShipmentUoWFactory = FuncShipmentUoWFactory(func() commands.ShipmentUoW {
		return c.uowFactory.Create()
	})
	return commands.NewTransitionShipmentCommandHandler(f, c.auditSink, c.eventPublisher, c.logger)
}

func (c *CompositionRoot) CreateCreateManifestCommandHandler() commands.CreateManifestCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateManifestCommandHandler(f, c.auditSink)
}

func (c *CompositionRoot) CreateOutboundScanCommandHandler() commands.OutboundScanCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewOutboundScanCommandHandler(f, c.auditSink, c.eventPublisher, c.logger)
}

func (c *CompositionRoot) CreateReceiveManifestCommandHandler() commands.ReceiveManifestCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewReceiveManifestCommandHandler(f, c.auditSink, c.eventPublisher, c.logger)
}

func (c *CompositionRoot) CreateSortShipmentsCommandHandler() commands.SortShipmentsCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewSortShipmentsCommandHandler(f, c.auditSink)
}

func (c *CompositionRoot) CreateDetectViolationsCommandHandler() commands.DetectViolationsCommandHandler {
	var f commands.ShipmentUoWFactory = FuncShipmentUoWFactory(func() commands.ShipmentUoW {
		return c.uowFactory.Create()
	})
	return commands.NewDetectViolationsCommandHandler(f, c.inspector, c.violationQueue, c.logger)
}

func (c *CompositionRoot) CreateRecordViolationCommandHandler() commands.RecordViolationCommandHandler {
	return commands.NewRecordViolationCommandHandler(c.auditSink, c.logger)
}

func (c *CompositionRoot) CreateGetOverdueShipmentsQueryHandler() queries.GetOverdueShipmentsQueryHandler {
	return queries.NewGetOverdueShipmentsQueryHandler(c.gormDB, c.inspector)
}

func (c *CompositionRoot) CreateGetManifestQueryHandler() queries.GetManifestQueryHandler {
	return queries.NewGetManifestQueryHandler(c.gormDB)
}

type FuncShipmentUoWFactory func() commands.ShipmentUoW

func (f FuncShipmentUoWFactory) Create() commands.ShipmentUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
