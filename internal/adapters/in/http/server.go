// Package http exposes the logistics pipeline over a JSON API.
// It coordinates between HTTP handlers and application use cases; all
// business rules live behind the command and query handlers.
package http

import (
	"errors"
	"net/http"

	"parceltrack/internal/core/application/usecases/commands"
	"parceltrack/internal/core/application/usecases/queries"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/shipment"
	"parceltrack/internal/core/domain/services"
	"parceltrack/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server implements the HTTP surface for shipments, manifests and scans.
type Server struct {
	// Command handlers
	bookShipmentHandler       commands.BookShipmentCommandHandler
	transitionShipmentHandler commands.TransitionShipmentCommandHandler
	createManifestHandler     commands.CreateManifestCommandHandler
	outboundScanHandler       commands.OutboundScanCommandHandler
	receiveManifestHandler    commands.ReceiveManifestCommandHandler
	sortShipmentsHandler      commands.SortShipmentsCommandHandler

	// Query handlers
	getOverdueShipmentsHandler queries.GetOverdueShipmentsQueryHandler
	getManifestHandler         queries.GetManifestQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	bookShipmentHandler commands.BookShipmentCommandHandler,
	transitionShipmentHandler commands.TransitionShipmentCommandHandler,
	createManifestHandler commands.CreateManifestCommandHandler,
	outboundScanHandler commands.OutboundScanCommandHandler,
	receiveManifestHandler commands.ReceiveManifestCommandHandler,
	sortShipmentsHandler commands.SortShipmentsCommandHandler,
	getOverdueShipmentsHandler queries.GetOverdueShipmentsQueryHandler,
	getManifestHandler queries.GetManifestQueryHandler,
) *Server {
	return &Server{
		bookShipmentHandler:        bookShipmentHandler,
		transitionShipmentHandler:  transitionShipmentHandler,
		createManifestHandler:      createManifestHandler,
		outboundScanHandler:        outboundScanHandler,
		receiveManifestHandler:     receiveManifestHandler,
		sortShipmentsHandler:       sortShipmentsHandler,
		getOverdueShipmentsHandler: getOverdueShipmentsHandler,
		getManifestHandler:         getManifestHandler,
	}
}

// RegisterRoutes attaches all API routes to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/shipments", s.BookShipment)
	api.POST("/shipments/:awb/transition", s.TransitionShipment)
	api.GET("/shipments/overdue", s.GetOverdueShipments)

	api.POST("/manifests", s.CreateManifest)
	api.POST("/manifests/:manifestId/receive", s.ReceiveManifest)
	api.GET("/manifests/:manifestId", s.GetManifest)

	api.POST("/scans/outbound", s.OutboundScan)
	api.POST("/scans/sort", s.SortShipments)

	e.GET("/health", s.Health)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// BookShipment handles POST /api/v1/shipments - registers a new shipment.
func (s *Server) BookShipment(ctx echo.Context) error {
	var request BookShipmentRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	awb, err := kernel.NewAWB(request.AWB)
	if err != nil {
		return errorResponse(ctx, err)
	}
	merchantID, err := kernel.UUIDFromString(request.MerchantID)
	if err != nil {
		return errorResponse(ctx, err)
	}

	cmd, err := commands.NewBookShipmentCommand(
		awb, merchantID, request.CODAmount, request.PickupDeadline, request.DeliveryDeadline)
	if err != nil {
		return errorResponse(ctx, err)
	}

	result, err := s.bookShipmentHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, BookShipmentResponse{
		ShipmentID: result.ShipmentID.String(),
		AWB:        result.AWB,
		Status:     result.Status.String(),
	})
}

// TransitionShipment handles POST /api/v1/shipments/:awb/transition.
func (s *Server) TransitionShipment(ctx echo.Context) error {
	var request TransitionShipmentRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	awb, err := kernel.NewAWB(ctx.Param("awb"))
	if err != nil {
		return errorResponse(ctx, err)
	}
	target, err := shipment.StatusFromString(request.TargetStatus)
	if err != nil {
		return errorResponse(ctx, err)
	}

	cmd, err := commands.NewTransitionShipmentCommand(awb, target, request.ActorID)
	if err != nil {
		return errorResponse(ctx, err)
	}

	result, err := s.transitionShipmentHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusOK, TransitionShipmentResponse{
		ShipmentID:     result.ShipmentID.String(),
		AWB:            result.AWB,
		PreviousStatus: result.PreviousStatus.String(),
		NewStatus:      result.NewStatus.String(),
		Changed:        result.Changed,
	})
}

// CreateManifest handles POST /api/v1/manifests.
func (s *Server) CreateManifest(ctx echo.Context) error {
	var request CreateManifestRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	awbs, err := parseAWBs(request.AWBNumbers)
	if err != nil {
		return errorResponse(ctx, err)
	}
	riderID, err := parseOptionalUUID(request.RiderID)
	if err != nil {
		return errorResponse(ctx, err)
	}

	cmd, err := commands.NewCreateManifestCommand(
		request.OriginHub, request.DestinationHub, riderID, awbs, request.Notes, request.ActorID)
	if err != nil {
		return errorResponse(ctx, err)
	}

	result, err := s.createManifestHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, CreateManifestResponse{
		ManifestID:     result.ManifestID.String(),
		ManifestNumber: result.ManifestNumber,
		Status:         result.Status.String(),
	})
}

// OutboundScan handles POST /api/v1/scans/outbound.
func (s *Server) OutboundScan(ctx echo.Context) error {
	var request OutboundScanRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	awbs, err := parseAWBs(request.AWBNumbers)
	if err != nil {
		return errorResponse(ctx, err)
	}
	riderID, err := parseOptionalUUID(request.RiderID)
	if err != nil {
		return errorResponse(ctx, err)
	}

	cmd, err := commands.NewOutboundScanCommand(
		request.ManifestNumber, awbs, request.OriginHub, request.DestinationHub, riderID, request.ActorID)
	if err != nil {
		return errorResponse(ctx, err)
	}

	result, err := s.outboundScanHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusOK, OutboundScanResponse{
		ManifestNumber: result.ManifestNumber,
		Items:          scanItemsToResponse(result.Items),
	})
}

// ReceiveManifest handles POST /api/v1/manifests/:manifestId/receive.
func (s *Server) ReceiveManifest(ctx echo.Context) error {
	var request ReceiveManifestRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	manifestID, err := kernel.UUIDFromString(ctx.Param("manifestId"))
	if err != nil {
		return errorResponse(ctx, err)
	}
	awbs, err := parseAWBs(request.ReceivedAWBNumbers)
	if err != nil {
		return errorResponse(ctx, err)
	}

	cmd, err := commands.NewReceiveManifestCommand(manifestID, awbs, request.HubLocation, request.ActorID)
	if err != nil {
		return errorResponse(ctx, err)
	}

	result, err := s.receiveManifestHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusOK, ReceiveManifestResponse{
		ManifestNumber: result.ManifestNumber,
		ManifestStatus: result.ManifestStatus.String(),
		Items:          scanItemsToResponse(result.Items),
		ShortShipped:   result.ShortShipped,
		OverReceived:   result.OverReceived,
	})
}

// SortShipments handles POST /api/v1/scans/sort.
func (s *Server) SortShipments(ctx echo.Context) error {
	var request SortShipmentsRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	awbs, err := parseAWBs(request.AWBNumbers)
	if err != nil {
		return errorResponse(ctx, err)
	}

	cmd, err := commands.NewSortShipmentsCommand(
		awbs, request.HubLocation, request.DestinationHub, request.ActorID)
	if err != nil {
		return errorResponse(ctx, err)
	}

	result, err := s.sortShipmentsHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusOK, SortShipmentsResponse{
		Items: scanItemsToResponse(result.Items),
	})
}

// GetOverdueShipments handles GET /api/v1/shipments/overdue?type=.
func (s *Server) GetOverdueShipments(ctx echo.Context) error {
	violationType := services.ViolationType(ctx.QueryParam("type"))

	query, err := queries.NewGetOverdueShipmentsQuery(violationType)
	if err != nil {
		return errorResponse(ctx, err)
	}

	rows, err := s.getOverdueShipmentsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorResponse(ctx, err)
	}

	response := make([]OverdueShipmentResponse, len(rows))
	for i, row := range rows {
		response[i] = OverdueShipmentResponse{
			ShipmentID:         row.ID.String(),
			AWB:                row.AWB,
			Status:             row.Status,
			CurrentHub:         row.CurrentHub,
			LastStatusChangeAt: row.LastStatusChangeAt,
		}
		if row.RiderID != nil {
			rider := row.RiderID.String()
			response[i].RiderID = &rider
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetManifest handles GET /api/v1/manifests/:manifestId.
func (s *Server) GetManifest(ctx echo.Context) error {
	manifestID, err := kernel.UUIDFromString(ctx.Param("manifestId"))
	if err != nil {
		return errorResponse(ctx, err)
	}

	query, err := queries.NewGetManifestQuery(manifestID)
	if err != nil {
		return errorResponse(ctx, err)
	}

	result, err := s.getManifestHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusOK, manifestToResponse(result))
}

// parseAWBs converts raw tracking numbers to validated AWBs.
func parseAWBs(values []string) ([]kernel.AWB, error) {
	awbs := make([]kernel.AWB, 0, len(values))
	for _, value := range values {
		awb, err := kernel.NewAWB(value)
		if err != nil {
			return nil, err
		}
		awbs = append(awbs, awb)
	}
	return awbs, nil
}

// parseOptionalUUID converts an optional string identifier.
func parseOptionalUUID(value *string) (*kernel.UUID, error) {
	if value == nil {
		return nil, nil
	}
	id, err := kernel.UUIDFromString(*value)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, ErrorResponse{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

// errorResponse maps application errors onto HTTP status codes.
func errorResponse(ctx echo.Context, err error) error {
	code := statusCodeFor(err)
	return ctx.JSON(code, ErrorResponse{
		Code:    code,
		Message: err.Error(),
	})
}

func statusCodeFor(err error) int {
	var (
		notFoundErr   *errs.ObjectNotFoundError
		illegalErr    *errs.IllegalTransitionError
		alreadyErr    *errs.AlreadyReceivedError
		concurrentErr *errs.ConcurrentModificationError
		manifestErr   *errs.InvalidManifestContentsError
		requiredErr   *errs.ValueIsRequiredError
		invalidErr    *errs.ValueIsInvalidError
		outOfRangeErr *errs.ValueIsOutOfRangeError
	)

	switch {
	case errors.As(err, &notFoundErr):
		return http.StatusNotFound
	case errors.As(err, &illegalErr),
		errors.As(err, &alreadyErr),
		errors.As(err, &concurrentErr):
		return http.StatusConflict
	case errors.As(err, &manifestErr):
		return http.StatusUnprocessableEntity
	case errors.As(err, &requiredErr),
		errors.As(err, &invalidErr),
		errors.As(err, &outOfRangeErr):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
