package auditrepo_test

import (
	"context"
	"testing"
	"time"

	"parceltrack/internal/adapters/out/postgres/auditrepo"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/ports"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// AuditSinkIntegrationTestSuite provides integration tests for the postgres
// audit sink, in particular the insert-once semantics keyed by record ID that
// the at-least-once violation pipeline depends on.
type AuditSinkIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	sink      *auditrepo.GormAuditSink
}

func (suite *AuditSinkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&auditrepo.AuditRecordDTO{}))
}

func (suite *AuditSinkIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE audit_records").Error)
	suite.sink = auditrepo.NewGormAuditSink(suite.db)
}

func (suite *AuditSinkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *AuditSinkIntegrationTestSuite) TestAppend_ValidRecord_Persists() {
	ctx := context.Background()

	record := suite.newTestRecord()
	suite.Require().NoError(suite.sink.Append(ctx, record))

	var dto auditrepo.AuditRecordDTO
	suite.Require().NoError(suite.db.First(&dto, "id = ?", record.ID.Bytes()).Error)
	suite.Equal(record.Action, dto.Action)
	suite.Equal(record.EntityID, dto.EntityID)
	suite.Equal(record.Context["violationType"], dto.Context["violationType"])
	suite.False(dto.CreatedAt.IsZero())
}

func (suite *AuditSinkIntegrationTestSuite) TestAppend_DuplicateID_IsIdempotent() {
	ctx := context.Background()

	record := suite.newTestRecord()
	suite.Require().NoError(suite.sink.Append(ctx, record))

	// A redelivered job appends the same record; the second write is a no-op.
	redelivered := record
	redelivered.Context = map[string]string{"violationType": "delivery"}
	suite.Require().NoError(suite.sink.Append(ctx, redelivered))

	var count int64
	suite.Require().NoError(suite.db.Model(&auditrepo.AuditRecordDTO{}).Count(&count).Error)
	suite.Equal(int64(1), count)

	// The original row is untouched.
	var dto auditrepo.AuditRecordDTO
	suite.Require().NoError(suite.db.First(&dto, "id = ?", record.ID.Bytes()).Error)
	suite.Equal("pickup", dto.Context["violationType"])
}

func (suite *AuditSinkIntegrationTestSuite) TestAppend_InvalidID_ReturnsError() {
	ctx := context.Background()

	record := suite.newTestRecord()
	record.ID = kernel.UUID{}

	err := suite.sink.Append(ctx, record)
	suite.Require().Error(err)

	var count int64
	suite.Require().NoError(suite.db.Model(&auditrepo.AuditRecordDTO{}).Count(&count).Error)
	suite.Zero(count)
}

func (suite *AuditSinkIntegrationTestSuite) newTestRecord() ports.AuditRecord {
	return ports.AuditRecord{
		ID:         kernel.NewUUID(),
		ActorID:    "sla-detector",
		EntityType: "shipment",
		EntityID:   "AWB-4001",
		Action:     "sla_violation_detected",
		Context: map[string]string{
			"violationType": "pickup",
		},
	}
}

func TestAuditSinkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(AuditSinkIntegrationTestSuite))
}
