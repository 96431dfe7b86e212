package kafka_test

import (
	"context"
	"testing"
	"time"

	"go-leaveflow/internal/events"
	"go-leaveflow/internal/messaging/kafka"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func setupOutboxTest(t *testing.T) (kafka.OutboxRepository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	assert.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return kafka.NewOutboxRepository(db), mock
}

func TestOutboxRepository_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("insert runs on the bound transaction", func(t *testing.T) {
		baseDB, baseMock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
		assert.NoError(t, err)
		defer baseDB.Close()

		txDB, txMock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
		assert.NoError(t, err)
		defer txDB.Close()

		repo := kafka.NewOutboxRepository(baseDB)

		event := kafka.NewLeaveRequestEvent(
			"req-1", "7e6f0c5e-0000-0000-0000-000000000001",
			"leave_decided", events.LeaveDecisionTopic, []byte(`{"status":"APPROVED"}`),
		)

		txMock.ExpectBegin()
		txMock.ExpectExec(`INSERT INTO outbox_events`).
			WithArgs(event.ID, event.RequestID, event.AggregateType,
				event.AggregateID, event.EventType, event.Topic, event.Payload, event.Status).
			WillReturnResult(sqlmock.NewResult(0, 1))
		txMock.ExpectCommit()

		tx, err := txDB.Begin()
		assert.NoError(t, err)

		assert.NoError(t, repo.WithTx(tx).Create(ctx, event))
		assert.NoError(t, tx.Commit())

		assert.NoError(t, baseMock.ExpectationsWereMet())
		assert.NoError(t, txMock.ExpectationsWereMet())
	})

	t.Run("unknown topic never reaches the database", func(t *testing.T) {
		repo, mock := setupOutboxTest(t)

		event := kafka.NewLeaveRequestEvent(
			"req-1", "7e6f0c5e-0000-0000-0000-000000000001",
			"leave_decided", "hr.payroll.v1", []byte(`{}`),
		)

		err := repo.Create(ctx, event)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "unknown topic")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty payload is refused", func(t *testing.T) {
		repo, mock := setupOutboxTest(t)

		event := kafka.NewLeaveRequestEvent(
			"req-1", "7e6f0c5e-0000-0000-0000-000000000001",
			"leave_submitted", events.LeaveSubmittedTopic, nil,
		)

		err := repo.Create(ctx, event)

		assert.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestOutboxRepository_ListPending(t *testing.T) {
	ctx := context.Background()
	repo, mock := setupOutboxTest(t)

	due := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`SELECT id::text, aggregate_type`).
		WithArgs(kafka.OutboxStatusPending, kafka.OutboxStatusFailed, sqlmock.AnyArg(), 10).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "aggregate_type", "aggregate_id", "event_type", "topic",
			"payload", "status", "retry_count", "coalesce",
		}).AddRow(
			"evt-1", "leave_request", "agg-1", "leave_decided", events.LeaveDecisionTopic,
			[]byte(`{}`), string(kafka.OutboxStatusFailed), 2, due,
		))

	batch, err := repo.ListPending(ctx, 10)

	assert.NoError(t, err)
	assert.Len(t, batch, 1)
	assert.Equal(t, "evt-1", batch[0].ID)
	assert.Equal(t, kafka.OutboxStatusFailed, batch[0].Status)
	assert.Equal(t, 2, batch[0].RetryCount)
	assert.Equal(t, due, batch[0].NextRetryAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOutboxRepository_MarkFailed(t *testing.T) {
	ctx := context.Background()
	repo, mock := setupOutboxTest(t)

	mock.ExpectExec(`UPDATE outbox_events`).
		WithArgs("evt-1", kafka.OutboxStatusFailed, "broker unreachable").
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.MarkFailed(ctx, "evt-1", "broker unreachable"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
