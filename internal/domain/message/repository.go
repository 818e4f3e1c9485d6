package message

import (
	"context"
	"time"

	"github.com/BruksfildServices01/mester-scheduler/internal/models"
)

type Repository interface {
	GetThread(
		ctx context.Context,
		threadID uint,
	) (*models.Thread, error)

	// FindThread busca pela chave natural (job, professional).
	FindThread(
		ctx context.Context,
		jobID uint,
		professionalID uint,
	) (*models.Thread, error)

	// GetOrCreateThread usa (job, professional) como chave natural.
	GetOrCreateThread(
		ctx context.Context,
		t *models.Thread,
	) (*models.Thread, error)

	CreateMessage(
		ctx context.Context,
		m *models.Message,
	) error

	// CreateFirstReply grava m só se m.SenderID ainda não escreveu no thread.
	// Checagem e insert são atômicos por thread; false quando já havia.
	CreateFirstReply(
		ctx context.Context,
		m *models.Message,
	) (bool, error)

	// ListThreadMessages devolve em ordem cronológica.
	ListThreadMessages(
		ctx context.Context,
		threadID uint,
	) ([]models.Message, error)

	// MarkThreadRead marca como lidas as mensagens recebidas por receiverID.
	MarkThreadRead(
		ctx context.Context,
		threadID uint,
		receiverID uint,
		at time.Time,
	) (int64, error)
}
