package conversationRepository

import (
	"UnicornGolang/internal/entity"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

type SQLExecutor interface {
	sqlx.ExtContext
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	QueryRowxContext(ctx context.Context, query string, args ...interface{}) *sqlx.Row
	Rebind(query string) string
}

func New(db *sqlx.DB, log *logrus.Logger) Repository {
	return &repository{
		DB:  db,
		log: log,
	}
}

type repository struct {
	DB  *sqlx.DB
	log *logrus.Logger
}

type Repository interface {
	NewClient(tx bool) (Client, error)
}

func (r *repository) NewClient(tx bool) (Client, error) {
	var sqlExecutor SQLExecutor
	var commitFunc, rollbackFunc func() error

	sqlExecutor = r.DB

	if tx {
		var err error
		txx, err := r.DB.Beginx()
		if err != nil {
			return Client{}, err
		}

		sqlExecutor = txx
		commitFunc = txx.Commit
		rollbackFunc = txx.Rollback
	} else {
		commitFunc = func() error { return nil }
		rollbackFunc = func() error { return nil }
	}

	return Client{
		Turns:    &turnRepository{q: sqlExecutor, log: r.log},
		Clients:  &clientRepository{q: sqlExecutor, log: r.log},
		Commit:   commitFunc,
		Rollback: rollbackFunc,
	}, nil
}

type Client struct {
	Turns interface {
		CreateTurn(ctx context.Context, turn entity.ConversationTurn) error
		GetRecentTurns(ctx context.Context, clientID, userPhone string, limit int) ([]entity.ConversationTurn, error)
		GetHistory(ctx context.Context, clientID, userPhone string, limit, offset int) ([]entity.ConversationTurn, int, error)
		GetUnprocessedTurns(ctx context.Context, limit int) ([]entity.ConversationTurn, error)
		MarkTurnProcessed(ctx context.Context, id string) error
	}

	Clients interface {
		GetClientByPhone(ctx context.Context, phoneNumber string) (entity.Client, error)
		GetClientByID(ctx context.Context, id string) (entity.Client, error)
	}

	Commit   func() error
	Rollback func() error
}

type turnRepository struct {
	q   SQLExecutor
	log *logrus.Logger
}

type clientRepository struct {
	q   SQLExecutor
	log *logrus.Logger
}
