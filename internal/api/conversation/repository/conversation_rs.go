package conversationRepository

import (
	"UnicornGolang/internal/api/conversation"
	"UnicornGolang/internal/entity"
	contextPkg "UnicornGolang/pkg/context"
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

type ConversationTurnDB struct {
	ID             sql.NullString  `db:"id"`
	ClientID       sql.NullString  `db:"client_id"`
	UserPhone      sql.NullString  `db:"user_phone"`
	ProfileName    sql.NullString  `db:"profile_name"`
	Speaker        sql.NullString  `db:"speaker"`
	Message        sql.NullString  `db:"message"`
	Modality       sql.NullString  `db:"modality"`
	AudioURL       sql.NullString  `db:"audio_url"`
	DecisionReason sql.NullString  `db:"decision_reason"`
	DecisionScore  sql.NullFloat64 `db:"decision_score"`
	Processed      sql.NullBool    `db:"processed"`
	CreatedAt      time.Time       `db:"created_at"`
}

func (r *turnRepository) CreateTurn(ctx context.Context, turn entity.ConversationTurn) error {
	requestID := contextPkg.GetRequestID(ctx)

	var score interface{}
	if turn.DecisionScore != nil {
		score = *turn.DecisionScore
	}

	argsKV := map[string]interface{}{
		"id":              turn.ID,
		"client_id":       turn.ClientID,
		"user_phone":      turn.UserPhone,
		"profile_name":    turn.ProfileName,
		"speaker":         turn.Speaker,
		"message":         turn.Message,
		"modality":        turn.Modality,
		"audio_url":       turn.AudioURL,
		"decision_reason": turn.DecisionReason,
		"decision_score":  score,
		"processed":       turn.Processed,
		"created_at":      turn.CreatedAt,
	}

	query, args, err := sqlx.Named(queryCreateTurn, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("CreateTurn named query preparation err")
		return err
	}
	query = r.q.Rebind(query)

	_, err = r.q.ExecContext(ctx, query, args...)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when creating conversation turn")
		return err
	}

	return nil
}

// GetRecentTurns returns the newest turns first; callers reverse the slice
// when they need chronological order.
func (r *turnRepository) GetRecentTurns(ctx context.Context, clientID, userPhone string, limit int) ([]entity.ConversationTurn, error) {
	requestID := contextPkg.GetRequestID(ctx)
	var turnsList []ConversationTurnDB

	argsKV := map[string]interface{}{
		"client_id":  clientID,
		"user_phone": userPhone,
		"limit":      limit,
	}

	query, args, err := sqlx.Named(queryGetRecentTurns, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetRecentTurns named query preparation err")
		return nil, err
	}

	query = r.q.Rebind(query)

	if err := r.q.SelectContext(ctx, &turnsList, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetRecentTurns execution err")
		return nil, err
	}

	var turns []entity.ConversationTurn
	for _, turnDB := range turnsList {
		turns = append(turns, r.makeTurn(turnDB))
	}

	return turns, nil
}

func (r *turnRepository) GetHistory(ctx context.Context, clientID, userPhone string, limit, offset int) ([]entity.ConversationTurn, int, error) {
	requestID := contextPkg.GetRequestID(ctx)
	var turnsList []ConversationTurnDB
	var total int

	countArgsKV := map[string]interface{}{
		"client_id":  clientID,
		"user_phone": userPhone,
	}

	countQuery, countArgs, err := sqlx.Named(queryCountHistory, countArgsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("CountHistory named query preparation err")
		return nil, 0, err
	}

	countQuery = r.q.Rebind(countQuery)

	if err := r.q.QueryRowxContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("CountHistory execution err")
		return nil, 0, err
	}

	argsKV := map[string]interface{}{
		"client_id":  clientID,
		"user_phone": userPhone,
		"limit":      limit,
		"offset":     offset,
	}

	query, args, err := sqlx.Named(queryGetHistory, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetHistory named query preparation err")
		return nil, 0, err
	}

	query = r.q.Rebind(query)

	if err := r.q.SelectContext(ctx, &turnsList, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetHistory execution err")
		return nil, 0, err
	}

	var turns []entity.ConversationTurn
	for _, turnDB := range turnsList {
		turns = append(turns, r.makeTurn(turnDB))
	}

	return turns, total, nil
}

func (r *turnRepository) GetUnprocessedTurns(ctx context.Context, limit int) ([]entity.ConversationTurn, error) {
	requestID := contextPkg.GetRequestID(ctx)
	var turnsList []ConversationTurnDB

	argsKV := map[string]interface{}{
		"limit": limit,
	}

	query, args, err := sqlx.Named(queryGetUnprocessedTurns, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetUnprocessedTurns named query preparation err")
		return nil, err
	}

	query = r.q.Rebind(query)

	if err := r.q.SelectContext(ctx, &turnsList, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetUnprocessedTurns execution err")
		return nil, err
	}

	var turns []entity.ConversationTurn
	for _, turnDB := range turnsList {
		turns = append(turns, r.makeTurn(turnDB))
	}

	return turns, nil
}

func (r *turnRepository) MarkTurnProcessed(ctx context.Context, id string) error {
	requestID := contextPkg.GetRequestID(ctx)
	argsKV := map[string]interface{}{
		"id": id,
	}

	query, args, err := sqlx.Named(queryMarkTurnProcessed, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("MarkTurnProcessed named query preparation err")
		return err
	}

	query = r.q.Rebind(query)

	result, err := r.q.ExecContext(ctx, query, args...)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("MarkTurnProcessed execution err")
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("MarkTurnProcessed rows affected err")
		return err
	}

	if rowsAffected == 0 {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"id":         id,
		}).Warn("MarkTurnProcessed no rows affected")
		return conversation.ErrConversationNotFound
	}

	return nil
}

func (r *turnRepository) makeTurn(turnDB ConversationTurnDB) entity.ConversationTurn {
	var score *float64
	if turnDB.DecisionScore.Valid {
		v := turnDB.DecisionScore.Float64
		score = &v
	}

	return entity.ConversationTurn{
		ID:             turnDB.ID.String,
		ClientID:       turnDB.ClientID.String,
		UserPhone:      turnDB.UserPhone.String,
		ProfileName:    turnDB.ProfileName.String,
		Speaker:        turnDB.Speaker.String,
		Message:        turnDB.Message.String,
		Modality:       turnDB.Modality.String,
		AudioURL:       turnDB.AudioURL.String,
		DecisionReason: turnDB.DecisionReason.String,
		DecisionScore:  score,
		Processed:      turnDB.Processed.Bool,
		CreatedAt:      turnDB.CreatedAt,
	}
}
