package conversationRepository

import (
	"UnicornGolang/internal/api/conversation"
	"UnicornGolang/internal/entity"
	contextPkg "UnicornGolang/pkg/context"
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

type ClientDB struct {
	ID              sql.NullString  `db:"id"`
	Name            sql.NullString  `db:"name"`
	PhoneNumber     sql.NullString  `db:"phone_number"`
	Tier            sql.NullString  `db:"tier"`
	ForcedModality  sql.NullString  `db:"forced_modality"`
	AudioPreference sql.NullFloat64 `db:"audio_preference"`
	MaxVoicePerDay  sql.NullInt64   `db:"max_voice_per_day"`
	AudioHoursStart sql.NullInt64   `db:"audio_hours_start"`
	AudioHoursEnd   sql.NullInt64   `db:"audio_hours_end"`
	VoicePreference sql.NullString  `db:"voice_preference"`
	InitialPrompt   sql.NullString  `db:"initial_prompt"`
	ServiceList     sql.NullString  `db:"service_list"`
	IsActive        sql.NullBool    `db:"is_active"`
	CreatedAt       time.Time       `db:"created_at"`
	UpdatedAt       time.Time       `db:"updated_at"`
}

func (r *clientRepository) GetClientByPhone(ctx context.Context, phoneNumber string) (entity.Client, error) {
	requestID := contextPkg.GetRequestID(ctx)
	var clientDB ClientDB

	argsKV := map[string]interface{}{
		"phone_number": phoneNumber,
	}

	query, args, err := sqlx.Named(queryGetClientByPhone, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetClientByPhone named query preparation err")
		return entity.Client{}, err
	}

	query = r.q.Rebind(query)

	if err := r.q.QueryRowxContext(ctx, query, args...).StructScan(&clientDB); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"phone":      phoneNumber,
			}).Warn("GetClientByPhone no rows found")
			return entity.Client{}, conversation.ErrClientNotFound
		}
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetClientByPhone execution err")
		return entity.Client{}, err
	}

	return r.makeClient(clientDB), nil
}

func (r *clientRepository) GetClientByID(ctx context.Context, id string) (entity.Client, error) {
	requestID := contextPkg.GetRequestID(ctx)
	var clientDB ClientDB

	argsKV := map[string]interface{}{
		"id": id,
	}

	query, args, err := sqlx.Named(queryGetClientByID, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetClientByID named query preparation err")
		return entity.Client{}, err
	}

	query = r.q.Rebind(query)

	if err := r.q.QueryRowxContext(ctx, query, args...).StructScan(&clientDB); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"id":         id,
			}).Warn("GetClientByID no rows found")
			return entity.Client{}, conversation.ErrClientNotFound
		}
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetClientByID execution err")
		return entity.Client{}, err
	}

	return r.makeClient(clientDB), nil
}

func (r *clientRepository) makeClient(clientDB ClientDB) entity.Client {
	client := entity.Client{
		ID:              clientDB.ID.String,
		Name:            clientDB.Name.String,
		PhoneNumber:     clientDB.PhoneNumber.String,
		Tier:            clientDB.Tier.String,
		ForcedModality:  clientDB.ForcedModality.String,
		VoicePreference: clientDB.VoicePreference.String,
		InitialPrompt:   clientDB.InitialPrompt.String,
		ServiceList:     clientDB.ServiceList.String,
		IsActive:        clientDB.IsActive.Bool,
		CreatedAt:       clientDB.CreatedAt,
		UpdatedAt:       clientDB.UpdatedAt,
	}

	if clientDB.AudioPreference.Valid {
		v := clientDB.AudioPreference.Float64
		client.AudioPreference = &v
	}
	if clientDB.MaxVoicePerDay.Valid {
		v := int(clientDB.MaxVoicePerDay.Int64)
		client.MaxVoicePerDay = &v
	}
	if clientDB.AudioHoursStart.Valid {
		v := int(clientDB.AudioHoursStart.Int64)
		client.AudioHoursStart = &v
	}
	if clientDB.AudioHoursEnd.Valid {
		v := int(clientDB.AudioHoursEnd.Int64)
		client.AudioHoursEnd = &v
	}

	return client
}
