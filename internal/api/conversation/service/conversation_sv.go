package conversationService

import (
	"UnicornGolang/internal/api/conversation"
	conversationRepository "UnicornGolang/internal/api/conversation/repository"
	"UnicornGolang/internal/entity"
	"UnicornGolang/pkg/audio"
	contextPkg "UnicornGolang/pkg/context"
	"UnicornGolang/pkg/decision"
	redisPkg "UnicornGolang/pkg/redis"
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	creditSnapshotTTL = time.Minute
	// Assumed balance when no credit checker is wired; keeps the credit
	// gate open for providers without a quota endpoint.
	unlimitedCredits = 1 << 20
)

func (s *conversationService) HandleIncomingMessage(ctx context.Context, req conversation.WebhookRequest) (*conversation.WebhookResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	if strings.TrimSpace(req.Body) == "" {
		return nil, conversation.ErrEmptyMessage
	}

	userPhone, err := s.utils.NormalizePhoneNumber(req.From)
	if err != nil {
		return nil, conversation.ErrInvalidPhoneNumber
	}
	clientPhone, err := s.utils.NormalizePhoneNumber(req.To)
	if err != nil {
		return nil, conversation.ErrInvalidPhoneNumber
	}

	repoClient, err := s.repo.NewClient(false)
	if err != nil {
		return nil, err
	}

	client, err := repoClient.Clients.GetClientByPhone(ctx, clientPhone)
	if err != nil {
		return nil, err
	}
	if !client.IsActive {
		return nil, conversation.ErrClientInactive
	}

	userTurnID, err := s.utils.NewULIDFromTimestamp(time.Now())
	if err != nil {
		return nil, err
	}

	userTurn := entity.ConversationTurn{
		ID:          userTurnID,
		ClientID:    client.ID,
		UserPhone:   userPhone,
		ProfileName: req.ProfileName,
		Speaker:     string(decision.SpeakerUser),
		Message:     req.Body,
		Modality:    string(decision.ModalityText),
		Processed:   false,
		CreatedAt:   time.Now(),
	}
	if err := repoClient.Turns.CreateTurn(ctx, userTurn); err != nil {
		return nil, err
	}

	resp, err := s.respond(ctx, repoClient, client, userTurn)
	if err != nil {
		return nil, err
	}

	if err := repoClient.Turns.MarkTurnProcessed(ctx, userTurnID); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"turn_id":    userTurnID,
			"error":      err.Error(),
		}).Error("Failed to mark user turn processed")
	}

	return resp, nil
}

// respond generates the reply, decides its modality, delivers it and
// records the bot turn. Shared by the webhook path and the pending worker.
func (s *conversationService) respond(
	ctx context.Context,
	repoClient conversationRepository.Client,
	client entity.Client,
	userTurn entity.ConversationTurn,
) (*conversation.WebhookResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	recent, err := repoClient.Turns.GetRecentTurns(ctx, client.ID, userTurn.UserPhone, historyWindow)
	if err != nil {
		return nil, err
	}
	// The freshly stored user turn must not appear in its own history.
	history := recent
	if len(history) > 0 && history[0].ID == userTurn.ID {
		history = history[1:]
	}

	replyText, err := s.completion.GenerateReply(ctx, buildSystemPrompt(client), buildCompletionHistory(history), userTurn.Message)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"client_id":  client.ID,
			"error":      err.Error(),
		}).Error("Completion provider failed")
		return nil, conversation.ErrReplyGeneration
	}

	creditsRemaining := s.creditsRemaining(ctx)

	usage, err := s.redis.GetVoiceUsage(ctx, client.ID, time.Now())
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"client_id":  client.ID,
			"error":      err.Error(),
		}).Warn("Voice usage lookup failed, treating as zero")
		usage = 0
	}

	result := s.engine.Decide(decision.Request{
		UserMessage:           userTurn.Message,
		CandidateReply:        replyText,
		Policy:                policyForClient(client),
		RecentTurns:           decisionTurns(history),
		VoiceCreditsRemaining: creditsRemaining,
		VoiceUsageToday:       usage,
		EvaluationTime:        time.Now(),
	})

	resp := &conversation.WebhookResponse{
		ReplyText: replyText,
		Modality:  string(result.Modality),
		Reason:    string(result.Reason),
		Score:     result.Score,
	}

	if result.UseVoice() {
		audioURL, fromCache, voiceErr := s.deliverVoice(ctx, client, userTurn.UserPhone, replyText, result)
		if voiceErr != nil {
			// Voice failures degrade to text; the customer always gets
			// an answer.
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"client_id":  client.ID,
				"error":      voiceErr.Error(),
			}).Warn("Voice delivery failed, falling back to text")
			result.Modality = decision.ModalityText
			resp.Modality = string(decision.ModalityText)
			resp.Reason = string(decision.ReasonError)
		} else {
			resp.AudioURL = audioURL
			resp.FromCache = fromCache
		}
	}

	if result.Modality == decision.ModalityText {
		if err := s.whatsapp.SendMessage(ctx, userTurn.UserPhone, replyText); err != nil {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"client_id":  client.ID,
				"error":      err.Error(),
			}).Error("Text delivery failed")
			return nil, conversation.ErrDeliveryFailed
		}
	}

	botTurnID, err := s.utils.NewULIDFromTimestamp(time.Now())
	if err != nil {
		return nil, err
	}
	botTurn := entity.ConversationTurn{
		ID:             botTurnID,
		ClientID:       client.ID,
		UserPhone:      userTurn.UserPhone,
		ProfileName:    userTurn.ProfileName,
		Speaker:        string(decision.SpeakerBot),
		Message:        replyText,
		Modality:       resp.Modality,
		AudioURL:       resp.AudioURL,
		DecisionReason: resp.Reason,
		DecisionScore:  resp.Score,
		Processed:      true,
		CreatedAt:      time.Now(),
	}
	if err := repoClient.Turns.CreateTurn(ctx, botTurn); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"client_id":  client.ID,
			"error":      err.Error(),
		}).Error("Failed to record bot turn")
	}

	return resp, nil
}

func (s *conversationService) deliverVoice(
	ctx context.Context,
	client entity.Client,
	userPhone, replyText string,
	result decision.Result,
) (string, bool, error) {
	var factors []string
	if result.Breakdown != nil {
		factors = result.Breakdown.Factors
	}
	messageType := audio.MessageTypeFromFactors(factors)

	voiceID := audio.SelectVoice(client.VoicePreference, messageType)
	settings := audio.OptimizeSettings(messageType)

	synth, err := s.audioManager.Synthesize(ctx, replyText, voiceID, settings)
	if err != nil {
		return "", false, err
	}

	location, err := s.s3Client.UploadAudio(client.ID+".mp3", synth.Audio)
	if err != nil {
		return "", false, err
	}

	audioURL, err := s.s3Client.PresignUrl(location)
	if err != nil {
		return "", false, err
	}

	if err := s.whatsapp.SendVoiceNote(ctx, userPhone, synth.Audio); err != nil {
		return "", false, err
	}

	if _, err := s.redis.IncrVoiceUsage(ctx, client.ID, time.Now()); err != nil {
		s.log.WithFields(logrus.Fields{
			"client_id": client.ID,
			"error":     err.Error(),
		}).Warn("Failed to increment voice usage counter")
	}

	return audioURL, synth.FromCache, nil
}

// creditsRemaining resolves the synthesis balance: redis snapshot first,
// then the provider account endpoint, refreshing the snapshot on the way.
func (s *conversationService) creditsRemaining(ctx context.Context) int {
	if s.credits == nil {
		return unlimitedCredits
	}

	remaining, err := s.redis.GetCreditSnapshot(ctx)
	if err == nil {
		return remaining
	}
	if !errors.Is(err, redisPkg.ErrSnapshotMissing) {
		s.log.WithFields(logrus.Fields{"error": err.Error()}).Warn("Credit snapshot lookup failed")
	}

	status, err := s.credits.CheckCredits(ctx)
	if err != nil {
		s.log.WithFields(logrus.Fields{"error": err.Error()}).Warn("Credit check failed, assuming no credits")
		return 0
	}

	if err := s.redis.SetCreditSnapshot(ctx, status.Remaining, creditSnapshotTTL); err != nil {
		s.log.WithFields(logrus.Fields{"error": err.Error()}).Warn("Failed to store credit snapshot")
	}

	return status.Remaining
}
