package conversationService

import (
	"UnicornGolang/internal/api/conversation"
	"UnicornGolang/internal/entity"
	"UnicornGolang/pkg/decision"
	chatGPT "UnicornGolang/pkg/openai"
	"context"
	"fmt"
	"strings"
)

// historyWindow is the number of prior turns fed to the completion model.
const historyWindow = 6

func buildSystemPrompt(client entity.Client) string {
	var b strings.Builder

	prompt := strings.TrimSpace(client.InitialPrompt)
	if prompt == "" {
		prompt = fmt.Sprintf("Eres el asistente de ventas de %s. Atiende a los clientes por WhatsApp de forma amable y profesional.", client.Name)
	}
	b.WriteString(prompt)

	if services := strings.TrimSpace(client.ServiceList); services != "" {
		b.WriteString("\n\nServicios disponibles:\n")
		b.WriteString(services)
	}

	b.WriteString("\n\nReglas:\n")
	b.WriteString("- Responde siempre en el idioma del cliente.\n")
	b.WriteString("- Respuestas breves, maximo 3 oraciones.\n")
	b.WriteString("- Nunca inventes precios ni servicios que no esten en la lista.\n")
	b.WriteString("- Si el cliente quiere agendar, pide fecha y hora preferida.")

	return b.String()
}

// buildCompletionHistory converts stored turns (newest first, as the
// repository returns them) into the chronological message window the
// completion models expect.
func buildCompletionHistory(turns []entity.ConversationTurn) []chatGPT.ConversationMessage {
	if len(turns) > historyWindow {
		turns = turns[:historyWindow]
	}

	messages := make([]chatGPT.ConversationMessage, 0, len(turns))
	for i := len(turns) - 1; i >= 0; i-- {
		role := "user"
		if turns[i].Speaker == string(decision.SpeakerBot) {
			role = "assistant"
		}
		messages = append(messages, chatGPT.ConversationMessage{
			Role:    role,
			Content: turns[i].Message,
		})
	}
	return messages
}

// decisionTurns maps stored turns into the engine's view of the recent
// conversation, chronological order.
func decisionTurns(turns []entity.ConversationTurn) []decision.Turn {
	out := make([]decision.Turn, 0, len(turns))
	for i := len(turns) - 1; i >= 0; i-- {
		out = append(out, decision.Turn{
			Speaker:   decision.Speaker(turns[i].Speaker),
			Text:      turns[i].Message,
			Modality:  decision.Modality(turns[i].Modality),
			Timestamp: turns[i].CreatedAt,
		})
	}
	return out
}

// Tier defaults for clients without explicit policy overrides.
var tierDefaults = map[string]struct {
	audioPreference float64
	maxVoicePerDay  int
}{
	entity.TierPremium:  {0.8, 20},
	entity.TierStandard: {0.5, 10},
	entity.TierBasic:    {0.2, 5},
}

func policyForClient(client entity.Client) decision.ClientPolicy {
	policy := decision.DefaultPolicy()

	if def, ok := tierDefaults[client.Tier]; ok {
		policy.AudioPreference = def.audioPreference
		policy.MaxVoicePerDay = def.maxVoicePerDay
	}

	switch client.ForcedModality {
	case "always":
		policy.ForcedModality = decision.ForcedAlwaysVoice
	case "never":
		policy.ForcedModality = decision.ForcedNeverVoice
	}

	if client.AudioPreference != nil {
		policy.AudioPreference = *client.AudioPreference
	}
	if client.MaxVoicePerDay != nil {
		policy.MaxVoicePerDay = *client.MaxVoicePerDay
	}
	if client.AudioHoursStart != nil && client.AudioHoursEnd != nil {
		policy.BusinessHours = &decision.HourWindow{
			Start: *client.AudioHoursStart,
			End:   *client.AudioHoursEnd,
		}
	}

	return policy
}

func (s *conversationService) GetHistory(ctx context.Context, clientID, userPhone string, page, limit int) (*conversation.HistoryResponse, error) {
	repoClient, err := s.repo.NewClient(false)
	if err != nil {
		return nil, err
	}

	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	offset := (page - 1) * limit

	if _, err := repoClient.Clients.GetClientByID(ctx, clientID); err != nil {
		return nil, err
	}

	turns, total, err := repoClient.Turns.GetHistory(ctx, clientID, userPhone, limit, offset)
	if err != nil {
		return nil, err
	}

	items := make([]conversation.HistoryItem, 0, len(turns))
	for _, turn := range turns {
		items = append(items, conversation.HistoryItem{
			ID:        turn.ID,
			Speaker:   turn.Speaker,
			Message:   turn.Message,
			Modality:  turn.Modality,
			AudioURL:  turn.AudioURL,
			Reason:    turn.DecisionReason,
			Score:     turn.DecisionScore,
			CreatedAt: turn.CreatedAt,
		})
	}

	return &conversation.HistoryResponse{
		ClientID: clientID,
		Phone:    userPhone,
		Turns:    items,
		Total:    total,
	}, nil
}
