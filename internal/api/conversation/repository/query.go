package conversationRepository

const (
	queryCreateTurn = `
		INSERT INTO conversation_turns (
			id, client_id, user_phone, profile_name, speaker,
			message, modality, audio_url, decision_reason, decision_score,
			processed, created_at
		) VALUES (
			:id, :client_id, :user_phone, :profile_name, :speaker,
			:message, :modality, :audio_url, :decision_reason, :decision_score,
			:processed, :created_at
		)
	`

	queryGetRecentTurns = `
		SELECT
			id, client_id, user_phone, profile_name, speaker,
			message, modality, audio_url, decision_reason, decision_score,
			processed, created_at
		FROM conversation_turns
		WHERE client_id = :client_id AND user_phone = :user_phone
		ORDER BY created_at DESC
		LIMIT :limit
	`

	queryGetHistory = `
		SELECT
			id, client_id, user_phone, profile_name, speaker,
			message, modality, audio_url, decision_reason, decision_score,
			processed, created_at
		FROM conversation_turns
		WHERE client_id = :client_id AND user_phone = :user_phone
		ORDER BY created_at DESC
		LIMIT :limit OFFSET :offset
	`

	queryCountHistory = `
		SELECT COUNT(*)
		FROM conversation_turns
		WHERE client_id = :client_id AND user_phone = :user_phone
	`

	queryGetUnprocessedTurns = `
		SELECT
			id, client_id, user_phone, profile_name, speaker,
			message, modality, audio_url, decision_reason, decision_score,
			processed, created_at
		FROM conversation_turns
		WHERE speaker = 'user' AND processed = false
		ORDER BY created_at ASC
		LIMIT :limit
	`

	queryMarkTurnProcessed = `
		UPDATE conversation_turns
		SET processed = true
		WHERE id = :id
	`

	queryGetClientByPhone = `
		SELECT
			id, name, phone_number, tier, forced_modality,
			audio_preference, max_voice_per_day, audio_hours_start, audio_hours_end,
			voice_preference, initial_prompt, service_list, is_active,
			created_at, updated_at
		FROM clients
		WHERE phone_number = :phone_number
	`

	queryGetClientByID = `
		SELECT
			id, name, phone_number, tier, forced_modality,
			audio_preference, max_voice_per_day, audio_hours_start, audio_hours_end,
			voice_preference, initial_prompt, service_list, is_active,
			created_at, updated_at
		FROM clients
		WHERE id = :id
	`
)
