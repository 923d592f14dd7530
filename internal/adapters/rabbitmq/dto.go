package rabbitmq

import (
	"time"

	"listing-service/internal/core/domain"
)

// translationRequestedEvent - тело сообщения content.translate
type translationRequestedEvent struct {
	RequestID   string            `json:"request_id"`
	Kind        string            `json:"kind"`
	ContentID   string            `json:"content_id"`
	SourceLang  string            `json:"source_lang"`
	TargetLangs []string          `json:"target_langs"`
	Fields      map[string]string `json:"fields"`
	RequestedAt string            `json:"requested_at"`
}

func newTranslationRequestedEvent(req domain.TranslationRequest) translationRequestedEvent {
	// Пустые поля переводить нечего
	fields := make(map[string]string, len(req.Fields))
	for k, v := range req.Fields {
		if v != "" {
			fields[k] = v
		}
	}
	return translationRequestedEvent{
		RequestID:   req.RequestID.String(),
		Kind:        string(req.Kind),
		ContentID:   req.ContentID,
		SourceLang:  req.SourceLang,
		TargetLangs: req.TargetLangs,
		Fields:      fields,
		RequestedAt: req.RequestedAt.UTC().Format(time.RFC3339Nano),
	}
}
