package domain

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ContentKind - тип контента, который админка переводит с португальского.
type ContentKind string

const (
	ContentNewsletter  ContentKind = "newsletter"
	ContentPodcast     ContentKind = "podcast"
	ContentTestimonial ContentKind = "testimonial"
)

const SourceLang = "pt"

// TranslationTargets - языки, на которые переводится контент.
var TranslationTargets = []string{"en", "fr"}

// TranslationRequest - явная структура запроса на перевод вместо "мешка полей" из формы.
type TranslationRequest struct {
	RequestID   uuid.UUID
	Kind        ContentKind
	ContentID   string
	SourceLang  string
	TargetLangs []string
	Fields      map[string]string
	RequestedAt time.Time
}

// Normalize проставляет значения по умолчанию и проверяет запрос.
func (r *TranslationRequest) Normalize(now time.Time) error {
	switch r.Kind {
	case ContentNewsletter, ContentPodcast, ContentTestimonial:
	default:
		return fmt.Errorf("%w: unknown content kind %q", ErrInvalidTranslationRequest, r.Kind)
	}

	r.ContentID = strings.TrimSpace(r.ContentID)
	if r.ContentID == "" {
		return fmt.Errorf("%w: content id is required", ErrInvalidTranslationRequest)
	}

	if r.SourceLang == "" {
		r.SourceLang = SourceLang
	}
	if r.SourceLang != SourceLang {
		return fmt.Errorf("%w: only %q sources are translated", ErrInvalidTranslationRequest, SourceLang)
	}

	if len(r.TargetLangs) == 0 {
		r.TargetLangs = append([]string(nil), TranslationTargets...)
	}
	targets := make([]string, 0, len(r.TargetLangs))
	for _, lang := range r.TargetLangs {
		lang = strings.ToLower(strings.TrimSpace(lang))
		if !isTranslationTarget(lang) {
			return fmt.Errorf("%w: unsupported target language %q", ErrInvalidTranslationRequest, lang)
		}
		if !slices.Contains(targets, lang) {
			targets = append(targets, lang)
		}
	}
	r.TargetLangs = targets

	nonEmpty := 0
	for _, v := range r.Fields {
		if strings.TrimSpace(v) != "" {
			nonEmpty++
		}
	}
	if nonEmpty == 0 {
		return fmt.Errorf("%w: nothing to translate", ErrInvalidTranslationRequest)
	}

	if r.RequestID == uuid.Nil {
		r.RequestID = uuid.New()
	}
	if r.RequestedAt.IsZero() {
		r.RequestedAt = now.UTC()
	}
	return nil
}

func isTranslationTarget(lang string) bool {
	return slices.Contains(TranslationTargets, lang)
}
