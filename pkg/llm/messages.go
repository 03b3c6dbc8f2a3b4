package llm

import (
	"fmt"

	"github.com/pixshop/bot/pkg/domain"
	"github.com/pixshop/bot/pkg/gemini"
)

// userMessage maps the final classified failure to the chat message shown to
// the user. Deterministic for identical inputs; raw provider errors never
// reach the chat.
func userMessage(kind gemini.ErrorKind, engine domain.Engine) string {
	switch kind {
	case gemini.KindSafetyBlocked:
		return "🚫 Запрос отклонён политикой безопасности контента. Измените изображение или формулировку."
	case gemini.KindInvalidRequest:
		return "❌ Изображение или формат запроса не поддерживается. Попробуйте другое фото (JPEG или PNG)."
	case gemini.KindUnavailable:
		return "☁️ Не удалось связаться с облаком: все резервные ключи исчерпаны. Попробуйте позже."
	case gemini.KindEmptyResponse:
		return fmt.Sprintf("🤔 Движок «%s» не справился именно с этим запросом. Переформулируйте задачу или выберите другой движок: /engines", engine.DisplayName())
	default:
		return fmt.Sprintf("❌ Критический сбой движка «%s». Попробуйте ещё раз.", engine.DisplayName())
	}
}
