package handlers

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

const welcomeText = `👋 Привет! Я Pixshop — фоторедактор на генеративном движке.

Пришлите фото с подписью, что нужно сделать: «убери фон», «сделай чёрно-белым», «добавь закат». Можно ответить на готовый результат новой инструкцией — я продолжу с него.

Команды:
/engines — выбрать движок обработки
/new — очистить историю
/redeem <код> — активировать код доступа`

func Start() bot.HandlerFunc {
	return func(ctx context.Context, b *bot.Bot, update *models.Update) {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID:          update.Message.Chat.ID,
			MessageThreadID: update.Message.MessageThreadID,
			Text:            welcomeText,
		})
	}
}
