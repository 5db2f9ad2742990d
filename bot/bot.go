package bot

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
	"unicode/utf16"

	"github.com/agriassist/agriassist-llm-server/service"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Telegram rejects messages longer than this many UTF-16 code units.
const maxMessageLength = 4096

type Bot struct {
	API *tgbotapi.BotAPI
	S   service.Service
}

func New(token string, s service.Service) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("connecting telegram bot: %w", err)
	}
	log.Printf("Authorized on account %s", api.Self.UserName)
	return &Bot{API: api, S: s}, nil
}

// Start long-polls for updates until ctx is done. Each update is answered in
// its own goroutine so a slow model call does not hold up other chats.
func (b *Bot) Start(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.API.GetUpdatesChan(u)
	for {
		select {
		case <-ctx.Done():
			b.API.StopReceivingUpdates()
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			go b.handle(ctx, update)
		}
	}
}

func (b *Bot) handle(ctx context.Context, update tgbotapi.Update) {
	if update.CallbackQuery != nil {
		if _, err := b.API.Request(tgbotapi.NewCallback(update.CallbackQuery.ID, "")); err != nil {
			log.Printf("answer callback failed, error: %s\n", err.Error())
		}
	}
	msg, ok := b.Reply(ctx, update)
	if !ok {
		return
	}
	if _, err := b.API.Send(msg); err != nil {
		log.Printf("send message failed, chat: %d, error: %s\n", msg.ChatID, err.Error())
	}
}

// Reply builds the answer to update. ok is false for updates that need no
// answer.
func (b *Bot) Reply(ctx context.Context, update tgbotapi.Update) (msg tgbotapi.MessageConfig, ok bool) {
	if q := update.CallbackQuery; q != nil {
		if q.Message == nil || q.Message.Chat == nil {
			return msg, false
		}
		msg = tgbotapi.NewMessage(q.Message.Chat.ID, "")
		i, err := strconv.Atoi(strings.TrimPrefix(q.Data, examplePrefix))
		example, found := service.Example(i)
		if !strings.HasPrefix(q.Data, examplePrefix) || err != nil || !found {
			msg.Text = "Unknown example"
			return msg, true
		}
		msg.Text = b.generate(ctx, example)
		return msg, true
	}

	if update.Message == nil { // ignore non-Message updates
		return msg, false
	}
	// photos, stickers and join events carry no text to send upstream
	if strings.TrimSpace(update.Message.Text) == "" {
		return msg, false
	}
	msg = tgbotapi.NewMessage(update.Message.Chat.ID, "")
	msg.ReplyToMessageID = update.Message.MessageID

	if !update.Message.IsCommand() {
		msg.Text = b.generate(ctx, update.Message.Text)
		return msg, true
	}

	// Extract the command from the Message.
	switch update.Message.Command() {
	case "start", "help":
		p := b.S.Presentation()
		msg.Text = fmt.Sprintf("%s\n\n%s\n\nSend any message, or use /ask <prompt>. Try an example:", p.Title, p.Description)
		msg.ReplyMarkup = GetExampleButtons(p.Examples)
	case "ask":
		args := strings.TrimSpace(update.Message.CommandArguments())
		if args == "" {
			msg.Text = "Usage: /ask <prompt>"
		} else {
			msg.Text = b.generate(ctx, args)
		}
	default:
		msg.Text = "I don't know that command"
	}
	return msg, true
}

func (b *Bot) generate(ctx context.Context, prompt string) string {
	result := b.S.GenerateResponse(ctx, prompt, 0)
	text := result.Display()
	if text == "" {
		return "(empty response)"
	}
	return truncate(text, maxMessageLength)
}

// truncate caps s at n UTF-16 code units, the unit Telegram counts message
// length in.
func truncate(s string, n int) string {
	units := utf16.Encode([]rune(s))
	if len(units) <= n {
		return s
	}
	cut := units[:n-1]
	// don't split a surrogate pair
	if len(cut) > 0 && utf16.IsSurrogate(rune(cut[len(cut)-1])) && cut[len(cut)-1] < 0xDC00 {
		cut = cut[:len(cut)-1]
	}
	return string(utf16.Decode(cut)) + "…"
}
