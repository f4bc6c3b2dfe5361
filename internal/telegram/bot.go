// Package telegram exposes the planner through a webhook-driven bot.
package telegram

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"meal-planner/internal/app"
	"meal-planner/internal/config"
	"meal-planner/internal/dates"
	"meal-planner/internal/planner"
	"meal-planner/internal/shopping"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Bot wraps the Telegram API and the application services.
type Bot struct {
	api *tgbotapi.BotAPI
	app *app.App
	cfg *config.Config
}

// NewBot initializes the Telegram Bot and sets the Webhook.
func NewBot(cfg *config.Config, application *app.App) (*Bot, error) {
	bot, err := tgbotapi.NewBotAPI(cfg.TelegramBotToken)
	if err != nil {
		return nil, fmt.Errorf("failed to init telegram api: %w", err)
	}

	log.Printf("Authorized on account %s", bot.Self.UserName)

	wh, _ := tgbotapi.NewWebhook(cfg.TelegramWebhookURL)
	resp, err := bot.Request(wh)
	if err != nil {
		return nil, fmt.Errorf("failed to set webhook to %s: %w", cfg.TelegramWebhookURL, err)
	}
	log.Printf("Webhook set response: %s", resp.Description)

	return &Bot{
		api: bot,
		app: application,
		cfg: cfg,
	}, nil
}

// RegisterHandlers registers the webhook handler with the default HTTP mux.
func (b *Bot) RegisterHandlers() {
	http.HandleFunc("/webhook", b.handleWebhook)
	http.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
}

func (b *Bot) handleWebhook(w http.ResponseWriter, r *http.Request) {
	update, err := b.api.HandleUpdate(r)
	if err != nil {
		log.Printf("Error parsing update: %v", err)
		return
	}

	if update.Message == nil {
		return
	}

	if !b.cfg.AllowsTelegramUser(update.Message.From.ID) {
		log.Printf("⚠️ Unauthorized access attempt from UserID: %d (@%s)", update.Message.From.ID, update.Message.From.UserName)
		return
	}

	go b.processMessage(update.Message)
}

func (b *Bot) processMessage(msg *tgbotapi.Message) {
	text := strings.TrimSpace(msg.Text)

	switch {
	case text == "/metrics":
		b.handleMetricsRequest(msg)
	case text == "/shopping":
		b.handleShoppingRequest(msg)
	case text == "/plan":
		b.handleShowPlanRequest(msg)
	case text == "/export":
		b.handleExportRequest(msg)
	case strings.HasPrefix(text, "http://") || strings.HasPrefix(text, "https://"):
		b.handleClipperRequest(msg)
	default:
		b.handlePlannerRequest(msg)
	}
}

func (b *Bot) handleMetricsRequest(msg *tgbotapi.Message) {
	if msg.From.ID != b.cfg.TelegramAdminID {
		b.send(tgbotapi.NewMessage(msg.Chat.ID, "⛔ *Access Denied*: Admin only."))
		return
	}

	usage, health, err := b.app.UsageReport(7)
	if err != nil {
		b.send(tgbotapi.NewMessage(msg.Chat.ID, "❌ Error fetching metrics."))
		return
	}

	var sb strings.Builder
	sb.WriteString("📊 *Usage & Health Report*\n\n")

	sb.WriteString("🗓 *Recent Generations*\n")
	if len(usage) == 0 {
		sb.WriteString("_No data yet_\n")
	}
	for _, d := range usage {
		sb.WriteString(fmt.Sprintf("• *%s*: %d plans (%d via AI, avg %d ms)\n", d.Date, d.Generations, d.AIGenerated, d.AvgLatencyMS))
	}

	sb.WriteString("\n🧠 *System Health*\n")
	sb.WriteString(fmt.Sprintf("• RAM: %dMB (Alloc) / %dMB (Sys)\n", health.AllocMB, health.SysMB))
	sb.WriteString(fmt.Sprintf("• Goroutines: %d\n", health.Goroutines))
	sb.WriteString(fmt.Sprintf("• Disk Data: %s\n", health.DataSize))

	b.send(tgbotapi.NewMessage(msg.Chat.ID, sb.String()))
}

func (b *Bot) handleShoppingRequest(msg *tgbotapi.Message) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	items, err := b.app.ShoppingList(ctx, telegramUserID(msg))
	if err != nil {
		b.sendError(msg.Chat.ID, "building shopping list", err)
		return
	}
	b.send(tgbotapi.NewMessage(msg.Chat.ID, formatShoppingMarkdown(items)))
}

func (b *Bot) handleShowPlanRequest(msg *tgbotapi.Message) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	plan, err := b.app.CurrentPlan(ctx, telegramUserID(msg))
	if err != nil {
		b.sendError(msg.Chat.ID, "loading plan", err)
		return
	}
	if plan == nil {
		b.send(tgbotapi.NewMessage(msg.Chat.ID, "No current plan yet. Send me a message like \"plan my week\" to get one."))
		return
	}
	b.send(tgbotapi.NewMessage(msg.Chat.ID, formatPlanMarkdown(*plan)))
}

func (b *Bot) handleExportRequest(msg *tgbotapi.Message) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	payload, filename, err := b.app.ExportPlan(ctx, telegramUserID(msg))
	if err != nil {
		b.sendError(msg.Chat.ID, "exporting plan", err)
		return
	}

	doc := tgbotapi.NewDocument(msg.Chat.ID, tgbotapi.FileBytes{
		Name:  filename,
		Bytes: []byte(payload),
	})
	if _, err := b.api.Send(doc); err != nil {
		log.Printf("Failed to send export document: %v", err)
	}
}

func (b *Bot) handleClipperRequest(msg *tgbotapi.Message) {
	sentMsg, ok := b.sendStatus(msg.Chat.ID, "✂️ *Clipping recipe...*")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	meal, err := b.app.ClipRecipe(ctx, msg.Text)
	var finalText string
	if err != nil {
		log.Printf("Error clipping recipe: %v", err)
		safeErr := strings.ReplaceAll(err.Error(), "`", "'")
		finalText = fmt.Sprintf("❌ *Error clipping recipe:*\n```\n%v\n```", safeErr)
	} else {
		var sb strings.Builder
		sb.WriteString(fmt.Sprintf("✅ *%s*\n", meal.Name))
		if meal.Description != "" {
			sb.WriteString(fmt.Sprintf("_%s_\n", meal.Description))
		}
		sb.WriteString("\n*Ingredients:*\n")
		for _, ing := range meal.Ingredients {
			sb.WriteString(fmt.Sprintf("• %s\n", ing))
		}
		sb.WriteString("\nReply e.g. `swap Monday dinner` in the app to use it.")
		finalText = sb.String()
	}
	b.editStatus(msg.Chat.ID, sentMsg.MessageID, finalText)
}

func (b *Bot) handlePlannerRequest(msg *tgbotapi.Message) {
	sentMsg, ok := b.sendStatus(msg.Chat.ID, "🧑‍🍳 *Thinking...* \n(Generating your weekly plan)")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	log.Printf("Generating plan for request: %s", msg.Text)

	plan, _, err := b.app.GeneratePlan(ctx, telegramUserID(msg), planner.MealPlanRequest{
		SpecialRequests: msg.Text,
	})
	if err != nil {
		log.Printf("Error generating plan: %v", err)
		safeErr := strings.ReplaceAll(err.Error(), "`", "'")
		b.editStatus(msg.Chat.ID, sentMsg.MessageID, fmt.Sprintf("❌ *Error generating plan:*\n```\n%v\n```", safeErr))
		return
	}

	b.editStatus(msg.Chat.ID, sentMsg.MessageID, formatPlanMarkdown(plan))

	// Second message with the Shopping List
	b.send(tgbotapi.NewMessage(msg.Chat.ID, formatShoppingMarkdown(shopping.BuildList(plan))))
}

func formatPlanMarkdown(plan planner.MealPlan) string {
	var sb strings.Builder
	sb.WriteString("📅 *Weekly Meal Plan*\n")
	sb.WriteString(fmt.Sprintf("_Week of %s_\n\n", plan.WeekOf.Format("January 2, 2006")))

	for i, day := range dates.WeekDaysFrom(plan.WeekOf) {
		dayMeals, ok := plan.Meals[day]
		if !ok {
			continue
		}
		sb.WriteString(fmt.Sprintf("*%s* (%s)\n", day, dates.DateForDay(plan.WeekOf, i).Format("Jan 2")))
		for _, slot := range planner.Slots() {
			meal := dayMeals.Meal(slot)
			sb.WriteString(fmt.Sprintf("• %s: %s", slotLabel(slot), meal.Name))
			if meal.PrepTime != "" {
				sb.WriteString(fmt.Sprintf(" (%s)", meal.PrepTime))
			}
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func formatShoppingMarkdown(items []shopping.Item) string {
	var sb strings.Builder
	sb.WriteString("🛒 *Shopping List*\n")

	var last shopping.Category
	for _, item := range items {
		if item.Category != last {
			sb.WriteString(fmt.Sprintf("\n*%s*\n", item.Category))
			last = item.Category
		}
		sb.WriteString(fmt.Sprintf("• %s\n", item.Name))
	}
	if len(items) == 0 {
		sb.WriteString("_Empty_\n")
	}
	return sb.String()
}

func slotLabel(slot planner.Slot) string {
	s := string(slot)
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func telegramUserID(msg *tgbotapi.Message) string {
	return strconv.FormatInt(msg.From.ID, 10)
}

func (b *Bot) send(msg tgbotapi.MessageConfig) {
	msg.ParseMode = "Markdown"
	if _, err := b.api.Send(msg); err != nil {
		log.Printf("Failed to send message: %v", err)
	}
}

func (b *Bot) sendStatus(chatID int64, text string) (tgbotapi.Message, bool) {
	replyMsg := tgbotapi.NewMessage(chatID, text)
	replyMsg.ParseMode = "Markdown"
	sentMsg, err := b.api.Send(replyMsg)
	if err != nil {
		log.Printf("Failed to send initial reply: %v", err)
		return tgbotapi.Message{}, false
	}
	return sentMsg, true
}

func (b *Bot) editStatus(chatID int64, messageID int, text string) {
	edit := tgbotapi.NewEditMessageText(chatID, messageID, text)
	edit.ParseMode = "Markdown"
	if _, err := b.api.Send(edit); err != nil {
		log.Printf("Failed to edit message: %v", err)
	}
}

func (b *Bot) sendError(chatID int64, action string, err error) {
	safeErr := strings.ReplaceAll(err.Error(), "`", "'")
	b.send(tgbotapi.NewMessage(chatID, fmt.Sprintf("❌ *Error %s:*\n```\n%v\n```", action, safeErr)))
}
