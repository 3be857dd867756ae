package telegram

import (
	"fmt"
	"strings"

	"go-gig-router/internal/models"
	"go-gig-router/internal/state"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const (
	showMorePrefix = "show:"

	// Telegram caps message text at 4096 characters and callback data at
	// 64 bytes.
	maxMessageRunes  = 4096
	maxCallbackBytes = 64
)

func formatPosting(category models.Category, p models.Posting) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s <b>%s</b>\n\n", category.Emoji(), escape(p.Title))
	fmt.Fprintf(&sb, "💰 Price: %s\n", escape(orNotSpecified(p.Price)))
	fmt.Fprintf(&sb, "📨 Proposals: %s\n", escape(orNotSpecified(p.ProposalCount)))
	fmt.Fprintf(&sb, "🆔 Job ID: <code>%s</code>", escape(p.ShortID()))
	return sb.String()
}

// expandPosting appends the full description to the text of an already
// posted message. The result stays under the message size limit.
func expandPosting(header, description string) string {
	head := escape(header) + "\n\n<pre>"
	const tail = "</pre>"

	budget := maxMessageRunes - len([]rune(head)) - len(tail)
	return head + escape(truncateRunes(description, budget)) + tail
}

// postingKeyboard builds the buttons under a posting. The second result is
// false when there is nothing to show.
func postingKeyboard(p models.Posting, withShowMore bool) (tgbotapi.InlineKeyboardMarkup, bool) {
	var row []tgbotapi.InlineKeyboardButton
	if data := showMorePrefix + p.ID; withShowMore && p.ID != "" && len(data) <= maxCallbackBytes {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData("📄 Show More", data))
	}
	if p.URL != "" {
		row = append(row, tgbotapi.NewInlineKeyboardButtonURL("🔗 View Job", p.URL))
	}
	if len(row) == 0 {
		return tgbotapi.InlineKeyboardMarkup{}, false
	}
	return tgbotapi.NewInlineKeyboardMarkup(row), true
}

func formatStatus(snap state.Snapshot, channels map[models.Category]int64) string {
	var sb strings.Builder
	sb.WriteString("Bot Status\n")
	fmt.Fprintf(&sb, "Uptime: %s\n", snap.Uptime)
	last := snap.LastJobTitle
	if last == "" {
		last = "None"
	}
	fmt.Fprintf(&sb, "Last job check: %s\n", last)
	fmt.Fprintf(&sb, "Cycles: %d | Sent: %d | Rejected: %d | Failed: %d\n\n",
		snap.Stats.Cycles, snap.Stats.Dispatched, snap.Stats.Rejected, snap.Stats.Failed)

	sb.WriteString("Channel Configuration\n")
	for _, c := range models.Categories {
		if id, ok := channels[c]; ok {
			fmt.Fprintf(&sb, "✅ %s: %d\n", c, id)
		} else {
			fmt.Fprintf(&sb, "❌ %s: not configured\n", c)
		}
	}
	return strings.TrimRight(sb.String(), "\n")
}

func escape(s string) string {
	return tgbotapi.EscapeText(tgbotapi.ModeHTML, s)
}

func orNotSpecified(s string) string {
	if s == "" {
		return "Not specified"
	}
	return s
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if n <= 0 {
		return ""
	}
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
