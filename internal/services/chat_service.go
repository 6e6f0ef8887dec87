// internal/services/chat_service.go
package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/retailx/retailx-backend/internal/models"
	"github.com/retailx/retailx-backend/internal/query"
)

const noInventoryText = "No specific beauty products found for this query."

// Prompt is what the assistant answers: the shopper's message and the
// inventory it is allowed to recommend from.
type Prompt struct {
	Message   string
	Inventory string
}

// String renders the full instruction sent to a language model.
func (p Prompt) String() string {
	var b strings.Builder
	b.WriteString("You are the 'RetailX Beauty Expert'.\n")
	b.WriteString("Current Inventory Info:\n")
	b.WriteString(p.Inventory)
	b.WriteString("\n\nRULES:\n")
	b.WriteString("1. Always suggest products only from the inventory provided above.\n")
	b.WriteString("2. If a user has a specific skin concern (like acne, dry skin, etc.), match it with the 'Best for' section.\n")
	b.WriteString("3. If no products match, tell them we don't have that specific item but suggest the closest alternative from the inventory.\n")
	b.WriteString("4. Keep the conversation friendly, Hinglish (Hindi + English) is okay if the user uses it.\n")
	b.WriteString("User: ")
	b.WriteString(p.Message)
	return b.String()
}

type Assistant interface {
	Reply(ctx context.Context, prompt Prompt) (string, error)
}

// InventoryAssistant answers with the matching inventory alone. It stands
// in when no language model is configured.
type InventoryAssistant struct{}

func (InventoryAssistant) Reply(ctx context.Context, prompt Prompt) (string, error) {
	if prompt.Inventory == noInventoryText {
		return "We don't have that specific item right now. " + noInventoryText, nil
	}
	return "Here is what we have for you:\n" + prompt.Inventory, nil
}

type ChatService struct {
	products        *ProductService
	assistant       Assistant
	genericKeywords []string
}

// NewChatService falls back to query.DefaultGenericKeywords when
// genericKeywords is empty.
func NewChatService(products *ProductService, assistant Assistant, genericKeywords []string) *ChatService {
	if len(genericKeywords) == 0 {
		genericKeywords = query.DefaultGenericKeywords
	}
	if assistant == nil {
		assistant = InventoryAssistant{}
	}
	return &ChatService{
		products:        products,
		assistant:       assistant,
		genericKeywords: genericKeywords,
	}
}

// Reply answers a shopper's message from live inventory.
func (s *ChatService) Reply(ctx context.Context, message string) (string, error) {
	if strings.TrimSpace(message) == "" {
		return "", validationError("message is required")
	}

	products, err := s.products.ChatProducts(ctx, message, s.genericKeywords)
	if err != nil {
		return "", err
	}

	reply, err := s.assistant.Reply(ctx, Prompt{Message: message, Inventory: FormatInventory(products)})
	if err != nil {
		logrus.WithError(err).WithField("products", len(products)).Error("Assistant failed to reply")
		return "", fmt.Errorf("assistant error: %w", err)
	}
	return reply, nil
}

// FormatInventory renders products as the assistant's inventory context.
func FormatInventory(products []*models.ProductResponse) string {
	if len(products) == 0 {
		return noInventoryText
	}

	var b strings.Builder
	for _, p := range products {
		style := metadataString(p.AIMetadata, "style", "General")
		concern := metadataString(p.AIMetadata, "concern", "daily use")
		fmt.Fprintf(&b, "- %s (Brand: %s)\n", p.Name, p.Brand)
		fmt.Fprintf(&b, "  Price: ₹%s | Rating: %s⭐\n", formatNumber(p.FinalPrice), formatNumber(p.Rating))
		fmt.Fprintf(&b, "  Best for: %s and %s.\n", style, concern)
	}
	return b.String()
}

func metadataString(m map[string]interface{}, key, def string) string {
	if s, ok := m[key].(string); ok && s != "" {
		return s
	}
	return def
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
