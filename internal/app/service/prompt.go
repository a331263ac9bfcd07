package service

import (
	"encoding/json"
	"fmt"
	"strings"

	"shopcaster/internal/domain/model"

	"github.com/PuerkitoBio/goquery"
)

const (
	StyleDefault  = "default"
	StyleReview   = "review"
	StyleQuestion = "question"
	StyleStory    = "story"
)

var styleInstructions = map[string]string{
	StyleDefault:  "Use a mix of light review and discussion tone that feels natural for Reddit.",
	StyleReview:   "Focus on a personal review tone, like the user has actually tried the product and is sharing pros, cons, and honest thoughts.",
	StyleQuestion: "Focus on asking questions, seeking advice, and starting discussion. Make the user sound curious and open to replies.",
	StyleStory:    "Use a storytelling tone, where the user explains their situation, context, or journey and how this product fits into it.",
}

// normalizeStyle folds unrecognized or absent style selectors into the
// default.
func normalizeStyle(style string) string {
	if _, ok := styleInstructions[style]; ok {
		return style
	}
	return StyleDefault
}

// buildPostPrompt assembles the generation instruction from the product's
// scraped fields and the requested tone.
func buildPostPrompt(product *model.Product, style string) string {
	var b strings.Builder

	b.WriteString("You are an expert Reddit marketer.\n\n")
	b.WriteString("Write 3 different Reddit post ideas promoting this product in a natural, non-spammy way.\n\n")
	fmt.Fprintf(&b, "Reddit post style preference:\n%s -> %s\n\n", style, styleInstructions[style])
	b.WriteString("Return ONLY valid JSON in this exact format:\n\n")
	b.WriteString(`{
  "posts": [
    { "title": "string", "body": "string", "subreddit": "string" },
    { "title": "string", "body": "string", "subreddit": "string" },
    { "title": "string", "body": "string", "subreddit": "string" }
  ]
}`)
	b.WriteString("\n\nProduct info (use this to make the posts specific and helpful):\n\n")
	fmt.Fprintf(&b, "- Title: %s\n", orNA(product.Title))
	fmt.Fprintf(&b, "- Vendor / Brand: %s\n", orNA(product.Vendor))
	fmt.Fprintf(&b, "- Type: %s\n", orNA(product.ProductType))
	fmt.Fprintf(&b, "- Price: %s\n", orNA(product.Price))
	fmt.Fprintf(&b, "- URL: %s\n\n", product.URL)

	description := "N/A"
	if product.Description != nil {
		if stripped := stripHTML(*product.Description); stripped != "" {
			description = stripped
		}
	}
	fmt.Fprintf(&b, "Description:\n%s\n\n", description)
	fmt.Fprintf(&b, "Variants (JSON):\n%s\n\n", prettyJSON(product.Variants, len(product.Variants) == 0))
	fmt.Fprintf(&b, "Options (JSON):\n%s\n\n", prettyJSON(product.Options, len(product.Options) == 0))

	b.WriteString("Make the posts sound like a real Reddit user in that style.\n")
	b.WriteString("Avoid being too salesy. Vary the angle between posts.")

	return b.String()
}

// stripHTML reduces stored rich-text markup to its text content.
func stripHTML(s string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return strings.TrimSpace(s)
	}
	return strings.TrimSpace(doc.Text())
}

func prettyJSON(v interface{}, empty bool) string {
	if empty {
		return "N/A"
	}
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "N/A"
	}
	return string(b)
}

func orNA(s *string) string {
	if s == nil || *s == "" {
		return "N/A"
	}
	return *s
}
