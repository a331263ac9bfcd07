package service

import (
	"context"
	"encoding/json"
	"strings"

	"shopcaster/internal/common"
	"shopcaster/internal/platform/gemini"
)

// PostService drafts social-media post candidates for a scraped product via
// the external generation API. Drafts are returned to the caller and never
// persisted.
type PostService struct {
	products *ProductService
	gemini   *gemini.Client
}

func NewPostService(products *ProductService, geminiClient *gemini.Client) *PostService {
	return &PostService{
		products: products,
		gemini:   geminiClient,
	}
}

type Post struct {
	Title     string `json:"title"`
	Body      string `json:"body"`
	Subreddit string `json:"subreddit"`
}

func (s *PostService) Generate(ctx context.Context, userID, productID int64, style string) ([]Post, error) {
	product, err := s.products.GetOwned(ctx, userID, productID)
	if err != nil {
		return nil, err
	}

	if s.gemini.APIKey == "" {
		return nil, common.Errorf("generation API key is not configured: %w", common.ErrConfiguration)
	}

	prompt := buildPostPrompt(product, normalizeStyle(style))

	raw, err := s.gemini.GenerateContent(ctx, prompt)
	if err != nil {
		return nil, common.Errorf("failed to generate posts: %w (%v)", common.ErrGeneration, err)
	}

	return parsePosts(raw)
}

// parsePosts extracts the post list from the model's reply. The reply is
// expected to be a JSON object, possibly wrapped in a Markdown code fence; a
// reply that is not a JSON object at all is an error, while an object with a
// missing or malformed posts array degrades to an empty list.
func parsePosts(raw string) ([]Post, error) {
	cleaned := stripCodeFence(raw)

	var doc map[string]json.RawMessage
	if err := json.Unmarshal([]byte(cleaned), &doc); err != nil {
		return nil, common.Errorf("generation API did not return valid JSON: %w", common.ErrGeneration)
	}

	posts := []Post{}
	if rawPosts, ok := doc["posts"]; ok {
		var decoded []Post
		if err := json.Unmarshal(rawPosts, &decoded); err == nil && decoded != nil {
			posts = decoded
		}
	}
	return posts, nil
}

// stripCodeFence removes a surrounding Markdown fence (``` or ```json) if
// present.
func stripCodeFence(raw string) string {
	cleaned := strings.TrimSpace(raw)
	if strings.HasPrefix(cleaned, "```") {
		if i := strings.IndexByte(cleaned, '\n'); i >= 0 {
			cleaned = cleaned[i+1:]
		}
	}
	if strings.HasSuffix(cleaned, "```") {
		if i := strings.LastIndex(cleaned, "```"); i >= 0 {
			cleaned = strings.TrimSpace(cleaned[:i])
		}
	}
	return cleaned
}
