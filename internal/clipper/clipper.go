// Package clipper imports recipes from web pages as catalog-shaped meals.
package clipper

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"meal-planner/internal/llm"
	"meal-planner/internal/planner"

	"github.com/PuerkitoBio/goquery"
)

// maxPageChars caps how much page text is sent to the model.
const maxPageChars = 8000

// Clipper handles fetching and extracting recipes from URLs.
type Clipper struct {
	textGen    llm.TextGenerator
	httpClient *http.Client
}

// NewClipper creates a new Clipper instance. textGen must not be nil,
// extraction is AI-driven.
func NewClipper(textGen llm.TextGenerator) *Clipper {
	return &Clipper{
		textGen:    textGen,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// ClipURL fetches the URL and extracts a structured meal from the page.
func (c *Clipper) ClipURL(ctx context.Context, url string) (*planner.Meal, error) {
	if c.textGen == nil {
		return nil, fmt.Errorf("recipe clipping requires an AI provider")
	}

	title, content, err := c.fetchPageText(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch content: %w", err)
	}

	prompt := fmt.Sprintf(`You are a recipe extraction expert. Extract the recipe from the following web page text.
Return the result strictly as a JSON object with this structure:
{
  "name": "Recipe Title",
  "description": "One sentence summary",
  "ingredients": ["2 cups flour", "1 tsp salt", ...],
  "instructions": ["Step 1 description", "Step 2 description", ...],
  "prepTime": "e.g. 30 minutes",
  "servings": 4,
  "difficulty": "Easy" | "Medium" | "Hard"
}

Page title: %s

Page text:
%s`, title, content)

	resp, err := c.textGen.GenerateContent(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("ai extraction failed: %w", err)
	}

	var meal planner.Meal
	if err := json.Unmarshal([]byte(resp.Content), &meal); err != nil {
		return nil, fmt.Errorf("failed to parse AI response: %w. Response: %s", err, resp.Content)
	}
	if meal.Name == "" || len(meal.Ingredients) == 0 {
		return nil, fmt.Errorf("page did not contain a usable recipe")
	}

	return &meal, nil
}

func (c *Clipper) fetchPageText(ctx context.Context, url string) (string, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", "", err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", "", fmt.Errorf("failed to fetch URL: status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", "", err
	}

	// Remove noise to save LLM tokens
	doc.Find("script, style, nav, footer, iframe, ads, .ads, #ads").Each(func(i int, s *goquery.Selection) {
		s.Remove()
	})

	title := strings.TrimSpace(doc.Find("title").First().Text())
	text := strings.Join(strings.Fields(doc.Find("body").Text()), " ")
	if len(text) > maxPageChars {
		text = text[:maxPageChars]
	}
	return title, text, nil
}
