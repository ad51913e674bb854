package ai

import (
	"context"
	"fmt"
	"strings"

	"careerbuddy/internal/domain"

	"github.com/rs/zerolog"
	openai "github.com/sashabaranov/go-openai"
)

const model = openai.GPT4oMini

// Client generates skill suggestions, summaries and resume rewrites. Premium
// users get a richer prompt; every path degrades to static content when the
// API is unreachable.
type Client struct {
	api *openai.Client
	log zerolog.Logger
}

func NewClient(apiKey string, log zerolog.Logger) *Client {
	var api *openai.Client
	if apiKey != "" {
		api = openai.NewClient(apiKey)
	}
	return &Client{api: api, log: log}
}

func (c *Client) complete(ctx context.Context, system, user string, maxTokens int) (string, error) {
	if c.api == nil {
		return "", fmt.Errorf("ai: no api key configured")
	}
	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     model,
		MaxTokens: maxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
	})
	if err != nil {
		return "", fmt.Errorf("ai completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("ai completion: empty response")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

func (c *Client) SuggestSkills(ctx context.Context, targetRole string, basics domain.Basics, experiences []domain.Experience, tier domain.Tier) ([]string, error) {
	system := "You are a career coach. Reply with exactly 10 skills, one per line, no numbering, no commentary. " +
		"Mix hard and soft skills relevant to the role."
	if tier == domain.TierPro {
		system = "You are a senior career coach for executive clients. Reply with exactly 10 skills, one per line, " +
			"no numbering, no commentary. Prefer skills that signal business impact and seniority for the role."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Target role: %s\n", targetRole)
	for _, exp := range experiences {
		fmt.Fprintf(&b, "Worked as %s at %s\n", exp.Role, exp.Company)
	}

	out, err := c.complete(ctx, system, b.String(), 300)
	if err != nil {
		c.log.Warn().Err(err).Str("role", targetRole).Msg("skill suggestion falling back")
		return FallbackSkills(targetRole), nil
	}

	var skills []string
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(strings.TrimLeft(line, "-•0123456789. "))
		if line != "" {
			skills = append(skills, line)
		}
	}
	if len(skills) == 0 {
		return FallbackSkills(targetRole), nil
	}
	if len(skills) > 10 {
		skills = skills[:10]
	}
	return skills, nil
}

func (c *Client) DraftSummary(ctx context.Context, ans *domain.Answers, tier domain.Tier) (string, error) {
	system := "You write professional resume summaries. Reply with a single paragraph of 2-3 sentences, " +
		"first person implied (no 'I'), ATS-friendly, no headers or quotes."
	if tier == domain.TierPro {
		system += " Emphasize quantified business impact and leadership."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Name: %s\nTarget role: %s\n", ans.Basics.Name, ans.TargetRole)
	if ans.PersonalTraits != "" {
		fmt.Fprintf(&b, "Self-description: %s\n", ans.PersonalTraits)
	}
	for _, exp := range ans.Experiences {
		fmt.Fprintf(&b, "Experience: %s at %s (%s to %s)\n", exp.Role, exp.Company, exp.Start, exp.End)
		for _, bullet := range exp.Bullets {
			fmt.Fprintf(&b, "  - %s\n", bullet)
		}
	}
	if len(ans.Skills) > 0 {
		fmt.Fprintf(&b, "Skills: %s\n", strings.Join(ans.Skills, ", "))
	}

	return c.complete(ctx, system, b.String(), 250)
}

func (c *Client) Revamp(ctx context.Context, original string, tier domain.Tier) (string, error) {
	system := "You rewrite resumes. Keep every fact, improve wording with strong action verbs, " +
		"tighten structure into clear sections (Summary, Experience, Education, Skills), " +
		"and keep it ATS-friendly plain text. Reply with the rewritten resume only."
	if tier == domain.TierPro {
		system += " Surface quantified achievements prominently and sharpen each bullet around measurable impact."
	}

	// Very long resumes get truncated rather than rejected; the tail is
	// usually references and filler.
	if len(original) > 12000 {
		original = original[:12000]
	}

	return c.complete(ctx, system, original, 2000)
}
