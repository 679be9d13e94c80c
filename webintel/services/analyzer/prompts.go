package analyzer

import (
	"fmt"
	"strings"

	"webintel/webintel/types"
	utypes "webintel/webintel/utils/types"
)

const systemPrompt = "You are a helpful assistant that provides information in JSON format."

func enrichedContent(c *utypes.ExtractedContent) string {
	return fmt.Sprintf("Title: %s\nMeta Description: %s\nMeta Keywords: %s\n\nContent:\n%s",
		c.Title, c.MetaDescription, c.MetaKeywords, c.Content)
}

func analysisPrompt(c *utypes.ExtractedContent, url string) string {
	return fmt.Sprintf(`You are an expert business analyst. Analyze the following website content and extract key business information.

Website Content:
%s

Website URL: %s

Return the results as exactly one JSON object with the following structure:
%s

If an attribute cannot be determined from the content, use "Not found" for text fields, null for optional fields and a low confidence score.`,
		enrichedContent(c), url, businessSchema)
}

func searchAnswerPrompt(question string, company *types.BusinessDetails, results []utypes.SearchResult) string {
	var sb strings.Builder
	for i, r := range results {
		fmt.Fprintf(&sb, "[%d] %s\n%s\n%s\n\n", i+1, r.Title, r.Snippet, r.Link)
	}

	companyCtx := "Unknown company"
	if company != nil {
		companyCtx = company.Summary()
	}

	return fmt.Sprintf(`Answer the question about the company using the web search results below.

Company context:
%s
Question: %s

Search results:
%s
Return exactly one JSON object: {"answer": "<concise answer>", "confidence": <number between 0 and 1>}.
If the results do not contain the answer, say so in the answer and use a confidence below 0.3.`,
		companyCtx, question, sb.String())
}

func directQuestionPrompt(question string) string {
	return fmt.Sprintf(`Answer the following question.

Question: %s

Return exactly one JSON object: {"answer": "<answer>", "confidence": <number between 0 and 1>}.`, question)
}
