package analysis

import (
	"fmt"
	"strings"

	"github.com/poiesic/scopegate/core"
)

// Fixed literals returned without invoking the completion service.
const (
	NoAccessNarrative  = "No access to any data."
	NoMatchesNarrative = "No matching results found."
	NothingToAnalyze   = "No results available for meta-analysis."
	ServiceStartingUp  = "Analysis service is starting up. Please try again in a moment."
)

// roleSystemPrompt frames the per-role analysis: a direct yes/no answer
// grounded in what this role's credential could see.
const roleSystemPrompt = `You are an AI assistant analyzing documents. Based on the user's query and your role's access permissions, provide a clear and direct answer.`

// metaSystemPrompt frames the cross-role comparison. Deliberately analytical
// rather than yes/no: the subject is the access pattern, not the query.
const metaSystemPrompt = `You are a professional AI assistant analyzing search result patterns across different roles.
Focus on access patterns, data visibility, and role-based permissions. Structure your analysis into these sections:

1. Access Pattern Overview
2. Role-Specific Observations
3. Security Implications

Keep each section concise but informative. Use bullet points for clarity.`

// buildRolePrompt formats the filtered results into the structured per-role
// prompt: the query, the required answer format, then the documents.
func buildRolePrompt(query string, results []core.SearchResult) string {
	var docs strings.Builder
	for _, result := range results {
		fmt.Fprintf(&docs, "TYPE: %s\nID: %s\nCOMPANY: %s\nSUMMARY: %s\n---\n\n",
			result.Collection, result.Name, result.Tenant, result.Summary)
	}

	return fmt.Sprintf(`### Query:
%q

### Required Format:
First provide a direct Yes/No answer, then list relevant documents in this format:
YES/NO

Relevant documents:
[Type] [ID] ([Company]): [Summary]

### Documents:
%s
### Response:`, query, docs.String())
}

// buildMetaPrompt formats every role's result list plus its narrative into
// one prompt for the cross-role comparison. Roles whose analysis failed are
// expected to be excluded by the caller.
func buildMetaPrompt(query string, roleResults []core.RoleResult, descriptions map[core.Role]string) string {
	var formatted strings.Builder
	for _, rr := range roleResults {
		fmt.Fprintf(&formatted, "%s (%s):\n", rr.Role, descriptions[rr.Role])
		for _, result := range rr.Results {
			fmt.Fprintf(&formatted, "- %s: %s (%s) - Score: %.3f\n",
				result.Collection, result.Name, result.Tenant, result.Score)
		}
		fmt.Fprintf(&formatted, "AI Analysis: %s\n\n", rr.Narrative)
	}

	return fmt.Sprintf("Analyze these search results for the query %q:\n\n%s", query, formatted.String())
}
