package tools

import (
	"fmt"
	"strings"

	"github.com/Laisky/searxng-mcp/internal/research"
	"github.com/Laisky/searxng-mcp/library/search"
)

// ResearchFooter tells the calling model how to use the gathered sources.
const ResearchFooter = `REQUIRED ANALYSIS PROCESS:
1. Read all source titles and content snippets above
2. Extract key claims and facts from the content
3. Cross-reference: What do MULTIPLE sources say? (HIGH confidence)
4. What's only in ONE source? (LOW confidence - note as unverified)
5. Any contradictions between sources? (flag for user)

REQUIRED OUTPUT FORMAT:
- Executive summary (2-3 sentences)
- Key findings with confidence indicators:
  ✓ HIGH (5+ sources agree)
  ~ MEDIUM (2-4 sources)
  ? LOW (single source only)
- Contradictions/uncertainties if any
- Brief conclusion

DO NOT output source URLs or numbered lists - synthesize into narrative!
`

var separator = strings.Repeat("=", 80)

// RenderResearch formats a research aggregate as raw material for analysis.
func RenderResearch(result *research.Result) string {
	var b strings.Builder

	fmt.Fprintf(&b, "🔬 RESEARCH DATA for analysis: %s\n", result.Topic)
	fmt.Fprintf(&b, "📊 %d unique sources gathered from %d search strategies\n",
		result.TotalUnique, result.StrategiesAttempted)
	if result.StrategiesFailed > 0 {
		failed := make([]string, 0, len(result.Failures))
		for _, f := range result.Failures {
			failed = append(failed, f.Strategy.String())
		}
		fmt.Fprintf(&b, "⚠️  %d of %d search strategies failed: %s\n",
			result.StrategiesFailed, result.StrategiesAttempted, strings.Join(failed, ", "))
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "%s\nRAW SOURCE MATERIAL (analyze and synthesize - do NOT list to user):\n%s\n\n", separator, separator)

	for _, r := range result.Displayed {
		fmt.Fprintf(&b, "• **%s**\n", search.TitleOf(r))
		fmt.Fprintf(&b, "  URL: %s\n", r.URL)
		if content := search.Text(r.Content); content != "" {
			fmt.Fprintf(&b, "  Content: %s\n", content)
		}
		if date := search.Text(r.PublishedDate); date != "" {
			fmt.Fprintf(&b, "  Date: %s\n", date)
		}
		b.WriteString("\n")
	}

	if result.Empty() {
		b.WriteString("No results found. Try a different query.\n")
	}

	fmt.Fprintf(&b, "\n%s\n⚠️  YOUR TASK: ANALYZE & SYNTHESIZE (NOT list sources!)\n%s\n\n", separator, separator)
	fmt.Fprintf(&b, "You have %d sources above as RAW MATERIAL.\n\n", result.DisplayedCount)
	b.WriteString(ResearchFooter)
	b.WriteString(separator + "\n")

	return b.String()
}
