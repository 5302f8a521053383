package assistant

import (
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/sashabaranov/go-openai"
	"github.com/sashabaranov/go-openai/jsonschema"
)

const (
	webSearchToolName   = "web_search"
	currentTimeToolName = "get_current_time"
)

// toolDefinitions advertises the two chat tools in OpenAI function format.
func toolDefinitions() []openai.Tool {
	return []openai.Tool{
		{
			Type: openai.ToolTypeFunction,
			Function: &openai.FunctionDefinition{
				Name:        webSearchToolName,
				Description: "Search the web for up-to-date information. Use this for questions about current events, facts you are unsure about, or anything after your knowledge cutoff.",
				Parameters: jsonschema.Definition{
					Type: jsonschema.Object,
					Properties: map[string]jsonschema.Definition{
						"query": {
							Type:        jsonschema.String,
							Description: "The search query",
						},
					},
					Required: []string{"query"},
				},
			},
		},
		{
			Type: openai.ToolTypeFunction,
			Function: &openai.FunctionDefinition{
				Name:        currentTimeToolName,
				Description: "Get the current date and time.",
				Parameters: jsonschema.Definition{
					Type:       jsonschema.Object,
					Properties: map[string]jsonschema.Definition{},
				},
			},
		},
	}
}

var (
	// Explicit date tokens confuse keyword search engines; the model tends
	// to inject the year it believes is current, which is often stale.
	yearPattern  = regexp.MustCompile(`(19|20)\d{2}\s*年?`)
	monthPattern = regexp.MustCompile(`\d{1,2}\s*月`)
	spacePattern = regexp.MustCompile(`\s+`)
)

// sanitizeQuery strips explicit year and month tokens from a search query
// and collapses the remaining whitespace.
func sanitizeQuery(query string) string {
	query = yearPattern.ReplaceAllString(query, " ")
	query = monthPattern.ReplaceAllString(query, " ")
	return strings.TrimSpace(spacePattern.ReplaceAllString(query, " "))
}

var (
	locationOnce  sync.Once
	shanghaiZone  *time.Location
	weekdayLabels = map[time.Weekday]string{
		time.Sunday:    "星期日",
		time.Monday:    "星期一",
		time.Tuesday:   "星期二",
		time.Wednesday: "星期三",
		time.Thursday:  "星期四",
		time.Friday:    "星期五",
		time.Saturday:  "星期六",
	}
)

func shanghai() *time.Location {
	locationOnce.Do(func() {
		loc, err := time.LoadLocation("Asia/Shanghai")
		if err != nil {
			loc = time.FixedZone("CST", 8*60*60)
		}
		shanghaiZone = loc
	})
	return shanghaiZone
}

// formatCurrentTime renders a wall-clock reading for the chat audience's
// time zone as a human-readable string.
func formatCurrentTime(now time.Time) string {
	now = now.In(shanghai())
	return now.Format("2006年01月02日 15:04:05 ") + weekdayLabels[now.Weekday()]
}
