package prompts

import (
	"fmt"
	"strings"
	"time"

	"github.com/johnquangdev/meeting-notes/pkg/llm"
)

// Prompt templates for meeting analysis. Templates ask for structured
// JSON output so responses can be parsed consistently.

const meetingSummarySystemPrompt = `You are a professional meeting notes assistant specializing in creating clear, actionable meeting summaries. Your role is to:

1. Analyze meeting content thoroughly
2. Extract key information in a structured format
3. Identify important decisions and discussion points
4. Write concise, professional summaries

Guidelines:
- Be objective and factual
- Focus on actionable information
- Use clear, professional language
- Preserve important context and nuances
- Do not invent information not present in the original content

You must always respond with valid JSON matching the specified schema.`

const actionItemSystemPrompt = `You are an expert at extracting action items from meeting content.

Your task is to identify actionable tasks that:
- Have a clear, specific action to be taken
- Can be assigned to a person
- Have a deadline or timeframe (explicit or implied)

You excel at:
- Distinguishing action items from general discussion
- Identifying the responsible person from context
- Recognizing time expressions and converting them to dates
- Assessing priority based on urgency and importance

Guidelines:
- Only extract genuine action items, not discussion points
- If owner is unclear or not mentioned, use "Unassigned"
- If deadline is not specified, set due_date to null
- Be conservative - when in doubt, don't extract
- If multiple people are responsible, create separate action items for each

You must always respond with valid JSON matching the specified schema.`

const meetingSummaryUserPrompt = `Please analyze the following meeting content and generate a structured summary.

Meeting Title: %s
Meeting Time: %s
Participants: %s

---
Meeting Content:
%s
---

Generate a JSON response with the following structure:
{
    "summary": "A concise 3-5 sentence summary capturing the meeting's main purpose and outcomes",
    "topics": ["List of core topics/agenda items discussed"],
    "decisions": ["List of specific decisions made (if any)"],
    "discussion_points": ["Key discussion points and notable viewpoints raised"]
}

Requirements:
1. Summary should be 3-5 sentences, capturing the essence of the meeting
2. Topics should list the main subjects discussed (typically 2-5 items)
3. Decisions should only include explicit decisions made (leave empty if none)
4. Discussion points should capture key arguments and viewpoints

Respond with valid JSON only.`

const actionItemUserPrompt = `Extract action items from the following meeting content.

Meeting Content:
---
%s
---

Meeting Participants: %s
Meeting Date: %s

For each action item, identify:
1. title: A concise action title (verb + object format, e.g., "Complete market research report")
2. description: Detailed description if available in the text
3. owner: The responsible person (must match participants list if possible, use "Unassigned" if unclear)
4. due_date: Deadline in ISO format (YYYY-MM-DD), or null if not specified
5. priority: high/medium/low based on urgency and importance

For due_date conversion:
- Use meeting date as reference for relative time expressions
- "next Friday" from meeting on 2024-12-07 → "2024-12-13"
- "end of month" → last day of the meeting's month
- "within 3 days" → meeting date + 3 days
- If time is vague (e.g., "ASAP", "soon"), set due_date to null

For priority assessment:
- high: Due within 3 days, contains keywords like "urgent", "critical", "blocker", "must"
- medium: Due within 1-2 weeks, normal tasks
- low: Due later, contains keywords like "if possible", "nice to have", "when available"

Important:
- Only extract items that require action, not discussion points
- Match owner names to the participants list when possible
- Be conservative - if something is not clearly an action item, skip it

Generate a JSON response with the following structure:
{
    "action_items": [
        {
            "title": "Action item title",
            "description": "Detailed description",
            "owner": "Person name or Unassigned",
            "due_date": "YYYY-MM-DD or null",
            "priority": "high/medium/low"
        }
    ]
}

Respond with valid JSON only.`

const notSpecified = "Not specified"

// BuildSummaryPrompt builds the messages list for meeting summary generation.
// meetingTime and participants may be empty.
func BuildSummaryPrompt(title, content, meetingTime string, participants []string) []llm.Message {
	timeStr := meetingTime
	if timeStr == "" {
		timeStr = notSpecified
	}

	participantsStr := notSpecified
	if len(participants) > 0 {
		participantsStr = strings.Join(participants, ", ")
	}

	userPrompt := fmt.Sprintf(meetingSummaryUserPrompt, title, timeStr, participantsStr, content)

	return []llm.Message{
		{Role: llm.RoleSystem, Content: meetingSummarySystemPrompt},
		{Role: llm.RoleUser, Content: userPrompt},
	}
}

// BuildActionItemsPrompt builds the messages list for action item extraction.
// meetingDate anchors relative time expressions; today is used when nil.
func BuildActionItemsPrompt(meetingContent, participants string, meetingDate *time.Time) []llm.Message {
	participantsStr := participants
	if participantsStr == "" {
		participantsStr = notSpecified
	}

	dateStr := time.Now().Format("2006-01-02")
	if meetingDate != nil {
		dateStr = meetingDate.Format("2006-01-02")
	}

	userPrompt := fmt.Sprintf(actionItemUserPrompt, meetingContent, participantsStr, dateStr)

	return []llm.Message{
		{Role: llm.RoleSystem, Content: actionItemSystemPrompt},
		{Role: llm.RoleUser, Content: userPrompt},
	}
}
