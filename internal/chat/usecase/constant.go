package usecase

// Log prefixes
const (
	LogPrefixHandleTurn = "internal.chat.usecase.HandleTurn"
	LogPrefixSession    = "internal.chat.usecase.Session"
	LogPrefixIngest     = "internal.chat.usecase.ingestDocument"
	LogPrefixTax        = "internal.chat.usecase.runTax"
)

// Warnings returned to the caller when a collaborator degraded.
const (
	WarnDocumentUnreadable  = "The uploaded document could not be read; using previously stored data."
	WarnAnswerNotUnderstood = "Your last answer could not be understood, so the question is asked again."
	WarnNarrativeMissing    = "A detailed explanation is not available right now."
	WarnSummaryMissing      = "A summary is not available right now."
)

// Configuration
const (
	DefaultHistoryWindow = 8
	DefaultAnnualIncome  = 600000.0
	monthsPerYear        = 12
)

const summaryPrompt = `You are Spendly, a clear and concise personal finance assistant.

CONTEXT
- Latest user message: %s
- Result JSON (may contain numbers and flags): %s

TASK
- Summarise the key insights the way a short chat reply would.

OUTPUT FORMAT (PLAIN TEXT, NO MARKDOWN)
- First line: 1 short sentence on the situation in plain language.
- Then 3 to 6 bullets starting with "- " that highlight the 2 or 3 most important numbers or flags and suggest next actions for this month, without jargon.
- Keep each bullet to max 2 short sentences.
- Do NOT use **bold**, headings, tables, or markdown.`

const followUpSummaryPrompt = `You are Spendly, a friendly personal finance assistant collecting details for a tax comparison.

Latest user message: %s
Next question to ask: %s

Reply in one or two short sentences that acknowledge the message and ask the next question exactly as given. Plain text only.`
