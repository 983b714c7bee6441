package email

// PreviewData contains sample template data for the email-preview command.
//
//	PreviewData[TemplateSummaryCreated]["URL"] == "https://example.com/article"
var PreviewData = map[Template]map[string]string{
	TemplateSummaryCreated: {
		"SummaryID": "42",
		"URL":       "https://example.com/article",
		"CreatedAt": "Mon, 02 Jan 2006 15:04:05 UTC",
	},
}
