package email

import (
	"context"
	"strconv"
	"time"
)

// SendSummaryCreatedEmail tells recipients that a summary was created.
func (c *Client) SendSummaryCreatedEmail(ctx context.Context, to []string, id int64, url string, createdAt time.Time) error {
	data := map[string]string{
		"SummaryID": strconv.FormatInt(id, 10),
		"URL":       url,
		"CreatedAt": createdAt.UTC().Format(time.RFC1123),
	}

	return c.SendEmail(
		ctx,
		to,
		"New summary #"+data["SummaryID"],
		TemplateSummaryCreated,
		data,
	)
}
