package main

import (
	"fmt"

	"github.com/deppfellow/url-summarizer/internal/lib/email"
	"github.com/spf13/cobra"
)

func newEmailPreviewCmd() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "email-preview",
		Short: "Render an email template with sample data to stdout",
		RunE: func(cmd *cobra.Command, _ []string) error {
			tmpl := email.Template(name)

			data, ok := email.PreviewData[tmpl]
			if !ok {
				return fmt.Errorf("no preview data for template %q", name)
			}

			body, err := email.RenderTemplate(tmpl, data)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), body)
			return err
		},
	}

	cmd.Flags().StringVar(&name, "template", string(email.TemplateSummaryCreated), "template name")

	return cmd
}
