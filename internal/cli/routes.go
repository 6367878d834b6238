package cli

import (
	"fmt"

	"github.com/go-chi/docgen"
	"github.com/spf13/cobra"

	"github.com/SergeyParamoshkin/skillshare/internal/server"
	"github.com/SergeyParamoshkin/skillshare/internal/store/memstore"
)

// NewRoutesCommand prints Markdown documentation of the API routes. It
// builds the router on the in-memory store, so no database is needed.
func NewRoutesCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "routes",
		Short: "Generate router documentation",
		RunE: func(cmd *cobra.Command, args []string) error {
			r := server.NewRouter(server.Deps{DB: memstore.New()})

			if asJSON {
				fmt.Fprintln(cmd.OutOrStdout(), docgen.JSONRoutesDoc(r))
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), docgen.MarkdownRoutesDoc(r, docgen.MarkdownOpts{
				ProjectPath: "github.com/SergeyParamoshkin/skillshare",
				Intro:       "REST API for skillshare users, articles and reviews.",
			}))

			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "emit JSON instead of Markdown")

	return cmd
}
