package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/samber/do/v2"
	"github.com/spf13/cobra"

	"github.com/jsamuelsen11/guidedtours/internal/adapters/authz"
	"github.com/jsamuelsen11/guidedtours/internal/adapters/persistence/postgres"
	"github.com/jsamuelsen11/guidedtours/internal/domain"
	"github.com/jsamuelsen11/guidedtours/internal/domain/tour"
	"github.com/jsamuelsen11/guidedtours/internal/ports"
)

// errUnhealthy is returned by the health command when any check fails.
var errUnhealthy = errors.New("one or more health checks failed")

func (c *cli) service() (ports.TourService, error) {
	svc, err := do.Invoke[ports.TourService](c.injector)
	if err != nil {
		return nil, fmt.Errorf("wiring tour service: %w", err)
	}
	return svc, nil
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, &domain.ValidationError{Fields: map[string]string{"id": fmt.Sprintf("must be a positive integer, got %q", raw)}}
	}
	return id, nil
}

func newSaveCmd(c *cli) *cobra.Command {
	var (
		file      string
		in        tourJSON
		published int
		saveCopy  bool
	)

	cmd := &cobra.Command{
		Use:   "save",
		Short: "Create or update a tour",
		Long: "Create or update a tour from a JSON file (--file, \"-\" for stdin) or flags.\n" +
			"With --copy the tour named by id is saved as a new unpublished record.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var fields []tour.Field
			if file != "" {
				loaded, submitted, err := readTourFile(cmd, file)
				if err != nil {
					return err
				}
				in, fields = loaded, submitted
			} else {
				in.Published = published
				fields = changedFields(cmd)
			}

			svc, err := c.service()
			if err != nil {
				return err
			}
			rc, _, err := c.request(cmd.Context())
			if err != nil {
				return err
			}

			saved, err := svc.Save(rc, ports.SaveInput{Tour: in.toDomain(), Fields: fields, Copy: saveCopy})
			if err != nil {
				return err
			}
			return writeJSON(c.stdout, toTourJSON(saved))
		},
	}

	f := cmd.Flags()
	f.StringVar(&file, "file", "", "JSON file with the tour fields")
	f.Int64Var(&in.ID, "id", 0, "tour id; 0 creates a new tour")
	f.StringVar(&in.Title, "title", "", "tour title")
	f.StringVar(&in.Description, "description", "", "tour description")
	f.StringVar(&in.Language, "language", "", "language code or * for all")
	f.IntVar(&published, "published", int(tour.StatePublished), "publication state (-2, 0, 1, 2)")
	f.IntVar(&in.Ordering, "ordering", 0, "ordering; 0 assigns the next free value")
	f.BoolVar(&saveCopy, "copy", false, "save as a copy of the tour named by --id")
	cmd.MarkFlagsMutuallyExclusive("file", "title")
	return cmd
}

// changedFields lists the tour fields set on the command line.
func changedFields(cmd *cobra.Command) []tour.Field {
	fields := []tour.Field{}
	for _, f := range tour.Fields {
		if cmd.Flags().Changed(string(f)) {
			fields = append(fields, f)
		}
	}
	return fields
}

// readTourFile decodes a tour and reports which tour fields the document
// carries. Unknown keys are ignored.
func readTourFile(cmd *cobra.Command, path string) (tourJSON, []tour.Field, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return tourJSON{}, nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var in tourJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return tourJSON{}, nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	var keys map[string]json.RawMessage
	if err := json.Unmarshal(data, &keys); err != nil {
		return tourJSON{}, nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	fields := []tour.Field{}
	for key := range keys {
		if f, err := tour.ParseField(key); err == nil {
			fields = append(fields, f)
		}
	}
	return in, fields, nil
}

func newDeleteCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID...",
		Short: "Delete tours and their steps",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := c.service()
			if err != nil {
				return err
			}
			rc, _, err := c.request(cmd.Context())
			if err != nil {
				return err
			}

			result, err := svc.Delete(rc, tour.ParseIDs(args))
			if result != nil {
				if werr := writeJSON(c.stdout, deleteOutput(result)); werr != nil {
					return errors.Join(err, werr)
				}
			}
			return err
		},
	}
}

type deleteJSON struct {
	IDs     []int64 `json:"ids"`
	Deleted []int64 `json:"deleted"`
	Denied  []int64 `json:"denied"`
}

func deleteOutput(r *ports.DeleteResult) deleteJSON {
	return deleteJSON{IDs: nonNil(r.IDs), Deleted: nonNil(r.Deleted), Denied: nonNil(r.Denied)}
}

func nonNil(ids []int64) []int64 {
	if ids == nil {
		return []int64{}
	}
	return ids
}

func newDuplicateCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "duplicate ID...",
		Short: "Copy tours with their steps as unpublished drafts",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := c.service()
			if err != nil {
				return err
			}
			rc, _, err := c.request(cmd.Context())
			if err != nil {
				return err
			}

			result, err := svc.Duplicate(rc, tour.ParseIDs(args))
			if result != nil {
				copies := result.Copies
				if copies == nil {
					copies = []ports.DuplicatePair{}
				}
				out := make([]map[string]any, 0, len(copies))
				for _, p := range copies {
					out = append(out, map[string]any{"source_id": p.SourceID, "tour_id": p.TourID, "steps": p.Steps})
				}
				if werr := writeJSON(c.stdout, out); werr != nil {
					return errors.Join(err, werr)
				}
			}
			return err
		},
	}
}

func newStepsLanguageCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "steps-language TOUR_ID LANGUAGE",
		Short: "Set the language of every step of a tour",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			svc, err := c.service()
			if err != nil {
				return err
			}
			rc, _, err := c.request(cmd.Context())
			if err != nil {
				return err
			}
			return svc.SetStepsLanguage(rc, id, args[1])
		},
	}
}

func newNextOrderingCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "next-ordering",
		Short: "Print the ordering a new tour would receive",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := c.service()
			if err != nil {
				return err
			}
			next, err := svc.NextOrdering(cmd.Context())
			if err != nil {
				return err
			}
			return writeJSON(c.stdout, map[string]int{"ordering": next})
		},
	}
}

func newGetCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "get ID",
		Short: "Show one tour with translated title and description",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			svc, err := c.service()
			if err != nil {
				return err
			}
			rc, _, err := c.request(cmd.Context())
			if err != nil {
				return err
			}

			t, err := svc.GetTour(rc, id)
			if err != nil {
				return err
			}
			return writeJSON(c.stdout, toTourJSON(t))
		},
	}
}

func newListCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every tour by ordering",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := c.service()
			if err != nil {
				return err
			}
			tours, err := svc.ListTours(cmd.Context())
			if err != nil {
				return err
			}
			out := make([]tourJSON, len(tours))
			for i := range tours {
				out[i] = toTourJSON(&tours[i])
			}
			return writeJSON(c.stdout, out)
		},
	}
}

func newStepsCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "steps TOUR_ID",
		Short: "List the steps of a tour",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			svc, err := c.service()
			if err != nil {
				return err
			}
			steps, err := svc.ListSteps(cmd.Context(), id)
			if err != nil {
				return err
			}
			out := make([]stepJSON, len(steps))
			for i := range steps {
				out[i] = toStepJSON(&steps[i])
			}
			return writeJSON(c.stdout, out)
		},
	}
}

func newMigrateCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			repo, err := do.Invoke[ports.TourRepository](c.injector)
			if err != nil {
				return err
			}
			store, ok := repo.(*postgres.Store)
			if !ok {
				_, _ = fmt.Fprintf(c.stdout, "driver %q keeps no schema; nothing to migrate\n", c.cfg.Database.Driver)
				return nil
			}
			if err := store.Migrate(cmd.Context()); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(c.stdout, "schema up to date")
			return nil
		},
	}
}

func newHealthCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check the store and every configured dependency",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// Resolving the service registers each dependency's checker.
			if _, err := c.service(); err != nil {
				return err
			}
			registry := do.MustInvoke[ports.HealthRegistry](c.injector)
			if !printHealth(c.stdout, registry.CheckAll(cmd.Context())) {
				return errUnhealthy
			}
			return nil
		},
	}
}

func newTokenCmd(c *cli) *cobra.Command {
	var (
		actor domain.Actor
		ttl   time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue an actor token signed with the configured identity secret",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			if actor.ID <= 0 {
				return &domain.ValidationError{Fields: map[string]string{"uid": "must be positive"}}
			}
			parser := do.MustInvoke[*authz.TokenParser](c.injector)

			now := time.Now()
			claims := jwt.RegisteredClaims{IssuedAt: jwt.NewNumericDate(now)}
			if ttl > 0 {
				claims.ExpiresAt = jwt.NewNumericDate(now.Add(ttl))
			}
			signed, err := parser.Sign(actor, claims)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(c.stdout, signed)
			return nil
		},
	}

	f := cmd.Flags()
	f.Int64Var(&actor.ID, "uid", 0, "user id")
	f.StringVar(&actor.Name, "name", "", "display name")
	f.StringSliceVar(&actor.Roles, "roles", nil, "roles (viewer, editor, admin)")
	f.DurationVar(&ttl, "ttl", time.Hour, "token lifetime; 0 for no expiry")
	return cmd
}
