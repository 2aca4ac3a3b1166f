package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jwebster45206/violeta/internal/logger"
	internalstorage "github.com/jwebster45206/violeta/internal/storage"
	"github.com/jwebster45206/violeta/pkg/storage"
	"github.com/jwebster45206/violeta/pkg/wizard"
)

// step is one wizard step reachable from the command line.
type step struct {
	get func(ctx context.Context, s *wizard.Store) (string, error)
	put func(ctx context.Context, s *wizard.Store, text string) error
}

var steps = map[string]step{
	"atomic-unit": {
		get: func(ctx context.Context, s *wizard.Store) (string, error) {
			return s.AtomicUnit(ctx)
		},
		put: func(ctx context.Context, s *wizard.Store, text string) error {
			return s.SaveAtomicUnit(ctx, text)
		},
	},
	"atomic-skills": {
		get: func(ctx context.Context, s *wizard.Store) (string, error) {
			skills, err := s.AtomicSkills(ctx)
			if err != nil || skills.Raw != "" {
				return skills.Raw, err
			}
			if skills.Empty() {
				return "", nil
			}
			data, err := json.MarshalIndent(skills, "", "  ")
			return string(data), err
		},
		put: func(ctx context.Context, s *wizard.Store, text string) error {
			return s.SaveAtomicSkills(ctx, text)
		},
	},
	"theme": {
		get: func(ctx context.Context, s *wizard.Store) (string, error) {
			return s.ThemeText(ctx)
		},
		put: func(ctx context.Context, s *wizard.Store, text string) error {
			return s.SaveTheme(ctx, text)
		},
	},
	"skill-kernels": {
		get: payloadGetter((*wizard.Store).SkillKernels),
		put: func(ctx context.Context, s *wizard.Store, text string) error {
			return s.SaveSkillKernels(ctx, text)
		},
	},
	"kernel-mappings": {
		get: payloadGetter((*wizard.Store).KernelMappings),
		put: func(ctx context.Context, s *wizard.Store, text string) error {
			return s.SaveKernelMappings(ctx, text)
		},
	},
	"kernel-theme-mapping": {
		get: payloadGetter((*wizard.Store).KernelThemeMapping),
		put: func(ctx context.Context, s *wizard.Store, text string) error {
			return s.SaveKernelThemeMapping(ctx, text)
		},
	},
}

func payloadGetter(load func(*wizard.Store, context.Context) (wizard.Payload, error)) func(context.Context, *wizard.Store) (string, error) {
	return func(ctx context.Context, s *wizard.Store) (string, error) {
		p, err := load(s, ctx)
		if err != nil || !p.IsJSON() {
			return p.Raw, err
		}
		var buf bytes.Buffer
		if err := json.Indent(&buf, p.JSON, "", "  "); err != nil {
			return "", err
		}
		return buf.String(), nil
	}
}

func stepNames() string {
	names := make([]string, 0, len(steps))
	for n := range steps {
		names = append(names, n)
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}

func lookupStep(name string) (step, error) {
	st, ok := steps[name]
	if !ok {
		return step{}, fmt.Errorf("unknown step %q (want one of: %s)", name, stepNames())
	}
	return st, nil
}

// Redis may still be starting next to the CLI; give it a short grace period.
const (
	redisConnectAttempts = 3
	redisConnectDelay    = 200 * time.Millisecond
)

// openBackend builds the configured storage and makes sure it answers
// before any step is read or written.
func (a *app) openBackend(ctx context.Context, log *slog.Logger) (storage.Storage, error) {
	store, err := internalstorage.New(a.cfg, log)
	if err != nil {
		return nil, err
	}

	if rs, ok := store.(*internalstorage.RedisStorage); ok {
		err = rs.WaitForConnection(ctx, redisConnectAttempts, redisConnectDelay)
	} else {
		err = store.Ping(ctx)
	}
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("storage unavailable: %w", err)
	}
	return store, nil
}

func (a *app) openStore(ctx context.Context, session string) (*wizard.Store, func(), error) {
	id, err := uuid.Parse(session)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid session id %q: %w", session, err)
	}

	store, err := a.openBackend(ctx, logger.WithSession(a.logger, id.String()))
	if err != nil {
		return nil, nil, err
	}
	closeFn := func() {
		if err := store.Close(); err != nil {
			a.logger.Warn("Failed to close storage", "error", err)
		}
	}
	return wizard.NewStore(store, id), closeFn, nil
}

func newStateCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "state",
		Short: "Read and write wizard steps of a design session",
		Long: `Read and write the wizard steps stored for a design session.

Steps: ` + stepNames() + `

The storage backend comes from the configuration (STORAGE_BACKEND).`,
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "new",
			Short: "Print a fresh session id",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				fmt.Fprintln(cmd.OutOrStdout(), uuid.New().String())
				return nil
			},
		},
		&cobra.Command{
			Use:   "list",
			Short: "List sessions that have a stored document",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				store, err := a.openBackend(cmd.Context(), a.logger)
				if err != nil {
					return err
				}
				defer store.Close()

				ids, err := store.ListSessions(cmd.Context())
				if err != nil {
					return err
				}
				for _, id := range ids {
					fmt.Fprintln(cmd.OutOrStdout(), id.String())
				}
				return nil
			},
		},
		&cobra.Command{
			Use:   "get <session> <step>",
			Short: "Print the stored value of a step",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				st, err := lookupStep(args[1])
				if err != nil {
					return err
				}
				store, closeFn, err := a.openStore(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				defer closeFn()

				value, err := st.get(cmd.Context(), store)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), value)
				return nil
			},
		},
		&cobra.Command{
			Use:   "put <session> <step> [file]",
			Short: "Store a step value read from a file or stdin",
			Args:  cobra.RangeArgs(2, 3),
			RunE: func(cmd *cobra.Command, args []string) error {
				st, err := lookupStep(args[1])
				if err != nil {
					return err
				}

				var data []byte
				if len(args) == 3 && args[2] != "-" {
					data, err = os.ReadFile(args[2])
				} else {
					data, err = io.ReadAll(cmd.InOrStdin())
				}
				if err != nil {
					return fmt.Errorf("failed to read input: %w", err)
				}

				store, closeFn, err := a.openStore(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				defer closeFn()

				if err := st.put(cmd.Context(), store, strings.TrimRight(string(data), "\n")); err != nil {
					return err
				}
				a.logger.Info("Step saved", "session", args[0], "step", args[1])
				return nil
			},
		},
	)
	return cmd
}
