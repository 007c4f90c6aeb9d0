package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/opyruso/nw-leaderboard-sub000/encode"
	"github.com/opyruso/nw-leaderboard-sub000/expand"
)

type exploreOutput struct {
	Status expand.Status `json:"status"`
	Scene  encode.Scene  `json:"scene"`
}

func newExploreCmd(configPath *string) *cobra.Command {
	var (
		expandIDs   []string
		collapseIDs []string
	)

	cmd := &cobra.Command{
		Use:   "explore <origin>",
		Short: "Load a player's graph, apply expansions and collapses, print the scene as JSON",
		Long: `explore loads the origin player's neighborhood, expands every --expand player
in order, then collapses every --collapse player in order, and prints the
resulting status and scene as JSON. Players already in the requested state
are left alone.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, logger, client, err := setup(*configPath, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			ctrl := expand.New(args[0], client, expand.WithLogger(logger))
			if err := ctrl.Load(ctx); err != nil {
				return err
			}

			for _, id := range expandIDs {
				if ctrl.State(id) == expand.StateExpanded {
					continue
				}
				if _, err := ctrl.Tap(ctx, id); err != nil {
					return fmt.Errorf("expanding %s: %w", id, err)
				}
			}
			for _, id := range collapseIDs {
				if ctrl.State(id) != expand.StateExpanded {
					continue
				}
				if _, err := ctrl.Tap(ctx, id); err != nil {
					return fmt.Errorf("collapsing %s: %w", id, err)
				}
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")

			return enc.Encode(exploreOutput{
				Status: ctrl.Status(),
				Scene:  encode.Render(ctrl.Store()),
			})
		},
	}
	cmd.Flags().StringSliceVar(&expandIDs, "expand", nil, "Player ids to expand, in order")
	cmd.Flags().StringSliceVar(&collapseIDs, "collapse", nil, "Player ids to collapse, in order")

	return cmd
}
