package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (c *CLI) newFavoritesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "favorites",
		Short: "Manage local favorites",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "add <property-id>...",
		Short: "Add properties to favorites",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := c.favoritesStore()
			if err != nil {
				return err
			}
			out := newUI(cmd.OutOrStdout())
			for _, id := range args {
				if err := store.Add(cmd.Context(), c.owner, id); err != nil {
					return fmt.Errorf("add %q: %w", id, err)
				}
				out.printSuccess("Added %s to favorites", id)
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "remove <property-id>...",
		Short: "Remove properties from favorites",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := c.favoritesStore()
			if err != nil {
				return err
			}
			out := newUI(cmd.OutOrStdout())
			for _, id := range args {
				if err := store.Remove(cmd.Context(), c.owner, id); err != nil {
					return fmt.Errorf("remove %q: %w", id, err)
				}
				out.printSuccess("Removed %s from favorites", id)
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "has <property-id>",
		Short: "Print whether a property is a favorite",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := c.favoritesStore()
			if err != nil {
				return err
			}
			ok, err := store.Has(cmd.Context(), c.owner, args[0])
			if err != nil {
				return err
			}
			status := "not a favorite"
			if ok {
				status = "favorite"
			}
			newUI(cmd.OutOrStdout()).printKeyValue(args[0], status)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List favorites in the order they were added",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := c.favoritesStore()
			if err != nil {
				return err
			}
			ids, err := store.List(cmd.Context(), c.owner)
			if err != nil {
				return err
			}
			out := newUI(cmd.OutOrStdout())
			if len(ids) == 0 {
				out.printInfo("No favorites for %s", c.owner)
				return nil
			}
			for _, id := range ids {
				out.printItem(id)
			}
			return nil
		},
	})

	return cmd
}
