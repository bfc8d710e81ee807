package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nhle/personal-diary/internal/diary"
	"github.com/nhle/personal-diary/internal/entryform"
	"github.com/nhle/personal-diary/internal/model"
	"github.com/nhle/personal-diary/internal/theme"
)

// entryFlags are the non-interactive alternatives to the entry form.
type entryFlags struct {
	title string
	body  string
	mood  string
	tags  string
}

func (f *entryFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.title, "title", "t", "", "entry title")
	cmd.Flags().StringVarP(&f.body, "body", "b", "", "entry body")
	cmd.Flags().StringVarP(&f.mood, "mood", "m", "", "mood name (neutral, grinning, in-love, playful, pensive, nauseated, fearful, angry)")
	cmd.Flags().StringVar(&f.tags, "tags", "", "comma separated tags")
}

// changed reports whether any entry field was given on the command line.
func (f *entryFlags) changed(cmd *cobra.Command) bool {
	for _, name := range []string{"title", "body", "mood", "tags"} {
		if cmd.Flags().Changed(name) {
			return true
		}
	}
	return false
}

// apply copies the flags that were set onto v.
func (f *entryFlags) apply(cmd *cobra.Command, v *entryform.EntryValues) error {
	if cmd.Flags().Changed("title") {
		v.Title = f.title
	}
	if cmd.Flags().Changed("body") {
		v.Body = f.body
	}
	if cmd.Flags().Changed("tags") {
		v.Tags = f.tags
	}
	if cmd.Flags().Changed("mood") {
		m, ok := model.ParseMood(f.mood)
		if !ok {
			return fmt.Errorf("unknown mood %q", f.mood)
		}
		v.Mood = string(m)
	}
	return validateEntry(v)
}

func validateEntry(v *entryform.EntryValues) error {
	return errors.Join(
		entryform.ValidateTitle(v.Title),
		entryform.ValidateBody(v.Body),
		entryform.ValidateTags(v.Tags),
	)
}

func newCmd(c *cli) *cobra.Command {
	var flags entryFlags

	cmd := &cobra.Command{
		Use:   "new",
		Short: "Write a new entry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := c.currentUser()
			if err != nil {
				return err
			}

			v := entryform.NewEntryValues()
			if flags.changed(cmd) {
				if err := flags.apply(cmd, v); err != nil {
					return err
				}
			} else {
				known, err := c.diary.Tags().All(cmd.Context())
				if err != nil {
					return err
				}
				if err := entryform.EntryForm(v, "New entry", known).Run(); err != nil {
					return err
				}
			}

			id, err := c.diary.CreateEntry(cmd.Context(), diary.CreateRequest{
				Title:  strings.TrimSpace(v.Title),
				Body:   v.Body,
				UserID: userID,
				Mood:   model.Mood(v.Mood),
				Tags:   v.TagNames(),
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), theme.SuccessStyle.Render("Created entry")+" "+id)
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}

func showCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show an entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entry, err := c.ownedEntry(cmd, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderEntry(*entry, c.cfg.Display.DateFormat))
			return nil
		},
	}
}

func editCmd(c *cli) *cobra.Command {
	var flags entryFlags

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit an entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entry, err := c.ownedEntry(cmd, args[0])
			if err != nil {
				return err
			}

			v := entryform.EntryValuesFrom(*entry)
			if flags.changed(cmd) {
				if err := flags.apply(cmd, v); err != nil {
					return err
				}
			} else {
				known, err := c.diary.Tags().All(cmd.Context())
				if err != nil {
					return err
				}
				if err := entryform.EntryForm(v, "Edit entry", known).Run(); err != nil {
					return err
				}
			}

			if _, err := c.diary.UpdateEntry(cmd.Context(), diary.UpdateRequest{
				EntryID: entry.ID,
				Title:   strings.TrimSpace(v.Title),
				Body:    v.Body,
				Mood:    model.Mood(v.Mood),
				Tags:    v.TagNames(),
			}); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), theme.SuccessStyle.Render("Updated entry")+" "+entry.ID)
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}

func rmCmd(c *cli) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete an entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entry, err := c.ownedEntry(cmd, args[0])
			if err != nil {
				return err
			}

			if !yes {
				if err := entryform.ConfirmForm(fmt.Sprintf("Delete %q?", entry.Title), &yes).Run(); err != nil {
					return err
				}
				if !yes {
					fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
					return nil
				}
			}

			id, err := c.diary.DeleteEntry(cmd.Context(), diary.DeleteRequest{EntryID: entry.ID})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), theme.SuccessStyle.Render("Deleted entry")+" "+id)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
	return cmd
}

// ownedEntry loads an entry of the logged-in user. Other users' entries are
// reported as not found.
func (c *cli) ownedEntry(cmd *cobra.Command, id string) (*model.Entry, error) {
	userID, err := c.currentUser()
	if err != nil {
		return nil, err
	}
	entry, err := c.diary.ReadOwnedEntry(cmd.Context(), id, userID)
	if errors.Is(err, diary.ErrNotFound) {
		return nil, fmt.Errorf("no entry with id %s", id)
	}
	return entry, err
}
