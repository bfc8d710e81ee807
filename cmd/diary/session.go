package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nhle/personal-diary/internal/account"
	"github.com/nhle/personal-diary/internal/entryform"
	"github.com/nhle/personal-diary/internal/model"
	"github.com/nhle/personal-diary/internal/theme"
)

func initCmd(c *cli) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:         "init",
		Short:       "Write a default config file",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{skipStore: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(c.cfgPath); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", c.cfgPath)
			}
			if err := model.SaveConfig(c.cfgPath, c.cfg); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), theme.SuccessStyle.Render("Wrote "+c.cfgPath))
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config file")
	return cmd
}

func signupCmd(c *cli) *cobra.Command {
	var creds entryform.Credentials

	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create an account and log in",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if creds.Username == "" || creds.Password == "" {
				if err := entryform.SignupForm(&creds).Run(); err != nil {
					return err
				}
			}

			id, err := c.accounts.Register(cmd.Context(), account.SignupRequest{
				Username: creds.Username,
				FullName: creds.FullName,
				Password: creds.Password,
			})
			if err != nil {
				return err
			}
			if err := c.login(id); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), theme.SuccessStyle.Render("Welcome, "+creds.Username+"!"))
			return nil
		},
	}

	cmd.Flags().StringVar(&creds.Username, "username", "", "username")
	cmd.Flags().StringVar(&creds.FullName, "full-name", "", "full name")
	cmd.Flags().StringVar(&creds.Password, "password", "", "password (prompted when empty)")
	return cmd
}

func loginCmd(c *cli) *cobra.Command {
	var creds entryform.Credentials

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in to your diary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if creds.Username == "" || creds.Password == "" {
				if err := entryform.LoginForm(&creds).Run(); err != nil {
					return err
				}
			}

			user, err := c.accounts.Authenticate(cmd.Context(), creds.Username, creds.Password)
			if err != nil {
				return err
			}
			if err := c.login(user.ID); err != nil {
				return err
			}

			name := user.FullName
			if name == "" {
				name = user.Username
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, theme.SuccessStyle.Render("Logged in as "+name))
			return c.remind(cmd)
		},
	}

	cmd.Flags().StringVar(&creds.Username, "username", "", "username")
	cmd.Flags().StringVar(&creds.Password, "password", "", "password (prompted when empty)")
	return cmd
}

func logoutCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:         "logout",
		Short:       "Log out",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{skipStore: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := c.session()
			if err != nil {
				return err
			}
			if err := v.ClearActiveUser(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out.")
			return nil
		},
	}
}

func deluserCmd(c *cli) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "deluser",
		Short: "Delete your account and every entry in it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := c.currentUser()
			if err != nil {
				return err
			}

			if !yes {
				if err := entryform.ConfirmForm("Delete your account and all entries?", &yes).Run(); err != nil {
					return err
				}
				if !yes {
					fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
					return nil
				}
			}

			if err := c.accounts.Remove(cmd.Context(), userID); err != nil {
				return err
			}
			v, err := c.session()
			if err != nil {
				return err
			}
			if err := v.ClearActiveUser(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), theme.SuccessStyle.Render("Account deleted."))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
	return cmd
}

func (c *cli) login(userID string) error {
	v, err := c.session()
	if err != nil {
		return err
	}
	return v.SetActiveUser(userID)
}

// remind prints a nudge when reminders are on and nothing was written today.
func (c *cli) remind(cmd *cobra.Command) error {
	if !c.cfg.Reminder.Enabled {
		return nil
	}
	userID, err := c.currentUser()
	if err != nil {
		return err
	}
	ok, err := c.diary.CheckEntryForToday(cmd.Context(), userID)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(cmd.OutOrStdout(), theme.ReminderStyle.Render("You have not written anything today."))
	}
	return nil
}
