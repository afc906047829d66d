// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// authCommand manages the session: sign-in, sign-out, and identity selection.
func authCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Manage the session",
		Commands: []*cli.Command{
			{
				Name:  "login",
				Usage: "Sign in through the browser (OAuth authorization code flow)",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "timeout",
						Usage: "Seconds to wait for the browser callback",
						Value: 300,
					},
				},
				Action: r.AuthLogin,
			},
			{
				Name:   "logout",
				Usage:  "Sign out; local session is cleared even when revocation fails",
				Action: r.AuthLogout,
			},
			{
				Name:    "whoami",
				Aliases: []string{"status"},
				Usage:   "Show the current session state and profile",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.AuthWhoami,
			},
			{
				Name:  "impersonate",
				Usage: "Select a user id (impersonation strategy only)",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Action: r.AuthImpersonate,
			},
			{
				Name:   "clear",
				Usage:  "Deselect the impersonated user",
				Action: r.AuthClear,
			},
		},
	}
}

// catalogCommand browses the music catalog.
func catalogCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "catalog",
		Aliases: []string{"cat"},
		Usage:   "Browse the music catalog",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List catalog entries, falling back to the local cache when offline",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.CatalogList,
			},
			{
				Name:  "show",
				Usage: "Show one catalog entry with its comments",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.CatalogShow,
			},
			{
				Name:  "comment",
				Usage: "Post a comment on a catalog entry",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
					&cli.StringArg{Name: "content"},
				},
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "rating",
						Usage: "Optional rating from 1 to 5",
					},
				},
				Action: r.CatalogComment,
			},
			{
				Name:  "export",
				Usage: "Export the catalog listing to a file",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "Export format: json, csv, markdown, txt",
						Value:   "json",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output file path",
					},
				},
				Action: r.CatalogExport,
			},
		},
	}
}

// collectionCommand manages the personal collection.
func collectionCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "collection",
		Aliases: []string{"col"},
		Usage:   "Manage your personal collection",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List your collection",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.CollectionList,
			},
			{
				Name:  "add",
				Usage: "Add a catalog entry to your collection",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "music-id"},
				},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "status",
						Usage: "Initial status: none, like, dislike, favourite",
						Value: "none",
					},
				},
				Action: r.CollectionAdd,
			},
			{
				Name:  "set-status",
				Usage: "Change an entry's status",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "entry-id"},
					&cli.StringArg{Name: "status"},
				},
				Action: r.CollectionSetStatus,
			},
			{
				Name:    "remove",
				Aliases: []string{"rm"},
				Usage:   "Remove an entry from your collection",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "entry-id"},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:    "yes",
						Aliases: []string{"y"},
						Usage:   "Skip the confirmation prompt",
					},
				},
				Action: r.CollectionRemove,
			},
			{
				Name:  "by-user",
				Usage: "View another user's collection (admin only)",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "user-id"},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.CollectionByUser,
			},
		},
	}
}

// usersCommand browses and extends the user directory.
func usersCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "users",
		Usage: "Browse the user directory",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List directory users",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.UsersList,
			},
			{
				Name:  "create",
				Usage: "Create a directory user",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "username",
						Usage:    "Username for the new user",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "email",
						Usage:    "Email for the new user",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "password",
						Usage: "Password for the new user",
					},
					&cli.StringFlag{
						Name:  "role",
						Usage: "Role: user or admin",
						Value: "user",
					},
				},
				Action: r.UsersCreate,
			},
		},
	}
}

// adminCommand manages the catalog itself. The server rejects these for
// non-admin identities with a 403.
func adminCommand(r *Runner) *cli.Command {
	musicFlags := []cli.Flag{
		&cli.StringFlag{Name: "title", Usage: "Entry title"},
		&cli.StringFlag{Name: "artist", Usage: "Entry artist"},
		&cli.StringFlag{Name: "album", Usage: "Entry album"},
		&cli.StringFlag{Name: "genre", Usage: "Entry genre"},
		&cli.IntFlag{Name: "year", Usage: "Release year"},
		&cli.IntFlag{Name: "duration", Usage: "Duration in seconds"},
	}

	return &cli.Command{
		Name:  "admin",
		Usage: "Manage the catalog (admin role required)",
		Commands: []*cli.Command{
			{
				Name:   "add",
				Usage:  "Add a catalog entry",
				Flags:  musicFlags,
				Action: r.AdminAdd,
			},
			{
				Name:  "update",
				Usage: "Update a catalog entry; only the flags given are changed",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Flags:  musicFlags,
				Action: r.AdminUpdate,
			},
			{
				Name:    "delete",
				Aliases: []string{"rm"},
				Usage:   "Delete a catalog entry",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:    "yes",
						Aliases: []string{"y"},
						Usage:   "Skip the confirmation prompt",
					},
				},
				Action: r.AdminDelete,
			},
		},
	}
}

// syncCommand refreshes the offline catalog cache.
func syncCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "sync",
		Usage: "Refresh the offline catalog cache",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "comments",
				Usage: "Also warm per-entry comment counts",
			},
			&cli.BoolFlag{
				Name:  "prune",
				Usage: "Drop cached entries the server no longer lists",
			},
			&cli.IntFlag{
				Name:  "workers",
				Usage: "Concurrent comment warmers",
				Value: 4,
			},
			&cli.FloatFlag{
				Name:  "rate",
				Usage: "Requests per second while warming",
				Value: 5,
			},
		},
		Action: r.Sync,
	}
}

// tuiCommand returns the top-level TUI command for interactive browsing.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch the interactive terminal UI",
		Action:  r.TUI,
	}
}

// setupCommand handles setup operations for configuration and the cache database.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:  "config",
				Usage: "Create a config.toml from the embedded template",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to configuration file",
						Value:   "config.toml",
					},
				},
				Action: r.SetupConfig,
			},
			{
				Name:  "database",
				Usage: "Initialize the cache database and run migrations",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to configuration file",
						Value:   "config.toml",
					},
				},
				Action: r.SetupDatabase,
			},
		},
	}
}
