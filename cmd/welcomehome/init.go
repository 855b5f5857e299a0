package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/erazemk/welcomehome/internal/service"
)

func initCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the database schema and load default categories and locations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			conn, err := a.openDB()
			if err != nil {
				return err
			}
			defer conn.Close()

			c, closeCache := a.openCache(cmd.Context())
			defer closeCache()

			services := service.New(service.Deps{DB: conn, Cache: c})
			if err := seedDefaults(cmd.Context(), services); err != nil {
				return err
			}

			fmt.Printf("Database initialized: %s\n", a.cfg.Database.DSN)
			fmt.Println("Default categories and locations loaded.")
			return nil
		},
	}
}
