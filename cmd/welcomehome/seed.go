package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/erazemk/welcomehome/internal/service"
	"github.com/erazemk/welcomehome/internal/store"
)

func seedCmd(a *app) *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load categories and locations from a YAML file",
		Long: `Load categories and locations from a YAML file of the form

  categories:
    - {main: Furniture, sub: Chair}
  locations:
    - {room: 1, shelf: 1, description: Main storage}

Existing rows are updated, so seeding the same file twice is harmless.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(path)
			if err != nil {
				return fmt.Errorf("opening seed file: %w", err)
			}
			defer f.Close()

			ref, err := store.ParseReferenceData(f)
			if err != nil {
				return err
			}

			conn, err := a.openDB()
			if err != nil {
				return err
			}
			defer conn.Close()

			c, closeCache := a.openCache(cmd.Context())
			defer closeCache()

			services := service.New(service.Deps{DB: conn, Cache: c})
			if err := services.Catalog.Seed(cmd.Context(), *ref); err != nil {
				return err
			}

			fmt.Printf("Loaded %d categories and %d locations.\n", len(ref.Categories), len(ref.Locations))
			return nil
		},
	}
	cmd.Flags().StringVarP(&path, "file", "f", "", "YAML seed file")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}
