package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"fruitfarm/app"
	"fruitfarm/entities"
	"fruitfarm/pkg/fruit/importer"
	"fruitfarm/pkg/plantation/export"
	"fruitfarm/pkg/plantation/serviceImp"
)

type builder func(ctx context.Context) (*app.App, error)

// withApp builds the components for one command run and closes them after.
func withApp(build builder, run func(cmd *cobra.Command, args []string, a *app.App) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a, err := build(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()
		return run(cmd, args, a)
	}
}

func newRootCmd(build builder) *cobra.Command {
	root := &cobra.Command{
		Use:          "farmctl",
		Short:        "Manage the fruit farm plantations, catalog and inventory",
		SilenceUsage: true,
	}
	root.AddCommand(createCmd(build))
	root.AddCommand(listCmd(build))
	root.AddCommand(summaryCmd(build))
	root.AddCommand(seedCmd(build))
	root.AddCommand(purgeTestCmd(build))
	root.AddCommand(exportCmd(build))
	root.AddCommand(fruitsCmd(build))
	return root
}

func createCmd(build builder) *cobra.Command {
	var lat, lon float64
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a plantation at a coordinate",
		RunE: withApp(build, func(cmd *cobra.Command, _ []string, a *app.App) error {
			out, err := a.Plantations.Create(cmd.Context(), lat, lon)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out.Message)
			if !out.Created() {
				return out.Rejection
			}
			p := out.Plantation
			fmt.Fprintf(cmd.OutOrStdout(), "id: %s\n", p.ID)
			for _, name := range sortedKeys(p.PlantedFruits) {
				fmt.Fprintf(cmd.OutOrStdout(), "  %-14s %6d m²\n", name, p.PlantedFruits[name])
			}
			return nil
		}),
	}
	cmd.Flags().Float64Var(&lat, "lat", 0, "latitude in degrees")
	cmd.Flags().Float64Var(&lon, "lon", 0, "longitude in degrees")
	_ = cmd.MarkFlagRequired("lat")
	_ = cmd.MarkFlagRequired("lon")
	return cmd
}

func listCmd(build builder) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List plantations in creation order",
		RunE: withApp(build, func(cmd *cobra.Command, _ []string, a *app.App) error {
			snap := a.Registry.ReadAll(cmd.Context())
			if snap.Warning != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v\n", snap.Warning)
			}
			w := cmd.OutOrStdout()
			for _, p := range snap.Plantations {
				test := ""
				if p.IsTest {
					test = " [test]"
				}
				fmt.Fprintf(w, "%s  (%.4f, %.4f)  %-13s %10.2f m²  %d fruit(s)%s\n",
					p.ID, p.Geolocation.Latitude, p.Geolocation.Longitude, p.Climate, p.TotalAreaM2, len(p.PlantedFruits), test)
			}
			fmt.Fprintf(w, "%d plantation(s)\n", len(snap.Plantations))
			return nil
		}),
	}
}

func summaryCmd(build builder) *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Show totals per climate zone and fruit",
		RunE: withApp(build, func(cmd *cobra.Command, _ []string, a *app.App) error {
			s, err := a.Plantations.Summary(cmd.Context())
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "plantations: %d (%d test)\n", s.Count, s.TestCount)
			fmt.Fprintf(w, "total area:  %.2f m² (%d m² planted)\n", s.TotalAreaM2, s.PlantedAreaM2)
			for _, z := range entities.Zones {
				if n := s.ByClimate[z]; n > 0 {
					fmt.Fprintf(w, "  %-13s %d\n", z, n)
				}
			}
			for _, name := range sortedKeys(s.FruitAreaM2) {
				fmt.Fprintf(w, "  %-14s %8d m²\n", name, s.FruitAreaM2[name])
			}
			if s.Warning != "" {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s\n", s.Warning)
			}
			return nil
		}),
	}
}

func seedCmd(build builder) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Create test plantations around well-known cities",
		RunE: withApp(build, func(cmd *cobra.Command, _ []string, a *app.App) error {
			logs, err := a.Seeder.SeedTest(cmd.Context(), serviceImp.DefaultSeeds)
			for _, l := range logs {
				fmt.Fprintln(cmd.OutOrStdout(), l)
			}
			return err
		}),
	}
}

func purgeTestCmd(build builder) *cobra.Command {
	return &cobra.Command{
		Use:   "purge-test",
		Short: "Remove every plantation flagged as test data",
		RunE: withApp(build, func(cmd *cobra.Command, _ []string, a *app.App) error {
			n, err := a.Plantations.PurgeTest(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "removed %d test plantation(s)\n", n)
			return nil
		}),
	}
}

func exportCmd(build builder) *cobra.Command {
	var format, out string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export plantations as csv, json or xlsx",
		RunE: withApp(build, func(cmd *cobra.Command, _ []string, a *app.App) error {
			f, err := export.ParseFormat(format)
			if err != nil {
				return err
			}
			ps, err := a.Plantations.List(cmd.Context())
			if err != nil {
				return err
			}
			var w io.Writer = cmd.OutOrStdout()
			if out != "" && out != "-" {
				file, err := os.Create(out)
				if err != nil {
					return err
				}
				defer file.Close()
				w = file
			}
			return export.Write(w, f, ps)
		}),
	}
	cmd.Flags().StringVar(&format, "format", "json", "csv, json or xlsx")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default stdout)")
	return cmd
}

func fruitsCmd(build builder) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fruits",
		Short: "Inspect or replace the fruit catalog",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List catalog fruits and their climate zones",
		RunE: withApp(build, func(cmd *cobra.Command, _ []string, a *app.App) error {
			specs, err := a.Catalog.List(cmd.Context())
			if err != nil {
				return err
			}
			for _, s := range specs {
				zones := make([]string, len(s.Regions))
				for i, z := range s.Regions {
					zones[i] = string(z)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %-14s %s\n", s.Icon, s.Name, strings.Join(zones, ", "))
			}
			return nil
		}),
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "import <file>",
		Short: "Replace the catalog from a json, yaml, csv or xlsx file",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(build, func(cmd *cobra.Command, args []string, a *app.App) error {
			specs, err := importer.LoadFile(args[0])
			if err != nil {
				return err
			}
			warnings, err := a.Catalog.Replace(cmd.Context(), specs)
			for _, w := range warnings {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s\n", w)
			}
			if err != nil {
				return err
			}
			stored, err := a.Catalog.List(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d fruit(s)\n", len(stored))
			return nil
		}),
	})
	return cmd
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
