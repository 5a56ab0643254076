package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/diewo77/gmao/internal/config"
	"github.com/diewo77/gmao/internal/db"
	"github.com/diewo77/gmao/internal/flows"
	"github.com/diewo77/gmao/internal/repository"
	"github.com/diewo77/gmao/internal/services"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

// opener connects to the database; commands call it lazily so --help needs no database.
type opener func() (*gorm.DB, error)

func newRootCmd(cfg *config.Config, open opener) *cobra.Command {
	root := &cobra.Command{
		Use:           "gmaoctl",
		Short:         "Administrative tasks for the GMAO backend",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.AddCommand(
		newMigrateCmd(cfg, open),
		newSeedCmd(cfg, open),
		newQRCodeCmd(open),
		newExportCmd(open),
	)
	return root
}

func withDB(open opener, fn func(conn *gorm.DB) error) error {
	conn, err := open()
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer func() { _ = db.Close(conn) }()
	return fn(conn)
}

func newMigrateCmd(cfg *config.Config, open opener) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply the database schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withDB(open, func(conn *gorm.DB) error {
				if err := db.Migrate(conn, cfg); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "migrations completed")
				return nil
			})
		},
	}
}

func newSeedCmd(cfg *config.Config, open opener) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert the admin user, technical domains and default settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withDB(open, func(conn *gorm.DB) error {
				if err := db.Seed(conn, cfg.Seed); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "seed completed")
				return nil
			})
		},
	}
}

// localQR renders QR codes without the hosted model.
type localQR struct{}

func (localQR) GenerateQRCode(_ context.Context, content string) (string, error) {
	return flows.EncodeQRCode(content)
}

func newQRCodeCmd(open opener) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "qrcode <equipment-id>",
		Short: "Generate and store the QR code of an equipment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDB(open, func(conn *gorm.DB) error {
				svc := services.NewEquipmentService(repository.NewEquipmentRepository(conn))
				e, err := svc.AttachQRCode(cmd.Context(), args[0], localQR{})
				if err != nil {
					return err
				}
				if output == "" {
					fmt.Fprintln(cmd.OutOrStdout(), e.QRCode)
					return nil
				}
				img, err := flows.ParseDataURI(e.QRCode)
				if err != nil {
					return err
				}
				if err := os.WriteFile(output, img.Data, 0o644); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "QR code of %s written to %s\n", e.Code, output)
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the PNG to this file instead of printing the data URI")
	return cmd
}

func newExportCmd(open opener) *cobra.Command {
	var opts services.ExportOptions
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export equipment as CSV or JSON on stdout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withDB(open, func(conn *gorm.DB) error {
				svc := services.NewEquipmentService(repository.NewEquipmentRepository(conn))
				records, normalized, err := svc.Export(cmd.Context(), opts)
				if err != nil {
					return err
				}
				if normalized.Format == services.FormatCSV {
					return services.WriteCSV(cmd.OutOrStdout(), records, normalized.IncludeAudits)
				}
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(records)
			})
		},
	}
	cmd.Flags().StringVar(&opts.Format, "format", services.FormatCSV, "output format: csv or json")
	cmd.Flags().BoolVar(&opts.IncludeAudits, "audits", false, "include the latest audit columns")
	cmd.Flags().StringVar(&opts.ClientID, "client", "", "only export equipment of this client")
	return cmd
}
