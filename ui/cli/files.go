// Copyright (c) 2026 QRify Team
// QRify - QR code generator client
// This source code is licensed under the MIT license found in the LICENSE file.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/klauspost/compress/zstd"
	"github.com/qrify/qrify/client"
	"github.com/qrify/qrify/internal/actions"
	"github.com/qrify/qrify/internal/i18n"
	"github.com/qrify/qrify/internal/qrcode"
	"github.com/qrify/qrify/ui/tui/theme"
	"github.com/spf13/cobra"
)

// ExportData is the content of a history export.
type ExportData struct {
	DeviceID   string          `json:"device_id"`
	ExportedAt time.Time       `json:"exported_at"`
	Records    []client.Record `json:"records"`
}

func newDownloadCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "download <id>",
		Short: "Save the QR code as PNG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := services.Client.Get(cmd.Context(), client.ID(args[0]))
			if err != nil {
				return err
			}
			acts, name := services.Actions, actions.RecordFilename(rec.ID.String())
			if out != "" {
				copied := *acts
				copied.DownloadDir = filepath.Dir(out)
				acts, name = &copied, filepath.Base(out)
			}
			path, err := acts.Download(rec.Data, name)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), i18n.T("cli.saved", path))
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file (default qrcode-<id>.png in download_dir)")
	return cmd
}

func newShowCmd() *cobra.Command {
	var invert bool
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Render the QR code in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := services.Client.Get(cmd.Context(), client.ID(args[0]))
			if err != nil {
				return err
			}
			code, err := qrcode.Encode(rec.Data)
			if err != nil {
				return err
			}
			qr := theme.For(services.State.Theme()).Styles().QR.Render(code.Render(invert))
			fmt.Fprintln(cmd.OutOrStdout(), qr)
			fmt.Fprintln(cmd.OutOrStdout(), rec.Data)
			return nil
		},
	}
	cmd.Flags().BoolVar(&invert, "invert", false, "Swap dark and light modules for terminals without color")
	return cmd
}

func newDeviceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "device",
		Short: "Show the device identifier and where it came from",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			o := services.Identity.Outcome()
			fmt.Fprintln(cmd.OutOrStdout(), i18n.T("cli.device_id", o.ID))
			fmt.Fprintln(cmd.OutOrStdout(), i18n.T("cli.device_source", i18n.T("identity.source."+o.Source.String())))
			return nil
		},
	}
}

func newExportCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the whole history as zstd compressed JSON",
		Long: `Fetches every page of the history of this device and writes it into a
single Zstandard-compressed JSON file.

If no output file is given, qrify-history-YYYY-MM-DD.json.zst is used.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if out == "" {
				out = fmt.Sprintf("qrify-history-%s.json.zst", time.Now().Format("2006-01-02"))
			} else if !strings.HasSuffix(out, ".zst") {
				out += ".zst"
			}
			data, err := collectHistory(cmd.Context(), services.Client)
			if err != nil {
				return err
			}
			if err := writeCompressedExport(out, data); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), i18n.T("cli.exported", len(data.Records), out))
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file, .zst is appended when missing")
	return cmd
}

// collectHistory walks all history pages.
func collectHistory(ctx context.Context, c client.Client) (*ExportData, error) {
	data := &ExportData{DeviceID: c.DeviceID(), ExportedAt: time.Now().UTC()}
	for page := 1; ; page++ {
		p, err := c.History(ctx, page)
		if err != nil {
			return nil, fmt.Errorf("export page %d: %w", page, err)
		}
		data.Records = append(data.Records, p.Results...)
		if !p.HasNext() {
			return data, nil
		}
	}
}

// writeCompressedExport streams the JSON encoding into a zstd file.
func writeCompressedExport(filename string, data *ExportData) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("could not create file: %w", err)
	}
	defer func() { _ = file.Close() }()

	zstdWriter, err := zstd.NewWriter(file)
	if err != nil {
		return fmt.Errorf("could not create zstd writer: %w", err)
	}

	encoder := json.NewEncoder(zstdWriter)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		_ = zstdWriter.Close()
		return fmt.Errorf("could not encode json to zstd writer: %w", err)
	}
	if err := zstdWriter.Close(); err != nil {
		return fmt.Errorf("could not finish zstd stream: %w", err)
	}
	return file.Close()
}

// readCompressedExport is the counterpart of writeCompressedExport.
func readCompressedExport(r io.Reader) (*ExportData, error) {
	zstdReader, err := zstd.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("could not create zstd reader: %w", err)
	}
	defer zstdReader.Close()

	var data ExportData
	if err := json.NewDecoder(zstdReader).Decode(&data); err != nil {
		return nil, fmt.Errorf("could not decode json from zstd reader: %w", err)
	}
	return &data, nil
}
