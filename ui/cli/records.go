// Copyright (c) 2026 QRify Team
// QRify - QR code generator client
// This source code is licensed under the MIT license found in the LICENSE file.
package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/qrify/qrify/client"
	"github.com/qrify/qrify/internal/i18n"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// maximum width of the data column in tables
const dataColumnWidth = 48

func newCreateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create <text...>",
		Short: "Create a QR code for text or a link",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := services.Generate.Submit(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), i18n.T("cli.created", rec.ID))
			printRecord(cmd.OutOrStdout(), rec)
			return nil
		},
	}
}

func newListCmd() *cobra.Command {
	var page int
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List QR codes of this device",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := services.Client.List(cmd.Context(), page)
			if err != nil {
				return err
			}
			printPage(cmd.OutOrStdout(), p, page)
			return nil
		},
	}
	cmd.Flags().IntVar(&page, "page", 1, "Page to show")
	return cmd
}

func newHistoryCmd() *cobra.Command {
	var page int
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show the history of this device",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			snap := services.History.Load(cmd.Context(), page)
			if snap.HistoryErr != nil {
				return snap.HistoryErr
			}
			printRecords(cmd.OutOrStdout(), snap.Records)
			if len(snap.Records) > 0 {
				fmt.Fprintln(cmd.OutOrStdout(), i18n.T("cli.page_info", snap.Page, snap.Count))
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&page, "page", 1, "Page to show")
	return cmd
}

func newGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one QR code",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := services.Client.Get(cmd.Context(), client.ID(args[0]))
			if err != nil {
				return err
			}
			printRecord(cmd.OutOrStdout(), rec)
			return nil
		},
	}
}

func newDeleteCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a QR code",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := client.ID(args[0])
			if !yes {
				ok, err := confirm(cmd, i18n.T("cli.delete_prompt", id))
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(cmd.OutOrStdout(), i18n.T("cli.delete_aborted"))
					return nil
				}
			}
			if _, err := services.Client.Delete(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), i18n.T("cli.deleted", id))
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")
	return cmd
}

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show totals of this device",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := services.Client.Stats(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), i18n.T("cli.stats", s.TotalQRCodes, s.TotalScans))
			return nil
		},
	}
}

func newScanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scan <id>",
		Short: "Count a scan of a QR code",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := services.Client.IncrementScan(cmd.Context(), client.ID(args[0]))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), i18n.T("display.scans", rec.ScanCount))
			return nil
		},
	}
}

// stdinIsTerminal is replaced in tests.
var stdinIsTerminal = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

var errNotInteractive = errors.New("refusing to delete without --yes when input is not a terminal")

// confirm asks a y/N question on the command input.
func confirm(cmd *cobra.Command, prompt string) (bool, error) {
	if !stdinIsTerminal() {
		return false, errNotInteractive
	}
	fmt.Fprint(cmd.OutOrStdout(), prompt)
	answer, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes", "j", "ja":
		return true, nil
	}
	return false, nil
}

func printRecord(w io.Writer, rec client.Record) {
	fmt.Fprintln(w, i18n.T("cli.record_id", rec.ID))
	fmt.Fprintln(w, i18n.T("cli.record_data", rec.Data))
	fmt.Fprintln(w, i18n.T("cli.record_scans", rec.ScanCount))
	fmt.Fprintln(w, i18n.T("cli.record_created", rec.CreatedAt.Local().Format(time.DateTime)))
}

func printPage(w io.Writer, p client.Page, page int) {
	printRecords(w, p.Results)
	if len(p.Results) > 0 {
		fmt.Fprintln(w, i18n.T("cli.page_info", max(1, page), p.Count))
	}
}

func printRecords(w io.Writer, records []client.Record) {
	if len(records) == 0 {
		fmt.Fprintln(w, i18n.T("cli.no_records"))
		return
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "DATA", "SCANS", "CREATED")
	for _, rec := range records {
		t.Row(
			rec.ID.String(),
			truncate(rec.Data, dataColumnWidth),
			strconv.Itoa(rec.ScanCount),
			rec.CreatedAt.Local().Format(time.DateTime),
		)
	}
	fmt.Fprintln(w, t.Render())
}

func truncate(s string, n int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
