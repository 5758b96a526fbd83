package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/valyala/bytebufferpool"

	"github.com/FabricAttachedMemory/Emulation/pkg/fabric"
)

func newInspectCmd(a *app) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "inspect [path]",
		Short: "Decode the identification record left in the host-side backing file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := a.cfg.HostPath
			if len(args) == 1 {
				path = args[0]
			}
			snap, err := fabric.Inspect(cmd.Context(), path)
			if err != nil {
				return err
			}
			if asJSON {
				enc := json.NewEncoder(a.stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(snap.Record)
			}
			return printSnapshot(a, snap)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the record as JSON")
	return cmd
}

func printSnapshot(a *app, snap *fabric.Snapshot) error {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	fields := snap.Record.Fields()
	width := 0
	for _, f := range fields {
		width = max(width, len(f.Name)+1)
	}
	for _, f := range fields {
		if f.Value == "" && f.Name == "domainname" {
			continue
		}
		_, _ = fmt.Fprintf(buf, "%-*s %s\n", width, f.Name+":", f.Value)
	}
	if !snap.Complete {
		_, _ = fmt.Fprintf(buf, "(%s ends before the record does)\n", snap.Path)
	}
	_, err := a.stdout.Write(buf.B)
	return err
}
