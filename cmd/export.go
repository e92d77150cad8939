package main

import (
	"bytes"
	"encoding/json"
	"io"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/berinia/export-cli/internal/export"
	"github.com/berinia/export-cli/internal/lead"
)

var (
	exportInput      string
	exportCampaignID int64
	exportAll        bool
)

// batchEnvelope is the document the upstream pipeline hands over: the
// classified leads plus an optional export decision.
type batchEnvelope struct {
	ClassifiedLeads []lead.Raw       `json:"classified_leads"`
	ExportDecision  *export.Decision `json:"export_decision"`
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a batch of leads into the CRM",
	Long:  "Reads a JSON batch (a bare lead array, or an envelope with classified_leads and an optional export_decision), selects the leads to export, and reconciles them into the CRM.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		if err := cfg.Validate("export"); err != nil {
			return err
		}

		raws, decision, err := readBatch(exportInput)
		if err != nil {
			return err
		}

		if decision != nil && !exportAll {
			raws = export.SelectLeads(raws, decision, export.SelectOptions{
				Limit:          cfg.Export.AutoSelectLimit,
				ScoreThreshold: cfg.Export.ScoreThreshold,
			})
		}

		s, err := initStores(ctx)
		if err != nil {
			return err
		}
		defer s.cleanup()

		var explicit *int64
		if exportCampaignID > 0 {
			explicit = &exportCampaignID
		}

		result := newExporter(s).ExportBatch(ctx, raws, explicit)

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			return eris.Wrap(err, "encode result")
		}

		if result.ErrorCount > 0 {
			zap.L().Warn("export finished with errors",
				zap.String("batch_id", result.BatchID),
				zap.Int("errors", result.ErrorCount),
			)
		}
		if !result.Success && result.TotalAttempted > 0 {
			return eris.Errorf("no leads exported (%d errors)", result.ErrorCount)
		}
		return nil
	},
}

// readBatch loads the input JSON. A top-level array is a bare lead batch;
// a top-level object is an envelope.
func readBatch(path string) ([]lead.Raw, *export.Decision, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, nil, eris.Wrapf(err, "read input %s", path)
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, nil, eris.New("input is empty")
	}

	if trimmed[0] == '[' {
		var raws []lead.Raw
		if err := json.Unmarshal(trimmed, &raws); err != nil {
			return nil, nil, eris.Wrap(err, "parse lead array")
		}
		return raws, nil, nil
	}

	var env batchEnvelope
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return nil, nil, eris.Wrap(err, "parse batch envelope")
	}
	return env.ClassifiedLeads, env.ExportDecision, nil
}

func init() {
	exportCmd.Flags().StringVarP(&exportInput, "input", "i", "-", "input JSON file (- for stdin)")
	exportCmd.Flags().Int64Var(&exportCampaignID, "campaign", 0, "attach the batch to this campaign id")
	exportCmd.Flags().BoolVar(&exportAll, "all", false, "skip lead selection and export the whole batch")
	rootCmd.AddCommand(exportCmd)
}
