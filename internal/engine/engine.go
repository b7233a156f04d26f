// Package engine turns materialized documents into reconciled transaction
// ledgers. Extraction runs the dialect's line grammar first and falls back
// to the table grammar when the line yield is too thin; the winning
// sequence then flows through reconciliation, sweep normalization, and
// suspicious-amount flagging before the result envelope is assembled.
package engine

import (
	"github.com/shopspring/decimal"

	"finparse/stmt-ledger/internal/dialect"
	"finparse/stmt-ledger/internal/extract"
	"finparse/stmt-ledger/internal/logging"
	"finparse/stmt-ledger/internal/models"
	"finparse/stmt-ledger/internal/parsererror"
	"finparse/stmt-ledger/internal/reconcile"
	"finparse/stmt-ledger/internal/sweep"
)

var log = logging.GetLogger()

// Path names the extraction pass that produced a transaction sequence.
type Path string

const (
	PathLines Path = "lines"
	PathTable Path = "table"
)

// Parse extracts raw transactions using the dialect's fallback policy: the
// line pass wins outright when it yields at least MinLineYield records;
// below that the table pass runs and supersedes only with strictly more
// records. When neither pass finds anything the document has no structure
// the dialect can read.
func Parse(doc *extract.Document, d *dialect.Descriptor) ([]models.Transaction, Path, error) {
	lineTxns := ExtractLines(doc, d)
	if len(lineTxns) >= d.MinLineYield {
		return lineTxns, PathLines, nil
	}

	tableTxns := ExtractTable(doc, d)
	if len(tableTxns) > len(lineTxns) {
		log.Debug("table pass superseded line pass",
			logging.Field{Key: logging.FieldDialect, Value: d.Name},
			logging.Field{Key: "line_yield", Value: len(lineTxns)},
			logging.Field{Key: "table_yield", Value: len(tableTxns)})
		return tableTxns, PathTable, nil
	}
	if len(lineTxns) > 0 {
		return lineTxns, PathLines, nil
	}
	return nil, "", &parsererror.NoStructureError{
		Detail: "no transactions found by line or table extraction",
	}
}

// Run executes the full pipeline on a materialized document: extraction,
// reconciliation, sweep normalization for sweep-aware dialects, suspicious
// flagging for both the regular and sweep sequences, and the balance
// back-fill into the metadata. The returned envelope is ready to serialize.
func Run(doc *extract.Document, d *dialect.Descriptor) (*models.ParseResult, error) {
	txns, path, err := Parse(doc, d)
	if err != nil {
		return nil, err
	}
	log.Info("extracted transactions",
		logging.Field{Key: logging.FieldDialect, Value: d.Name},
		logging.Field{Key: logging.FieldCount, Value: len(txns)},
		logging.Field{Key: "path", Value: string(path)})

	meta := ExtractMetadata(doc, d)

	txns, corrections := reconcile.Reconcile(txns, reconcile.Options{TypeOnly: d.TypeOnlyReconcile})
	if len(corrections) > 0 {
		log.Info("reconciliation adjusted transactions",
			logging.Field{Key: logging.FieldDialect, Value: d.Name},
			logging.Field{Key: logging.FieldCount, Value: len(corrections)})
	}

	var (
		sweeps      []models.Transaction
		sweepOffset decimal.Decimal
	)
	if d.SweepAware {
		txns, sweeps, sweepOffset = sweep.Normalize(txns)
		if len(sweeps) > 0 {
			log.Info("separated sweep transfers",
				logging.Field{Key: logging.FieldCount, Value: len(sweeps)},
				logging.Field{Key: "sweep_balance", Value: sweepOffset.String()})
		}
	}

	txns = reconcile.FlagSuspicious(txns)
	if d.SweepAware {
		sweeps = reconcile.FlagSuspicious(sweeps)
	}

	backfillBalances(&meta, txns)

	result := models.NewParseResult(d.Name, meta, txns)
	if d.SweepAware {
		result.WithSweep(sweeps, sweepOffset)
	}
	return result, nil
}
