package postgres

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/hisaabkit/hisaab/engine"
)

// ImportResult tracks the outcome of an import operation
type ImportResult struct {
	Processed int
	Skipped   int
	Failed    int
	Errors    []string
}

// ImportOptions configures the import behavior
type ImportOptions struct {
	Force   bool   // Force reprocessing of existing statements
	DocType string // Override auto-detection: statement or receipt
	Verbose bool   // Enable verbose logging
}

// Import processes a file or every supported file in a directory and stores
// the extracted records.
func (db *DB) Import(ctx context.Context, path string, opts ImportOptions) (*ImportResult, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("cannot stat %s: %w", path, err)
	}

	result := &ImportResult{}

	if !info.IsDir() {
		p, s, f, errs := db.ImportFile(ctx, path, opts)
		result.Processed += p
		result.Skipped += s
		result.Failed += f
		result.Errors = append(result.Errors, errs...)
		return result, nil
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read directory %s: %w", path, err)
	}

	for _, e := range entries {
		if e.IsDir() || !supportedImportFile(e.Name()) {
			continue
		}
		p, s, f, errs := db.ImportFile(ctx, filepath.Join(path, e.Name()), opts)
		result.Processed += p
		result.Skipped += s
		result.Failed += f
		result.Errors = append(result.Errors, errs...)
	}
	return result, nil
}

// ImportFile processes a single OCR text dump or PDF and stores the result.
// Returns: processed count, skipped count, failed count, error messages.
func (db *DB) ImportFile(ctx context.Context, filePath string, opts ImportOptions) (processed, skipped, failed int, errors []string) {
	fileName := filepath.Base(filePath)

	result, err := engine.ProcessFile(filePath, opts.DocType)
	if err != nil {
		return 0, 0, 1, []string{fmt.Sprintf("%s: extraction failed: %v", fileName, err)}
	}

	switch {
	case result.Receipt != nil:
		inserted, err := db.CreateReceipt(ctx, fileName, *result.Receipt)
		if err != nil {
			return 0, 0, 1, []string{fmt.Sprintf("%s: %v", fileName, err)}
		}
		if !inserted {
			if opts.Verbose {
				log.Printf("\t⏭  %s: receipt already imported", fileName)
			}
			return 0, 1, 0, nil
		}
		return 1, 0, 0, nil

	case result.Statement != nil:
		stmt := result.Statement
		if stmt.AccountInfo.AccountNumber == "" && len(stmt.Transactions) == 0 {
			return 0, 0, 1, []string{fmt.Sprintf("%s: nothing extracted", fileName)}
		}

		exists, existingID, err := db.StatementExists(ctx, stmt.AccountInfo.AccountNumber, stmt.AccountInfo.StatementDate)
		if err != nil {
			return 0, 0, 1, []string{fmt.Sprintf("%s: %v", fileName, err)}
		}
		if exists {
			if !opts.Force {
				if opts.Verbose {
					log.Printf("\t⏭  %s: statement already imported", fileName)
				}
				return 0, 1, 0, nil
			}
			if err := db.DeleteStatement(ctx, existingID); err != nil {
				return 0, 0, 1, []string{fmt.Sprintf("%s: %v", fileName, err)}
			}
		}

		id, err := db.CreateStatement(ctx, *stmt)
		if err != nil {
			return 0, 0, 1, []string{fmt.Sprintf("%s: %v", fileName, err)}
		}
		if err := db.CreateTransactions(ctx, id, stmt.Transactions); err != nil {
			return 0, 0, 1, []string{fmt.Sprintf("%s: %v", fileName, err)}
		}
		if opts.Verbose {
			log.Printf("\t✓ %s: %d transactions", fileName, len(stmt.Transactions))
		}
		return 1, 0, 0, nil
	}

	return 0, 0, 1, []string{fmt.Sprintf("%s: empty result", fileName)}
}

func supportedImportFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".txt", ".text", ".ocr", ".pdf":
		return true
	default:
		return false
	}
}
