// Package engine wires the extraction pipeline together: line
// normalization, document-type dispatch, and the statement and receipt
// paths. The pipeline is synchronous, deterministic, and free of I/O; file
// and directory handling lives in the helpers below, outside the core.
package engine

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/hisaabkit/hisaab/engine/common"
	"github.com/hisaabkit/hisaab/engine/patterns"
	"github.com/hisaabkit/hisaab/engine/receipt"
	"github.com/hisaabkit/hisaab/engine/segment"
	"github.com/hisaabkit/hisaab/engine/statement"
)

// Document type labels accepted by Process and the CLI/API surfaces.
const (
	DocTypeAuto      = ""
	DocTypeStatement = "statement"
	DocTypeReceipt   = "receipt"
)

// Result is the union output of one processed document.
type Result struct {
	DocType   string                  `json:"docType"`
	Statement *common.StatementResult `json:"statement,omitempty"`
	Receipt   *common.Receipt         `json:"receipt,omitempty"`
}

// Process runs the pipeline over one document's OCR text. An empty docType
// auto-detects statement vs receipt from token evidence.
func Process(source, text, docType string) Result {
	lines := common.SplitLines(text)

	if docType == DocTypeAuto {
		docType = DetectDocType(lines)
	}

	switch docType {
	case DocTypeReceipt:
		r := receipt.Extract(lines)
		return Result{DocType: DocTypeReceipt, Receipt: &r}
	default:
		s := statement.Extract(source, lines)
		return Result{DocType: DocTypeStatement, Statement: &s}
	}
}

// DetectDocType classifies a document as statement or receipt. Multiple
// transaction boundaries settle it as a statement before provider keywords
// are consulted: a Meezan Bank statement mentions "Meezan" on every page,
// but no receipt carries more than one transaction row.
func DetectDocType(lines []string) string {
	tokens := patterns.Scan(lines)
	boundaries := segment.NewBoundaryStrategy().Segment(lines, tokens)
	if len(boundaries) >= 2 {
		return DocTypeStatement
	}

	if receipt.Detect(strings.Join(lines, "\n")) != receipt.ServiceUnknown {
		return DocTypeReceipt
	}

	sec := segment.FindSections(lines)
	if sec.TID >= 0 || sec.From >= 0 || sec.To >= 0 {
		return DocTypeReceipt
	}
	return DocTypeStatement
}

// ProcessFile loads a document from disk (OCR text dump or text-based PDF)
// and processes it.
func ProcessFile(path, docType string) (Result, error) {
	text, err := common.LoadText(path)
	if err != nil {
		return Result{}, fmt.Errorf("loading %s: %w", path, err)
	}
	source := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return Process(source, text, docType), nil
}

// ExecuteAgainstPath processes a file, or every supported file in a
// directory, and prints JSON to stdout.
func ExecuteAgainstPath(path, docType string) {
	info, err := os.Stat(path)
	if err != nil {
		log.Printf("cannot stat %s: %v", path, err)
		fmt.Println("{}")
		return
	}

	if info.IsDir() {
		log.Println("📂 Scanning", path)
		entries, err := os.ReadDir(path)
		if err != nil {
			log.Fatal(err)
		}

		results := []Result{}
		for _, e := range entries {
			if e.IsDir() || !supportedFile(e.Name()) {
				continue
			}
			result, err := ProcessFile(filepath.Join(path, e.Name()), docType)
			if err != nil {
				log.Printf("\t⚠️ %s: %v", e.Name(), err)
				continue
			}
			if !resultEmpty(result) {
				results = append(results, result)
			}
		}

		asJSON, _ := json.Marshal(results)
		fmt.Println(string(asJSON))
		return
	}

	log.Println("📄 Scanning", path)
	result, err := ProcessFile(path, docType)
	if err != nil {
		log.Printf("\t⚠️ %v", err)
		fmt.Println("{}")
		return
	}

	asJSON, _ := json.Marshal(result)
	fmt.Println(string(asJSON))
}

// CreateFinalOutput shapes a result for output: the transaction list only,
// the summary only, or the whole record.
func CreateFinalOutput(result Result, transactionsOnly, summaryOnly bool) interface{} {
	if result.Statement != nil {
		if transactionsOnly {
			return result.Statement.Transactions
		}
		if summaryOnly {
			return result.Statement.Summary
		}
	}
	return result
}

func supportedFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".txt", ".text", ".ocr", ".pdf":
		return true
	default:
		return false
	}
}

func resultEmpty(r Result) bool {
	if r.Statement != nil {
		return len(r.Statement.Transactions) == 0 && r.Statement.AccountInfo.AccountNumber == ""
	}
	if r.Receipt != nil {
		return r.Receipt.Service == receipt.ServiceUnknown && r.Receipt.Amount.IsZero() && r.Receipt.FromName == ""
	}
	return true
}
