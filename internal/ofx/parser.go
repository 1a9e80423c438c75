// Package ofx adapts OFX/QFX bank exports into canonical transactions that
// feed the pipeline's pre-parsed candidate path.
package ofx

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strings"

	"github.com/aclindsa/ofxgo"
	"github.com/google/uuid"

	"github.com/himynameismarvin/budget-bop/internal/match"
	"github.com/himynameismarvin/budget-bop/internal/model"
)

// Parser implements OFX/QFX file parsing.
type Parser struct{}

// NewParser creates a new OFX parser.
func NewParser() *Parser {
	return &Parser{}
}

var (
	severityPattern = regexp.MustCompile(`(?i)<SEVERITY>(Info|Warn|Error)</SEVERITY>`)
	openTagPattern  = regexp.MustCompile(`(?m)^(\s*<[A-Z][A-Z0-9._]*[A-Z0-9])$`)
)

// preprocessOFX fixes common formatting issues in OFX files: leading blank
// lines, mixed-case SEVERITY values, and SGML-style tags missing their
// closing bracket.
func (p *Parser) preprocessOFX(content string) string {
	content = strings.TrimLeft(content, " \t\r\n")
	content = severityPattern.ReplaceAllStringFunc(content, strings.ToUpper)
	content = openTagPattern.ReplaceAllString(content, "$1>")
	return content
}

// ParseFile parses an OFX/QFX file into canonical transactions. The result
// has no hashes assigned; the pipeline's hashing step owns dedup.
func (p *Parser) ParseFile(_ context.Context, reader io.Reader) ([]model.Transaction, error) {
	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read OFX file: %w", err)
	}

	resp, err := ofxgo.ParseResponse(strings.NewReader(p.preprocessOFX(string(content))))
	if err != nil {
		return nil, fmt.Errorf("failed to parse OFX file: %w", err)
	}

	var transactions []model.Transaction
	var bankStmts, ccStmts int

	for _, msg := range resp.Bank {
		if stmt, ok := msg.(*ofxgo.StatementResponse); ok {
			bankStmts++
			if stmt.BankTranList == nil {
				continue
			}
			accountID := string(stmt.BankAcctFrom.AcctID)
			for _, ofxTx := range stmt.BankTranList.Transactions {
				transactions = append(transactions, p.convertTransaction(ofxTx, accountID))
			}
		}
	}

	for _, msg := range resp.CreditCard {
		if stmt, ok := msg.(*ofxgo.CCStatementResponse); ok {
			ccStmts++
			if stmt.BankTranList == nil {
				continue
			}
			accountID := string(stmt.CCAcctFrom.AcctID)
			for _, ofxTx := range stmt.BankTranList.Transactions {
				transactions = append(transactions, p.convertTransaction(ofxTx, accountID))
			}
		}
	}

	slog.Info("Parsed OFX file",
		"total_transactions", len(transactions),
		"bank_statements", bankStmts,
		"cc_statements", ccStmts)

	return transactions, nil
}

// convertTransaction converts an OFX transaction to the canonical form:
// non-negative magnitude with an explicit direction.
func (p *Parser) convertTransaction(ofxTx ofxgo.Transaction, accountID string) model.Transaction {
	amount, _ := ofxTx.TrnAmt.Float64()
	direction := model.DirectionIncome
	if amount < 0 {
		amount = -amount
		direction = model.DirectionExpense
	}

	description := p.extractDescription(ofxTx)

	txn := model.Transaction{
		ID:          string(ofxTx.FiTID),
		Date:        ofxTx.DtPosted.Time.Format("2006-01-02"),
		Description: description,
		Vendor:      match.CleanVendorText(description),
		Amount:      amount,
		Direction:   direction,
		Account:     accountID,
		Reference:   string(ofxTx.CheckNum),
	}
	if txn.ID == "" {
		txn.ID = uuid.New().String()
	}

	return txn
}

// extractDescription picks the most informative text the OFX record offers.
func (p *Parser) extractDescription(tx ofxgo.Transaction) string {
	if tx.Payee != nil && tx.Payee.Name != "" {
		return string(tx.Payee.Name)
	}

	name := strings.TrimSpace(string(tx.Name))
	if tx.Memo != "" && isGenericDescription(name) {
		return string(tx.Memo)
	}
	return name
}

// isGenericDescription checks if a transaction name is too generic to
// identify a vendor.
func isGenericDescription(name string) bool {
	generic := []string{"DEBIT", "CREDIT", "PAYMENT", "PURCHASE", "WITHDRAWAL", "DEPOSIT", "CHECK", "POS"}
	upper := strings.ToUpper(strings.TrimSpace(name))
	for _, g := range generic {
		if upper == g {
			return true
		}
	}
	return false
}
