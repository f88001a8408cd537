package accounting

// Account group codes the posting engine depends on
const (
	GroupCurrentAssets      = "CURRENT_ASSETS"
	GroupInventories        = "INVENTORIES"
	GroupSundryDebtors      = "SUNDRY_DEBTORS"
	GroupCashInHand         = "CASH_IN_HAND"
	GroupBankAccounts       = "BANK_ACCOUNTS"
	GroupCurrentLiabilities = "CURRENT_LIABILITIES"
	GroupDutiesAndTaxes     = "DUTIES_AND_TAXES"
	GroupSundryCreditors    = "SUNDRY_CREDITORS"
	GroupSalesAccounts      = "SALES_ACCOUNTS"
	GroupPurchaseAccounts   = "PURCHASE_ACCOUNTS"
	GroupDirectExpenses     = "DIRECT_EXPENSES"
)

// GroupSeed describes one account group of a default chart
type GroupSeed struct {
	Code       string
	Name       string
	ParentCode string
	Nature     GroupNature
	Category   string
}

var baseChart = []GroupSeed{
	{Code: "CAPITAL_ACCOUNT", Name: "Capital Account", Nature: NatureLiabilities, Category: "Equity"},
	{Code: "RESERVES_AND_SURPLUS", Name: "Reserves & Surplus", ParentCode: "CAPITAL_ACCOUNT", Nature: NatureLiabilities, Category: "Equity - Other Equity"},
	{Code: "LOANS_LIABILITY", Name: "Loans (Liability)", Nature: NatureLiabilities, Category: "Non-Current Liabilities - Borrowings"},
	{Code: GroupCurrentLiabilities, Name: "Current Liabilities", Nature: NatureLiabilities, Category: "Current Liabilities"},
	{Code: GroupDutiesAndTaxes, Name: "Duties & Taxes", ParentCode: GroupCurrentLiabilities, Nature: NatureLiabilities, Category: "Current Liabilities - Other Current Liabilities"},
	{Code: GroupSundryCreditors, Name: "Sundry Creditors", ParentCode: GroupCurrentLiabilities, Nature: NatureLiabilities, Category: "Current Liabilities - Trade Payables"},
	{Code: "FIXED_ASSETS", Name: "Fixed Assets", Nature: NatureAssets, Category: "Non-Current Assets - Property, Plant and Equipment"},
	{Code: GroupCurrentAssets, Name: "Current Assets", Nature: NatureAssets, Category: "Current Assets"},
	{Code: GroupInventories, Name: "Stock-in-Hand", ParentCode: GroupCurrentAssets, Nature: NatureAssets, Category: "Current Assets - Inventories"},
	{Code: GroupSundryDebtors, Name: "Sundry Debtors", ParentCode: GroupCurrentAssets, Nature: NatureAssets, Category: "Current Assets - Trade Receivables"},
	{Code: GroupCashInHand, Name: "Cash-in-Hand", ParentCode: GroupCurrentAssets, Nature: NatureAssets, Category: "Current Assets - Cash and Cash Equivalents"},
	{Code: GroupBankAccounts, Name: "Bank Accounts", ParentCode: GroupCurrentAssets, Nature: NatureAssets, Category: "Current Assets - Cash and Cash Equivalents"},
	{Code: GroupSalesAccounts, Name: "Sales Accounts", Nature: NatureIncome, Category: "Revenue from Operations"},
	{Code: "DIRECT_INCOMES", Name: "Direct Incomes", Nature: NatureIncome, Category: "Revenue from Operations"},
	{Code: "INDIRECT_INCOMES", Name: "Indirect Incomes", Nature: NatureIncome, Category: "Other Income"},
	{Code: GroupPurchaseAccounts, Name: "Purchase Accounts", Nature: NatureExpenses, Category: "Purchases of Stock-in-Trade"},
	{Code: GroupDirectExpenses, Name: "Direct Expenses", Nature: NatureExpenses, Category: "Changes in Inventories"},
	{Code: "INDIRECT_EXPENSES", Name: "Indirect Expenses", Nature: NatureExpenses, Category: "Other Expenses"},
}

// DefaultChart returns the account groups seeded for a business type, parents
// before children.
func DefaultChart(bt BusinessType) []GroupSeed {
	chart := make([]GroupSeed, len(baseChart))
	copy(chart, baseChart)
	switch bt {
	case BusinessManufacturer:
		chart = append(chart,
			GroupSeed{Code: "RAW_MATERIALS", Name: "Raw Materials", ParentCode: GroupInventories, Nature: NatureAssets, Category: "Current Assets - Inventories"},
			GroupSeed{Code: "WORK_IN_PROGRESS", Name: "Work-in-Progress", ParentCode: GroupInventories, Nature: NatureAssets, Category: "Current Assets - Inventories"},
			GroupSeed{Code: "MANUFACTURING_EXPENSES", Name: "Manufacturing Expenses", ParentCode: GroupDirectExpenses, Nature: NatureExpenses, Category: "Cost of Materials Consumed"},
		)
	case BusinessService:
		for i := range chart {
			if chart[i].Code == GroupSalesAccounts {
				chart[i].Name = "Income from Services"
			}
		}
	case BusinessTrader:
	}
	return chart
}

// SystemLedger is the canonical definition of a ledger the engine resolves by code
type SystemLedger struct {
	Code      string
	Name      string
	GroupCode string
}

var (
	LedgerSales       = SystemLedger{Code: "SALES", Name: "Sales Account", GroupCode: GroupSalesAccounts}
	LedgerPurchase    = SystemLedger{Code: "PURCHASE", Name: "Purchase Account", GroupCode: GroupPurchaseAccounts}
	LedgerStockInHand = SystemLedger{Code: "STOCK_IN_HAND", Name: "Stock-in-Hand", GroupCode: GroupInventories}
	LedgerCOGS        = SystemLedger{Code: "COGS", Name: "Cost of Goods Sold", GroupCode: GroupDirectExpenses}
	LedgerCash        = SystemLedger{Code: "CASH", Name: "Cash", GroupCode: GroupCashInHand}

	LedgerOutputCGST = SystemLedger{Code: "OUTPUT_CGST", Name: "Output CGST", GroupCode: GroupDutiesAndTaxes}
	LedgerOutputSGST = SystemLedger{Code: "OUTPUT_SGST", Name: "Output SGST", GroupCode: GroupDutiesAndTaxes}
	LedgerOutputIGST = SystemLedger{Code: "OUTPUT_IGST", Name: "Output IGST", GroupCode: GroupDutiesAndTaxes}
	LedgerOutputCess = SystemLedger{Code: "OUTPUT_CESS", Name: "Output Cess", GroupCode: GroupDutiesAndTaxes}
	LedgerInputCGST  = SystemLedger{Code: "INPUT_CGST", Name: "Input CGST", GroupCode: GroupDutiesAndTaxes}
	LedgerInputSGST  = SystemLedger{Code: "INPUT_SGST", Name: "Input SGST", GroupCode: GroupDutiesAndTaxes}
	LedgerInputIGST  = SystemLedger{Code: "INPUT_IGST", Name: "Input IGST", GroupCode: GroupDutiesAndTaxes}
	LedgerInputCess  = SystemLedger{Code: "INPUT_CESS", Name: "Input Cess", GroupCode: GroupDutiesAndTaxes}
)

// CanonicalLedgers lists every system ledger created at provisioning
func CanonicalLedgers() []SystemLedger {
	return []SystemLedger{
		LedgerSales, LedgerPurchase, LedgerStockInHand, LedgerCOGS, LedgerCash,
		LedgerOutputCGST, LedgerOutputSGST, LedgerOutputIGST, LedgerOutputCess,
		LedgerInputCGST, LedgerInputSGST, LedgerInputIGST, LedgerInputCess,
	}
}
