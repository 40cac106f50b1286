package ledger

// ChartEntry is a predefined entry in the BAS chart of accounts.
type ChartEntry struct {
	Number      string `json:"number"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// BaseChart is the subset of the BAS chart seeded for every owner. It
// covers every account the built-in presets and special rules can touch,
// plus the common expense and revenue accounts.
var BaseChart = []ChartEntry{
	// Assets (1xxx)
	{Number: "1510", Name: "Kundfordringar", Description: "Accounts receivable"},
	{Number: "1910", Name: "Kassa", Description: "Petty cash"},
	{Number: "1930", Name: "Företagskonto", Description: "Company bank account"},

	// Liabilities and VAT (2xxx)
	{Number: "2350", Name: "Andra långfristiga skulder till kreditinstitut", Description: "Long-term bank loans"},
	{Number: "2440", Name: "Leverantörsskulder", Description: "Accounts payable"},
	{Number: "2611", Name: "Utgående moms 25%", Description: "Output VAT, domestic 25%"},
	{Number: "2614", Name: "Utgående moms omvänd skattskyldighet", Description: "Output VAT, reverse charge"},
	{Number: "2615", Name: "Utgående moms varuimport", Description: "Output VAT, import of goods"},
	{Number: "2621", Name: "Utgående moms 12%", Description: "Output VAT, domestic 12%"},
	{Number: "2631", Name: "Utgående moms 6%", Description: "Output VAT, domestic 6%"},
	{Number: "2641", Name: "Ingående moms", Description: "Input VAT"},
	{Number: "2645", Name: "Beräknad ingående moms på förvärv från utlandet", Description: "Calculated input VAT, foreign acquisitions"},
	{Number: "2710", Name: "Personalskatt", Description: "Withheld employee tax"},
	{Number: "2731", Name: "Avräkning lagstadgade sociala avgifter", Description: "Employer contributions due"},
	{Number: "2890", Name: "Övriga kortfristiga skulder till anställda", Description: "Employee expense payable"},

	// Revenue (3xxx)
	{Number: "3041", Name: "Försäljning tjänster 25% moms", Description: "Service sales, 25% VAT"},
	{Number: "3051", Name: "Försäljning varor 25% moms", Description: "Goods sales, 25% VAT"},

	// Costs and expenses (4xxx-8xxx)
	{Number: "4010", Name: "Inköp material och varor", Description: "Purchases of goods and materials"},
	{Number: "4515", Name: "Inköp av varor från annat EU-land", Description: "EU goods purchases, assessment base"},
	{Number: "4535", Name: "Inköp av tjänster från annat EU-land", Description: "EU service purchases, assessment base"},
	{Number: "4545", Name: "Import av varor, 25% moms", Description: "Import of goods, assessment base"},
	{Number: "4549", Name: "Motkonto beskattningsunderlag import", Description: "Import assessment base contra account"},
	{Number: "4599", Name: "Justering, omvänd moms", Description: "Reverse charge contra account"},
	{Number: "5010", Name: "Lokalhyra", Description: "Office rent"},
	{Number: "5410", Name: "Förbrukningsinventarier", Description: "Consumable equipment"},
	{Number: "5720", Name: "Tull- och speditionskostnader", Description: "Customs and freight costs"},
	{Number: "5810", Name: "Biljetter", Description: "Travel tickets"},
	{Number: "6071", Name: "Representation, avdragsgill", Description: "Entertainment, deductible"},
	{Number: "6072", Name: "Representation, ej avdragsgill", Description: "Entertainment, non-deductible"},
	{Number: "6110", Name: "Kontorsmaterial", Description: "Office supplies"},
	{Number: "6212", Name: "Mobiltelefon", Description: "Mobile and internet"},
	{Number: "7210", Name: "Löner till tjänstemän", Description: "Salaries"},
	{Number: "7510", Name: "Arbetsgivaravgifter", Description: "Employer contributions"},
	{Number: "8410", Name: "Räntekostnader", Description: "Interest expense"},
}

// LookupChartEntry finds a base chart entry by account number.
func LookupChartEntry(number string) *ChartEntry {
	for i := range BaseChart {
		if BaseChart[i].Number == number {
			return &BaseChart[i]
		}
	}
	return nil
}
